package types

import (
	"log/slog"
	"slices"
)

const protoName = "HTTP"

// ProtoVersions lists the supported HTTP protocol versions, newest first.
var ProtoVersions = []string{"2", "1.1", "1.0"}

// IsProtoVersion reports whether v is one of [ProtoVersions].
func IsProtoVersion(v string) bool { return slices.Contains(ProtoVersions, v) }

// ProtoInfo is the protocol token of a request or status line, e.g. HTTP/1.1.
type ProtoInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HTTP returns the HTTP [ProtoInfo] of version.
func HTTP(version string) ProtoInfo { return ProtoInfo{Name: protoName, Version: version} }

func (p ProtoInfo) String() string { return p.Name + "/" + p.Version }

// IsValid reports whether p names HTTP with a supported version.
func (p ProtoInfo) IsValid() bool { return p.Name == protoName && IsProtoVersion(p.Version) }

func (p ProtoInfo) LogValue() slog.Value { return slog.StringValue(p.String()) }
