package uri

import "strings"

// normalizePath collapses empty and dot segments of p.
//
// A ".." segment pops the last kept segment when there is one,
// any other segment consisting only of dots is dropped.
// The leading slash of an absolute path is kept, the trailing one is not.
func normalizePath(p string) string {
	if p == "" {
		return ""
	}

	segs := strings.Split(p, "/")
	kept := segs[:0]
	for _, seg := range segs {
		switch {
		case seg == "":
			continue
		case seg == ".." && len(kept) > 0:
			kept = kept[:len(kept)-1]
		case strings.Trim(seg, ".") == "":
			continue
		default:
			kept = append(kept, seg)
		}
	}

	norm := strings.Join(kept, "/")
	if p[0] == '/' {
		return "/" + norm
	}
	return norm
}
