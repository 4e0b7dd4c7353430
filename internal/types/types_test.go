package types_test

import (
	"testing"

	"github.com/ghettovoice/httpmsg/internal/types"
)

func TestRequestMethod_IsValid(t *testing.T) {
	t.Parallel()

	for _, m := range types.RequestMethods() {
		if !m.IsValid() {
			t.Errorf("RequestMethod(%q).IsValid() = false, want true", m)
		}
	}
	for _, m := range []types.RequestMethod{"", "get", "Post", "INVITE"} {
		if m.IsValid() {
			t.Errorf("RequestMethod(%q).IsValid() = true, want false", m)
		}
	}
}

func TestResponseStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status    types.ResponseStatus
		wantValid bool
		wantStr   string
	}{
		{types.ResponseStatusOK, true, "200 OK"},
		{types.ResponseStatusNotFound, true, "404 Not Found"},
		{599, true, "599 "},
		{99, false, "99 "},
		{600, false, "600 "},
	}

	for _, c := range cases {
		if got := c.status.IsValid(); got != c.wantValid {
			t.Errorf("ResponseStatus(%d).IsValid() = %v, want %v", c.status, got, c.wantValid)
		}
		if got := c.status.String(); got != c.wantStr {
			t.Errorf("ResponseStatus(%d).String() = %q, want %q", c.status, got, c.wantStr)
		}
	}
}

func TestProtoInfo(t *testing.T) {
	t.Parallel()

	if got, want := types.HTTP("1.1").String(), "HTTP/1.1"; got != want {
		t.Errorf("types.HTTP(\"1.1\").String() = %q, want %q", got, want)
	}
	for _, v := range types.ProtoVersions {
		if !types.HTTP(v).IsValid() {
			t.Errorf("types.HTTP(%q).IsValid() = false, want true", v)
		}
	}
	if types.HTTP("3").IsValid() {
		t.Errorf("types.HTTP(\"3\").IsValid() = true, want false")
	}
}
