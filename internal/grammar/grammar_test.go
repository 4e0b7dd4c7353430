package grammar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httpmsg/internal/grammar"
)

func TestIsHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"a", true},
		{"example.com", true},
		{"EXAMPLE.com", true},
		{"sub_domain.ex-ample.com", true},
		{"127.0.0.1", true},
		{"a.b.c.d.e", true},
		{"-example.com", false},
		{"example-.com", false},
		{"_a.com", false},
		{"a_.com", false},
		{"example..com", false},
		{".example.com", false},
		{"example.com.", false},
		{"exa mple.com", false},
		{"example.com:80", false},
		{"[::1]", false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsHost(c.input); got != c.want {
				t.Errorf("grammar.IsHost(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}

func TestIsHostLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"x", true},
		{"x-y_z", true},
		{"x.y", false},
		{"x-", false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsHostLabel([]byte(c.input)); got != c.want {
				t.Errorf("grammar.IsHostLabel(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}

func TestIsUserinfoToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"User", true},
		{"user_name-1", true},
		{"-", true},
		{"us er", false},
		{"user@", false},
		{"p:ss", false},
		{"юзер", false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsUserinfoToken(c.input); got != c.want {
				t.Errorf("grammar.IsUserinfoToken(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}

func TestValidateHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", grammar.ErrEmptyInput},
		{"valid", "example.com", nil},
		{"trailing garbage", "example.com/", grammar.ErrMalformedInput},
		{"bad start", "-x", grammar.ErrMalformedInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := grammar.ValidateHost(c.input)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("grammar.ValidateHost(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			}
		})
	}
}

func TestIsScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"http", true},
		{"HTTPS", true},
		{"svn+ssh", true},
		{"coap.tcp-1", true},
		{"1http", false},
		{"ht tp", false},
		{"http:", false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsScheme(c.input); got != c.want {
				t.Errorf("grammar.IsScheme(%q) = %v, want %v", c.input, got, c.want)
			}
		})
	}
}
