package uri

import "testing"

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/", "/"},
		{"//", "/"},
		{"/a/b/../c/./d", "/a/c/d"},
		{"../../x", "x"},
		{"/../x", "/x"},
		{"a/b/", "a/b"},
		{"/a//b", "/a/b"},
		{"/a/.../b", "/a/b"},
		{"/a/..b/c", "/a/..b/c"},
		{"/a/b/../../..", "/"},
		{".", ""},
		{"/x/%2e%2e/y", "/x/%2e%2e/y"},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got := normalizePath(c.in)
			if got != c.want {
				t.Errorf("normalizePath(%q) = %q, want %q", c.in, got, c.want)
			}
			if again := normalizePath(got); again != got {
				t.Errorf("normalizePath(%q) = %q, want idempotent %q", got, again, got)
			}
		})
	}
}
