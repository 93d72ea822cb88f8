package validate

import "testing"

func TestIsAuthenticEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"a.b+c@sub.domain.com", true},
		{"ann@x.co", true},
		{"USER_1%x@Example.ORG", true},
		{"a@b", false},
		{"not-an-email", false},
		{"", false},
		{"a@b.c", false},
		{"a@b.c0", false},
		{"a b@c.com", false},
		{"a@b.com ", false},
		{"@b.com", false},
		{"a@@b.com", false},
		{"a@b.com\nx@y.com", false},
	}

	for _, tc := range cases {
		if got := IsAuthenticEmail(tc.in); got != tc.want {
			t.Fatalf("IsAuthenticEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
