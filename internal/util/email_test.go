package util

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "alice@example.com", want: "alice@example.com"},
		{in: "  alice@example.com  ", want: "alice@example.com"},
		{in: "Alice@EXAMPLE.COM", want: "Alice@example.com"},
		{in: "", wantErr: true},
		{in: "not-an-email", wantErr: true},
		{in: "missing@domain@twice", wantErr: true},
		{in: "Alice <alice@example.com>", wantErr: true},
	}
	for _, tc := range cases {
		got, err := NormalizeEmail(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeEmail(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeEmail(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
