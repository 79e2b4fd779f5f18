package scene

import "testing"

func TestSafeColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"#ff0000", "#ff0000"},
		{"#FF0000", "#ff0000"},
		{"red", "#e74c3c"},
		{"GREY", "#95a5a6"},
		{"", ColorBase},
		{"not-a-color", ColorBase},
		{"#abc", "#aabbcc"},
		{"#12345", ColorBase},
		{"#1234567", ColorBase},
		{"12345", ColorBase},
	}
	for _, tc := range cases {
		if got := SafeColor(tc.in, ColorBase); got != tc.want {
			t.Errorf("SafeColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
