package botkit

import "testing"

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in, first, rest string
	}{
		{in: "", first: "", rest: ""},
		{in: "https://x", first: "https://x", rest: ""},
		{in: "  https://x   digest ", first: "https://x", rest: "digest"},
		{in: "a b c", first: "a", rest: "b c"},
	}

	for _, tt := range tests {
		first, rest := SplitArgs(tt.in)
		if first != tt.first || rest != tt.rest {
			t.Errorf("SplitArgs(%q) = (%q, %q), want (%q, %q)", tt.in, first, rest, tt.first, tt.rest)
		}
	}
}
