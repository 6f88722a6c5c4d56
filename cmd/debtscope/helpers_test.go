package main

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"much longer than limit", 10, "much lo..."},
		{"tiny", 3, "tiny"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestParseFlag(t *testing.T) {
	args := []string{"--severity=major", "--limit=5", "positional"}
	if got := parseFlag(args, "--severity="); got != "major" {
		t.Errorf("severity = %q, want major", got)
	}
	if got := parseFlag(args, "--kind="); got != "" {
		t.Errorf("missing flag = %q, want empty", got)
	}
}

func TestHasFlag(t *testing.T) {
	args := []string{"--json", "src"}
	if !hasFlag(args, "--json") {
		t.Error("--json not detected")
	}
	if hasFlag(args, "--no-store") {
		t.Error("absent flag detected")
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		45:   "45m",
		90:   "1h30m",
		60:   "1h00m",
		960:  "2.0d",
		1200: "2.5d",
	}
	for minutes, want := range cases {
		if got := formatMinutes(minutes); got != want {
			t.Errorf("formatMinutes(%d) = %q, want %q", minutes, got, want)
		}
	}
}
