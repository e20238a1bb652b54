package raw

import "testing"

func TestGetFallsBackOnEmpty(t *testing.T) {
	c := FromMap(map[string]string{"LOG_LEVEL": "  info ", "LOG_FORMAT": "   "}).Prefix("LOG_")
	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("LEVEL = %q", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("blank FORMAT = %q", got)
	}
	if got := c.Get("MISSING", "x"); got != "x" {
		t.Fatalf("MISSING = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := FromMap(map[string]string{"A": "YES", "B": "on", "C": "nope", "D": "1"})
	cases := []struct {
		key  string
		def  bool
		want bool
	}{
		{"A", false, true},
		{"B", false, true},
		{"C", true, false},
		{"D", false, true},
		{"E", true, true},
	}
	for _, tc := range cases {
		if got := c.GetBool(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetBool(%s) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := FromMap(map[string]string{"N": "42", "BAD": "4x", "NEG": "-3"})
	if c.GetInt("N", 0) != 42 {
		t.Fatalf("N")
	}
	if c.GetInt("BAD", 7) != 7 || c.GetInt("NEG", 7) != 7 || c.GetInt("NONE", 7) != 7 {
		t.Fatalf("fallbacks not applied")
	}
}

func TestEnvBacked(t *testing.T) {
	t.Setenv("INKVERSE_RAW_SAMPLE", "hello")
	if got := New().Prefix("INKVERSE_").Get("RAW_SAMPLE", ""); got != "hello" {
		t.Fatalf("env lookup = %q", got)
	}
	var zero Conf
	if got := zero.Get("INKVERSE_RAW_SAMPLE", ""); got != "hello" {
		t.Fatalf("zero Conf should read env, got %q", got)
	}
}
