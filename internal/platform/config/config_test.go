package config

import (
	"testing"
	"time"

	kit "inkverse/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	c := New().Prefix("INKVERSE_").Prefix("GRAPHQL_")
	if got := c.Key("URL"); got != "INKVERSE_GRAPHQL_URL" {
		t.Fatalf("Key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := FromMap(map[string]string{"APP_NAME": "  inkverse "}).Prefix("APP_")
	if got := c.MustString("NAME"); got != "inkverse" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustURL(t *testing.T) {
	c := FromMap(map[string]string{
		"U_BASE": "https://api-v2.inkverse.co",
		"U_REL":  "/graphql",
	}).Prefix("U_")
	if u := c.MustURL("BASE"); u.Host != "api-v2.inkverse.co" {
		t.Fatalf("host = %q", u.Host)
	}
	kit.MustPanic(t, func() { _ = c.MustURL("REL") })
}

func TestMayValues(t *testing.T) {
	c := FromMap(map[string]string{
		"X_INT":      "15",
		"X_BADINT":   "fifteen",
		"X_BOOL":     "true",
		"X_BADBOOL":  "perhaps",
		"X_DUR":      "300ms",
		"X_BADDUR":   "soon",
		"X_URL":      "https://example.test/",
		"X_BADURL":   "not a url",
		"X_CSV":      " a, ,b ,c",
		"X_EMPTYCSV": " , ",
	}).Prefix("X_")

	if c.MayString("NONE", "def") != "def" {
		t.Fatalf("MayString default")
	}
	if c.MayInt("INT", 0) != 15 || c.MayInt("BADINT", 3) != 3 {
		t.Fatalf("MayInt")
	}
	if !c.MayBool("BOOL", false) || c.MayBool("BADBOOL", false) {
		t.Fatalf("MayBool")
	}
	if c.MayDuration("DUR", 0) != 300*time.Millisecond || c.MayDuration("BADDUR", time.Second) != time.Second {
		t.Fatalf("MayDuration")
	}
	if got := c.MayURL("URL", ""); got != "https://example.test" {
		t.Fatalf("MayURL trims trailing slash, got %q", got)
	}
	if got := c.MayURL("BADURL", "https://fallback.test"); got != "https://fallback.test" {
		t.Fatalf("MayURL fallback = %q", got)
	}
	if got := c.MayCSV("CSV", nil); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("MayCSV = %v", got)
	}
	if got := c.MayCSV("EMPTYCSV", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Fatalf("MayCSV empty = %v", got)
	}
}

func TestMayPort(t *testing.T) {
	c := FromMap(map[string]string{"P_OK": "4000", "P_COLON": ":8080", "P_BAD": "70000"}).Prefix("P_")
	cases := map[string]string{"OK": ":4000", "COLON": ":8080", "BAD": ":9", "NONE": ":9"}
	for key, want := range cases {
		if got := c.MayPort(key, ":9"); got != want {
			t.Fatalf("MayPort(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestMayEnum(t *testing.T) {
	c := FromMap(map[string]string{"E_MODE": "JSON", "E_BAD": "xml"}).Prefix("E_")
	if got := c.MayEnum("MODE", "console", "console", "json"); got != "json" {
		t.Fatalf("MayEnum canonical = %q", got)
	}
	if got := c.MayEnum("NONE", "console", "console", "json"); got != "console" {
		t.Fatalf("MayEnum default = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "console", "console", "json") })
}

func TestEnvBacked(t *testing.T) {
	t.Setenv("INKVERSE_PAGE_SIZE", "20")
	if got := New().Prefix("INKVERSE_").MayInt("PAGE_SIZE", 15); got != 20 {
		t.Fatalf("env MayInt = %d", got)
	}
}
