// Package raw is the bootstrap env reader used before the logger exists
// It must not import the logger package
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g. "LOG_")
type Conf struct {
	prefix string
	lookup func(string) string
}

// New returns a root Conf backed by the process environment
func New() Conf { return Conf{lookup: os.Getenv} }

// FromMap returns a root Conf backed by a fixed map
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) string { return m[k] }}
}

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, lookup: c.lookup} }

func (c Conf) value(k string) string {
	get := c.lookup
	if get == nil {
		get = os.Getenv
	}
	return strings.TrimSpace(get(c.prefix + k))
}

// Get returns the trimmed value or def when empty
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true, yes and on; any other non-empty value is false
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(c.value(key))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// GetInt parses a non-negative integer; anything else yields def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.value(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
