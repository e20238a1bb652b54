package modkit

import (
	"net/http"

	"inkverse/internal/modkit/httpkit"
	str "inkverse/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	SwaggerOn bool

	// Register is never nil; it defaults to a no-op
	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	if c.prefix != "" {
		c.prefix = str.MustPrefix(c.prefix)
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		SwaggerOn: c.swaggerOn,
		Register:  c.register,
	}
}

// Mount routes the module under b.Prefix with its middlewares, then runs own and b.Register
// An empty prefix mounts into a group on r
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	mount := func(sub httpkit.Router) {
		own(sub)
		b.Register(sub)
	}
	if b.Prefix == "" {
		r.Group(func(g httpkit.Router) {
			if len(b.Mw) > 0 {
				g.Use(b.Mw...)
			}
			mount(g)
		})
		return
	}
	httpkit.MountUnder(r, b.Prefix, b.Mw, mount)
}
