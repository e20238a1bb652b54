package swaggerkit

import (
	"encoding/json"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-openapi/spec"
)

// Route documents one endpoint; Path is relative to the doc's base path
type Route struct {
	Method  string
	Path    string
	Summary string
	Tag     string
	// Body is a zero value of the request DTO, nil when the endpoint takes none
	Body any
}

// Doc collects routes as modules mount and renders them as a swagger 2.0 document
type Doc struct {
	title    string
	version  string
	basePath string

	mu     sync.Mutex
	routes []Route
}

// NewDoc returns an empty document
func NewDoc(title, version, basePath string) *Doc {
	return &Doc{title: title, version: version, basePath: basePath}
}

// Add records routes; safe on a nil Doc so modules need not check
func (d *Doc) Add(rs ...Route) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.routes = append(d.routes, rs...)
	d.mu.Unlock()
}

// Swagger builds the document from the routes recorded so far
func (d *Doc) Swagger() *spec.Swagger {
	d.mu.Lock()
	routes := append([]Route(nil), d.routes...)
	d.mu.Unlock()

	sort.SliceStable(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })

	paths := map[string]spec.PathItem{}
	defs := spec.Definitions{"Envelope": envelopeSchema()}
	for _, rt := range routes {
		op := spec.NewOperation(operationID(rt)).
			WithSummary(rt.Summary).
			WithTags(rt.Tag).
			WithProduces("application/json").
			RespondsWith(http.StatusOK, spec.NewResponse().
				WithDescription("ok").
				WithSchema(spec.RefSchema("#/definitions/Envelope"))).
			WithDefaultResponse(spec.NewResponse().
				WithDescription("error envelope").
				WithSchema(spec.RefSchema("#/definitions/Envelope")))

		if rt.Body != nil {
			name := reflect.TypeOf(rt.Body).Name()
			defs[name] = schemaOf(reflect.TypeOf(rt.Body))
			op.WithConsumes("application/json").
				AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/"+name)))
		}

		item := paths[rt.Path]
		switch strings.ToUpper(rt.Method) {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		}
		paths[rt.Path] = item
	}

	return &spec.Swagger{SwaggerProps: spec.SwaggerProps{
		Swagger:     "2.0",
		BasePath:    d.basePath,
		Info:        &spec.Info{InfoProps: spec.InfoProps{Title: d.title, Version: d.version}},
		Paths:       &spec.Paths{Paths: paths},
		Definitions: defs,
	}}
}

// ServeHTTP writes the document as JSON
func (d *Doc) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(d.Swagger())
}

func operationID(rt Route) string {
	parts := strings.FieldsFunc(rt.Path, func(r rune) bool { return r == '/' || r == '-' })
	id := strings.ToLower(rt.Method)
	for _, p := range parts {
		id += strings.ToUpper(p[:1]) + p[1:]
	}
	return id
}

func envelopeSchema() spec.Schema {
	s := new(spec.Schema).Typed("object", "")
	s.SetProperty("status", *spec.Int64Property())
	s.SetProperty("code", *spec.Int64Property())
	s.SetProperty("error", *spec.StringProperty())
	s.SetProperty("field", *spec.StringProperty())
	s.SetProperty("requestId", *spec.StringProperty())
	s.SetProperty("data", *new(spec.Schema).Typed("object", ""))
	return *s
}

// schemaOf covers the shapes request DTOs use: scalars, slices and flat structs
func schemaOf(t reflect.Type) spec.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return *spec.StringProperty()
	case reflect.Bool:
		return *spec.BoolProperty()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return *spec.Int64Property()
	case reflect.Slice, reflect.Array:
		item := schemaOf(t.Elem())
		return *spec.ArrayProperty(&item)
	case reflect.Struct:
		s := new(spec.Schema).Typed("object", "")
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			prop := schemaOf(f.Type)
			if ex := f.Tag.Get("example"); ex != "" {
				prop.Example = ex
			}
			s.SetProperty(name, prop)
			if strings.Contains(f.Tag.Get("validate"), "required") &&
				!strings.Contains(f.Tag.Get("validate"), "required_") {
				s.Required = append(s.Required, name)
			}
		}
		return *s
	default:
		return *new(spec.Schema).Typed("object", "")
	}
}
