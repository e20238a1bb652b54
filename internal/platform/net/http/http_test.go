package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkverse/internal/platform/config"
	perr "inkverse/internal/platform/errors"
	pnet "inkverse/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Name string `json:"name" validate:"required,max=5"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestJSONHandlerSuccessAndValidation(t *testing.T) {
	h := JSONHandler(func(_ *stdhttp.Request, in echoIn) (any, error) {
		return map[string]string{"hello": in.Name}, nil
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodPost, "/", strings.NewReader(`{"name":"ink"}`)))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	env := decode(t, rr)
	if env.Status != 200 || env.Data.(map[string]any)["hello"] != "ink" {
		t.Fatalf("envelope = %+v", env)
	}

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodPost, "/", strings.NewReader(`{"name":"toolong"}`)))
	env = decode(t, rr)
	if rr.Code != stdhttp.StatusBadRequest || env.Code != perr.ErrorCodeValidation || env.Field != "name" {
		t.Fatalf("validation reply = %d %+v", rr.Code, env)
	}
}

func TestErrorStatusAndRequestID(t *testing.T) {
	h := NoBodyHandler(func(*stdhttp.Request) (any, error) { return nil, perr.NotFoundf("comic series x not found") })

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-7"))
	rr := httptest.NewRecorder()
	h(rr, req)

	env := decode(t, rr)
	if rr.Code != stdhttp.StatusNotFound || env.RequestID != "rid-7" || env.Error != "comic series x not found" {
		t.Fatalf("reply = %d %+v", rr.Code, env)
	}
}

func TestResponsePassthrough(t *testing.T) {
	h := NoBodyHandler(func(*stdhttp.Request) (any, error) { return NoContent(), nil })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rr.Code != stdhttp.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("reply = %d %q", rr.Code, rr.Body.String())
	}

	h = NoBodyHandler(func(*stdhttp.Request) (any, error) {
		return Response{Status: stdhttp.StatusAccepted, Body: "ok", Header: stdhttp.Header{"X-Screen": {"home"}}}, nil
	})
	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rr.Code != stdhttp.StatusAccepted || rr.Header().Get("X-Screen") != "home" {
		t.Fatalf("reply = %d %v", rr.Code, rr.Header())
	}
}

func TestRouterRoutesAndGroups(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)
	var order []string
	r.Route("/api", func(api Router) {
		api.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				order = append(order, "mw")
				next.ServeHTTP(w, req)
			})
		})
		api.Group(func(g Router) {
			g.Get("/ping", NoBodyHandler(func(*stdhttp.Request) (any, error) { return "pong", nil }))
		})
		api.Post("/echo", JSONHandler(func(_ *stdhttp.Request, in echoIn) (any, error) { return in.Name, nil }))
		if api.Mux() != m {
			t.Fatalf("sub router must expose the root mux")
		}
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/api/ping", nil))
	if rr.Code != 200 || len(order) != 1 {
		t.Fatalf("ping = %d order=%v", rr.Code, order)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/api/echo", nil))
	if rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("GET on POST route = %d", rr.Code)
	}
}

func TestNewServerReadsPort(t *testing.T) {
	s := NewServer(config.FromMap(map[string]string{"PORT": ":4999"}), func(m *chi.Mux) {
		m.Get("/x", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(204) })
	})
	if s.Addr() != ":4999" {
		t.Fatalf("addr = %s", s.Addr())
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/x", nil))
	if rr.Code != 204 {
		t.Fatalf("status = %d", rr.Code)
	}
	if s.Router().Mux() == nil {
		t.Fatalf("router mux is nil")
	}
}
