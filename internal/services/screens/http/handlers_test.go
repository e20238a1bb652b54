package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"inkverse/internal/adapters/graphql"
	"inkverse/internal/modkit/httpkit"
	"inkverse/internal/platform/logger"
	phttp "inkverse/internal/platform/net/http"
	"inkverse/internal/platform/net/middleware"
	"inkverse/internal/services/screens/repo"
	"inkverse/internal/services/screens/service"

	"github.com/go-chi/chi/v5"
)

const seriesUUID = "c8b9a3f4-1b2d-4d6e-9f10-2a3b4c5d6e7f"

// gqlServer answers by operation name and records the auth header of each call
type gqlServer struct {
	mu      sync.Mutex
	replies map[string]string
	auth    []string
}

func (g *gqlServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OperationName string `json:"operationName"`
	}
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &body)

	g.mu.Lock()
	g.auth = append(g.auth, r.Header.Get("Authorization"))
	data, ok := g.replies[body.OperationName]
	g.mu.Unlock()
	if !ok {
		data = `{"` + body.OperationName + `":null}`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"data":`+data+`}`)
}

func (g *gqlServer) lastAuth() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.auth) == 0 {
		return "<none>"
	}
	return g.auth[len(g.auth)-1]
}

func newAPI(t *testing.T, replies map[string]string) (*gqlServer, http.Handler) {
	t.Helper()
	gs := &gqlServer{replies: replies}
	fs := httptest.NewServer(gs)
	t.Cleanup(fs.Close)

	nop := logger.Nop()
	cs := graphql.NewClients(graphql.ClientsOptions{
		URL:      fs.URL,
		Token:    graphql.ContextToken(nil),
		Reporter: graphql.Nop(),
		Log:      &nop,
	})
	svc := service.New(repo.NewGQL(), cs.Public, &nop, service.DefaultConfig())

	mux := chi.NewRouter()
	httpkit.MountAPIV1(phttp.AdaptChi(mux), httpkit.CommonStack(middleware.CORSOptions{}), func(api httpkit.Router) {
		httpkit.MountUnder(api, "/screens", nil, func(r httpkit.Router) {
			Register(r, Deps{Svc: svc, User: cs.User})
		})
	})
	return gs, mux
}

type envelope struct {
	Status int             `json:"status"`
	Code   int             `json:"code"`
	Error  string          `json:"error"`
	Field  string          `json:"field"`
	Data   json.RawMessage `json:"data"`
}

func post(t *testing.T, h http.Handler, path, body string, header ...string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/screens"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

const seriesReply = `{"getComicSeries":{"__typename":"ComicSeries","uuid":"` + seriesUUID + `","shortUrl":"nimona","name":"Nimona",
	"issues":[{"__typename":"ComicIssue","uuid":"i1","name":"Ep 1","seriesUuid":"` + seriesUUID + `","position":1}]}}`

func TestComicSeries_ReturnsSettledState(t *testing.T) {
	_, h := newAPI(t, map[string]string{"getComicSeries": seriesReply})

	status, env := post(t, h, "/comicseries", `{"uuid":"`+seriesUUID+`"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d env=%+v", status, env)
	}

	var st struct {
		IsLoading bool `json:"isLoading"`
		Data      struct {
			Series struct {
				Name string `json:"name"`
			} `json:"comicseries"`
			Issues []struct {
				UUID string `json:"uuid"`
			} `json:"issues"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatal(err)
	}
	if st.IsLoading || st.Data.Series.Name != "Nimona" || len(st.Data.Issues) != 1 {
		t.Fatalf("state = %+v", st)
	}
}

func TestComicSeries_NotFoundIs404(t *testing.T) {
	_, h := newAPI(t, nil)

	status, env := post(t, h, "/comicseries", `{"shortUrl":"missing"}`)
	if status != http.StatusNotFound || env.Error == "" {
		t.Fatalf("status=%d env=%+v", status, env)
	}
}

func TestComicSeries_ValidationNeedsAKey(t *testing.T) {
	_, h := newAPI(t, nil)

	status, env := post(t, h, "/comicseries", `{}`)
	if status != http.StatusBadRequest || env.Field == "" {
		t.Fatalf("status=%d env=%+v", status, env)
	}

	status, _ = post(t, h, "/comicseries", `{"uuid":"not-a-uuid"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("bad uuid status = %d", status)
	}
}

func TestBearerSelectsUserClient(t *testing.T) {
	gs, h := newAPI(t, map[string]string{"getComicSeries": seriesReply})

	if status, _ := post(t, h, "/comicseries", `{"shortUrl":"nimona"}`); status != http.StatusOK {
		t.Fatalf("anonymous status = %d", status)
	}
	if got := gs.lastAuth(); got != "" {
		t.Fatalf("anonymous call sent auth %q", got)
	}

	status, _ := post(t, h, "/comicseries", `{"shortUrl":"nimona","forceRefresh":true}`, "Authorization", "Bearer tok-9")
	if status != http.StatusOK {
		t.Fatalf("user status = %d", status)
	}
	if got := gs.lastAuth(); got != "Bearer tok-9" {
		t.Fatalf("user call auth = %q", got)
	}
}

func TestSearch_EmptyTermSkipsNetwork(t *testing.T) {
	gs, h := newAPI(t, nil)

	status, env := post(t, h, "/search", `{"term":"   "}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := gs.lastAuth(); got != "<none>" {
		t.Fatalf("search hit the server")
	}
	var st struct {
		Page int `json:"page"`
		Data struct {
			Series []any `json:"comicseries"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatal(err)
	}
	if st.Page != 1 || len(st.Data.Series) != 0 {
		t.Fatalf("state = %+v", st)
	}
}

func TestList_SlugAndBadID(t *testing.T) {
	_, h := newAPI(t, map[string]string{
		"getList": `{"getList":{"__typename":"List","id":"9","name":"LGBTQ+","comicseries":[]}}`,
	})

	if status, _ := post(t, h, "/list", `{"id":"id9-lgbt"}`); status != http.StatusOK {
		t.Fatalf("slug status = %d", status)
	}
	if status, _ := post(t, h, "/list", `{"id":"lgbt"}`); status != http.StatusNotFound {
		t.Fatalf("bad id status = %d", status)
	}
}

func TestComics_RejectsTagsWithGenres(t *testing.T) {
	_, h := newAPI(t, nil)

	status, _ := post(t, h, "/comics", `{"filterForTags":["cats"],"filterForGenres":["COMICSERIES_ROMANCE"]}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
}
