package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	watchlistapp "github.com/watchlist/backend/internal/application/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/cache"
	"github.com/watchlist/backend/internal/infrastructure/config"
	"github.com/watchlist/backend/internal/infrastructure/persistence"
	"github.com/watchlist/backend/internal/testutil"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type listResponse struct {
	Result []watchlistapp.MovieResponse `json:"result"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T, mutate func(cfg *config.Config), store cache.RateLimitStore) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.SQLite.Path = ":memory:"
	if mutate != nil {
		mutate(cfg)
	}

	log := zaptest.NewLogger(t)
	backend, err := persistence.Open(context.Background(), cfg, persistence.Options{Logger: log, LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close(context.Background()) })

	engine := NewEngine(Deps{
		Config:         cfg,
		Logger:         log,
		Service:        watchlistapp.NewService(backend.MovieRepository(), log, nil),
		Backend:        backend,
		RateLimitStore: store,
		Version:        "test",
	})
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	return testutil.PerformRequest(s.engine, method, path, body)
}

func (s *testServer) list() []watchlistapp.MovieResponse {
	s.t.Helper()

	w := s.do(http.MethodGet, "/api/movie/", "")
	require.Equal(s.t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Result
}

func (s *testServer) message(w *httptest.ResponseRecorder) string {
	s.t.Helper()

	var resp messageResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestWatchlistLifecycle(t *testing.T) {
	s := newTestServer(t, nil, nil)

	assert.Empty(t, s.list())

	w := s.do(http.MethodPost, "/api/movie/add", `{"title":"Dune","year":"2021","poster":"https://x.com/d.jpg"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movie added successfully", s.message(w))

	movies := s.list()
	require.Len(t, movies, 1)
	dune := movies[0]
	assert.Regexp(t, `^[0-9a-f]{24}$`, dune.ID)
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "2021", dune.Year)
	assert.Equal(t, "https://x.com/d.jpg", dune.Poster)
	assert.False(t, dune.Watched)
	assert.WithinDuration(t, time.Now(), dune.CreatedAt, time.Minute)

	w = s.do(http.MethodPost, "/api/movie/toggle/"+dune.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Watched status toggled", s.message(w))
	assert.True(t, s.list()[0].Watched)

	w = s.do(http.MethodPost, "/api/movie/toggle/"+dune.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.list()[0].Watched)

	w = s.do(http.MethodPost, "/api/movie/delete/"+dune.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movie deleted", s.message(w))
	assert.Empty(t, s.list())
}

func TestWatchlistRules(t *testing.T) {
	s := newTestServer(t, nil, nil)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/movie/add", `{"title":"Alien","year":1979}`).Code)

	t.Run("duplicate title and year is a conflict", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/movie/add", `{"title":"Alien","year":"1979"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Movie with the same title and year already exists", s.message(w))
		assert.Len(t, s.list(), 1)
	})

	t.Run("same title in another year is allowed", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/movie/add", `{"title":"Alien","year":"2079"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, s.list(), 2)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		movies := s.list()
		require.Len(t, movies, 2)
		assert.Equal(t, "1979", movies[0].Year)
		assert.Equal(t, "2079", movies[1].Year)
	})

	t.Run("missing title is a 400", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/movie/add", `{"year":"2000"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Failed to add movie", s.message(w))
	})

	t.Run("toggle of malformed id is a 400", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/movie/toggle/not-an-id", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Failed to toggle watched status", s.message(w))
	})

	t.Run("delete of unknown id succeeds and changes nothing", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/movie/delete/65f1c0ffee0000000000abcd", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, s.list(), 2)
	})

	t.Run("delete of malformed id is a 400", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/movie/delete/xyz", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Failed to delete movie", s.message(w))
	})

	t.Run("list is served without trailing slash", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/movie", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEngineSurface(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("health reports the storage backend", func(t *testing.T) {
		w := s.do(http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"storage":"sqlite"`)
		assert.Contains(t, w.Body.String(), `"pool"`)
	})

	t.Run("ping", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/ping", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("cors is open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/movie/add", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("every response carries a request id", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/movie/", "")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("unknown routes answer with a message", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/movies", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())
	})
}

func TestEngineBasePath(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) { cfg.App.BasePath = "/movies" }, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/movies/", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/movie/", "").Code)
}

func TestEngineRateLimit(t *testing.T) {
	store := cache.NewInMemoryRateLimitStore(2, time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	s := newTestServer(t, nil, store)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/movie/", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/movie/", "").Code)

	w := s.do(http.MethodGet, "/api/movie/", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/ping", "").Code)
}

func TestEngineProfilingLabels(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Telemetry.ProfilingEnabled = true
		cfg.Telemetry.ProfilingServerAddress = "http://localhost:4040"
	}, nil)

	w := s.do(http.MethodPost, "/api/movie/add", `{"title":"Heat","year":"1995"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.list(), 1)
}

func TestEngineSwagger(t *testing.T) {
	t.Run("serves the API document", func(t *testing.T) {
		s := newTestServer(t, nil, nil)

		w := s.do(http.MethodGet, "/swagger/doc.json", "")

		require.Equal(t, http.StatusOK, w.Code)
		var doc struct {
			Paths map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		for _, path := range []string{"/api/movie", "/api/movie/add", "/api/movie/toggle/{id}", "/api/movie/delete/{id}", "/health", "/api/ping"} {
			assert.Contains(t, doc.Paths, path)
		}
	})

	t.Run("can be switched off", func(t *testing.T) {
		s := newTestServer(t, func(cfg *config.Config) { cfg.HTTP.SwaggerEnabled = false }, nil)

		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/swagger/doc.json", "").Code)
	})
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.App.Port = "9090"

	srv := New(cfg, http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, cfg.HTTP.ReadTimeout, srv.ReadTimeout)
	assert.Equal(t, cfg.HTTP.MaxHeaderBytes, srv.MaxHeaderBytes)
}
