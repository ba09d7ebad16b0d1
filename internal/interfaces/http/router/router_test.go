package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	watchlistapp "github.com/watchlist/backend/internal/application/watchlist"
	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	assert.Empty(t, r.registrars)

	r.Register(NewDomainGroup("/a").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "a") })).
		Register(NewDomainGroup("/b").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "b") })).
		Setup()

	for _, name := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+name+"/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, name, w.Body.String())
	}
}

func TestDomainGroup(t *testing.T) {
	t.Run("keeps its prefix", func(t *testing.T) {
		assert.Equal(t, "/api/movie", NewDomainGroup("/api/movie").Prefix())
	})

	t.Run("registers GET and POST routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("/test").
			GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "items") }).
			POST("/items", func(c *gin.Context) { c.String(http.StatusCreated, "created") })
		g.RegisterRoutes(engine.Group(""))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/items", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test/items", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("group middleware stays inside the group", func(t *testing.T) {
		engine := gin.New()
		tag := func(c *gin.Context) {
			c.Header("X-Group", "test")
			c.Next()
		}
		NewRouter(engine).
			Register(NewDomainGroup("/test").Use(tag, nil).GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })).
			Register(NewDomainGroup("/other").GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })).
			Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/items", nil))
		assert.Equal(t, "test", w.Header().Get("X-Group"))

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/other/items", nil))
		assert.Empty(t, w.Header().Get("X-Group"))
	})
}

// emptyRepository serves an empty watchlist
type emptyRepository struct{ watchlist.MovieRepository }

func (emptyRepository) FindAll(context.Context) ([]watchlist.Movie, error) {
	return nil, nil
}

func TestMovieRoutes(t *testing.T) {
	engine := gin.New()
	h := handler.NewMovieHandler(watchlistapp.NewService(emptyRepository{}, nil, nil))
	NewRouter(engine).Register(MovieRoutes("/api/movie", h)).Setup()

	for _, path := range []string{"/api/movie", "/api/movie/"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"result":[]}`, w.Body.String())
	}

	routes := map[string]bool{}
	for _, info := range engine.Routes() {
		routes[info.Method+" "+info.Path] = true
	}
	assert.True(t, routes["POST /api/movie/add"])
	assert.True(t, routes["POST /api/movie/toggle/:id"])
	assert.True(t, routes["POST /api/movie/delete/:id"])
}

func TestMovieRoutes_BasePathForms(t *testing.T) {
	h := handler.NewMovieHandler(watchlistapp.NewService(emptyRepository{}, nil, nil))

	for _, tc := range []struct {
		basePath string
		paths    []string
	}{
		{basePath: "/api/movie/", paths: []string{"/api/movie", "/api/movie/"}},
		{basePath: "/", paths: []string{"/"}},
	} {
		engine := gin.New()
		require.NotPanics(t, func() {
			NewRouter(engine).Register(MovieRoutes(tc.basePath, h)).Setup()
		}, tc.basePath)

		for _, path := range tc.paths {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, tc.basePath+" "+path)
		}
	}
}
