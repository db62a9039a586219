package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(engine, WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("sections", "/sections")
	group.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "sections")
	})

	r.Register(group).Setup()

	w := serve(engine, "GET", "/api/v1/sections")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sections", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "v1")
		c.Next()
	})

	g := NewDomainGroup("settings", "/settings")
	g.GET("/:name", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("name"))
	})
	r.Register(g).Setup()
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "home") })

	w := serve(engine, "GET", "/api/v1/settings/theme")
	assert.Equal(t, "v1", w.Header().Get("X-Api"))
	assert.Equal(t, "theme", w.Body.String())

	w = serve(engine, "GET", "/")
	assert.Empty(t, w.Header().Get("X-Api"), "middleware is scoped to the API")
}

func TestDomainGroup_Verbs(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("pages", "/landing-pages")
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	g.GET("/:id", ok).
		POST("", ok).
		PUT("/:id", ok).
		PATCH("/:id/sections/:sid/visibility", ok).
		DELETE("/:id", ok)
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/landing-pages/1"},
		{"POST", "/api/v1/landing-pages"},
		{"PUT", "/api/v1/landing-pages/1"},
		{"PATCH", "/api/v1/landing-pages/1/sections/2/visibility"},
		{"DELETE", "/api/v1/landing-pages/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.method, w.Body.String())
		})
	}
}

func TestDomainGroup_MiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	admin := NewDomainGroup("admin", "")
	admin.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	})
	admin.Group("clients", "/clients").GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "clients")
	})
	admin.Group("team", "/team-members").PUT("/order", func(c *gin.Context) {
		c.String(http.StatusOK, "reordered")
	})
	admin.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, "GET", "/api/v1/clients")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("PUT", "/api/v1/team-members/order", nil)
	req.Header.Set("Authorization", "Bearer x")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reordered", w.Body.String())
}

func TestDomainGroup_Routes(t *testing.T) {
	g := NewDomainGroup("media", "/media")
	g.POST("/images", func(*gin.Context) {})
	g.Group("icons", "/icons").POST("", func(*gin.Context) {})

	assert.Equal(t, "media", g.Name())
	assert.Equal(t, "/media", g.Prefix())
	assert.Equal(t, []Route{
		{Method: "POST", Path: "/media/images"},
		{Method: "POST", Path: "/media/icons"},
	}, g.Routes())
}
