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
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.middleware)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	r.Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/test/ping").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	engine := gin.New()
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			order = append(order, name)
			c.Next()
		}
	}

	r := NewRouter(engine, WithMiddleware(mark("api")))
	r.Register(NewDomainGroup("test", "/test").
		Use(mark("group")).
		POST("/items", func(c *gin.Context) {
			order = append(order, "handler")
			c.Status(http.StatusCreated)
		}))
	r.Setup()

	w := serve(engine, http.MethodPost, "/api/v1/test/items")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"api", "group", "handler"}, order)
}

func TestDomainGroup(t *testing.T) {
	g := NewDomainGroup("inventory", "/inventory/items").
		GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
		POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })

	assert.Equal(t, "inventory", g.Name())
	assert.Equal(t, "/inventory/items", g.Prefix())

	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/inventory/items/abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/inventory/items").Code)
}
