package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	tests := []struct {
		name string
		opts []RouterOption
		path string
	}{
		{name: "default version", path: "/api/v1/banks/ping"},
		{name: "custom version", opts: []RouterOption{WithAPIVersion("v2")}, path: "/api/v2/banks/ping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			group := NewDomainGroup("banks", "/banks").GET("/ping", func(c *gin.Context) {
				c.String(http.StatusOK, "pong")
			})
			NewRouter(engine, tt.opts...).Register(group).Setup()

			w := serve(engine, http.MethodGet, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "pong", w.Body.String())
		})
	}
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})
	group := NewDomainGroup("alerts", "/alerts")
	group.GET("", func(c *gin.Context) { c.String(http.StatusOK, "alerts") })
	r.Register(group).Setup()

	assert.Equal(t, "1", serve(engine, http.MethodGet, "/api/v1/alerts").Header().Get("X-Api"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("invoices", "/invoices")
		assert.Equal(t, "invoices", g.Name())
		assert.Equal(t, "/invoices", g.Prefix())
	})

	methods := []struct {
		method   string
		register func(g *DomainGroup, h gin.HandlerFunc)
	}{
		{http.MethodGet, func(g *DomainGroup, h gin.HandlerFunc) { g.GET("/:id", h) }},
		{http.MethodPost, func(g *DomainGroup, h gin.HandlerFunc) { g.POST("/:id", h) }},
		{http.MethodPut, func(g *DomainGroup, h gin.HandlerFunc) { g.PUT("/:id", h) }},
		{http.MethodPatch, func(g *DomainGroup, h gin.HandlerFunc) { g.PATCH("/:id", h) }},
		{http.MethodDelete, func(g *DomainGroup, h gin.HandlerFunc) { g.DELETE("/:id", h) }},
	}
	for _, m := range methods {
		t.Run("registers "+m.method+" route", func(t *testing.T) {
			engine := gin.New()
			g := NewDomainGroup("vehicles", "/vehicles")
			m.register(g, func(c *gin.Context) {
				c.String(http.StatusOK, c.Param("id"))
			})
			g.RegisterRoutes(engine.Group("/api/v1"))

			w := serve(engine, m.method, "/api/v1/vehicles/LT-123-AB")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "LT-123-AB", w.Body.String())
		})
	}

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("equipment", "/equipment")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/equipment")

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("finance", "/finance")
		g.Group("banks", "/banks").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "banks list")
		})
		g.Group("invoices", "/invoices").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "invoices list")
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "banks list", serve(engine, http.MethodGet, "/api/v1/finance/banks").Body.String())
		assert.Equal(t, "invoices list", serve(engine, http.MethodGet, "/api/v1/finance/invoices").Body.String())
	})
}

// recordingHandler implements CRUDRoutes and answers with the action name
type recordingHandler struct{}

func (recordingHandler) List(c *gin.Context)   { c.String(http.StatusOK, "list") }
func (recordingHandler) Get(c *gin.Context)    { c.String(http.StatusOK, "get "+c.Param("id")) }
func (recordingHandler) Create(c *gin.Context) { c.String(http.StatusCreated, "create") }
func (recordingHandler) Update(c *gin.Context) { c.String(http.StatusOK, "update "+c.Param("id")) }
func (recordingHandler) Delete(c *gin.Context) { c.String(http.StatusOK, "delete "+c.Param("id")) }

func TestDomainGroupCRUD(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(NewDomainGroup("contracts", "/contracts").CRUD(recordingHandler{})).Setup()

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/api/v1/contracts", http.StatusOK, "list"},
		{http.MethodGet, "/api/v1/contracts/42", http.StatusOK, "get 42"},
		{http.MethodPost, "/api/v1/contracts", http.StatusCreated, "create"},
		{http.MethodPut, "/api/v1/contracts/42", http.StatusOK, "update 42"},
		{http.MethodDelete, "/api/v1/contracts/42", http.StatusOK, "delete 42"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestDomainGroupCRUDWriteMiddleware(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, &auth.Claims{UserID: "u-1", Role: role})
			c.Next()
		}
	}

	newEngine := func(role string) *gin.Engine {
		engine := gin.New()
		NewRouter(engine).
			Use(withRole(role)).
			Register(NewDomainGroup("users", "/users").CRUD(recordingHandler{}, middleware.RequireRoles(RoleAdmin))).
			Setup()
		return engine
	}

	employee := newEngine("employee")
	assert.Equal(t, http.StatusOK, serve(employee, http.MethodGet, "/api/v1/users").Code)
	assert.Equal(t, http.StatusForbidden, serve(employee, http.MethodPost, "/api/v1/users").Code)
	assert.Equal(t, http.StatusForbidden, serve(employee, http.MethodPut, "/api/v1/users/1").Code)
	assert.Equal(t, http.StatusForbidden, serve(employee, http.MethodDelete, "/api/v1/users/1").Code)

	admin := newEngine(RoleAdmin)
	assert.Equal(t, http.StatusCreated, serve(admin, http.MethodPost, "/api/v1/users").Code)
	assert.Equal(t, http.StatusOK, serve(admin, http.MethodDelete, "/api/v1/users/1").Code)
}

func TestConfigureFallbacks(t *testing.T) {
	engine := gin.New()
	ConfigureFallbacks(engine)
	NewRouter(engine).Register(NewDomainGroup("banks", "/banks").CRUD(recordingHandler{})).Setup()

	t.Run("unsupported method", func(t *testing.T) {
		w := serve(engine, http.MethodPatch, "/api/v1/banks/42")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeMethodNotAllowed, resp.Code)
		assert.Equal(t, "Method PATCH not allowed", resp.Error)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/treasury")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeRouteNotFound, resp.Code)
	})
}

func TestConfigureFallbacksPreflight(t *testing.T) {
	engine := gin.New()
	engine.Use(middleware.CORS())
	ConfigureFallbacks(engine)
	NewRouter(engine).Register(NewDomainGroup("banks", "/banks").CRUD(recordingHandler{})).Setup()

	w := serve(engine, http.MethodOptions, "/api/v1/banks")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
