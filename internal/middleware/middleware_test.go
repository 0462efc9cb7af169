package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/learningpath-api/internal/models"
	appErrors "github.com/noah-isme/learningpath-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	token  string
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != s.token {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

type recordingObserver struct {
	path   string
	status int
}

func (r *recordingObserver) ObserveHTTPRequest(_ string, path string, status int, _ time.Duration) {
	r.path = path
	r.status = status
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": Claims(c).UserID})
	})
	router.GET("/paths/:id", handlers...)
	return router
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/paths/1", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTMiddleware(t *testing.T) {
	router := newRouter(JWT(stubValidator{token: "good", claims: &models.JWTClaims{UserID: 7, Role: models.RoleStudent}}))

	assert.Equal(t, http.StatusUnauthorized, serve(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "Bearer bad").Code)

	rec := serve(router, "bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":7}`, rec.Body.String())
}

func TestRequireRoles(t *testing.T) {
	student := stubValidator{token: "s", claims: &models.JWTClaims{UserID: 7, Role: models.RoleStudent}}
	admin := stubValidator{token: "a", claims: &models.JWTClaims{UserID: 1, Role: models.RoleAdmin}}

	router := newRouter(JWT(student), RequireRoles(models.RoleAdmin, models.RoleManager))
	assert.Equal(t, http.StatusForbidden, serve(router, "Bearer s").Code)

	router = newRouter(JWT(admin), RequireRoles(models.RoleAdmin, models.RoleManager))
	assert.Equal(t, http.StatusOK, serve(router, "Bearer a").Code)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	observer := &recordingObserver{}
	router := newRouter(Metrics(observer), JWT(stubValidator{token: "good", claims: &models.JWTClaims{UserID: 7}}))

	serve(router, "Bearer good")

	assert.Equal(t, "/paths/:id", observer.path)
	assert.Equal(t, http.StatusOK, observer.status)
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(WithResponseMeta())
	var meta map[string]interface{}
	router.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
}

func TestMetricsMiddlewareSkipsProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer, "/health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, observer.path)
}

func TestMetricsMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unmatched", observer.path)
}
