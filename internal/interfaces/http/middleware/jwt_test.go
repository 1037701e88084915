package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mercado/backend/internal/infrastructure/auth"
	"github.com/mercado/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-32-characters-long",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func setupJWTRouter(jwtService *auth.JWTService) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddleware(jwtService))
	r.GET("/api/v1/pedidos", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func authErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Code
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	router := setupJWTRouter(jwtService)

	token, _, err := jwtService.Issue(uuid.New(), "testuser", nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupJWTRouter(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", authErrorCode(t, w))
}

func TestJWTAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	jwtService := newTestJWTService()
	router := setupJWTRouter(jwtService)

	token, _, err := jwtService.Issue(uuid.New(), "testuser", nil, nil)
	require.NoError(t, err)

	// missing the Bearer prefix
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupJWTRouter(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", authErrorCode(t, w))
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-32-characters-long",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "test-issuer",
	})
	router := setupJWTRouter(newTestJWTService())

	token, _, err := expiredService.Issue(uuid.New(), "testuser", nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_TOKEN_EXPIRED", authErrorCode(t, w))
}

func TestJWTAuthMiddleware_WrongSigningKey(t *testing.T) {
	otherService := auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-32-chars-long!!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
	router := setupJWTRouter(newTestJWTService())

	token, _, err := otherService.Issue(uuid.New(), "testuser", nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_DefaultSkipPaths(t *testing.T) {
	jwtService := newTestJWTService()
	r := gin.New()
	r.Use(JWTAuthMiddleware(jwtService))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/health", ok)
	r.POST("/api/v1/auth/login", ok)
	r.GET("/api/v1/disponibles", ok)
	r.GET("/api/v1/productos", ok)
	r.GET("/api/v1/productos/:id/resenas", ok)
	r.GET("/api/v1/divisas/display", ok)
	r.GET("/api/v1/aliados/productos", ok)
	r.GET("/api/v1/vendedor/productos", ok)

	public := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodGet, "/api/v1/disponibles"},
		{http.MethodGet, "/api/v1/productos"},
		{http.MethodGet, "/api/v1/productos/" + uuid.NewString() + "/resenas"},
		{http.MethodGet, "/api/v1/divisas/display"},
		{http.MethodGet, "/api/v1/aliados/productos"},
	}
	for _, tt := range public {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s should be public", tt.method, tt.path)
	}

	// seller management stays protected
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendedor/productos", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_CustomSkipPaths(t *testing.T) {
	cfg := JWTMiddlewareConfig{
		JWTService: newTestJWTService(),
		SkipPaths:  []string{"/public"},
	}
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/public", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/private", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_ContextValues(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()
	customerID := uuid.New()
	sellerID := uuid.New()

	var gotUserID string
	var gotCustomerID, gotSellerID uuid.UUID
	var hasCustomer, hasSeller bool

	r := gin.New()
	r.Use(JWTAuthMiddleware(jwtService))
	r.GET("/api/v1/pedidos", func(c *gin.Context) {
		gotUserID = GetJWTUserID(c)
		gotCustomerID, hasCustomer = GetJWTCustomerID(c)
		gotSellerID, hasSeller = GetJWTSellerID(c)
		c.Status(http.StatusOK)
	})

	token, _, err := jwtService.Issue(userID, "testuser", &customerID, &sellerID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), gotUserID)
	assert.True(t, hasCustomer)
	assert.Equal(t, customerID, gotCustomerID)
	assert.True(t, hasSeller)
	assert.Equal(t, sellerID, gotSellerID)
}

func TestJWTAuthMiddleware_ProfilelessToken(t *testing.T) {
	jwtService := newTestJWTService()

	var hasCustomer, hasSeller bool

	r := gin.New()
	r.Use(JWTAuthMiddleware(jwtService))
	r.GET("/api/v1/pedidos", func(c *gin.Context) {
		_, hasCustomer = GetJWTCustomerID(c)
		_, hasSeller = GetJWTSellerID(c)
		c.Status(http.StatusOK)
	})

	token, _, err := jwtService.Issue(uuid.New(), "testuser", nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pedidos", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, hasCustomer)
	assert.False(t, hasSeller)
}

func TestGetJWTClaims_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))

	_, ok := GetJWTCustomerID(c)
	assert.False(t, ok)
	_, ok = GetJWTSellerID(c)
	assert.False(t, ok)
}
