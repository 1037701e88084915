package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	alliedapp "github.com/mercado/backend/internal/application/allied"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAlliedClient serves a fixed partner feed
type stubAlliedClient struct {
	products []alliedapp.Product
	err      error
}

func (c *stubAlliedClient) FetchProducts(_ context.Context) ([]alliedapp.Product, error) {
	return c.products, c.err
}

func setupAlliedRouter(handler *AlliedHandler) *gin.Engine {
	r := gin.New()
	aliados := r.Group("/api/v1/aliados")
	{
		aliados.GET("/productos", handler.Products)
		aliados.GET("/categorias", handler.Categories)
		aliados.DELETE("/cache", handler.ClearCache)
	}
	return r
}

func newAlliedHandlerForTest(client *stubAlliedClient) *AlliedHandler {
	service := alliedapp.NewService(client, nopCache{}, zap.NewNop())
	return NewAlliedHandler(service)
}

func alliedTestFeed() []alliedapp.Product {
	return []alliedapp.Product{
		{ID: "a-1", Name: "Mochila", Category: "Accesorios", Price: "95000", Stock: 7},
		{ID: "a-2", Name: "Sombrero Vueltiao", Category: "Accesorios", Price: "120000", Stock: 2},
		{ID: "a-3", Name: "Cafe de Origen", Category: "Alimentos", Price: "38000", Stock: 15},
	}
}

func TestAlliedHandler_Products_Success(t *testing.T) {
	client := &stubAlliedClient{products: alliedTestFeed()}
	router := setupAlliedRouter(newAlliedHandlerForTest(client))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aliados/productos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result alliedapp.Result
	require.NoError(t, decodeJSON(w, &result))
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "api", result.Source)
	require.Len(t, result.Data, 3)
	assert.Equal(t, "Mochila", result.Data[0].Name)
}

func TestAlliedHandler_Products_FiltersByQueryAndCategory(t *testing.T) {
	client := &stubAlliedClient{products: alliedTestFeed()}
	router := setupAlliedRouter(newAlliedHandlerForTest(client))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aliados/productos?q=mochila&categoria=accesorios", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result alliedapp.Result
	require.NoError(t, decodeJSON(w, &result))
	assert.True(t, result.Success)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Mochila", result.Data[0].Name)
}

func TestAlliedHandler_Products_UpstreamFailureIsInBand(t *testing.T) {
	client := &stubAlliedClient{err: assert.AnError}
	router := setupAlliedRouter(newAlliedHandlerForTest(client))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aliados/productos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// the endpoint answers 200 and reports the failure in the payload
	assert.Equal(t, http.StatusOK, w.Code)

	var result alliedapp.Result
	require.NoError(t, decodeJSON(w, &result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Data)
}

func TestAlliedHandler_Categories(t *testing.T) {
	client := &stubAlliedClient{products: alliedTestFeed()}
	router := setupAlliedRouter(newAlliedHandlerForTest(client))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/aliados/categorias", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result alliedapp.CategoriesResult
	require.NoError(t, decodeJSON(w, &result))
	assert.True(t, result.Success)
	assert.Equal(t, []string{"Accesorios", "Alimentos"}, result.Data)
}

func TestAlliedHandler_ClearCache(t *testing.T) {
	client := &stubAlliedClient{products: alliedTestFeed()}
	router := setupAlliedRouter(newAlliedHandlerForTest(client))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/aliados/cache", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAlliedHandler_ClearCache_PartnerDown(t *testing.T) {
	client := &stubAlliedClient{err: fmt.Errorf("allied: %w: connection refused", shared.ErrUpstreamUnavailable)}
	router := setupAlliedRouter(newAlliedHandlerForTest(client))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/aliados/cache", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UPSTREAM_UNAVAILABLE")
}
