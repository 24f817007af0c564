package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"favorites-service/internal/catalog"
	"favorites-service/pkg/cache"
)

func newProxyServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()

	remote := httptest.NewServer(upstream)
	t.Cleanup(remote.Close)

	client := catalog.NewClient(remote.URL, cache.NewMemoryStore(), time.Minute)
	handler := NewCatalogHandler(client)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestListProducts_ProxiesUpstreamPayload(t *testing.T) {
	server := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Backpack"}]`))
	})

	resp, err := http.Get(server.URL + "/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Backpack"}]`, string(body))
}

func TestListProducts_UpstreamDown(t *testing.T) {
	server := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	resp, err := http.Get(server.URL + "/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Erro ao acessar API externa.", body["error"])
}

func TestGetProduct_ProxiesUpstreamPayload(t *testing.T) {
	server := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/3", r.URL.Path)
		w.Write([]byte(`{"id":3,"title":"Mens Cotton Jacket"}`))
	})

	resp, err := http.Get(server.URL + "/products/3")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"title":"Mens Cotton Jacket"}`, string(body))
}

func TestGetProduct_NotFound(t *testing.T) {
	server := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resp, err := http.Get(server.URL + "/products/9999")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Produto não encontrado.", body["detail"])
}

func TestGetProduct_InvalidID(t *testing.T) {
	server := newProxyServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called")
	})

	resp, err := http.Get(server.URL + "/products/abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
