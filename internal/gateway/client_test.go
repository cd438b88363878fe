package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-console/internal/gateway"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	client := gateway.NewClient(backend.URL, 5*time.Second)

	ctx := gateway.WithToken(context.Background(), "abc123")
	err := client.Get(ctx, "/libros", &map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer backend.Close()

	client := gateway.NewClient(backend.URL, 5*time.Second)

	err := client.Get(context.Background(), "/libros", &map[string]interface{}{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_DecodesResponse(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"idLibro": 1, "titulo": "Dune"}]`))
	}))
	defer backend.Close()

	client := gateway.NewClient(backend.URL, 5*time.Second)

	var books []struct {
		ID    int64  `json:"idLibro"`
		Title string `json:"titulo"`
	}
	err := client.Get(context.Background(), "/libros", &books)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"message": "El libro no está disponible"}`, "El libro no está disponible"},
		{"bare json string", http.StatusConflict, `"El socio tiene préstamos activos"`, "El socio tiene préstamos activos"},
		{"unparseable body", http.StatusInternalServerError, `<html>boom</html>`, gateway.GenericMessage},
		{"empty body", http.StatusBadGateway, ``, gateway.GenericMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer backend.Close()

			client := gateway.NewClient(backend.URL, 5*time.Second)

			err := client.Get(context.Background(), "/libros", nil)
			require.Error(t, err)

			apiErr, ok := gateway.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_StatusHelpers(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	client := gateway.NewClient(backend.URL, 5*time.Second)

	err := client.Get(context.Background(), "/libros/99", nil)
	assert.True(t, gateway.IsNotFound(err))
	assert.False(t, gateway.IsUnauthorized(err))
}
