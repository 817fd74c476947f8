package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	client.SetToken("abc123")

	err := client.Get(context.Background(), "/user", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	require.NoError(t, client.Get(context.Background(), "/products", nil, nil))
	assert.Empty(t, gotAuth)

	client.SetToken("tok")
	client.ClearToken()
	require.NoError(t, client.Get(context.Background(), "/products", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClientDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "kopi", r.URL.Query().Get("search"))
		w.Write([]byte(`{"data":{"data":[{"id":1,"name":"Kopi"}],"pagination":{"current_page":1,"per_page":15,"total":1,"last_page":1}},"message":"ok"}`))
	}))
	defer srv.Close()

	type product struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	var res Response[Page[product]]
	client := NewClient(srv.URL, 0)
	err := client.Get(context.Background(), "/products", url.Values{"search": {"kopi"}}, &res)
	require.NoError(t, err)

	require.Len(t, res.Data.Data, 1)
	assert.Equal(t, "Kopi", res.Data.Data[0].Name)
	assert.Equal(t, 1, res.Data.Pagination.Total)
	assert.False(t, res.Data.Pagination.HasMore())
}

func TestClientValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"The given data was invalid.","errors":{"email":["The email field is required."]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	err := client.Post(context.Background(), "/register", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, KindValidation, apiErr.Kind())
	assert.Equal(t, []string{"The email field is required."}, apiErr.Fields["email"])
	assert.False(t, apiErr.Retryable())
}

func TestClientErrorWithoutMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	err := client.Get(context.Background(), "/anything", nil, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Request failed with status 502", apiErr.Message)
	assert.True(t, apiErr.Retryable())
}

func TestClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(srv.URL, 0)
	err := client.Get(context.Background(), "/user", nil, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, KindNetwork, apiErr.Kind())
	assert.True(t, apiErr.Retryable())
	assert.Equal(t, "No response received from server", apiErr.Message)
}

func TestGetRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,action\n1,created\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0)
	raw, err := client.GetRaw(context.Background(), "/audit-trails/export", nil)
	require.NoError(t, err)
	assert.Equal(t, "id,action\n1,created\n", string(raw))
}
