package jama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamamcp/internal/auth"
)

// newTestServer runs a minimal Jama lookalike: an OAuth token endpoint plus
// whatever REST handlers the test registers under /rest/v1.
func newTestServer(t *testing.T, register func(mux *http.ServeMux)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"bearer","expires_in":3600}`)
	})
	register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeList(w http.ResponseWriter, start, total int, data []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"meta": map[string]any{
			"pageInfo": map[string]any{
				"startIndex":   start,
				"resultCount":  len(data),
				"totalResults": total,
			},
		},
		"data": data,
	})
}

func TestRESTClientBearerToken(t *testing.T) {
	var gotAuth string
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/rest/v1/projects", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			writeList(w, 0, 1, []map[string]any{{"id": 1.0}})
		})
	})

	c := NewRESTClient(context.Background(), server.URL, auth.Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
	})

	projects, err := c.GetProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestRESTClientPagination(t *testing.T) {
	all := make([]map[string]any, 0, 3)
	for i := 1; i <= 3; i++ {
		all = append(all, map[string]any{"id": float64(i)})
	}

	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/rest/v1/items", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.URL.Query().Get("project"))
			start, _ := strconv.Atoi(r.URL.Query().Get("startAt"))

			// Serve two items per page regardless of maxResults.
			end := start + 2
			if end > len(all) {
				end = len(all)
			}
			writeList(w, start, len(all), all[start:end])
		})
	})

	c := NewRESTClient(context.Background(), server.URL, auth.Credentials{ClientID: "id", ClientSecret: "secret"})

	items, err := c.GetItems(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, float64(1), items[0]["id"])
	assert.Equal(t, float64(3), items[2]["id"])
}

func TestRESTClientGetObject(t *testing.T) {
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/rest/v1/items/42", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"meta":{"status":"OK"},"data":{"id":42,"documentKey":"REQ-42"}}`)
		})
	})

	c := NewRESTClient(context.Background(), server.URL, auth.Credentials{ClientID: "id", ClientSecret: "secret"})

	item, err := c.GetItem(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, float64(42), item["id"])
	assert.Equal(t, "REQ-42", item["documentKey"])
}

func TestRESTClientAPIError(t *testing.T) {
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/rest/v1/items/404", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"meta":{"status":"Not Found","message":"item not found"}}`)
		})
	})

	c := NewRESTClient(context.Background(), server.URL, auth.Credentials{ClientID: "id", ClientSecret: "secret"})

	_, err := c.GetItem(context.Background(), "404")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "item not found")
}

func TestRESTClientPostItem(t *testing.T) {
	var gotBody map[string]any
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/rest/v1/items", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"meta":{"status":"Created","id":900}}`)
		})
	})

	c := NewRESTClient(context.Background(), server.URL, auth.Credentials{ClientID: "id", ClientSecret: "secret"})

	id, err := c.PostItem(context.Background(), 7, 10, 0, map[string]any{"item": 5.0}, map[string]any{"name": "New"})
	require.NoError(t, err)
	assert.Equal(t, 900, id)

	assert.Equal(t, float64(7), gotBody["project"])
	assert.Equal(t, float64(10), gotBody["itemType"])
	assert.NotContains(t, gotBody, "childItemType")

	location, ok := gotBody["location"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"item": 5.0}, location["parent"])
}

func TestRESTClientPutItemReturnsStatus(t *testing.T) {
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/rest/v1/items/42", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			w.WriteHeader(http.StatusOK)
		})
	})

	c := NewRESTClient(context.Background(), server.URL, auth.Credentials{ClientID: "id", ClientSecret: "secret"})

	status, err := c.PutItem(context.Background(), 7, 42, 10, 0, nil, map[string]any{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}
