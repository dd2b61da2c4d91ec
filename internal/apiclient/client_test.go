package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-api/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL, Headers: map[string]string{}, Timeout: 5 * time.Second}, tokens)
}

func TestClient_GetParking_SendsBearerAndReturnsPayload(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Parking{ID: 5, Name: "东门", Address: "学院路", Table: [][]string{{"时段", "价格"}}})
	}, staticTokens{"token": "abc123"})

	parking, err := client.GetParking(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "/parking/5", gotPath)
	assert.Equal(t, int64(5), parking.ID)
	assert.Equal(t, "东门", parking.Name)
	assert.Equal(t, [][]string{{"时段", "价格"}}, parking.Table)
}

func TestClient_LoginSkipsAuthorization(t *testing.T) {
	var gotAuth string
	var gotBody model.LoginRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(model.LoginResponse{Token: "fresh"})
	}, staticTokens{"token": "stale"})

	resp, err := client.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.Equal(t, "admin", gotBody.Username)
	assert.Equal(t, "fresh", resp.Token)
}

func TestClient_NoTokenLeavesHeaderUnset(t *testing.T) {
	seen := true
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, seen = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}, staticTokens{})

	parkings, err := client.ListParkings(context.Background())
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Empty(t, parkings)
}

func TestClient_PageParkings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		page := model.NewPaginationResponse([]model.Parking{{ID: 11}}, 25, 2, 10)
		json.NewEncoder(w).Encode(page)
	}, nil)

	page, err := client.PageParkings(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []model.Parking{{ID: 11}}, page.Results)
}

func TestClient_StatusErrorCarriesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"parking not found"}`))
	}, nil)

	_, err := client.GetParkingDetail(context.Background(), 42)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode())
	assert.True(t, IsNotFound(err))

	body, ok := AsErrorResponse(err)
	assert.True(t, ok)
	assert.Equal(t, "parking not found", body.Error)
}

func TestClient_DeleteNoContent(t *testing.T) {
	var method string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}, staticTokens{"token": "t"})

	err := client.DeleteParking(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, method)
}

func TestClient_UpdateSendsOnlySetFields(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &raw))
		json.NewEncoder(w).Encode(model.Parking{ID: 3, Name: "renamed"})
	}, staticTokens{"token": "t"})

	name := "renamed"
	parking, err := client.UpdateParking(context.Background(), 3, model.UpdateParkingRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "renamed"}, raw)
	assert.Equal(t, "renamed", parking.Name)
}

func TestClient_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}, nil)

	_, err := client.GetParking(context.Background(), 1)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestClient_HookErrorIsReturnedUnchanged(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, nil)

	boom := errors.New("refused by hook")
	client.Use(func(r Request) (Request, error) { return r, boom })

	_, err := client.ListParkings(context.Background())
	assert.Same(t, boom, err)
	assert.False(t, called, "request must not be sent")
}

func TestClient_UseWhileRequestsAreInFlight(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Header.Get("X-Trace")]++
		mu.Unlock()
		w.Write([]byte(`[]`))
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client.Use(func(r Request) (Request, error) {
				r = r.Clone()
				r.Headers["X-Trace"] = "on"
				return r, nil
			})
		}()
		go func() {
			defer wg.Done()
			_, err := client.ListParkings(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	client.mu.RLock()
	assert.Len(t, client.hooks, 21)
	client.mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	total := 0
	for _, n := range seen {
		total += n
	}
	assert.Equal(t, 20, total)
}

func TestClient_EmptyURLIsRequestError(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"}, nil)

	err := client.Do(context.Background(), Request{Method: http.MethodGet}, nil)
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestClient_UnencodableBodyIsRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	err := client.Do(context.Background(), Request{Method: http.MethodPost, URL: "/parking", Body: make(chan int)}, nil)
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestClient_TransportErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := New(Config{BaseURL: baseURL, Timeout: time.Second}, nil)
	_, err := client.ListParkings(context.Background())
	require.Error(t, err)

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
