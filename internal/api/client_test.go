package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens satisfies TokenProvider without any OAuth traffic.
type fakeTokens struct {
	refreshOK bool
	refreshes atomic.Int64
}

func (f *fakeTokens) RefreshIfNeeded(context.Context) bool {
	f.refreshes.Add(1)
	return f.refreshOK
}

func (f *fakeTokens) Headers() (http.Header, error) {
	h := http.Header{}
	h.Set("Authorization", "Bearer test-token")
	h.Set("Content-Type", "application/json")
	return h, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, &fakeTokens{refreshOK: true}, nil)
}

func TestDoSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","name":"Ada"}`)) //nolint:errcheck
	})

	res := c.Get(context.Background(), "/api/v2/users/u1")
	require.True(t, res.Success)
	assert.Empty(t, res.Err)
	assert.Equal(t, 200, res.StatusCode)

	var user struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, res.Decode(&user))
	assert.Equal(t, "Ada", user.Name)
}

func TestDoNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res := c.Delete(context.Background(), "/api/v2/groups/g1")
	require.True(t, res.Success)
	assert.Empty(t, res.Data)
	assert.Equal(t, 204, res.StatusCode)
}

func TestDoAuthShortCircuit(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, &fakeTokens{refreshOK: false}, nil)
	res := c.Get(context.Background(), "/api/v2/users")

	assert.False(t, res.Success)
	assert.Equal(t, "authentication failed", res.Err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, int64(0), hits.Load(), "no network traffic on auth failure")
}

// Every status code must uphold the exclusivity rule: success carries data
// and no error, failure carries an error and no data.
func TestDoResultExclusivity(t *testing.T) {
	statuses := []int{200, 201, 202, 204, 400, 401, 403, 404, 409, 429, 500, 502, 503}
	for _, status := range statuses {
		t.Run(fmt.Sprintf("status_%d", status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				if status != 204 {
					w.Write([]byte(`{"message":"the server says hi"}`)) //nolint:errcheck
				}
			})

			res := c.Get(context.Background(), "/x")
			assert.Equal(t, status, res.StatusCode)
			if status < 300 {
				assert.True(t, res.Success)
				assert.Empty(t, res.Err)
			} else {
				assert.False(t, res.Success)
				assert.NotEmpty(t, res.Err)
				assert.Empty(t, res.Data)
			}
		})
	}
}

func TestDoErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"queue not found"}`, "queue not found"},
		{"error field", `{"error":"forbidden"}`, "forbidden"},
		{"message preferred", `{"message":"msg","error":"err"}`, "msg"},
		{"raw body", `plain text failure`, "HTTP 500: plain text failure"},
		{"empty body", ``, "HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body)) //nolint:errcheck
			})
			res := c.Get(context.Background(), "/x")
			assert.Equal(t, tt.want, res.Err)
		})
	}
}

func TestDoErrorBodyTruncated(t *testing.T) {
	huge := make([]byte, 2000)
	for i := range huge {
		huge[i] = 'x'
	}
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write(huge) //nolint:errcheck
	})

	res := c.Get(context.Background(), "/x")
	assert.False(t, res.Success)
	assert.LessOrEqual(t, len(res.Err), maxErrorBody+len("HTTP 502: "))
}

func TestDoTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	})
	c.httpClient.Timeout = 50 * time.Millisecond

	res := c.Get(context.Background(), "/slow")
	assert.False(t, res.Success)
	assert.Equal(t, "request timed out", res.Err)
	assert.Equal(t, 0, res.StatusCode)
}

func TestDoConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", &fakeTokens{refreshOK: true}, nil)

	res := c.Get(context.Background(), "/x")
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "request failed")
	assert.Equal(t, 0, res.StatusCode)
}

func TestDoPostBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Support", body["name"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"q-new"}`)) //nolint:errcheck
	})

	res := c.Post(context.Background(), "/api/v2/routing/queues", map[string]any{"name": "Support"})
	require.True(t, res.Success)
	assert.Equal(t, 201, res.StatusCode)
}

func TestDecodeFailedResult(t *testing.T) {
	res := Fail("boom", 500)
	var out map[string]any
	assert.Error(t, res.Decode(&out))
}
