package registrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/pkg/airtable"
)

func newTestRepo(t *testing.T, h http.HandlerFunc) *Repository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := airtable.New("key", "appBase", 2*time.Second, nil, airtable.WithBaseURL(srv.URL))
	return NewRepository(client, "Registration", nil)
}

func TestUpdateReceiptResolvesUUID(t *testing.T) {
	var patched map[string]any
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, `{uuid} = "u-1"`, r.URL.Query().Get("filterByFormula"))
			_, _ = io.WriteString(w, `{"records":[{"id":"recR","fields":{"uuid":"u-1"}}]}`)
		case http.MethodPatch:
			assert.Equal(t, "/appBase/Registration/recR", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			_, _ = io.WriteString(w, `{"id":"recR","fields":{}}`)
		}
	})

	err := repo.UpdateReceiptByUUID(context.Background(), "u-1", []airtable.Attachment{
		{URL: "https://res.example/a.jpg", Filename: "slip_1_0.jpg"},
	})
	require.NoError(t, err)
	fields := patched["fields"].(map[string]any)
	receipt := fields["receipt"].([]any)
	require.Len(t, receipt, 1)
	assert.Equal(t, "https://res.example/a.jpg", receipt[0].(map[string]any)["url"])
	assert.NotContains(t, fields, "payer_name")
}

func TestUpdateByUnknownUUID(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"records":[]}`)
	})
	err := repo.UpdatePayerByUUID(context.Background(), "missing", "Somchai")
	assert.True(t, action.IsNotFound(err))
}

func TestUpdatePayerUpstreamError(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"records":[{"id":"recR","fields":{}}]}`)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"error":{"type":"INVALID_VALUE_FOR_COLUMN","message":"bad"}}`)
	})
	err := repo.UpdatePayerByUUID(context.Background(), "u-1", "Somchai")
	assert.True(t, action.IsUpstream(err))
}
