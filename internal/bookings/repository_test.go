package bookings

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

	"github.com/limitless-club/booking/pkg/airtable"
)

func TestRepositoryCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appBase/Bookings", r.URL.Path)
		var body struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Pending", body.Fields["Status"])
		assert.Equal(t, 800.0, body.Fields["Total Price"])
		assert.NotContains(t, body.Fields, "Receipt")
		_, _ = io.WriteString(w, `{"id":"recB","fields":{"First Name":"Somchai","Status":"Pending","Total Price":800}}`)
	}))
	defer srv.Close()

	client := airtable.New("key", "appBase", 2*time.Second, nil, airtable.WithBaseURL(srv.URL))
	repo := NewRepository(client, "Bookings", nil)
	b, err := repo.Create(context.Background(), Booking{FirstName: "Somchai", TotalPrice: 800, Status: StatusPending})
	require.NoError(t, err)
	assert.Equal(t, "recB", b.ID)
	assert.Equal(t, StatusPending, b.Status)
}

func TestRepositoryCreateUndecodableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"recC","fields":{"First Name":"Somchai","Total Price":"800 THB"}}`)
	}))
	defer srv.Close()

	client := airtable.New("key", "appBase", 2*time.Second, nil, airtable.WithBaseURL(srv.URL))
	repo := NewRepository(client, "Bookings", nil)
	b, err := repo.Create(context.Background(), Booking{FirstName: "Somchai", RoomID: "room1", TotalPrice: 800, Status: StatusPending})
	require.NoError(t, err)
	assert.Equal(t, "recC", b.ID)
	assert.Equal(t, "room1", b.RoomID)
	assert.Equal(t, 800.0, b.TotalPrice)
}
