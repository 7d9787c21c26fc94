package bookings

import (
	"context"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/pkg/airtable"
)

// Repository writes the Bookings table.
type Repository struct {
	client *airtable.Client
	table  string
	logger *zap.Logger
}

// NewRepository creates a booking repository over table.
func NewRepository(client *airtable.Client, table string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, table: table, logger: logger}
}

// Create inserts b and returns the stored record. Once the row exists a
// response that cannot be decoded is logged and b is returned with its id.
func (r *Repository) Create(ctx context.Context, b Booking) (*Booking, error) {
	rec, err := r.client.Create(ctx, r.table, b)
	if err != nil {
		return nil, action.Upstream("airtable", "create booking", err)
	}
	out := b
	if err := rec.Decode(&out); err != nil {
		r.logger.Warn("decode created booking failed", zap.String("record_id", rec.ID), zap.Error(err))
		out = b
	}
	out.ID = rec.ID
	r.logger.Info("booking created", zap.String("record_id", rec.ID), zap.String("room_id", out.RoomID), zap.String("time_slot", out.TimeSlot))
	return &out, nil
}
