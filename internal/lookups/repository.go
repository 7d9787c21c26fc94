package lookups

import (
	"context"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/pkg/airtable"
)

// Tables names the two lookup tables.
type Tables struct {
	Rooms        string
	BookingTypes string
}

// Repository reads rooms and booking types.
type Repository struct {
	client *airtable.Client
	tables Tables
	logger *zap.Logger
}

// NewRepository creates a lookup repository.
func NewRepository(client *airtable.Client, tables Tables, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{client: client, tables: tables, logger: logger}
}

// ListRooms returns rooms sorted by Room ID, skipping rows without id or name.
func (r *Repository) ListRooms(ctx context.Context) ([]Room, error) {
	recs, err := r.client.List(ctx, r.tables.Rooms, airtable.ListParams{
		Sort: []airtable.Sort{{Field: "Room ID", Direction: "asc"}},
	})
	if err != nil {
		return nil, action.Upstream("airtable", "list rooms", err)
	}
	rooms := make([]Room, 0, len(recs))
	for _, rec := range recs {
		var f roomFields
		if err := rec.Decode(&f); err != nil {
			r.logger.Warn("skip undecodable room", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		if room := f.room(); room.ID != "" && room.Name != "" {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

// GetRoom returns the room with Room ID id, or nil when none matches.
func (r *Repository) GetRoom(ctx context.Context, id string) (*Room, error) {
	recs, err := r.client.List(ctx, r.tables.Rooms, airtable.ListParams{
		Formula:    airtable.Eq("Room ID", id),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, action.Upstream("airtable", "get room", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	var f roomFields
	if err := recs[0].Decode(&f); err != nil {
		return nil, action.Upstream("airtable", "decode room", err)
	}
	room := f.room()
	return &room, nil
}

// ListBookingTypes returns booking types sorted by Type Name, skipping rows
// without id or name.
func (r *Repository) ListBookingTypes(ctx context.Context) ([]BookingType, error) {
	recs, err := r.client.List(ctx, r.tables.BookingTypes, airtable.ListParams{
		Sort: []airtable.Sort{{Field: "Type Name", Direction: "asc"}},
	})
	if err != nil {
		return nil, action.Upstream("airtable", "list booking types", err)
	}
	types := make([]BookingType, 0, len(recs))
	for _, rec := range recs {
		var f bookingTypeFields
		if err := rec.Decode(&f); err != nil {
			r.logger.Warn("skip undecodable booking type", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		if bt := f.bookingType(); bt.ID != "" && bt.Name != "" {
			types = append(types, bt)
		}
	}
	return types, nil
}

// GetBookingType returns the booking type with Type ID id, or nil.
func (r *Repository) GetBookingType(ctx context.Context, id string) (*BookingType, error) {
	recs, err := r.client.List(ctx, r.tables.BookingTypes, airtable.ListParams{
		Formula:    airtable.Eq("Type ID", id),
		MaxRecords: 1,
	})
	if err != nil {
		return nil, action.Upstream("airtable", "get booking type", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	var f bookingTypeFields
	if err := recs[0].Decode(&f); err != nil {
		return nil, action.Upstream("airtable", "decode booking type", err)
	}
	bt := f.bookingType()
	return &bt, nil
}
