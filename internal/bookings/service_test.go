package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitless-club/booking/internal/lookups"
	"github.com/limitless-club/booking/internal/media"
)

type fakeStore struct {
	created []Booking
	err     error
}

func (f *fakeStore) Create(_ context.Context, b Booking) (*Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, b)
	b.ID = "recB"
	return &b, nil
}

type fakePricing struct {
	rooms map[string]lookups.Room
	types map[string]lookups.BookingType
	err   error
}

func (f *fakePricing) GetRoom(_ context.Context, id string) (*lookups.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakePricing) GetBookingType(_ context.Context, id string) (*lookups.BookingType, error) {
	if f.err != nil {
		return nil, f.err
	}
	bt, ok := f.types[id]
	if !ok {
		return nil, nil
	}
	return &bt, nil
}

type fakeUploader struct {
	err  error
	last media.File
}

func (f *fakeUploader) Name() string { return "fake" }

func (f *fakeUploader) Upload(_ context.Context, file media.File) (string, error) {
	f.last = file
	if f.err != nil {
		return "", f.err
	}
	return "https://res.example/slips/" + file.Filename, nil
}

func pricing() *fakePricing {
	return &fakePricing{
		rooms: map[string]lookups.Room{"room1": {ID: "room1", Name: "ห้องที่ 1", PricePerHour: 300}},
		types: map[string]lookups.BookingType{"band": {ID: "band", Name: "Band", AdditionalPricePerHour: 100}},
	}
}

func newTestService(store Store, p Pricing, up media.Uploader) *Service {
	svc := NewService(store, p, up, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC) }
	return svc
}

func validInput() Input {
	return Input{
		FirstName:   " Somchai ",
		LastName:    "Jaidee",
		TimeSlot:    "10:00 - 12:00",
		RoomID:      "room1",
		BookingType: "band",
		Receipt:     &Receipt{Filename: "receipt.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
	}
}

func TestHours(t *testing.T) {
	h, err := Hours("10:00", "12:30")
	require.NoError(t, err)
	assert.Equal(t, 2.5, h)

	_, err = Hours("10", "12:00")
	assert.Error(t, err)
}

func TestSubmitValidation(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{}
	svc := newTestService(store, pricing(), up)

	in := validInput()
	in.LastName = "  "
	res, b := svc.Submit(context.Background(), in)
	assert.False(t, res.Success)
	assert.Equal(t, MsgIncomplete, res.Message)
	assert.Nil(t, b)

	in = validInput()
	in.TimeSlot = ""
	res, _ = svc.Submit(context.Background(), in)
	assert.Equal(t, MsgIncomplete, res.Message)

	in = validInput()
	in.Receipt = nil
	res, _ = svc.Submit(context.Background(), in)
	assert.Equal(t, MsgReceiptRequired, res.Message)

	assert.Empty(t, store.created)
	assert.Empty(t, up.last.Filename)
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{}
	up := &fakeUploader{}
	svc := newTestService(store, pricing(), up)

	res, b := svc.Submit(context.Background(), validInput())
	require.True(t, res.Success)
	assert.Equal(t, MsgSaved, res.Message)
	assert.Empty(t, res.Warning)
	require.NotNil(t, b)
	assert.Equal(t, "recB", b.ID)

	require.Len(t, store.created, 1)
	got := store.created[0]
	assert.Equal(t, "Somchai", got.FirstName)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "12:00", got.EndTime)
	assert.Equal(t, "ห้องที่ 1", got.RoomName)
	assert.Equal(t, 800.0, got.TotalPrice)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "2024-05-01T03:00:00Z", got.CreatedAt)
	require.Len(t, got.Receipt, 1)
	assert.Equal(t, "https://res.example/slips/receipt.jpg", got.Receipt[0].URL)

	assert.Equal(t, media.FolderSlips, up.last.Folder)
	assert.Equal(t, media.ResourceImage, up.last.ResourceType)
}

func TestSubmitWithUnreachableMediaStore(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, pricing(), &fakeUploader{err: errors.New("dial tcp: connection refused")})

	res, b := svc.Submit(context.Background(), validInput())
	assert.True(t, res.Success)
	assert.Equal(t, MsgReceiptWarning, res.Warning)
	require.NotNil(t, b)
	require.Len(t, store.created, 1)
	assert.Empty(t, store.created[0].Receipt)
}

func TestSubmitStoreFailure(t *testing.T) {
	svc := newTestService(&fakeStore{err: errors.New("422")}, pricing(), &fakeUploader{})
	res, b := svc.Submit(context.Background(), validInput())
	assert.False(t, res.Success)
	assert.Equal(t, MsgSaveFailed, res.Message)
	assert.Nil(t, b)
}

func TestQuote(t *testing.T) {
	svc := newTestService(&fakeStore{}, pricing(), nil)

	q := svc.Quote(context.Background(), Input{TimeSlot: "18:00 - 20:00", RoomID: "room1"})
	assert.Equal(t, 2.0, q.Hours)
	assert.Equal(t, 600.0, q.Total)

	q = svc.Quote(context.Background(), Input{StartTime: "18:00", EndTime: "19:30", TimeSlot: "x", RoomID: "room1", BookingType: "band"})
	assert.Equal(t, 1.5*300+1.5*100, q.Total)

	q = svc.Quote(context.Background(), Input{TimeSlot: "10:00 - 12:00", RoomID: "unknown"})
	assert.Zero(t, q.Total)

	failing := newTestService(&fakeStore{}, &fakePricing{err: errors.New("timeout")}, nil)
	assert.Zero(t, failing.Quote(context.Background(), validInput()).Total)
}

func TestAvailableRooms(t *testing.T) {
	assert.Equal(t, []RoomOption{{ID: "room1", Name: "ห้องที่ 1"}}, AvailableRooms("12:00 - 14:00"))
	assert.Len(t, AvailableRooms("16:00 - 18:00"), 2)
	assert.Empty(t, AvailableRooms("09:00 - 10:00"))
	assert.Equal(t, "ห้องที่ 2", RoomName("room2"))
}
