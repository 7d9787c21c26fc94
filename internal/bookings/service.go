// Package bookings implements the room booking wizard: slot picker, payer
// details with a payment receipt, and the Bookings table write.
package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/lookups"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/pkg/airtable"
)

// User-facing messages.
const (
	MsgIncomplete      = "กรุณากรอกข้อมูลให้ครบถ้วน"
	MsgReceiptRequired = "กรุณาแนบรูปใบเสร็จที่ทำการชำระเงิน"
	MsgReceiptWarning  = "คำเตือน: ไม่สามารถอัปโหลดรูปใบเสร็จได้ แต่จะบันทึกข้อมูลการจองไว้"
	MsgSaved           = "บันทึกข้อมูลสำเร็จ!"
	MsgSaveFailed      = "เกิดข้อผิดพลาดในการบันทึกข้อมูล"
)

// Store creates bookings.
type Store interface {
	Create(ctx context.Context, b Booking) (*Booking, error)
}

// Pricing looks up the per-hour prices.
type Pricing interface {
	GetRoom(ctx context.Context, id string) (*lookups.Room, error)
	GetBookingType(ctx context.Context, id string) (*lookups.BookingType, error)
}

// Receipt is the uploaded payment receipt image.
type Receipt struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Input is the booking form.
type Input struct {
	FirstName       string   `form:"firstName" json:"firstName"`
	LastName        string   `form:"lastName" json:"lastName"`
	Date            string   `form:"date" json:"date"`
	BookingType     string   `form:"bookingType" json:"bookingType"`
	BookingTypeName string   `form:"bookingTypeName" json:"bookingTypeName"`
	TimeSlot        string   `form:"timeSlot" json:"timeSlot"`
	StartTime       string   `form:"startTime" json:"startTime"`
	EndTime         string   `form:"endTime" json:"endTime"`
	RoomID          string   `form:"roomId" json:"roomId"`
	RoomName        string   `form:"roomName" json:"roomName"`
	Receipt         *Receipt `form:"-" json:"-"`
}

// span returns start and end, taken from the time slot when not given.
func (in Input) span() (string, string) {
	start, end := strings.TrimSpace(in.StartTime), strings.TrimSpace(in.EndTime)
	if start != "" && end != "" {
		return start, end
	}
	if a, b, ok := strings.Cut(in.TimeSlot, "-"); ok {
		return strings.TrimSpace(a), strings.TrimSpace(b)
	}
	return start, end
}

// Quote is the server-side price of a booking.
type Quote struct {
	Hours           float64 `json:"hours"`
	RoomPrice       float64 `json:"roomPrice"`
	AdditionalPrice float64 `json:"additionalPrice"`
	Total           float64 `json:"total"`
	RoomName        string  `json:"roomName,omitempty"`
}

// Hours returns the length of start-end ("HH:MM") in hours.
func Hours(start, end string) (float64, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, fmt.Errorf("parse start %q: %w", start, err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, fmt.Errorf("parse end %q: %w", end, err)
	}
	return e.Sub(s).Hours(), nil
}

// Service implements the booking actions.
type Service struct {
	store   Store
	pricing Pricing
	media   media.Uploader
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates the booking service.
func NewService(store Store, pricing Pricing, up media.Uploader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, pricing: pricing, media: up, logger: logger, now: time.Now}
}

// Quote prices in. A room that cannot be looked up prices the booking at 0.
func (s *Service) Quote(ctx context.Context, in Input) Quote {
	var q Quote
	start, end := in.span()
	hours, err := Hours(start, end)
	if err != nil || hours <= 0 {
		s.logger.Warn("cannot compute booking hours", zap.String("time_slot", in.TimeSlot), zap.Error(err))
		return q
	}
	q.Hours = hours

	room, err := s.pricing.GetRoom(ctx, in.RoomID)
	if err != nil || room == nil {
		s.logger.Warn("room price lookup failed", zap.String("room_id", in.RoomID), zap.Error(err))
		return q
	}
	q.RoomPrice = room.PricePerHour
	q.RoomName = room.Name

	if in.BookingType != "" {
		bt, err := s.pricing.GetBookingType(ctx, in.BookingType)
		if err != nil || bt == nil {
			s.logger.Warn("booking type price lookup failed", zap.String("booking_type", in.BookingType), zap.Error(err))
		} else {
			q.AdditionalPrice = bt.AdditionalPricePerHour
		}
	}
	if q.RoomPrice > 0 {
		q.Total = hours*q.RoomPrice + hours*q.AdditionalPrice
	}
	return q
}

// Submit validates in, uploads the receipt (best-effort) and creates the
// booking. A receipt that cannot be stored downgrades to a warning.
func (s *Service) Submit(ctx context.Context, in Input) (action.Result, *Booking) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" || in.RoomID == "" || strings.TrimSpace(in.TimeSlot) == "" {
		return action.Rejected(action.Invalid(MsgIncomplete)), nil
	}
	if in.Receipt == nil || len(in.Receipt.Data) == 0 {
		return action.Rejected(action.Invalid(MsgReceiptRequired)), nil
	}

	quote := s.Quote(ctx, in)
	start, end := in.span()
	b := Booking{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Date:            in.Date,
		BookingType:     in.BookingType,
		BookingTypeName: in.BookingTypeName,
		TimeSlot:        in.TimeSlot,
		StartTime:       start,
		EndTime:         end,
		RoomID:          in.RoomID,
		RoomName:        in.RoomName,
		TotalPrice:      quote.Total,
		Status:          StatusPending,
		CreatedAt:       s.now().UTC().Format(time.RFC3339),
	}
	if b.RoomName == "" {
		b.RoomName = RoomName(in.RoomID)
	}
	if b.RoomName == "" {
		b.RoomName = quote.RoomName
	}

	var warning string
	url, err := s.uploadReceipt(ctx, in.Receipt)
	if err != nil {
		s.logger.Warn("receipt upload failed, saving booking without it", zap.String("room_id", in.RoomID), zap.Error(err))
		warning = MsgReceiptWarning
	} else {
		b.Receipt = append(b.Receipt, airtable.Attachment{URL: url, Filename: in.Receipt.Filename})
	}

	created, err := s.store.Create(ctx, b)
	if err != nil {
		s.logger.Error("create booking failed", zap.String("room_id", in.RoomID), zap.String("time_slot", in.TimeSlot), zap.Error(err))
		return action.Failed(err, MsgSaveFailed), nil
	}
	res := action.OK(MsgSaved)
	res.Warning = warning
	return res, created
}

func (s *Service) uploadReceipt(ctx context.Context, r *Receipt) (string, error) {
	if s.media == nil {
		return "", media.ErrNoUploader
	}
	return s.media.Upload(ctx, media.File{
		Folder:       media.FolderSlips,
		Filename:     r.Filename,
		ContentType:  r.ContentType,
		ResourceType: media.ResourceImage,
		Data:         r.Data,
		Shrink:       true,
	})
}
