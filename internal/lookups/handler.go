package lookups

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/pkg/airtable"
	"github.com/limitless-club/booking/pkg/response"
)

// Reader is the read side the handler needs.
type Reader interface {
	ListRooms(ctx context.Context) ([]Room, error)
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListBookingTypes(ctx context.Context) ([]BookingType, error)
}

// Handler serves the read API.
type Handler struct {
	repo   Reader
	retry  *Retry
	logger *zap.Logger
}

// NewHandler creates a lookups handler.
func NewHandler(repo Reader, retry *Retry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retry == nil {
		retry = DefaultRetry(nil, logger)
	}
	return &Handler{repo: repo, retry: retry, logger: logger}
}

// Rooms handles GET /api/rooms, or GET /api/rooms?roomId= for a single room.
func (h *Handler) Rooms(c *gin.Context) {
	ctx := c.Request.Context()
	if id := c.Query("roomId"); id != "" {
		var room *Room
		err := h.retry.Do(ctx, "rooms", func(ctx context.Context) error {
			var err error
			room, err = h.repo.GetRoom(ctx, id)
			return err
		})
		if err != nil {
			h.fail(c, "Rooms", "ไม่สามารถดึงข้อมูลห้องได้", err)
			return
		}
		if room == nil {
			response.APIError(c, http.StatusNotFound, "ไม่พบข้อมูลห้อง", "ไม่พบห้องที่มี Room ID: "+id)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": room})
		return
	}

	var rooms []Room
	err := h.retry.Do(ctx, "rooms", func(ctx context.Context) error {
		var err error
		rooms, err = h.repo.ListRooms(ctx)
		return err
	})
	if err != nil {
		h.fail(c, "Rooms", "ไม่สามารถดึงข้อมูลห้องได้", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// BookingTypes handles GET /api/booking-types.
func (h *Handler) BookingTypes(c *gin.Context) {
	var types []BookingType
	err := h.retry.Do(c.Request.Context(), "booking-types", func(ctx context.Context) error {
		var err error
		types, err = h.repo.ListBookingTypes(ctx)
		return err
	})
	if err != nil {
		h.fail(c, "Booking Types", "ไม่สามารถดึงข้อมูลประเภทการจองได้", err)
		return
	}
	h.logger.Debug("booking types listed", zap.Int("count", len(types)))
	c.JSON(http.StatusOK, gin.H{"bookingTypes": types})
}

// fail maps a record-store failure to 403, 404 or 500.
func (h *Handler) fail(c *gin.Context, table, generic string, err error) {
	h.logger.Error("read api failed", zap.String("table", table), zap.Error(err))
	switch {
	case airtable.IsNotAuthorized(err):
		response.APIError(c, http.StatusForbidden,
			"ไม่ได้รับอนุญาตให้เข้าถึง Airtable",
			"กรุณาตรวจสอบว่า Personal Access Token มีสิทธิ์เข้าถึง Base นี้")
	case airtable.IsNotFound(err):
		response.APIError(c, http.StatusNotFound,
			fmt.Sprintf("ไม่พบ Table %q", table),
			fmt.Sprintf("กรุณาตรวจสอบว่า Table %q มีอยู่ใน Airtable Base นี้", table))
	default:
		response.APIError(c, http.StatusInternalServerError, generic, err.Error())
	}
}
