package bookings

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/lookups"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/pkg/response"
)

// TypeLister lists the booking types offered on the details page.
type TypeLister interface {
	ListBookingTypes(ctx context.Context) ([]lookups.BookingType, error)
}

// Handler serves the booking wizard.
type Handler struct {
	svc    *Service
	types  TypeLister
	logger *zap.Logger
}

// NewHandler creates a bookings handler. types may be nil.
func NewHandler(svc *Service, types TypeLister, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, types: types, logger: logger}
}

// Index handles GET /: pick a time slot, then a free room.
func (h *Handler) Index(c *gin.Context) {
	slot := c.Query("timeSlot")
	data := gin.H{
		"slots":        TimeSlots,
		"selectedSlot": slot,
	}
	if slot != "" {
		data["rooms"] = AvailableRooms(slot)
	}
	response.HTML(c, http.StatusOK, "index.html", data)
}

// Form handles GET /booking?timeSlot=&roomId=.
func (h *Handler) Form(c *gin.Context) {
	in := Input{
		TimeSlot: c.Query("timeSlot"),
		RoomID:   c.Query("roomId"),
	}
	if in.TimeSlot == "" || in.RoomID == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	in.RoomName = RoomName(in.RoomID)
	in.BookingType = c.Query("bookingType")
	h.render(c, http.StatusOK, in, nil)
}

// Submit handles POST /booking (multipart, receipt image in "receipt").
func (h *Handler) Submit(c *gin.Context) {
	var in Input
	if err := c.ShouldBind(&in); err != nil {
		h.respond(c, in, action.Rejected(action.Invalid(MsgIncomplete)))
		return
	}
	if fh, err := c.FormFile("receipt"); err == nil {
		data, err := media.ReadForm(fh)
		if err != nil {
			h.logger.Warn("read receipt failed", zap.String("filename", fh.Filename), zap.Error(err))
		} else if len(data) > 0 {
			in.Receipt = &Receipt{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}
		}
	}
	res, _ := h.svc.Submit(c.Request.Context(), in)
	h.respond(c, in, res)
}

func (h *Handler) respond(c *gin.Context, in Input, res action.Result) {
	if response.WantsJSON(c) {
		c.JSON(res.HTTPStatus(), res)
		return
	}
	h.render(c, res.HTTPStatus(), in, &res)
}

func (h *Handler) render(c *gin.Context, status int, in Input, res *action.Result) {
	ctx := c.Request.Context()
	var types []lookups.BookingType
	if h.types != nil {
		var err error
		if types, err = h.types.ListBookingTypes(ctx); err != nil {
			h.logger.Warn("list booking types failed", zap.Error(err))
		}
	}
	for _, bt := range types {
		if bt.ID == in.BookingType && in.BookingTypeName == "" {
			in.BookingTypeName = bt.Name
		}
	}
	response.HTML(c, status, "booking.html", gin.H{
		"form":         in,
		"quote":        h.svc.Quote(ctx, in),
		"bookingTypes": types,
		"result":       res,
	})
}
