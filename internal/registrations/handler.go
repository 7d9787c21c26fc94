package registrations

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/pkg/response"
)

// PayerRequest is the body for POST /registrations/:uuid/payer.
type PayerRequest struct {
	PayerName string `json:"payerName" form:"payer_name"`
}

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// UploadSlips handles POST /registrations/:uuid/slips (multipart, field "slips").
func (h *Handler) UploadSlips(c *gin.Context) {
	uuid := c.Param("uuid")
	var slips []Slip
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["slips"] {
			data, err := media.ReadForm(fh)
			if err != nil {
				h.logger.Warn("read slip failed", zap.String("filename", fh.Filename), zap.Error(err))
				continue
			}
			slips = append(slips, Slip{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data})
		}
	}
	h.respond(c, uuid, h.svc.UploadSlips(c.Request.Context(), uuid, slips))
}

// UpdatePayer handles POST /registrations/:uuid/payer.
func (h *Handler) UpdatePayer(c *gin.Context) {
	uuid := c.Param("uuid")
	var req PayerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respond(c, uuid, action.Rejected(action.Invalid(MsgPayerRequired)))
		return
	}
	h.respond(c, uuid, h.svc.UpdatePayerName(c.Request.Context(), uuid, req.PayerName))
}

// respond answers JSON callers with the result and sends form posts back
// to the student page.
func (h *Handler) respond(c *gin.Context, uuid string, res action.Result) {
	if response.WantsJSON(c) {
		c.JSON(res.HTTPStatus(), res)
		return
	}
	if !res.Success {
		response.HTML(c, res.HTTPStatus(), "error.html", gin.H{
			"title":   "ไม่สำเร็จ",
			"message": res.Message,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/create/id?refid="+url.QueryEscape(uuid))
}
