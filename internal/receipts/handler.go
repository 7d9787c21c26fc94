package receipts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/media"
	"github.com/limitless-club/booking/internal/students"
	"github.com/limitless-club/booking/pkg/response"
)

// Handler serves the staff send-email page.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a receipts handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Page handles GET /send-email/:id.
func (h *Handler) Page(c *gin.Context) {
	h.render(c, c.Param("id"), nil)
}

func (h *Handler) render(c *gin.Context, id string, result *action.Result) {
	st, err := h.svc.Student(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get student failed", zap.String("record_id", id), zap.Error(err))
	}
	var list []students.Student
	if st != nil {
		list = append(list, *st)
	}
	status := http.StatusOK
	if result != nil && !result.Success {
		status = result.HTTPStatus()
	}
	response.HTML(c, status, "send_email.html", gin.H{
		"student":  st,
		"students": list,
		"result":   result,
	})
}

// Send handles POST /send-email/:id.
func (h *Handler) Send(c *gin.Context) {
	id := c.Param("id")
	var in Input
	if err := c.ShouldBind(&in); err != nil {
		h.respond(c, id, action.Rejected(action.Invalid(MsgMissingInput)))
		return
	}
	if fh, err := c.FormFile("attachment"); err == nil {
		data, err := media.ReadForm(fh)
		if err != nil {
			h.logger.Warn("read attachment failed", zap.String("filename", fh.Filename), zap.Error(err))
			h.respond(c, id, action.Rejected(action.Invalid(MsgSendFailed)))
			return
		}
		if len(data) > 0 {
			in.Attachment = &File{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}
		}
	}

	res, report := h.svc.Send(c.Request.Context(), id, in)
	h.logger.Info("receipt email action",
		zap.String("record_id", id),
		zap.Bool("success", res.Success),
		zap.Bool("document_recorded", report.Document.Applied),
		zap.Bool("status_recorded", report.Status.Applied),
	)
	h.respond(c, id, res)
}

func (h *Handler) respond(c *gin.Context, id string, res action.Result) {
	if response.WantsJSON(c) {
		c.JSON(res.HTTPStatus(), res)
		return
	}
	h.render(c, id, &res)
}
