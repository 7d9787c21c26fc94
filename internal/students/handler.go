package students

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/pkg/response"
)

// SaleOwnerRequest is the body for POST /students/sale-owner.
type SaleOwnerRequest struct {
	RecordIDs []string `form:"recordIds" json:"recordIds"`
	SaleName  string   `form:"saleName" json:"saleName"`
}

// Handler handles the student info pages and actions.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a students handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Page handles GET /create/id?refid=. Lists every student of the group.
func (h *Handler) Page(c *gin.Context) {
	h.render(c, c.Query("refid"), "", nil, nil)
}

// render lists the group. draft, when set, replaces the stored values of
// the active student so a rejected form keeps what was typed.
func (h *Handler) render(c *gin.Context, refID, activeID string, result *action.Result, draft *ProfileInput) {
	refID = strings.TrimSpace(refID)
	if refID == "" {
		response.HTML(c, http.StatusBadRequest, "error.html", gin.H{
			"title":   "Error",
			"message": "Reference ID is missing.",
		})
		return
	}
	list, err := h.svc.ListByReference(c.Request.Context(), refID)
	if err != nil {
		h.logger.Error("list students failed", zap.String("refid", refID), zap.Error(err))
		response.HTML(c, http.StatusBadGateway, "error.html", gin.H{
			"title":   "Error",
			"message": MsgSaveFailed,
		})
		return
	}
	if len(list) == 0 {
		response.HTML(c, http.StatusNotFound, "error.html", gin.H{
			"title":   "Not Found",
			"message": "ไม่พบข้อมูลสำหรับ Reference ID: " + refID,
		})
		return
	}
	status := http.StatusOK
	if result != nil && !result.Success {
		status = result.HTTPStatus()
		if draft != nil {
			list = append([]Student(nil), list...)
			for i := range list {
				if list[i].ID == activeID {
					draft.prefill(&list[i])
				}
			}
		}
	}
	response.HTML(c, status, "students.html", gin.H{
		"refid":    refID,
		"students": list,
		"activeID": activeID,
		"result":   result,
	})
}

// UpdateProfile handles POST /create/id/:id.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	var in ProfileInput
	if err := c.ShouldBind(&in); err != nil {
		h.logger.Debug("bind profile failed", zap.Error(err))
		res := action.Rejected(action.Invalid(MsgRequired))
		h.respond(c, id, in, res)
		return
	}
	res, outcome := h.svc.UpdateProfile(c.Request.Context(), id, in)
	if res.Success {
		h.logger.Info("student profile saved",
			zap.String("record_id", id),
			zap.Bool("confirmation_sent", outcome.Applied),
		)
	}
	h.respond(c, id, in, res)
}

func (h *Handler) respond(c *gin.Context, id string, in ProfileInput, res action.Result) {
	if response.WantsJSON(c) {
		c.JSON(res.HTTPStatus(), res)
		return
	}
	h.render(c, in.UUID, id, &res, &in)
}

// AssignSaleOwner handles POST /students/sale-owner.
func (h *Handler) AssignSaleOwner(c *gin.Context) {
	var req SaleOwnerRequest
	if err := c.ShouldBind(&req); err != nil {
		res := action.Rejected(action.Invalid(MsgSaleFailed))
		c.JSON(res.HTTPStatus(), res)
		return
	}
	res := h.svc.AssignSaleOwner(c.Request.Context(), req.RecordIDs, strings.TrimSpace(req.SaleName))
	c.JSON(res.HTTPStatus(), res)
}
