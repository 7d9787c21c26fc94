package emailtemplates

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/pkg/response"
)

// Lister lists every template.
type Lister interface {
	ListAll(ctx context.Context) ([]Template, error)
}

// Handler serves the staff template table.
type Handler struct {
	repo   Lister
	logger *zap.Logger
}

// NewHandler creates a templates handler.
func NewHandler(repo Lister, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /templates.
func (h *Handler) List(c *gin.Context) {
	ts, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list templates failed", zap.Error(err))
		if response.WantsJSON(c) {
			response.APIError(c, http.StatusBadGateway, "ไม่สามารถดึงข้อมูล Template ได้", err.Error())
			return
		}
		response.HTML(c, http.StatusBadGateway, "error.html", gin.H{
			"title":   "Error",
			"message": "ไม่สามารถดึงข้อมูล Template ได้",
		})
		return
	}
	if response.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"templates": ts})
		return
	}
	response.HTML(c, http.StatusOK, "templates.html", gin.H{"templates": ts})
}
