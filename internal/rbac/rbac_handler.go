package rbac

import (
	"net/http"
	"strings"

	"github.com/businessregulatoryreviewagency/brra/internal/domain"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce is a diagnostic endpoint for checking what a role may do.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	req.Role = strings.TrimSpace(req.Role)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.Role == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "role, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		ActorID:  req.ActorID,
		Role:     req.Role,
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Allowed: allowed,
	}, nil)
}
