package handler

import (
	"net/http"

	"nightingale/internal/delivery/http/middleware"
	"nightingale/internal/usecase"
	"nightingale/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// GetMyActivity lists the caller's recent audited actions, newest first.
func (h *AuditLogHandler) GetMyActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	activity, err := h.auditLogUsecase.GetUserActivity(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get activity")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Activity retrieved successfully", activity, &response.Meta{
		Total: activity.Total,
		Limit: usecase.ActivityLimit,
	})
}
