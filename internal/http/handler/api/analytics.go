package api

import (
	"net/http"
	"strconv"

	"github.com/bornholm/worklog/internal/core/model"
)

type StatusBreakdownResponse struct {
	Breakdown map[model.TaskStatus]int64 `json:"breakdown"`
	Total     int64                      `json:"total"`
}

func (h *Handler) handleStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	var assignedTo *model.UserID

	if rawExternalID := r.URL.Query().Get("userId"); rawExternalID != "" {
		externalID, err := strconv.ParseInt(rawExternalID, 10, 64)
		if err != nil {
			encode(w, r, http.StatusBadRequest, errorResponse{Error: "invalid userId"})
			return
		}

		user, err := h.store.GetUserByExternalID(r.Context(), externalID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		userID := user.ID()
		assignedTo = &userID
	}

	breakdown, err := h.store.CountTasksByStatus(r.Context(), assignedTo)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var total int64
	for _, count := range breakdown {
		total += count
	}

	encode(w, r, http.StatusOK, StatusBreakdownResponse{
		Breakdown: breakdown,
		Total:     total,
	})
}
