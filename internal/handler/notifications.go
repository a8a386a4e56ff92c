package handler

import (
	"database/sql"
	"errors"
	"net/http"
)

const notificationLimit = 20

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.repository.GetNotifications(r.Context(), currentUserID(r), notificationLimit)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取通知成功", notifications)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "通知ID无效")
		return
	}

	if err := h.repository.MarkNotificationRead(r.Context(), currentUserID(r), id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "通知不存在")
		default:
			h.storeError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "已标记为已读", nil)
}
