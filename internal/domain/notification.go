package domain

import "time"

type NotificationType string

const (
	NotificationShiftApproved NotificationType = "shift_approved"
	NotificationShiftRejected NotificationType = "shift_rejected"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userID"`
	ShiftID   *int64           `json:"shiftID"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
