package domain

import "time"

const (
	EventOrderCreated         = "order.created"
	EventOrderStatusChanged   = "order.status_changed"
	EventReferralBonusGranted = "referral.bonus_granted"
	EventSupportMessage       = "support.message"
	EventFeedbackSubmitted    = "feedback.submitted"
)

type StatusChange struct {
	OrderID string `json:"order_id"`
	UserID  int64  `json:"user_id"`
	From    Status `json:"from"`
	To      Status `json:"to"`
	Note    string `json:"note,omitempty"`
}

// UserMessage is a support request or feedback forwarded to the staff.
type UserMessage struct {
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Step      string    `json:"step,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
