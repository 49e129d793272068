package domain

import "time"

type Order struct {
	ID           string        `db:"id" json:"id"`
	UserID       int64         `db:"user_id" json:"user_id"`
	OrderType    string        `db:"order_type" json:"order_type"`
	TypeLabel    string        `db:"type_label" json:"type_label"`
	Topic        string        `db:"topic" json:"topic"`
	Subject      string        `db:"subject" json:"subject"`
	Deadline     time.Time     `db:"deadline" json:"deadline"`
	Volume       int           `db:"volume" json:"volume"`
	Requirements string        `db:"requirements" json:"requirements"`
	Attachments  []Attachment  `db:"attachments" json:"attachments"`
	PromoCode    string        `db:"promo_code" json:"promo_code,omitempty"`
	Price        int64         `db:"price" json:"price"`
	Discount     int64         `db:"discount" json:"discount"`
	Status       Status        `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
	History      []StatusEntry `db:"-" json:"history,omitempty"`
}

type StatusEntry struct {
	ID        int64     `db:"id" json:"-"`
	OrderID   string    `db:"order_id" json:"-"`
	Status    Status    `db:"status" json:"status"`
	Note      string    `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Attachment references a file already held by the messaging gateway.
type Attachment struct {
	FileID      string `json:"file_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// PromoRecord is a promo code. UsageLimit 0 means unlimited, zero ExpiresAt
// means the code never expires.
type PromoRecord struct {
	Code           string       `db:"code" json:"code"`
	DiscountType   DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue  int64        `db:"discount_value" json:"discount_value"`
	UsageLimit     int          `db:"usage_limit" json:"usage_limit"`
	UsedCount      int          `db:"used_count" json:"used_count"`
	ExpiresAt      time.Time    `db:"expires_at" json:"expires_at,omitempty"`
	IsPersonal     bool         `db:"is_personal" json:"is_personal"`
	PersonalUserID int64        `db:"personal_user_id" json:"personal_user_id,omitempty"`
	MinOrderAmount int64        `db:"min_order_amount" json:"min_order_amount"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

type PromoUsage struct {
	ID       int64     `db:"id" json:"id"`
	Code     string    `db:"code" json:"code"`
	UserID   int64     `db:"user_id" json:"user_id"`
	OrderID  string    `db:"order_id" json:"order_id"`
	Discount int64     `db:"discount" json:"discount"`
	UsedAt   time.Time `db:"used_at" json:"used_at"`
}

type Referral struct {
	ID         int64     `db:"id"`
	ReferrerID int64     `db:"referrer_id"`
	ReferredID int64     `db:"referred_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type ReferralBonus struct {
	ID         int64     `db:"id" json:"id"`
	ReferrerID int64     `db:"referrer_id" json:"referrer_id"`
	ReferredID int64     `db:"referred_id" json:"referred_id"`
	OrderID    string    `db:"order_id" json:"order_id"`
	Amount     int64     `db:"amount" json:"amount"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
