package dto

import "time"

type ChangeStatusRequestDTO struct {
	Status string `json:"status" example:"confirmed"`
	Note   string `json:"note,omitempty" example:"payment received"`
}

type CreatePromoRequestDTO struct {
	Code           string     `json:"code" example:"SPRING10"`
	DiscountType   string     `json:"discount_type" example:"percent"`
	DiscountValue  int64      `json:"discount_value" example:"10"`
	UsageLimit     int        `json:"usage_limit" example:"100"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty" example:"2030-06-01T00:00:00Z"`
	PersonalUserID int64      `json:"personal_user_id,omitempty" example:"7"`
	MinOrderAmount int64      `json:"min_order_amount" example:"1000"`
}

type PromoResponseDTO struct {
	Code           string `json:"code" example:"SPRING10"`
	DiscountType   string `json:"discount_type" example:"percent"`
	DiscountValue  int64  `json:"discount_value" example:"10"`
	UsageLimit     int    `json:"usage_limit" example:"100"`
	UsedCount      int    `json:"used_count" example:"0"`
	ExpiresAt      string `json:"expires_at,omitempty" example:"2030-06-01T00:00:00Z"`
	PersonalUserID int64  `json:"personal_user_id,omitempty" example:"7"`
	MinOrderAmount int64  `json:"min_order_amount" example:"1000"`
}

type PromoUsageDTO struct {
	UserID   int64  `json:"user_id" example:"7"`
	OrderID  string `json:"order_id" example:"2404815702"`
	Discount int64  `json:"discount" example:"250"`
	UsedAt   string `json:"used_at" example:"2030-01-01T10:00:00Z"`
}
