package dto

import (
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
)

type StatusEntryDTO struct {
	Status    string `json:"status" example:"pending"`
	Note      string `json:"note,omitempty" example:"payment received"`
	CreatedAt string `json:"created_at" example:"2030-01-01T10:00:00Z"`
}

type OrderResponseDTO struct {
	ID           string           `json:"id" example:"2404815702"`
	UserID       int64            `json:"user_id" example:"7"`
	OrderType    string           `json:"order_type" example:"coursework"`
	TypeLabel    string           `json:"type_label" example:"Курсова робота"`
	Topic        string           `json:"topic" example:"Numerical methods"`
	Subject      string           `json:"subject" example:"Math"`
	Deadline     string           `json:"deadline" example:"2030-01-10"`
	Volume       int              `json:"volume" example:"20"`
	Requirements string           `json:"requirements,omitempty"`
	Files        int              `json:"files" example:"2"`
	PromoCode    string           `json:"promo_code,omitempty" example:"SPRING10"`
	Price        int64            `json:"price" example:"2250"`
	Discount     int64            `json:"discount" example:"250"`
	Status       string           `json:"status" example:"draft"`
	CreatedAt    string           `json:"created_at" example:"2030-01-01T10:00:00Z"`
	History      []StatusEntryDTO `json:"history,omitempty"`
}

func NewOrderResponse(o domain.Order) OrderResponseDTO {
	resp := OrderResponseDTO{
		ID:           o.ID,
		UserID:       o.UserID,
		OrderType:    o.OrderType,
		TypeLabel:    o.TypeLabel,
		Topic:        o.Topic,
		Subject:      o.Subject,
		Deadline:     o.Deadline.Format(time.DateOnly),
		Volume:       o.Volume,
		Requirements: o.Requirements,
		Files:        len(o.Attachments),
		PromoCode:    o.PromoCode,
		Price:        o.Price,
		Discount:     o.Discount,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
	}
	for _, h := range o.History {
		resp.History = append(resp.History, StatusEntryDTO{
			Status:    string(h.Status),
			Note:      h.Note,
			CreatedAt: h.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
