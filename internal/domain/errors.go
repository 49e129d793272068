package domain

import "errors"

var (
	ErrIDSpaceExhausted = errors.New("no free order id after retries")
	ErrPromoExhausted   = errors.New("promo usage limit reached")
	ErrPromoExists      = errors.New("promo already exists")
)
