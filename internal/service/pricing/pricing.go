package pricing

import (
	"math"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
)

const (
	UrgentDays = 3
	SoonDays   = 7

	UrgentMultiplier = 1.5
	SoonMultiplier   = 1.25
)

// Quote is a price with the parts it was computed from.
type Quote struct {
	WorkType   config.WorkType
	Units      int
	VolumePart int64
	Multiplier float64
	Price      int64
	Discount   int64
}

func (q Quote) Subtotal() int64 {
	return q.WorkType.Base + q.VolumePart
}

func (q Quote) Final() int64 {
	return q.Price - q.Discount
}

type Calculator struct {
	catalog *config.Catalog
}

func New(catalog *config.Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Quote never fails: unknown work types fall back to the catalog's "other"
// row and an unparseable deadline gets no surcharge.
func (c *Calculator) Quote(orderType, rawVolume, rawDeadline string, promo *domain.PromoRecord, now time.Time) Quote {
	wt, _ := c.catalog.WorkType(orderType)

	units := validate.LeadingNumber(rawVolume)
	q := Quote{
		WorkType:   wt,
		Units:      units,
		VolumePart: int64(units) * wt.UnitRate(),
		Multiplier: Multiplier(rawDeadline, now),
	}
	q.Price = int64(math.Round(float64(q.Subtotal()) * q.Multiplier))
	q.Discount = Discount(q.Price, promo)
	return q
}

// Multiplier returns the urgency surcharge for the deadline.
func Multiplier(rawDeadline string, now time.Time) float64 {
	deadline, ok := validate.ParseDate(rawDeadline)
	if !ok {
		return 1.0
	}
	days := DaysUntil(deadline, now)
	switch {
	case days < UrgentDays:
		return UrgentMultiplier
	case days < SoonDays:
		return SoonMultiplier
	default:
		return 1.0
	}
}

// DaysUntil counts calendar days from the date of now to deadline.
func DaysUntil(deadline, now time.Time) int {
	return int(validate.Day(deadline).Sub(validate.Day(now)).Hours() / 24)
}

// Discount is clamped to [0, price].
func Discount(price int64, promo *domain.PromoRecord) int64 {
	if promo == nil || price <= 0 {
		return 0
	}
	var d int64
	switch promo.DiscountType {
	case domain.DiscountPercent:
		d = price * promo.DiscountValue / 100
	case domain.DiscountFixed:
		d = promo.DiscountValue
	}
	if d < 0 {
		return 0
	}
	if d > price {
		return price
	}
	return d
}
