package intake

import (
	"errors"
	"fmt"

	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
)

var (
	ErrRateLimited = errors.New("rate limited")
	ErrPersistence = errors.New("order could not be saved")
)

// ValidationError is a field value the user has to correct.
type ValidationError struct {
	Field  Step
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ErrorCode is a stable machine-readable code for a reply error.
func ErrorCode(err error) string {
	var (
		validationErr *ValidationError
		promoErr      *promoservice.PromoError
		attachmentErr *validate.AttachmentError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &promoErr):
		return "promo_" + promoErr.Reason
	case errors.As(err, &attachmentErr):
		return "attachment_" + attachmentErr.Reason
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}
