package promoservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
	"go.uber.org/zap"
)

//go:generate mockgen -source=promoservice.go -destination=mock_promoservice.go -package=promoservice

type Repo interface {
	FindByCode(ctx context.Context, code string) (*domain.PromoRecord, error)
	Apply(ctx context.Context, usage *domain.PromoUsage) error
	Create(ctx context.Context, promo *domain.PromoRecord) error
	ListUsages(ctx context.Context, code string) ([]domain.PromoUsage, error)
}

const (
	ReasonNotFound     = "not_found"
	ReasonExpired      = "expired"
	ReasonExhausted    = "exhausted"
	ReasonWrongUser    = "wrong_user"
	ReasonAmountTooLow = "amount_too_low"
)

var ErrInvalidPromo = errors.New("invalid promo")

// PromoError explains why a code gives no discount.
type PromoError struct {
	Code   string
	Reason string
}

func (e *PromoError) Error() string {
	return fmt.Sprintf("promo %s: %s", e.Code, e.Reason)
}

// Message is the text shown to the user.
func (e *PromoError) Message() string {
	switch e.Reason {
	case ReasonNotFound:
		return "Promo code not found"
	case ReasonExpired:
		return "Promo code has expired"
	case ReasonExhausted:
		return "Promo code usage limit is reached"
	case ReasonWrongUser:
		return "This promo code belongs to another user"
	case ReasonAmountTooLow:
		return "Order amount is too low for this promo code"
	default:
		return "Promo code cannot be applied"
	}
}

type Service struct {
	repo Repo
	now  func() time.Time
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Validate checks, in order: existence, expiry, usage limit, owner and
// minimum order amount.
func Validate(promo *domain.PromoRecord, userID, amount int64, now time.Time) error {
	if promo == nil {
		return &PromoError{Reason: ReasonNotFound}
	}
	fail := func(reason string) error {
		return &PromoError{Code: promo.Code, Reason: reason}
	}
	if !promo.ExpiresAt.IsZero() && now.After(promo.ExpiresAt) {
		return fail(ReasonExpired)
	}
	if promo.UsageLimit > 0 && promo.UsedCount >= promo.UsageLimit {
		return fail(ReasonExhausted)
	}
	if promo.IsPersonal && promo.PersonalUserID != userID {
		return fail(ReasonWrongUser)
	}
	if amount < promo.MinOrderAmount {
		return fail(ReasonAmountTooLow)
	}
	return nil
}

// Check loads the code and validates it for the user and amount. Store
// failures are returned as is; every other failure is a *PromoError.
func (s *Service) Check(ctx context.Context, code string, userID, amount int64) (*domain.PromoRecord, error) {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		zap.L().Error("can't load promo", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if err := Validate(promo, userID, amount, s.now()); err != nil {
		var promoErr *PromoError
		if errors.As(err, &promoErr) && promoErr.Code == "" {
			promoErr.Code = code
		}
		zap.L().Info("promo rejected", zap.String("code", code), zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return promo, nil
}

func (s *Service) Apply(ctx context.Context, usage *domain.PromoUsage) error {
	if err := s.repo.Apply(ctx, usage); err != nil {
		if errors.Is(err, domain.ErrPromoExhausted) {
			zap.L().Info("promo exhausted on apply", zap.String("code", usage.Code))
		}
		return err
	}
	return nil
}

func (s *Service) Create(ctx context.Context, promo *domain.PromoRecord) error {
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if promo.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidPromo)
	}
	if res := validate.PromoCode(promo.Code); !res.OK() {
		return fmt.Errorf("%w: %s", ErrInvalidPromo, res.Reason)
	}
	switch promo.DiscountType {
	case domain.DiscountPercent:
		if promo.DiscountValue < 1 || promo.DiscountValue > 100 {
			return fmt.Errorf("%w: percent must be in [1, 100]", ErrInvalidPromo)
		}
	case domain.DiscountFixed:
		if promo.DiscountValue < 1 {
			return fmt.Errorf("%w: fixed discount must be positive", ErrInvalidPromo)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidPromo, promo.DiscountType)
	}
	if promo.UsageLimit < 0 || promo.MinOrderAmount < 0 {
		return fmt.Errorf("%w: negative limits", ErrInvalidPromo)
	}
	if promo.IsPersonal && promo.PersonalUserID == 0 {
		return fmt.Errorf("%w: personal promo needs a user", ErrInvalidPromo)
	}
	promo.UsedCount = 0

	if err := s.repo.Create(ctx, promo); err != nil {
		return err
	}
	zap.L().Info("promo created", zap.String("code", promo.Code))
	return nil
}

func (s *Service) ListUsages(ctx context.Context, code string) ([]domain.PromoUsage, error) {
	usages, err := s.repo.ListUsages(ctx, strings.ToUpper(code))
	if err != nil {
		zap.L().Error("failed to list promo usages", zap.Error(err))
		return nil, err
	}
	return usages, nil
}
