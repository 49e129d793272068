package referralservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=referralservice.go -destination=mock_referralservice.go -package=referralservice

type Repo interface {
	Create(ctx context.Context, referral *domain.Referral) (bool, error)
	FindReferrer(ctx context.Context, referredID int64) (int64, error)
	CreateBonus(ctx context.Context, bonus *domain.ReferralBonus) error
	ListBonuses(ctx context.Context, referrerID int64) ([]domain.ReferralBonus, error)
}

var ErrSelfReferral = errors.New("user can't refer themselves")

type Service struct {
	repo  Repo
	rules config.Referral
}

func New(repo Repo, rules config.Referral) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
	}
}

// Register links referredID to referrerID. A user keeps the first referrer
// they came with; false means a link already existed.
func (s *Service) Register(ctx context.Context, referrerID, referredID int64) (bool, error) {
	if referrerID == referredID {
		return false, ErrSelfReferral
	}
	created, err := s.repo.Create(ctx, &domain.Referral{ReferrerID: referrerID, ReferredID: referredID})
	if err != nil {
		zap.L().Error("can't save referral", zap.Error(err))
		return false, err
	}
	if created {
		zap.L().Info("referral registered", zap.Int64("referrer_id", referrerID), zap.Int64("referred_id", referredID))
	}
	return created, nil
}

// Grant credits the referrer of the order's author. It returns nil when the
// author has no referrer or the order does not exceed the minimum amount.
func (s *Service) Grant(ctx context.Context, order *domain.Order) (*domain.ReferralBonus, error) {
	if order.Price <= s.rules.MinOrderAmount {
		return nil, nil
	}
	referrerID, err := s.repo.FindReferrer(ctx, order.UserID)
	if err != nil {
		zap.L().Error("can't find referrer", zap.Int64("user_id", order.UserID), zap.Error(err))
		return nil, err
	}
	if referrerID == 0 {
		return nil, nil
	}

	amount := order.Price * s.rules.BonusPercent / 100
	if amount <= 0 {
		return nil, nil
	}
	bonus := &domain.ReferralBonus{
		ReferrerID: referrerID,
		ReferredID: order.UserID,
		OrderID:    order.ID,
		Amount:     amount,
	}
	if err := s.repo.CreateBonus(ctx, bonus); err != nil {
		zap.L().Error("can't save referral bonus", zap.String("order_id", order.ID), zap.Error(err))
		return nil, err
	}
	return bonus, nil
}

func (s *Service) ListBonuses(ctx context.Context, referrerID int64) ([]domain.ReferralBonus, error) {
	bonuses, err := s.repo.ListBonuses(ctx, referrerID)
	if err != nil {
		zap.L().Error("failed to get referral bonuses", zap.Error(err))
		return nil, err
	}
	return bonuses, nil
}
