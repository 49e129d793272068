package orderservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice

type Repo interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindHistory(ctx context.Context, id string) ([]domain.StatusEntry, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.Status, note string) error
}

type PromoApplier interface {
	Apply(ctx context.Context, usage *domain.PromoUsage) error
}

type BonusGranter interface {
	Grant(ctx context.Context, order *domain.Order) (*domain.ReferralBonus, error)
}

type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

type Service struct {
	repo      Repo
	promos    PromoApplier
	bonuses   BonusGranter
	txManager pg.TXManager
	publisher Publisher
}

func New(repo Repo, promos PromoApplier, bonuses BonusGranter, txManager pg.TXManager, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		promos:    promos,
		bonuses:   bonuses,
		txManager: txManager,
		publisher: publisher,
	}
}

// Commit stores the order, records the promo usage and the referral bonus in
// one transaction. Nothing is kept when any step fails.
func (s *Service) Commit(ctx context.Context, order *domain.Order) error {
	var bonus *domain.ReferralBonus
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, order); err != nil {
			return err
		}
		if order.PromoCode != "" {
			usage := &domain.PromoUsage{
				Code:     order.PromoCode,
				UserID:   order.UserID,
				OrderID:  order.ID,
				Discount: order.Discount,
			}
			if err := s.promos.Apply(ctx, usage); err != nil {
				return err
			}
		}
		var err error
		bonus, err = s.bonuses.Grant(ctx, order)
		return err
	})
	if err != nil {
		order.ID = ""
		zap.L().Error("can't commit order", zap.Int64("user_id", order.UserID), zap.Error(err))
		return err
	}

	s.publish(ctx, domain.EventOrderCreated, order.ID, order)
	if bonus != nil {
		s.publish(ctx, domain.EventReferralBonusGranted, order.ID, bonus)
	}
	return nil
}

// Get returns the order with its status history.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	history, err := s.repo.FindHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	order.History = history
	return order, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.FindByStatus(ctx, status, limit)
}

// ChangeStatus moves the order along the status graph and notifies
// subscribers.
func (s *Service) ChangeStatus(ctx context.Context, id string, to domain.Status, note string) (*domain.Order, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	from := order.Status
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, from, to, note); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatusConflict
		}
		return nil, err
	}
	order.Status = to
	zap.L().Info("order status changed", zap.String("order_id", id), zap.String("from", string(from)), zap.String("to", string(to)))

	s.publish(ctx, domain.EventOrderStatusChanged, id, domain.StatusChange{
		OrderID: id,
		UserID:  order.UserID,
		From:    from,
		To:      to,
		Note:    note,
	})
	return order, nil
}

func (s *Service) publish(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, eventType, key, payload); err != nil {
		zap.L().Warn("can't publish event", zap.String("event", eventType), zap.String("key", key), zap.Error(err))
	}
}
