package referralrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores the pair unless the referred user already has a referrer.
func (r *Repository) Create(ctx context.Context, referral *domain.Referral) (bool, error) {
	query := `
        INSERT INTO referrals (referrer_id, referred_id)
        VALUES ($1, $2)
        ON CONFLICT (referred_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, referral.ReferrerID, referral.ReferredID)
	if err != nil {
		zap.L().Error("can't save referral", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindReferrer returns 0 when the user came without a referral link.
func (r *Repository) FindReferrer(ctx context.Context, referredID int64) (int64, error) {
	query := `
        SELECT referrer_id
        FROM referrals
        WHERE referred_id = $1
    `
	var referrerID int64
	err := r.db.QueryRow(ctx, query, referredID).Scan(&referrerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		zap.L().Error("can't find referrer", zap.Error(err))
		return 0, err
	}
	return referrerID, nil
}

func (r *Repository) CreateBonus(ctx context.Context, bonus *domain.ReferralBonus) error {
	query := `
        INSERT INTO referral_bonuses (referrer_id, referred_id, order_id, amount)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, bonus.ReferrerID, bonus.ReferredID, bonus.OrderID, bonus.Amount).
		Scan(&bonus.ID, &bonus.CreatedAt)
	if err != nil {
		zap.L().Error("can't save referral bonus", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListBonuses(ctx context.Context, referrerID int64) ([]domain.ReferralBonus, error) {
	query := `
        SELECT id, referrer_id, referred_id, order_id, amount, created_at
        FROM referral_bonuses
        WHERE referrer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, referrerID)
	if err != nil {
		zap.L().Error("can't get referral bonuses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bonuses []domain.ReferralBonus
	for rows.Next() {
		var b domain.ReferralBonus
		if err := rows.Scan(&b.ID, &b.ReferrerID, &b.ReferredID, &b.OrderID, &b.Amount, &b.CreatedAt); err != nil {
			zap.L().Error("can't scan referral bonus", zap.Error(err))
			return nil, err
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, rows.Err()
}
