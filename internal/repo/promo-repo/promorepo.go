package promorepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.PromoRecord, error) {
	query := `
        SELECT code, discount_type, discount_value, usage_limit, used_count,
            COALESCE(expires_at, '0001-01-01 00:00:00+00'::timestamptz),
            is_personal, personal_user_id, min_order_amount, created_at
        FROM promos
        WHERE code = $1
    `
	var (
		promo        domain.PromoRecord
		discountType string
	)
	err := r.db.QueryRow(ctx, query, code).Scan(
		&promo.Code, &discountType, &promo.DiscountValue, &promo.UsageLimit, &promo.UsedCount,
		&promo.ExpiresAt, &promo.IsPersonal, &promo.PersonalUserID, &promo.MinOrderAmount, &promo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get promo", zap.Error(err))
		return nil, err
	}
	promo.DiscountType = domain.DiscountType(discountType)
	if promo.ExpiresAt.UTC().Year() <= 1 {
		promo.ExpiresAt = time.Time{}
	}
	return &promo, nil
}

// Apply consumes one use of the code and records who used it. The guarded
// increment fails with ErrPromoExhausted once the limit is reached.
func (r *Repository) Apply(ctx context.Context, usage *domain.PromoUsage) error {
	increment := `
        UPDATE promos
        SET used_count = used_count + 1
        WHERE code = $1 AND (usage_limit = 0 OR used_count < usage_limit)
    `
	insertUsage := `
        INSERT INTO promo_usages (code, user_id, order_id, discount)
        VALUES ($1, $2, $3, $4)
        RETURNING id, used_at
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, increment, usage.Code)
		if err != nil {
			zap.L().Error("failed to increment promo usage", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrPromoExhausted
		}
		err = r.db.QueryRow(ctx, insertUsage, usage.Code, usage.UserID, usage.OrderID, usage.Discount).
			Scan(&usage.ID, &usage.UsedAt)
		if err != nil {
			zap.L().Error("failed to save promo usage", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) Create(ctx context.Context, promo *domain.PromoRecord) error {
	query := `
        INSERT INTO promos (code, discount_type, discount_value, usage_limit, expires_at,
            is_personal, personal_user_id, min_order_amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (code) DO NOTHING
        RETURNING created_at
    `
	var expiresAt any
	if !promo.ExpiresAt.IsZero() {
		expiresAt = promo.ExpiresAt
	}
	err := r.db.QueryRow(ctx, query,
		promo.Code, string(promo.DiscountType), promo.DiscountValue, promo.UsageLimit, expiresAt,
		promo.IsPersonal, promo.PersonalUserID, promo.MinOrderAmount,
	).Scan(&promo.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrPromoExists
	}
	if err != nil {
		zap.L().Error("failed to create promo", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListUsages(ctx context.Context, code string) ([]domain.PromoUsage, error) {
	query := `
        SELECT id, code, user_id, order_id, discount, used_at
        FROM promo_usages
        WHERE code = $1
        ORDER BY used_at DESC
    `
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		zap.L().Error("failed to get promo usages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var usages []domain.PromoUsage
	for rows.Next() {
		var u domain.PromoUsage
		if err := rows.Scan(&u.ID, &u.Code, &u.UserID, &u.OrderID, &u.Discount, &u.UsedAt); err != nil {
			zap.L().Error("failed to scan promo usage", zap.Error(err))
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}
