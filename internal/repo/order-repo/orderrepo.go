package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/pg"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const orderColumns = `id, user_id, order_type, type_label, topic, subject, deadline, volume,
        requirements, attachments, promo_code, price, discount, status, created_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
	attempts  int
	newID     func() (string, error)
}

func New(db pg.Database, txManager pg.TXManager, attempts int) *Repository {
	if attempts < 1 {
		attempts = 1
	}
	return &Repository{
		db:        db,
		txManager: txManager,
		attempts:  attempts,
		newID:     validate.NewOrderID,
	}
}

// Create assigns a random id to the order, retrying on collision, and writes
// the first history entry.
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	attachments := order.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	rawAttachments, err := json.Marshal(attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}

	insertOrder := `
        INSERT INTO orders (id, user_id, order_type, type_label, topic, subject, deadline, volume,
            requirements, attachments, promo_code, price, discount, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (id) DO NOTHING
        RETURNING created_at
    `
	insertHistory := `
        INSERT INTO order_status_history (order_id, status, note)
        VALUES ($1, $2, $3)
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		for attempt := 1; attempt <= r.attempts; attempt++ {
			id, err := r.newID()
			if err != nil {
				zap.L().Error("can't generate order id", zap.Error(err))
				return err
			}

			var createdAt time.Time
			err = r.db.QueryRow(ctx, insertOrder,
				id, order.UserID, order.OrderType, order.TypeLabel, order.Topic, order.Subject,
				order.Deadline, order.Volume, order.Requirements, string(rawAttachments),
				order.PromoCode, order.Price, order.Discount, string(order.Status),
			).Scan(&createdAt)
			if errors.Is(err, pgx.ErrNoRows) {
				zap.L().Warn("order id collision", zap.String("order_id", id), zap.Int("attempt", attempt))
				continue
			}
			if err != nil {
				zap.L().Error("can't save order", zap.Error(err))
				return err
			}

			if _, err := r.db.Exec(ctx, insertHistory, id, string(order.Status), ""); err != nil {
				zap.L().Error("can't save order history", zap.Error(err))
				return err
			}
			order.ID = id
			order.CreatedAt = createdAt
			order.UpdatedAt = createdAt
			return nil
		}
		return domain.ErrIDSpaceExhausted
	})
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE id = $1
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindHistory(ctx context.Context, id string) ([]domain.StatusEntry, error) {
	query := `
        SELECT id, order_id, status, note, created_at
        FROM order_status_history
        WHERE order_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		zap.L().Error("can't get order history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var history []domain.StatusEntry
	for rows.Next() {
		var (
			entry  domain.StatusEntry
			status string
		)
		if err := rows.Scan(&entry.ID, &entry.OrderID, &status, &entry.Note, &entry.CreatedAt); err != nil {
			zap.L().Error("can't scan history row", zap.Error(err))
			return nil, err
		}
		entry.Status = domain.Status(status)
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, userID)
}

func (r *Repository) FindByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE status = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	return r.list(ctx, query, string(status), limit)
}

// UpdateStatus moves the order from one status to another and appends a
// history entry. It fails with pgx.ErrNoRows when the order is missing or no
// longer in status from.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.Status, note string) error {
	update := `
        UPDATE orders
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3
    `
	insertHistory := `
        INSERT INTO order_status_history (order_id, status, note)
        VALUES ($1, $2, $3)
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, update, string(to), id, string(from))
		if err != nil {
			zap.L().Error("failed to update order", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("order %s in status %s: %w", id, from, pgx.ErrNoRows)
		}
		if _, err := r.db.Exec(ctx, insertHistory, id, string(to), note); err != nil {
			zap.L().Error("failed to append order history", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order       domain.Order
		attachments []byte
		status      string
	)
	err := row.Scan(
		&order.ID, &order.UserID, &order.OrderType, &order.TypeLabel, &order.Topic, &order.Subject,
		&order.Deadline, &order.Volume, &order.Requirements, &attachments, &order.PromoCode,
		&order.Price, &order.Discount, &status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Status = domain.Status(status)
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &order.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments: %w", err)
		}
	}
	return &order, nil
}
