package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/pkg/errcodes"
	"gold_tracker/pkg/lox"
)

// HistoryRepository хранит историю опубликованных цен. Таблица только
// дополняется: текущий снимок по-прежнему живёт в памяти.
type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *HistoryRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr), //nolint:errorlint
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Publish записывает по строке на каждое предложение снимка.
func (r *HistoryRepository) Publish(ctx context.Context, snapshot entity.Snapshot) error {
	if len(snapshot.Offers) == 0 {
		return nil
	}

	rows := lox.Map(snapshot.Offers, func(o entity.Offer) pricePointSchema {
		return fromOffer(o, snapshot.UpdatedAt)
	})

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		const query = `
			INSERT INTO price_history (server, price_usd, offers, captured_at)
			VALUES (:server, :price_usd, :offers, :captured_at)`

		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert price history")
		}

		return nil
	})
}

// ListByServer возвращает последние limit точек сервера, новые первыми.
func (r *HistoryRepository) ListByServer(ctx context.Context, server string, limit int) ([]entity.PricePoint, error) {
	const query = `
		SELECT server, price_usd, offers, captured_at
		FROM price_history
		WHERE server = $1
		ORDER BY captured_at DESC, id DESC
		LIMIT $2`

	var rows []pricePointSchema
	if err := r.db.SelectContext(ctx, &rows, query, server, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list price history")
	}

	return lox.Map(rows, pricePointSchema.toDomain), nil
}
