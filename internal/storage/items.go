// internal/storage/items.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bibliotheca/internal/lending"
)

// ItemStore is the postgres implementation of lending.ItemStore.
type ItemStore struct {
	db     *sqlx.DB
	tracer trace.Tracer
}

func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{
		db:     db,
		tracer: otel.Tracer("bibliotheca/storage"),
	}
}

// GetItem returns the item, or nil when it does not exist.
func (s *ItemStore) GetItem(ctx context.Context, id uuid.UUID) (*lending.Item, error) {
	const query = `
		SELECT id, title, author, availability
		FROM items
		WHERE id = $1
	`
	item := &lending.Item{}
	err := s.db.GetContext(ctx, item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Reserve atomically flips an available item to borrowed. It reports false
// when the item is missing or in any other availability state, so the
// check and the write cannot be interleaved by a concurrent borrow.
func (s *ItemStore) Reserve(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.items.reserve",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	const query = `
		UPDATE items
		SET availability = $1, updated_at = NOW()
		WHERE id = $2 AND availability = $3
	`
	res, err := s.db.ExecContext(ctx, query, lending.AvailabilityBorrowed, id, lending.AvailabilityAvailable)
	if err != nil {
		return false, fmt.Errorf("failed to reserve item: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	span.SetAttributes(attribute.Bool("item.reserved", rows > 0))
	return rows > 0, nil
}

// SetAvailability writes the availability flag unconditionally and returns
// the number of rows changed.
func (s *ItemStore) SetAvailability(ctx context.Context, id uuid.UUID, availability string) (int64, error) {
	const query = `
		UPDATE items
		SET availability = $1, updated_at = NOW()
		WHERE id = $2
	`
	res, err := s.db.ExecContext(ctx, query, availability, id)
	if err != nil {
		return 0, fmt.Errorf("failed to set availability: %w", err)
	}
	return res.RowsAffected()
}
