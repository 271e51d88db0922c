package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/blocklist"
	"github.com/jmoiron/sqlx"
)

// Block checks sit on the token issuance path, so every query carries a
// short timeout instead of inheriting the request deadline.
const queryTimeout = 3 * time.Second

type BlocklistRepository struct {
	db *sqlx.DB
}

func NewBlocklistRepository(db *sqlx.DB) *BlocklistRepository {
	return &BlocklistRepository{db: db}
}

// Insert records a block entry. Re-blocking an email is a no-op thanks to
// the conflict clause on the unique email key.
func (r *BlocklistRepository) Insert(ctx context.Context, entry *blocklist.Entry) error {
	ctx, cancel := internal.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
INSERT INTO blocks (email, reason, created_at)
VALUES ($1, $2, now())
ON CONFLICT (email) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, entry.Email, entry.Reason); err != nil {
		return fmt.Errorf("insert block entry: %w", err)
	}

	stored, err := r.GetByEmail(ctx, entry.Email)
	if err != nil {
		return err
	}
	if stored != nil {
		*entry = *stored
	}
	return nil
}

func (r *BlocklistRepository) Exists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := internal.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM blocks WHERE email = $1)`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("block entry exists query: %w", err)
	}
	return exists, nil
}

func (r *BlocklistRepository) GetByEmail(ctx context.Context, email string) (*blocklist.Entry, error) {
	var entry blocklist.Entry
	query := `SELECT id, email, reason, created_at FROM blocks WHERE email = $1`
	if err := r.db.GetContext(ctx, &entry, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get block entry: %w", err)
	}
	return &entry, nil
}
