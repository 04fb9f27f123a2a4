package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/will1001/flashcard-japan/internal/domain/card"
)

// SQLStore persists cards and quiz results. Queries use $N placeholders,
// which both the sqlite and the pgx drivers accept.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Driver() Driver {
	return s.driver
}

const cardColumns = "id, term, reading, romanized, translation_primary, translation_secondary, tier"

const upsertCard = `
INSERT INTO cards (` + cardColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    term = EXCLUDED.term,
    reading = EXCLUDED.reading,
    romanized = EXCLUDED.romanized,
    translation_primary = EXCLUDED.translation_primary,
    translation_secondary = EXCLUDED.translation_secondary,
    tier = EXCLUDED.tier`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

// ============================================================================
// Cards
// ============================================================================

// SaveCard inserts c or replaces the card with the same id.
func (s *SQLStore) SaveCard(ctx context.Context, c card.Card) error {
	return saveCard(ctx, s.db, c)
}

func saveCard(ctx context.Context, ex execer, c card.Card) error {
	_, err := ex.ExecContext(ctx, upsertCard,
		c.ID, c.Term, c.Reading, c.Romanized,
		c.TranslationPrimary, c.TranslationSecondary, string(c.Tier),
	)
	return err
}

// insertNextCard assigns the id in the same statement that writes the row.
// A concurrent writer that picked the same id fails on the primary key
// instead of overwriting the row.
const insertNextCard = `
INSERT INTO cards (` + cardColumns + `)
SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6 FROM cards
RETURNING id`

const createCardAttempts = 3

// CreateCard stores c under the next free id and returns it with that id.
func (s *SQLStore) CreateCard(ctx context.Context, c card.Card) (card.Card, error) {
	var err error
	for attempt := 0; attempt < createCardAttempts; attempt++ {
		err = s.db.QueryRowContext(ctx, insertNextCard,
			c.Term, c.Reading, c.Romanized,
			c.TranslationPrimary, c.TranslationSecondary, string(c.Tier),
		).Scan(&c.ID)
		if err == nil {
			return c, nil
		}
		if !isUniqueViolation(err) {
			return card.Card{}, err
		}
	}
	return card.Card{}, fmt.Errorf("create card: %w", err)
}

// isUniqueViolation reports a postgres unique_violation. SQLite runs on a
// single connection, so its writers never race for an id.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *SQLStore) GetCard(ctx context.Context, id int64) (card.Card, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+cardColumns+" FROM cards WHERE id = $1", id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, ErrNotFound
	}
	if err != nil {
		return card.Card{}, err
	}
	return c, nil
}

// ListCards returns the whole catalog ordered by id.
func (s *SQLStore) ListCards(ctx context.Context) ([]card.Card, error) {
	return s.queryCards(ctx, "SELECT "+cardColumns+" FROM cards ORDER BY id")
}

// ListCardsByTier returns the cards of one tier; card.TierAll lists everything.
func (s *SQLStore) ListCardsByTier(ctx context.Context, tier card.Tier) ([]card.Card, error) {
	if tier == card.TierAll {
		return s.ListCards(ctx)
	}
	return s.queryCards(ctx, "SELECT "+cardColumns+" FROM cards WHERE tier = $1 ORDER BY id", string(tier))
}

func (s *SQLStore) DeleteCard(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE id = $1", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ImportCards upserts all cards in one transaction.
func (s *SQLStore) ImportCards(ctx context.Context, cards []card.Card) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, c := range cards {
		if err := saveCard(ctx, tx, c); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(cards), nil
}

func (s *SQLStore) queryCards(ctx context.Context, query string, args ...any) ([]card.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []card.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func scanCard(row scanner) (card.Card, error) {
	var c card.Card
	var tier string
	err := row.Scan(&c.ID, &c.Term, &c.Reading, &c.Romanized, &c.TranslationPrimary, &c.TranslationSecondary, &tier)
	c.Tier = card.Tier(tier)
	return c, err
}
