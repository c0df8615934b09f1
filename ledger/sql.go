// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/arisatria5/pilketos-smpn4/models"
)

// SQLStore keeps the ledger as a single row and implements the version
// check with a conditional UPDATE. Works against both postgres
// (lib/pq) and sqlite (modernc.org/sqlite); both accept $n
// placeholders.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Init creates the ledger table. Safe to call multiple times.
func (s *SQLStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ballot_ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			doc TEXT NOT NULL,
			version BIGINT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create ledger table: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (*models.BallotLedger, string, error) {
	var (
		raw     string
		version int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT doc, version FROM ballot_ledger WHERE id = 1
	`).Scan(&raw, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read ledger row: %w", err)
	}

	var doc models.BallotLedger
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, "", fmt.Errorf("decode ledger document: %w", err)
	}
	return &doc, strconv.FormatInt(version, 10), nil
}

func (s *SQLStore) Save(ctx context.Context, doc *models.BallotLedger, expectedVersion string) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode ledger document: %w", err)
	}

	if expectedVersion == "" {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO ballot_ledger (id, doc, version)
			VALUES (1, $1, 1)
			ON CONFLICT DO NOTHING
		`, string(raw))
		if err != nil {
			return "", fmt.Errorf("create ledger row: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return "", fmt.Errorf("create ledger row: %w", err)
		}
		if n == 0 {
			// Someone else created the document first.
			return "", ErrConflict
		}
		return "1", nil
	}

	expected, err := strconv.ParseInt(expectedVersion, 10, 64)
	if err != nil {
		return "", fmt.Errorf("bad expected version %q: %w", expectedVersion, ErrConflict)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE ballot_ledger
		SET doc = $1, version = $2
		WHERE id = 1 AND version = $3
	`, string(raw), expected+1, expected)
	if err != nil {
		return "", fmt.Errorf("update ledger row: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("update ledger row: %w", err)
	}
	if n == 0 {
		return "", ErrConflict
	}
	return strconv.FormatInt(expected+1, 10), nil
}
