// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/arisatria5/pilketos-smpn4/models"
)

var (
	boltBucket     = []byte("ledger")
	boltDocKey     = []byte("doc")
	boltVersionKey = []byte("version")
)

// BoltStore persists the ledger in a local bbolt file. Document and
// version stamp are written in one transaction, so the version check
// and the replacement are atomic.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the ledger database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ledger database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Load(ctx context.Context) (*models.BallotLedger, string, error) {
	var (
		doc     *models.BallotLedger
		version string
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		raw := b.Get(boltDocKey)
		if raw == nil {
			return ErrNotFound
		}
		doc = &models.BallotLedger{}
		if err := json.Unmarshal(raw, doc); err != nil {
			return fmt.Errorf("decode ledger document: %w", err)
		}
		version = string(b.Get(boltVersionKey))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return doc, version, nil
}

func (s *BoltStore) Save(ctx context.Context, doc *models.BallotLedger, expectedVersion string) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode ledger document: %w", err)
	}

	var newVersion string
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)

		current := ""
		if b.Get(boltDocKey) != nil {
			current = string(b.Get(boltVersionKey))
		}
		if expectedVersion != current {
			return ErrConflict
		}

		next := uint64(1)
		if current != "" {
			n, err := strconv.ParseUint(current, 10, 64)
			if err != nil {
				return fmt.Errorf("corrupt version stamp %q: %w", current, err)
			}
			next = n + 1
		}
		newVersion = strconv.FormatUint(next, 10)

		if err := b.Put(boltDocKey, raw); err != nil {
			return err
		}
		return b.Put(boltVersionKey, []byte(newVersion))
	})
	if err != nil {
		return "", err
	}
	return newVersion, nil
}
