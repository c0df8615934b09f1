// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/arisatria5/pilketos-smpn4/models"
)

// MemoryStore keeps the ledger in process memory with real
// compare-and-set semantics. It backs tests and local development; it
// is not durable.
type MemoryStore struct {
	mu      sync.Mutex
	doc     []byte
	version uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.BallotLedger, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, "", ErrNotFound
	}

	var doc models.BallotLedger
	if err := json.Unmarshal(s.doc, &doc); err != nil {
		return nil, "", fmt.Errorf("decode ledger document: %w", err)
	}
	return &doc, strconv.FormatUint(s.version, 10), nil
}

func (s *MemoryStore) Save(ctx context.Context, doc *models.BallotLedger, expectedVersion string) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode ledger document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := ""
	if s.doc != nil {
		current = strconv.FormatUint(s.version, 10)
	}
	if expectedVersion != current {
		return "", ErrConflict
	}

	s.doc = raw
	s.version++
	return strconv.FormatUint(s.version, 10), nil
}
