// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"

	"github.com/arisatria5/pilketos-smpn4/models"
)

var (
	// ErrNotFound means the store holds no ledger document yet.
	ErrNotFound = errors.New("ledger document not found")

	// ErrConflict means the stored version no longer matches the version
	// the caller read. The caller must re-read and retry the whole
	// mutation.
	ErrConflict = errors.New("ledger version conflict")
)

// Store is the versioned document store holding the ballot ledger.
//
// Load returns the current document and its opaque version marker.
// Save writes the document only if the stored version still equals
// expectedVersion, atomically replacing document and version together;
// otherwise it returns ErrConflict. An empty expectedVersion creates
// the document and fails with ErrConflict if one already exists.
//
// Any other error is fatal for the attempted operation: nothing was
// written and the caller should surface it rather than retry blindly.
type Store interface {
	Load(ctx context.Context) (*models.BallotLedger, string, error)
	Save(ctx context.Context, doc *models.BallotLedger, expectedVersion string) (string, error)
}
