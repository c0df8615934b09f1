// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/arisatria5/pilketos-smpn4/ledger"
	"github.com/arisatria5/pilketos-smpn4/models"
)

var (
	ErrEmptyToken       = errors.New("token is empty")
	ErrNotEligible      = errors.New("token not in roster")
	ErrAlreadyVoted     = errors.New("token already redeemed")
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrRetriesExhausted = errors.New("ledger commit retries exhausted")
)

// DefaultCommitAttempts bounds the compare-and-set retry loop. Every
// attempt is a whole read-mutate-write cycle; losing five races in a
// row on an election this size means the store itself is struggling.
const DefaultCommitAttempts = 5

const backoffStep = 20 * time.Millisecond

// Roster answers eligibility questions. Lookup resolves a trimmed
// token to the voter's display name.
type Roster interface {
	Lookup(ctx context.Context, token string) (string, bool)
}

// Engine applies every ledger mutation through a bounded
// compare-and-set retry loop. It holds no election state of its own:
// each operation reads the current document, mutates a fresh copy, and
// commits against the version it read.
type Engine struct {
	store    ledger.Store
	roster   Roster
	attempts int
}

func NewEngine(store ledger.Store, roster Roster, attempts int) *Engine {
	if attempts <= 0 {
		attempts = DefaultCommitAttempts
	}
	return &Engine{store: store, roster: roster, attempts: attempts}
}

// Current returns the latest committed ledger and its version,
// default-initializing when the store holds nothing yet. The returned
// document always satisfies the candidate/count key parity invariant.
func (e *Engine) Current(ctx context.Context) (*models.BallotLedger, string, error) {
	doc, version, err := e.store.Load(ctx)
	if errors.Is(err, ledger.ErrNotFound) {
		return models.NewDefaultLedger(), "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load ledger: %w", err)
	}
	doc.Normalize()
	return doc, version, nil
}

// Login checks a token for a new voter session. The ledger read here
// is always fresh: checking redemption against a stale copy is exactly
// how double votes happen. Redemption is checked before eligibility so
// a used token reports "already voted" even if the roster is
// unreachable at that moment.
func (e *Engine) Login(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	doc, _, err := e.Current(ctx)
	if err != nil {
		return "", err
	}
	if doc.HasRedeemed(token) {
		return "", ErrAlreadyVoted
	}

	name, ok := e.roster.Lookup(ctx, token)
	if !ok {
		return "", ErrNotEligible
	}
	return name, nil
}

// Cast redeems token for one vote on candidateID. The increment and
// the redemption entry commit together or not at all; a token that is
// already redeemed in the document being committed aborts with
// ErrAlreadyVoted, so each token contributes at most one increment
// regardless of how requests interleave.
func (e *Engine) Cast(ctx context.Context, token, candidateID string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	err := e.commit(ctx, func(doc *models.BallotLedger) error {
		if _, ok := doc.Candidates[candidateID]; !ok {
			return ErrUnknownCandidate
		}
		if doc.HasRedeemed(token) {
			return ErrAlreadyVoted
		}
		doc.Votes[candidateID]++
		doc.UsedTokens = append(doc.UsedTokens, token)
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("vote recorded", "candidate_id", candidateID)
	return nil
}

// Reset zeroes every counter and clears the redemption log. Candidate
// names and photos survive a reset.
func (e *Engine) Reset(ctx context.Context) error {
	err := e.commit(ctx, func(doc *models.BallotLedger) error {
		for id := range doc.Votes {
			doc.Votes[id] = 0
		}
		doc.UsedTokens = []string{}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("ledger reset")
	return nil
}

// SaveConfig replaces the organization config.
func (e *Engine) SaveConfig(ctx context.Context, cfg models.OrgConfig) error {
	return e.commit(ctx, func(doc *models.BallotLedger) error {
		doc.Config = cfg
		return nil
	})
}

// SaveCandidates replaces the candidate slate. Counters follow the
// slate: surviving candidates keep their counts, new ones start at
// zero, removed ones drop.
func (e *Engine) SaveCandidates(ctx context.Context, candidates map[string]models.Candidate) error {
	if len(candidates) == 0 {
		return ErrUnknownCandidate
	}
	return e.commit(ctx, func(doc *models.BallotLedger) error {
		doc.Candidates = make(map[string]models.Candidate, len(candidates))
		for id, c := range candidates {
			doc.Candidates[id] = c
		}
		doc.Normalize()
		return nil
	})
}

// commit runs one mutation through the read-mutate-write cycle,
// retrying the whole cycle on version conflicts. mutate sees the
// freshly loaded document on every attempt; returning an error from
// mutate aborts without writing.
func (e *Engine) commit(ctx context.Context, mutate func(*models.BallotLedger) error) error {
	for attempt := 1; attempt <= e.attempts; attempt++ {
		doc, version, err := e.Current(ctx)
		if err != nil {
			return err
		}
		if err := mutate(doc); err != nil {
			return err
		}

		_, err = e.store.Save(ctx, doc, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ledger.ErrConflict) {
			return fmt.Errorf("commit ledger: %w", err)
		}

		slog.Warn("ledger commit lost the race", "attempt", attempt, "max_attempts", e.attempts)
		if attempt < e.attempts {
			sleep(ctx, time.Duration(attempt)*backoffStep+rand.N(backoffStep))
		}
	}
	return ErrRetriesExhausted
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
