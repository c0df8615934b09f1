// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"slices"
	"sort"
)

// DefaultCandidateCount is how many numbered slots a fresh ledger
// starts with. Elections here always run with a fixed, small slate.
const DefaultCandidateCount = 6

type OrgConfig struct {
	OrganizationName string `json:"organization_name"`
	LogoURL          string `json:"logo_url"`
}

type Candidate struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// BallotLedger is the single shared document of record: organization
// config, the candidate slate, per-candidate counters, and the log of
// redeemed tokens. It is only ever mutated through the store's
// compare-and-set commit path.
type BallotLedger struct {
	Config     OrgConfig            `json:"config"`
	Candidates map[string]Candidate `json:"candidates"`
	Votes      map[string]int       `json:"votes"`
	UsedTokens []string             `json:"used_tokens"`
}

// NewDefaultLedger returns the document used when the store holds
// nothing yet: six numbered placeholder candidates, zero counts, empty
// token log.
func NewDefaultLedger() *BallotLedger {
	l := &BallotLedger{
		Config:     OrgConfig{OrganizationName: "Sekolah"},
		Candidates: make(map[string]Candidate, DefaultCandidateCount),
		Votes:      make(map[string]int, DefaultCandidateCount),
		UsedTokens: []string{},
	}
	for i := 1; i <= DefaultCandidateCount; i++ {
		id := fmt.Sprintf("%d", i)
		l.Candidates[id] = Candidate{Name: "Kandidat " + id}
		l.Votes[id] = 0
	}
	return l
}

// Clone returns a deep copy. Mutations during a commit attempt must
// never leak into a caller's snapshot of a previous read.
func (l *BallotLedger) Clone() *BallotLedger {
	c := &BallotLedger{
		Config:     l.Config,
		Candidates: make(map[string]Candidate, len(l.Candidates)),
		Votes:      make(map[string]int, len(l.Votes)),
		UsedTokens: slices.Clone(l.UsedTokens),
	}
	for id, cand := range l.Candidates {
		c.Candidates[id] = cand
	}
	for id, n := range l.Votes {
		c.Votes[id] = n
	}
	if c.UsedTokens == nil {
		c.UsedTokens = []string{}
	}
	return c
}

// HasRedeemed reports whether token already appears in the redeemed
// log. The log is small (one entry per voter) so a scan is fine.
func (l *BallotLedger) HasRedeemed(token string) bool {
	return slices.Contains(l.UsedTokens, token)
}

// Normalize repairs the votes/candidates key parity invariant on a
// freshly loaded document: every candidate gets a counter, counters
// without a candidate are dropped, nil maps and slices are allocated.
func (l *BallotLedger) Normalize() {
	if l.Candidates == nil {
		l.Candidates = make(map[string]Candidate)
	}
	if l.Votes == nil {
		l.Votes = make(map[string]int, len(l.Candidates))
	}
	for id := range l.Candidates {
		if _, ok := l.Votes[id]; !ok {
			l.Votes[id] = 0
		}
	}
	for id := range l.Votes {
		if _, ok := l.Candidates[id]; !ok {
			delete(l.Votes, id)
		}
	}
	if l.UsedTokens == nil {
		l.UsedTokens = []string{}
	}
}

// TotalVotes sums every candidate counter.
func (l *BallotLedger) TotalVotes() int {
	total := 0
	for _, n := range l.Votes {
		total += n
	}
	return total
}

// CandidateIDs returns the slate's ids in display order (numeric-ish
// string sort, "1".."6" for the default slate).
func (l *BallotLedger) CandidateIDs() []string {
	ids := make([]string, 0, len(l.Candidates))
	for id := range l.Candidates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}
