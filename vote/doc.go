// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote implements token redemption: the at-most-once pairing of
a roster token with a single vote increment.

# The Retry Loop

The ledger store only offers compare-and-set writes, so two overlapping
casts from the same base version produce exactly one success and one
conflict. Engine.commit makes the loser re-read the fresh document and
re-apply its mutation, up to a bounded number of attempts. Because the
redeemed-token check runs inside that loop against the freshly read
document, a token redeemed by the winning writer aborts the loser with
ErrAlreadyVoted instead of double-counting. The loop is the only path
to mutation.

Exhausting the attempt budget returns ErrRetriesExhausted with nothing
written; callers surface it as a transient "try again" failure, never
as success.

# Session States

A browser session moves Anonymous → Authenticated (Login) → Voted
(Cast). Login rejects redeemed tokens before consulting the roster, so
AlreadyVoted wins over NotEligible when both apply.
*/
package vote
