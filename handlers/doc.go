// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the pilketos
ballot API.

# Handler Types

Each handler is a struct with its dependencies injected via a
constructor:

  - VotingHandler: voter login, ballot view, vote cast
  - AdminHandler: PIN login, stats, config/candidate saves, reset,
    xlsx export, live ledger view

# Voter Flow

A browser session moves through three states:

	POST /login   → voter session (Anonymous → Authenticated)
	GET  /ballot  → candidate cards
	POST /vote    → commit (Authenticated → Voted, session done)

Voter operations carry the X-Voter-Session header, admin operations
X-Admin-Session. Handlers validate input and map engine errors to
status codes; every mutation goes through the vote engine's
compare-and-set retry loop, never straight to the store.
*/
package handlers
