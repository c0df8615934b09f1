// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pilketos ballot server.

Pilketos runs a single school election: voters redeem one-time roster
tokens for one vote each, and the committee manages candidates,
watches tallies, and exports the final report. All election state
lives in one versioned ledger document updated exclusively through
compare-and-set commits, so any number of overlapping page loads agree
on every count.

# Starting the Server

	ROSTER_URL=https://... ADMIN_PIN=... SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8035 -store bolt -bolt pilketos.db -roster https://...

# Configuration

Required settings:

  - ROSTER_URL (-roster): voter roster CSV (Token and Nama columns)
  - ADMIN_PIN (-pin): admin panel PIN
  - SESSION_SECRET (-session-secret): HS256 session signing secret

Backend settings (see the cliparse package):

  - STORE_BACKEND (-store): github, sql, bolt (default), or memory
  - GITHUB_TOKEN / GITHUB_REPO / GITHUB_PATH for the github backend
  - DATABASE_URL (-d) / DATABASE_TYPE (-t) for the sql backend
  - BOLT_PATH (-bolt) for the bolt backend

Optional settings:

  - PORT (-p): server port (default: 8035)
  - ROSTER_TTL_SECONDS (-roster-ttl): roster cache TTL (default: 60)
  - COMMIT_ATTEMPTS (-retries): ledger commit attempt budget (default: 5)
*/
package main
