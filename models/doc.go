// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the ballot ledger document and the JSON
request/response types of the HTTP API.

# The Ledger Document

BallotLedger is the single shared document of record, stored as UTF-8
JSON in a versioned document store (see the ledger package):

	{
	  "config":      {"organization_name": "...", "logo_url": "..."},
	  "candidates":  {"1": {"name": "...", "photo_url": "..."}, ...},
	  "votes":       {"1": 0, ...},
	  "used_tokens": ["12345", ...]
	}

Two invariants hold for every committed document:

  - votes has exactly the same keys as candidates (Normalize repairs
    this on load, candidate saves maintain it by construction)
  - used_tokens contains each redeemed token at most once (enforced
    at commit time by the vote engine)

Documents are value-ish: handlers and the vote engine work on Clone()d
copies so a failed commit attempt never corrupts the snapshot it
started from.
*/
package models
