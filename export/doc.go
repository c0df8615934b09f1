// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders the ledger as the committee's xlsx report:
// a "Rekap" sheet (candidate tallies) and a "Log" sheet (redeemed
// tokens).
package export
