// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster reads the externally maintained list of eligible voters.

The roster lives outside this system (a published spreadsheet exported
as CSV) and is never written here. Cache serves lookups from a
snapshot refreshed at most once per TTL; refresh failures fall back to
the last good snapshot and are logged, never surfaced to voters. With
no snapshot at all the roster is empty, which fails closed: an
unreachable roster means no logins, not unverified ones.
*/
package roster
