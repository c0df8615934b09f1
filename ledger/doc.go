// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger stores the ballot ledger document behind a single
compare-and-set primitive.

# Commit Protocol

Store.Save only writes when the stored version still equals the
version the caller read with Store.Load; otherwise it returns
ErrConflict and the caller re-reads and retries. This one check is
what lets many independent, otherwise stateless requests behave like
a shared mutable ledger without a database server mediating them.

Version markers are opaque strings; callers only pass them back.

# Backends

  - GitHubStore: JSON file in a GitHub repository via the contents
    API; the blob SHA is the version (the production system of
    record).
  - BoltStore: local bbolt file, document and version stamp written
    in one transaction.
  - SQLStore: one-row table with a conditional UPDATE; postgres or
    sqlite.
  - MemoryStore: in-process, for tests and development.

All backends return documents decoded fresh from stored bytes, so a
caller's snapshot is never aliased by another request's mutation.
*/
package ledger
