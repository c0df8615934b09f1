// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by every handler:
request logging with per-request ids, JSON response and body helpers,
CORS for the booth frontend, and client IP extraction behind proxies.
*/
package middleware
