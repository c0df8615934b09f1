// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles the two credentials this service knows about.

The admin PIN is a single shared secret verified with a constant-time
comparison. There is no lockout: a shared booth device must never
lock the election operator out, so the only hardening is that a
failed guess learns nothing from timing.

Sessions are HS256-signed JWTs. A voter session binds the roster token
and name for the few minutes between login and cast; an admin session
marks a PIN-verified browser. Neither session is stored server side;
possession of a validly signed, unexpired token is the whole check.
*/
package auth
