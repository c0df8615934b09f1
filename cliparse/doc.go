// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and
environment variables.

Flags win over env variables; secrets (ADMIN_PIN, SESSION_SECRET,
GITHUB_TOKEN) should come from the environment in anything but dev.
The store backend decides which connection settings are required:

	-store github   GITHUB_TOKEN, GITHUB_REPO, GITHUB_PATH
	-store sql      DATABASE_URL, DATABASE_TYPE (sqlite or postgres)
	-store bolt     BOLT_PATH (default pilketos.db)
	-store memory   nothing; state lives for the process only

ROSTER_URL is always required: the voter roster is external and there
is no such thing as an election without one.
*/
package cliparse
