// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/arisatria5/pilketos-smpn4/auth"
	"github.com/arisatria5/pilketos-smpn4/cliparse"
	"github.com/arisatria5/pilketos-smpn4/ledger"
	"github.com/arisatria5/pilketos-smpn4/models"
	"github.com/arisatria5/pilketos-smpn4/roster"
	"github.com/arisatria5/pilketos-smpn4/vote"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8035,
		StoreBackend:  cliparse.StoreMemory,
		AdminPIN:      "123456",
		SessionSecret: "test-session-secret",
		RosterTTL:     time.Minute,
	}
}

// RosterCache starts a CSV server with the given token → name entries
// and returns a cache reading from it. The server is torn down with
// the test.
func RosterCache(t *testing.T, entries map[string]string) *roster.Cache {
	t.Helper()

	tokens := make([]string, 0, len(entries))
	for token := range entries {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	var b bytes.Buffer
	b.WriteString("No,Nama,Token\n")
	for i, token := range tokens {
		fmt.Fprintf(&b, "%d,%s,%s\n", i+1, entries[token], token)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, b.String())
	}))
	t.Cleanup(srv.Close)

	return roster.NewCache(srv.URL, time.Minute)
}

// NewTestEngine wires an engine over a fresh memory store and a roster
// with the given entries.
func NewTestEngine(t *testing.T, entries map[string]string) (*vote.Engine, *ledger.MemoryStore, *roster.Cache) {
	t.Helper()
	store := ledger.NewMemoryStore()
	rosterCache := RosterCache(t, entries)
	return vote.NewEngine(store, rosterCache, 0), store, rosterCache
}

// SeedLedger commits a default-initialized ledger (optionally mutated)
// into the store and returns its version.
func SeedLedger(t *testing.T, store ledger.Store, mutate func(*models.BallotLedger)) string {
	t.Helper()
	doc := models.NewDefaultLedger()
	if mutate != nil {
		mutate(doc)
	}
	version, err := store.Save(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("Failed to seed ledger: %v", err)
	}
	return version
}

// VoterSession issues a signed voter session for the test config.
func VoterSession(t *testing.T, cfg cliparse.Config, token, voterName string) string {
	t.Helper()
	session, err := auth.IssueVoterSession([]byte(cfg.SessionSecret), token, voterName)
	if err != nil {
		t.Fatalf("Failed to issue voter session: %v", err)
	}
	return session
}

// AdminSession issues a signed admin session for the test config.
func AdminSession(t *testing.T, cfg cliparse.Config) string {
	t.Helper()
	session, err := auth.IssueAdminSession([]byte(cfg.SessionSecret))
	if err != nil {
		t.Fatalf("Failed to issue admin session: %v", err)
	}
	return session
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
