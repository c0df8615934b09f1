// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/arisatria5/pilketos-smpn4/models"
	"github.com/arisatria5/pilketos-smpn4/testutil"
)

func TestAdminLogin(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _, rosterCache := testutil.NewTestEngine(t, nil)
	h := NewAdminHandler(engine, rosterCache, cfg)

	req := testutil.MakeRequest("POST", "/admin/login", models.AdminLoginRequest{PIN: cfg.AdminPIN}, nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	testutil.AssertStatus(t, w, 200)
	var resp models.AdminLoginResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SessionToken == "" {
		t.Error("Expected an admin session token")
	}
}

func TestAdminLoginWrongPIN(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _, rosterCache := testutil.NewTestEngine(t, nil)
	h := NewAdminHandler(engine, rosterCache, cfg)

	for _, pin := range []string{"", "000000", "1234567"} {
		req := testutil.MakeRequest("POST", "/admin/login", models.AdminLoginRequest{PIN: pin}, nil)
		w := httptest.NewRecorder()
		h.Login(w, req)
		testutil.AssertStatus(t, w, 401)
	}
}

func TestAdminEndpointsRequireSession(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _, rosterCache := testutil.NewTestEngine(t, nil)
	h := NewAdminHandler(engine, rosterCache, cfg)

	endpoints := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"ledger", h.GetLedger},
		{"stats", h.GetStats},
		{"config", h.UpdateConfig},
		{"candidates", h.UpdateCandidates},
		{"reset", h.Reset},
		{"export", h.Export},
	}
	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			// No header at all.
			req := testutil.MakeRequest("GET", "/admin/"+ep.name, nil, nil)
			w := httptest.NewRecorder()
			ep.handler(w, req)
			testutil.AssertStatus(t, w, 401)

			// A voter session is not an admin session.
			voter := testutil.VoterSession(t, cfg, "12345", "Budi")
			req = testutil.MakeRequest("GET", "/admin/"+ep.name, nil, map[string]string{
				AdminSessionHeader: voter,
			})
			w = httptest.NewRecorder()
			ep.handler(w, req)
			testutil.AssertStatus(t, w, 401)
		})
	}
}

func TestAdminGetLedger(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, store, rosterCache := testutil.NewTestEngine(t, nil)
	testutil.SeedLedger(t, store, func(doc *models.BallotLedger) {
		doc.Votes["2"] = 7
		doc.UsedTokens = []string{"11111", "22222"}
	})
	h := NewAdminHandler(engine, rosterCache, cfg)

	req := testutil.MakeRequest("GET", "/admin/ledger", nil, map[string]string{
		AdminSessionHeader: testutil.AdminSession(t, cfg),
	})
	w := httptest.NewRecorder()
	h.GetLedger(w, req)

	testutil.AssertStatus(t, w, 200)
	var resp models.LedgerResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Version == "" {
		t.Error("Expected a document version")
	}
	if resp.Ledger.Votes["2"] != 7 {
		t.Errorf("Expected votes[2] == 7, got %d", resp.Ledger.Votes["2"])
	}
	if len(resp.Ledger.UsedTokens) != 2 {
		t.Errorf("Expected 2 used tokens, got %v", resp.Ledger.UsedTokens)
	}
}

func TestAdminStats(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, store, rosterCache := testutil.NewTestEngine(t, map[string]string{
		"11111": "Budi", "22222": "Siti", "33333": "Agus", "44444": "Dewi",
	})
	testutil.SeedLedger(t, store, func(doc *models.BallotLedger) {
		doc.Votes["1"] = 2
		doc.Votes["3"] = 1
		doc.UsedTokens = []string{"11111", "22222", "33333"}
	})
	h := NewAdminHandler(engine, rosterCache, cfg)

	req := testutil.MakeRequest("GET", "/admin/stats", nil, map[string]string{
		AdminSessionHeader: testutil.AdminSession(t, cfg),
	})
	w := httptest.NewRecorder()
	h.GetStats(w, req)

	testutil.AssertStatus(t, w, 200)
	var resp models.StatsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.RosterTotal != 4 {
		t.Errorf("Expected roster_total 4, got %d", resp.RosterTotal)
	}
	if resp.VotesIn != 3 {
		t.Errorf("Expected votes_in 3, got %d", resp.VotesIn)
	}
	if resp.Participation != 0.75 {
		t.Errorf("Expected participation 0.75, got %v", resp.Participation)
	}
	if len(resp.Tallies) != models.DefaultCandidateCount {
		t.Fatalf("Expected %d tallies, got %d", models.DefaultCandidateCount, len(resp.Tallies))
	}
	if resp.Tallies[0].ID != "1" || resp.Tallies[0].Votes != 2 {
		t.Errorf("Unexpected first tally: %+v", resp.Tallies[0])
	}
}

func TestAdminUpdateConfig(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, store, rosterCache := testutil.NewTestEngine(t, nil)
	h := NewAdminHandler(engine, rosterCache, cfg)
	admin := testutil.AdminSession(t, cfg)

	req := testutil.MakeRequest("PUT", "/admin/config", models.UpdateConfigRequest{
		OrganizationName: "SMPN 4 Kota",
		LogoURL:          "https://example.com/logo.png",
	}, map[string]string{AdminSessionHeader: admin})
	w := httptest.NewRecorder()
	h.UpdateConfig(w, req)

	testutil.AssertStatus(t, w, 200)
	var resp models.LedgerResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Ledger.Config.OrganizationName != "SMPN 4 Kota" {
		t.Errorf("Config not applied: %+v", resp.Ledger.Config)
	}

	doc, _, _ := store.Load(context.Background())
	if doc.Config.LogoURL != "https://example.com/logo.png" {
		t.Errorf("Logo URL not persisted: %q", doc.Config.LogoURL)
	}

	// Blank name is rejected before any commit.
	req = testutil.MakeRequest("PUT", "/admin/config", models.UpdateConfigRequest{
		OrganizationName: "   ",
	}, map[string]string{AdminSessionHeader: admin})
	w = httptest.NewRecorder()
	h.UpdateConfig(w, req)
	testutil.AssertStatus(t, w, 400)
}

func TestAdminUpdateCandidates(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, store, rosterCache := testutil.NewTestEngine(t, nil)
	testutil.SeedLedger(t, store, func(doc *models.BallotLedger) {
		doc.Votes["1"] = 5
	})
	h := NewAdminHandler(engine, rosterCache, cfg)
	admin := testutil.AdminSession(t, cfg)

	req := testutil.MakeRequest("PUT", "/admin/candidates", models.UpdateCandidatesRequest{
		Candidates: map[string]models.Candidate{
			"1": {Name: "Budi"},
			"2": {Name: "Siti"},
		},
	}, map[string]string{AdminSessionHeader: admin})
	w := httptest.NewRecorder()
	h.UpdateCandidates(w, req)

	testutil.AssertStatus(t, w, 200)
	var resp models.LedgerResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Ledger.Candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(resp.Ledger.Candidates))
	}
	// Counter for the surviving id carries over; dropped ids go away.
	if resp.Ledger.Votes["1"] != 5 {
		t.Errorf("Expected votes[1] == 5 to survive, got %d", resp.Ledger.Votes["1"])
	}
	if _, ok := resp.Ledger.Votes["3"]; ok {
		t.Error("Counter for a dropped candidate survived")
	}
}

func TestAdminUpdateCandidatesValidation(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _, rosterCache := testutil.NewTestEngine(t, nil)
	h := NewAdminHandler(engine, rosterCache, cfg)
	admin := testutil.AdminSession(t, cfg)

	bodies := []models.UpdateCandidatesRequest{
		{},
		{Candidates: map[string]models.Candidate{}},
		{Candidates: map[string]models.Candidate{"1": {Name: "  "}}},
		{Candidates: map[string]models.Candidate{" ": {Name: "Budi"}}},
	}
	for _, body := range bodies {
		req := testutil.MakeRequest("PUT", "/admin/candidates", body, map[string]string{
			AdminSessionHeader: admin,
		})
		w := httptest.NewRecorder()
		h.UpdateCandidates(w, req)
		testutil.AssertStatus(t, w, 400)
	}
}

func TestAdminReset(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, store, rosterCache := testutil.NewTestEngine(t, nil)
	testutil.SeedLedger(t, store, func(doc *models.BallotLedger) {
		doc.Config.OrganizationName = "SMPN 4"
		doc.Candidates["2"] = models.Candidate{Name: "Siti"}
		doc.Votes["2"] = 9
		doc.UsedTokens = []string{"11111", "22222"}
	})
	h := NewAdminHandler(engine, rosterCache, cfg)

	req := testutil.MakeRequest("POST", "/admin/reset", nil, map[string]string{
		AdminSessionHeader: testutil.AdminSession(t, cfg),
	})
	w := httptest.NewRecorder()
	h.Reset(w, req)

	testutil.AssertStatus(t, w, 200)
	doc, _, _ := store.Load(context.Background())
	if doc.TotalVotes() != 0 {
		t.Errorf("Expected zero votes after reset, got %d", doc.TotalVotes())
	}
	if len(doc.UsedTokens) != 0 {
		t.Errorf("Expected empty token log after reset, got %v", doc.UsedTokens)
	}
	// Slate and config survive a reset.
	if doc.Candidates["2"].Name != "Siti" {
		t.Errorf("Reset clobbered the slate: %+v", doc.Candidates)
	}
	if doc.Config.OrganizationName != "SMPN 4" {
		t.Errorf("Reset clobbered the config: %+v", doc.Config)
	}
}

func TestAdminExport(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, store, rosterCache := testutil.NewTestEngine(t, nil)
	testutil.SeedLedger(t, store, func(doc *models.BallotLedger) {
		doc.Candidates["1"] = models.Candidate{Name: "Budi"}
		doc.Votes["1"] = 3
		doc.UsedTokens = []string{"11111", "22222", "33333"}
	})
	h := NewAdminHandler(engine, rosterCache, cfg)

	req := testutil.MakeRequest("GET", "/admin/export", nil, map[string]string{
		AdminSessionHeader: testutil.AdminSession(t, cfg),
	})
	w := httptest.NewRecorder()
	h.Export(w, req)

	testutil.AssertStatus(t, w, 200)
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="laporan-pilketos.xlsx"` {
		t.Errorf("Unexpected content disposition %q", cd)
	}

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("Response body is not a workbook: %v", err)
	}
	defer book.Close()

	name, err := book.GetCellValue("Rekap", "B2")
	if err != nil {
		t.Fatalf("Failed to read cell: %v", err)
	}
	if name != "Budi" {
		t.Errorf("Expected Budi in Rekap B2, got %q", name)
	}
	rows, err := book.GetRows("Log")
	if err != nil {
		t.Fatalf("Failed to read Log sheet: %v", err)
	}
	if len(rows) != 4 { // header + 3 tokens
		t.Errorf("Expected 4 Log rows, got %d", len(rows))
	}
}
