// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arisatria5/pilketos-smpn4/auth"
	"github.com/arisatria5/pilketos-smpn4/cliparse"
	"github.com/arisatria5/pilketos-smpn4/export"
	"github.com/arisatria5/pilketos-smpn4/middleware"
	"github.com/arisatria5/pilketos-smpn4/models"
	"github.com/arisatria5/pilketos-smpn4/roster"
	"github.com/arisatria5/pilketos-smpn4/vote"
)

// AdminSessionHeader carries the signed admin session issued after a
// PIN check.
const AdminSessionHeader = "X-Admin-Session"

type AdminHandler struct {
	engine *vote.Engine
	roster *roster.Cache
	cfg    cliparse.Config
}

func NewAdminHandler(engine *vote.Engine, rosterCache *roster.Cache, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{engine: engine, roster: rosterCache, cfg: cfg}
}

// Login handles POST /admin/login
// A wrong PIN is user-visible and carries no lockout; the comparison
// itself is constant time.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.VerifyPIN(req.PIN, h.cfg.AdminPIN); err != nil {
		slog.Warn("admin login rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "PIN salah")
		return
	}

	session, err := auth.IssueAdminSession([]byte(h.cfg.SessionSecret))
	if err != nil {
		slog.Error("failed to issue admin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	slog.Info("admin logged in", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{SessionToken: session})
}

// GetLedger handles GET /admin/ledger
// The live-update view: an unconditional re-fetch of the current
// document, no write implications.
func (h *AdminHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	doc, version, err := h.engine.Current(r.Context())
	if err != nil {
		slog.Error("failed to load ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LedgerResponse{Ledger: doc, Version: version})
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	doc, _, err := h.engine.Current(r.Context())
	if err != nil {
		slog.Error("failed to load ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	rosterTotal := h.roster.Size(r.Context())
	votesIn := doc.TotalVotes()
	participation := 0.0
	if rosterTotal > 0 {
		participation = float64(votesIn) / float64(rosterTotal)
	}

	tallies := make([]models.CandidateTally, 0, len(doc.Candidates))
	for _, id := range doc.CandidateIDs() {
		tallies = append(tallies, models.CandidateTally{
			ID:    id,
			Name:  doc.Candidates[id].Name,
			Votes: doc.Votes[id],
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		RosterTotal:   rosterTotal,
		VotesIn:       votesIn,
		Participation: participation,
		Tallies:       tallies,
	})
}

// UpdateConfig handles PUT /admin/config
func (h *AdminHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.UpdateConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.OrganizationName) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "organization_name is required")
		return
	}

	err := h.engine.SaveConfig(r.Context(), models.OrgConfig{
		OrganizationName: req.OrganizationName,
		LogoURL:          req.LogoURL,
	})
	if !h.commitOK(w, err, "config save") {
		return
	}

	h.respondWithLedger(w, r)
}

// UpdateCandidates handles PUT /admin/candidates
// Replaces the whole slate; counters follow the slate's keys.
func (h *AdminHandler) UpdateCandidates(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.UpdateCandidatesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Candidates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidates cannot be empty")
		return
	}
	for id, c := range req.Candidates {
		if strings.TrimSpace(id) == "" || strings.TrimSpace(c.Name) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "every candidate needs an id and a name")
			return
		}
	}

	err := h.engine.SaveCandidates(r.Context(), req.Candidates)
	if !h.commitOK(w, err, "candidate save") {
		return
	}

	h.respondWithLedger(w, r)
}

// Reset handles POST /admin/reset
// Factory reset: zero counts, empty redemption log, candidates and
// config untouched.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	err := h.engine.Reset(r.Context())
	if !h.commitOK(w, err, "reset") {
		return
	}

	slog.Info("election reset by admin", "remote", middleware.GetClientIP(r))

	h.respondWithLedger(w, r)
}

// Export handles GET /admin/export
// Streams the two-sheet xlsx report.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	doc, _, err := h.engine.Current(r.Context())
	if err != nil {
		slog.Error("failed to load ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	book, err := export.Workbook(doc)
	if err != nil {
		slog.Error("failed to render export", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="laporan-pilketos.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(book); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	session := r.Header.Get(AdminSessionHeader)
	if session == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, AdminSessionHeader+" header required")
		return false
	}
	if err := auth.ParseAdminSession([]byte(h.cfg.SessionSecret), session); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
		return false
	}
	return true
}

// commitOK maps engine commit errors to responses. Admin writes carry
// no exclusivity invariant, but they ride the same retry loop; an
// exhausted budget is still a transient failure, not success.
func (h *AdminHandler) commitOK(w http.ResponseWriter, err error, op string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, vote.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidates cannot be empty")
	case errors.Is(err, vote.ErrRetriesExhausted):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ledger is busy, please try again")
	default:
		slog.Error("admin commit failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
	}
	return false
}

func (h *AdminHandler) respondWithLedger(w http.ResponseWriter, r *http.Request) {
	doc, version, err := h.engine.Current(r.Context())
	if err != nil {
		slog.Error("failed to reload ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.LedgerResponse{Ledger: doc, Version: version})
}
