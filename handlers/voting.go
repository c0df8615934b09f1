// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arisatria5/pilketos-smpn4/auth"
	"github.com/arisatria5/pilketos-smpn4/cliparse"
	"github.com/arisatria5/pilketos-smpn4/middleware"
	"github.com/arisatria5/pilketos-smpn4/models"
	"github.com/arisatria5/pilketos-smpn4/vote"
)

// VoterSessionHeader carries the signed voter session issued at login.
const VoterSessionHeader = "X-Voter-Session"

type VotingHandler struct {
	engine *vote.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(engine *vote.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: engine, cfg: cfg}
}

// GetConfig handles GET /config
// Public: the login screen needs the organization name and logo before
// anyone is authenticated.
func (h *VotingHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	doc, _, err := h.engine.Current(r.Context())
	if err != nil {
		slog.Error("failed to load ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	cfg := doc.Config
	cfg.LogoURL = DriveImageURL(cfg.LogoURL)
	middleware.JSONResponse(w, http.StatusOK, cfg)
}

// Login handles POST /login
// Exchanges a roster token for a voter session.
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voterName, err := h.engine.Login(r.Context(), req.Token)
	switch {
	case err == nil:
	case errors.Is(err, vote.ErrEmptyToken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	case errors.Is(err, vote.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Token sudah digunakan")
		return
	case errors.Is(err, vote.ErrNotEligible):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Token tidak valid")
		return
	default:
		slog.Error("login failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	session, err := auth.IssueVoterSession([]byte(h.cfg.SessionSecret), req.Token, voterName)
	if err != nil {
		slog.Error("failed to issue voter session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	slog.Info("voter logged in", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionToken: session,
		VoterName:    voterName,
	})
}

// GetBallot handles GET /ballot
// Returns the candidate cards for an authenticated voter.
func (h *VotingHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.voterSession(w, r); !ok {
		return
	}

	doc, _, err := h.engine.Current(r.Context())
	if err != nil {
		slog.Error("failed to load ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	cards := make([]models.CandidateCard, 0, len(doc.Candidates))
	for _, id := range doc.CandidateIDs() {
		c := doc.Candidates[id]
		photo := DriveImageURL(c.PhotoURL)
		if photo == "" {
			photo = PlaceholderPhotoURL
		}
		cards = append(cards, models.CandidateCard{ID: id, Name: c.Name, PhotoURL: photo})
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		Config:     doc.Config,
		Candidates: cards,
	})
}

// Cast handles POST /vote
// Commits one vote for the session's token. The engine retries lost
// commit races internally; what surfaces here is either a durable
// commit, a terminal rejection, or a transient 503.
func (h *VotingHandler) Cast(w http.ResponseWriter, r *http.Request) {
	token, _, ok := h.voterSession(w, r)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	err := h.engine.Cast(r.Context(), token, req.CandidateID)
	switch {
	case err == nil:
	case errors.Is(err, vote.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate_id: "+req.CandidateID)
		return
	case errors.Is(err, vote.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Token sudah digunakan")
		return
	case errors.Is(err, vote.ErrRetriesExhausted):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ledger is busy, please try again")
		return
	default:
		slog.Error("vote commit failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		CandidateID: req.CandidateID,
		Message:     "Suara tersimpan",
	})
}

// voterSession validates the session header and returns the token and
// voter name it carries. On failure it writes the 401 itself.
func (h *VotingHandler) voterSession(w http.ResponseWriter, r *http.Request) (token, voterName string, ok bool) {
	session := r.Header.Get(VoterSessionHeader)
	if session == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, VoterSessionHeader+" header required")
		return "", "", false
	}
	token, voterName, err := auth.ParseVoterSession([]byte(h.cfg.SessionSecret), session)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
		return "", "", false
	}
	return token, voterName, true
}
