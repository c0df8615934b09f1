// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/arisatria5/pilketos-smpn4/cliparse"
	"github.com/arisatria5/pilketos-smpn4/handlers"
	"github.com/arisatria5/pilketos-smpn4/middleware"
	"github.com/arisatria5/pilketos-smpn4/roster"
	"github.com/arisatria5/pilketos-smpn4/vote"
)

func NewRouter(engine *vote.Engine, rosterCache *roster.Cache, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	votingHandler := handlers.NewVotingHandler(engine, cfg)
	adminHandler := handlers.NewAdminHandler(engine, rosterCache, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting booth (public + voter session)
	mux.HandleFunc("GET /config", middleware.WithLogging(votingHandler.GetConfig))
	mux.HandleFunc("POST /login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("GET /ballot", middleware.WithLogging(votingHandler.GetBallot))
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.Cast))

	// Admin panel (PIN-gated)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/ledger", middleware.WithLogging(adminHandler.GetLedger))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(adminHandler.GetStats))
	mux.HandleFunc("PUT /admin/config", middleware.WithLogging(adminHandler.UpdateConfig))
	mux.HandleFunc("PUT /admin/candidates", middleware.WithLogging(adminHandler.UpdateCandidates))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.Reset))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(adminHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pilketos ballot API v1"))
	})

	return mux
}
