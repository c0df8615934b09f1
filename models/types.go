package models

// Request types

type LoginRequest struct {
	Token string `json:"token"`
}

type VoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type AdminLoginRequest struct {
	PIN string `json:"pin"`
}

type UpdateConfigRequest struct {
	OrganizationName string `json:"organization_name"`
	LogoURL          string `json:"logo_url"`
}

type UpdateCandidatesRequest struct {
	Candidates map[string]Candidate `json:"candidates"`
}

// Response types

type LoginResponse struct {
	SessionToken string `json:"session_token"`
	VoterName    string `json:"voter_name"`
}

type VoteResponse struct {
	CandidateID string `json:"candidate_id"`
	Message     string `json:"message"`
}

type AdminLoginResponse struct {
	SessionToken string `json:"session_token"`
}

// CandidateCard is a candidate as shown on the ballot screen, with the
// photo URL already normalized for direct embedding.
type CandidateCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

type BallotResponse struct {
	Config     OrgConfig       `json:"config"`
	Candidates []CandidateCard `json:"candidates"`
}

type CandidateTally struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

type StatsResponse struct {
	RosterTotal   int              `json:"roster_total"`
	VotesIn       int              `json:"votes_in"`
	Participation float64          `json:"participation"`
	Tallies       []CandidateTally `json:"tallies"`
}

type LedgerResponse struct {
	Ledger  *BallotLedger `json:"ledger"`
	Version string        `json:"version"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
