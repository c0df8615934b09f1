package models

import "testing"

func TestNewDefaultLedger(t *testing.T) {
	l := NewDefaultLedger()

	if len(l.Candidates) != DefaultCandidateCount {
		t.Errorf("Expected %d candidates, got %d", DefaultCandidateCount, len(l.Candidates))
	}
	for id := range l.Candidates {
		if l.Votes[id] != 0 {
			t.Errorf("Expected zero votes for candidate %s, got %d", id, l.Votes[id])
		}
	}
	if len(l.UsedTokens) != 0 {
		t.Errorf("Expected empty token log, got %v", l.UsedTokens)
	}
	if l.Config.OrganizationName == "" {
		t.Error("Expected a default organization name")
	}
}

func TestCloneIsDeep(t *testing.T) {
	l := NewDefaultLedger()
	l.UsedTokens = []string{"a"}

	c := l.Clone()
	c.Votes["1"] = 9
	c.Candidates["1"] = Candidate{Name: "Changed"}
	c.UsedTokens = append(c.UsedTokens, "b")

	if l.Votes["1"] != 0 {
		t.Error("Clone shares the votes map")
	}
	if l.Candidates["1"].Name == "Changed" {
		t.Error("Clone shares the candidates map")
	}
	if len(l.UsedTokens) != 1 {
		t.Error("Clone shares the token slice")
	}
}

func TestNormalizeRepairsKeyParity(t *testing.T) {
	l := &BallotLedger{
		Candidates: map[string]Candidate{
			"1": {Name: "Budi"},
			"2": {Name: "Siti"},
		},
		Votes: map[string]int{
			"2": 3,
			"9": 7, // counter without a candidate
		},
	}

	l.Normalize()

	if l.Votes["1"] != 0 {
		t.Errorf("Expected candidate 1 to get a zero counter, got %d", l.Votes["1"])
	}
	if l.Votes["2"] != 3 {
		t.Errorf("Existing counter changed: %d", l.Votes["2"])
	}
	if _, ok := l.Votes["9"]; ok {
		t.Error("Orphan counter survived Normalize")
	}
	if l.UsedTokens == nil {
		t.Error("Expected UsedTokens to be allocated")
	}
}

func TestNormalizeHandlesNilMaps(t *testing.T) {
	l := &BallotLedger{}
	l.Normalize()

	if l.Candidates == nil || l.Votes == nil || l.UsedTokens == nil {
		t.Error("Normalize left nil fields")
	}
}

func TestHasRedeemed(t *testing.T) {
	l := NewDefaultLedger()
	l.UsedTokens = []string{"12345", "67890"}

	if !l.HasRedeemed("12345") {
		t.Error("Expected 12345 to be redeemed")
	}
	if l.HasRedeemed("99999") {
		t.Error("Expected 99999 to be unredeemed")
	}
}

func TestCandidateIDsOrder(t *testing.T) {
	l := &BallotLedger{
		Candidates: map[string]Candidate{
			"10": {}, "2": {}, "1": {},
		},
	}
	ids := l.CandidateIDs()

	want := []string{"1", "2", "10"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("Expected order %v, got %v", want, ids)
		}
	}
}

func TestTotalVotes(t *testing.T) {
	l := NewDefaultLedger()
	l.Votes["2"] = 4
	l.Votes["5"] = 3

	if got := l.TotalVotes(); got != 7 {
		t.Errorf("Expected 7 total votes, got %d", got)
	}
}
