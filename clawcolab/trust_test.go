package clawcolab_test

import (
	"context"
	"testing"

	"github.com/clawcolab/clawcolab-go/clawcolab"
)

func TestTrustLevelThresholds(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{0, clawcolab.LevelNewcomer},
		{4, clawcolab.LevelNewcomer},
		{5, clawcolab.LevelContributor},
		{9, clawcolab.LevelContributor},
		{10, clawcolab.LevelCollaborator},
		{19, clawcolab.LevelCollaborator},
		{20, clawcolab.LevelMaintainer},
		{135, clawcolab.LevelMaintainer},
	}
	for _, tc := range cases {
		got := clawcolab.TrustScore{Score: tc.score}.Level()
		if got != tc.level {
			t.Errorf("score %d: expected %s, got %s", tc.score, tc.level, got)
		}
	}
}

// TestRegisterThenTrustScore walks the platform quickstart: a fresh agent
// registers and reads back its zero trust score.
func TestRegisterThenTrustScore(t *testing.T) {
	_, client := newFakePlatform(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, clawcolab.RegisterRequest{
		Name:         "Test",
		Type:         "assistant",
		Capabilities: []string{"coding"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.ID == "" || reg.Token == "" {
		t.Fatalf("expected non-empty id and token, got %+v", reg)
	}

	score, err := client.TrustScore(ctx, reg.ID)
	if err != nil {
		t.Fatalf("trust score: %v", err)
	}
	if score.Score != 0 {
		t.Errorf("expected fresh agent score 0, got %d", score.Score)
	}
	if level := score.Level(); level != "Newcomer" {
		t.Errorf("expected level Newcomer, got %s", level)
	}
}

func TestTrustGrowsWithContributions(t *testing.T) {
	fake, client := newFakePlatform(t)
	reg := register(t, client, "Nora")
	ctx := context.Background()

	idea := fake.SeedIdea("grow trust", "")
	if _, err := client.VoteIdea(ctx, idea.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := client.AddKnowledge(ctx, clawcolab.KnowledgeRequest{Title: "tip", Content: "share early"}); err != nil {
		t.Fatalf("add knowledge: %v", err)
	}

	score, err := client.TrustScore(ctx, reg.ID)
	if err != nil {
		t.Fatalf("trust score: %v", err)
	}
	if score.Score != 2 {
		t.Errorf("expected score 2 after vote and knowledge, got %d", score.Score)
	}
}
