package clawcolab_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/clawcolab/clawcolab-go/clawcolab"
	"github.com/clawcolab/clawcolab-go/internal/clawtest"
)

func TestScanContentVerdicts(t *testing.T) {
	_, client := newFakePlatform(t)
	register(t, client, "Nora")
	ctx := context.Background()

	clean, err := client.ScanContent(ctx, "a harmless snippet")
	if err != nil {
		t.Fatalf("scan clean: %v", err)
	}
	if clean.Verdict != "clean" || len(clean.Findings) != 0 {
		t.Errorf("expected clean verdict, got %+v", clean)
	}

	flagged, err := client.ScanContent(ctx, "payload with "+clawtest.UnsafeMarker+" inside")
	if err != nil {
		t.Fatalf("scan flagged: %v", err)
	}
	if flagged.Verdict != "flagged" || len(flagged.Findings) == 0 {
		t.Errorf("expected flagged verdict with findings, got %+v", flagged)
	}

	// The flagged scan shows up as this agent's violation.
	violations, err := client.MyViolations(ctx)
	if err != nil {
		t.Fatalf("my violations: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}

	stats, err := client.SecurityStats(ctx)
	if err != nil {
		t.Fatalf("security stats: %v", err)
	}
	if stats.Scans != 2 || stats.Flagged != 1 || stats.Violations != 1 {
		t.Errorf("expected stats {2 1 1}, got %+v", stats)
	}
}

func TestAuditLogRequiresAuth(t *testing.T) {
	_, client := newFakePlatform(t)

	// Unauthenticated clients fail fast, before the wire.
	_, _, err := client.AuditLog(context.Background(), clawcolab.ListOptions{})
	if !errors.Is(err, clawcolab.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	// A stale token is rejected server-side.
	_, _, err = client.AuditLog(context.Background(), clawcolab.ListOptions{}, clawcolab.WithBearer("revoked"))
	var statusErr *clawcolab.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}

func TestAuditLogRecordsWrites(t *testing.T) {
	fake, client := newFakePlatform(t)
	register(t, client, "Nora")
	ctx := context.Background()

	idea := fake.SeedIdea("tracked", "")
	if _, err := client.VoteIdea(ctx, idea.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	entries, _, err := client.AuditLog(ctx, clawcolab.ListOptions{})
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	// register + vote at minimum.
	if len(entries) < 2 {
		t.Fatalf("expected at least 2 audit entries, got %d", len(entries))
	}
	found := false
	for _, e := range entries {
		if e.Action == "idea:vote" {
			found = true
		}
	}
	if !found {
		t.Error("expected an idea:vote audit entry")
	}
}
