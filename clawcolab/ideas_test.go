package clawcolab_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clawcolab/clawcolab-go/clawcolab"
)

func TestListIdeasForwardsPaginationVerbatim(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ideas":[{"id":"i1","title":"a","status":"pending","votes":0}],"total":47,"next_offset":10}`))
	}))
	defer srv.Close()

	client := clawcolab.New(clawcolab.WithServerURL(srv.URL))
	defer client.Close()

	ideas, page, err := client.ListIdeas(context.Background(), clawcolab.ListOptions{Limit: 7, Offset: 3})
	if err != nil {
		t.Fatalf("list ideas: %v", err)
	}
	if gotQuery != "limit=7&offset=3" {
		t.Errorf("expected limit=7&offset=3 forwarded verbatim, got %q", gotQuery)
	}
	if len(ideas) != 1 {
		t.Fatalf("expected 1 idea, got %d", len(ideas))
	}
	if page.Total != 47 || page.NextOffset != 10 {
		t.Errorf("expected page {47 10}, got %+v", page)
	}
}

func TestListIdeasOmitsUnsetPagination(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"ideas":[]}`))
	}))
	defer srv.Close()

	client := clawcolab.New(clawcolab.WithServerURL(srv.URL))
	defer client.Close()

	if _, _, err := client.ListIdeas(context.Background(), clawcolab.ListOptions{}); err != nil {
		t.Fatalf("list ideas: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("expected empty query for zero options, got %q", gotQuery)
	}
}

func TestVoteAutoApprovalAtThreshold(t *testing.T) {
	fake, client := newFakePlatform(t)
	idea := fake.SeedIdea("shared memory protocol", "let agents share memories")

	// Three distinct agents vote; the third vote crosses the threshold.
	var tokens []string
	for _, name := range []string{"Nora", "Kai", "Rex"} {
		tokens = append(tokens, register(t, client, name).Token)
	}

	ctx := context.Background()
	for i, token := range tokens {
		updated, err := client.VoteIdea(ctx, idea.ID, clawcolab.WithBearer(token))
		if err != nil {
			t.Fatalf("vote %d: %v", i+1, err)
		}
		if updated.Votes != i+1 {
			t.Errorf("expected %d votes, got %d", i+1, updated.Votes)
		}
		wantStatus := clawcolab.IdeaPending
		if i+1 >= 3 {
			wantStatus = clawcolab.IdeaApproved
		}
		if updated.Status != wantStatus {
			t.Errorf("after vote %d: expected status %s, got %s", i+1, wantStatus, updated.Status)
		}
	}
}

func TestDoubleVoteConflicts(t *testing.T) {
	fake, client := newFakePlatform(t)
	idea := fake.SeedIdea("one vote per agent", "")
	register(t, client, "Nora")

	ctx := context.Background()
	if _, err := client.VoteIdea(ctx, idea.ID); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	_, err := client.VoteIdea(ctx, idea.ID)
	var statusErr *clawcolab.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 StatusError for double vote, got %v", err)
	}
}

func TestCommentIdea(t *testing.T) {
	fake, client := newFakePlatform(t)
	idea := fake.SeedIdea("commentable", "")
	reg := register(t, client, "Nora")

	updated, err := client.CommentIdea(context.Background(), idea.ID, "worth prototyping")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(updated.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(updated.Comments))
	}
	if updated.Comments[0].BotID != reg.ID {
		t.Errorf("expected comment attributed to %s, got %s", reg.ID, updated.Comments[0].BotID)
	}
}

func TestTrendingRanksByVotes(t *testing.T) {
	fake, client := newFakePlatform(t)
	quiet := fake.SeedIdea("quiet idea", "")
	popular := fake.SeedIdea("popular idea", "")
	register(t, client, "Nora")

	ctx := context.Background()
	if _, err := client.VoteIdea(ctx, popular.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	trending, err := client.TrendingIdeas(ctx)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("expected 2 ideas, got %d", len(trending))
	}
	if trending[0].ID != popular.ID || trending[1].ID != quiet.ID {
		t.Errorf("expected popular idea ranked first, got %s then %s", trending[0].ID, trending[1].ID)
	}
}
