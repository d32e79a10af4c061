package clawcolab_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/clawcolab/clawcolab-go/clawcolab"
	"github.com/clawcolab/clawcolab-go/internal/clawtest"
)

// newFakePlatform starts an in-process platform and a client pointed at it.
func newFakePlatform(t *testing.T) (*clawtest.Server, *clawcolab.Client) {
	t.Helper()
	fake := clawtest.New(nil)
	ts := httptest.NewServer(fake.Router())
	t.Cleanup(ts.Close)
	client := clawcolab.New(clawcolab.WithServerURL(ts.URL))
	t.Cleanup(func() { client.Close() })
	return fake, client
}

func register(t *testing.T, client *clawcolab.Client, name string) *clawcolab.Registration {
	t.Helper()
	reg, err := client.Register(context.Background(), clawcolab.RegisterRequest{
		Name:         name,
		Type:         "assistant",
		Capabilities: []string{"coding"},
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return reg
}

func TestNewDefaults(t *testing.T) {
	client := clawcolab.New()
	defer client.Close()

	if got := client.ServerURL(); got != clawcolab.DefaultServerURL {
		t.Errorf("expected default server URL, got %q", got)
	}
	if client.Authenticated() {
		t.Error("new client should start unauthenticated")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(clawcolab.EnvServerURL, "http://env.example:9000")
	t.Setenv(clawcolab.EnvToken, "env-token")

	client := clawcolab.NewFromEnv()
	defer client.Close()

	if got := client.ServerURL(); got != "http://env.example:9000" {
		t.Errorf("expected env server URL, got %q", got)
	}
	if !client.Authenticated() {
		t.Error("expected token from environment")
	}

	// Explicit options win over the environment.
	override := clawcolab.NewFromEnv(clawcolab.WithServerURL("http://explicit.example"))
	defer override.Close()
	if got := override.ServerURL(); got != "http://explicit.example" {
		t.Errorf("expected explicit server URL, got %q", got)
	}
}

func TestUnauthenticatedFailsFast(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	client := clawcolab.New(clawcolab.WithServerURL(srv.URL))
	defer client.Close()

	_, err := client.VoteIdea(context.Background(), "idea-1")
	if !errors.Is(err, clawcolab.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no network request, server saw %d", n)
	}
}

func TestRestoredTokenAttachesBearer(t *testing.T) {
	var gotAuth string
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","name":"demo"}`))
	}))
	defer srv.Close()

	client := clawcolab.New(clawcolab.WithServerURL(srv.URL), clawcolab.WithToken("T"))
	defer client.Close()

	if !client.Authenticated() {
		t.Fatal("client restored from token should be authenticated")
	}
	if _, err := client.CreateProject(context.Background(), "demo", "d"); err != nil {
		t.Fatalf("create project: %v", err)
	}
	if gotAuth != "Bearer T" {
		t.Errorf("expected Authorization 'Bearer T', got %q", gotAuth)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("expected exactly one request (no token fetch), got %d", n)
	}
}

func TestRegisterStoresIdentity(t *testing.T) {
	_, client := newFakePlatform(t)

	reg := register(t, client, "Nora")
	if reg.ID == "" || reg.Token == "" {
		t.Fatalf("expected non-empty id and token, got %+v", reg)
	}
	if client.BotID() != reg.ID {
		t.Errorf("expected stored bot ID %q, got %q", reg.ID, client.BotID())
	}
	if client.Token() != reg.Token {
		t.Error("expected register to store the issued token")
	}

	// The stored token must be reused by the next auth-required call.
	if _, err := client.CreateProject(context.Background(), "research", "shared notes"); err != nil {
		t.Fatalf("create project after register: %v", err)
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"name is required"}`))
	}))
	defer srv.Close()

	client := clawcolab.New(clawcolab.WithServerURL(srv.URL), clawcolab.WithToken("T"))
	defer client.Close()

	_, err := client.CreateProject(context.Background(), "", "")
	var statusErr *clawcolab.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", statusErr.StatusCode)
	}
	if statusErr.Message != "name is required" {
		t.Errorf("expected server message preserved, got %q", statusErr.Message)
	}
	if statusErr.Temporary() {
		t.Error("4xx must not be reported as temporary")
	}
}

func TestDecodeErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := clawcolab.New(clawcolab.WithServerURL(srv.URL))
	defer client.Close()

	_, err := client.Health(context.Background())
	var decodeErr *clawcolab.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestTransportErrorOnConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	client := clawcolab.New(clawcolab.WithServerURL(url))
	defer client.Close()

	_, err := client.Health(context.Background())
	var transportErr *clawcolab.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestCloseIsIdempotentAndFinal(t *testing.T) {
	_, client := newFakePlatform(t)

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	_, err := client.Health(context.Background())
	if !errors.Is(err, clawcolab.ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	_, client := newFakePlatform(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Health(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	var transportErr *clawcolab.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError wrapping the cancellation, got %T: %v", err, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in the chain, got %v", err)
	}
}
