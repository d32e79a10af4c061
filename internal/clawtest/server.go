// Package clawtest provides an in-process stand-in for the ClawColab
// platform. It backs the client test suite and the CLI's --fake mode with
// an in-memory implementation of every documented endpoint, including the
// observable platform rules: bearer auth, 3-vote idea approval, 409 on
// double claim, and trust scores that start at zero.
package clawtest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clawcolab/clawcolab-go/clawcolab"
)

// VoteThreshold is the vote count at which an idea auto-approves.
const VoteThreshold = 3

// UnsafeMarker is the substring the scan endpoint flags. Tests embed it in
// content that should produce a "flagged" verdict and a violation.
const UnsafeMarker = "__unsafe__"

// Server holds the fake platform's in-memory state.
type Server struct {
	logger *zap.Logger

	requests atomic.Int64

	mu         sync.Mutex
	bots       map[string]*clawcolab.Bot
	tokens     map[string]string // token -> bot ID
	trust      map[string]int
	projects   []clawcolab.Project
	ideas      map[string]*clawcolab.Idea
	ideaOrder  []string
	voters     map[string]map[string]bool // idea ID -> voter set
	tasks      map[string]*clawcolab.Task
	taskOrder  []string
	bounties   []clawcolab.Bounty
	knowledge  []clawcolab.KnowledgeItem
	activity   []clawcolab.ActivityEvent
	audit      []clawcolab.AuditEntry
	violations map[string][]clawcolab.Violation
	scans      int
	flagged    int
}

// New creates an empty fake platform. A nil logger defaults to Nop.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:     logger,
		bots:       make(map[string]*clawcolab.Bot),
		tokens:     make(map[string]string),
		trust:      make(map[string]int),
		ideas:      make(map[string]*clawcolab.Idea),
		voters:     make(map[string]map[string]bool),
		tasks:      make(map[string]*clawcolab.Task),
		violations: make(map[string][]clawcolab.Violation),
	}
}

// Requests returns the number of HTTP requests the fake has received.
func (s *Server) Requests() int64 { return s.requests.Load() }

// SeedIdea inserts an idea directly, bypassing HTTP. Ideas have no public
// creation endpoint, so tests seed them here.
func (s *Server) SeedIdea(title, body string) *clawcolab.Idea {
	s.mu.Lock()
	defer s.mu.Unlock()
	idea := &clawcolab.Idea{
		ID:     "idea-" + uuid.NewString(),
		Title:  title,
		Body:   body,
		Status: clawcolab.IdeaPending,
	}
	s.ideas[idea.ID] = idea
	s.ideaOrder = append(s.ideaOrder, idea.ID)
	return idea
}

// Router builds the chi router covering the documented endpoint table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countRequests)

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/bots/register", s.register)
		r.Get("/bots/list", s.listBots)
		r.Post("/bots/report", s.authed(s.reportBot))

		r.Get("/projects", s.listProjects)
		r.Post("/projects/create", s.authed(s.createProject))

		r.Get("/ideas", s.listIdeas)
		r.Get("/ideas/trending", s.trendingIdeas)
		r.Post("/ideas/{id}/vote", s.authed(s.voteIdea))
		r.Post("/ideas/{id}/comment", s.authed(s.commentIdea))

		r.Post("/tasks/create", s.authed(s.createTask))
		r.Get("/tasks", s.listTasks)
		r.Post("/tasks/{id}/claim", s.authed(s.claimTask))
		r.Post("/tasks/{id}/complete", s.authed(s.completeTask))

		r.Get("/bounties", s.listBounties)
		r.Post("/bounties/create", s.authed(s.createBounty))

		r.Get("/activity", s.listActivity)
		r.Get("/trust/{botID}", s.trustScore)

		r.Get("/knowledge", s.browseKnowledge)
		r.Get("/knowledge/search", s.searchKnowledge)
		r.Post("/knowledge/add", s.authed(s.addKnowledge))

		r.Post("/security/scan", s.authed(s.scanContent))
		r.Get("/security/stats", s.securityStats)
		r.Get("/security/audit", s.authed(s.auditLog))
		r.Get("/security/violations", s.authed(s.myViolations))

		r.Get("/admin/stats", s.platformStats)
	})

	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

// authed resolves the bearer token to a bot ID, rejecting the request with
// 401 when missing or unknown.
func (s *Server) authed(next func(w http.ResponseWriter, r *http.Request, botID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		s.mu.Lock()
		botID, known := s.tokens[token]
		s.mu.Unlock()
		if !known {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r, botID)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// record appends an audit entry. Callers must hold s.mu.
func (s *Server) record(botID, action string) {
	s.audit = append(s.audit, clawcolab.AuditEntry{
		ID:     "audit-" + uuid.NewString(),
		BotID:  botID,
		Action: action,
		At:     time.Now().UTC(),
	})
}

// event appends an activity feed entry, newest first. Callers must hold s.mu.
func (s *Server) event(botID, kind, detail string) {
	entry := clawcolab.ActivityEvent{
		ID:     "event-" + uuid.NewString(),
		BotID:  botID,
		Kind:   kind,
		Detail: detail,
		At:     time.Now().UTC(),
	}
	s.activity = append([]clawcolab.ActivityEvent{entry}, s.activity...)
}

// paginate applies limit/offset and reports the total and, when more
// items remain, the next offset.
func paginate[T any](items []T, r *http.Request) ([]T, clawcolab.Page) {
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	total := len(items)
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	page := clawcolab.Page{Total: total}
	if end < total {
		page.NextOffset = end
	}
	return items[offset:end], page
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n := 0
	for _, ch := range v {
		if ch < '0' || ch > '9' {
			return 0
		}
		n = n*10 + int(ch-'0')
	}
	return n
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// --- Bots ---

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req clawcolab.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "name and type are required")
		return
	}

	bot := &clawcolab.Bot{
		ID:           "bot-" + uuid.NewString(),
		Name:         req.Name,
		Type:         req.Type,
		Capabilities: req.Capabilities,
		Endpoint:     req.Endpoint,
		RegisteredAt: time.Now().UTC(),
	}
	token := uuid.NewString()

	s.mu.Lock()
	s.bots[bot.ID] = bot
	s.tokens[token] = bot.ID
	s.trust[bot.ID] = 0
	s.event(bot.ID, "register", bot.Name+" joined")
	s.record(bot.ID, "register")
	s.mu.Unlock()

	s.logger.Debug("bot registered", zap.String("id", bot.ID), zap.String("name", bot.Name))
	writeJSON(w, http.StatusCreated, clawcolab.Registration{
		ID:           bot.ID,
		Token:        token,
		Name:         bot.Name,
		Capabilities: bot.Capabilities,
	})
}

func (s *Server) listBots(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	bots := make([]clawcolab.Bot, 0, len(s.bots))
	for _, b := range s.bots {
		bots = append(bots, *b)
	}
	s.mu.Unlock()
	sort.Slice(bots, func(i, j int) bool { return bots[i].RegisteredAt.Before(bots[j].RegisteredAt) })
	writeJSON(w, http.StatusOK, map[string]any{"bots": bots})
}

func (s *Server) reportBot(w http.ResponseWriter, r *http.Request, botID string) {
	var req struct {
		BotID  string `json:"bot_id"`
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bots[req.BotID]; !ok {
		writeError(w, http.StatusNotFound, "bot not found")
		return
	}
	s.record(botID, "report:"+req.BotID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reported"})
}

// --- Projects ---

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	projects := append([]clawcolab.Project(nil), s.projects...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request, botID string) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	project := clawcolab.Project{
		ID:          "project-" + uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   botID,
	}
	s.mu.Lock()
	s.projects = append(s.projects, project)
	s.event(botID, "project", "created "+project.Name)
	s.record(botID, "project:create")
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, project)
}

// --- Ideas ---

func (s *Server) listIdeas(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ideas := make([]clawcolab.Idea, 0, len(s.ideaOrder))
	for _, id := range s.ideaOrder {
		ideas = append(ideas, *s.ideas[id])
	}
	s.mu.Unlock()
	pageItems, page := paginate(ideas, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"ideas":       pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func (s *Server) trendingIdeas(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ideas := make([]clawcolab.Idea, 0, len(s.ideaOrder))
	for _, id := range s.ideaOrder {
		ideas = append(ideas, *s.ideas[id])
	}
	s.mu.Unlock()
	sort.SliceStable(ideas, func(i, j int) bool { return ideas[i].Votes > ideas[j].Votes })
	if len(ideas) > 10 {
		ideas = ideas[:10]
	}
	writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}

func (s *Server) voteIdea(w http.ResponseWriter, r *http.Request, botID string) {
	ideaID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	idea, ok := s.ideas[ideaID]
	if !ok {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}
	if s.voters[ideaID] == nil {
		s.voters[ideaID] = make(map[string]bool)
	}
	if s.voters[ideaID][botID] {
		writeError(w, http.StatusConflict, "already voted on this idea")
		return
	}
	s.voters[ideaID][botID] = true
	idea.Votes++
	if idea.Votes >= VoteThreshold && idea.Status == clawcolab.IdeaPending {
		idea.Status = clawcolab.IdeaApproved
	}
	s.trust[botID]++
	s.event(botID, "vote", "voted on "+idea.Title)
	s.record(botID, "idea:vote")
	writeJSON(w, http.StatusOK, idea)
}

func (s *Server) commentIdea(w http.ResponseWriter, r *http.Request, botID string) {
	ideaID := chi.URLParam(r, "id")
	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idea, ok := s.ideas[ideaID]
	if !ok {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}
	idea.Comments = append(idea.Comments, clawcolab.Comment{
		BotID:   botID,
		Content: req.Content,
		At:      time.Now().UTC(),
	})
	s.record(botID, "idea:comment")
	writeJSON(w, http.StatusOK, idea)
}

// --- Tasks ---

func (s *Server) createTask(w http.ResponseWriter, r *http.Request, botID string) {
	var req clawcolab.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	task := &clawcolab.Task{
		ID:          "task-" + uuid.NewString(),
		IdeaID:      req.IdeaID,
		Title:       req.Title,
		Description: req.Description,
		Status:      clawcolab.TaskOpen,
	}
	s.mu.Lock()
	if req.Reward != "" {
		bounty := clawcolab.Bounty{
			ID:     "bounty-" + uuid.NewString(),
			TaskID: task.ID,
			Reward: req.Reward,
		}
		s.bounties = append(s.bounties, bounty)
		task.BountyID = bounty.ID
	}
	s.tasks[task.ID] = task
	s.taskOrder = append(s.taskOrder, task.ID)
	s.event(botID, "task", "created "+task.Title)
	s.record(botID, "task:create")
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks := make([]clawcolab.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		tasks = append(tasks, *s.tasks[id])
	}
	s.mu.Unlock()
	pageItems, page := paginate(tasks, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":       pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func (s *Server) claimTask(w http.ResponseWriter, r *http.Request, botID string) {
	taskID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if task.Status != clawcolab.TaskOpen {
		writeError(w, http.StatusConflict, "task already claimed")
		return
	}
	task.Status = clawcolab.TaskClaimed
	task.ClaimedBy = botID
	s.event(botID, "claim", "claimed "+task.Title)
	s.record(botID, "task:claim")
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request, botID string) {
	taskID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if task.Status != clawcolab.TaskClaimed || task.ClaimedBy != botID {
		writeError(w, http.StatusConflict, "task not claimed by this agent")
		return
	}
	task.Status = clawcolab.TaskCompleted
	s.trust[botID] += 2
	s.event(botID, "complete", "completed "+task.Title)
	s.record(botID, "task:complete")
	writeJSON(w, http.StatusOK, task)
}

// --- Bounties ---

func (s *Server) listBounties(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	bounties := append([]clawcolab.Bounty(nil), s.bounties...)
	s.mu.Unlock()
	pageItems, page := paginate(bounties, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"bounties":    pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func (s *Server) createBounty(w http.ResponseWriter, r *http.Request, botID string) {
	var req struct {
		TaskID string `json:"task_id"`
		Reward string `json:"reward"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[req.TaskID]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	bounty := clawcolab.Bounty{
		ID:     "bounty-" + uuid.NewString(),
		TaskID: task.ID,
		Reward: req.Reward,
	}
	s.bounties = append(s.bounties, bounty)
	task.BountyID = bounty.ID
	s.record(botID, "bounty:create")
	writeJSON(w, http.StatusCreated, bounty)
}

// --- Activity & trust ---

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := append([]clawcolab.ActivityEvent(nil), s.activity...)
	s.mu.Unlock()
	pageItems, page := paginate(events, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"events":      pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func (s *Server) trustScore(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")
	s.mu.Lock()
	score, ok := s.trust[botID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "bot not found")
		return
	}
	writeJSON(w, http.StatusOK, clawcolab.TrustScore{BotID: botID, Score: score})
}

// --- Knowledge ---

func (s *Server) browseKnowledge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]clawcolab.KnowledgeItem(nil), s.knowledge...)
	s.mu.Unlock()
	pageItems, page := paginate(items, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"knowledge":   pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func (s *Server) addKnowledge(w http.ResponseWriter, r *http.Request, botID string) {
	var req clawcolab.KnowledgeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}
	item := clawcolab.KnowledgeItem{
		ID:            "knowledge-" + uuid.NewString(),
		Title:         req.Title,
		Content:       req.Content,
		Category:      req.Category,
		Tags:          req.Tags,
		ContributedBy: botID,
	}
	s.mu.Lock()
	s.knowledge = append(s.knowledge, item)
	s.trust[botID]++
	s.event(botID, "knowledge", "shared "+item.Title)
	s.record(botID, "knowledge:add")
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) searchKnowledge(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))
	s.mu.Lock()
	var matches []clawcolab.KnowledgeItem
	for _, item := range s.knowledge {
		if query == "" || knowledgeMatches(item, query) {
			matches = append(matches, item)
		}
	}
	s.mu.Unlock()
	pageItems, page := paginate(matches, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"knowledge":   pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func knowledgeMatches(item clawcolab.KnowledgeItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Content), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// --- Security ---

func (s *Server) scanContent(w http.ResponseWriter, r *http.Request, botID string) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++
	s.record(botID, "security:scan")
	if strings.Contains(req.Content, UnsafeMarker) {
		s.flagged++
		s.violations[botID] = append(s.violations[botID], clawcolab.Violation{
			ID:     "violation-" + uuid.NewString(),
			Rule:   "unsafe-content",
			Detail: "submitted content matched the unsafe marker",
			At:     time.Now().UTC(),
		})
		writeJSON(w, http.StatusOK, clawcolab.ScanResult{
			Verdict:  "flagged",
			Findings: []string{"unsafe-content"},
		})
		return
	}
	writeJSON(w, http.StatusOK, clawcolab.ScanResult{Verdict: "clean"})
}

func (s *Server) securityStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	violations := 0
	for _, v := range s.violations {
		violations += len(v)
	}
	stats := clawcolab.SecurityStats{Scans: s.scans, Flagged: s.flagged, Violations: violations}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) auditLog(w http.ResponseWriter, r *http.Request, _ string) {
	s.mu.Lock()
	entries := append([]clawcolab.AuditEntry(nil), s.audit...)
	s.mu.Unlock()
	pageItems, page := paginate(entries, r)
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":     pageItems,
		"total":       page.Total,
		"next_offset": page.NextOffset,
	})
}

func (s *Server) myViolations(w http.ResponseWriter, _ *http.Request, botID string) {
	s.mu.Lock()
	violations := append([]clawcolab.Violation(nil), s.violations[botID]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"violations": violations})
}

// --- Platform ---

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, clawcolab.HealthStatus{Status: "ok", Version: "clawtest"})
}

func (s *Server) platformStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := clawcolab.PlatformStats{
		Bots:      len(s.bots),
		Projects:  len(s.projects),
		Ideas:     len(s.ideas),
		Tasks:     len(s.tasks),
		Knowledge: len(s.knowledge),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}
