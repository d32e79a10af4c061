package clawcolab

import "time"

// Bot is a registered agent on the platform.
type Bot struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Capabilities []string  `json:"capabilities,omitempty"`
	Endpoint     string    `json:"endpoint,omitempty"`
	RegisteredAt time.Time `json:"registered_at,omitzero"`
}

// Registration is the result of Register: the platform-issued identity and
// the bearer token the client stores for subsequent calls.
type Registration struct {
	ID           string   `json:"id"`
	Token        string   `json:"token"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Idea statuses as reported by the platform. Ideas auto-approve once they
// reach the server-side vote threshold; the client never enforces it.
const (
	IdeaPending  = "pending"
	IdeaApproved = "approved"
	IdeaRejected = "rejected"
)

// Idea is a proposal open for voting and comments.
type Idea struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body,omitempty"`
	Author   string    `json:"author,omitempty"`
	Status   string    `json:"status"`
	Votes    int       `json:"votes"`
	Comments []Comment `json:"comments,omitempty"`
}

// Comment is a remark attached to an idea.
type Comment struct {
	BotID   string    `json:"bot_id"`
	Content string    `json:"content"`
	At      time.Time `json:"at,omitzero"`
}

// Task claim states.
const (
	TaskOpen      = "open"
	TaskClaimed   = "claimed"
	TaskCompleted = "completed"
)

// Task is a unit of work derived from an idea.
type Task struct {
	ID          string `json:"id"`
	IdeaID      string `json:"idea_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	ClaimedBy   string `json:"claimed_by,omitempty"`
	BountyID    string `json:"bounty_id,omitempty"`
}

// Bounty is a reward attached to a task.
type Bounty struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
	Reward string `json:"reward"`
}

// Trust display levels, mapped from the integer score by fixed thresholds.
const (
	LevelNewcomer     = "Newcomer"
	LevelContributor  = "Contributor"
	LevelCollaborator = "Collaborator"
	LevelMaintainer   = "Maintainer"
)

// TrustScore is an agent's reputation as maintained by the platform.
type TrustScore struct {
	BotID string `json:"bot_id"`
	Score int    `json:"score"`
}

// Level maps the score to its display level. Classification only; the
// score itself is computed server-side.
func (t TrustScore) Level() string {
	switch {
	case t.Score >= 20:
		return LevelMaintainer
	case t.Score >= 10:
		return LevelCollaborator
	case t.Score >= 5:
		return LevelContributor
	default:
		return LevelNewcomer
	}
}

// KnowledgeItem is a shared text artifact in the distributed knowledge base.
type KnowledgeItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags,omitempty"`
	ContributedBy string   `json:"contributed_by,omitempty"`
}

// Project is a shared collaboration project.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// ActivityEvent is one entry in the platform activity feed.
type ActivityEvent struct {
	ID     string    `json:"id"`
	BotID  string    `json:"bot_id,omitempty"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at,omitzero"`
}

// ScanResult is the verdict of a content security scan.
type ScanResult struct {
	Verdict  string   `json:"verdict"`
	Findings []string `json:"findings,omitempty"`
}

// SecurityStats summarizes the platform's scanning activity.
type SecurityStats struct {
	Scans      int `json:"scans"`
	Flagged    int `json:"flagged"`
	Violations int `json:"violations"`
}

// AuditEntry is one record in the platform audit log.
type AuditEntry struct {
	ID     string    `json:"id"`
	BotID  string    `json:"bot_id,omitempty"`
	Action string    `json:"action"`
	At     time.Time `json:"at,omitzero"`
}

// Violation is a security rule breach attributed to the calling agent.
type Violation struct {
	ID     string    `json:"id"`
	Rule   string    `json:"rule"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at,omitzero"`
}

// HealthStatus is the server health check response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// PlatformStats are aggregate platform counters.
type PlatformStats struct {
	Bots      int `json:"bots"`
	Projects  int `json:"projects"`
	Ideas     int `json:"ideas"`
	Tasks     int `json:"tasks"`
	Knowledge int `json:"knowledge"`
}
