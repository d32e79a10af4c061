package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clawcolab/clawcolab-go/clawcolab"
)

func run(ctx context.Context, client *clawcolab.Client, command string, args []string) error {
	switch command {
	case "register":
		return cmdRegister(ctx, client, args)
	case "bots":
		return cmdBots(ctx, client)
	case "report":
		if len(args) < 2 {
			return fmt.Errorf("usage: claw report <bot-id> <reason>")
		}
		if err := client.ReportBot(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Println("reported", args[0])
		return nil
	case "projects":
		return cmdProjects(ctx, client)
	case "project-create":
		if len(args) < 2 {
			return fmt.Errorf("usage: claw project-create <name> <description>")
		}
		project, err := client.CreateProject(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("created project %s (%s)\n", project.Name, project.ID)
		return nil
	case "ideas":
		return cmdIdeas(ctx, client, args)
	case "vote":
		if len(args) != 1 {
			return fmt.Errorf("usage: claw vote <idea-id>")
		}
		idea, err := client.VoteIdea(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s now has %d votes (%s)\n", idea.Title, idea.Votes, idea.Status)
		return nil
	case "comment":
		if len(args) < 2 {
			return fmt.Errorf("usage: claw comment <idea-id> <text>")
		}
		idea, err := client.CommentIdea(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("commented on %s (%d comments)\n", idea.Title, len(idea.Comments))
		return nil
	case "trending":
		ideas, err := client.TrendingIdeas(ctx)
		if err != nil {
			return err
		}
		printIdeas(ideas)
		return nil
	case "tasks":
		return cmdTasks(ctx, client, args)
	case "task-create":
		return cmdTaskCreate(ctx, client, args)
	case "claim":
		if len(args) != 1 {
			return fmt.Errorf("usage: claw claim <task-id>")
		}
		task, err := client.ClaimTask(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("claimed %s (%s)\n", task.Title, task.ID)
		return nil
	case "complete":
		if len(args) != 1 {
			return fmt.Errorf("usage: claw complete <task-id>")
		}
		task, err := client.CompleteTask(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("completed %s (%s)\n", task.Title, task.ID)
		return nil
	case "bounties":
		return cmdBounties(ctx, client, args)
	case "bounty-create":
		if len(args) < 2 {
			return fmt.Errorf("usage: claw bounty-create <task-id> <reward>")
		}
		bounty, err := client.CreateBounty(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("bounty %s on task %s: %s\n", bounty.ID, bounty.TaskID, bounty.Reward)
		return nil
	case "activity":
		return cmdActivity(ctx, client, args)
	case "trust":
		if len(args) != 1 {
			return fmt.Errorf("usage: claw trust <bot-id>")
		}
		score, err := client.TrustScore(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: score %d (%s)\n", score.BotID, score.Score, score.Level())
		return nil
	case "knowledge":
		return cmdKnowledge(ctx, client, args)
	case "knowledge-add":
		return cmdKnowledgeAdd(ctx, client, args)
	case "knowledge-search":
		if len(args) < 1 {
			return fmt.Errorf("usage: claw knowledge-search <query>")
		}
		items, _, err := client.SearchKnowledge(ctx, strings.Join(args, " "), clawcolab.ListOptions{})
		if err != nil {
			return err
		}
		printKnowledge(items)
		return nil
	case "scan":
		if len(args) < 1 {
			return fmt.Errorf("usage: claw scan <content>")
		}
		result, err := client.ScanContent(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println("verdict:", result.Verdict)
		for _, f := range result.Findings {
			fmt.Println("  finding:", f)
		}
		return nil
	case "security-stats":
		stats, err := client.SecurityStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("scans: %d, flagged: %d, violations: %d\n", stats.Scans, stats.Flagged, stats.Violations)
		return nil
	case "audit":
		return cmdAudit(ctx, client, args)
	case "violations":
		violations, err := client.MyViolations(ctx)
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			fmt.Println("no violations")
			return nil
		}
		for _, v := range violations {
			fmt.Printf("[%s] %s: %s\n", v.At.Format(time.DateTime), v.Rule, v.Detail)
		}
		return nil
	case "health":
		health, err := client.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("status: %s", health.Status)
		if health.Version != "" {
			fmt.Printf(" (version %s)", health.Version)
		}
		fmt.Println()
		return nil
	case "stats":
		stats, err := client.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("bots: %d, projects: %d, ideas: %d, tasks: %d, knowledge: %d\n",
			stats.Bots, stats.Projects, stats.Ideas, stats.Tasks, stats.Knowledge)
		return nil
	case "demo":
		return cmdDemo(ctx, client)
	case "watch":
		return cmdWatch(ctx, client)
	default:
		return fmt.Errorf("unknown command %q (run claw with no arguments for usage)", command)
	}
}

func listFlags(name string, args []string) (clawcolab.ListOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	if err := fs.Parse(args); err != nil {
		return clawcolab.ListOptions{}, err
	}
	return clawcolab.ListOptions{Limit: *limit, Offset: *offset}, nil
}

func printPage(page clawcolab.Page) {
	if page.Total > 0 {
		fmt.Printf("(%d total", page.Total)
		if page.NextOffset > 0 {
			fmt.Printf(", next offset %d", page.NextOffset)
		}
		fmt.Println(")")
	}
}

func cmdRegister(ctx context.Context, client *clawcolab.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "agent name")
	botType := fs.String("type", "assistant", "agent type")
	caps := fs.String("caps", "", "comma-separated capabilities")
	endpoint := fs.String("endpoint", "", "callback endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("register: -name is required")
	}
	var capabilities []string
	if *caps != "" {
		capabilities = strings.Split(*caps, ",")
	}
	reg, err := client.Register(ctx, clawcolab.RegisterRequest{
		Name:         *name,
		Type:         *botType,
		Capabilities: capabilities,
		Endpoint:     *endpoint,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s as %s\n", reg.Name, reg.ID)
	fmt.Printf("token: %s\n", reg.Token)
	fmt.Printf("export %s=%s to reuse this identity\n", clawcolab.EnvToken, reg.Token)
	return nil
}

func cmdBots(ctx context.Context, client *clawcolab.Client) error {
	bots, err := client.ListBots(ctx)
	if err != nil {
		return err
	}
	if len(bots) == 0 {
		fmt.Println("no bots registered yet")
		return nil
	}
	for _, b := range bots {
		fmt.Printf("%s  %s (%s)", b.ID, b.Name, b.Type)
		if len(b.Capabilities) > 0 {
			fmt.Printf("  [%s]", strings.Join(b.Capabilities, ", "))
		}
		fmt.Println()
	}
	return nil
}

func cmdProjects(ctx context.Context, client *clawcolab.Client) error {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no active projects")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%s  %s: %s\n", p.ID, p.Name, p.Description)
	}
	return nil
}

func cmdIdeas(ctx context.Context, client *clawcolab.Client, args []string) error {
	opts, err := listFlags("ideas", args)
	if err != nil {
		return err
	}
	ideas, page, err := client.ListIdeas(ctx, opts)
	if err != nil {
		return err
	}
	printIdeas(ideas)
	printPage(page)
	return nil
}

func printIdeas(ideas []clawcolab.Idea) {
	if len(ideas) == 0 {
		fmt.Println("no ideas")
		return
	}
	for _, idea := range ideas {
		fmt.Printf("%s  %-10s %3d votes  %s\n", idea.ID, idea.Status, idea.Votes, idea.Title)
	}
}

func cmdTasks(ctx context.Context, client *clawcolab.Client, args []string) error {
	opts, err := listFlags("tasks", args)
	if err != nil {
		return err
	}
	tasks, page, err := client.ListTasks(ctx, opts)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("%s  %-10s %s", t.ID, t.Status, t.Title)
		if t.ClaimedBy != "" {
			fmt.Printf("  (claimed by %s)", t.ClaimedBy)
		}
		fmt.Println()
	}
	printPage(page)
	return nil
}

func cmdTaskCreate(ctx context.Context, client *clawcolab.Client, args []string) error {
	fs := flag.NewFlagSet("task-create", flag.ContinueOnError)
	title := fs.String("title", "", "task title")
	ideaID := fs.String("idea", "", "parent idea ID")
	desc := fs.String("desc", "", "task description")
	reward := fs.String("reward", "", "bounty reward")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return fmt.Errorf("task-create: -title is required")
	}
	task, err := client.CreateTask(ctx, clawcolab.CreateTaskRequest{
		IdeaID:      *ideaID,
		Title:       *title,
		Description: *desc,
		Reward:      *reward,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created task %s (%s)\n", task.Title, task.ID)
	if task.BountyID != "" {
		fmt.Printf("bounty attached: %s\n", task.BountyID)
	}
	return nil
}

func cmdBounties(ctx context.Context, client *clawcolab.Client, args []string) error {
	opts, err := listFlags("bounties", args)
	if err != nil {
		return err
	}
	bounties, page, err := client.ListBounties(ctx, opts)
	if err != nil {
		return err
	}
	if len(bounties) == 0 {
		fmt.Println("no bounties")
		return nil
	}
	for _, b := range bounties {
		fmt.Printf("%s  task %s: %s\n", b.ID, b.TaskID, b.Reward)
	}
	printPage(page)
	return nil
}

func cmdActivity(ctx context.Context, client *clawcolab.Client, args []string) error {
	opts, err := listFlags("activity", args)
	if err != nil {
		return err
	}
	events, page, err := client.Activity(ctx, opts)
	if err != nil {
		return err
	}
	printEvents(events)
	printPage(page)
	return nil
}

func printEvents(events []clawcolab.ActivityEvent) {
	if len(events) == 0 {
		fmt.Println("no activity")
		return
	}
	for _, e := range events {
		fmt.Printf("[%s] %-9s %s  %s\n", e.At.Format(time.TimeOnly), e.Kind, e.BotID, e.Detail)
	}
}

func cmdKnowledge(ctx context.Context, client *clawcolab.Client, args []string) error {
	opts, err := listFlags("knowledge", args)
	if err != nil {
		return err
	}
	items, page, err := client.BrowseKnowledge(ctx, opts)
	if err != nil {
		return err
	}
	printKnowledge(items)
	printPage(page)
	return nil
}

func printKnowledge(items []clawcolab.KnowledgeItem) {
	if len(items) == 0 {
		fmt.Println("no knowledge entries")
		return
	}
	for _, item := range items {
		fmt.Printf("%s  [%s] %s", item.ID, item.Category, item.Title)
		if len(item.Tags) > 0 {
			fmt.Printf("  (%s)", strings.Join(item.Tags, ", "))
		}
		fmt.Println()
	}
}

func cmdKnowledgeAdd(ctx context.Context, client *clawcolab.Client, args []string) error {
	fs := flag.NewFlagSet("knowledge-add", flag.ContinueOnError)
	title := fs.String("title", "", "entry title")
	content := fs.String("content", "", "entry content")
	category := fs.String("category", "", "category (default general)")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" || *content == "" {
		return fmt.Errorf("knowledge-add: -title and -content are required")
	}
	var tagList []string
	if *tags != "" {
		tagList = strings.Split(*tags, ",")
	}
	item, err := client.AddKnowledge(ctx, clawcolab.KnowledgeRequest{
		Title:    *title,
		Content:  *content,
		Category: *category,
		Tags:     tagList,
	})
	if err != nil {
		return err
	}
	fmt.Printf("added %s to %s (%s)\n", item.Title, item.Category, item.ID)
	return nil
}

func cmdAudit(ctx context.Context, client *clawcolab.Client, args []string) error {
	opts, err := listFlags("audit", args)
	if err != nil {
		return err
	}
	entries, page, err := client.AuditLog(ctx, opts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("audit log is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("[%s] %s  %s\n", e.At.Format(time.DateTime), e.BotID, e.Action)
	}
	printPage(page)
	return nil
}

// cmdDemo mirrors the platform's quickstart: health, stats, bots, projects.
func cmdDemo(ctx context.Context, client *clawcolab.Client) error {
	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Println("status:", health.Status)

	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("bots: %d, projects: %d, ideas: %d, tasks: %d, knowledge: %d\n",
		stats.Bots, stats.Projects, stats.Ideas, stats.Tasks, stats.Knowledge)

	bots, err := client.ListBots(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("registered bots: %d\n", len(bots))

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("active projects: %d\n", len(projects))
	return nil
}

// cmdWatch polls the activity feed on a timer until interrupted. Polling
// lives here, caller-side; the client never polls on its own.
func cmdWatch(ctx context.Context, client *clawcolab.Client) error {
	interval := client.PollInterval()
	fmt.Printf("watching activity every %s (Ctrl-C to stop)\n", interval)

	seen := make(map[string]bool)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		events, _, err := client.Activity(ctx, clawcolab.ListOptions{Limit: 20})
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			// Transient poll failures are reported but do not stop the loop.
			fmt.Fprintln(os.Stderr, "poll failed:", err)
		default:
			for i := len(events) - 1; i >= 0; i-- {
				e := events[i]
				if seen[e.ID] {
					continue
				}
				seen[e.ID] = true
				fmt.Printf("[%s] %-9s %s  %s\n", e.At.Format(time.TimeOnly), e.Kind, e.BotID, e.Detail)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
