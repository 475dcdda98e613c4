package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/jobtrawl/jobtrawl/internal/config"
	"github.com/jobtrawl/jobtrawl/internal/logger"
	"github.com/jobtrawl/jobtrawl/internal/pipeline"
	"github.com/jobtrawl/jobtrawl/internal/scheduler"
	"github.com/jobtrawl/jobtrawl/internal/store"
	"github.com/jobtrawl/jobtrawl/pkg/alert"
	"github.com/jobtrawl/jobtrawl/pkg/match"
	"github.com/jobtrawl/jobtrawl/pkg/profile"
	"github.com/jobtrawl/jobtrawl/pkg/source"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
}

func buildBoards(cfg *config.Config) []source.Board {
	var boards []source.Board

	if cfg.Boards.Adzuna.Enabled && cfg.Boards.Adzuna.AppID != "" {
		boards = append(boards, source.NewAdzuna(cfg.Boards.Adzuna.AppID, cfg.Boards.Adzuna.AppKey))
	}
	if cfg.Boards.JSearch.Enabled && cfg.Boards.JSearch.APIKey != "" {
		boards = append(boards, source.NewJSearch(cfg.Boards.JSearch.APIKey))
	}
	if cfg.Boards.LinkedIn.Enabled {
		boards = append(boards, source.NewLinkedIn())
	}
	if cfg.Boards.Reed.Enabled {
		boards = append(boards, source.NewReed())
	}
	if cfg.Boards.Indeed.Enabled {
		boards = append(boards, source.NewIndeed())
	}
	if cfg.Boards.Feeds.Enabled && len(cfg.Boards.Feeds.Feeds) > 0 {
		feeds := make([]source.Feed, len(cfg.Boards.Feeds.Feeds))
		for i, f := range cfg.Boards.Feeds.Feeds {
			feeds[i] = source.Feed{Name: f.Name, URL: f.URL}
		}
		boards = append(boards, source.NewFeeds(feeds, 0))
	}

	return boards
}

// buildCandidate assembles the candidate profile from the configured
// resume, LinkedIn URL and explicit skill lists, in that order.
func buildCandidate(ctx context.Context, cfg *config.Config) (*profile.Candidate, error) {
	candidate := &profile.Candidate{}

	if cfg.Profile.ResumePath != "" {
		parsed, err := profile.ParseResume(cfg.Profile.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("parse resume: %w", err)
		}
		candidate = parsed
	}

	if cfg.Profile.LinkedInURL != "" {
		fetched, err := profile.NewLinkedIn().Fetch(ctx, cfg.Profile.LinkedInURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "linkedin profile fetch failed: %v\n", err)
		} else {
			candidate.AddSkills(fetched.Skills...)
			candidate.AddKeywords(fetched.Keywords...)
			if candidate.ExperienceYears == 0 {
				candidate.ExperienceYears = fetched.ExperienceYears
			}
		}
	}

	candidate.AddSkills(cfg.Profile.Skills...)
	candidate.AddKeywords(cfg.Profile.Keywords...)
	if cfg.Profile.ExperienceYears > 0 {
		candidate.ExperienceYears = cfg.Profile.ExperienceYears
	}

	if len(candidate.Skills) == 0 && len(candidate.Keywords) == 0 {
		return nil, fmt.Errorf("empty profile: set profile.skills, profile.resume_path or profile.linkedin_url")
	}
	return candidate, nil
}

// matchConfig maps config overrides onto scoring defaults. Zero-valued
// fields keep the defaults.
func matchConfig(cfg *config.Config) match.Config {
	mc := match.DefaultConfig()
	m := cfg.Matching

	if m.SkillWeight > 0 {
		mc.SkillWeight = m.SkillWeight
	}
	if m.KeywordWeight > 0 {
		mc.KeywordWeight = m.KeywordWeight
	}
	if m.ExperienceWeight > 0 {
		mc.ExperienceWeight = m.ExperienceWeight
	}
	if m.TitleSkillBonus > 0 {
		mc.TitleSkillBonus = m.TitleSkillBonus
	}
	if m.TitleSkillBonusCap > 0 {
		mc.TitleSkillBonusCap = m.TitleSkillBonusCap
	}
	if m.TitleKeywordBonus > 0 {
		mc.TitleKeywordBonus = m.TitleKeywordBonus
	}
	if m.TitleKeywordBonusCap > 0 {
		mc.TitleKeywordBonusCap = m.TitleKeywordBonusCap
	}
	if m.AnyMatchBonus > 0 {
		mc.AnyMatchBonus = m.AnyMatchBonus
	}
	if m.MatchFloor > 0 {
		mc.MatchFloor = m.MatchFloor
	}
	return mc
}

func buildMatcher(ctx context.Context, cfg *config.Config) (*match.Matcher, error) {
	candidate, err := buildCandidate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return match.New(candidate.MatchProfile(), matchConfig(cfg)), nil
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Console.Enabled {
		notifiers = append(notifiers, alert.NewConsole())
	}
	if cfg.Alerts.File.Enabled && cfg.Alerts.File.Path != "" {
		notifiers = append(notifiers, alert.NewFile(cfg.Alerts.File.Path))
	}
	if cfg.Alerts.Email.Enabled {
		notifiers = append(notifiers, alert.NewEmail(alert.EmailConfig{
			Host:     cfg.Alerts.Email.Host,
			Port:     cfg.Alerts.Email.Port,
			Username: cfg.Alerts.Email.Username,
			Password: cfg.Alerts.Email.Password,
			From:     cfg.Alerts.Email.From,
			To:       cfg.Alerts.Email.To,
		}))
	}
	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Keywords:      cfg.Search.Keywords,
		Location:      cfg.Search.Location,
		EuropeOnly:    cfg.Search.EuropeOnly,
		MaxResults:    cfg.Search.MaxResults,
		MinScore:      cfg.Matching.MinScore,
		FetchDetails:  cfg.Search.FetchDetails,
		DetailWorkers: cfg.Search.DetailWorkers,
	}
}

func runTrawl(keywords []string, location string, details bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	matcher, err := buildMatcher(ctx, cfg)
	if err != nil {
		return err
	}

	boards := buildBoards(cfg)
	if len(boards) == 0 {
		return fmt.Errorf("no boards enabled")
	}

	opts := pipelineOptions(cfg)
	if len(keywords) > 0 {
		opts.Keywords = keywords
	}
	if location != "" {
		opts.Location = location
	}
	if details {
		opts.FetchDetails = true
	}

	p := pipeline.New(boards, db, matcher, buildAlertManager(cfg), log)
	stats, err := p.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("run trawl: %w", err)
	}

	fmt.Printf("found %d postings (%d new, %d matched, %d alerted)\n",
		stats.Found, stats.New, stats.Matched, stats.Alerted)
	return nil
}

func runDaemon() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	matcher, err := buildMatcher(ctx, cfg)
	if err != nil {
		return err
	}

	boards := buildBoards(cfg)
	if len(boards) == 0 {
		return fmt.Errorf("no boards enabled")
	}

	p := pipeline.New(boards, db, matcher, buildAlertManager(cfg), log)
	sched := scheduler.New(p, pipelineOptions(cfg), cfg.Schedule.ParseTrawlInterval(), log)

	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	return nil
}

func runMatches(jsonOutput bool, minScore float64, limit int, board string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if minScore < 0 {
		minScore = cfg.Matching.MinScore
	}

	postings, err := db.ListPostings(context.Background(), store.ListOpts{
		Board:    source.BoardType(strings.ToLower(strings.TrimSpace(board))),
		MinScore: minScore,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("list postings: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(postings)
	}

	if len(postings) == 0 {
		fmt.Println("no matches found (try trawling first: jobtrawl trawl)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tBOARD\tTITLE\tCOMPANY\tSKILLS")
	for _, p := range postings {
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\t%s\n",
			p.MatchScore, p.Board, p.Title, p.Company,
			strings.Join(p.MatchedSkills, ","))
	}
	return w.Flush()
}

func runProfile() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	candidate, err := buildCandidate(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("experience: %d years\n", candidate.ExperienceYears)
	if len(candidate.Roles) > 0 {
		fmt.Printf("roles: %s\n", strings.Join(candidate.Roles, ", "))
	}
	fmt.Printf("skills (%d): %s\n", len(candidate.Skills), strings.Join(candidate.Skills, ", "))
	fmt.Printf("keywords (%d): %s\n", len(candidate.Keywords), strings.Join(candidate.Keywords, ", "))
	return nil
}
