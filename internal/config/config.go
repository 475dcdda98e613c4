package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Profile  ProfileConfig  `yaml:"profile"`
	Search   SearchConfig   `yaml:"search"`
	Boards   BoardsConfig   `yaml:"boards"`
	Matching MatchingConfig `yaml:"matching"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig configures the trawl interval.
type ScheduleConfig struct {
	TrawlInterval string `yaml:"trawl_interval"`
}

// ParseTrawlInterval returns the trawl interval as time.Duration.
func (s ScheduleConfig) ParseTrawlInterval() time.Duration {
	d, err := time.ParseDuration(s.TrawlInterval)
	if err != nil {
		return 4 * time.Hour
	}
	return d
}

// ProfileConfig describes the candidate being matched against.
type ProfileConfig struct {
	ResumePath      string   `yaml:"resume_path"`
	LinkedInURL     string   `yaml:"linkedin_url"`
	Skills          []string `yaml:"skills"`
	Keywords        []string `yaml:"keywords"`
	ExperienceYears int      `yaml:"experience_years"`
}

// SearchConfig controls what is searched for.
type SearchConfig struct {
	Keywords      []string `yaml:"keywords"`
	Location      string   `yaml:"location"`
	EuropeOnly    bool     `yaml:"europe_only"`
	MaxResults    int      `yaml:"max_results"`
	FetchDetails  bool     `yaml:"fetch_details"`
	DetailWorkers int      `yaml:"detail_workers"`
}

// BoardsConfig holds configuration for all job boards.
type BoardsConfig struct {
	Adzuna   AdzunaConfig   `yaml:"adzuna"`
	JSearch  JSearchConfig  `yaml:"jsearch"`
	LinkedIn LinkedInConfig `yaml:"linkedin"`
	Reed     ReedConfig     `yaml:"reed"`
	Indeed   IndeedConfig   `yaml:"indeed"`
	Feeds    FeedsConfig    `yaml:"feeds"`
}

// AdzunaConfig for the Adzuna API board.
type AdzunaConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppID   string `yaml:"app_id"`
	AppKey  string `yaml:"app_key"`
}

// JSearchConfig for the JSearch RapidAPI board.
type JSearchConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// LinkedInConfig for the LinkedIn scraper board.
type LinkedInConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ReedConfig for the Reed scraper board.
type ReedConfig struct {
	Enabled bool `yaml:"enabled"`
}

// IndeedConfig for the Indeed scraper board.
type IndeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

// FeedsConfig for the RSS/Atom job feed board.
type FeedsConfig struct {
	Enabled bool       `yaml:"enabled"`
	Feeds   []FeedItem `yaml:"feeds"`
}

// FeedItem is a single job feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// MatchingConfig configures relevance scoring. Zero-valued bonus and
// weight fields fall back to the scorer's defaults.
type MatchingConfig struct {
	MinScore             float64 `yaml:"min_score"`
	SkillWeight          float64 `yaml:"skill_weight"`
	KeywordWeight        float64 `yaml:"keyword_weight"`
	ExperienceWeight     float64 `yaml:"experience_weight"`
	TitleSkillBonus      float64 `yaml:"title_skill_bonus"`
	TitleSkillBonusCap   float64 `yaml:"title_skill_bonus_cap"`
	TitleKeywordBonus    float64 `yaml:"title_keyword_bonus"`
	TitleKeywordBonusCap float64 `yaml:"title_keyword_bonus_cap"`
	AnyMatchBonus        float64 `yaml:"any_match_bonus"`
	MatchFloor           float64 `yaml:"match_floor"`
}

// AlertsConfig configures alert destinations.
type AlertsConfig struct {
	Console ConsoleConfig `yaml:"console"`
	File    FileConfig    `yaml:"file"`
	Email   EmailConfig   `yaml:"email"`
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// ConsoleConfig for terminal alerts.
type ConsoleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// FileConfig for the JSON matches file.
type FileConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// EmailConfig for SMTP alerts.
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./jobtrawl.db"},
		Schedule: ScheduleConfig{TrawlInterval: "4h"},
		Search: SearchConfig{
			Keywords:      []string{"it support engineer", "devops engineer"},
			Location:      "London",
			EuropeOnly:    true,
			MaxResults:    50,
			FetchDetails:  false,
			DetailWorkers: 4,
		},
		Boards: BoardsConfig{
			Adzuna:   AdzunaConfig{Enabled: false},
			JSearch:  JSearchConfig{Enabled: false},
			LinkedIn: LinkedInConfig{Enabled: true},
			Reed:     ReedConfig{Enabled: true},
			Indeed:   IndeedConfig{Enabled: false},
			Feeds: FeedsConfig{
				Enabled: false,
				Feeds: []FeedItem{
					{Name: "WeWorkRemotely DevOps", URL: "https://weworkremotely.com/categories/remote-devops-sysadmin-jobs.rss"},
				},
			},
		},
		Matching: MatchingConfig{MinScore: 0.5},
		Alerts: AlertsConfig{
			Console: ConsoleConfig{Enabled: true},
			File:    FileConfig{Enabled: true, Path: "./matches.json"},
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOBTRAWL_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ADZUNA_APP_ID"); v != "" {
		cfg.Boards.Adzuna.AppID = v
		cfg.Boards.Adzuna.Enabled = true
	}
	if v := os.Getenv("ADZUNA_APP_KEY"); v != "" {
		cfg.Boards.Adzuna.AppKey = v
	}
	if v := os.Getenv("JSEARCH_API_KEY"); v != "" {
		cfg.Boards.JSearch.APIKey = v
		cfg.Boards.JSearch.Enabled = true
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Alerts.Email.Password = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
}
