package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"salespipeline/internal/models"
	"salespipeline/internal/pipeline"
)

const DefaultPath = "config/config.yaml"

type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // postgres | sqlite
	DSN    string `yaml:"url" toml:"url"`
}

type Operator struct {
	Email        string `yaml:"email" toml:"email"`
	PasswordHash string `yaml:"password_hash" toml:"password_hash"` // bcrypt
	RoleID       int    `yaml:"role_id" toml:"role_id"`
	UserID       int    `yaml:"user_id" toml:"user_id"`
}

type AuthConfig struct {
	JWTSecret     string     `yaml:"jwt_secret" toml:"jwt_secret"`
	TokenTTLHours int        `yaml:"token_ttl_hours" toml:"token_ttl_hours"`
	Operators     []Operator `yaml:"operators" toml:"operators"`
}

type EmailConfig struct {
	SMTPHost     string   `yaml:"smtp_host" toml:"smtp_host"`
	SMTPPort     int      `yaml:"smtp_port" toml:"smtp_port"`
	SMTPUser     string   `yaml:"smtp_user" toml:"smtp_user"`
	SMTPPassword string   `yaml:"smtp_password" toml:"smtp_password"`
	FromEmail    string   `yaml:"from_email" toml:"from_email"`
	Recipients   []string `yaml:"recipients" toml:"recipients"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" toml:"bot_token"`
	ChatID   int64  `yaml:"chat_id" toml:"chat_id"`
}

type FilesConfig struct {
	RootDir  string `yaml:"root_dir" toml:"root_dir"`
	FontPath string `yaml:"font_path" toml:"font_path"` // TTF for reports; core Helvetica when empty
}

// WindowConfig overrides one stage window. An omitted bound keeps the
// default; an explicit max_days of 0 removes the upper bound.
type WindowConfig struct {
	MinDays *float64 `yaml:"min_days" toml:"min_days"`
	MaxDays *float64 `yaml:"max_days" toml:"max_days"`
}

type DemoOverrideConfig struct {
	Enabled    *bool  `yaml:"enabled" toml:"enabled"`
	From       string `yaml:"from" toml:"from"`
	To         string `yaml:"to" toml:"to"`
	Specialist string `yaml:"specialist" toml:"specialist"`
}

// PipelineConfig overrides pipeline.DefaultPolicy. Zero values keep the
// defaults.
type PipelineConfig struct {
	QualifyBANT          int                     `yaml:"qualify_bant" toml:"qualify_bant"`
	IntelligenceBANT     int                     `yaml:"intelligence_bant" toml:"intelligence_bant"`
	OutreachBANT         int                     `yaml:"outreach_bant" toml:"outreach_bant"`
	OutreachCompleteness int                     `yaml:"outreach_completeness" toml:"outreach_completeness"`
	NegotiationReadiness float64                 `yaml:"negotiation_readiness" toml:"negotiation_readiness"`
	EscalationBANT       int                     `yaml:"escalation_bant" toml:"escalation_bant"`
	BatchConcurrency     int                     `yaml:"batch_concurrency" toml:"batch_concurrency"`
	StageWindows         map[string]WindowConfig `yaml:"stage_windows" toml:"stage_windows"`
	DemoOverride         DemoOverrideConfig      `yaml:"demo_override" toml:"demo_override"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port" toml:"port"`
	} `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Auth     AuthConfig     `yaml:"auth" toml:"auth"`
	Email    EmailConfig    `yaml:"email" toml:"email"`
	Telegram TelegramConfig `yaml:"telegram" toml:"telegram"`
	Files    FilesConfig    `yaml:"files" toml:"files"`
	Pipeline PipelineConfig `yaml:"pipeline" toml:"pipeline"`
}

// LoadConfig reads the file named by PIPELINE_CONFIG, falling back to
// config/config.yaml.
func LoadConfig() (*Config, error) {
	path := os.Getenv("PIPELINE_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile decodes YAML or TOML depending on the extension and fills in
// defaults.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config with only built-in defaults.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 12
	}
	if c.Files.RootDir == "" {
		c.Files.RootDir = "./files"
	}
}

// ToPolicy merges the pipeline section over the default policy and
// validates the result.
func (p PipelineConfig) ToPolicy() (pipeline.Policy, error) {
	pol := pipeline.DefaultPolicy()
	if p.QualifyBANT > 0 {
		pol.QualifyBANT = p.QualifyBANT
	}
	if p.IntelligenceBANT > 0 {
		pol.IntelligenceBANT = p.IntelligenceBANT
	}
	if p.OutreachBANT > 0 {
		pol.OutreachBANT = p.OutreachBANT
	}
	if p.OutreachCompleteness > 0 {
		pol.OutreachCompleteness = p.OutreachCompleteness
	}
	if p.NegotiationReadiness > 0 {
		pol.NegotiationReadiness = p.NegotiationReadiness
	}
	if p.EscalationBANT > 0 {
		pol.EscalationBANT = p.EscalationBANT
	}
	if p.BatchConcurrency > 0 {
		pol.BatchConcurrency = p.BatchConcurrency
	}
	for name, w := range p.StageWindows {
		st, err := models.ParseStage(name)
		if err != nil {
			return pol, fmt.Errorf("pipeline.stage_windows: %w", err)
		}
		win := pol.Windows[st]
		if w.MinDays != nil {
			win.MinDays = *w.MinDays
		}
		if w.MaxDays != nil {
			win.MaxDays = *w.MaxDays
		}
		pol.Windows[st] = win
	}

	o := p.DemoOverride
	if o.Enabled != nil {
		pol.DemoOverride.Enabled = *o.Enabled
	}
	if o.From != "" {
		st, err := models.ParseStage(o.From)
		if err != nil {
			return pol, fmt.Errorf("pipeline.demo_override.from: %w", err)
		}
		pol.DemoOverride.From = st
	}
	if o.To != "" {
		st, err := models.ParseStage(o.To)
		if err != nil {
			return pol, fmt.Errorf("pipeline.demo_override.to: %w", err)
		}
		pol.DemoOverride.To = st
	}
	if o.Specialist != "" {
		pol.DemoOverride.Specialist = models.Specialist(strings.ToUpper(o.Specialist))
	}

	if err := pol.Validate(); err != nil {
		return pol, err
	}
	return pol, nil
}
