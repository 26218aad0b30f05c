// Package config holds the giveaway settings. Values are layered: built-in
// defaults, then an optional YAML file, then .env and GIVEAWAY_* environment
// variables, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "giveaway.yaml"

const (
	ChartPie = "pie"
	ChartBar = "bar"

	NotifyModeOpen    = "open"
	NotifyModeBrowser = "browser"
)

const (
	DefaultTemplate = "Hello {{.Name}}, you are selected to join our '{{.Course}}' course!"
	DefaultCourse   = "Learn Python in 16 days"
	DefaultBaseURL  = "https://web.whatsapp.com/send"
)

type Config struct {
	File      string          `yaml:"file"`
	Sheet     string          `yaml:"sheet"`
	Columns   Columns         `yaml:"columns"`
	Chart     ChartConfig     `yaml:"chart"`
	Animation AnimationConfig `yaml:"animation"`
	Notify    NotifyConfig    `yaml:"notify"`
	Report    ReportConfig    `yaml:"report"`
	Log       LogConfig       `yaml:"log"`
	Seed      *uint64         `yaml:"seed"`
}

type Columns struct {
	Name    string `yaml:"name"`
	Contact string `yaml:"contact"`
}

type ChartConfig struct {
	Style  string `yaml:"style"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type AnimationConfig struct {
	Rounds      int           `yaml:"rounds"`
	Interval    time.Duration `yaml:"interval"`
	MaxDuration time.Duration `yaml:"max_duration"`
}

type NotifyConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Mode       string        `yaml:"mode"`
	BaseURL    string        `yaml:"base_url"`
	Template   string        `yaml:"template"`
	Course     string        `yaml:"course"`
	SendDelay  time.Duration `yaml:"send_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	ProfileDir string        `yaml:"profile_dir"`
}

type ReportConfig struct {
	Dir string `yaml:"dir"`
	// Font is a TrueType file for names outside cp1252.
	Font string `yaml:"font"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default mirrors the behaviour of the classic attendees.csv workflow.
func Default() *Config {
	return &Config{
		File: "attendees.csv",
		Columns: Columns{
			Name:    "Name",
			Contact: "Mobile Number",
		},
		Chart: ChartConfig{
			Style:  ChartPie,
			Width:  800,
			Height: 600,
		},
		Animation: AnimationConfig{
			Rounds:      10,
			Interval:    100 * time.Millisecond,
			MaxDuration: 30 * time.Second,
		},
		Notify: NotifyConfig{
			Enabled:   true,
			Mode:      NotifyModeOpen,
			BaseURL:   DefaultBaseURL,
			Template:  DefaultTemplate,
			Course:    DefaultCourse,
			SendDelay: 10 * time.Second,
			Timeout:   90 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path on top of the defaults and applies the environment.
// A missing file is only an error when the caller named it explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GIVEAWAY_* variables. LOG_LEVEL is honoured
// as well for parity with the usual tooling.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("GIVEAWAY_FILE", &c.File)
	str("GIVEAWAY_SHEET", &c.Sheet)
	str("GIVEAWAY_NAME_COLUMN", &c.Columns.Name)
	str("GIVEAWAY_CONTACT_COLUMN", &c.Columns.Contact)
	str("GIVEAWAY_CHART", &c.Chart.Style)
	str("GIVEAWAY_NOTIFY_MODE", &c.Notify.Mode)
	str("GIVEAWAY_COURSE", &c.Notify.Course)
	str("GIVEAWAY_PROFILE_DIR", &c.Notify.ProfileDir)
	str("GIVEAWAY_REPORT_DIR", &c.Report.Dir)
	str("GIVEAWAY_REPORT_FONT", &c.Report.Font)
	str("LOG_LEVEL", &c.Log.Level)
	str("GIVEAWAY_LOG_LEVEL", &c.Log.Level)
	str("GIVEAWAY_LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("GIVEAWAY_NOTIFY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GIVEAWAY_NOTIFY: %w", err)
		}
		c.Notify.Enabled = b
	}
	if v, ok := lookup("GIVEAWAY_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("GIVEAWAY_SEED: %w", err)
		}
		c.Seed = &seed
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("config: attendee file is required")
	}
	if strings.TrimSpace(c.Columns.Name) == "" {
		return errors.New("config: name column is required")
	}
	switch c.Chart.Style {
	case ChartPie, ChartBar:
	default:
		return fmt.Errorf("config: unknown chart style %q (want %s or %s)", c.Chart.Style, ChartPie, ChartBar)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("config: chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Animation.Rounds <= 0 {
		return fmt.Errorf("config: animation rounds must be positive, got %d", c.Animation.Rounds)
	}
	if c.Animation.Interval <= 0 {
		return fmt.Errorf("config: animation interval must be positive, got %s", c.Animation.Interval)
	}
	if !c.Notify.Enabled {
		return nil
	}
	switch c.Notify.Mode {
	case NotifyModeOpen, NotifyModeBrowser:
	default:
		return fmt.Errorf("config: unknown notify mode %q", c.Notify.Mode)
	}
	u, err := url.Parse(c.Notify.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid notify base url %q", c.Notify.BaseURL)
	}
	if strings.TrimSpace(c.Notify.Template) == "" {
		return errors.New("config: notify template is required")
	}
	return nil
}
