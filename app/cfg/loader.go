package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// DefaultService is used when no service endpoint is configured.
const DefaultService = "https://bsky.social"

const defaultTimeout = 30

type rawCfg struct {
	// Session configuration
	Identifier string `long:"identifier" env:"BSKY_IDENTIFIER" description:"Account identifier, handle or email (required)" required:"true"`
	Password   string `long:"password" env:"BSKY_PASSWORD" description:"Account app password (required)" required:"true"`
	Service    string `long:"service" env:"BSKY_SERVICE" default:"https://bsky.social" description:"Service endpoint URL"`

	// Search configuration
	Query     string `long:"query" env:"BSKY_SEARCH_QUERY" description:"Comma-separated search query parts"`
	Language  string `long:"lang" env:"BSKY_SEARCH_LANG" description:"Language code to filter search results (e.g., en)"`
	MuteWords string `long:"mute-words" env:"BSKY_MUTE_WORDS" description:"Comma-separated words excluded from every query"`

	// Output configuration
	Output      string `long:"output" env:"BSKY_OUTPUT" default:"data/feed.json" description:"Feed snapshot output path"`
	RSSOutput   string `long:"rss-output" env:"BSKY_RSS_OUTPUT" description:"Optional RSS rendition output path"`
	ProfilesDir string `long:"profiles-dir" env:"BSKY_PROFILES_DIR" description:"Directory containing search profile files (overrides --query)"`

	// Application metadata
	Timeout   int    `long:"timeout" env:"BSKY_TIMEOUT" default:"30" description:"HTTP timeout in seconds"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Identifier:  raw.Identifier,
		Password:    raw.Password,
		Service:     raw.Service,
		Query:       raw.Query,
		Language:    raw.Language,
		MuteWords:   raw.MuteWords,
		Output:      raw.Output,
		RSSOutput:   raw.RSSOutput,
		ProfilesDir: raw.ProfilesDir,
		Timeout:     raw.Timeout,
		UserAgent:   raw.UserAgent,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills the fields whose zero or blank value stands for
// "use the default": a blank service endpoint, a missing user agent and
// a non-positive timeout.
func applyDefaults(cfg *Cfg) {
	if strings.TrimSpace(cfg.Service) == "" {
		cfg.Service = DefaultService
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fmt.Sprintf("bskysnap/%s", GetVersion())
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
}
