package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"bskysnap/app/cfg"
)

// Loader handles loading and validation of search profiles
type Loader struct {
	profilesDir string
}

// NewLoader creates a new profile loader
func NewLoader(profilesDir string) *Loader {
	return &Loader{profilesDir: profilesDir}
}

// Resolve returns the search profiles for a run: every profile file from
// the profiles directory when one is configured, otherwise a single
// profile built from the process configuration.
func Resolve(c *cfg.Cfg) ([]*Profile, error) {
	if c.ProfilesDir != "" {
		return NewLoader(c.ProfilesDir).LoadAll()
	}

	p, err := FromCfg(c)
	if err != nil {
		return nil, err
	}

	return []*Profile{p}, nil
}

// FromCfg builds the default profile from process configuration.
func FromCfg(c *cfg.Cfg) (*Profile, error) {
	p := &Profile{
		Name:      "default",
		Query:     c.Query,
		Language:  c.Language,
		MuteWords: SplitMuteWords(c.MuteWords),
		Output:    c.Output,
		RSSOutput: c.RSSOutput,
	}

	if err := normalize(p); err != nil {
		return nil, err
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	return p, nil
}

// LoadAll loads all YAML profile files from the profiles directory,
// ordered by file name.
func (l *Loader) LoadAll() ([]*Profile, error) {
	files, err := filepath.Glob(filepath.Join(l.profilesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	// Also check for .yml extension
	ymlFiles, err := filepath.Glob(filepath.Join(l.profilesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)
	sort.Strings(files)

	profiles := make([]*Profile, 0, len(files))
	for _, file := range files {
		p, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := validate(p); err != nil {
			return nil, fmt.Errorf("invalid profile %s: %w", file, err)
		}

		profiles = append(profiles, p)
		slog.Debug("Loaded search profile", "file", file, "profile", p.Name)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles found in %s", l.profilesDir)
	}

	return profiles, nil
}

// loadFile loads a single YAML profile file
func (l *Loader) loadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	p.Name = strings.TrimSuffix(base, filepath.Ext(base))

	if err := normalize(&p); err != nil {
		return nil, err
	}

	return &p, nil
}

// normalize trims mute words, canonicalizes the language code and
// applies the default output path.
func normalize(p *Profile) error {
	words := make([]string, 0, len(p.MuteWords))
	for _, w := range p.MuteWords {
		if trimmed := strings.TrimSpace(w); trimmed != "" {
			words = append(words, trimmed)
		}
	}
	p.MuteWords = words

	lang, err := ParseLanguage(p.Language)
	if err != nil {
		return err
	}
	p.Language = lang

	if p.Output == "" {
		p.Output = filepath.Join("data", p.Name+".json")
	}

	return nil
}

// validate checks that a profile can produce at least one query
func validate(p *Profile) error {
	if len(p.QueryParts()) == 0 {
		return fmt.Errorf("profile query is required")
	}
	return nil
}
