package profile

// Profile represents a complete search profile: the queries to run and
// where the resulting snapshot goes.
type Profile struct {
	Name      string   `yaml:"-"`
	Query     string   `yaml:"query"`
	Language  string   `yaml:"language"`
	MuteWords []string `yaml:"mute_words"`
	Output    string   `yaml:"output"`
	RSSOutput string   `yaml:"rss_output"`
}

// QueryParts returns the independent query parts of the profile.
func (p *Profile) QueryParts() []string {
	return SplitQueryParts(p.Query)
}

// EffectiveQueries returns the queries actually sent to the service, one
// per query part, each with the profile's mute words appended as
// exclusion tokens.
func (p *Profile) EffectiveQueries() []string {
	parts := p.QueryParts()

	queries := make([]string, 0, len(parts))
	for _, part := range parts {
		queries = append(queries, AppendMuteWords(part, p.MuteWords))
	}

	return queries
}
