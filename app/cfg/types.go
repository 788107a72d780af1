package cfg

type Cfg struct {
	// Session configuration
	Identifier string
	Password   string
	Service    string

	// Search configuration
	Query     string
	Language  string
	MuteWords string

	// Output configuration
	Output      string
	RSSOutput   string
	ProfilesDir string

	// Application metadata
	Timeout   int
	UserAgent string
	Debug     bool
	Version   string
}
