package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	SourcesFile       string
	Port              string
	FetchTimeout      int
	CacheTTL          int
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
