package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application configuration
	Port            string
	ClubConfigPath  string
	APIAccessKey    string
	CooldownSeconds int
	SyncOnStartup   bool

	// Scraper configuration
	BrowserPath    string
	NavTimeout     int // seconds, per page navigation
	ConsentTimeout int // seconds, cookie consent dialog wait

	// Schedule (cron expressions, evaluated in the club timezone)
	DailySpec   string
	MidweekSpec string
	WeekendSpec string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
