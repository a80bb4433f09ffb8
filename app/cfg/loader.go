package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"hbcaix_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"hbcaix_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"hbcaix" description:"Database name"`
	DBSSLMode  string `long:"db-sslmode" env:"DB_SSLMODE" default:"disable" description:"Database SSL mode"`

	// Application configuration
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	ClubConfigPath  string `long:"club-config" env:"CLUB_CONFIG" default:"./club.yml" description:"Path to the club settings file"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the admin endpoints (optional)"`
	CooldownSeconds int    `long:"cooldown" env:"SYNC_COOLDOWN" default:"5" description:"Cooldown in seconds between team scrapes"`
	SyncOnStartup   bool   `long:"sync-on-startup" env:"SYNC_ON_STARTUP" description:"Run a full sync immediately after startup"`

	// Scraper configuration
	BrowserPath    string `long:"browser-path" env:"BROWSER_PATH" description:"Chromium executable path (optional, bundled browser by default)"`
	NavTimeout     int    `long:"nav-timeout" env:"NAV_TIMEOUT" default:"30" description:"Page navigation timeout in seconds"`
	ConsentTimeout int    `long:"consent-timeout" env:"CONSENT_TIMEOUT" default:"3" description:"Cookie consent dialog wait in seconds"`

	// Schedule
	DailySpec   string `long:"daily-spec" env:"DAILY_SPEC" default:"30 6 * * *" description:"Cron expression for the daily sync"`
	MidweekSpec string `long:"midweek-spec" env:"MIDWEEK_SPEC" default:"0 22 * * 3" description:"Cron expression for the mid-week sync"`
	WeekendSpec string `long:"weekend-spec" env:"WEEKEND_SPEC" default:"0 18 * * 6" description:"Cron expression for the weekend sync"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"HBCAixSync/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Europe/Paris" description:"Timezone for kickoff times and schedules"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

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
		DBHost:          raw.DBHost,
		DBPort:          raw.DBPort,
		DBUser:          raw.DBUser,
		DBPassword:      raw.DBPassword,
		DBName:          raw.DBName,
		DBSSLMode:       raw.DBSSLMode,
		Port:            raw.Port,
		ClubConfigPath:  raw.ClubConfigPath,
		APIAccessKey:    raw.APIAccessKey,
		CooldownSeconds: raw.CooldownSeconds,
		SyncOnStartup:   raw.SyncOnStartup,
		BrowserPath:     raw.BrowserPath,
		NavTimeout:      raw.NavTimeout,
		ConsentTimeout:  raw.ConsentTimeout,
		DailySpec:       raw.DailySpec,
		MidweekSpec:     raw.MidweekSpec,
		WeekendSpec:     raw.WeekendSpec,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Location returns the club timezone. Kickoff times on the federation site
// are local times, so every parsed date is anchored here.
func Location() *time.Location {
	cfg := Get()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
