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
	DBPath string `long:"db-path" env:"DB_PATH" default:"./digestmail.db" description:"Path to the sqlite database file"`

	// Application configuration
	ChannelsDir       string `long:"channels-dir" env:"CHANNELS_DIR" default:"./channels" description:"Directory containing channel configuration files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" default:"https://webstatus.dev" description:"Public base URL used for feature, logo and subscription links"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for digest delivery"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds"`
	RetentionDays     int    `long:"retention-days" env:"RETENTION_DAYS" default:"30" description:"Days to keep delivery records before pruning"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Mail delivery configuration
	SMTPHost     string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP host for outgoing mail (deliveries are logged only when unset)"`
	SMTPPort     int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP port"`
	SMTPUsername string `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP username"`
	SMTPPassword string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
	SMTPFrom     string `long:"smtp-from" env:"SMTP_FROM" default:"digest@webstatus.dev" description:"From address for digest emails"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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
		DBPath:            raw.DBPath,
		ChannelsDir:       raw.ChannelsDir,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		RetentionDays:     raw.RetentionDays,
		APIAccessKey:      raw.APIAccessKey,
		SMTPHost:          raw.SMTPHost,
		SMTPPort:          raw.SMTPPort,
		SMTPUsername:      raw.SMTPUsername,
		SMTPPassword:      raw.SMTPPassword,
		SMTPFrom:          raw.SMTPFrom,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
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
