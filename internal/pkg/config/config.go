package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (DB connection, SMTP
//   credentials, etc.)
// - default: Tuning values with sensible production defaults (thresholds,
//   schedules, timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Search    SearchConfig
	Dedup     DedupConfig
	Outreach  OutreachConfig
	Scheduler SchedulerConfig
	SMTP      SMTPConfig
	Telephony TelephonyConfig
	Sources   SourcesConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	// Shared secret expected in the X-Webhook-Token header of inbound
	// response callbacks.
	WebhookToken string `envconfig:"WEBHOOK_TOKEN" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Paris"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Webhook-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Paris"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"`
}

// SearchConfig is the default search criteria passed to collectors.
type SearchConfig struct {
	Cities          []string `envconfig:"SEARCH_CITIES" default:"Paris,Lyon,Marseille,Toulouse,Nice"`
	MinPrice        int      `envconfig:"MIN_PRICE" default:"500"`
	MaxPrice        int      `envconfig:"MAX_PRICE" default:"1500"`
	MinRooms        int      `envconfig:"MIN_ROOMS" default:"1"`
	MaxRooms        int      `envconfig:"MAX_ROOMS" default:"4"`
	PropertyTypes   []string `envconfig:"PROPERTY_TYPES" default:"apartment,studio"`
	Keywords        []string `envconfig:"SEARCH_KEYWORDS" default:"balcon,parking,métro,transport"`
	ExcludeKeywords []string `envconfig:"EXCLUDE_KEYWORDS" default:"meublé,furnished,colocation"`
}

// DedupConfig holds the empirically tuned matching thresholds.
type DedupConfig struct {
	AddressThreshold     float64 `envconfig:"ADDRESS_SIMILARITY_THRESHOLD" default:"0.85"`
	DescriptionThreshold float64 `envconfig:"DESCRIPTION_SIMILARITY_THRESHOLD" default:"0.75"`
	PriceThreshold       float64 `envconfig:"PRICE_DIFFERENCE_THRESHOLD" default:"50"`
}

type OutreachConfig struct {
	MaxAttempts   int           `envconfig:"MAX_CONTACT_ATTEMPTS" default:"3"`
	FollowUpDelay time.Duration `envconfig:"FOLLOW_UP_DELAY" default:"24h"`
}

type SchedulerConfig struct {
	Enabled         bool          `envconfig:"ENABLE_SCHEDULER" default:"true"`
	CollectionSpec  string        `envconfig:"COLLECTION_SCHEDULE" default:"0 9,15,21 * * *"`
	InitiationSpec  string        `envconfig:"INITIATION_SCHEDULE" default:"0 10,16 * * *"`
	FollowUpSpec    string        `envconfig:"FOLLOW_UP_SCHEDULE" default:"0 11,17 * * *"`
	RetentionSpec   string        `envconfig:"RETENTION_SCHEDULE" default:"0 2 * * *"`
	CollectionGrace time.Duration `envconfig:"COLLECTION_MISFIRE_GRACE" default:"10m"`
	InitiationGrace time.Duration `envconfig:"INITIATION_MISFIRE_GRACE" default:"5m"`
	FollowUpGrace   time.Duration `envconfig:"FOLLOW_UP_MISFIRE_GRACE" default:"5m"`
	RetentionGrace  time.Duration `envconfig:"RETENTION_MISFIRE_GRACE" default:"1h"`
	StalenessWindow time.Duration `envconfig:"STALENESS_WINDOW" default:"168h"`
	JobRunRetention time.Duration `envconfig:"JOB_RUN_RETENTION" default:"720h"`
	ShutdownGrace   time.Duration `envconfig:"SHUTDOWN_GRACE" default:"30s"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_SERVER" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME" required:"true"`
	Password string `envconfig:"SMTP_PASSWORD" required:"true"`
	From     string `envconfig:"EMAIL_FROM" default:""`
	FromName string `envconfig:"EMAIL_FROM_NAME" default:"Rental Hunter"`
}

type TelephonyConfig struct {
	AccountSID string `envconfig:"TELEPHONY_ACCOUNT_SID" default:""`
	AuthToken  string `envconfig:"TELEPHONY_AUTH_TOKEN" default:""`
	FromNumber string `envconfig:"TELEPHONY_FROM_NUMBER" default:""`
	BaseURL    string `envconfig:"TELEPHONY_BASE_URL" default:"https://api.twilio.com"`
}

// SourcesConfig enables individual listing sources. The collector for a
// disabled source is skipped by the collection pass.
type SourcesConfig struct {
	Enabled          []string      `envconfig:"ENABLED_SOURCES" default:"seloger"`
	SeLogerBaseURL   string        `envconfig:"SELOGER_BASE_URL" default:"https://www.seloger.com"`
	LeboncoinBaseURL string        `envconfig:"LEBONCOIN_BASE_URL" default:"https://www.leboncoin.fr"`
	RequestTimeout   time.Duration `envconfig:"COLLECTOR_TIMEOUT" default:"20s"`
	UserAgent        string        `envconfig:"COLLECTOR_USER_AGENT" default:"rental-hunter/1.0"`
}

func (s SourcesConfig) IsEnabled(name string) bool {
	for _, n := range s.Enabled {
		if n == name {
			return true
		}
	}
	return false
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *SMTPConfig) FromAddress() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8889", // Test port
			WebhookToken: "test-token",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Paris",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Paris",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		Search: SearchConfig{
			Cities:   []string{"Paris"},
			MinPrice: 500,
			MaxPrice: 1500,
			MinRooms: 1,
			MaxRooms: 4,
		},
		Dedup: DedupConfig{
			AddressThreshold:     0.85,
			DescriptionThreshold: 0.75,
			PriceThreshold:       50,
		},
		Outreach: OutreachConfig{
			MaxAttempts:   3,
			FollowUpDelay: 24 * time.Hour,
		},
		Scheduler: SchedulerConfig{
			CollectionSpec:  "0 9,15,21 * * *",
			InitiationSpec:  "0 10,16 * * *",
			FollowUpSpec:    "0 11,17 * * *",
			RetentionSpec:   "0 2 * * *",
			CollectionGrace: 10 * time.Minute,
			InitiationGrace: 5 * time.Minute,
			FollowUpGrace:   5 * time.Minute,
			RetentionGrace:  time.Hour,
			StalenessWindow: 7 * 24 * time.Hour,
			JobRunRetention: 30 * 24 * time.Hour,
		},
		Sources: SourcesConfig{
			Enabled: []string{"seloger"},
		},
	}
}
