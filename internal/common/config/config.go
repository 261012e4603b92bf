// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Analytics     AnalyticsConfig    `mapstructure:"analytics"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	EventIndex string   `mapstructure:"event_index"`
}

// --- Analytics Configuration ---

// AnalyticsConfig holds the business baselines and status thresholds the
// calculators compare against. Defaults match the historical dashboard
// constants; tests override them deterministically.
type AnalyticsConfig struct {
	Baselines  BaselineConfig  `mapstructure:"baselines"`
	Thresholds ThresholdConfig `mapstructure:"thresholds"`
	CacheTTL   int             `mapstructure:"cache_ttl"` // seconds, 0 disables the summary cache
}

// BaselineConfig holds fixed historical reference values. None of these are
// derived from data; they represent the pre-automation comparison period.
type BaselineConfig struct {
	Revenue                  float64 `mapstructure:"revenue"`                    // default 125000
	DealSize                 float64 `mapstructure:"deal_size"`                  // default 4500
	ResponseRate             float64 `mapstructure:"response_rate"`              // default 35 (%)
	TraditionalProposalHours float64 `mapstructure:"traditional_proposal_hours"` // default 2.5
	HourlyLaborCost          float64 `mapstructure:"hourly_labor_cost"`          // default 50
	MonthlyAICost            float64 `mapstructure:"monthly_ai_cost"`            // default 15000
}

// ThresholdConfig holds the status classification cutoffs per KPI. Each pair
// is (exceeding_target, on_target); anything lower is below_target.
type ThresholdConfig struct {
	RevenueExceeding      float64 `mapstructure:"revenue_exceeding"`      // default 25
	RevenueOnTarget       float64 `mapstructure:"revenue_on_target"`      // default 20
	EfficiencyExceeding   float64 `mapstructure:"efficiency_exceeding"`   // default 90
	EfficiencyOnTarget    float64 `mapstructure:"efficiency_on_target"`   // default 85
	SatisfactionExceeding float64 `mapstructure:"satisfaction_exceeding"` // default 8.5
	SatisfactionOnTarget  float64 `mapstructure:"satisfaction_on_target"` // default 8.0
	AccuracyExceeding     float64 `mapstructure:"accuracy_exceeding"`     // default 97
	AccuracyOnTarget      float64 `mapstructure:"accuracy_on_target"`     // default 95
	ROIExceeding          float64 `mapstructure:"roi_exceeding"`          // default 400
	ROIOnTarget           float64 `mapstructure:"roi_on_target"`          // default 300
	CriticalErrorRate     float64 `mapstructure:"critical_error_rate"`    // default 5 (%)
}

// NotificationConfig holds settings for alert fan-out. Everything here is
// best-effort: failures are logged, never surfaced to API callers.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
	} `mapstructure:"email"`
	Webhook struct {
		Enabled bool   `mapstructure:"enabled"`
		URL     string `mapstructure:"url"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"webhook"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
