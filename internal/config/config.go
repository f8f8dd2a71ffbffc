package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Redis     RedisConfig     `yaml:"redis"`
	Twitter   TwitterConfig   `yaml:"twitter"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Processor ProcessorConfig `yaml:"processor"`
	Retention RetentionConfig `yaml:"retention"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	LogLevel  string          `yaml:"log_level"`
}

// RabbitMQConfig is optional; an empty URL disables run event publishing.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type TwitterConfig struct {
	BaseURL           string        `yaml:"base_url"`
	APIKey            string        `yaml:"api_key"`
	APIKeyHeader      string        `yaml:"api_key_header"`
	Query             string        `yaml:"query"`
	PageSize          int           `yaml:"page_size"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	Retry             RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// ScoringConfig holds the scoring engine constants; zero values are replaced by defaults.
type ScoringConfig struct {
	DecayLambda              float64            `yaml:"decay_lambda"`
	BotScoreThreshold        float64            `yaml:"bot_score_threshold"`
	BotPenalty               float64            `yaml:"bot_penalty"`
	FluffyFollowersBonus     float64            `yaml:"fluffy_followers_bonus"`
	FluffyFollowersBlockSize int                `yaml:"fluffy_followers_block_size"`
	FluffyFollowerRate       float64            `yaml:"fluffy_follower_rate"`
	MaxBonusMultiplier       float64            `yaml:"max_bonus_multiplier"`
	DailyCapPerAccount       int                `yaml:"daily_cap_per_account"`
	TypeMultipliers          map[string]float64 `yaml:"type_multipliers"`
	EngagementWeights        EngagementWeights  `yaml:"engagement_weights"`
	ReachFactorWeight        float64            `yaml:"reach_factor_weight"`
	OriginalityBonus         float64            `yaml:"originality_bonus"`
}

type EngagementWeights struct {
	Likes    float64 `yaml:"likes"`
	Retweets float64 `yaml:"retweets"`
	Replies  float64 `yaml:"replies"`
	Quotes   float64 `yaml:"quotes"`
}

type ProcessorConfig struct {
	MaxTweetsPerRun  int           `yaml:"max_tweets_per_run"`
	ScoreBatchSize   int           `yaml:"score_batch_size"`
	MaxScoreAttempts int           `yaml:"max_score_attempts"`
	RunTimeout       time.Duration `yaml:"run_timeout"`
}

type RetentionConfig struct {
	TweetDays int `yaml:"tweet_days"`
	LogDays   int `yaml:"log_days"`
}

type SnapshotConfig struct {
	Dir     string `yaml:"dir"`
	Windows []int  `yaml:"windows"`
	Limit   int    `yaml:"limit"`
}

type ScheduleConfig struct {
	Cron     string `yaml:"cron"`
	Timezone string `yaml:"timezone"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AdminToken     string   `yaml:"admin_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment variables in data and decodes it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	// scoring keys absent from the file keep their defaults, explicit zeros stay
	cfg := Config{Scoring: DefaultScoring()}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.URL != "" {
		if c.RabbitMQ.Exchange == "" {
			c.RabbitMQ.Exchange = "fluffyshare"
		}
		if c.RabbitMQ.RoutingKey == "" {
			c.RabbitMQ.RoutingKey = "runs"
		}
		if c.RabbitMQ.QueueName == "" {
			c.RabbitMQ.QueueName = "fluffyshare_runs"
		}
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "fluffyshare:"
	}
	if c.Twitter.BaseURL == "" {
		c.Twitter.BaseURL = "https://api.twitter.com"
	}
	if c.Twitter.APIKeyHeader == "" {
		c.Twitter.APIKeyHeader = "X-API-Key"
	}
	if c.Twitter.Query == "" {
		c.Twitter.Query = "@fluffyshare"
	}
	if c.Twitter.PageSize == 0 {
		c.Twitter.PageSize = 100
	}
	if c.Twitter.Timeout == 0 {
		c.Twitter.Timeout = 30 * time.Second
	}
	if c.Twitter.RequestsPerSecond == 0 {
		c.Twitter.RequestsPerSecond = 1
	}
	if c.Twitter.Burst == 0 {
		c.Twitter.Burst = 5
	}
	if c.Twitter.Retry.MaxAttempts == 0 {
		c.Twitter.Retry.MaxAttempts = 3
	}
	if c.Twitter.Retry.InitialBackoff == 0 {
		c.Twitter.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Twitter.Retry.MaxBackoff == 0 {
		c.Twitter.Retry.MaxBackoff = 30 * time.Second
	}
	c.Scoring.fillTypeMultipliers()
	if c.Processor.MaxTweetsPerRun == 0 {
		c.Processor.MaxTweetsPerRun = 500
	}
	if c.Processor.ScoreBatchSize == 0 {
		c.Processor.ScoreBatchSize = 1000
	}
	if c.Processor.MaxScoreAttempts == 0 {
		c.Processor.MaxScoreAttempts = 3
	}
	if c.Processor.RunTimeout == 0 {
		c.Processor.RunTimeout = 30 * time.Minute
	}
	if c.Retention.TweetDays == 0 {
		c.Retention.TweetDays = 60
	}
	if c.Retention.LogDays == 0 {
		c.Retention.LogDays = 30
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = "data/fluffyshare"
	}
	if len(c.Snapshot.Windows) == 0 {
		c.Snapshot.Windows = []int{7, 30, 90}
	}
	if c.Snapshot.Limit == 0 {
		c.Snapshot.Limit = 100
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 3 * * *"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "UTC"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// fillTypeMultipliers restores default multipliers for tweet types the file
// left out or cleared.
func (s *ScoringConfig) fillTypeMultipliers() {
	defaults := DefaultScoring().TypeMultipliers
	if s.TypeMultipliers == nil {
		s.TypeMultipliers = make(map[string]float64, len(defaults))
	}
	for k, v := range defaults {
		if _, ok := s.TypeMultipliers[k]; !ok {
			s.TypeMultipliers[k] = v
		}
	}
}

func (c *Config) validate() error {
	if c.Twitter.APIKey == "" {
		return errors.New("twitter.api_key is required")
	}
	if c.Scoring.BotPenalty < 0 || c.Scoring.BotPenalty > 1 {
		return fmt.Errorf("scoring.bot_penalty must be within [0,1], got %v", c.Scoring.BotPenalty)
	}
	if c.Scoring.MaxBonusMultiplier < 1 {
		return fmt.Errorf("scoring.max_bonus_multiplier must be >= 1, got %v", c.Scoring.MaxBonusMultiplier)
	}
	if c.Scoring.DecayLambda < 0 {
		return fmt.Errorf("scoring.decay_lambda must be >= 0, got %v", c.Scoring.DecayLambda)
	}
	if c.Scoring.DailyCapPerAccount < 1 {
		return fmt.Errorf("scoring.daily_cap_per_account must be >= 1, got %d", c.Scoring.DailyCapPerAccount)
	}
	if c.Processor.MaxScoreAttempts < 1 {
		return fmt.Errorf("processor.max_score_attempts must be >= 1, got %d", c.Processor.MaxScoreAttempts)
	}
	if c.Twitter.PageSize < 10 || c.Twitter.PageSize > 100 {
		return fmt.Errorf("twitter.page_size must be within [10,100], got %d", c.Twitter.PageSize)
	}
	return nil
}

// DefaultScoring returns the scoring constants used when none are configured.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		DecayLambda:              0.05,
		BotScoreThreshold:        0.7,
		BotPenalty:               0.5,
		FluffyFollowersBonus:     0.1,
		FluffyFollowersBlockSize: 10,
		FluffyFollowerRate:       0.05,
		MaxBonusMultiplier:       2.0,
		DailyCapPerAccount:       10,
		TypeMultipliers: map[string]float64{
			"original": 1.0,
			"quote":    0.9,
			"reply":    0.7,
			"retweet":  0.4,
		},
		EngagementWeights: EngagementWeights{Likes: 1.0, Retweets: 1.2, Replies: 1.5, Quotes: 1.0},
		ReachFactorWeight: 0.2,
		OriginalityBonus:  1.0,
	}
}
