package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging        LoggingConfig        `yaml:"logging"`
	Feed           FeedConfig           `yaml:"feed"`
	Trending       TrendingConfig       `yaml:"trending"`
	EmbeddingModel string               `yaml:"embedding_model"`
	EmbeddingQuota EmbeddingQuotaConfig `yaml:"embedding_quota"`

	// Populated from environment variables after godotenv runs.
	MongoURI     string `yaml:"-"`
	MongoDBName  string `yaml:"-"`
	RedisAddr    string `yaml:"-"`
	GeminiApiKey string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeedConfig holds the tunable knobs of the feed generation engine.
// These are configuration, not business logic: experiments override them
// per deployment (and per request, for the factor weights).
type FeedConfig struct {
	Weights              FeedWeights    `yaml:"weights"`
	CounterWeights       CounterWeights `yaml:"counter_weights"`
	HalfLifeHours        float64        `yaml:"half_life_hours"`
	DecayFloor           float64        `yaml:"decay_floor"`
	PoolPad              int            `yaml:"pool_pad"`
	CandidateWindowHours int            `yaml:"candidate_window_hours"`
	CacheTTLSeconds      int            `yaml:"cache_ttl_seconds"`
}

// FeedWeights mirrors the factor weights of the probability cloud sampler.
type FeedWeights struct {
	Recency         float64 `yaml:"recency"`
	Reputation      float64 `yaml:"reputation"`
	Relationship    float64 `yaml:"relationship"`
	TopicSimilarity float64 `yaml:"topic_similarity"`
	Randomness      float64 `yaml:"randomness"`
}

// CounterWeights maps raw engagement counters to their scoring weight.
type CounterWeights struct {
	Likes     float64 `yaml:"likes"`
	Agrees    float64 `yaml:"agrees"`
	Shares    float64 `yaml:"shares"`
	Comments  float64 `yaml:"comments"`
	Dislikes  float64 `yaml:"dislikes"`
	Disagrees float64 `yaml:"disagrees"`
	Reports   float64 `yaml:"reports"`
	Views     float64 `yaml:"views"`
}

type TrendingConfig struct {
	DefaultWindowHours int `yaml:"default_window_hours"`
	MaxWindowHours     int `yaml:"max_window_hours"`
	CacheTTLSeconds    int `yaml:"cache_ttl_seconds"`
}

// EmbeddingQuotaConfig limits calls to the embedding model.
// Values of 0 or below disable the corresponding limit.
type EmbeddingQuotaConfig struct {
	// RequestsPerMinute caps embedding calls per minute.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay caps embedding calls per day.
	RequestsPerDay int `yaml:"requests_per_day"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB_NAME")
	c.RedisAddr = os.Getenv("REDIS_ADDR")
	c.GeminiApiKey = os.Getenv("GEMINI_API_KEY")
	applyDefaults(&c)

	config = &c
	logger.InitWithLevel(c.Logging.Level)
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Feed.HalfLifeHours <= 0 {
		c.Feed.HalfLifeHours = 18
	}
	if c.Feed.DecayFloor <= 0 {
		c.Feed.DecayFloor = 0.05
	}
	if c.Feed.PoolPad <= 0 {
		c.Feed.PoolPad = 50
	}
	if c.Trending.DefaultWindowHours <= 0 {
		c.Trending.DefaultWindowHours = 24
	}
	if c.Trending.MaxWindowHours <= 0 {
		c.Trending.MaxWindowHours = 168
	}
	if c.Trending.CacheTTLSeconds <= 0 {
		c.Trending.CacheTTLSeconds = 60
	}
	if c.Feed.CacheTTLSeconds <= 0 {
		c.Feed.CacheTTLSeconds = 15
	}
	zero := FeedWeights{}
	if c.Feed.Weights == zero {
		c.Feed.Weights = FeedWeights{
			Recency:         0.30,
			Reputation:      0.15,
			Relationship:    0.25,
			TopicSimilarity: 0.15,
			Randomness:      0.15,
		}
	}
	cw := CounterWeights{}
	if c.Feed.CounterWeights == cw {
		c.Feed.CounterWeights = CounterWeights{
			Likes:     1,
			Agrees:    1,
			Shares:    3,
			Comments:  2,
			Dislikes:  -0.5,
			Disagrees: -0.5,
			Reports:   -5,
			Views:     0.01,
		}
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
