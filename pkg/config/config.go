package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Database DatabaseConfig `mapstructure:"database"`
	Data     DataConfig     `mapstructure:"data"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Table    string `mapstructure:"table"`
}

type DataConfig struct {
	// Source selects where raw events come from: "json" or "postgres".
	Source     string `mapstructure:"source"`
	EventsPath string `mapstructure:"events_path"`
	MetaPath   string `mapstructure:"meta_path"`
	CacheDir   string `mapstructure:"cache_dir"`
	// Upgrade forces every derived artifact to be rebuilt at startup.
	Upgrade bool `mapstructure:"upgrade"`
}

type EngineConfig struct {
	MinSupport           float64 `mapstructure:"min_support"`
	Metric               string  `mapstructure:"metric"`
	MinThreshold         float64 `mapstructure:"min_threshold"`
	CorrelationThreshold float64 `mapstructure:"correlation_threshold"`
	FinalCount           int     `mapstructure:"final_count"`
	RuleCount            int     `mapstructure:"rule_count"`
	UserCount            int     `mapstructure:"user_count"`
	ItemCount            int     `mapstructure:"item_count"`
	DiffCategoryCount    int     `mapstructure:"diff_category_count"`
	SameCategoryCount    int     `mapstructure:"same_category_count"`
	Seed                 int64   `mapstructure:"seed"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.table", "events")
	v.SetDefault("data.source", "json")
	v.SetDefault("data.events_path", "raw_datasets/events.json")
	v.SetDefault("data.meta_path", "raw_datasets/meta.json")
	v.SetDefault("data.cache_dir", ".cache")
	v.SetDefault("data.upgrade", false)
	v.SetDefault("engine.min_support", 0.002)
	v.SetDefault("engine.metric", "support")
	v.SetDefault("engine.min_threshold", 0.002)
	v.SetDefault("engine.correlation_threshold", 0.5)
	v.SetDefault("engine.final_count", 10)
	v.SetDefault("engine.rule_count", 5)
	v.SetDefault("engine.user_count", 5)
	v.SetDefault("engine.item_count", 4)
	v.SetDefault("engine.diff_category_count", 5)
	v.SetDefault("engine.same_category_count", 3)
	v.SetDefault("engine.seed", 0)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	// Get other environment variables
	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	return &config, nil
}
