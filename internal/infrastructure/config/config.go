package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// EnvPrefix prefixes every environment override, e.g. CLASSIFIER_SERVER_PORT
const EnvPrefix = "CLASSIFIER"

// Config is the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Inference InferenceConfig `mapstructure:"inference"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Contact   ContactConfig   `mapstructure:"contact"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL settings for prediction history
type DatabaseConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// RedisConfig holds prediction cache settings
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ModelArtifact binds a model identifier to its artifact file
type ModelArtifact struct {
	ID   string `mapstructure:"id"`
	File string `mapstructure:"file"`
}

// ArtifactsConfig locates the serialized vectorizer and classifiers
type ArtifactsConfig struct {
	Dir        string          `mapstructure:"dir"`
	Vectorizer string          `mapstructure:"vectorizer"`
	Models     []ModelArtifact `mapstructure:"models"`
}

// InferenceConfig controls input validation and the label table
type InferenceConfig struct {
	ValidateInput bool                `mapstructure:"validate_input"`
	MaxTextLength int                 `mapstructure:"max_text_length"`
	Labels        []entity.LabelEntry `mapstructure:"labels"`
}

// DatasetConfig locates the labelled training data
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// ContactConfig configures the enquiry form
type ContactConfig struct {
	FormAction string `mapstructure:"form_action"`
}

// Load reads config.yaml (if any) and applies environment overrides.
// CLASSIFIER_CONFIG points at an explicit config file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "classifier")
	v.SetDefault("database.password", "classifier")
	v.SetDefault("database.dbname", "classifier")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("artifacts.dir", "resources")
	v.SetDefault("artifacts.vectorizer", "vectorizer.json")
	v.SetDefault("artifacts.models", []map[string]interface{}{
		{"id": string(entity.ModelLogisticRegression), "file": "Logistic.json"},
		{"id": string(entity.ModelKNN), "file": "KNN.json"},
		{"id": string(entity.ModelLinearSVC), "file": "LinearSVC.json"},
		{"id": string(entity.ModelDecisionTree), "file": "DecisionTreeClassifier.json"},
		{"id": string(entity.ModelSVC), "file": "SVC.json"},
	})

	labels := make([]map[string]interface{}, 0, 4)
	for _, e := range entity.DefaultLabelEntries() {
		labels = append(labels, map[string]interface{}{"name": string(e.Name), "code": e.Code})
	}
	v.SetDefault("inference.validate_input", true)
	v.SetDefault("inference.max_text_length", 280)
	v.SetDefault("inference.labels", labels)

	v.SetDefault("dataset.path", "resources/train.csv")
	v.SetDefault("contact.form_action", "")
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return errors.New("redis.ttl must be positive when redis is enabled")
	}
	if c.Inference.MaxTextLength < 0 {
		return errors.New("inference.max_text_length must not be negative")
	}
	if c.Artifacts.Vectorizer == "" {
		return errors.New("artifacts.vectorizer is required")
	}

	seen := make(map[entity.ModelID]bool, len(c.Artifacts.Models))
	for _, m := range c.Artifacts.Models {
		id := entity.ModelID(m.ID)
		if !id.IsValid() {
			return fmt.Errorf("artifacts.models: unknown model id %q", m.ID)
		}
		if seen[id] {
			return fmt.Errorf("artifacts.models: %s listed twice", id)
		}
		if m.File == "" {
			return fmt.Errorf("artifacts.models: %s has no file", id)
		}
		seen[id] = true
	}

	if _, err := c.LabelMap(); err != nil {
		return fmt.Errorf("inference.labels: %w", err)
	}
	return nil
}

// LabelMap builds the configured label table
func (c *Config) LabelMap() (*entity.LabelMap, error) {
	return entity.NewLabelMap(c.Inference.Labels)
}

// ModelFiles returns the artifact file for each configured model
func (c *ArtifactsConfig) ModelFiles() map[entity.ModelID]string {
	files := make(map[entity.ModelID]string, len(c.Models))
	for _, m := range c.Models {
		files[entity.ModelID(m.ID)] = m.File
	}
	return files
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
