// Package config loads MasteryLoop settings from defaults, an optional
// config.yaml, an optional .env file and MASTERYLOOP_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/llm"
	"github.com/abhisek/masteryloop/internal/logging"
	"github.com/abhisek/masteryloop/internal/questions"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MASTERYLOOP"

// Environments.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config is the full application configuration.
type Config struct {
	Env       string           `mapstructure:"env"`
	DBPath    string           `mapstructure:"db_path"`
	Log       logging.Config   `mapstructure:"log"`
	LLM       llm.Config       `mapstructure:"llm"`
	Questions questions.Config `mapstructure:"questions"`
	Cards     cards.Config     `mapstructure:"cards"`

	// LLMAvailable reports whether any provider has credentials.
	LLMAvailable bool `mapstructure:"-"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Options controls where Load looks for files.
type Options struct {
	// ConfigFile overrides the config.yaml search.
	ConfigFile string

	// EnvFile is the dotenv file to load. Empty means ".env".
	EnvFile string
}

// Load reads the configuration.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Existing environment variables win over the dotenv file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "masteryloop"))
		}
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_path", EnvPrefix+"_DB", EnvPrefix+"_DB_PATH")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{File: v.ConfigFileUsed()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Questions.Validators) == 0 {
		cfg.Questions.Validators = questions.DefaultValidators()
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = logging.FormatJSON
		if cfg.Env == EnvDevelopment {
			cfg.Log.Format = logging.FormatConsole
		}
	}

	cfg.LLM, cfg.LLMAvailable = llm.Discover(cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	switch c.Env {
	case EnvProduction, EnvDevelopment:
	default:
		errs = append(errs, fmt.Errorf("env: unknown environment %q", c.Env))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Questions.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("questions.max_tokens must be positive"))
	}
	if c.Cards.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("cards.max_tokens must be positive"))
	}
	for name, t := range map[string]float64{"questions": c.Questions.Temperature, "cards": c.Cards.Temperature} {
		if t < 0 || t > 1 {
			errs = append(errs, fmt.Errorf("%s.temperature must be within [0,1]", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// setDefaults registers every key with its default. AutomaticEnv only
// overrides keys viper already knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvProduction)
	v.SetDefault("db_path", "")
	setStruct(v, "log", logging.DefaultConfig())
	v.SetDefault("log.format", "")
	setStruct(v, "llm", llm.DefaultConfig())
	setStruct(v, "questions", questions.DefaultConfig())
	setStruct(v, "cards", cards.DefaultConfig())
}

// setStruct registers defaults for every mapstructure-tagged field of a
// struct value, recursing into nested structs.
func setStruct(v *viper.Viper, prefix string, s any) {
	rv := reflect.ValueOf(s)
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + "." + tag
		fv := rv.Field(i)
		if fv.Kind() == reflect.Struct {
			setStruct(v, key, fv.Interface())
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}
