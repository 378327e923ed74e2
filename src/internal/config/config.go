// Package config loads titlematch settings from defaults, an optional YAML
// file, TITLEMATCH_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"titlematch/src/internal/resolve"
	"titlematch/src/internal/similarity"
	"titlematch/src/internal/titleline"
	"titlematch/src/internal/window"
)

// Variants of the resolution pipeline.
const (
	VariantBasic     = "basic"
	VariantAugmented = "augmented"
)

// Rule-set selections; "auto" picks by document type.
const (
	RulesAuto     = "auto"
	RulesPDF      = "pdf"
	RulesDocument = "document"
)

const (
	configName = "titlematch"
	envPrefix  = "TITLEMATCH"
)

type Config struct {
	Variant    string           `mapstructure:"variant"`
	Rules      string           `mapstructure:"rules"`
	Threshold  float64          `mapstructure:"threshold"`
	Window     WindowConfig     `mapstructure:"window"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Log        LogConfig        `mapstructure:"log"`
}

type WindowConfig struct {
	Size int `mapstructure:"size"`
	Max  int `mapstructure:"max"`
}

type SimilarityConfig struct {
	Backend string        `mapstructure:"backend"`
	URL     string        `mapstructure:"url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"variant":    "variant",
	"rules":      "rules",
	"threshold":  "threshold",
	"window":     "window.size",
	"max-window": "window.max",
	"similarity": "similarity.backend",
	"scorer-url": "similarity.url",
	"model":      "similarity.model",
	"log-level":  "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("variant", VariantAugmented)
	v.SetDefault("rules", RulesAuto)
	v.SetDefault("threshold", resolve.DefaultThreshold)
	v.SetDefault("window.size", window.DefaultSize)
	v.SetDefault("window.max", window.DefaultMax)
	v.SetDefault("similarity.backend", similarity.BackendLexical)
	v.SetDefault("similarity.url", "")
	v.SetDefault("similarity.model", similarity.DefaultEmbeddingModel)
	v.SetDefault("similarity.api_key", "")
	v.SetDefault("similarity.timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
}

// Default returns the built-in configuration, ignoring files and environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, _ := decode(v)
	return cfg
}

// Load reads configuration. An explicit path must exist; otherwise
// titlematch.yaml in the working directory is used when present. Only flags
// the user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, errors.Wrap(err, "read config")
			}
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}
	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Variant = strings.ToLower(strings.TrimSpace(c.Variant))
	c.Rules = strings.ToLower(strings.TrimSpace(c.Rules))
	c.Similarity.Backend = strings.ToLower(strings.TrimSpace(c.Similarity.Backend))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantBasic, VariantAugmented:
	default:
		return fmt.Errorf("config: variant must be %q or %q, got %q", VariantBasic, VariantAugmented, c.Variant)
	}
	if c.Rules != RulesAuto {
		if _, err := titleline.ByName(c.Rules); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("config: threshold must be within [0,1], got %v", c.Threshold)
	}
	if c.Window.Size < 1 {
		return fmt.Errorf("config: window.size must be at least 1, got %d", c.Window.Size)
	}
	if c.Window.Max < 0 {
		return fmt.Errorf("config: window.max must not be negative, got %d", c.Window.Max)
	}
	switch c.Similarity.Backend {
	case similarity.BackendNone, similarity.BackendLexical, similarity.BackendOpenAI:
	case similarity.BackendHTTP:
		if strings.TrimSpace(c.Similarity.URL) == "" {
			return fmt.Errorf("config: similarity.url is required for the http backend")
		}
	default:
		return fmt.Errorf("config: unknown similarity backend %q", c.Similarity.Backend)
	}
	return nil
}

// RuleSet resolves the configured rule set for a document. "auto" selects
// the PDF rules for PDFs and the document rules for anything else.
func (c Config) RuleSet(isPDF bool) titleline.RuleSet {
	if rs, err := titleline.ByName(c.Rules); err == nil {
		return rs
	}
	if isPDF {
		return titleline.PDF
	}
	return titleline.Document
}

// SimilarityOptions converts the similarity section for similarity.New.
func (c Config) SimilarityOptions() similarity.Options {
	return similarity.Options{
		Backend: c.Similarity.Backend,
		URL:     c.Similarity.URL,
		Model:   c.Similarity.Model,
		APIKey:  c.Similarity.APIKey,
		Timeout: c.Similarity.Timeout,
	}
}

// FromFlags loads configuration for a command, honouring its --config flag
// when the flag set defines one.
func FromFlags(flags *pflag.FlagSet) (Config, error) {
	path := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}
	return Load(path, flags)
}
