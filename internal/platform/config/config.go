package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Addr        string `koanf:"addr"`
	Environment string `koanf:"environment"`
	DatabaseURL string `koanf:"database_url"`
	RedisAddr   string `koanf:"redis_addr"`
	JWTSecret   string `koanf:"jwt_secret"`

	MetricsEnabled bool `koanf:"metrics_enabled"`

	// Cache TTL classes: the soft-skill catalog is near static, analysis
	// results track volatile assessment data.
	SoftSkillsTTL time.Duration `koanf:"soft_skills_ttl"`
	AnalysisTTL   time.Duration `koanf:"analysis_ttl"`

	// Analysis tuning.
	TopSkillsLimit    int `koanf:"top_skills_limit"`
	DistWarningBelow  int `koanf:"dist_warning_below"`
	DistCriticalBelow int `koanf:"dist_critical_below"`
	FetchConcurrency  int `koanf:"fetch_concurrency"`
}

func Defaults() Config {
	return Config{
		Addr:              ":8080",
		Environment:       "development",
		MetricsEnabled:    true,
		SoftSkillsTTL:     48 * time.Hour,
		AnalysisTTL:       time.Hour,
		TopSkillsLimit:    5,
		DistWarningBelow:  5,
		DistCriticalBelow: 2,
		FetchConcurrency:  8,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Precedence (low -> high):
//  1. Defaults()
//  2. YAML file named by SKILLHUB_CONFIG
//  3. env vars with prefix SKILLHUB_ (SKILLHUB_ADDR, SKILLHUB_ANALYSIS_TTL, ...)
func Load() (Config, error) {
	cfg := Defaults()

	k := koanf.New(".")

	if path := os.Getenv("SKILLHUB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
	}

	envProvider := env.Provider("SKILLHUB_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "skillhub_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("SKILLHUB_DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("SKILLHUB_JWT_SECRET must be set in production")
	}
	if c.SoftSkillsTTL <= 0 || c.AnalysisTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.TopSkillsLimit <= 0 {
		return fmt.Errorf("SKILLHUB_TOP_SKILLS_LIMIT must be positive")
	}
	if c.DistCriticalBelow > c.DistWarningBelow {
		return fmt.Errorf("SKILLHUB_DIST_CRITICAL_BELOW must not exceed SKILLHUB_DIST_WARNING_BELOW")
	}
	if c.FetchConcurrency <= 0 {
		return fmt.Errorf("SKILLHUB_FETCH_CONCURRENCY must be positive")
	}
	return nil
}
