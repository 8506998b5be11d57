// Package config carrega a configuração dos binários webapi e mvcapp.
//
// Ordem de precedência: variável de ambiente > arquivo YAML (--config) > padrão.
// As chaves aninhadas viram variáveis com "_": rate.rps -> RATE_RPS.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Service identifica o binário; muda alguns padrões (porta, upstream).
type Service string

const (
	WebAPI Service = "webapi"
	MVCApp Service = "mvcapp"
)

const (
	EnvDevelopment = "Development"
	EnvProduction  = "Production"
)

type Config struct {
	Listen      ListenConfig      `mapstructure:"listen"`
	App         AppConfig         `mapstructure:"app"`
	HTTPS       HTTPSConfig       `mapstructure:"https"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	Fetch       FetchConfig       `mapstructure:"fetch"`
	Rate        RateConfig        `mapstructure:"rate"`
	Retry       RetryConfig       `mapstructure:"retry"`
	Trust       TrustConfig       `mapstructure:"trust"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

type ListenConfig struct {
	Addr string `mapstructure:"addr"`
}

type AppConfig struct {
	// Env segue o ASPNETCORE_ENVIRONMENT: Development liga o documento OpenAPI.
	Env string `mapstructure:"env"`
}

func (a AppConfig) IsDevelopment() bool { return strings.EqualFold(a.Env, EnvDevelopment) }

type HTTPSConfig struct {
	// Port > 0 liga o redirecionamento para https.
	Port int `mapstructure:"port"`
	// Com CertFile e KeyFile o próprio binário serve TLS em Port. Sem eles,
	// o TLS fica com o proxy da frente (use TRUST_XFF para X-Forwarded-Proto).
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// ServesTLS indica se o binário abre o listener TLS.
func (h HTTPSConfig) ServesTLS() bool { return h.Port > 0 && h.CertFile != "" && h.KeyFile != "" }

type UpstreamConfig struct {
	URL string `mapstructure:"url"`
}

type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type RateConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	RPS       float64 `mapstructure:"rps"`
	Burst     int     `mapstructure:"burst"`
	KeyHeader string  `mapstructure:"key_header"`

	// AddHeaders liga X-RateLimit-* nas respostas.
	AddHeaders bool        `mapstructure:"add_headers"`
	Stats      StatsConfig `mapstructure:"stats"`
}

type StatsConfig struct {
	// Backend: "" (desligado), "memory" ou "redis".
	Backend       string        `mapstructure:"backend"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
	Bucket        string        `mapstructure:"bucket"`
	TrackKeys     bool          `mapstructure:"track_keys"`
}

type RetryConfig struct {
	After time.Duration `mapstructure:"after"`
}

type TrustConfig struct {
	XFF bool `mapstructure:"xff"`
}

type ConcurrencyConfig struct {
	Max     int           `mapstructure:"max"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load lê a configuração do serviço. configPath vazio dispensa arquivo.
func Load(svc Service, configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v, svc)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// nomes herdados que não seguem o padrão section_key
	_ = v.BindEnv("app.env", "APP_ENV", "ASPNETCORE_ENVIRONMENT")
	_ = v.BindEnv("rate.add_headers", "ADD_RATELIMIT_HEADERS")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}

	// IMPORTANTE: o burst permite uma rajada inicial. Com RPS abaixo de 1
	// (ex: 0.02) o padrão 20 deixa passar ~20 requisições e parece que o
	// limiter não funciona; nesse caso o padrão cai para 1.
	if v.IsSet("rate.burst") {
		cfg.Rate.Burst = v.GetInt("rate.burst")
	} else {
		cfg.Rate.Burst = 20
		if cfg.Rate.RPS > 0 && cfg.Rate.RPS < 1 {
			cfg.Rate.Burst = 1
		}
	}

	if err := cfg.Validate(svc); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, svc Service) {
	switch svc {
	case MVCApp:
		v.SetDefault("listen.addr", ":5175")
		v.SetDefault("upstream.url", "http://localhost:5176/gyms")
	default:
		v.SetDefault("listen.addr", ":5176")
		v.SetDefault("upstream.url", "")
	}
	v.SetDefault("app.env", EnvProduction)
	v.SetDefault("https.port", 0)
	v.SetDefault("https.cert_file", "")
	v.SetDefault("https.key_file", "")
	v.SetDefault("fetch.timeout", "10s")

	v.SetDefault("rate.enabled", true)
	v.SetDefault("rate.rps", 10)
	v.SetDefault("rate.key_header", "")
	v.SetDefault("rate.add_headers", false)
	v.SetDefault("rate.stats.backend", "")
	v.SetDefault("rate.stats.redis_addr", "")
	v.SetDefault("rate.stats.redis_password", "")
	v.SetDefault("rate.stats.redis_db", 0)
	v.SetDefault("rate.stats.prefix", "gyms:ratelimit")
	v.SetDefault("rate.stats.ttl", "24h")
	v.SetDefault("rate.stats.bucket", "minute")
	v.SetDefault("rate.stats.track_keys", false)

	v.SetDefault("retry.after", "0s")
	v.SetDefault("trust.xff", false)

	v.SetDefault("concurrency.max", 100)
	v.SetDefault("concurrency.timeout", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.enabled", true)
}

// Validate aplica as regras de consistência da configuração.
func (c Config) Validate(svc Service) error {
	var errs []error
	if strings.TrimSpace(c.Listen.Addr) == "" {
		errs = append(errs, errors.New("LISTEN_ADDR is required"))
	}
	if svc == MVCApp && strings.TrimSpace(c.Upstream.URL) == "" {
		errs = append(errs, errors.New("UPSTREAM_URL is required"))
	}
	if c.Rate.RPS <= 0 {
		errs = append(errs, errors.New("RATE_RPS must be > 0"))
	}
	if c.Rate.Burst <= 0 {
		errs = append(errs, errors.New("RATE_BURST must be > 0"))
	}
	if c.Concurrency.Max < 0 {
		errs = append(errs, errors.New("CONCURRENCY_MAX must be >= 0"))
	}
	if c.HTTPS.Port < 0 || c.HTTPS.Port > 65535 {
		errs = append(errs, errors.New("HTTPS_PORT must be between 0 and 65535"))
	}
	if (c.HTTPS.CertFile == "") != (c.HTTPS.KeyFile == "") {
		errs = append(errs, errors.New("HTTPS_CERT_FILE and HTTPS_KEY_FILE must be set together"))
	}
	if c.HTTPS.CertFile != "" && c.HTTPS.Port == 0 {
		errs = append(errs, errors.New("HTTPS_PORT is required when HTTPS_CERT_FILE is set"))
	}
	switch strings.ToLower(c.Rate.Stats.Backend) {
	case "", "memory":
	case "redis":
		if strings.TrimSpace(c.Rate.Stats.RedisAddr) == "" {
			errs = append(errs, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("RATE_STATS_BACKEND %q is not supported (memory, redis)", c.Rate.Stats.Backend))
	}
	return errors.Join(errs...)
}
