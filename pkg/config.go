package pkg

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ApiURL       string        `envconfig:"COVID_API_URL" default:"https://api.corona-19.kr/korea/country/new/"`
	ServiceKey   string        `envconfig:"COVID_SERVICE_KEY" required:"true"`
	FetchTimeout time.Duration `envconfig:"COVID_FETCH_TIMEOUT" default:"10s"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	ArangoEndpoint    string `envconfig:"ARANGO_ENDPOINT"`
	ArangoUsername    string `envconfig:"ARANGO_USER_NAME"`
	ArangoPassword    string `envconfig:"ARANGO_PASS"`
	ArangoCertificate string `envconfig:"ARANGO_CERTIFICATE"`
	ArangoDatabase    string `envconfig:"ARANGO_DATABASE"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("failed to load config: COVID_SERVICE_KEY is empty")
	}
	return &cfg, nil
}

func (c *Config) ApiMetadata() *ApiMetadata {
	api := NewApiMetadata(c.ServiceKey)
	api.URL = c.ApiURL
	api.Timeout = c.FetchTimeout
	return api
}

func (c *Config) HistoryEnabled() bool {
	return c.ArangoEndpoint != ""
}

func (c *Config) ValidateHistory() error {
	if c.ArangoEndpoint == "" || c.ArangoUsername == "" || c.ArangoPassword == "" || c.ArangoDatabase == "" {
		return fmt.Errorf("ARANGO_ENDPOINT, ARANGO_USER_NAME, ARANGO_PASS and ARANGO_DATABASE must be provided")
	}
	return nil
}

// ConfigureLogger sets the global zerolog level. Unknown levels fall back
// to info.
func ConfigureLogger(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
	}
}
