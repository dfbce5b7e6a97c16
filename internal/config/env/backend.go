package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type backendEnv struct {
	APIURL   string        `env:"BACKEND_API_URL,required,notEmpty"`
	ImageURL string        `env:"BACKEND_IMAGE_URL,required"`
	APIKey   string        `env:"BACKEND_API_KEY,required"`
	Timeout  time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

type backend struct {
	raw backendEnv
}

func NewBackendConfig() (*backend, error) {
	var raw backendEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &backend{raw: raw}, nil
}

func (cfg *backend) APIURL() string         { return cfg.raw.APIURL }
func (cfg *backend) ImageURL() string       { return cfg.raw.ImageURL }
func (cfg *backend) APIKey() string         { return cfg.raw.APIKey }
func (cfg *backend) Timeout() time.Duration { return cfg.raw.Timeout }
