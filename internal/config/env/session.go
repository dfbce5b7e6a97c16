package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// securecookie wants a hash key of at least 32 bytes.
const minSessionKeyLen = 32

type sessionEnv struct {
	Key           string        `env:"SESSION_KEY,required"`
	MaxAge        time.Duration `env:"SESSION_MAX_AGE" envDefault:"12h"`
	Secure        bool          `env:"SESSION_SECURE" envDefault:"true"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

type session struct {
	raw sessionEnv
}

func NewSessionConfig() (*session, error) {
	var raw sessionEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if len(raw.Key) < minSessionKeyLen {
		return nil, fmt.Errorf("SESSION_KEY must be at least %d bytes", minSessionKeyLen)
	}
	return &session{raw: raw}, nil
}

func (cfg *session) Key() []byte                  { return []byte(cfg.raw.Key) }
func (cfg *session) MaxAge() time.Duration        { return cfg.raw.MaxAge }
func (cfg *session) Secure() bool                 { return cfg.raw.Secure }
func (cfg *session) SweepInterval() time.Duration { return cfg.raw.SweepInterval }
