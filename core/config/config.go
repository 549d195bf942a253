package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParseConfig is returned when environment variables cannot be parsed
// into the target struct.
var ErrParseConfig = errors.New("failed to parse config from environment")

var (
	mu         sync.Mutex
	cached     = make(map[reflect.Type]any)
	dotenvOnce sync.Once
)

// Load populates cfg from environment variables using `env` struct tags.
// A .env file in the working directory is loaded once per process before the
// first parse; a missing file is not an error. Each configuration type is
// parsed once and cached, so repeated calls with the same type return the
// same values.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(*cfg)
	if v, ok := cached[t]; ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseConfig, err)
	}

	cached[t] = *cfg
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup where
// a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
