package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"easyapply/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.EnvPort = (*EnvService)(nil)

type EnvService struct {
	// Loaded lists the env files that were read, in order.
	Loaded []string
}

// NewEnvService loads .env and then .env.<APP_ENV> (default "dev") from dir,
// the latter overriding the former. Missing files are not an error; the
// process environment always wins over .env.
func NewEnvService(dir string) (*EnvService, error) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	s := &EnvService{}
	base := join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		s.Loaded = append(s.Loaded, base)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", base, err)
	}

	envFile := join(dir, ".env."+appEnv)
	if err := godotenv.Overload(envFile); err == nil {
		s.Loaded = append(s.Loaded, envFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	return s, nil
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimRight(dir, "/") + "/" + name
}

func (e *EnvService) Get(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *EnvService) GetWithDefault(key, defaultValue string) string {
	if val := e.Get(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
