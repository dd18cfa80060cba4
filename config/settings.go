// Copyright (c) 2026 The izon Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings configures the izon command.
type Settings struct {
	// Definitions lists the glob patterns of the definition files to load.
	Definitions []string `env:"IZON_DEFINITIONS" envSeparator:","`

	// LogLevel is the minimum level logged, such as "debug" or "warn".
	LogLevel string `env:"IZON_LOG_LEVEL" envDefault:"info"`

	// EnvFile names a dotenv file read into the environment before the
	// other settings.
	EnvFile string `env:"IZON_ENV_FILE"`

	// HTTPAddr is the address the inspector listens on.
	HTTPAddr string `env:"IZON_HTTP_ADDR" envDefault:":8080"`
}

// LoadSettings reads Settings from the environment. Variables already set
// take precedence over those in IZON_ENV_FILE.
func LoadSettings() (*Settings, error) {
	if f := os.Getenv("IZON_ENV_FILE"); f != "" {
		if err := godotenv.Load(f); err != nil {
			return nil, errors.Wrapf(err, "cannot load %v", f)
		}
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, errors.Wrap(err, "cannot read settings")
	}
	return &s, nil
}

// Logger builds a development logger that logs at s.LogLevel.
func (s *Settings) Logger() (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", s.LogLevel)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
