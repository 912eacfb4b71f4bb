// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options shared by the Lexer & its consumers.
	Config struct {
		Logger    logrus.FieldLogger
		Debug     bool
		Delimiter byte
	}
)

const (
	emptyByte byte = 0
)

// DefaultConfig configures the lexer's Config.
func DefaultConfig() *Config {
	return &Config{
		Delimiter: DefaultDelimiter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Delimiter == emptyByte {
		c.Delimiter = DefaultDelimiter
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// Options converts the Config into Lexer options.
func (c *Config) Options() []Option {
	return []Option{WithDebug(c.Debug), WithDelimiter(c.Delimiter), WithLogger(c.Logger)}
}
