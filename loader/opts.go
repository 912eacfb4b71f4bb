// SPDX-License-Identifier: MIT
package loader

import (
	"io/fs"

	"github.com/sirupsen/logrus"
)

type (
	// Option defines the Loader functional option type.
	Option func(*Config)
)

// WithConfig replaces the [Config], options following it still apply.
func WithConfig(cfg Config) Option { return func(c *Config) { *c = cfg } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// WithDelimiter configures the string literal delimiter.
func WithDelimiter(delimiter byte) Option { return func(c *Config) { c.Delimiter = delimiter } }

// WithFS configures the filesystem documents are read from.
func WithFS(fsys fs.FS) Option { return func(c *Config) { c.FS = fsys } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithWorkers configures the number of concurrent parses.
func WithWorkers(workers int) Option { return func(c *Config) { c.Workers = workers } }
