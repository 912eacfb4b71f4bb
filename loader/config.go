// SPDX-License-Identifier: MIT
package loader

import (
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/mission/lexer"
)

type (
	// Config defines configuration options for a [Loader].
	Config struct {
		Logger logrus.FieldLogger
		Debug  bool

		// Delimiter is the string literal delimiter of the loaded documents.
		Delimiter byte

		// Workers bounds the number of documents parsed concurrently.
		Workers int

		// FS provides the documents, paths are resolved by the OS when nil.
		FS fs.FS
	}

	// osFS opens paths as the OS does, allowing absolute & parent-relative paths.
	osFS struct{}
)

const (
	DefaultWorkers = 4
)

// DefConfig obtains the package's [Loader] default options.
func DefConfig() *Config {
	return &Config{
		Logger:    logrus.New(),
		Delimiter: lexer.DefaultDelimiter,
		Workers:   DefaultWorkers,
		FS:        osFS{},
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.Delimiter == 0 {
		c.Delimiter = lexer.DefaultDelimiter
	}
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.FS == nil {
		c.FS = osFS{}
	}
}

// lexerConfig derives the parse configuration.
func (c *Config) lexerConfig() *lexer.Config {
	return &lexer.Config{Logger: c.Logger, Debug: c.Debug, Delimiter: c.Delimiter}
}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }
