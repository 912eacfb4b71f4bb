// SPDX-License-Identifier: MIT

// Package loader reads & parses mission documents concurrently.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/dolmen-go/contextio"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"gitlab.com/fisherprime/mission"
	"gitlab.com/fisherprime/mission/types"
)

type (
	// Loader parses mission documents from a filesystem on a bounded worker pool.
	//
	// A Loader is safe for concurrent use until Release is called.
	Loader struct {
		cfg  *Config
		pool *ants.Pool

		// loaded counts the successfully parsed documents.
		loaded types.SafeCounter
	}

	// Document is a parsed mission file.
	Document struct {
		ID       uuid.UUID
		Path     string
		Elements mission.List
	}
)

const (
	errPrefix = "document"
)

// Loader errors.
var (
	ErrNoPaths = errors.New("no document paths")
)

// New creates a Loader, the worker pool is allocated immediately.
func New(opts ...Option) (l *Loader, err error) {
	cfg := DefConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Validate()

	pool, err := ants.NewPool(cfg.Workers, ants.WithLogger(cfg.Logger))
	if err != nil {
		err = fmt.Errorf("failed to create worker pool: %w", err)
		return
	}

	l = &Loader{cfg: cfg, pool: pool}

	return
}

// Config retrieves the Loader's Config.
func (l *Loader) Config() *Config { return l.cfg }

// Loaded obtains the number of documents parsed successfully.
func (l *Loader) Loaded() int { return l.loaded.Value() }

// Release stops the worker pool.
func (l *Loader) Release() { l.pool.Release() }

// Glob lists the paths of the Loader's filesystem matching pattern, see [fs.Glob].
func (l *Loader) Glob(pattern string) ([]string, error) { return fs.Glob(l.cfg.FS, pattern) }

// Elements concatenates the roots of docs, skipping failed documents.
func Elements(docs []*Document) (elements mission.List) {
	for _, doc := range docs {
		if doc != nil {
			elements = append(elements, doc.Elements...)
		}
	}

	return
}

// Load reads & parses a single document.
func (l *Loader) Load(ctx context.Context, path string) (doc *Document, err error) {
	file, err := l.cfg.FS.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	data, err := io.ReadAll(contextio.NewReader(ctx, file))
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	elements, err := mission.Parse(ctx, string(data), l.cfg.lexerConfig().Options()...)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}

	doc = &Document{ID: uuid.New(), Path: path, Elements: elements}
	l.loaded.Inc()

	if l.cfg.Debug {
		l.cfg.Logger.WithField("path", path).Debugf("loaded %d elements as %s", elements.Count(), doc.ID)
	}

	return
}

// LoadAll reads & parses documents concurrently.
//
// docs follows the order of paths; a failed document leaves a nil entry & contributes to the
// aggregated err without affecting the others.
func (l *Loader) LoadAll(ctx context.Context, paths ...string) (docs []*Document, err error) {
	if len(paths) < 1 {
		err = ErrNoPaths
		return
	}

	results := make([]*Document, len(paths))

	// Buffered to prevent blocking workers should the monitor return early.
	done := make(chan bool, len(paths))
	errChan := make(chan error, len(paths))

	submitted := 0
	var submitErr error
	for index := range paths {
		index := index
		if submitErr = l.pool.Submit(func() {
			doc, loadErr := l.Load(ctx, paths[index])
			if loadErr != nil {
				errChan <- loadErr
				return
			}
			results[index] = doc
			done <- true
		}); submitErr != nil {
			submitErr = fmt.Errorf("failed to schedule %s: %w", paths[index], submitErr)
			break
		}
		submitted++
	}

	if submitted > 0 {
		err = types.MonitorChannels(ctx, submitted, done, errChan, errPrefix)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		// Workers may still be running.
		if err == nil {
			err = ctxErr
		}
		return
	}
	if submitErr != nil {
		err = errors.Join(err, submitErr)
	}
	docs = results

	return
}
