package filler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Session holds at most one loaded template and generates documents from it.
// A new Session is empty; Open loads a template, replacing any previous one.
type Session struct {
	mu       sync.RWMutex
	template *Template
	logger   zerolog.Logger
	workers  int
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for generation events
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithWorkers sets how many batch lines are generated concurrently.
// Values below 2 generate lines one after another in input order.
func WithWorkers(n int) Option {
	return func(s *Session) {
		s.workers = n
	}
}

// NewSession creates an empty session
func NewSession(opts ...Option) *Session {
	s := &Session{
		logger:  zerolog.Nop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the template at path. On failure the previously loaded template, if any, is kept.
func (s *Session) Open(path string) error {
	t, err := Open(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.template = t
	s.mu.Unlock()

	s.logger.Debug().Str("template", path).Int("entries", len(t.entries)).Msg("template loaded")
	return nil
}

// Template returns the loaded template or nil
func (s *Session) Template() *Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

func (s *Session) loaded() (*Template, error) {
	t := s.Template()
	if t == nil {
		return nil, &ProcessingError{Code: CodeNoTemplateLoaded}
	}
	return t, nil
}

// DiscoverTokens returns the placeholders of the loaded template
func (s *Session) DiscoverTokens() (TokenPack, error) {
	t, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return t.Tokens()
}

// GenerateOne writes one document filled with values and returns its path
func (s *Session) GenerateOne(tokens TokenPack, values ValuePack, pattern string) (string, error) {
	t, err := s.loaded()
	if err != nil {
		return "", err
	}
	out, err := t.Generate(tokens, values, pattern)
	if err != nil {
		return "", err
	}
	s.logger.Debug().Str("output", out).Msg("document generated")
	return out, nil
}

// GenerateBatch writes one document per line of text, each line split by separator.
//
// All lines are validated before the first document is written, so bad input
// produces no files. A write failure stops the batch; documents already written
// stay on disk and their paths are returned along with the error.
func (s *Session) GenerateBatch(ctx context.Context, tokens TokenPack, text, separator, pattern string) ([]string, error) {
	t, err := s.loaded()
	if err != nil {
		return nil, err
	}
	if err := ValidateBatch(tokens, text, separator, pattern); err != nil {
		return nil, err
	}

	lines := SplitLines(text)
	logger := s.logger.With().
		Str("run", uuid.New().String()).
		Str("template", t.Path()).
		Logger()
	start := time.Now()

	var written []string
	if s.workers > 1 {
		written, err = s.generateParallel(ctx, t, tokens, lines, separator, pattern, logger)
	} else {
		written, err = s.generateSequential(ctx, t, tokens, lines, separator, pattern, logger)
	}
	if err != nil {
		logger.Error().Err(err).Int("written", len(written)).Int("lines", len(lines)).Msg("batch aborted")
		return written, err
	}

	logger.Info().
		Int("documents", len(written)).
		Dur("duration", time.Since(start)).
		Msg("batch generated")
	return written, nil
}

func (s *Session) generateSequential(ctx context.Context, t *Template, tokens TokenPack, lines []string, separator, pattern string, logger zerolog.Logger) ([]string, error) {
	written := make([]string, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		out, err := t.generate(tokens, ParseRow(line, separator), pattern)
		if err != nil {
			return written, err
		}
		logger.Debug().Int("line", i+1).Str("output", out).Msg("document generated")
		written = append(written, out)
	}
	return written, nil
}

func (s *Session) generateParallel(ctx context.Context, t *Template, tokens TokenPack, lines []string, separator, pattern string, logger zerolog.Logger) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	outputs := make([]string, len(lines))
	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := t.generate(tokens, ParseRow(line, separator), pattern)
			if err != nil {
				return err
			}
			logger.Debug().Int("line", i+1).Str("output", out).Msg("document generated")
			outputs[i] = out
			return nil
		})
	}
	err := g.Wait()

	written := make([]string, 0, len(lines))
	for _, out := range outputs {
		if out != "" {
			written = append(written, out)
		}
	}
	return written, err
}

// DefaultOutputPattern names each document after the value of the first token
func DefaultOutputPattern(tokens TokenPack) string {
	if len(tokens) == 0 {
		return "output" + Extension
	}
	return tokens[0] + Extension
}
