package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/liview/internal/domain/archive"
	"github.com/GriffinCanCode/liview/internal/domain/registry"
	"github.com/GriffinCanCode/liview/internal/domain/temparea"
	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/liview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/liview/internal/shared/id"
	"github.com/GriffinCanCode/liview/internal/shared/paths"
)

// Options configures a Session.
type Options struct {
	TempRoot      string
	CacheRoot     string
	DefaultPolicy temparea.Policy
	Extractor     *archive.Extractor
	Metrics       *monitoring.Metrics
	Logger        *logging.Logger
}

// Session is safe for concurrent use. Close waits for in-flight opens.
type Session struct {
	id            id.SessionID
	scoped        *temparea.ScopedArea
	named         *temparea.NamedArea
	registry      *registry.Registry
	extractor     *archive.Extractor
	defaultPolicy temparea.Policy
	metrics       *monitoring.Metrics
	log           *logging.Logger

	mu     sync.RWMutex
	closed bool

	// Named opens replace directories by name and must not interleave
	namedMu sync.Mutex
}

// New creates a session and its scoped temp area.
func New(opts Options) (*Session, error) {
	if opts.TempRoot == "" {
		opts.TempRoot = paths.DefaultTempRoot()
	}
	if opts.CacheRoot == "" {
		opts.CacheRoot = paths.DefaultCacheRoot()
	}
	if opts.DefaultPolicy == "" {
		opts.DefaultPolicy = temparea.Scoped
	}
	if _, err := temparea.ParsePolicy(string(opts.DefaultPolicy)); err != nil {
		return nil, err
	}
	if opts.Extractor == nil {
		opts.Extractor = archive.NewExtractor(archive.Options{Logger: opts.Logger})
	}

	sid := id.NewSessionID()
	scoped, err := temparea.NewScoped(opts.TempRoot, sid.String())
	if err != nil {
		return nil, fmt.Errorf("create scoped area: %w", err)
	}
	named, err := temparea.NewNamed(opts.CacheRoot)
	if err != nil {
		_ = scoped.Close()
		return nil, fmt.Errorf("create named area: %w", err)
	}

	log := logging.OrNop(opts.Logger).Named("session").With(zap.String("session_id", sid.String()))
	log.Info("session started",
		zap.String("temp_root", scoped.Root()),
		zap.String("cache_root", named.Root()),
		zap.String("default_policy", string(opts.DefaultPolicy)),
	)

	opts.Metrics.ResetTempAreas()
	return &Session{
		id:            sid,
		scoped:        scoped,
		named:         named,
		registry:      registry.New(),
		extractor:     opts.Extractor,
		defaultPolicy: opts.DefaultPolicy,
		metrics:       opts.Metrics,
		log:           log,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() id.SessionID { return s.id }

// Registry returns the session's extraction registry.
func (s *Session) Registry() *registry.Registry { return s.registry }

// Extractor returns the extractor used by the session.
func (s *Session) Extractor() *archive.Extractor { return s.extractor }

// DefaultPolicy returns the policy used when Open is called without one.
func (s *Session) DefaultPolicy() temparea.Policy { return s.defaultPolicy }

// Area returns the temp area for policy.
func (s *Session) Area(policy temparea.Policy) (temparea.Area, error) {
	switch policy {
	case temparea.Scoped:
		return s.scoped, nil
	case temparea.Named:
		return s.named, nil
	default:
		return nil, fmt.Errorf("unknown temp area policy %q", policy)
	}
}

// ExtractArchive extracts into a fresh directory that lives until Close.
func (s *Session) ExtractArchive(ctx context.Context, archivePath string) (*archive.Result, error) {
	return s.Open(ctx, archivePath, temparea.Scoped, "")
}

// OpenArchive extracts into cacheRoot/name. A previous directory of that
// name is replaced only once the new extraction has succeeded. An empty name
// uses the archive's file stem.
func (s *Session) OpenArchive(ctx context.Context, archivePath, name string) (*archive.Result, error) {
	return s.Open(ctx, archivePath, temparea.Named, name)
}

// Open extracts archivePath under policy and records the result. An empty
// policy uses the session default. On failure the allocated directory is
// released and nothing is recorded.
func (s *Session) Open(ctx context.Context, archivePath string, policy temparea.Policy, name string) (*archive.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, temparea.ErrClosed
	}
	if policy == "" {
		policy = s.defaultPolicy
	}
	area, err := s.Area(policy)
	if err != nil {
		return nil, err
	}

	if policy == temparea.Named {
		s.namedMu.Lock()
		defer s.namedMu.Unlock()
	}

	log := s.log.With(zap.String("archive", archivePath), zap.String("policy", string(policy)))
	timer := monitoring.NewTimer(s.metrics, string(policy))

	if policy == temparea.Named && name == "" {
		name = paths.Stem(archivePath)
	}
	dir, err := s.allocate(area, archivePath, name)
	if err != nil {
		timer.Stop(err, 0, 0)
		log.Warn("allocate extraction dir failed", zap.Error(err))
		return nil, err
	}
	if policy == temparea.Scoped {
		s.metrics.IncTempAreas()
	}

	res, err := s.extractor.Extract(ctx, archivePath, dir)
	if err == nil && policy == temparea.Named {
		// Only a complete extraction replaces the previous directory
		var final string
		if final, err = s.named.Commit(dir, name); err == nil {
			res.Dir = final
		}
	}
	if err != nil {
		timer.Stop(err, 0, 0)
		if relErr := area.Release(dir); relErr != nil {
			log.Warn("release failed extraction dir", zap.String("dir", dir), zap.Error(relErr))
		} else if policy == temparea.Scoped {
			s.metrics.DecTempAreas()
		}
		return nil, err
	}
	timer.Stop(nil, res.Entries(), res.Bytes)

	s.registry.Record(registry.Record{
		Archive: archivePath,
		Dir:     res.Dir,
		Policy:  string(policy),
	})
	s.metrics.SetRegistrySize(s.registry.Len())

	log.Info("archive opened", zap.String("dir", res.Dir), zap.Int("files", res.Files))
	return res, nil
}

func (s *Session) allocate(area temparea.Area, archivePath, name string) (string, error) {
	if area.Policy() == temparea.Scoped {
		// The stem is only a readable prefix
		prefix := paths.Stem(archivePath)
		if paths.ValidateName(prefix) != nil {
			prefix = ""
		}
		return area.Allocate(prefix)
	}
	return s.named.Stage(name)
}

// Close removes every scoped directory. Named directories are kept.
// Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.metrics.ResetTempAreas()

	if err := s.scoped.Close(); err != nil {
		s.log.Error("cleanup scoped area failed", zap.Error(err))
		return err
	}
	s.log.Info("session closed", zap.Int("extractions", s.registry.Len()))
	return nil
}
