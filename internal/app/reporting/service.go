package reporting

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ogulcan/clotrack/internal/pkg/logger"
	"github.com/ogulcan/clotrack/internal/pkg/metrics"
)

// ReadStore is the persistence contract the engine depends on. All
// operations are reads; the engine never writes and never reaches for a
// shared database handle.
type ReadStore interface {
	ListInstitutions(ctx context.Context) ([]Record, error)
	GetInstitution(ctx context.Context, institutionID string) (Record, error)
	ListPrograms(ctx context.Context, institutionID string) ([]Record, error)
	ListCourses(ctx context.Context, institutionID string) ([]Record, error)
	ListUsers(ctx context.Context, institutionID string) ([]Record, error)
	ListInstructors(ctx context.Context, institutionID string) ([]Record, error)
	ListSections(ctx context.Context, institutionID string) ([]Record, error)
	ListActiveTerms(ctx context.Context, institutionID string) ([]Record, error)
}

// OutcomeReader is the learning-outcome workflow's read surface. Calls
// may fail per course; the enrichment adapter absorbs those failures.
type OutcomeReader interface {
	ListOutcomes(ctx context.Context, courseID string) ([]Record, error)
}

// DefaultActivityLimit bounds the site-wide recent-activity feed unless
// overridden.
const DefaultActivityLimit = 20

// Service is the aggregation engine. It holds only injected
// collaborators and static configuration; one BuildDashboard call keeps
// no state behind for the next.
type Service struct {
	store         ReadStore
	outcomes      OutcomeReader
	logger        zerolog.Logger
	metrics       *metrics.Metrics
	activityLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithActivityLimit overrides the recent-activity feed bound.
func WithActivityLimit(limit int) Option {
	return func(s *Service) { s.activityLimit = limit }
}

// NewService creates the engine with its read collaborators.
func NewService(store ReadStore, outcomes OutcomeReader, opts ...Option) *Service {
	s := &Service{
		store:         store,
		outcomes:      outcomes,
		logger:        logger.With("reporting"),
		activityLimit: DefaultActivityLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildDashboard materializes one complete scoped payload for the
// viewer. Everything happens synchronously in request scope: resolve
// the scope, index the collections, aggregate metrics, enrich courses,
// assemble. A ScopeError means the caller violated the viewer contract;
// any other error came from a persistence read.
func (s *Service) BuildDashboard(ctx context.Context, viewer Viewer) (*Payload, error) {
	start := time.Now()

	sd, err := s.resolveScope(ctx, viewer)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveDashboardBuild("unresolved", start, err)
		}
		return nil, err
	}

	p := newPayload()
	p.Metadata = Metadata{
		UserRole:    string(viewer.Role),
		DataScope:   sd.scope,
		GeneratedAt: time.Now().UTC(),
	}

	for _, slice := range sd.slices {
		s.assembleSlice(ctx, p, sd, slice)
	}

	if sd.scope == ScopeSite {
		p.Activity = recentActivity(sd.slices, s.activityLimit)
	}

	if s.metrics != nil {
		s.metrics.ObserveDashboardBuild(string(sd.scope), start, nil)
	}
	s.logger.Debug().
		Str("scope", string(sd.scope)).
		Int("courses", len(p.Courses)).
		Int("sections", len(p.Sections)).
		Dur("elapsed", time.Since(start)).
		Msg("Dashboard build complete")

	return p, nil
}
