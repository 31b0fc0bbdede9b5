package interfaces

import (
	"context"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// IncidentRepository defines data access for incidents
type IncidentRepository interface {
	// Create persists a new incident with the ID already assigned
	Create(ctx context.Context, incident *model.Incident) (*model.Incident, error)

	// Get retrieves an incident by ID
	Get(ctx context.Context, id types.IncidentID) (*model.Incident, error)

	// List retrieves incidents with optional filtering, newest first
	List(ctx context.Context, opts ...ListIncidentOption) ([]*model.Incident, error)

	// Count returns the number of incidents matching the filters without
	// transferring document data (uses aggregation queries where the
	// backend supports them)
	Count(ctx context.Context, opts ...ListIncidentOption) (int64, error)

	// Update overwrites an existing incident
	Update(ctx context.Context, incident *model.Incident) (*model.Incident, error)

	// Delete removes an incident by ID. Returns false if it was absent.
	Delete(ctx context.Context, id types.IncidentID) (bool, error)
}

// ListIncidentOption is a functional option for filtering incidents
type ListIncidentOption func(*listIncidentConfig)

type listIncidentConfig struct {
	status   *types.IncidentStatus
	severity *types.Severity
	section  *string
	window   *model.TimeWindow
	limit    int
	offset   int
}

// WithIncidentStatus filters incidents by status
func WithIncidentStatus(status types.IncidentStatus) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.status = &status
	}
}

// WithIncidentSeverity filters incidents by severity
func WithIncidentSeverity(severity types.Severity) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.severity = &severity
	}
}

// WithIncidentSection filters incidents by site section
func WithIncidentSection(section string) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.section = &section
	}
}

// WithIncidentWindow restricts incidents to those created inside the window
func WithIncidentWindow(window model.TimeWindow) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.window = &window
	}
}

// WithIncidentLimit bounds the number of results
func WithIncidentLimit(limit int) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.limit = limit
	}
}

// WithIncidentOffset skips the first n results
func WithIncidentOffset(offset int) ListIncidentOption {
	return func(c *listIncidentConfig) {
		c.offset = offset
	}
}

// BuildListIncidentConfig builds a listIncidentConfig from options
func BuildListIncidentConfig(opts ...ListIncidentOption) *listIncidentConfig {
	cfg := &listIncidentConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *listIncidentConfig) Status() *types.IncidentStatus { return c.status }
func (c *listIncidentConfig) Severity() *types.Severity     { return c.severity }
func (c *listIncidentConfig) Section() *string              { return c.section }
func (c *listIncidentConfig) Window() *model.TimeWindow     { return c.window }
func (c *listIncidentConfig) Limit() int                    { return c.limit }
func (c *listIncidentConfig) Offset() int                   { return c.offset }
