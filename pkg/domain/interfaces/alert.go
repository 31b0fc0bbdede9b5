package interfaces

import (
	"context"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// AlertRepository defines data access for alerts.
//
// The store-level filters cover only indexable scalar fields (status,
// priority). Section/role wildcard matching cannot be expressed as a
// document-store predicate ("array contains X OR contains the wildcard"),
// so callers apply it in memory after retrieval.
type AlertRepository interface {
	// Create persists a new alert with the ID already assigned
	Create(ctx context.Context, alert *model.Alert) (*model.Alert, error)

	// Get retrieves an alert by ID
	Get(ctx context.Context, id types.AlertID) (*model.Alert, error)

	// List retrieves alerts with optional filtering, newest first
	List(ctx context.Context, opts ...ListAlertOption) ([]*model.Alert, error)

	// Update overwrites an existing alert
	Update(ctx context.Context, alert *model.Alert) (*model.Alert, error)

	// Delete removes an alert by ID. Returns false if it was absent.
	Delete(ctx context.Context, id types.AlertID) (bool, error)
}

// ListAlertOption is a functional option for filtering alerts
type ListAlertOption func(*listAlertConfig)

type listAlertConfig struct {
	status   *types.AlertStatus
	priority *types.AlertPriority
	limit    int
}

// WithAlertStatus filters alerts by status
func WithAlertStatus(status types.AlertStatus) ListAlertOption {
	return func(c *listAlertConfig) {
		c.status = &status
	}
}

// WithAlertPriority filters alerts by priority
func WithAlertPriority(priority types.AlertPriority) ListAlertOption {
	return func(c *listAlertConfig) {
		c.priority = &priority
	}
}

// WithAlertLimit bounds the number of results
func WithAlertLimit(limit int) ListAlertOption {
	return func(c *listAlertConfig) {
		c.limit = limit
	}
}

// BuildListAlertConfig builds a listAlertConfig from options
func BuildListAlertConfig(opts ...ListAlertOption) *listAlertConfig {
	cfg := &listAlertConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *listAlertConfig) Status() *types.AlertStatus     { return c.status }
func (c *listAlertConfig) Priority() *types.AlertPriority { return c.priority }
func (c *listAlertConfig) Limit() int                     { return c.limit }
