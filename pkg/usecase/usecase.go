package usecase

import (
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/service/notify"
)

type UseCases struct {
	repo     interfaces.Repository
	notifier notify.Notifier
	clock    func() time.Time
	weights  model.ScoreWeights
	location *time.Location

	Incident  *IncidentUseCase
	Checklist *ChecklistUseCase
	Alert     *AlertUseCase
	Analytics *AnalyticsUseCase
	Report    *ReportUseCase
}

type Option func(*UseCases)

// WithNotifier sets the alert delivery channel
func WithNotifier(n notify.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithClock overrides the time source. Used by tests and by batch jobs that
// run against a fixed reference instant.
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// WithScoreWeights overrides the safety score weights
func WithScoreWeights(w model.ScoreWeights) Option {
	return func(uc *UseCases) {
		uc.weights = w
	}
}

// WithLocation sets the site-local timezone used for daily stat keys and
// report labels
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.location = loc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		notifier: notify.LogNotifier{},
		clock:    time.Now,
		weights:  model.DefaultScoreWeights(),
		location: time.UTC,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Alert = NewAlertUseCase(repo, uc.notifier, uc.clock, uc.location)
	uc.Incident = NewIncidentUseCase(repo, uc.Alert, uc.clock, uc.location)
	uc.Checklist = NewChecklistUseCase(repo, uc.Alert, uc.clock, uc.location)
	uc.Analytics = NewAnalyticsUseCase(repo, uc.weights, uc.clock)
	uc.Report = NewReportUseCase(repo, uc.Analytics, uc.Alert, uc.clock, uc.location)

	return uc
}
