package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = interfaces.ErrNotFound

// Firestore is the document-store repository backend
type Firestore struct {
	client    *firestore.Client
	incident  *incidentRepository
	checklist *checklistRepository
	alert     *alertRepository
	dailyStat *dailyStatRepository
	report    *reportRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes all collection names, used to isolate test
// runs against a shared project
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.incident.collectionPrefix = prefix
		f.checklist.collectionPrefix = prefix
		f.alert.collectionPrefix = prefix
		f.dailyStat.collectionPrefix = prefix
		f.report.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:    client,
		incident:  newIncidentRepository(client),
		checklist: newChecklistRepository(client),
		alert:     newAlertRepository(client),
		dailyStat: newDailyStatRepository(client),
		report:    newReportRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Incident() interfaces.IncidentRepository {
	return f.incident
}

func (f *Firestore) Checklist() interfaces.ChecklistRepository {
	return f.checklist
}

func (f *Firestore) Alert() interfaces.AlertRepository {
	return f.alert
}

func (f *Firestore) DailyStat() interfaces.DailyStatRepository {
	return f.dailyStat
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// countAll runs an aggregation count over the query so no document payloads
// are transferred.
func countAll(ctx context.Context, query firestore.Query) (int64, error) {
	res, err := query.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to run count aggregation")
	}
	v, ok := res["all"]
	if !ok {
		return 0, goerr.New("count aggregation returned no result")
	}
	pb, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count aggregation result type")
	}
	return pb.GetIntegerValue(), nil
}
