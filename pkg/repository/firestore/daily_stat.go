package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type dailyStatDocument struct {
	Date                string    `firestore:"date"`
	IncidentsReported   int64     `firestore:"incidents_reported"`
	IncidentsResolved   int64     `firestore:"incidents_resolved"`
	ChecklistsCompleted int64     `firestore:"checklists_completed"`
	AlertsCreated       int64     `firestore:"alerts_created"`
	UpdatedAt           time.Time `firestore:"updated_at"`
}

type dailyStatRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDailyStatRepository(client *firestore.Client) *dailyStatRepository {
	return &dailyStatRepository{client: client}
}

func (r *dailyStatRepository) collection() *firestore.CollectionRef {
	name := "daily_stats"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_daily_stats"
	}
	return r.client.Collection(name)
}

// Increment merges the delta with firestore.Increment so concurrent writers
// accumulate rather than clobber. Set with MergeAll creates the document
// lazily on first increment.
func (r *dailyStatRepository) Increment(ctx context.Context, date string, delta model.DailyStatDelta) error {
	if delta.IsZero() {
		return nil
	}

	fields := map[string]interface{}{
		"date":       date,
		"updated_at": time.Now().UTC(),
	}
	if delta.IncidentsReported != 0 {
		fields["incidents_reported"] = firestore.Increment(delta.IncidentsReported)
	}
	if delta.IncidentsResolved != 0 {
		fields["incidents_resolved"] = firestore.Increment(delta.IncidentsResolved)
	}
	if delta.ChecklistsCompleted != 0 {
		fields["checklists_completed"] = firestore.Increment(delta.ChecklistsCompleted)
	}
	if delta.AlertsCreated != 0 {
		fields["alerts_created"] = firestore.Increment(delta.AlertsCreated)
	}

	if _, err := r.collection().Doc(date).Set(ctx, fields, firestore.MergeAll); err != nil {
		return goerr.Wrap(err, "failed to increment daily stat", goerr.V("date", date))
	}
	return nil
}

func (r *dailyStatRepository) Get(ctx context.Context, date string) (*model.DailyStat, error) {
	snap, err := r.collection().Doc(date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &model.DailyStat{Date: date}, nil
		}
		return nil, goerr.Wrap(err, "failed to get daily stat", goerr.V("date", date))
	}

	var doc dailyStatDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal daily stat", goerr.V("date", date))
	}

	return &model.DailyStat{
		Date:                doc.Date,
		IncidentsReported:   doc.IncidentsReported,
		IncidentsResolved:   doc.IncidentsResolved,
		ChecklistsCompleted: doc.ChecklistsCompleted,
		AlertsCreated:       doc.AlertsCreated,
		UpdatedAt:           doc.UpdatedAt,
	}, nil
}
