package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type alertDocument struct {
	ID             string     `firestore:"id"`
	Title          string     `firestore:"title"`
	Message        string     `firestore:"message"`
	Priority       string     `firestore:"priority"`
	Status         string     `firestore:"status"`
	TargetSections []string   `firestore:"target_sections"`
	TargetRoles    []string   `firestore:"target_roles"`
	CreatedBy      string     `firestore:"created_by"`
	CreatorName    string     `firestore:"creator_name"`
	AcknowledgedBy []string   `firestore:"acknowledged_by"`
	CreatedAt      time.Time  `firestore:"created_at"`
	UpdatedAt      time.Time  `firestore:"updated_at"`
	ExpiresAt      *time.Time `firestore:"expires_at"`
}

func toAlertDocument(alert *model.Alert) *alertDocument {
	doc := &alertDocument{
		ID:             alert.ID.String(),
		Title:          alert.Title,
		Message:        alert.Message,
		Priority:       alert.Priority.String(),
		Status:         alert.Status.String(),
		TargetSections: alert.TargetSections,
		TargetRoles:    alert.TargetRoles,
		CreatedBy:      alert.CreatedBy.String(),
		CreatorName:    alert.CreatorName,
		CreatedAt:      alert.CreatedAt,
		UpdatedAt:      alert.UpdatedAt,
		ExpiresAt:      alert.ExpiresAt,
	}
	for _, actor := range alert.AcknowledgedBy {
		doc.AcknowledgedBy = append(doc.AcknowledgedBy, actor.String())
	}
	return doc
}

func (d *alertDocument) toModel() *model.Alert {
	alert := &model.Alert{
		ID:             types.AlertID(d.ID),
		Title:          d.Title,
		Message:        d.Message,
		Priority:       types.AlertPriority(d.Priority),
		Status:         types.AlertStatus(d.Status),
		TargetSections: d.TargetSections,
		TargetRoles:    d.TargetRoles,
		CreatedBy:      types.ActorID(d.CreatedBy),
		CreatorName:    d.CreatorName,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		ExpiresAt:      d.ExpiresAt,
	}
	for _, actor := range d.AcknowledgedBy {
		alert.AcknowledgedBy = append(alert.AcknowledgedBy, types.ActorID(actor))
	}
	return alert
}

type alertRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAlertRepository(client *firestore.Client) *alertRepository {
	return &alertRepository{client: client}
}

func (r *alertRepository) collection() *firestore.CollectionRef {
	name := "alerts"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_alerts"
	}
	return r.client.Collection(name)
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	doc := toAlertDocument(alert)
	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create alert", goerr.V("id", alert.ID))
	}
	return doc.toModel(), nil
}

func (r *alertRepository) Get(ctx context.Context, id types.AlertID) (*model.Alert, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "alert not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get alert", goerr.V("id", id))
	}

	var doc alertDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal alert", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *alertRepository) List(ctx context.Context, opts ...interfaces.ListAlertOption) ([]*model.Alert, error) {
	cfg := interfaces.BuildListAlertConfig(opts...)

	q := r.collection().Query
	if cfg.Status() != nil {
		q = q.Where("status", "==", cfg.Status().String())
	}
	if cfg.Priority() != nil {
		q = q.Where("priority", "==", cfg.Priority().String())
	}
	q = q.OrderBy("created_at", firestore.Desc)
	if cfg.Limit() > 0 {
		q = q.Limit(cfg.Limit())
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var alerts []*model.Alert
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate alerts")
		}

		var doc alertDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal alert")
		}
		alerts = append(alerts, doc.toModel())
	}
	return alerts, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	docRef := r.collection().Doc(alert.ID.String())

	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "alert not found", goerr.V("id", alert.ID))
		}
		return nil, goerr.Wrap(err, "failed to get alert", goerr.V("id", alert.ID))
	}

	var existing alertDocument
	if err := snap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal alert", goerr.V("id", alert.ID))
	}

	updated := toAlertDocument(alert)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update alert", goerr.V("id", alert.ID))
	}
	return updated.toModel(), nil
}

func (r *alertRepository) Delete(ctx context.Context, id types.AlertID) (bool, error) {
	docRef := r.collection().Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get alert", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return false, goerr.Wrap(err, "failed to delete alert", goerr.V("id", id))
	}
	return true, nil
}
