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

type incidentDocument struct {
	ID                string     `firestore:"id"`
	Type              string     `firestore:"type"`
	Severity          string     `firestore:"severity"`
	Status            string     `firestore:"status"`
	Title             string     `firestore:"title"`
	Description       string     `firestore:"description"`
	Section           string     `firestore:"section"`
	Level             string     `firestore:"level"`
	ReportedBy        string     `firestore:"reported_by"`
	ReporterName      string     `firestore:"reporter_name"`
	AssigneeID        string     `firestore:"assignee_id"`
	InjuryCount       int        `firestore:"injury_count"`
	WitnessCount      int        `firestore:"witness_count"`
	EquipmentInvolved []string   `firestore:"equipment_involved"`
	CreatedAt         time.Time  `firestore:"created_at"`
	UpdatedAt         time.Time  `firestore:"updated_at"`
	ResolvedAt        *time.Time `firestore:"resolved_at"`
}

func toIncidentDocument(incident *model.Incident) *incidentDocument {
	return &incidentDocument{
		ID:                incident.ID.String(),
		Type:              incident.Type.String(),
		Severity:          incident.Severity.String(),
		Status:            incident.Status.String(),
		Title:             incident.Title,
		Description:       incident.Description,
		Section:           incident.Section,
		Level:             incident.Level,
		ReportedBy:        incident.ReportedBy.String(),
		ReporterName:      incident.ReporterName,
		AssigneeID:        incident.AssigneeID.String(),
		InjuryCount:       incident.InjuryCount,
		WitnessCount:      incident.WitnessCount,
		EquipmentInvolved: incident.EquipmentInvolved,
		CreatedAt:         incident.CreatedAt,
		UpdatedAt:         incident.UpdatedAt,
		ResolvedAt:        incident.ResolvedAt,
	}
}

func (d *incidentDocument) toModel() *model.Incident {
	return &model.Incident{
		ID:                types.IncidentID(d.ID),
		Type:              types.IncidentType(d.Type),
		Severity:          types.Severity(d.Severity),
		Status:            types.IncidentStatus(d.Status),
		Title:             d.Title,
		Description:       d.Description,
		Section:           d.Section,
		Level:             d.Level,
		ReportedBy:        types.ActorID(d.ReportedBy),
		ReporterName:      d.ReporterName,
		AssigneeID:        types.ActorID(d.AssigneeID),
		InjuryCount:       d.InjuryCount,
		WitnessCount:      d.WitnessCount,
		EquipmentInvolved: d.EquipmentInvolved,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		ResolvedAt:        d.ResolvedAt,
	}
}

type incidentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newIncidentRepository(client *firestore.Client) *incidentRepository {
	return &incidentRepository{client: client}
}

func (r *incidentRepository) collection() *firestore.CollectionRef {
	name := "incidents"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_incidents"
	}
	return r.client.Collection(name)
}

func (r *incidentRepository) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	doc := toIncidentDocument(incident)
	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create incident", goerr.V("id", incident.ID))
	}
	return doc.toModel(), nil
}

func (r *incidentRepository) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}

	var doc incidentDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal incident", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

// buildQuery translates list options into store-level filters. CreatedAt
// range filters share the ordering field, which Firestore requires.
func (r *incidentRepository) buildQuery(opts ...interfaces.ListIncidentOption) firestore.Query {
	cfg := interfaces.BuildListIncidentConfig(opts...)
	q := r.collection().Query

	if cfg.Status() != nil {
		q = q.Where("status", "==", cfg.Status().String())
	}
	if cfg.Severity() != nil {
		q = q.Where("severity", "==", cfg.Severity().String())
	}
	if cfg.Section() != nil {
		q = q.Where("section", "==", *cfg.Section())
	}
	if cfg.Window() != nil {
		q = q.Where("created_at", ">=", cfg.Window().From).
			Where("created_at", "<=", cfg.Window().To)
	}
	return q
}

func (r *incidentRepository) List(ctx context.Context, opts ...interfaces.ListIncidentOption) ([]*model.Incident, error) {
	cfg := interfaces.BuildListIncidentConfig(opts...)
	q := r.buildQuery(opts...).OrderBy("created_at", firestore.Desc)
	if cfg.Offset() > 0 {
		q = q.Offset(cfg.Offset())
	}
	if cfg.Limit() > 0 {
		q = q.Limit(cfg.Limit())
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var incidents []*model.Incident
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate incidents")
		}

		var doc incidentDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal incident")
		}
		incidents = append(incidents, doc.toModel())
	}
	return incidents, nil
}

func (r *incidentRepository) Count(ctx context.Context, opts ...interfaces.ListIncidentOption) (int64, error) {
	return countAll(ctx, r.buildQuery(opts...))
}

func (r *incidentRepository) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	docRef := r.collection().Doc(incident.ID.String())

	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", incident.ID))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("id", incident.ID))
	}

	var existing incidentDocument
	if err := snap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal incident", goerr.V("id", incident.ID))
	}

	updated := toIncidentDocument(incident)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V("id", incident.ID))
	}
	return updated.toModel(), nil
}

func (r *incidentRepository) Delete(ctx context.Context, id types.IncidentID) (bool, error) {
	docRef := r.collection().Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get incident", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return false, goerr.Wrap(err, "failed to delete incident", goerr.V("id", id))
	}
	return true, nil
}
