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

type checklistItemDocument struct {
	ID            string     `firestore:"id"`
	Description   string     `firestore:"description"`
	IsCompleted   bool       `firestore:"is_completed"`
	CompletedAt   *time.Time `firestore:"completed_at"`
	CompletedBy   string     `firestore:"completed_by"`
	Notes         string     `firestore:"notes"`
	RequiresPhoto bool       `firestore:"requires_photo"`
}

type checklistDocument struct {
	ID          string                  `firestore:"id"`
	Title       string                  `firestore:"title"`
	Category    string                  `firestore:"category"`
	Section     string                  `firestore:"section"`
	Shift       string                  `firestore:"shift"`
	Items       []checklistItemDocument `firestore:"items"`
	Status      string                  `firestore:"status"`
	DueDate     time.Time               `firestore:"due_date"`
	CompletedAt *time.Time              `firestore:"completed_at"`
	CreatedBy   string                  `firestore:"created_by"`
	CreatedAt   time.Time               `firestore:"created_at"`
	UpdatedAt   time.Time               `firestore:"updated_at"`
}

func toChecklistDocument(checklist *model.Checklist) *checklistDocument {
	doc := &checklistDocument{
		ID:          checklist.ID.String(),
		Title:       checklist.Title,
		Category:    checklist.Category,
		Section:     checklist.Section,
		Shift:       checklist.Shift,
		Status:      checklist.Status.String(),
		DueDate:     checklist.DueDate,
		CompletedAt: checklist.CompletedAt,
		CreatedBy:   checklist.CreatedBy.String(),
		CreatedAt:   checklist.CreatedAt,
		UpdatedAt:   checklist.UpdatedAt,
	}
	for _, item := range checklist.Items {
		doc.Items = append(doc.Items, checklistItemDocument{
			ID:            item.ID.String(),
			Description:   item.Description,
			IsCompleted:   item.IsCompleted,
			CompletedAt:   item.CompletedAt,
			CompletedBy:   item.CompletedBy.String(),
			Notes:         item.Notes,
			RequiresPhoto: item.RequiresPhoto,
		})
	}
	return doc
}

func (d *checklistDocument) toModel() *model.Checklist {
	checklist := &model.Checklist{
		ID:          types.ChecklistID(d.ID),
		Title:       d.Title,
		Category:    d.Category,
		Section:     d.Section,
		Shift:       d.Shift,
		Status:      types.ChecklistStatus(d.Status),
		DueDate:     d.DueDate,
		CompletedAt: d.CompletedAt,
		CreatedBy:   types.ActorID(d.CreatedBy),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, item := range d.Items {
		checklist.Items = append(checklist.Items, model.ChecklistItem{
			ID:            types.ChecklistItemID(item.ID),
			Description:   item.Description,
			IsCompleted:   item.IsCompleted,
			CompletedAt:   item.CompletedAt,
			CompletedBy:   types.ActorID(item.CompletedBy),
			Notes:         item.Notes,
			RequiresPhoto: item.RequiresPhoto,
		})
	}
	return checklist
}

type checklistRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newChecklistRepository(client *firestore.Client) *checklistRepository {
	return &checklistRepository{client: client}
}

func (r *checklistRepository) collection() *firestore.CollectionRef {
	name := "checklists"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_checklists"
	}
	return r.client.Collection(name)
}

func (r *checklistRepository) Create(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error) {
	doc := toChecklistDocument(checklist)
	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create checklist", goerr.V("id", checklist.ID))
	}
	return doc.toModel(), nil
}

func (r *checklistRepository) Get(ctx context.Context, id types.ChecklistID) (*model.Checklist, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "checklist not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get checklist", goerr.V("id", id))
	}

	var doc checklistDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal checklist", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *checklistRepository) buildQuery(opts ...interfaces.ListChecklistOption) firestore.Query {
	cfg := interfaces.BuildListChecklistConfig(opts...)
	q := r.collection().Query

	if statuses := cfg.Statuses(); len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = s.String()
		}
		q = q.Where("status", "in", values)
	}
	if cfg.Section() != nil {
		q = q.Where("section", "==", *cfg.Section())
	}
	if cfg.Shift() != nil {
		q = q.Where("shift", "==", *cfg.Shift())
	}
	if cfg.DueBefore() != nil {
		q = q.Where("due_date", "<", *cfg.DueBefore())
	}
	if cfg.Window() != nil {
		q = q.Where("created_at", ">=", cfg.Window().From).
			Where("created_at", "<=", cfg.Window().To)
	}
	return q
}

func (r *checklistRepository) List(ctx context.Context, opts ...interfaces.ListChecklistOption) ([]*model.Checklist, error) {
	cfg := interfaces.BuildListChecklistConfig(opts...)

	// Range filters on due_date force ordering by due_date; everything else
	// orders by creation time, newest first.
	q := r.buildQuery(opts...)
	if cfg.DueBefore() != nil {
		q = q.OrderBy("due_date", firestore.Asc)
	} else {
		q = q.OrderBy("created_at", firestore.Desc)
	}
	if cfg.Limit() > 0 {
		q = q.Limit(cfg.Limit())
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var checklists []*model.Checklist
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate checklists")
		}

		var doc checklistDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal checklist")
		}
		checklists = append(checklists, doc.toModel())
	}
	return checklists, nil
}

func (r *checklistRepository) Count(ctx context.Context, opts ...interfaces.ListChecklistOption) (int64, error) {
	return countAll(ctx, r.buildQuery(opts...))
}

func (r *checklistRepository) Update(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error) {
	docRef := r.collection().Doc(checklist.ID.String())

	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "checklist not found", goerr.V("id", checklist.ID))
		}
		return nil, goerr.Wrap(err, "failed to get checklist", goerr.V("id", checklist.ID))
	}

	var existing checklistDocument
	if err := snap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal checklist", goerr.V("id", checklist.ID))
	}

	updated := toChecklistDocument(checklist)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update checklist", goerr.V("id", checklist.ID))
	}
	return updated.toModel(), nil
}

func (r *checklistRepository) Delete(ctx context.Context, id types.ChecklistID) (bool, error) {
	docRef := r.collection().Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to get checklist", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return false, goerr.Wrap(err, "failed to delete checklist", goerr.V("id", id))
	}
	return true, nil
}

// BatchUpdateStatus applies the updates through a BulkWriter, which batches
// under Firestore's 500-write limit. Failures on individual documents do
// not abort the rest; the successful count is reported either way.
func (r *checklistRepository) BatchUpdateStatus(ctx context.Context, updates []interfaces.ChecklistStatusUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	bulkWriter := r.client.BulkWriter(ctx)
	defer bulkWriter.End()

	now := time.Now().UTC()
	jobs := make([]*firestore.BulkWriterJob, 0, len(updates))
	ids := make([]types.ChecklistID, 0, len(updates))
	for _, u := range updates {
		docRef := r.collection().Doc(u.ID.String())
		job, err := bulkWriter.Update(docRef, []firestore.Update{
			{Path: "status", Value: u.Status.String()},
			{Path: "updated_at", Value: now},
		})
		if err != nil {
			continue
		}
		jobs = append(jobs, job)
		ids = append(ids, u.ID)
	}
	bulkWriter.Flush()

	updated := 0
	var failed []types.ChecklistID
	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			failed = append(failed, ids[i])
			continue
		}
		updated++
	}

	if updated < len(updates) {
		return updated, goerr.New("some checklists were not updated",
			goerr.V("failed", failed),
			goerr.V("updated", updated),
			goerr.V("attempted", len(updates)))
	}
	return updated, nil
}
