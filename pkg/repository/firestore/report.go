package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type categoryCountDocument struct {
	Total     int `firestore:"total"`
	Completed int `firestore:"completed"`
}

// reportDocument flattens the nested stat maps onto string keys, which is
// what the document store can index and unmarshal.
type reportDocument struct {
	ID    string `firestore:"id"`
	Kind  string `firestore:"kind"`
	Label string `firestore:"label"`

	WindowFrom time.Time `firestore:"window_from"`
	WindowTo   time.Time `firestore:"window_to"`

	IncidentTotal      int            `firestore:"incident_total"`
	IncidentBySeverity map[string]int `firestore:"incident_by_severity"`
	IncidentByStatus   map[string]int `firestore:"incident_by_status"`
	IncidentByType     map[string]int `firestore:"incident_by_type"`

	ChecklistTotal      int                              `firestore:"checklist_total"`
	ChecklistCompleted  int                              `firestore:"checklist_completed"`
	ChecklistPending    int                              `firestore:"checklist_pending"`
	ChecklistInProgress int                              `firestore:"checklist_in_progress"`
	ChecklistOverdue    int                              `firestore:"checklist_overdue"`
	ChecklistByCategory map[string]categoryCountDocument `firestore:"checklist_by_category"`
	CompletionRate      int                              `firestore:"completion_rate"`

	Score          int     `firestore:"score"`
	RawScore       float64 `firestore:"raw_score"`
	IncidentImpact float64 `firestore:"incident_impact"`
	ChecklistBonus float64 `firestore:"checklist_bonus"`

	GeneratedAt time.Time `firestore:"generated_at"`
}

func toReportDocument(report *model.Report) *reportDocument {
	doc := &reportDocument{
		ID:                  report.ID.String(),
		Kind:                string(report.Kind),
		Label:               report.Label,
		WindowFrom:          report.Window.From,
		WindowTo:            report.Window.To,
		IncidentBySeverity:  make(map[string]int),
		IncidentByStatus:    make(map[string]int),
		IncidentByType:      make(map[string]int),
		ChecklistByCategory: make(map[string]categoryCountDocument),
		GeneratedAt:         report.GeneratedAt,
	}

	if s := report.Incidents; s != nil {
		doc.IncidentTotal = s.Total
		for k, v := range s.BySeverity {
			doc.IncidentBySeverity[k.String()] = v
		}
		for k, v := range s.ByStatus {
			doc.IncidentByStatus[k.String()] = v
		}
		for k, v := range s.ByType {
			doc.IncidentByType[k.String()] = v
		}
	}
	if s := report.Checklists; s != nil {
		doc.ChecklistTotal = s.Total
		doc.ChecklistCompleted = s.Completed
		doc.ChecklistPending = s.Pending
		doc.ChecklistInProgress = s.InProgress
		doc.ChecklistOverdue = s.Overdue
		doc.CompletionRate = s.CompletionRate
		for k, v := range s.ByCategory {
			doc.ChecklistByCategory[k] = categoryCountDocument{Total: v.Total, Completed: v.Completed}
		}
	}
	if s := report.Score; s != nil {
		doc.Score = s.Score
		doc.RawScore = s.RawScore
		doc.IncidentImpact = s.IncidentImpact
		doc.ChecklistBonus = s.ChecklistBonus
	}
	return doc
}

func (d *reportDocument) toModel() *model.Report {
	window := model.TimeWindow{From: d.WindowFrom, To: d.WindowTo}

	incidents := model.NewIncidentStats(window)
	incidents.Total = d.IncidentTotal
	for k, v := range d.IncidentBySeverity {
		incidents.BySeverity[types.Severity(k)] = v
	}
	for k, v := range d.IncidentByStatus {
		incidents.ByStatus[types.IncidentStatus(k)] = v
	}
	for k, v := range d.IncidentByType {
		incidents.ByType[types.IncidentType(k)] = v
	}

	checklists := model.NewChecklistStats(window)
	checklists.Total = d.ChecklistTotal
	checklists.Completed = d.ChecklistCompleted
	checklists.Pending = d.ChecklistPending
	checklists.InProgress = d.ChecklistInProgress
	checklists.Overdue = d.ChecklistOverdue
	checklists.CompletionRate = d.CompletionRate
	for k, v := range d.ChecklistByCategory {
		checklists.ByCategory[k] = model.CategoryCount{Total: v.Total, Completed: v.Completed}
	}

	return &model.Report{
		ID:         types.ReportID(d.ID),
		Kind:       model.ReportKind(d.Kind),
		Label:      d.Label,
		Window:     window,
		Incidents:  incidents,
		Checklists: checklists,
		Score: &model.SafetyScore{
			Window:         window,
			Score:          d.Score,
			RawScore:       d.RawScore,
			IncidentImpact: d.IncidentImpact,
			ChecklistBonus: d.ChecklistBonus,
		},
		GeneratedAt: d.GeneratedAt,
	}
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) collection() *firestore.CollectionRef {
	name := "reports"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_reports"
	}
	return r.client.Collection(name)
}

func docID(kind model.ReportKind, label string) string {
	return string(kind) + "_" + label
}

func (r *reportRepository) Put(ctx context.Context, report *model.Report) error {
	doc := toReportDocument(report)
	if _, err := r.collection().Doc(docID(report.Kind, report.Label)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put report",
			goerr.V("kind", report.Kind), goerr.V("label", report.Label))
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, kind model.ReportKind, label string) (*model.Report, error) {
	snap, err := r.collection().Doc(docID(kind, label)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "report not found",
				goerr.V("kind", kind), goerr.V("label", label))
		}
		return nil, goerr.Wrap(err, "failed to get report",
			goerr.V("kind", kind), goerr.V("label", label))
	}

	var doc reportDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report")
	}
	return doc.toModel(), nil
}

func (r *reportRepository) List(ctx context.Context, kind model.ReportKind, limit int) ([]*model.Report, error) {
	q := r.collection().Query.
		Where("kind", "==", string(kind)).
		OrderBy("generated_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var reports []*model.Report
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports")
		}

		var doc reportDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal report")
		}
		reports = append(reports, doc.toModel())
	}
	return reports, nil
}
