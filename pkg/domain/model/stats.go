package model

import (
	"math"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// TimeWindow is a closed interval [From, To] used for rolling aggregations
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// TrailingWindow returns the window of the given length ending at now
func TrailingWindow(now time.Time, d time.Duration) TimeWindow {
	return TimeWindow{From: now.Add(-d), To: now}
}

// Contains reports whether t falls inside the window
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// IncidentStats is the incident breakdown over a window. Accumulators are
// pre-seeded with every enum value so absent categories report 0 rather
// than a missing key.
type IncidentStats struct {
	Window     TimeWindow
	Total      int
	BySeverity map[types.Severity]int
	ByStatus   map[types.IncidentStatus]int
	ByType     map[types.IncidentType]int
}

// NewIncidentStats returns stats with all accumulators seeded at zero
func NewIncidentStats(window TimeWindow) *IncidentStats {
	s := &IncidentStats{
		Window:     window,
		BySeverity: make(map[types.Severity]int),
		ByStatus:   make(map[types.IncidentStatus]int),
		ByType:     make(map[types.IncidentType]int),
	}
	for _, v := range types.AllSeverities() {
		s.BySeverity[v] = 0
	}
	for _, v := range types.AllIncidentStatuses() {
		s.ByStatus[v] = 0
	}
	for _, v := range types.AllIncidentTypes() {
		s.ByType[v] = 0
	}
	return s
}

// Tally counts one incident into the accumulators
func (s *IncidentStats) Tally(incident *Incident) {
	s.Total++
	s.BySeverity[incident.Severity]++
	s.ByStatus[incident.Status]++
	s.ByType[incident.Type]++
}

// CategoryCount is the per-category checklist breakdown
type CategoryCount struct {
	Total     int
	Completed int
}

// ChecklistStats is the checklist breakdown over a window. Category keys
// are created lazily per observed category.
type ChecklistStats struct {
	Window         TimeWindow
	Total          int
	Completed      int
	Pending        int
	InProgress     int
	Overdue        int
	ByCategory     map[string]CategoryCount
	CompletionRate int
}

// NewChecklistStats returns empty checklist stats for the window
func NewChecklistStats(window TimeWindow) *ChecklistStats {
	return &ChecklistStats{
		Window:     window,
		ByCategory: make(map[string]CategoryCount),
	}
}

// Tally counts one checklist into the accumulators
func (s *ChecklistStats) Tally(checklist *Checklist) {
	s.Total++
	switch checklist.Status {
	case types.ChecklistStatusCompleted:
		s.Completed++
	case types.ChecklistStatusPending:
		s.Pending++
	case types.ChecklistStatusInProgress:
		s.InProgress++
	case types.ChecklistStatusOverdue:
		s.Overdue++
	}
	cc := s.ByCategory[checklist.Category]
	cc.Total++
	if checklist.Status == types.ChecklistStatusCompleted {
		cc.Completed++
	}
	s.ByCategory[checklist.Category] = cc
}

// Finalize computes the completion rate. Zero checklists yield rate 0, not
// a division fault.
func (s *ChecklistStats) Finalize() {
	if s.Total == 0 {
		s.CompletionRate = 0
		return
	}
	s.CompletionRate = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
}

// ScoreWeights are the per-severity penalties and the checklist bonus used
// by the safety score. The defaults are the contract under test; sites may
// tune them via configuration.
type ScoreWeights struct {
	Critical       float64
	High           float64
	Medium         float64
	Low            float64
	ChecklistBonus float64
}

// DefaultScoreWeights returns the standard scoring weights
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Critical:       15,
		High:           10,
		Medium:         5,
		Low:            2,
		ChecklistBonus: 20,
	}
}

// SafetyScore is the bounded heuristic safety index over a window. Score is
// the clamped, rounded display value; IncidentImpact and ChecklistBonus are
// the raw components reported for transparency.
type SafetyScore struct {
	Window         TimeWindow
	Score          int
	RawScore       float64
	IncidentImpact float64
	ChecklistBonus float64
}

// ComputeSafetyScore applies the scoring heuristic:
//
//	score = 100 - (w.Critical*critical + w.High*high + w.Medium*medium + w.Low*low)
//	        + w.ChecklistBonus * completionRate/100
//
// clamped to [0, 100] and rounded for display. This is a policy choice, not
// a statistically derived model.
func ComputeSafetyScore(window TimeWindow, incidents *IncidentStats, checklists *ChecklistStats, w ScoreWeights) *SafetyScore {
	impact := w.Critical*float64(incidents.BySeverity[types.SeverityCritical]) +
		w.High*float64(incidents.BySeverity[types.SeverityHigh]) +
		w.Medium*float64(incidents.BySeverity[types.SeverityMedium]) +
		w.Low*float64(incidents.BySeverity[types.SeverityLow])
	bonus := w.ChecklistBonus * float64(checklists.CompletionRate) / 100

	raw := 100 - impact + bonus
	clamped := math.Min(100, math.Max(0, raw))

	return &SafetyScore{
		Window:         window,
		Score:          int(math.Round(clamped)),
		RawScore:       raw,
		IncidentImpact: impact,
		ChecklistBonus: bonus,
	}
}

// ReportKind distinguishes persisted report snapshots
type ReportKind string

const (
	ReportKindDaily  ReportKind = "daily"
	ReportKindWeekly ReportKind = "weekly"
)

// Report is an immutable snapshot of the aggregations over a fixed window,
// persisted by the daily and weekly jobs.
type Report struct {
	ID          types.ReportID
	Kind        ReportKind
	Label       string // date (daily) or week-ending date (weekly)
	Window      TimeWindow
	Incidents   *IncidentStats
	Checklists  *ChecklistStats
	Score       *SafetyScore
	GeneratedAt time.Time
}
