package memory

import (
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is an in-memory repository for development and tests
type Memory struct {
	incident  *incidentRepository
	checklist *checklistRepository
	alert     *alertRepository
	dailyStat *dailyStatRepository
	report    *reportRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		incident:  newIncidentRepository(),
		checklist: newChecklistRepository(),
		alert:     newAlertRepository(),
		dailyStat: newDailyStatRepository(),
		report:    newReportRepository(),
	}
}

func (m *Memory) Incident() interfaces.IncidentRepository {
	return m.incident
}

func (m *Memory) Checklist() interfaces.ChecklistRepository {
	return m.checklist
}

func (m *Memory) Alert() interfaces.AlertRepository {
	return m.alert
}

func (m *Memory) DailyStat() interfaces.DailyStatRepository {
	return m.dailyStat
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Close() error {
	return nil
}
