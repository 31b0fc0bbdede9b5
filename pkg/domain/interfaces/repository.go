package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Incident() IncidentRepository
	Checklist() ChecklistRepository
	Alert() AlertRepository
	DailyStat() DailyStatRepository
	Report() ReportRepository

	Close() error
}
