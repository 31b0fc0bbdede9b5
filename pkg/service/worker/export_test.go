package worker

import "time"

// SetClockForTest overrides the scheduler's time source
func (w *ReportScheduler) SetClockForTest(clock func() time.Time) {
	w.clock = clock
}
