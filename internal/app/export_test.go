package app

import "time"

// SetReportClock replaces the clock used to resolve report periods.
func SetReportClock(s *ReportService, now func() time.Time) {
	s.now = now
}

// SetUserClock replaces the clock used to stamp CreatedDate.
func SetUserClock(s *UserService, now func() time.Time) {
	s.now = now
}
