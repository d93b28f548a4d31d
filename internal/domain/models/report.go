package models

// MonthlyReport is the derived pricing grid for one calendar month. It is
// computed fresh on every request and never persisted.
type MonthlyReport struct {
	Month       int
	Year        int
	DaysInMonth int
	Rows        []ReportRow
}

// ReportRow prices one newspaper across the month: one value per calendar
// day (the weekday rate when received, 0 otherwise) and the running total.
type ReportRow struct {
	NewspaperName string
	Days          []float64
	Total         float64
}
