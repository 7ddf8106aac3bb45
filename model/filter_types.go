package model

// FilterAll is the sentinel that disables a categorical filter.
// The UI sends it for "semua" dropdown options; an empty string means the
// same thing.
const FilterAll = "all"

// ReportFilters carries every predicate any report understands. Each report
// applies only the criteria relevant to its record kind and ignores the
// rest.
type ReportFilters struct {
	StartDate    string `json:"startDate"` // inclusive ISO bound, "" disables
	EndDate      string `json:"endDate"`   // inclusive ISO bound, "" disables
	Name         string `json:"name"`      // case-insensitive substring
	Organization string `json:"organization"`
	Product      string `json:"product"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	PersonType   string `json:"personType"` // RoleDoctor / RoleEmployee / "all"
	Month        string `json:"month"`      // "01".."12" or "all"
	Year         string `json:"year"`       // "2024" or "all"
	MinAmount    string `json:"minAmount"`  // inclusive; blank or unparseable disables
	MaxAmount    string `json:"maxAmount"`
}
