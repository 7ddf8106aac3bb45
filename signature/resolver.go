package signature

import (
	"strings"

	"klinik/model"
)

// Report type names as used by the HTTP layer and the exporters.
const (
	ReportDoctorFees = "doctor-fees"
	ReportFieldTrips = "field-trips"
	ReportFinancial  = "financial"
)

// Party is the projection of one aggregated row that the resolver needs:
// who the row is about and how they would be titled under a signature line.
type Party struct {
	Name  string
	Role  string // model.RoleDoctor / model.RoleEmployee, "" when not applicable
	Label string
}

// Defaults carries the organization-wide signatories from config.
type Defaults struct {
	Owner         model.Signatory
	Administrator model.Signatory
}

// Resolve picks the two signatories printed on an exported report. It is a
// pure function of the active filters and the rows currently aggregated;
// nothing here consults historical selections.
//
// Default: owner left, administrator right. A single named person selected
// through the name filter signs left as the recipient, with the owner moved
// right. A personType filter that narrows to one role without naming anyone
// promotes the first aggregated row of that role instead.
func Resolve(reportType string, f model.ReportFilters, rows []Party, d Defaults) model.SignBlock {
	if name := strings.TrimSpace(f.Name); name != "" {
		return model.SignBlock{
			Left:  model.Signatory{Name: canonicalName(name, rows), Title: recipientTitle(reportType)},
			Right: d.Owner,
		}
	}

	if role := strings.TrimSpace(f.PersonType); role != "" && !strings.EqualFold(role, model.FilterAll) {
		for _, row := range rows {
			if strings.EqualFold(row.Role, role) {
				title := row.Label
				if title == "" {
					title = recipientTitle(reportType)
				}
				return model.SignBlock{
					Left:  model.Signatory{Name: row.Name, Title: title},
					Right: d.Owner,
				}
			}
		}
		// Role narrowed but nobody aggregated: fall back to the fixed pair.
	}

	return model.SignBlock{Left: d.Owner, Right: d.Administrator}
}

// canonicalName prefers the aggregated row's spelling over the raw filter
// text, which may be a partial or re-cased substring.
func canonicalName(query string, rows []Party) string {
	lowered := strings.ToLower(query)
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), lowered) {
			return row.Name
		}
	}
	return query
}

func recipientTitle(reportType string) string {
	switch reportType {
	case ReportDoctorFees:
		return "Penerima Fee"
	case ReportFieldTrips:
		return "Penerima Fee & Bonus"
	default:
		return "Penerima"
	}
}
