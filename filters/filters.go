package filters

import (
	"strconv"
	"strings"

	"klinik/model"
)

// Pure predicate application per record kind. Every function returns a new
// slice in input order and leaves its input untouched, so applying the same
// criteria twice yields the same rows.

// active reports whether a categorical criterion participates at all.
func active(v string) bool {
	return v != "" && !strings.EqualFold(v, model.FilterAll)
}

func matchCategory(value, criterion string) bool {
	if !active(criterion) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(criterion))
}

func matchText(value, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(strings.TrimSpace(query)))
}

// inDateRange uses inclusive ISO bounds; an absent bound disables that side.
// Records without a usable date fail any active bound.
func inDateRange(date, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	if date == "" {
		return false
	}
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// bound parses a numeric filter bound. Blank or unparseable input disables
// that side rather than erroring.
func bound(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func inAmountRange(v float64, minRaw, maxRaw string) bool {
	if lo, ok := bound(minRaw); ok && v < lo {
		return false
	}
	if hi, ok := bound(maxRaw); ok && v > hi {
		return false
	}
	return true
}

func matchYear(year int, criterion string) bool {
	if !active(criterion) {
		return true
	}
	y, err := strconv.Atoi(strings.TrimSpace(criterion))
	if err != nil {
		return true
	}
	return year == y
}

func Treatments(records []model.TreatmentRecord, f model.ReportFilters) []model.TreatmentRecord {
	out := make([]model.TreatmentRecord, 0, len(records))
	for _, r := range records {
		if !inDateRange(r.Date, f.StartDate, f.EndDate) {
			continue
		}
		if !matchText(r.PatientName, f.Name) && !matchText(r.DoctorName, f.Name) {
			continue
		}
		if !matchCategory(r.PaymentStatus, f.Status) {
			continue
		}
		if !inAmountRange(r.Nominal, f.MinAmount, f.MaxAmount) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func Sales(records []model.SaleRecord, f model.ReportFilters) []model.SaleRecord {
	out := make([]model.SaleRecord, 0, len(records))
	for _, r := range records {
		if !inDateRange(r.Date, f.StartDate, f.EndDate) {
			continue
		}
		if !matchText(r.ProductName, f.Product) {
			continue
		}
		if !matchCategory(r.Category, f.Category) {
			continue
		}
		if !inAmountRange(r.TotalAmount, f.MinAmount, f.MaxAmount) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FieldTripSales narrows by sale date, organization and participant name.
// A name query keeps any sale in which a matching doctor or employee took
// part, so the per-person accumulation still sees every contributing sale.
func FieldTripSales(records []model.FieldTripSaleRecord, f model.ReportFilters) []model.FieldTripSaleRecord {
	out := make([]model.FieldTripSaleRecord, 0, len(records))
	for _, r := range records {
		if !inDateRange(r.SaleDate, f.StartDate, f.EndDate) {
			continue
		}
		if !matchText(r.Organization, f.Organization) {
			continue
		}
		if !matchesParticipant(r, f.Name) {
			continue
		}
		if !inAmountRange(r.TotalAmount, f.MinAmount, f.MaxAmount) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesParticipant(r model.FieldTripSaleRecord, name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}
	for _, p := range r.ParticipantDoctors {
		if matchText(p.Name, name) {
			return true
		}
	}
	for _, p := range r.ParticipantEmployees {
		if matchText(p.Name, name) {
			return true
		}
	}
	return false
}

func Salaries(records []model.SalaryRecord, f model.ReportFilters) []model.SalaryRecord {
	out := make([]model.SalaryRecord, 0, len(records))
	for _, r := range records {
		if !matchText(r.EmployeeName, f.Name) {
			continue
		}
		if !matchCategory(r.Month, f.Month) {
			continue
		}
		if !matchYear(r.Year, f.Year) {
			continue
		}
		if !inAmountRange(r.TotalSalary, f.MinAmount, f.MaxAmount) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func DoctorFees(records []model.DoctorFeeRecord, f model.ReportFilters) []model.DoctorFeeRecord {
	out := make([]model.DoctorFeeRecord, 0, len(records))
	for _, r := range records {
		if !inDateRange(r.Date, f.StartDate, f.EndDate) {
			continue
		}
		if !matchText(r.DoctorName, f.Name) {
			continue
		}
		if !inAmountRange(r.FinalFee, f.MinAmount, f.MaxAmount) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func Expenses(records []model.ExpenseRecord, f model.ReportFilters) []model.ExpenseRecord {
	out := make([]model.ExpenseRecord, 0, len(records))
	for _, r := range records {
		if !inDateRange(r.Date, f.StartDate, f.EndDate) {
			continue
		}
		if !matchCategory(r.Category, f.Category) {
			continue
		}
		if !matchText(r.Description, f.Name) {
			continue
		}
		if !inAmountRange(r.Amount, f.MinAmount, f.MaxAmount) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PersonRows narrows already-aggregated field-trip rows by role and name.
// personType applies after accumulation so a doctor-only view still
// averages over every sale the doctor joined.
func PersonRows(rows []model.PersonFieldTripAggregate, f model.ReportFilters) []model.PersonFieldTripAggregate {
	out := make([]model.PersonFieldTripAggregate, 0, len(rows))
	for _, r := range rows {
		if !matchCategory(r.Role, f.PersonType) {
			continue
		}
		if !matchText(r.Name, f.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}
