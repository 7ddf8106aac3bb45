package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"klinik/model"
)

// The data API returns records that are already close to the canonical
// shape, but legacy rows carry mixed date formats and occasional missing
// numerics. Normalization repairs them field by field and never fails:
// unparseable dates become "", broken numbers become 0, fixed derived
// fields are recomputed. Aggregation downstream assumes this has run.

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// Date converts an incoming date string to canonical ISO form, or ""
// when it cannot be interpreted.
func Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// amount zeroes NaN and infinities from broken upstream rows.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func Treatments(records []model.TreatmentRecord) []model.TreatmentRecord {
	out := make([]model.TreatmentRecord, 0, len(records))
	for _, r := range records {
		r.Date = Date(r.Date)
		r.PatientName = strings.TrimSpace(r.PatientName)
		r.DoctorName = strings.TrimSpace(r.DoctorName)
		r.Nominal = amount(r.Nominal)
		r.CalculatedFee = amount(r.CalculatedFee)
		out = append(out, r)
	}
	return out
}

func Sales(records []model.SaleRecord) []model.SaleRecord {
	out := make([]model.SaleRecord, 0, len(records))
	for _, r := range records {
		r.Date = Date(r.Date)
		r.ProductName = strings.TrimSpace(r.ProductName)
		r.Quantity = amount(r.Quantity)
		r.UnitPrice = amount(r.UnitPrice)
		r.Subtotal = amount(r.Subtotal)
		r.DiscountAmount = amount(r.DiscountAmount)
		r.TotalAmount = amount(r.TotalAmount)
		// Legacy sales predate the totalAmount column.
		if r.TotalAmount == 0 && r.Subtotal != 0 {
			r.TotalAmount = r.Subtotal - r.DiscountAmount
		}
		out = append(out, r)
	}
	return out
}

func FieldTripSales(records []model.FieldTripSaleRecord) []model.FieldTripSaleRecord {
	out := make([]model.FieldTripSaleRecord, 0, len(records))
	for _, r := range records {
		r.SaleDate = Date(r.SaleDate)
		r.EventDate = Date(r.EventDate)
		r.Organization = strings.TrimSpace(r.Organization)
		r.TotalAmount = amount(r.TotalAmount)
		r.ParticipantDoctors = participants(r.ParticipantDoctors)
		r.ParticipantEmployees = participants(r.ParticipantEmployees)
		out = append(out, r)
	}
	return out
}

func participants(ps []model.FieldTripParticipant) []model.FieldTripParticipant {
	out := make([]model.FieldTripParticipant, 0, len(ps))
	for _, p := range ps {
		p.Name = strings.TrimSpace(p.Name)
		p.Amount = amount(p.Amount)
		out = append(out, p)
	}
	return out
}

func Salaries(records []model.SalaryRecord) []model.SalaryRecord {
	out := make([]model.SalaryRecord, 0, len(records))
	for _, r := range records {
		r.EmployeeName = strings.TrimSpace(r.EmployeeName)
		r.Month = Month(r.Month)
		r.BaseSalary = amount(r.BaseSalary)
		r.Bonus = amount(r.Bonus)
		r.HolidayAllowance = amount(r.HolidayAllowance)
		// Fixed rule: the stored total may drift on hand-edited rows.
		r.TotalSalary = r.BaseSalary + r.Bonus + r.HolidayAllowance
		out = append(out, r)
	}
	return out
}

// Month pads single-digit months ("1" -> "01") and blanks anything that is
// not a calendar month.
func Month(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) == 1 {
		s = "0" + s
	}
	if len(s) != 2 || s < "01" || s > "12" {
		return ""
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return s
}

func DoctorFees(records []model.DoctorFeeRecord) []model.DoctorFeeRecord {
	out := make([]model.DoctorFeeRecord, 0, len(records))
	for _, r := range records {
		r.DoctorName = strings.TrimSpace(r.DoctorName)
		r.Date = Date(r.Date)
		r.TreatmentFee = amount(r.TreatmentFee)
		r.SittingFee = amount(r.SittingFee)
		// Business rule: final fee is always treatment + sitting.
		r.FinalFee = r.TreatmentFee + r.SittingFee
		out = append(out, r)
	}
	return out
}

func Expenses(records []model.ExpenseRecord) []model.ExpenseRecord {
	out := make([]model.ExpenseRecord, 0, len(records))
	for _, r := range records {
		r.Date = Date(r.Date)
		r.Category = strings.TrimSpace(r.Category)
		r.Amount = amount(r.Amount)
		out = append(out, r)
	}
	return out
}

// PeriodKey splits a canonical ISO date into its (year, month) bucket key.
// ok is false for records that cannot be bucketed (blank/broken date).
func PeriodKey(isoDate string) (year int, month string, ok bool) {
	if len(isoDate) < 7 {
		return 0, "", false
	}
	var y int
	if _, err := fmt.Sscanf(isoDate[:4], "%d", &y); err != nil || y == 0 {
		return 0, "", false
	}
	m := Month(isoDate[5:7])
	if m == "" {
		return 0, "", false
	}
	return y, m, true
}
