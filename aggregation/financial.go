package aggregation

import (
	"sort"

	"klinik/model"
	"klinik/normalize"
)

// RollupFinancials buckets all six record sets into monthly
// FinancialPeriodSummary rows. Each record lands in exactly one bucket,
// keyed by its own date (salary rows carry month/year directly). Records
// whose date cannot be bucketed are skipped rather than failing the rollup.
// Empty input produces an empty slice, never a zero-filled row; rows come
// back ascending by (year, month).
func RollupFinancials(
	treatments []model.TreatmentRecord,
	sales []model.SaleRecord,
	fieldTrips []model.FieldTripSaleRecord,
	salaries []model.SalaryRecord,
	doctorFees []model.DoctorFeeRecord,
	expenses []model.ExpenseRecord,
) []model.FinancialPeriodSummary {
	type key struct {
		year  int
		month string
	}
	buckets := make(map[key]*model.FinancialPeriodSummary)
	bucket := func(year int, month string) *model.FinancialPeriodSummary {
		k := key{year, month}
		b, ok := buckets[k]
		if !ok {
			b = &model.FinancialPeriodSummary{Year: year, Month: month}
			buckets[k] = b
		}
		return b
	}

	for _, r := range treatments {
		if y, m, ok := normalize.PeriodKey(r.Date); ok {
			bucket(y, m).TreatmentIncome += r.Nominal
		}
	}
	for _, r := range sales {
		if y, m, ok := normalize.PeriodKey(r.Date); ok {
			bucket(y, m).SalesIncome += r.TotalAmount
		}
	}
	for _, r := range fieldTrips {
		y, m, ok := normalize.PeriodKey(r.SaleDate)
		if !ok {
			continue
		}
		b := bucket(y, m)
		b.FieldTripIncome += r.TotalAmount
		for _, p := range r.ParticipantDoctors {
			b.FieldTripExpense += p.Amount
		}
		for _, p := range r.ParticipantEmployees {
			b.FieldTripExpense += p.Amount
		}
	}
	for _, r := range salaries {
		if r.Year != 0 && r.Month != "" {
			bucket(r.Year, r.Month).SalaryExpense += r.TotalSalary
		}
	}
	for _, r := range doctorFees {
		if y, m, ok := normalize.PeriodKey(r.Date); ok {
			bucket(y, m).DoctorFeeExpense += r.FinalFee
		}
	}
	for _, r := range expenses {
		if y, m, ok := normalize.PeriodKey(r.Date); ok {
			bucket(y, m).OtherExpenses += r.Amount
		}
	}

	out := make([]model.FinancialPeriodSummary, 0, len(buckets))
	for _, b := range buckets {
		finalize(b)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// RollupYearly re-sums monthly rows sharing a year. Profit and margin come
// from the re-summed totals, never from averaging the children's margins,
// so monthly and yearly rows stay mutually consistent by construction.
func RollupYearly(monthly []model.FinancialPeriodSummary) []model.FinancialPeriodSummary {
	years := make(map[int]*model.FinancialPeriodSummary)
	for _, m := range monthly {
		y, ok := years[m.Year]
		if !ok {
			y = &model.FinancialPeriodSummary{Year: m.Year}
			years[m.Year] = y
		}
		y.TreatmentIncome += m.TreatmentIncome
		y.SalesIncome += m.SalesIncome
		y.FieldTripIncome += m.FieldTripIncome
		y.SalaryExpense += m.SalaryExpense
		y.DoctorFeeExpense += m.DoctorFeeExpense
		y.FieldTripExpense += m.FieldTripExpense
		y.OtherExpenses += m.OtherExpenses
	}
	out := make([]model.FinancialPeriodSummary, 0, len(years))
	for _, y := range years {
		finalize(y)
		out = append(out, *y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// finalize derives the totals from their documented constituents so parts
// and sums can never drift apart.
func finalize(s *model.FinancialPeriodSummary) {
	s.TotalIncome = s.TreatmentIncome + s.SalesIncome + s.FieldTripIncome
	s.TotalExpense = s.SalaryExpense + s.DoctorFeeExpense + s.FieldTripExpense + s.OtherExpenses
	s.Profit = s.TotalIncome - s.TotalExpense
	if s.TotalIncome == 0 {
		s.MarginPercent = 0
		return
	}
	s.MarginPercent = s.Profit / s.TotalIncome * 100
}
