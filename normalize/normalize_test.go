package normalize

import (
	"math"
	"testing"

	"klinik/model"
)

func TestDate_AcceptedLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024-01-05T10:30:00Z", "2024-01-05"},
		{"2024-01-05 10:30:00", "2024-01-05"},
		{"05/01/2024", "2024-01-05"},
		{"  2024-01-05  ", "2024-01-05"},
		{"", ""},
		{"05-01-2024", ""},
		{"bukan tanggal", ""},
	}
	for _, c := range cases {
		if got := Date(c.raw); got != c.want {
			t.Errorf("Date(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestMonth_Padding(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1", "01"},
		{"01", "01"},
		{"12", "12"},
		{"13", ""},
		{"0", ""},
		{"00", ""},
		{"ab", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Month(c.raw); got != c.want {
			t.Errorf("Month(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestSales_LegacyTotalBackfill(t *testing.T) {
	out := Sales([]model.SaleRecord{
		{ID: "s1", Date: "2024-01-05", Subtotal: 100000, DiscountAmount: 10000, TotalAmount: 0},
		{ID: "s2", Date: "2024-01-06", Subtotal: 100000, DiscountAmount: 10000, TotalAmount: 95000},
	})
	if out[0].TotalAmount != 90000 {
		t.Errorf("legacy row total = %v, want subtotal minus discount", out[0].TotalAmount)
	}
	if out[1].TotalAmount != 95000 {
		t.Errorf("stored total must win when present, got %v", out[1].TotalAmount)
	}
}

// Stored derived fields on hand-edited rows drift; normalization recomputes
// them from their parts.
func TestDoctorFees_FinalFeeRecomputed(t *testing.T) {
	out := DoctorFees([]model.DoctorFeeRecord{
		{ID: "d1", DoctorName: " drg. Ayu ", Date: "2024-01-05", TreatmentFee: 100000, SittingFee: 25000, FinalFee: 999},
	})
	if out[0].FinalFee != 125000 {
		t.Errorf("final fee = %v, want 125000", out[0].FinalFee)
	}
	if out[0].DoctorName != "drg. Ayu" {
		t.Errorf("doctor name not trimmed: %q", out[0].DoctorName)
	}
}

func TestSalaries_TotalRecomputedAndMonthPadded(t *testing.T) {
	out := Salaries([]model.SalaryRecord{
		{ID: "g1", EmployeeName: "Budi", Month: "1", Year: 2024, BaseSalary: 2000000, Bonus: 150000, HolidayAllowance: 0, TotalSalary: 1},
	})
	if out[0].TotalSalary != 2150000 {
		t.Errorf("total salary = %v, want 2150000", out[0].TotalSalary)
	}
	if out[0].Month != "01" {
		t.Errorf("month = %q, want 01", out[0].Month)
	}
}

func TestTreatments_BrokenNumericsZeroed(t *testing.T) {
	out := Treatments([]model.TreatmentRecord{
		{ID: "t1", Date: "2024-01-05", Nominal: math.NaN(), CalculatedFee: math.Inf(1)},
	})
	if out[0].Nominal != 0 || out[0].CalculatedFee != 0 {
		t.Errorf("NaN/Inf must become 0: %+v", out[0])
	}
}

func TestFieldTripSales_ParticipantsNormalized(t *testing.T) {
	out := FieldTripSales([]model.FieldTripSaleRecord{
		{
			ID:       "f1",
			SaleDate: "01/04/2024",
			ParticipantDoctors: []model.FieldTripParticipant{
				{ID: "d1", Name: " drg. Ayu ", Amount: math.NaN()},
			},
		},
	})
	if out[0].SaleDate != "2024-04-01" {
		t.Errorf("sale date = %q", out[0].SaleDate)
	}
	p := out[0].ParticipantDoctors[0]
	if p.Name != "drg. Ayu" || p.Amount != 0 {
		t.Errorf("participant not normalized: %+v", p)
	}
}

func TestPeriodKey(t *testing.T) {
	if y, m, ok := PeriodKey("2024-06-15"); !ok || y != 2024 || m != "06" {
		t.Errorf("PeriodKey = (%d, %q, %v)", y, m, ok)
	}
	for _, bad := range []string{"", "2024", "2024-13-01", "0000-01-01"} {
		if _, _, ok := PeriodKey(bad); ok {
			t.Errorf("PeriodKey(%q) should not bucket", bad)
		}
	}
}
