package report

import (
	"testing"

	"klinik/model"
	"klinik/snapshot"
)

func seededSnapshot() *snapshot.Store {
	snap := snapshot.NewStore()
	snap.Replace(&snapshot.Data{
		Treatments: []model.TreatmentRecord{
			{ID: "t1", Date: "2024-01-05", PatientName: "Siti", DoctorName: "drg. Ayu", Nominal: 500000},
			{ID: "t2", Date: "2024-02-05", PatientName: "Budi", DoctorName: "drg. Bima", Nominal: 300000},
			{ID: "t3", Date: "2023-12-05", PatientName: "Andi", DoctorName: "drg. Ayu", Nominal: 200000},
		},
		Salaries: []model.SalaryRecord{
			{ID: "g1", EmployeeName: "Budi", Month: "01", Year: 2024, TotalSalary: 400000},
		},
	})
	return snap
}

func TestFinancialRows_MonthlyBuckets(t *testing.T) {
	rows := financialRows(seededSnapshot(), model.ReportFilters{}, "monthly")
	if len(rows) != 3 {
		t.Fatalf("expected 3 monthly rows, got %d", len(rows))
	}
	if rows[0].Year != 2023 || rows[1].Month != "01" || rows[2].Month != "02" {
		t.Errorf("rows out of order: %+v", rows)
	}
	if rows[1].Profit != 100000 {
		t.Errorf("january profit = %v, want 100000", rows[1].Profit)
	}
}

func TestFinancialRows_YearFilter(t *testing.T) {
	rows := financialRows(seededSnapshot(), model.ReportFilters{Year: "2024"}, "monthly")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for 2024, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Year != 2024 {
			t.Errorf("row from the wrong year: %+v", r)
		}
	}
}

func TestFinancialRows_YearlyView(t *testing.T) {
	rows := financialRows(seededSnapshot(), model.ReportFilters{}, "yearly")
	if len(rows) != 2 {
		t.Fatalf("expected 2 yearly rows, got %d", len(rows))
	}
	if rows[1].Year != 2024 || rows[1].TotalIncome != 800000 {
		t.Errorf("2024 yearly row = %+v", rows[1])
	}
	if rows[1].Month != "" {
		t.Errorf("yearly rows must not carry a month: %+v", rows[1])
	}
}

// Person and text criteria from the shared filter form must not thin the
// financial totals; only the period criteria apply.
func TestFinancialRows_IgnoresPersonCriteria(t *testing.T) {
	unfiltered := financialRows(seededSnapshot(), model.ReportFilters{}, "monthly")
	named := financialRows(seededSnapshot(), model.ReportFilters{Name: "drg. Ayu"}, "monthly")
	if len(named) != len(unfiltered) {
		t.Fatalf("name filter changed the row count: %d vs %d", len(named), len(unfiltered))
	}
	for i := range named {
		if named[i].TotalIncome != unfiltered[i].TotalIncome {
			t.Errorf("name filter thinned the totals: %+v vs %+v", named[i], unfiltered[i])
		}
	}
}

func TestFinancialRows_EmptySnapshot(t *testing.T) {
	rows := financialRows(snapshot.NewStore(), model.ReportFilters{}, "monthly")
	if len(rows) != 0 {
		t.Errorf("empty snapshot must yield no rows, got %+v", rows)
	}
}

func TestFilterPeriods_MonthAndYear(t *testing.T) {
	rows := []model.FinancialPeriodSummary{
		{Year: 2023, Month: "12"},
		{Year: 2024, Month: "01"},
		{Year: 2024, Month: "02"},
	}
	got := filterPeriods(rows, model.ReportFilters{Year: "2024", Month: "01"})
	if len(got) != 1 || got[0].Month != "01" {
		t.Errorf("filtered rows = %+v", got)
	}
	got = filterPeriods(rows, model.ReportFilters{Year: model.FilterAll, Month: model.FilterAll})
	if len(got) != 3 {
		t.Errorf("sentinels must keep every row, got %d", len(got))
	}
	got = filterPeriods(rows, model.ReportFilters{Year: "bukan angka"})
	if len(got) != 3 {
		t.Errorf("unparseable year criterion must be ignored, got %d", len(got))
	}
}
