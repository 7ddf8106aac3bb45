package filters

import (
	"reflect"
	"testing"

	"klinik/model"
)

func sampleTreatments() []model.TreatmentRecord {
	return []model.TreatmentRecord{
		{ID: "t1", Date: "2024-01-05", PatientName: "Siti", DoctorName: "drg. Ayu", Nominal: 500000, PaymentStatus: model.PaymentLunas},
		{ID: "t2", Date: "2024-01-31", PatientName: "Budi", DoctorName: "drg. Bima", Nominal: 150000, PaymentStatus: model.PaymentDP},
		{ID: "t3", Date: "2024-02-01", PatientName: "Andi", DoctorName: "drg. Ayu", Nominal: 300000, PaymentStatus: model.PaymentLunas},
		{ID: "t4", Date: "", PatientName: "Tanpa Tanggal", DoctorName: "drg. Ayu", Nominal: 50000, PaymentStatus: model.PaymentLunas},
	}
}

func TestTreatments_DateRangeInclusive(t *testing.T) {
	got := Treatments(sampleTreatments(), model.ReportFilters{
		StartDate: "2024-01-05",
		EndDate:   "2024-01-31",
	})
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("inclusive bounds must keep both boundary records: %+v", got)
	}
}

// A record with no usable date fails any active date bound but passes an
// unbounded query.
func TestTreatments_DatelessRecords(t *testing.T) {
	all := Treatments(sampleTreatments(), model.ReportFilters{})
	if len(all) != 4 {
		t.Errorf("no active filters must keep every record, got %d", len(all))
	}
	ranged := Treatments(sampleTreatments(), model.ReportFilters{StartDate: "2000-01-01"})
	for _, r := range ranged {
		if r.Date == "" {
			t.Errorf("dateless record leaked through an active date bound: %+v", r)
		}
	}
}

func TestTreatments_SentinelAll(t *testing.T) {
	a := Treatments(sampleTreatments(), model.ReportFilters{Status: ""})
	b := Treatments(sampleTreatments(), model.ReportFilters{Status: model.FilterAll})
	c := Treatments(sampleTreatments(), model.ReportFilters{Status: "ALL"})
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
		t.Errorf("\"\" and any casing of %q must disable the criterion", model.FilterAll)
	}
}

func TestTreatments_StatusCaseInsensitive(t *testing.T) {
	got := Treatments(sampleTreatments(), model.ReportFilters{Status: "lunas"})
	if len(got) != 3 {
		t.Errorf("status match must be case-insensitive, got %d rows", len(got))
	}
}

// The name query matches patient or doctor as a case-insensitive substring.
func TestTreatments_NameSubstring(t *testing.T) {
	got := Treatments(sampleTreatments(), model.ReportFilters{Name: "ayu"})
	if len(got) != 3 {
		t.Errorf("expected 3 rows for doctor substring, got %d", len(got))
	}
	got = Treatments(sampleTreatments(), model.ReportFilters{Name: "siti"})
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("expected the patient row, got %+v", got)
	}
}

func TestTreatments_AmountBounds(t *testing.T) {
	got := Treatments(sampleTreatments(), model.ReportFilters{MinAmount: "150000", MaxAmount: "300000"})
	if len(got) != 2 {
		t.Errorf("expected 2 rows inside the inclusive amount range, got %d", len(got))
	}
	// Unparseable bounds disable that side instead of erroring.
	got = Treatments(sampleTreatments(), model.ReportFilters{MinAmount: "abc"})
	if len(got) != 4 {
		t.Errorf("unparseable bound must be ignored, got %d rows", len(got))
	}
}

// Filtering is idempotent: applying the same criteria to its own output
// changes nothing.
func TestTreatments_Idempotent(t *testing.T) {
	f := model.ReportFilters{Name: "ayu", Status: model.PaymentLunas, StartDate: "2024-01-01"}
	once := Treatments(sampleTreatments(), f)
	twice := Treatments(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed the result: %+v vs %+v", once, twice)
	}
}

func TestTreatments_PreservesOrderAndInput(t *testing.T) {
	in := sampleTreatments()
	got := Treatments(in, model.ReportFilters{Status: model.PaymentLunas})
	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Errorf("output order must follow input order: %+v", got)
		}
	}
	if !reflect.DeepEqual(in, sampleTreatments()) {
		t.Errorf("input slice was mutated")
	}
}

func TestSales_ProductAndCategory(t *testing.T) {
	sales := []model.SaleRecord{
		{ID: "s1", Date: "2024-01-05", ProductName: "Sikat Gigi Anak", Category: "Retail", TotalAmount: 25000},
		{ID: "s2", Date: "2024-01-06", ProductName: "Pasta Gigi", Category: "Retail", TotalAmount: 18000},
		{ID: "s3", Date: "2024-01-07", ProductName: "Obat Kumur", Category: "Medis", TotalAmount: 40000},
	}
	got := Sales(sales, model.ReportFilters{Product: "gigi", Category: "retail"})
	if len(got) != 2 {
		t.Errorf("expected 2 retail gigi products, got %+v", got)
	}
}

// A participant-name query keeps the whole sale, so downstream accumulation
// still sees every sale the person joined.
func TestFieldTripSales_ParticipantName(t *testing.T) {
	sales := []model.FieldTripSaleRecord{
		{ID: "f1", SaleDate: "2024-04-01", Organization: "SD Negeri 1",
			ParticipantDoctors: []model.FieldTripParticipant{{ID: "d1", Name: "drg. Ayu", Amount: 100000}}},
		{ID: "f2", SaleDate: "2024-04-02", Organization: "SMP 3",
			ParticipantEmployees: []model.FieldTripParticipant{{ID: "e1", Name: "Budi", Amount: 50000}}},
	}
	got := FieldTripSales(sales, model.ReportFilters{Name: "budi"})
	if len(got) != 1 || got[0].ID != "f2" {
		t.Errorf("expected only the sale Budi joined, got %+v", got)
	}
	got = FieldTripSales(sales, model.ReportFilters{Organization: "negeri"})
	if len(got) != 1 || got[0].ID != "f1" {
		t.Errorf("expected the organization match, got %+v", got)
	}
}

func TestSalaries_MonthYear(t *testing.T) {
	salaries := []model.SalaryRecord{
		{ID: "g1", EmployeeName: "Budi", Month: "01", Year: 2024, TotalSalary: 2000000},
		{ID: "g2", EmployeeName: "Sari", Month: "02", Year: 2024, TotalSalary: 2100000},
		{ID: "g3", EmployeeName: "Budi", Month: "01", Year: 2023, TotalSalary: 1900000},
	}
	got := Salaries(salaries, model.ReportFilters{Month: "01", Year: "2024"})
	if len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("expected the 2024-01 row, got %+v", got)
	}
	got = Salaries(salaries, model.ReportFilters{Month: model.FilterAll, Year: model.FilterAll})
	if len(got) != 3 {
		t.Errorf("sentinel month/year must keep every row, got %d", len(got))
	}
}

func TestDoctorFees_NameAndRange(t *testing.T) {
	fees := []model.DoctorFeeRecord{
		{ID: "d1", DoctorName: "drg. Ayu", Date: "2024-01-05", FinalFee: 125000},
		{ID: "d2", DoctorName: "drg. Bima", Date: "2024-01-06", FinalFee: 90000},
	}
	got := DoctorFees(fees, model.ReportFilters{Name: "AYU", MinAmount: "100000"})
	if len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("expected drg. Ayu's row, got %+v", got)
	}
}

func TestExpenses_CategoryAndDescription(t *testing.T) {
	expenses := []model.ExpenseRecord{
		{ID: "e1", Date: "2024-01-05", Category: "Listrik", Description: "Tagihan PLN Januari", Amount: 450000},
		{ID: "e2", Date: "2024-01-06", Category: "ATK", Description: "Kertas A4", Amount: 60000},
	}
	got := Expenses(expenses, model.ReportFilters{Category: "listrik"})
	if len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("expected the electricity row, got %+v", got)
	}
	got = Expenses(expenses, model.ReportFilters{Name: "kertas"})
	if len(got) != 1 || got[0].ID != "e2" {
		t.Errorf("description must be searchable, got %+v", got)
	}
}

func TestPersonRows_RoleAfterAccumulation(t *testing.T) {
	rows := []model.PersonFieldTripAggregate{
		{Name: "drg. Ayu", Role: model.RoleDoctor, TotalAmount: 800000},
		{Name: "Budi", Role: model.RoleEmployee, TotalAmount: 100000},
	}
	got := PersonRows(rows, model.ReportFilters{PersonType: model.RoleDoctor})
	if len(got) != 1 || got[0].Name != "drg. Ayu" {
		t.Errorf("expected only the doctor row, got %+v", got)
	}
	got = PersonRows(rows, model.ReportFilters{PersonType: model.FilterAll, Name: "bud"})
	if len(got) != 1 || got[0].Name != "Budi" {
		t.Errorf("expected the name match, got %+v", got)
	}
}
