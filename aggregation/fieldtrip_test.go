package aggregation

import (
	"testing"

	"klinik/model"
)

func ftSale(id, saleDate, eventDate string, total float64, doctors, employees []model.FieldTripParticipant) model.FieldTripSaleRecord {
	return model.FieldTripSaleRecord{
		ID:                   id,
		SaleDate:             saleDate,
		EventDate:            eventDate,
		Organization:         "SD Negeri 1",
		TotalAmount:          total,
		ParticipantDoctors:   doctors,
		ParticipantEmployees: employees,
	}
}

func TestAccumulateFieldTrips_PerPersonTotals(t *testing.T) {
	sales := []model.FieldTripSaleRecord{
		ftSale("s1", "2024-04-01", "2024-04-10", 2000000,
			[]model.FieldTripParticipant{{ID: "d1", Name: "drg. Ayu", Label: "Ortodonti", Amount: 300000}},
			[]model.FieldTripParticipant{{ID: "e1", Name: "Budi", Label: "Perawat", Amount: 100000}},
		),
		ftSale("s2", "2024-05-02", "2024-05-15", 1500000,
			[]model.FieldTripParticipant{{ID: "d1", Name: "drg. Ayu", Label: "Ortodonti", Amount: 500000}},
			nil,
		),
	}

	rows := AccumulateFieldTrips(sales)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	ayu := rows[0]
	if ayu.Name != "drg. Ayu" || ayu.Role != model.RoleDoctor {
		t.Fatalf("unexpected first row: %+v", ayu)
	}
	if ayu.TotalAmount != 800000 {
		t.Errorf("total = %v, want 800000", ayu.TotalAmount)
	}
	if ayu.FieldTripCount != 2 {
		t.Errorf("count = %d, want 2", ayu.FieldTripCount)
	}
	if ayu.AverageAmount != 400000 {
		t.Errorf("average = %v, want 400000", ayu.AverageAmount)
	}
	if len(ayu.EventDates) != 2 || ayu.EventDates[0] != "2024-04-10" {
		t.Errorf("event dates = %v", ayu.EventDates)
	}

	budi := rows[1]
	if budi.Role != model.RoleEmployee || budi.TotalAmount != 100000 || budi.FieldTripCount != 1 {
		t.Errorf("unexpected employee row: %+v", budi)
	}
}

// The first spelling seen for a person id names the bucket; later re-cased
// rows for the same id still accumulate into it.
func TestAccumulateFieldTrips_FirstSeenNameWins(t *testing.T) {
	sales := []model.FieldTripSaleRecord{
		ftSale("s1", "2024-04-01", "", 0,
			[]model.FieldTripParticipant{{ID: "d1", Name: "drg. Ayu", Label: "Ortodonti", Amount: 100000}}, nil),
		ftSale("s2", "2024-04-02", "", 0,
			[]model.FieldTripParticipant{{ID: "d1", Name: "DRG. AYU", Label: "", Amount: 200000}}, nil),
	}

	rows := AccumulateFieldTrips(sales)
	if len(rows) != 1 {
		t.Fatalf("same id must share one bucket, got %d rows", len(rows))
	}
	if rows[0].Name != "drg. Ayu" || rows[0].Label != "Ortodonti" {
		t.Errorf("first-seen name/label must win: %+v", rows[0])
	}
	if rows[0].TotalAmount != 300000 {
		t.Errorf("total = %v, want 300000", rows[0].TotalAmount)
	}
}

// A doctor and an employee sharing a person id stay in separate buckets.
func TestAccumulateFieldTrips_RolesDoNotMerge(t *testing.T) {
	sales := []model.FieldTripSaleRecord{
		ftSale("s1", "2024-04-01", "", 0,
			[]model.FieldTripParticipant{{ID: "p1", Name: "Sari", Amount: 100000}},
			[]model.FieldTripParticipant{{ID: "p1", Name: "Sari", Amount: 50000}},
		),
	}
	rows := AccumulateFieldTrips(sales)
	if len(rows) != 2 {
		t.Fatalf("expected separate doctor and employee rows, got %d", len(rows))
	}
	if rows[0].Role != model.RoleDoctor || rows[1].Role != model.RoleEmployee {
		t.Errorf("doctors must come before employees: %+v", rows)
	}
}

func TestAccumulateFieldTrips_SaleDateFallback(t *testing.T) {
	sales := []model.FieldTripSaleRecord{
		ftSale("s1", "2024-04-01", "", 0,
			[]model.FieldTripParticipant{{ID: "d1", Name: "drg. Ayu", Amount: 100000}}, nil),
	}
	rows := AccumulateFieldTrips(sales)
	if len(rows) != 1 || len(rows[0].EventDates) != 1 || rows[0].EventDates[0] != "2024-04-01" {
		t.Errorf("unscheduled events must fall back to the sale date: %+v", rows)
	}
}

func TestAccumulateFieldTrips_OrderIndependent(t *testing.T) {
	a := []model.FieldTripSaleRecord{
		ftSale("s1", "2024-04-01", "", 0,
			[]model.FieldTripParticipant{{ID: "d1", Name: "drg. Ayu", Amount: 100000}}, nil),
		ftSale("s2", "2024-04-02", "", 0,
			[]model.FieldTripParticipant{{ID: "d2", Name: "drg. Bima", Amount: 200000}}, nil),
	}
	b := []model.FieldTripSaleRecord{a[1], a[0]}

	ra := AccumulateFieldTrips(a)
	rb := AccumulateFieldTrips(b)
	if len(ra) != len(rb) {
		t.Fatalf("row counts differ: %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].Name != rb[i].Name || ra[i].TotalAmount != rb[i].TotalAmount {
			t.Errorf("row %d differs across input orders: %+v vs %+v", i, ra[i], rb[i])
		}
	}
}

func TestAccumulateFieldTrips_Empty(t *testing.T) {
	if rows := AccumulateFieldTrips(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
