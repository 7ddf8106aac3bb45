package refresh

import (
	"context"
	"errors"
	"strings"
	"testing"

	"klinik/model"
	"klinik/snapshot"
)

// fakeSource serves canned record sets; setting an error on one kind makes
// that fetch fail.
type fakeSource struct {
	treatments []model.TreatmentRecord
	sales      []model.SaleRecord
	fieldTrips []model.FieldTripSaleRecord
	salaries   []model.SalaryRecord
	doctorFees []model.DoctorFeeRecord
	expenses   []model.ExpenseRecord

	salariesErr error
}

func (s *fakeSource) FetchTreatments(ctx context.Context) ([]model.TreatmentRecord, error) {
	return s.treatments, nil
}
func (s *fakeSource) FetchSales(ctx context.Context) ([]model.SaleRecord, error) {
	return s.sales, nil
}
func (s *fakeSource) FetchFieldTripSales(ctx context.Context) ([]model.FieldTripSaleRecord, error) {
	return s.fieldTrips, nil
}
func (s *fakeSource) FetchSalaries(ctx context.Context) ([]model.SalaryRecord, error) {
	return s.salaries, s.salariesErr
}
func (s *fakeSource) FetchDoctorFees(ctx context.Context) ([]model.DoctorFeeRecord, error) {
	return s.doctorFees, nil
}
func (s *fakeSource) FetchExpenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	return s.expenses, nil
}

func TestPipelineRun_NormalizesAndSwaps(t *testing.T) {
	src := &fakeSource{
		treatments: []model.TreatmentRecord{{ID: "t1", Date: "05/01/2024", Nominal: 500000}},
		doctorFees: []model.DoctorFeeRecord{{ID: "d1", Date: "2024-01-05", TreatmentFee: 100000, SittingFee: 25000, FinalFee: 1}},
	}
	snap := snapshot.NewStore()
	p := &Pipeline{Source: src, Snap: snap}

	if err := p.Run(context.Background(), "cycle-1"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data := snap.Current()
	if len(data.Treatments) != 1 || data.Treatments[0].Date != "2024-01-05" {
		t.Errorf("treatment date not normalized: %+v", data.Treatments)
	}
	if len(data.DoctorFees) != 1 || data.DoctorFees[0].FinalFee != 125000 {
		t.Errorf("final fee not recomputed: %+v", data.DoctorFees)
	}
	if data.FetchedAt.IsZero() {
		t.Errorf("snapshot must record its fetch time")
	}
}

// One failing fetch fails the whole cycle and leaves the previous snapshot
// untouched; no partial data is published.
func TestPipelineRun_SingleFailureKeepsOldSnapshot(t *testing.T) {
	snap := snapshot.NewStore()
	prior := &snapshot.Data{
		Treatments: []model.TreatmentRecord{{ID: "old", Date: "2024-01-01"}},
	}
	snap.Replace(prior)

	src := &fakeSource{
		treatments:  []model.TreatmentRecord{{ID: "new", Date: "2024-02-01"}},
		salariesErr: errors.New("gateway timeout"),
	}
	p := &Pipeline{Source: src, Snap: snap}

	err := p.Run(context.Background(), "cycle-2")
	if err == nil {
		t.Fatalf("expected the cycle to fail")
	}
	if !strings.Contains(err.Error(), "fetch failed") || !strings.Contains(err.Error(), "salaries") {
		t.Errorf("error should name the failing source: %v", err)
	}
	if snap.Current() != prior {
		t.Errorf("failed cycle must not swap the snapshot")
	}
}

func TestPipelineRun_EmptySourcesPublishEmptySnapshot(t *testing.T) {
	snap := snapshot.NewStore()
	p := &Pipeline{Source: &fakeSource{}, Snap: snap}

	if err := p.Run(context.Background(), "cycle-3"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data := snap.Current()
	if len(data.Treatments) != 0 || len(data.Expenses) != 0 {
		t.Errorf("expected an empty snapshot, got %+v", data)
	}
}
