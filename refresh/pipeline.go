package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"klinik/database"
	"klinik/model"
	"klinik/normalize"
	"klinik/snapshot"
)

// Source is the data-access collaborator: one fetch per record kind,
// rejecting with a descriptive error on transport or auth failure.
type Source interface {
	FetchTreatments(ctx context.Context) ([]model.TreatmentRecord, error)
	FetchSales(ctx context.Context) ([]model.SaleRecord, error)
	FetchFieldTripSales(ctx context.Context) ([]model.FieldTripSaleRecord, error)
	FetchSalaries(ctx context.Context) ([]model.SalaryRecord, error)
	FetchDoctorFees(ctx context.Context) ([]model.DoctorFeeRecord, error)
	FetchExpenses(ctx context.Context) ([]model.ExpenseRecord, error)
}

// Pipeline is one refresh cycle's work: fan out the six source fetches,
// normalize, persist the mirror, swap the snapshot. Any single fetch
// failure fails the whole cycle and leaves the previous snapshot and
// mirror untouched; no partial success is retained.
type Pipeline struct {
	Source Source
	DB     *sqlx.DB // nil in tests; mirror write is skipped
	Snap   *snapshot.Store
	Logger *logrus.Logger
}

func (p *Pipeline) Run(ctx context.Context, cycleID string) error {
	started := time.Now()

	var (
		treatments []model.TreatmentRecord
		sales      []model.SaleRecord
		fieldTrips []model.FieldTripSaleRecord
		salaries   []model.SalaryRecord
		doctorFees []model.DoctorFeeRecord
		expenses   []model.ExpenseRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if treatments, err = p.Source.FetchTreatments(gctx); err != nil {
			return fmt.Errorf("treatments: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if sales, err = p.Source.FetchSales(gctx); err != nil {
			return fmt.Errorf("sales: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if fieldTrips, err = p.Source.FetchFieldTripSales(gctx); err != nil {
			return fmt.Errorf("field trip sales: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if salaries, err = p.Source.FetchSalaries(gctx); err != nil {
			return fmt.Errorf("salaries: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if doctorFees, err = p.Source.FetchDoctorFees(gctx); err != nil {
			return fmt.Errorf("doctor fees: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if expenses, err = p.Source.FetchExpenses(gctx); err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	data := &snapshot.Data{
		Treatments:     normalize.Treatments(treatments),
		Sales:          normalize.Sales(sales),
		FieldTripSales: normalize.FieldTripSales(fieldTrips),
		Salaries:       normalize.Salaries(salaries),
		DoctorFees:     normalize.DoctorFees(doctorFees),
		Expenses:       normalize.Expenses(expenses),
		FetchedAt:      time.Now(),
	}

	if p.DB != nil {
		if err := database.ReplaceSnapshot(p.DB, data); err != nil {
			return fmt.Errorf("mirror write failed: %w", err)
		}
	}
	p.Snap.Replace(data)

	if p.Logger != nil {
		p.Logger.WithFields(logrus.Fields{
			"cycle_id":    cycleID,
			"treatments":  len(data.Treatments),
			"sales":       len(data.Sales),
			"field_trips": len(data.FieldTripSales),
			"salaries":    len(data.Salaries),
			"doctor_fees": len(data.DoctorFees),
			"expenses":    len(data.Expenses),
			"elapsed_ms":  time.Since(started).Milliseconds(),
		}).Info("refresh cycle fetched and aggregated")
	}
	return nil
}
