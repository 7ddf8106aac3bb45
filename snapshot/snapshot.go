package snapshot

import (
	"sync"
	"time"

	"klinik/model"
)

// Data is one complete, normalized fetch of all six record sets. Consumers
// treat it as read-only; the refresh pipeline never mutates a published
// Data, it swaps in a new one.
type Data struct {
	Treatments     []model.TreatmentRecord
	Sales          []model.SaleRecord
	FieldTripSales []model.FieldTripSaleRecord
	Salaries       []model.SalaryRecord
	DoctorFees     []model.DoctorFeeRecord
	Expenses       []model.ExpenseRecord
	FetchedAt      time.Time
}

// Store holds the last successfully fetched snapshot. Report handlers read
// whatever is current; a failed refresh leaves the previous snapshot in
// place.
type Store struct {
	mu   sync.RWMutex
	data *Data
}

func NewStore() *Store {
	return &Store{data: &Data{}}
}

func (s *Store) Replace(d *Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
}

func (s *Store) Current() *Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}
