package aggregation

import (
	"sort"

	"klinik/model"
)

// AccumulateFieldTrips folds every sale's participants into per-person
// buckets: amount totals, participation count, the contributing event dates
// (sale date when the event is not scheduled yet) and the running average.
// The fold builds fresh maps on every call, so the result depends only on
// the sale set handed in, never on earlier UI state, and summing in any
// input order yields the same rows.
//
// The first-seen spelling of a person's name and label wins; later sales
// that carry a re-cased or edited name for the same id accumulate into the
// same bucket without renaming it.
func AccumulateFieldTrips(sales []model.FieldTripSaleRecord) []model.PersonFieldTripAggregate {
	doctors := make(map[string]*model.PersonFieldTripAggregate)
	employees := make(map[string]*model.PersonFieldTripAggregate)

	for _, sale := range sales {
		eventDate := sale.EventDate
		if eventDate == "" {
			eventDate = sale.SaleDate
		}
		for _, p := range sale.ParticipantDoctors {
			accumulate(doctors, p, model.RoleDoctor, eventDate)
		}
		for _, p := range sale.ParticipantEmployees {
			accumulate(employees, p, model.RoleEmployee, eventDate)
		}
	}

	out := make([]model.PersonFieldTripAggregate, 0, len(doctors)+len(employees))
	out = append(out, flatten(doctors)...)
	out = append(out, flatten(employees)...)
	return out
}

func accumulate(buckets map[string]*model.PersonFieldTripAggregate, p model.FieldTripParticipant, role, eventDate string) {
	b, ok := buckets[p.ID]
	if !ok {
		b = &model.PersonFieldTripAggregate{
			Name:  p.Name,
			Role:  role,
			Label: p.Label,
		}
		buckets[p.ID] = b
	}
	b.TotalAmount += p.Amount
	b.FieldTripCount++
	if eventDate != "" {
		b.EventDates = append(b.EventDates, eventDate)
	}
	b.AverageAmount = b.TotalAmount / float64(b.FieldTripCount)
}

// flatten orders one role's buckets alphabetically by name. Doctors are
// appended before employees by the caller.
func flatten(buckets map[string]*model.PersonFieldTripAggregate) []model.PersonFieldTripAggregate {
	rows := make([]model.PersonFieldTripAggregate, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, *b)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
	return rows
}
