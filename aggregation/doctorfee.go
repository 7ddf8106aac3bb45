package aggregation

import (
	"sort"

	"klinik/model"
)

// GroupDoctorFees turns filtered doctor-fee records into report rows.
//
// Ungrouped: one row per record with a single-date label, newest first.
// Grouped: one row per doctor present in the input, its period label spanning
// the doctor's min and max record date, fees summed across the group. A
// doctor with no contributing record never appears; groups sort by summed
// total fee descending.
func GroupDoctorFees(records []model.DoctorFeeRecord, groupByDoctor bool) []model.DoctorFeeAggregate {
	if !groupByDoctor {
		sorted := make([]model.DoctorFeeRecord, len(records))
		copy(sorted, records)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date > sorted[j].Date
		})
		out := make([]model.DoctorFeeAggregate, 0, len(sorted))
		for _, r := range sorted {
			out = append(out, model.DoctorFeeAggregate{
				DoctorName:    r.DoctorName,
				PeriodLabel:   FormatDisplayDate(r.Date),
				TreatmentFee:  r.TreatmentFee,
				SittingFee:    r.SittingFee,
				TotalFee:      r.FinalFee,
				RecordCount:   1,
				HasTreatments: r.HasTreatments,
			})
		}
		return out
	}

	type group struct {
		agg     model.DoctorFeeAggregate
		minDate string
		maxDate string
	}
	groups := make(map[string]*group)
	for _, r := range records {
		g, ok := groups[r.DoctorName]
		if !ok {
			g = &group{
				agg:     model.DoctorFeeAggregate{DoctorName: r.DoctorName},
				minDate: r.Date,
				maxDate: r.Date,
			}
			groups[r.DoctorName] = g
		}
		if r.Date < g.minDate {
			g.minDate = r.Date
		}
		if r.Date > g.maxDate {
			g.maxDate = r.Date
		}
		g.agg.TreatmentFee += r.TreatmentFee
		g.agg.SittingFee += r.SittingFee
		g.agg.TotalFee += r.FinalFee
		g.agg.RecordCount++
		if r.HasTreatments {
			g.agg.HasTreatments = true
		}
	}

	out := make([]model.DoctorFeeAggregate, 0, len(groups))
	for _, g := range groups {
		g.agg.PeriodLabel = FormatPeriodRange(g.minDate, g.maxDate)
		out = append(out, g.agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalFee != out[j].TotalFee {
			return out[i].TotalFee > out[j].TotalFee
		}
		return out[i].DoctorName < out[j].DoctorName
	})
	return out
}
