package report

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"klinik/aggregation"
	"klinik/config"
	"klinik/filters"
	"klinik/model"
	"klinik/signature"
	"klinik/snapshot"
)

// Report payloads carry the aggregated rows, the resolved sign-off block
// and an explicit empty flag. The UI renders a "tidak ada data" state from
// the flag instead of showing a zero-filled row.

type doctorFeePayload struct {
	Rows       []model.DoctorFeeAggregate `json:"rows"`
	Signatures model.SignBlock            `json:"signatures"`
	Empty      bool                       `json:"empty"`
}

type fieldTripPayload struct {
	Rows       []model.PersonFieldTripAggregate `json:"rows"`
	Signatures model.SignBlock                  `json:"signatures"`
	Empty      bool                             `json:"empty"`
}

type financialPayload struct {
	Rows       []model.FinancialPeriodSummary `json:"rows"`
	View       string                         `json:"view"`
	Signatures model.SignBlock                `json:"signatures"`
	Empty      bool                           `json:"empty"`
}

func filtersFromQuery(q url.Values) model.ReportFilters {
	return model.ReportFilters{
		StartDate:    q.Get("startDate"),
		EndDate:      q.Get("endDate"),
		Name:         q.Get("name"),
		Organization: q.Get("organization"),
		Product:      q.Get("product"),
		Category:     q.Get("category"),
		Status:       q.Get("status"),
		PersonType:   q.Get("personType"),
		Month:        q.Get("month"),
		Year:         q.Get("year"),
		MinAmount:    q.Get("minAmount"),
		MaxAmount:    q.Get("maxAmount"),
	}
}

func signDefaults() signature.Defaults {
	cfg := config.GetConfig()
	return signature.Defaults{
		Owner:         model.Signatory{Name: cfg.Owner.Name, Title: cfg.Owner.Title},
		Administrator: model.Signatory{Name: cfg.Administrator.Name, Title: cfg.Administrator.Title},
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// doctorFeeRows recomputes the doctor-fee report for the current snapshot
// and filter state. Shared by the JSON handler and the exporters.
func doctorFeeRows(snap *snapshot.Store, f model.ReportFilters, groupByDoctor bool) ([]model.DoctorFeeAggregate, model.SignBlock) {
	filtered := filters.DoctorFees(snap.Current().DoctorFees, f)
	rows := aggregation.GroupDoctorFees(filtered, groupByDoctor)

	parties := make([]signature.Party, 0, len(rows))
	for _, r := range rows {
		parties = append(parties, signature.Party{Name: r.DoctorName, Role: model.RoleDoctor})
	}
	sign := signature.Resolve(signature.ReportDoctorFees, f, parties, signDefaults())
	return rows, sign
}

func DoctorFeeReportHandler(snap *snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := filtersFromQuery(q)
		rows, sign := doctorFeeRows(snap, f, q.Get("groupByDoctor") == "true")
		writeJSON(w, doctorFeePayload{Rows: rows, Signatures: sign, Empty: len(rows) == 0})
	}
}

func fieldTripRows(snap *snapshot.Store, f model.ReportFilters) ([]model.PersonFieldTripAggregate, model.SignBlock) {
	sales := filters.FieldTripSales(snap.Current().FieldTripSales, f)
	rows := filters.PersonRows(aggregation.AccumulateFieldTrips(sales), f)

	parties := make([]signature.Party, 0, len(rows))
	for _, r := range rows {
		parties = append(parties, signature.Party{Name: r.Name, Role: r.Role, Label: r.Label})
	}
	sign := signature.Resolve(signature.ReportFieldTrips, f, parties, signDefaults())
	return rows, sign
}

func FieldTripReportHandler(snap *snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := filtersFromQuery(r.URL.Query())
		rows, sign := fieldTripRows(snap, f)
		writeJSON(w, fieldTripPayload{Rows: rows, Signatures: sign, Empty: len(rows) == 0})
	}
}

func financialRows(snap *snapshot.Store, f model.ReportFilters, view string) []model.FinancialPeriodSummary {
	data := snap.Current()
	// Only the period criteria are relevant to the rollup; person and text
	// criteria from a shared filter form must not thin out the totals.
	pf := model.ReportFilters{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Month:     f.Month,
		Year:      f.Year,
	}
	monthly := aggregation.RollupFinancials(
		filters.Treatments(data.Treatments, pf),
		filters.Sales(data.Sales, pf),
		filters.FieldTripSales(data.FieldTripSales, pf),
		filters.Salaries(data.Salaries, pf),
		filters.DoctorFees(data.DoctorFees, pf),
		filters.Expenses(data.Expenses, pf),
	)
	monthly = filterPeriods(monthly, f)
	if view == "yearly" {
		return aggregation.RollupYearly(monthly)
	}
	return monthly
}

// filterPeriods applies the year/month criteria to the bucketed rows.
// Records already narrowed by date range land here again so a year
// dropdown and a date range compose predictably.
func filterPeriods(rows []model.FinancialPeriodSummary, f model.ReportFilters) []model.FinancialPeriodSummary {
	out := make([]model.FinancialPeriodSummary, 0, len(rows))
	for _, r := range rows {
		if !yearMatches(r.Year, f.Year) {
			continue
		}
		if f.Month != "" && f.Month != model.FilterAll && r.Month != f.Month {
			continue
		}
		out = append(out, r)
	}
	return out
}

func yearMatches(year int, criterion string) bool {
	if criterion == "" || criterion == model.FilterAll {
		return true
	}
	y, err := strconv.Atoi(strings.TrimSpace(criterion))
	if err != nil {
		return true
	}
	return year == y
}

// The financial report carries no person filters, so its sign block always
// resolves to the fixed owner/administrator pair.
func signBlockForFinancial() model.SignBlock {
	return signature.Resolve(signature.ReportFinancial, model.ReportFilters{}, nil, signDefaults())
}

func FinancialReportHandler(snap *snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := filtersFromQuery(q)
		view := q.Get("view")
		if view == "" {
			view = "monthly"
		}
		rows := financialRows(snap, f, view)
		sign := signBlockForFinancial()
		writeJSON(w, financialPayload{Rows: rows, View: view, Signatures: sign, Empty: len(rows) == 0})
	}
}
