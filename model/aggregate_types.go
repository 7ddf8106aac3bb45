package model

// Derived rows. Recomputed on every report request, never persisted.

type DoctorFeeAggregate struct {
	DoctorName    string  `json:"doctorName"`
	PeriodLabel   string  `json:"periodLabel"` // single date or "5 Jan – 7 Jan 2024" range
	TreatmentFee  float64 `json:"treatmentFee"`
	SittingFee    float64 `json:"sittingFee"`
	TotalFee      float64 `json:"totalFee"`
	RecordCount   int     `json:"recordCount"`
	HasTreatments bool    `json:"hasTreatments"`
}

// Role discriminator for PersonFieldTripAggregate and the personType filter.
const (
	RoleDoctor   = "doctor"
	RoleEmployee = "employee"
)

type PersonFieldTripAggregate struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"` // RoleDoctor or RoleEmployee
	Label          string   `json:"label"`
	TotalAmount    float64  `json:"totalAmount"`
	FieldTripCount int      `json:"fieldTripCount"`
	AverageAmount  float64  `json:"averageAmount"` // 0 when FieldTripCount is 0
	EventDates     []string `json:"eventDates,omitempty"`
}

// FinancialPeriodSummary is one (year, month) bucket, or one year when
// Month is "" (yearly rollup).
type FinancialPeriodSummary struct {
	Year             int     `json:"year"`
	Month            string  `json:"month,omitempty"` // "01".."12", "" for yearly rows
	TreatmentIncome  float64 `json:"treatmentIncome"`
	SalesIncome      float64 `json:"salesIncome"`
	FieldTripIncome  float64 `json:"fieldTripIncome"`
	TotalIncome      float64 `json:"totalIncome"`
	SalaryExpense    float64 `json:"salaryExpense"`
	DoctorFeeExpense float64 `json:"doctorFeeExpense"`
	FieldTripExpense float64 `json:"fieldTripExpense"`
	OtherExpenses    float64 `json:"otherExpenses"`
	TotalExpense     float64 `json:"totalExpense"`
	Profit           float64 `json:"profit"`
	MarginPercent    float64 `json:"marginPercent"` // 0 when TotalIncome is 0
}

type Signatory struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// SignBlock is the sign-off footer of a printed report: left and right
// signatories in print order.
type SignBlock struct {
	Left  Signatory `json:"left"`
	Right Signatory `json:"right"`
}
