package model

// All dates on normalized records are ISO "2006-01-02" strings.
// Lexicographic order on that form matches date order, so range filters
// compare strings directly.

// PaymentStatus values as they arrive from the clinic data API.
const (
	PaymentLunas = "Lunas"
	PaymentDP    = "DP"
)

type TreatmentRecord struct {
	ID            string  `db:"id" json:"id"`
	Date          string  `db:"date" json:"date"`
	PatientName   string  `db:"patient_name" json:"patientName"`
	DoctorName    string  `db:"doctor_name" json:"doctorName"`
	Nominal       float64 `db:"nominal" json:"nominal"`
	CalculatedFee float64 `db:"calculated_fee" json:"calculatedFee"`
	PaymentStatus string  `db:"payment_status" json:"paymentStatus"`
}

type SaleRecord struct {
	ID             string  `db:"id" json:"id"`
	Date           string  `db:"date" json:"date"`
	ProductName    string  `db:"product_name" json:"productName"`
	Category       string  `db:"category" json:"category"`
	Quantity       float64 `db:"quantity" json:"quantity"`
	UnitPrice      float64 `db:"unit_price" json:"unitPrice"`
	Subtotal       float64 `db:"subtotal" json:"subtotal"`
	DiscountAmount float64 `db:"discount_amount" json:"discountAmount"`
	TotalAmount    float64 `db:"total_amount" json:"totalAmount"`
}

// FieldTripParticipant is one doctor's or employee's share of a single
// field-trip event. Amount holds the fee for doctors and the bonus for
// employees.
type FieldTripParticipant struct {
	ID     string  `db:"person_id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Label  string  `db:"label" json:"label"` // doctors: specialty, employees: job title
	Amount float64 `db:"amount" json:"amount"`
}

type FieldTripSaleRecord struct {
	ID                   string                 `db:"id" json:"id"`
	SaleDate             string                 `db:"sale_date" json:"saleDate"`
	EventDate            string                 `db:"event_date" json:"eventDate"` // optional; "" when not scheduled yet
	Organization         string                 `db:"organization" json:"organization"`
	Location             string                 `db:"location" json:"location"`
	TotalAmount          float64                `db:"total_amount" json:"totalAmount"`
	ParticipantDoctors   []FieldTripParticipant `db:"-" json:"participantDoctors"`
	ParticipantEmployees []FieldTripParticipant `db:"-" json:"participantEmployees"`
}

type SalaryRecord struct {
	ID               string  `db:"id" json:"id"`
	EmployeeName     string  `db:"employee_name" json:"employeeName"`
	Month            string  `db:"month" json:"month"` // "01".."12"
	Year             int     `db:"year" json:"year"`
	BaseSalary       float64 `db:"base_salary" json:"baseSalary"`
	Bonus            float64 `db:"bonus" json:"bonus"`
	HolidayAllowance float64 `db:"holiday_allowance" json:"holidayAllowance"`
	TotalSalary      float64 `db:"total_salary" json:"totalSalary"`
}

type DoctorFeeRecord struct {
	ID            string  `db:"id" json:"id"`
	DoctorID      string  `db:"doctor_id" json:"doctorId"`
	DoctorName    string  `db:"doctor_name" json:"doctorName"`
	Date          string  `db:"date" json:"date"`
	Shift         string  `db:"shift" json:"shift"`
	TreatmentFee  float64 `db:"treatment_fee" json:"treatmentFee"`
	SittingFee    float64 `db:"sitting_fee" json:"sittingFee"`
	FinalFee      float64 `db:"final_fee" json:"finalFee"` // always TreatmentFee + SittingFee
	HasTreatments bool    `db:"has_treatments" json:"hasTreatments"`
}

type ExpenseRecord struct {
	ID          string  `db:"id" json:"id"`
	Date        string  `db:"date" json:"date"`
	Category    string  `db:"category" json:"category"`
	Description string  `db:"description" json:"description"`
	Amount      float64 `db:"amount" json:"amount"`
	Notes       string  `db:"notes" json:"notes"`
}
