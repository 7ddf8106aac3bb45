package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"klinik/model"
	"klinik/snapshot"
)

// InitDatabase applies the schema. Safe to run on every start.
func InitDatabase(db *sqlx.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// ReplaceSnapshot swaps the whole local mirror for the given snapshot in a
// single transaction, so a crash mid-write never leaves a half-refreshed
// mirror behind.
func ReplaceSnapshot(db *sqlx.DB, data *snapshot.Data) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start mirror transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{
		"treatments", "sales", "field_trip_sales", "field_trip_participants",
		"salaries", "doctor_fees", "expenses",
	} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, r := range data.Treatments {
		if _, err = tx.NamedExec(`INSERT INTO treatments
			(id, date, patient_name, doctor_name, nominal, calculated_fee, payment_status)
			VALUES (:id, :date, :patient_name, :doctor_name, :nominal, :calculated_fee, :payment_status)`, r); err != nil {
			return fmt.Errorf("failed to insert treatment %s: %w", r.ID, err)
		}
	}
	for _, r := range data.Sales {
		if _, err = tx.NamedExec(`INSERT INTO sales
			(id, date, product_name, category, quantity, unit_price, subtotal, discount_amount, total_amount)
			VALUES (:id, :date, :product_name, :category, :quantity, :unit_price, :subtotal, :discount_amount, :total_amount)`, r); err != nil {
			return fmt.Errorf("failed to insert sale %s: %w", r.ID, err)
		}
	}
	for _, r := range data.FieldTripSales {
		if _, err = tx.NamedExec(`INSERT INTO field_trip_sales
			(id, sale_date, event_date, organization, location, total_amount)
			VALUES (:id, :sale_date, :event_date, :organization, :location, :total_amount)`, r); err != nil {
			return fmt.Errorf("failed to insert field trip sale %s: %w", r.ID, err)
		}
		if err = insertParticipants(tx, r.ID, model.RoleDoctor, r.ParticipantDoctors); err != nil {
			return err
		}
		if err = insertParticipants(tx, r.ID, model.RoleEmployee, r.ParticipantEmployees); err != nil {
			return err
		}
	}
	for _, r := range data.Salaries {
		if _, err = tx.NamedExec(`INSERT INTO salaries
			(id, employee_name, month, year, base_salary, bonus, holiday_allowance, total_salary)
			VALUES (:id, :employee_name, :month, :year, :base_salary, :bonus, :holiday_allowance, :total_salary)`, r); err != nil {
			return fmt.Errorf("failed to insert salary %s: %w", r.ID, err)
		}
	}
	for _, r := range data.DoctorFees {
		if _, err = tx.NamedExec(`INSERT INTO doctor_fees
			(id, doctor_id, doctor_name, date, shift, treatment_fee, sitting_fee, final_fee, has_treatments)
			VALUES (:id, :doctor_id, :doctor_name, :date, :shift, :treatment_fee, :sitting_fee, :final_fee, :has_treatments)`, r); err != nil {
			return fmt.Errorf("failed to insert doctor fee %s: %w", r.ID, err)
		}
	}
	if err = insertExpensesTx(tx, data.Expenses); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit mirror transaction: %w", err)
	}
	return nil
}

func insertParticipants(tx *sqlx.Tx, saleID, role string, ps []model.FieldTripParticipant) error {
	for i, p := range ps {
		if _, err := tx.Exec(`INSERT INTO field_trip_participants
			(sale_id, role, person_id, name, label, amount, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			saleID, role, p.ID, p.Name, p.Label, p.Amount, i); err != nil {
			return fmt.Errorf("failed to insert participant %s of sale %s: %w", p.ID, saleID, err)
		}
	}
	return nil
}

func insertExpensesTx(tx *sqlx.Tx, records []model.ExpenseRecord) error {
	for _, r := range records {
		if _, err := tx.NamedExec(`INSERT OR REPLACE INTO expenses
			(id, date, category, description, amount, notes)
			VALUES (:id, :date, :category, :description, :amount, :notes)`, r); err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", r.ID, err)
		}
	}
	return nil
}

// UpsertExpenses adds or updates expense rows outside a full refresh. Used
// by the portal CSV import, which only ever carries expenses.
func UpsertExpenses(db *sqlx.DB, records []model.ExpenseRecord) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start expense transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if err = insertExpensesTx(tx, records); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense transaction: %w", err)
	}
	return nil
}

// LoadSnapshot reads the whole mirror back, used to warm the in-memory
// snapshot at startup so reports work before the first refresh of a
// session.
func LoadSnapshot(db *sqlx.DB) (*snapshot.Data, error) {
	data := &snapshot.Data{}

	if err := db.Select(&data.Treatments, "SELECT * FROM treatments ORDER BY date, id"); err != nil {
		return nil, fmt.Errorf("failed to load treatments: %w", err)
	}
	if err := db.Select(&data.Sales, "SELECT * FROM sales ORDER BY date, id"); err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	if err := db.Select(&data.Salaries, "SELECT * FROM salaries ORDER BY year, month, id"); err != nil {
		return nil, fmt.Errorf("failed to load salaries: %w", err)
	}
	if err := db.Select(&data.DoctorFees, "SELECT * FROM doctor_fees ORDER BY date, id"); err != nil {
		return nil, fmt.Errorf("failed to load doctor fees: %w", err)
	}
	if err := db.Select(&data.Expenses, "SELECT * FROM expenses ORDER BY date, id"); err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	sales, err := loadFieldTripSales(db)
	if err != nil {
		return nil, err
	}
	data.FieldTripSales = sales
	return data, nil
}

func loadFieldTripSales(db *sqlx.DB) ([]model.FieldTripSaleRecord, error) {
	var sales []model.FieldTripSaleRecord
	if err := db.Select(&sales, "SELECT * FROM field_trip_sales ORDER BY sale_date, id"); err != nil {
		return nil, fmt.Errorf("failed to load field trip sales: %w", err)
	}

	type participantRow struct {
		SaleID string `db:"sale_id"`
		Role   string `db:"role"`
		model.FieldTripParticipant
	}
	var rows []participantRow
	if err := db.Select(&rows, "SELECT sale_id, role, person_id, name, label, amount FROM field_trip_participants ORDER BY sale_id, position"); err != nil {
		return nil, fmt.Errorf("failed to load field trip participants: %w", err)
	}

	bySale := make(map[string][]participantRow)
	for _, row := range rows {
		bySale[row.SaleID] = append(bySale[row.SaleID], row)
	}
	for i := range sales {
		for _, row := range bySale[sales[i].ID] {
			if row.Role == model.RoleDoctor {
				sales[i].ParticipantDoctors = append(sales[i].ParticipantDoctors, row.FieldTripParticipant)
			} else {
				sales[i].ParticipantEmployees = append(sales[i].ParticipantEmployees, row.FieldTripParticipant)
			}
		}
	}
	return sales, nil
}
