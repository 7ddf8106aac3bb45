package database

// Local SQLite mirror of the six fetched record sets plus the scheduler's
// key-value state. The mirror is replaced wholesale on every successful
// refresh cycle and read back once at startup to warm the snapshot.
const Schema = `
CREATE TABLE IF NOT EXISTS treatments (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL DEFAULT '',
    patient_name TEXT NOT NULL DEFAULT '',
    doctor_name TEXT NOT NULL DEFAULT '',
    nominal REAL NOT NULL DEFAULT 0,
    calculated_fee REAL NOT NULL DEFAULT 0,
    payment_status TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sales (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL DEFAULT '',
    product_name TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    quantity REAL NOT NULL DEFAULT 0,
    unit_price REAL NOT NULL DEFAULT 0,
    subtotal REAL NOT NULL DEFAULT 0,
    discount_amount REAL NOT NULL DEFAULT 0,
    total_amount REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS field_trip_sales (
    id TEXT PRIMARY KEY,
    sale_date TEXT NOT NULL DEFAULT '',
    event_date TEXT NOT NULL DEFAULT '',
    organization TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    total_amount REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS field_trip_participants (
    sale_id TEXT NOT NULL,
    role TEXT NOT NULL,
    person_id TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    label TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL DEFAULT 0,
    position INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_ft_participants_sale ON field_trip_participants (sale_id);

CREATE TABLE IF NOT EXISTS salaries (
    id TEXT PRIMARY KEY,
    employee_name TEXT NOT NULL DEFAULT '',
    month TEXT NOT NULL DEFAULT '',
    year INTEGER NOT NULL DEFAULT 0,
    base_salary REAL NOT NULL DEFAULT 0,
    bonus REAL NOT NULL DEFAULT 0,
    holiday_allowance REAL NOT NULL DEFAULT 0,
    total_salary REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS doctor_fees (
    id TEXT PRIMARY KEY,
    doctor_id TEXT NOT NULL DEFAULT '',
    doctor_name TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    shift TEXT NOT NULL DEFAULT '',
    treatment_fee REAL NOT NULL DEFAULT 0,
    sitting_fee REAL NOT NULL DEFAULT 0,
    final_fee REAL NOT NULL DEFAULT 0,
    has_treatments INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT ''
);
`
