package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"klinik/model"
)

// XLSX exports mirror the CSV layout but keep amounts numeric so the
// recipient can keep working in the sheet.

func newSheet(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet %q: %w", name, err)
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, rowIndex int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func BuildDoctorFeeXLSX(rows []model.DoctorFeeAggregate, sign model.SignBlock) (*excelize.File, error) {
	const sheet = "Fee Dokter"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := setRow(f, sheet, 1, []any{"Dokter", "Periode", "Fee Tindakan", "Uang Duduk", "Total Fee", "Jumlah Entri"}); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range rows {
		cells := []any{r.DoctorName, r.PeriodLabel, r.TreatmentFee, r.SittingFee, r.TotalFee, r.RecordCount}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := appendSignBlock(f, sheet, len(rows)+3, sign); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func BuildFieldTripXLSX(rows []model.PersonFieldTripAggregate, sign model.SignBlock) (*excelize.File, error) {
	const sheet = "Fee & Bonus Field Trip"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := setRow(f, sheet, 1, []any{"Nama", "Peran", "Keterangan", "Total", "Jumlah Kunjungan", "Rata-rata"}); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range rows {
		cells := []any{r.Name, r.Role, r.Label, r.TotalAmount, r.FieldTripCount, r.AverageAmount}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := appendSignBlock(f, sheet, len(rows)+3, sign); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func BuildFinancialXLSX(rows []model.FinancialPeriodSummary, sign model.SignBlock) (*excelize.File, error) {
	const sheet = "Laporan Keuangan"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, err
	}
	header := []any{
		"Periode", "Pendapatan Tindakan", "Pendapatan Penjualan", "Pendapatan Field Trip",
		"Total Pendapatan", "Gaji", "Fee Dokter", "Biaya Field Trip", "Pengeluaran Lain",
		"Total Pengeluaran", "Laba", "Margin (%)",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range rows {
		cells := []any{
			PeriodName(r), r.TreatmentIncome, r.SalesIncome, r.FieldTripIncome,
			r.TotalIncome, r.SalaryExpense, r.DoctorFeeExpense, r.FieldTripExpense,
			r.OtherExpenses, r.TotalExpense, r.Profit, r.MarginPercent,
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := appendSignBlock(f, sheet, len(rows)+3, sign); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func appendSignBlock(f *excelize.File, sheet string, rowIndex int, sign model.SignBlock) error {
	if sign.Left.Name == "" && sign.Right.Name == "" {
		return nil
	}
	if err := setRow(f, sheet, rowIndex, []any{sign.Left.Title, "", sign.Right.Title}); err != nil {
		return err
	}
	return setRow(f, sheet, rowIndex+1, []any{sign.Left.Name, "", sign.Right.Name})
}
