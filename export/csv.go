package export

import (
	"fmt"
	"io"
	"strings"

	"klinik/model"
)

// CSV exports follow the dashboard's spreadsheet conventions: UTF-8 BOM so
// Excel opens them correctly, every cell quoted, CRLF line endings.

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = quoteAll(c)
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\r\n")
	return err
}

func writeBOM(w io.Writer) error {
	_, err := w.Write([]byte{0xEF, 0xBB, 0xBF})
	return err
}

func WriteDoctorFeeCSV(w io.Writer, rows []model.DoctorFeeAggregate, sign model.SignBlock) error {
	if err := writeBOM(w); err != nil {
		return err
	}
	if err := writeRow(w, []string{"Dokter", "Periode", "Fee Tindakan", "Uang Duduk", "Total Fee", "Jumlah Entri"}); err != nil {
		return err
	}
	for _, r := range rows {
		cells := []string{
			r.DoctorName,
			r.PeriodLabel,
			FormatRupiah(r.TreatmentFee),
			FormatRupiah(r.SittingFee),
			FormatRupiah(r.TotalFee),
			fmt.Sprintf("%d", r.RecordCount),
		}
		if err := writeRow(w, cells); err != nil {
			return err
		}
	}
	return writeSignRows(w, sign)
}

func WriteFieldTripCSV(w io.Writer, rows []model.PersonFieldTripAggregate, sign model.SignBlock) error {
	if err := writeBOM(w); err != nil {
		return err
	}
	if err := writeRow(w, []string{"Nama", "Peran", "Keterangan", "Total", "Jumlah Kunjungan", "Rata-rata"}); err != nil {
		return err
	}
	for _, r := range rows {
		cells := []string{
			r.Name,
			r.Role,
			r.Label,
			FormatRupiah(r.TotalAmount),
			fmt.Sprintf("%d", r.FieldTripCount),
			FormatRupiah(r.AverageAmount),
		}
		if err := writeRow(w, cells); err != nil {
			return err
		}
	}
	return writeSignRows(w, sign)
}

func WriteFinancialCSV(w io.Writer, rows []model.FinancialPeriodSummary, sign model.SignBlock) error {
	if err := writeBOM(w); err != nil {
		return err
	}
	header := []string{
		"Periode", "Pendapatan Tindakan", "Pendapatan Penjualan", "Pendapatan Field Trip",
		"Total Pendapatan", "Gaji", "Fee Dokter", "Biaya Field Trip", "Pengeluaran Lain",
		"Total Pengeluaran", "Laba", "Margin",
	}
	if err := writeRow(w, header); err != nil {
		return err
	}
	for _, r := range rows {
		cells := []string{
			PeriodName(r),
			FormatRupiah(r.TreatmentIncome),
			FormatRupiah(r.SalesIncome),
			FormatRupiah(r.FieldTripIncome),
			FormatRupiah(r.TotalIncome),
			FormatRupiah(r.SalaryExpense),
			FormatRupiah(r.DoctorFeeExpense),
			FormatRupiah(r.FieldTripExpense),
			FormatRupiah(r.OtherExpenses),
			FormatRupiah(r.TotalExpense),
			FormatRupiah(r.Profit),
			FormatPercent(r.MarginPercent),
		}
		if err := writeRow(w, cells); err != nil {
			return err
		}
	}
	return writeSignRows(w, sign)
}

func writeSignRows(w io.Writer, sign model.SignBlock) error {
	if sign.Left.Name == "" && sign.Right.Name == "" {
		return nil
	}
	if err := writeRow(w, nil); err != nil {
		return err
	}
	if err := writeRow(w, []string{sign.Left.Title, "", sign.Right.Title}); err != nil {
		return err
	}
	return writeRow(w, []string{sign.Left.Name, "", sign.Right.Name})
}

// PeriodName labels a summary row: "Jan 2024" monthly, "2024" yearly.
func PeriodName(s model.FinancialPeriodSummary) string {
	if s.Month == "" {
		return fmt.Sprintf("%d", s.Year)
	}
	names := map[string]string{
		"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr", "05": "Mei", "06": "Jun",
		"07": "Jul", "08": "Agu", "09": "Sep", "10": "Okt", "11": "Nov", "12": "Des",
	}
	if n, ok := names[s.Month]; ok {
		return fmt.Sprintf("%s %d", n, s.Year)
	}
	return fmt.Sprintf("%s %d", s.Month, s.Year)
}
