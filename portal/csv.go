package portal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"klinik/model"
	"klinik/normalize"
)

// Bank mutation CSV layout: tanggal, kategori, keterangan, jumlah, catatan.
// The first line is a header. Amounts may carry thousand separators
// ("1.500.000") and an optional "Rp " prefix.

func parseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseExpenseCSV reads a downloaded mutation CSV into canonical expense
// records. Rows with an unusable amount are skipped with an error only for
// structural problems, matching how other imports tolerate legacy rows.
func ParseExpenseCSV(r io.Reader, sourceName string) ([]model.ExpenseRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var records []model.ExpenseRecord
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s line %d: %w", sourceName, line+1, err)
		}
		line++
		if line == 1 {
			continue // header
		}
		if len(row) < 4 {
			continue
		}

		amount, err := parseAmount(row[3])
		if err != nil {
			continue
		}
		rec := model.ExpenseRecord{
			ID:          fmt.Sprintf("%s-%d", strings.TrimSuffix(sourceName, ".csv"), line),
			Date:        normalize.Date(row[0]),
			Category:    strings.TrimSpace(row[1]),
			Description: strings.TrimSpace(row[2]),
			Amount:      amount,
		}
		if len(row) > 4 {
			rec.Notes = strings.TrimSpace(row[4])
		}
		records = append(records, rec)
	}
	return normalize.Expenses(records), nil
}
