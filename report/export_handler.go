package report

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"klinik/export"
	"klinik/snapshot"
)

func serveCSV(w http.ResponseWriter, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	w.Write(buf.Bytes())
}

func exportStamp() string {
	return time.Now().Format("2006-01-02")
}

// ExportDoctorFeeHandler serves the doctor-fee report as a spreadsheet,
// CSV by default or XLSX with format=xlsx. Rows and signatories are
// recomputed from the current snapshot and filter state, exactly as the
// on-screen report shows them.
func ExportDoctorFeeHandler(snap *snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := filtersFromQuery(q)
		rows, sign := doctorFeeRows(snap, f, q.Get("groupByDoctor") == "true")

		if q.Get("format") == "xlsx" {
			file, err := export.BuildDoctorFeeXLSX(rows, sign)
			if err != nil {
				http.Error(w, "Failed to build XLSX export: "+err.Error(), http.StatusInternalServerError)
				return
			}
			defer file.Close()
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(fmt.Sprintf("Laporan Fee Dokter %s.xlsx", exportStamp())))
			file.Write(w)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteDoctorFeeCSV(&buf, rows, sign); err != nil {
			http.Error(w, "Failed to build CSV export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		serveCSV(w, fmt.Sprintf("Laporan Fee Dokter %s.csv", exportStamp()), &buf)
	}
}

func ExportFieldTripHandler(snap *snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := filtersFromQuery(q)
		rows, sign := fieldTripRows(snap, f)

		if q.Get("format") == "xlsx" {
			file, err := export.BuildFieldTripXLSX(rows, sign)
			if err != nil {
				http.Error(w, "Failed to build XLSX export: "+err.Error(), http.StatusInternalServerError)
				return
			}
			defer file.Close()
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(fmt.Sprintf("Laporan Field Trip %s.xlsx", exportStamp())))
			file.Write(w)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteFieldTripCSV(&buf, rows, sign); err != nil {
			http.Error(w, "Failed to build CSV export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		serveCSV(w, fmt.Sprintf("Laporan Field Trip %s.csv", exportStamp()), &buf)
	}
}

func ExportFinancialHandler(snap *snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := filtersFromQuery(q)
		view := q.Get("view")
		if view == "" {
			view = "monthly"
		}
		rows := financialRows(snap, f, view)
		sign := signBlockForFinancial()

		if q.Get("format") == "xlsx" {
			file, err := export.BuildFinancialXLSX(rows, sign)
			if err != nil {
				http.Error(w, "Failed to build XLSX export: "+err.Error(), http.StatusInternalServerError)
				return
			}
			defer file.Close()
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(fmt.Sprintf("Laporan Keuangan %s.xlsx", exportStamp())))
			file.Write(w)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteFinancialCSV(&buf, rows, sign); err != nil {
			http.Error(w, "Failed to build CSV export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		serveCSV(w, fmt.Sprintf("Laporan Keuangan %s.csv", exportStamp()), &buf)
	}
}
