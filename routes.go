package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"klinik/portal"
	"klinik/refresh"
	"klinik/report"
	"klinik/snapshot"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, snap *snapshot.Store, scheduler *refresh.Scheduler) {

	mux.HandleFunc("/api/reports/doctor-fees", report.DoctorFeeReportHandler(snap))
	mux.HandleFunc("/api/reports/doctor-fees/export", report.ExportDoctorFeeHandler(snap))

	mux.HandleFunc("/api/reports/field-trips", report.FieldTripReportHandler(snap))
	mux.HandleFunc("/api/reports/field-trips/export", report.ExportFieldTripHandler(snap))

	mux.HandleFunc("/api/reports/financial", report.FinancialReportHandler(snap))
	mux.HandleFunc("/api/reports/financial/export", report.ExportFinancialHandler(snap))

	mux.HandleFunc("/api/refresh/status", refresh.StatusHandler(scheduler))
	mux.HandleFunc("/api/refresh/trigger", refresh.TriggerHandler(scheduler))

	mux.HandleFunc("/api/portal/expenses/download", portal.DownloadExpensesHandler(dbConn, snap))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
