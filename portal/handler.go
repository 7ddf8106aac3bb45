package portal

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"klinik/config"
	"klinik/database"
	"klinik/snapshot"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadExpensesHandler drives the whole manual import: portal download,
// CSV parse, mirror upsert, snapshot reload. Expenses imported this way
// survive until the next full refresh replaces the mirror.
func DownloadExpensesHandler(db *sqlx.DB, snap *snapshot.Store) http.HandlerFunc {
	logger := config.GetLogger()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg := config.GetConfig()
		if cfg.PortalURL == "" || cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			writeJSONError(w, "Kredensial portal belum diisi di pengaturan.", http.StatusBadRequest)
			return
		}

		saveDir := os.TempDir()
		logger.WithFields(logrus.Fields{"component": "portal"}).Info("starting portal expense download")

		path, err := DownloadExpenseCSV(cfg.PortalURL, cfg.PortalUserID, cfg.PortalPassword, saveDir)
		if err != nil {
			logger.WithFields(logrus.Fields{"component": "portal"}).Errorf("portal download failed: %v", err)
			writeJSONError(w, "Unduhan portal gagal: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if path == NoData {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "no_data", "message": "Tidak ada mutasi baru."})
			return
		}

		file, err := os.Open(path)
		if err != nil {
			writeJSONError(w, "Gagal membuka file unduhan: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer file.Close()

		records, err := ParseExpenseCSV(file, filepath.Base(path))
		if err != nil {
			writeJSONError(w, "Gagal membaca CSV mutasi: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := database.UpsertExpenses(db, records); err != nil {
			writeJSONError(w, "Gagal menyimpan pengeluaran: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// Reload from the mirror so the snapshot and the database agree.
		data, err := database.LoadSnapshot(db)
		if err != nil {
			writeJSONError(w, "Gagal memuat ulang data: "+err.Error(), http.StatusInternalServerError)
			return
		}
		snap.Replace(data)

		logger.WithFields(logrus.Fields{"component": "portal", "imported": len(records)}).Info("portal expenses imported")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "imported": len(records)})
	}
}
