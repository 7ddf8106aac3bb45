package refresh

import (
	"encoding/json"
	"errors"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// StatusHandler reports the scheduler state for the dashboard header
// (health badge, last refresh time, manual-retry affordance).
func StatusHandler(s *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.State())
	}
}

// TriggerHandler is the manual "refresh now" button. It runs the cycle
// synchronously; the UI disables the button until the response arrives.
func TriggerHandler(s *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method Not Allowed"})
			return
		}
		err := s.RefreshNow(r.Context())
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, map[string]any{"message": "Data berhasil diperbarui.", "state": s.State()})
		case errors.Is(err, ErrInProgress):
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Pembaruan data sedang berjalan."})
		default:
			writeJSON(w, http.StatusBadGateway, map[string]any{"message": "Pembaruan data gagal: " + err.Error(), "state": s.State()})
		}
	}
}
