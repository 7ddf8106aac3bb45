package main

import (
	"encoding/json"
	"log"
	"net/http"

	"klinik/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler returns the current configuration. The portal password
// and API credential are blanked; the UI shows placeholders instead.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		cfg.APICredential = ""
		cfg.PortalPassword = ""
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler persists updated settings. Secrets left blank in the
// submitted form keep their stored values.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "Permintaan tidak valid.", http.StatusBadRequest)
			return
		}

		current := config.GetConfig()
		if newCfg.APICredential == "" {
			newCfg.APICredential = current.APICredential
		}
		if newCfg.PortalPassword == "" {
			newCfg.PortalPassword = current.PortalPassword
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "Gagal menyimpan pengaturan: "+err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Pengaturan tersimpan."})
	}
}
