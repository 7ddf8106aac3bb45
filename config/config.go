package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
)

type SignatoryConfig struct {
	Name  string `json:"name" validate:"required"`
	Title string `json:"title" validate:"required"`
}

type Config struct {
	ListenAddr   string `json:"listenAddr"`
	DatabasePath string `json:"databasePath"`

	// Data-access collaborator.
	APIBaseURL    string `json:"apiBaseURL" validate:"required"`
	APICredential string `json:"apiCredential"`

	// Supplier/bank portal for the manual expense CSV download.
	PortalURL      string `json:"portalURL"`
	PortalUserID   string `json:"portalUserID"`
	PortalPassword string `json:"portalPassword"`

	// Fixed sign-off parties printed on exported reports.
	Owner         SignatoryConfig `json:"owner"`
	Administrator SignatoryConfig `json:"administrator"`

	// Refresh scheduler policy.
	MaxRetries          int `json:"maxRetries" validate:"min=1"`
	RetryDelayMinutes   int `json:"retryDelayMinutes" validate:"min=1"`
	PollIntervalMinutes int `json:"pollIntervalMinutes" validate:"min=1"`
}

var (
	cfg      Config
	mu       sync.RWMutex
	validate = validator.New()
)

const configFilePath = "./klinik_config.json"

func defaults() Config {
	return Config{
		ListenAddr:          ":8080",
		DatabasePath:        "./klinik.db",
		APIBaseURL:          "http://localhost:9090/api",
		Owner:               SignatoryConfig{Name: "drg. Falasifah", Title: "Pemilik Klinik"},
		Administrator:       SignatoryConfig{Name: "Muhammad Rakhsan Hipasha", Title: "Administrasi"},
		MaxRetries:          3,
		RetryDelayMinutes:   5,
		PollIntervalMinutes: 60,
	}
}

// applyDefaults fills zero-valued fields so a hand-trimmed config file still
// loads, and applies env overrides for the secrets that should not live in
// the JSON file.
func applyDefaults(c Config) Config {
	d := defaults()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = d.APIBaseURL
	}
	if c.Owner.Name == "" {
		c.Owner = d.Owner
	}
	if c.Administrator.Name == "" {
		c.Administrator = d.Administrator
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryDelayMinutes == 0 {
		c.RetryDelayMinutes = d.RetryDelayMinutes
	}
	if c.PollIntervalMinutes == 0 {
		c.PollIntervalMinutes = d.PollIntervalMinutes
	}
	if v := os.Getenv("KLINIK_API_CREDENTIAL"); v != "" {
		c.APICredential = v
	}
	if v := os.Getenv("KLINIK_PORTAL_USER"); v != "" {
		c.PortalUserID = v
	}
	if v := os.Getenv("KLINIK_PORTAL_PASSWORD"); v != "" {
		c.PortalPassword = v
	}
	return c
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = applyDefaults(Config{})
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	tempCfg = applyDefaults(tempCfg)
	if err := validate.Struct(tempCfg); err != nil {
		return Config{}, fmt.Errorf("invalid config file: %w", err)
	}
	cfg = tempCfg
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = applyDefaults(newCfg)
	if err := validate.Struct(newCfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
