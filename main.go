package main

import (
	"context"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"klinik/config"
	"klinik/database"
	"klinik/fetchsource"
	"klinik/refresh"
	"klinik/snapshot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()

	if err := database.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	snap := snapshot.NewStore()
	if data, err := database.LoadSnapshot(dbConn); err != nil {
		log.Printf("WARN: Failed to warm snapshot from mirror: %v. Reports will be empty until the first refresh.", err)
	} else {
		snap.Replace(data)
	}

	pipeline := &refresh.Pipeline{
		Source: fetchsource.NewClient(cfg.APIBaseURL, cfg.APICredential),
		DB:     dbConn,
		Snap:   snap,
		Logger: config.GetLogger(),
	}
	scheduler := refresh.NewScheduler(
		refresh.SystemClock(),
		database.NewStateStore(dbConn),
		pipeline,
		refresh.Policy{
			MaxRetries:   cfg.MaxRetries,
			RetryDelay:   time.Duration(cfg.RetryDelayMinutes) * time.Minute,
			PollInterval: time.Duration(cfg.PollIntervalMinutes) * time.Minute,
		},
		config.GetLogger(),
	)
	scheduler.Start(context.Background())
	log.Println("Refresh scheduler started.")

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))
	SetupRoutes(mux, dbConn, snap, scheduler)

	log.Printf("Starting server on http://localhost%s", cfg.ListenAddr)
	openBrowser("http://localhost" + cfg.ListenAddr)

	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
