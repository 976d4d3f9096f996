package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/makeover/internal/app"
	"github.com/ayusman/makeover/internal/assets"
	"github.com/ayusman/makeover/internal/config"
	"github.com/ayusman/makeover/internal/server"
	"github.com/ayusman/makeover/internal/store"
	"github.com/ayusman/makeover/internal/tray"
)

func main() {
	fmt.Println("Makeover - Touchless Photo Booth")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Paths.Database), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.Paths.Database)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	lib, err := assets.Load(cfg.Paths.AssetDir)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}

	a := app.New(app.Config{
		Store:           st,
		Assets:          lib,
		CameraID:        cfg.Camera.ID,
		FPS:             cfg.Camera.FPS,
		SaveDir:         cfg.Paths.SaveDir,
		CascadeFile:     cfg.Paths.CascadeFile,
		HoldSeconds:     cfg.Dwell.HoldSeconds,
		StabilityRadius: cfg.Dwell.StabilityRadius,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	tr.OnRestart(func() {
		a.RestartWizard()
	})
	tr.OnGallery(func() {
		fmt.Printf("Gallery: http://%s/\n", cfg.Server.Addr)
	})
	tr.OnQuit(func() {
		a.Stop()
	})

	// Blocks until quit
	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.makeover/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".makeover", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
