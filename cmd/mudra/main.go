package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/sink"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Hand Gesture Control")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dataDir, ".env"))
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()
	defer sink.CloseDriver()

	a := app.New(st, cfg)

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	if err := a.ReloadBindings(); err != nil {
		log.Printf("Failed to load bindings: %v", err)
	}

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Settings:  cfg,
		App:       a,
	})

	// Feed live evaluator output to the settings UI.
	if values := srv.Values(); values != nil {
		a.Registry().OnValue = values.Publish
		a.OnGesture = func(name string) {
			values.PublishTrigger("", name)
		}
	}

	settings := cfg.Settings()
	go func() {
		fmt.Printf("Starting server on %s\n", settings.HTTPAddr)
		if err := srv.ListenAndServe(settings.HTTPAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Printf("Failed to start pipeline: %v", err)
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnMIDIStop(func() {
		if err := a.MIDI().AllNotesOff(0).Fire(); err != nil {
			log.Printf("MIDI stop failed: %v", err)
		}
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + settings.HTTPAddr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	onGesture := a.OnGesture
	a.OnGesture = func(name string) {
		if onGesture != nil {
			onGesture(name)
		}
		t.SetLastGesture(name)
	}

	// Blocks until Quit is chosen from the menu.
	t.Run()
}

// openBrowser opens the settings page in the default browser.
func openBrowser(url string) {
	if err := exec.Command("open", url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
/// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
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

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
