package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestPlugin_VolumeControl_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	if runtime.GOOS != "darwin" {
		t.Skip("volume-control plugin only works on macOS")
	}

	// Find the built plugin
	pluginDir := findPluginDir("volume-control")
	if pluginDir == "" {
		t.Skip("volume-control plugin not built")
	}

	mgr := NewManager(filepath.Dir(pluginDir))
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	plug, err := mgr.Get("volume-control")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	executor := NewExecutor(5000)

	// volume-mute and set-volume have side effects, so probe error
	// handling with an unknown action instead.
	req := &Request{
		Action: "no-such-action",
	}

	resp, err := executor.Execute(plug, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.Success {
		t.Error("expected failure for unknown action")
	}
}

func TestPlugin_VolumeControl_RejectsOutOfRange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	if runtime.GOOS != "darwin" {
		t.Skip("volume-control plugin only works on macOS")
	}

	pluginDir := findPluginDir("volume-control")
	if pluginDir == "" {
		t.Skip("volume-control plugin not built")
	}

	mgr := NewManager(filepath.Dir(pluginDir))
	mgr.Discover()

	plug, err := mgr.Get("volume-control")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	executor := NewExecutor(5000)

	req := &Request{
		Action: "set-volume",
		Params: json.RawMessage(`{"value": 2.0}`),
	}

	resp, err := executor.Execute(plug, req)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if resp.Success {
		t.Error("expected failure for out-of-range volume")
	}
}

func findPluginDir(name string) string {
	candidates := []string{
		filepath.Join("../../plugins", name),
		filepath.Join("../../../plugins", name),
	}

	for _, dir := range candidates {
		manifest := filepath.Join(dir, "plugin.json")
		if _, err := os.Stat(manifest); err == nil {
			return dir
		}
	}
	return ""
}
