package sink

import (
	"encoding/json"
	"fmt"

	"github.com/ayusman/mudra/internal/plugin"
)

// SystemSink dispatches to an out-of-process action plugin, which is how
// OS-level outputs (volume, mute, media keys) are reached without binding
// platform APIs into the core.
type SystemSink struct {
	manager *plugin.Manager
	exec    *plugin.Executor
	name    string
}

// NewSystemSink creates a sink backed by the named plugin. The plugin is
// looked up on every dispatch so a rediscovery takes effect immediately.
func NewSystemSink(manager *plugin.Manager, exec *plugin.Executor, name string) *SystemSink {
	return &SystemSink{
		manager: manager,
		exec:    exec,
		name:    name,
	}
}

// Set forwards a normalized value to the plugin's set-volume action.
func (s *SystemSink) Set(value float64, channel, controller uint8) error {
	params, err := json.Marshal(map[string]float64{"value": value})
	if err != nil {
		return err
	}
	return s.run("set-volume", params)
}

// Trigger returns a TriggerSink firing the named plugin action, e.g.
// "volume-mute" or "media-play-pause".
func (s *SystemSink) Trigger(action string) TriggerSink {
	return TriggerFunc(func() error {
		return s.run(action, nil)
	})
}

func (s *SystemSink) run(action string, params json.RawMessage) error {
	p, err := s.manager.Get(s.name)
	if err != nil {
		return fmt.Errorf("plugin %s: %w", s.name, err)
	}

	resp, err := s.exec.Execute(p, &plugin.Request{
		Action: action,
		Params: params,
	})
	if err != nil {
		return fmt.Errorf("plugin %s: %w", s.name, err)
	}
	if !resp.Success {
		return fmt.Errorf("plugin %s: %s", s.name, resp.Error)
	}
	return nil
}
