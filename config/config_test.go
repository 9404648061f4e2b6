// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("unexpected default window size: %+v", cfg.Window)
	}
	if len(cfg.Mounts) != 1 || cfg.Mounts[0].Dir != "assets" {
		t.Errorf("unexpected default mounts: %+v", cfg.Mounts)
	}
	if cfg.Device.Vsync != VsyncOn || cfg.Device.RenderScale != 1 {
		t.Errorf("unexpected default device config: %+v", cfg.Device)
	}
}

func TestParseFillsDefaultsForMissingFields(t *testing.T) {
	cfg, err := Parse([]byte(`window: {title: demo}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Window.Title != "demo" {
		t.Errorf("Title = %q, want demo", cfg.Window.Title)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected default width/height to be filled in, got %+v", cfg.Window)
	}
	if len(cfg.Mounts) != 1 || cfg.Mounts[0].Dir != "assets" {
		t.Errorf("expected default mount to be filled in, got %+v", cfg.Mounts)
	}
	if cfg.Device.Vsync != VsyncOn {
		t.Errorf("Vsync = %q, want on", cfg.Device.Vsync)
	}
	if cfg.Device.RenderScale != 1 {
		t.Errorf("RenderScale = %v, want 1", cfg.Device.RenderScale)
	}
}

func TestParseHonoursExplicitValues(t *testing.T) {
	doc := `
window:
  title: levk-demo
  width: 1920
  height: 1080
mounts:
  - prefix: ""
    dir: data
device:
  vsync: mailbox
  render_scale: 0.5
  msaa: 4
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("unexpected window size: %+v", cfg.Window)
	}
	if len(cfg.Mounts) != 1 || cfg.Mounts[0].Dir != "data" {
		t.Errorf("unexpected mounts: %+v", cfg.Mounts)
	}
	if cfg.Device.Vsync != VsyncMailbox {
		t.Errorf("Vsync = %q, want mailbox", cfg.Device.Vsync)
	}
	if cfg.Device.RenderScale != 0.5 {
		t.Errorf("RenderScale = %v, want 0.5", cfg.Device.RenderScale)
	}
	if cfg.Device.Msaa != 4 {
		t.Errorf("Msaa = %d, want 4", cfg.Device.Msaa)
	}
}

func TestParseRejectsUnsupportedVsync(t *testing.T) {
	_, err := Parse([]byte("device:\n  vsync: triple-buffered\n"))
	if err == nil {
		t.Fatal("expected an error for an unsupported vsync mode")
	}
}

func TestParseRejectsMalformedYaml(t *testing.T) {
	_, err := Parse([]byte("window: [this is not a mapping"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
