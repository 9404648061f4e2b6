// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config loads the engine's runtime configuration: window, VFS
// mount points, and render device settings, as a single YAML document.
// Grounded on the teacher's load/shd.go (yaml.Unmarshal into a plain
// string-keyed struct, named-constant translation with an explicit
// "unsupported X" error per field), generalized from shader-pipeline
// binding config to top-level application config since SPEC_FULL.md's
// shader/material binding is now owned by asset.Shader/asset.Material
// instead.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VsyncMode names the render device's present mode, mirrored from
// render.VsyncMode's three values so config stays decoupled from the
// render package (config must not import a device backend).
type VsyncMode string

const (
	VsyncOn      VsyncMode = "on"
	VsyncOff     VsyncMode = "off"
	VsyncMailbox VsyncMode = "mailbox"
)

var vsyncModes = map[string]VsyncMode{
	"on":      VsyncOn,
	"off":     VsyncOff,
	"mailbox": VsyncMailbox,
}

// Window holds the initial window geometry and title.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Mount names a single VFS mount point: a logical prefix mapped to a disk
// directory, matching the original disk_vfs.hpp's root-directory notion.
type Mount struct {
	Prefix string `yaml:"prefix"`
	Dir    string `yaml:"dir"`
}

// Device holds render device startup settings.
type Device struct {
	Vsync       VsyncMode `yaml:"vsync"`
	RenderScale float64   `yaml:"render_scale"`
	Msaa        int       `yaml:"msaa"`
}

// Config is the engine's top-level runtime configuration.
type Config struct {
	Window Window  `yaml:"window"`
	Mounts []Mount `yaml:"mounts"`
	Device Device  `yaml:"device"`
}

// Default returns the original's defaults: a 1280x720 window, a single
// "" → "assets" mount (empty prefix), vsync on, render scale 1, no MSAA.
func Default() Config {
	return Config{
		Window: Window{Title: "levk", Width: 1280, Height: 720},
		Mounts: []Mount{{Prefix: "", Dir: "assets"}},
		Device: Device{Vsync: VsyncOn, RenderScale: 1, Msaa: 0},
	}
}

// rawConfig mirrors Config field-for-field but keeps Vsync as a plain
// string so unknown values produce a descriptive error instead of an
// opaque zero value, the same "decode loose, validate explicit" shape as
// the teacher's shaderConfig/Shd pairing.
type rawConfig struct {
	Window Window  `yaml:"window"`
	Mounts []Mount `yaml:"mounts"`
	Device struct {
		Vsync       string  `yaml:"vsync"`
		RenderScale float64 `yaml:"render_scale"`
		Msaa        int     `yaml:"msaa"`
	} `yaml:"device"`
}

// Parse decodes a YAML config document, validating every enum field the
// way Shd validates shader stage/attribute/uniform names.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: yaml: %w", err)
	}

	vsync := VsyncOn
	if raw.Device.Vsync != "" {
		mode, ok := vsyncModes[raw.Device.Vsync]
		if !ok {
			return Config{}, fmt.Errorf("config: unsupported vsync mode %q", raw.Device.Vsync)
		}
		vsync = mode
	}

	scale := raw.Device.RenderScale
	if scale == 0 {
		scale = 1
	}

	cfg := Config{
		Window: raw.Window,
		Mounts: raw.Mounts,
		Device: Device{Vsync: vsync, RenderScale: scale, Msaa: raw.Device.Msaa},
	}
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 1280
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if len(cfg.Mounts) == 0 {
		cfg.Mounts = []Mount{{Prefix: "", Dir: "assets"}}
	}
	return cfg, nil
}

// Load reads and parses the YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}
