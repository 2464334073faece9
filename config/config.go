// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration options of the
// scene-graph runtime, which can be loaded from TOML or YAML files
// and reloaded when those files change.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/x3d/node"
	"cogentcore.org/x3d/report"
)

// Options are the configuration options of the runtime.
type Options struct {

	// the node categories whose structural changes are tracked per frame, by X3D name
	ListenFor []string `yaml:"listenFor" desc:"the node categories whose structural changes are tracked per frame, by X3D name"`

	// [def: warn] the minimum level of the messages to show: debug, info, warn or error
	LogLevel string `yaml:"logLevel" def:"warn" desc:"the minimum level of the messages to show: debug, info, warn or error"`

	// whether to print messages without colors
	NoColor bool `yaml:"noColor" desc:"whether to print messages without colors"`

	// [def: 64] the maximum number of generations of events in one route cascade; negative for no limit
	MaxCascadeDepth int `yaml:"maxCascadeDepth" def:"64" desc:"the maximum number of generations of events in one route cascade; negative for no limit"`

	// [def: >= 2.0, < 5] the constraint on the versions of the scenes that are accepted
	SpecVersions string `yaml:"specVersions" def:">= 2.0, < 5" desc:"the constraint on the versions of the scenes that are accepted"`
}

// Default returns the default options.
func Default() *Options {
	return &Options{
		ListenFor: []string{
			node.SensorNodeType.String(),
			node.ScriptNodeType.String(),
			node.BindableNodeType.String(),
			node.TerrainNodeType.String(),
			node.ExternalSynchronizedNodeType.String(),
			node.ExternalNodeType.String(),
			node.ViewDependentNodeType.String(),
			node.TimeDependentNodeType.String(),
		},
		LogLevel:        "warn",
		MaxCascadeDepth: 64,
		SpecVersions:    ">= 2.0, < 5",
	}
}

// Load returns the options in the given TOML or YAML file, chosen by
// extension, with defaults for all of the options that the file does
// not set. A leading ~ in the path is expanded to the home directory.
func Load(path string) (*Options, error) {
	fp, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	raw, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	file := &Options{}
	switch ext := strings.ToLower(filepath.Ext(fp)); ext {
	case ".toml":
		err = toml.Unmarshal(raw, file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, file)
	default:
		err = fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", fp, err)
	}
	opts := Default()
	if err := copier.CopyWithOption(opts, file, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	// copier merges slices element by element, but a list in the file
	// replaces the default list.
	if file.ListenFor != nil {
		opts.ListenFor = slices.Clone(file.ListenFor)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", fp, err)
	}
	return opts, nil
}

// Validate returns an error describing every invalid option.
func (o *Options) Validate() error {
	var errs []error
	if _, err := o.Types(); err != nil {
		errs = append(errs, err)
	}
	if _, err := o.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := o.VersionConstraint(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Types returns the node categories named by ListenFor.
func (o *Options) Types() ([]node.Types, error) {
	ts := make([]node.Types, 0, len(o.ListenFor))
	for _, nm := range o.ListenFor {
		t, err := node.ParseTypes(nm)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// Level returns the level named by LogLevel.
func (o *Options) Level() (slog.Level, error) {
	return report.ParseLevel(o.LogLevel)
}

// VersionConstraint returns the constraint given by SpecVersions.
func (o *Options) VersionConstraint() (*semver.Constraints, error) {
	c, err := semver.NewConstraint(o.SpecVersions)
	if err != nil {
		return nil, fmt.Errorf("config: spec versions %q: %w", o.SpecVersions, err)
	}
	return c, nil
}

// CascadeDepth returns the route cascade limit, with 0 for no limit.
func (o *Options) CascadeDepth() int {
	return max(o.MaxCascadeDepth, 0)
}

// Reporter returns a console reporter for the options.
func (o *Options) Reporter() report.Reporter {
	c := report.NewConsole(os.Stderr, !o.NoColor)
	if lv, err := o.Level(); err == nil {
		c.Level = lv
	}
	return c
}
