// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Static information about the running binary, attached to logs.

// Package app holds the name and version of the running binary.
package app

import (
	"runtime/debug"
	"sync"
)

// Version is stamped at build time:
//
//	-ldflags "-X github.com/getoutreach/testshuffle/pkg/app.Version=v1.2.3"
//
// nolint:gochecknoglobals
var Version = "development"

// nolint:gochecknoglobals
var (
	nameMu sync.RWMutex
	name   string

	mainModule = sync.OnceValue(func() string {
		if bi, ok := debug.ReadBuildInfo(); ok {
			return bi.Main.Path
		}
		return ""
	})
)

// SetName records the binary name. An empty name is left out of logs.
func SetName(n string) {
	nameMu.Lock()
	defer nameMu.Unlock()
	name = n
}

// Info returns a snapshot of the app info.
func Info() *Data {
	nameMu.RLock()
	defer nameMu.RUnlock()

	return &Data{
		Name:       name,
		Version:    Version,
		MainModule: mainModule(),
	}
}

// Data is a snapshot of the app info.
type Data struct {
	Name       string
	Version    string
	MainModule string
}

// MarshalLog implements log.Marshaler. Empty fields are skipped.
func (d *Data) MarshalLog(addField func(key string, v interface{})) {
	if d.Name != "" {
		addField("app.name", d.Name)
	}
	if d.Version != "" {
		addField("app.version", d.Version)
	}
}
