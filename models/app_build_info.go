// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// buildValueUnknown stands in for metadata the linker did not inject, as in
// a plain `go build`.
const buildValueUnknown = "N/A"

// AppBuildInfo identifies the vault binary that is running. The server
// prints it on start and the TUI shows it in the about overlay.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo takes the -ldflags -X values of a binary. Blank values
// read back as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orUnknown(buildVersion),
		buildDate:    orUnknown(buildDate),
		buildCommit:  orUnknown(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return orUnknown(a.buildVersion)
}

func (a AppBuildInfo) BuildDate() string {
	return orUnknown(a.buildDate)
}

func (a AppBuildInfo) BuildCommit() string {
	return orUnknown(a.buildCommit)
}

// String renders one "Label: value" line per field.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		a.BuildVersion(), a.BuildDate(), a.BuildCommit())
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return buildValueUnknown
	}
	return v
}
