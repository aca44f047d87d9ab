// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-pass-vault/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := "Application: go-pass-vault\n" + info.String()
	return renderPage("ABOUT", overlayStyle.Render(body), "esc: back")
}
