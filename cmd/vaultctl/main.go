// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import "github.com/MKhiriev/go-pass-vault/cmd/vaultctl/cmd"

var buildVersion string

func main() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	cmd.Execute(buildVersion)
}
