// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package platform describes the operating systems and architectures a
// scanner is bundled for, and how their upstream release archives are named.
package platform

import (
	"fmt"
	"strings"
)

const DefaultReleaseURL = "https://github.com/aquasecurity/trivy/releases/download"

type Platform string

const (
	Windows     Platform = "windows"
	DarwinAMD64 Platform = "darwin_amd64"
	DarwinARM64 Platform = "darwin_arm64"
	LinuxAMD64  Platform = "linux_amd64"
	LinuxARM64  Platform = "linux_arm64"
)

// Release holds the upstream naming of a scanner release for one platform.
type Release struct {
	Platform   Platform
	Label      string
	Ext        string
	BinaryName string
}

var releases = []Release{
	{Platform: Windows, Label: "windows-64bit", Ext: "zip", BinaryName: "trivy.exe"},
	{Platform: DarwinAMD64, Label: "macOS-64bit", Ext: "tar.gz", BinaryName: "trivy"},
	{Platform: DarwinARM64, Label: "macOS-ARM64", Ext: "tar.gz", BinaryName: "trivy"},
	{Platform: LinuxAMD64, Label: "Linux-64bit", Ext: "tar.gz", BinaryName: "trivy"},
	{Platform: LinuxARM64, Label: "Linux-ARM64", Ext: "tar.gz", BinaryName: "trivy"},
}

// All returns the release descriptors of every supported platform in a stable order.
func All() []Release {
	out := make([]Release, len(releases))
	copy(out, releases)
	return out
}

func Get(p Platform) (Release, bool) {
	for _, r := range releases {
		if r.Platform == p {
			return r, true
		}
	}
	return Release{}, false
}

// URL returns the download URL of the release archive for version.
// A leading "v" in version is tolerated.
func (r Release) URL(baseURL, version string) string {
	version = strings.TrimPrefix(version, "v")
	return fmt.Sprintf("%s/v%s/trivy_%s_%s.%s", strings.TrimSuffix(baseURL, "/"), version, version, r.Label, r.Ext)
}

// ArchiveName is the file name the downloaded archive is stored under.
func (r Release) ArchiveName() string {
	return fmt.Sprintf("%s.%s", r.Platform, r.Ext)
}
