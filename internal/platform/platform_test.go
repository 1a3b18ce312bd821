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

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelease(t *testing.T) {
	t.Run("should cover the five supported platforms", func(t *testing.T) {
		all := All()
		assert.Len(t, all, 5)
		assert.Equal(t, Windows, all[0].Platform)
		assert.Equal(t, LinuxARM64, all[4].Platform)
	})

	t.Run("should build the upstream release url", func(t *testing.T) {
		r, ok := Get(LinuxAMD64)
		assert.True(t, ok)
		assert.Equal(t,
			"https://github.com/aquasecurity/trivy/releases/download/v0.50.1/trivy_0.50.1_Linux-64bit.tar.gz",
			r.URL(DefaultReleaseURL, "0.50.1"),
		)
	})

	t.Run("should not double the v prefix or the slash", func(t *testing.T) {
		r, _ := Get(Windows)
		assert.Equal(t, "http://mirror/v1.0.0/trivy_1.0.0_windows-64bit.zip", r.URL("http://mirror/", "v1.0.0"))
	})

	t.Run("should name archives after the platform", func(t *testing.T) {
		r, _ := Get(DarwinARM64)
		assert.Equal(t, "darwin_arm64.tar.gz", r.ArchiveName())
	})

	t.Run("should report unknown platforms", func(t *testing.T) {
		_, ok := Get("plan9_386")
		assert.False(t, ok)
	})
}
