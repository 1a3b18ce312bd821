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

package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func assertNoHyphenKeys(t *testing.T, value any) {
	t.Helper()
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			assert.False(t, strings.Contains(key, "-"), "key %q still contains a hyphen", key)
			assertNoHyphenKeys(t, val)
		}
	case []any:
		for _, val := range v {
			assertNoHyphenKeys(t, val)
		}
	}
}

func TestRead(t *testing.T) {
	t.Run("should replace hyphens in top level and nested keys", func(t *testing.T) {
		p := writeFile(t, "config.yml", `
iac:
  scanner-version: 0.50.1
  trivy-checks-version: v0.10.0
  nested-map:
    inner-key: value
    list-of-maps:
      - some-key: 1
top-level: true
`)
		data, err := Read(p)
		require.NoError(t, err)

		assertNoHyphenKeys(t, data)
		iac := data["iac"].(map[string]any)
		assert.Equal(t, "0.50.1", iac["scanner_version"])
		assert.Equal(t, "v0.10.0", iac["trivy_checks_version"])
		assert.Equal(t, true, data["top_level"])

		nested := iac["nested_map"].(map[string]any)
		assert.Equal(t, "value", nested["inner_key"])
		assert.Len(t, nested["list_of_maps"], 1)
	})

	t.Run("should keep values with hyphens untouched", func(t *testing.T) {
		p := writeFile(t, "config.yml", "key-name: some-value\n")
		data, err := Read(p)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"key_name": "some-value"}, data)
	})

	t.Run("should return a not exist error for a missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("should return a parse error for invalid yaml", func(t *testing.T) {
		p := writeFile(t, "broken.yml", "iac: [unterminated\n")
		_, err := Read(p)
		require.Error(t, err)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
		assert.Equal(t, p, parseErr.Path)
	})

	t.Run("should reject a document which is not a mapping", func(t *testing.T) {
		p := writeFile(t, "list.yml", "- a\n- b\n")
		_, err := Read(p)
		assert.ErrorIs(t, err, ErrNotMapping)
	})

	t.Run("should return an empty map for an empty document", func(t *testing.T) {
		p := writeFile(t, "empty.yml", "")
		data, err := Read(p)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestNormalizeKeys(t *testing.T) {
	in := map[string]any{
		"a-b": map[string]any{"c-d": map[string]any{"e-f": 1}},
		"g":   2,
	}
	out := NormalizeKeys(in)

	assert.Equal(t, map[string]any{
		"a_b": map[string]any{"c_d": map[string]any{"e_f": 1}},
		"g":   2,
	}, out)
	// the input is not modified
	assert.Contains(t, in, "a-b")
}

func TestDecode(t *testing.T) {
	type target struct {
		Severity *string `mapstructure:"severity"`
		Disabled *bool   `mapstructure:"disabled"`
	}

	t.Run("should ignore unknown keys", func(t *testing.T) {
		var out target
		err := Decode(map[string]any{"severity": "HIGH", "comment": "ignored"}, &out)
		require.NoError(t, err)
		require.NotNil(t, out.Severity)
		assert.Equal(t, "HIGH", *out.Severity)
		assert.Nil(t, out.Disabled)
	})

	t.Run("should convert weakly typed booleans", func(t *testing.T) {
		var out target
		err := Decode(map[string]any{"disabled": "true"}, &out)
		require.NoError(t, err)
		require.NotNil(t, out.Disabled)
		assert.True(t, *out.Disabled)
	})

	t.Run("should accept yaml 1.1 booleans", func(t *testing.T) {
		for in, expected := range map[string]bool{"yes": true, "On": true, "y": true, "no": false, "OFF": false, "n": false} {
			var out target
			err := Decode(map[string]any{"disabled": in}, &out)
			require.NoError(t, err, in)
			require.NotNil(t, out.Disabled, in)
			assert.Equal(t, expected, *out.Disabled, in)
		}
	})

	t.Run("should still reject strings which are no boolean", func(t *testing.T) {
		var out target
		err := Decode(map[string]any{"disabled": "maybe"}, &out)
		assert.Error(t, err)
	})
}
