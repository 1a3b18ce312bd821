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


package staticdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestReadDescription(t *testing.T) {
	g := NewGenerator(t.TempDir())

	t.Run("should read until the first heading", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "docs.md"), "Title\n\nSome text.\n# Heading\nMore.")
		description, err := g.ReadDescription(path)
		require.NoError(t, err)
		assert.Equal(t, "Title\n\nSome text.", description)
	})

	t.Run("should be empty if the file starts with a heading", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "docs.md"), "# Heading\nText")
		description, err := g.ReadDescription(path)
		require.NoError(t, err)
		assert.Empty(t, description)
	})

	t.Run("should read everything if there is no heading", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "docs.md"), "\n  Only prose.\r\n\n")
		description, err := g.ReadDescription(path)
		require.NoError(t, err)
		assert.Equal(t, "Only prose.", description)
	})

	t.Run("should fail if the file is missing", func(t *testing.T) {
		_, err := g.ReadDescription(filepath.Join(t.TempDir(), "docs.md"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadRemediation(t *testing.T) {
	g := NewGenerator(t.TempDir())

	t.Run("should read the first fenced block", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "Terraform.md"), "intro\n```\nresource \"x\" {}\n```\nend")
		remediation, err := g.ReadRemediation(path)
		require.NoError(t, err)
		assert.Equal(t, `resource "x" {}`, remediation)
	})

	t.Run("should accept a language after the fence and ignore later blocks", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "Terraform.md"),
			"```hcl\nresource \"a\" {\n  b = true\n}\n```\n```hcl\nresource \"c\" {}\n```\n")
		remediation, err := g.ReadRemediation(path)
		require.NoError(t, err)
		assert.Equal(t, "resource \"a\" {\n  b = true\n}", remediation)
	})

	t.Run("should capture the rest of the file if the block is not closed", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "Terraform.md"), "intro\n```\nline one\nline two\n")
		remediation, err := g.ReadRemediation(path)
		require.NoError(t, err)
		assert.Equal(t, "line one\nline two", remediation)
	})

	t.Run("should be empty without a fence", func(t *testing.T) {
		path := writeFile(t, filepath.Join(t.TempDir(), "Terraform.md"), "no code here")
		remediation, err := g.ReadRemediation(path)
		require.NoError(t, err)
		assert.Empty(t, remediation)
	})
}

func TestProcessPolicyDirectory(t *testing.T) {
	g := NewGenerator(t.TempDir())

	t.Run("should skip directories missing a documentation file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "AVD-AWS-0001")
		writeFile(t, filepath.Join(dir, "docs.md"), "Description")

		data, ok, err := g.ProcessPolicyDirectory(dir)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("should read both files", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "AVD-AWS-0001")
		writeFile(t, filepath.Join(dir, "docs.md"), "Description\n# Heading")
		writeFile(t, filepath.Join(dir, "Terraform.md"), "```\nfix\n```")

		data, ok, err := g.ProcessPolicyDirectory(dir)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, &PolicyStaticData{Description: "Description", Remediation: "fix"}, data)
	})
}

func TestGenerateAll(t *testing.T) {
	t.Run("should write one file per complete policy directory", func(t *testing.T) {
		docs := t.TempDir()
		writeFile(t, filepath.Join(docs, "aws", "s3", "AVD-AWS-0086", "docs.md"), "Block public ACLs.\n# Impact")
		writeFile(t, filepath.Join(docs, "aws", "s3", "AVD-AWS-0086", "Terraform.md"), "```hcl\nblock_public_acls = true\n```")
		writeFile(t, filepath.Join(docs, "azure", "AVD-AZU-0001", "docs.md"), "Only docs")
		writeFile(t, filepath.Join(docs, "google", "not-a-policy", "docs.md"), "ignored")
		writeFile(t, filepath.Join(docs, "google", "not-a-policy", "Terraform.md"), "ignored")

		output := filepath.Join(t.TempDir(), "output")
		g := NewGenerator(output)

		count, err := g.GenerateAll(docs)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		entries, err := os.ReadDir(g.StaticDataDir())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "AVD-AWS-0086.json", entries[0].Name())

		b, err := os.ReadFile(filepath.Join(g.StaticDataDir(), "AVD-AWS-0086.json"))
		require.NoError(t, err)
		var data PolicyStaticData
		require.NoError(t, json.Unmarshal(b, &data))
		assert.Equal(t, "Block public ACLs.", data.Description)
		assert.Equal(t, "block_public_acls = true", data.Remediation)
	})

	t.Run("should fail if the docs root does not exist", func(t *testing.T) {
		outputDir := filepath.Join(t.TempDir(), "output")
		g := NewGenerator(outputDir)
		_, err := g.GenerateAll(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
		assert.NoDirExists(t, outputDir)
	})
}

func TestClearOutputs(t *testing.T) {
	t.Run("should remove the output root if it is empty afterwards", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "output")
		g := NewGenerator(output)
		writeFile(t, filepath.Join(g.StaticDataDir(), "AVD-AWS-0086.json"), "{}")

		require.NoError(t, g.ClearOutputs())
		assert.NoDirExists(t, output)
	})

	t.Run("should keep the output root if scanners are left", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "output")
		g := NewGenerator(output)
		writeFile(t, filepath.Join(g.StaticDataDir(), "AVD-AWS-0086.json"), "{}")
		writeFile(t, filepath.Join(output, "scanners", "windows", "trivy.exe"), "bin")

		require.NoError(t, g.ClearOutputs())
		assert.NoDirExists(t, g.StaticDataDir())
		assert.FileExists(t, filepath.Join(output, "scanners", "windows", "trivy.exe"))
	})

	t.Run("should be a no-op if nothing was generated", func(t *testing.T) {
		g := NewGenerator(filepath.Join(t.TempDir(), "output"))
		assert.NoError(t, g.ClearOutputs())
		assert.NoError(t, g.ClearOutputs())
	})
}
