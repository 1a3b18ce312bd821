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


// Package staticdata scrapes the policy documentation of the checks repository
// for a short description and a remediation snippet per policy.
package staticdata

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	StaticDataDirName = "static-data"

	descriptionFilename = "docs.md"
	remediationFilename = "Terraform.md"
	policyDirPrefix     = "AVD-"
	codeFence           = "```"
)

type PolicyStaticData struct {
	Description string `json:"description"`
	Remediation string `json:"remediation"`
}

type Generator struct {
	// OutputDir is the shared output root, static data is written to its static-data subdirectory.
	OutputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{OutputDir: outputDir}
}

func (g *Generator) StaticDataDir() string {
	return filepath.Join(g.OutputDir, StaticDataDirName)
}

func scanLines(path string, fn func(line string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if !fn(strings.TrimSuffix(scanner.Text(), "\r")) {
			break
		}
	}
	return errors.Wrapf(scanner.Err(), "could not read %s", path)
}

// ReadDescription returns the text above the first heading of path.
func (g *Generator) ReadDescription(path string) (string, error) {
	var lines []string
	err := scanLines(path, func(line string) bool {
		if strings.HasPrefix(line, "#") {
			return false
		}
		lines = append(lines, line)
		return true
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ReadRemediation returns the content of the first fenced code block of path.
// An unterminated block yields everything after the opening fence.
func (g *Generator) ReadRemediation(path string) (string, error) {
	var lines []string
	started := false
	err := scanLines(path, func(line string) bool {
		if strings.HasPrefix(line, codeFence) {
			if started {
				return false
			}
			started = true
			return true
		}
		if started {
			lines = append(lines, line)
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ProcessPolicyDirectory reads the static data of a single policy. ok is false
// if the directory lacks one of the documentation files.
func (g *Generator) ProcessPolicyDirectory(dir string) (data *PolicyStaticData, ok bool, err error) {
	descriptionPath := filepath.Join(dir, descriptionFilename)
	remediationPath := filepath.Join(dir, remediationFilename)
	for _, p := range []string{descriptionPath, remediationPath} {
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			slog.Debug("skipping policy directory", "dir", dir, "missing", filepath.Base(p))
			return nil, false, nil
		}
	}

	description, err := g.ReadDescription(descriptionPath)
	if err != nil {
		return nil, false, err
	}
	remediation, err := g.ReadRemediation(remediationPath)
	if err != nil {
		return nil, false, err
	}
	return &PolicyStaticData{Description: description, Remediation: remediation}, true, nil
}

// PolicyDirectories returns every directory named AVD-* below root.
func PolicyDirectories(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), policyDirPrefix) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not walk %s", root)
	}
	return dirs, nil
}

func (g *Generator) writeFile(policyID string, data *PolicyStaticData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "could not marshal static data")
	}
	path := filepath.Join(g.StaticDataDir(), policyID+".json")
	if err := os.WriteFile(path, b, 0o644); err != nil { // nolint:gosec
		return errors.Wrapf(err, "could not write %s", path)
	}
	return nil
}

// GenerateAll writes one JSON file per policy found below root and returns
// the number of files written.
func (g *Generator) GenerateAll(root string) (int, error) {
	dirs, err := PolicyDirectories(root)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(g.StaticDataDir(), 0o755); err != nil {
		return 0, errors.Wrap(err, "could not create static data directory")
	}

	count := 0
	for _, dir := range dirs {
		data, ok, err := g.ProcessPolicyDirectory(dir)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		if err := g.writeFile(filepath.Base(dir), data); err != nil {
			return count, err
		}
		count++
	}

	slog.Info("generated static data", "policies", count, "dir", g.StaticDataDir())
	return count, nil
}

// ClearOutputs removes the static data and the output root, the latter only
// if nothing else (e.g. downloaded scanners) is left in it.
func (g *Generator) ClearOutputs() error {
	if err := os.RemoveAll(g.StaticDataDir()); err != nil {
		return errors.Wrap(err, "could not remove static data")
	}

	entries, err := os.ReadDir(g.OutputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "could not read output directory")
	}
	if len(entries) > 0 {
		return nil
	}
	return errors.Wrap(os.Remove(g.OutputDir), "could not remove output directory")
}
