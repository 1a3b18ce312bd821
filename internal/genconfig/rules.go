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


package genconfig

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aquasecurity/trivy-db/pkg/types"
	"github.com/hashicorp/go-multierror"
	"github.com/l3montree-dev/trivy-bundler/internal/content"
	"github.com/pkg/errors"
)

const (
	ruleFilePattern  = "*-AVD-*.yml"
	defaultsFilename = "defaults.yml"
)

type RulesConfigGenerator struct {
	// Path of the rules-config directory
	Path string
}

func NewRulesConfigGenerator(path string) *RulesConfigGenerator {
	return &RulesConfigGenerator{Path: path}
}

// RuleFiles returns every rule override file below the rules root in lexical order.
func (g *RulesConfigGenerator) RuleFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(g.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(ruleFilePattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not walk %s", g.Path)
	}
	return files, nil
}

func ruleID(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (g *RulesConfigGenerator) readRules() ([]string, map[string]RuleConfigWithDisabled, error) {
	files, err := g.RuleFiles()
	if err != nil {
		return nil, nil, err
	}

	var result *multierror.Error
	ids := make([]string, 0, len(files))
	rules := make(map[string]RuleConfigWithDisabled, len(files))
	for _, file := range files {
		var rule RuleConfigWithDisabled
		if err := content.ReadInto(file, &rule); err != nil {
			result = multierror.Append(result, err)
			continue
		}

		id := ruleID(file)
		if _, ok := rules[id]; ok {
			slog.Warn("rule is configured more than once, last file wins", "rule", id, "file", file)
		} else {
			ids = append(ids, id)
		}
		rules[id] = rule
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, nil, errors.Wrap(err, "malformed rule files")
	}
	return ids, rules, nil
}

func checkSeverity(id string, severity *string) {
	if severity == nil {
		return
	}
	if _, err := types.NewSeverity(strings.ToUpper(*severity)); err != nil {
		slog.Warn("rule has an unknown severity", "rule", id, "severity", *severity)
	}
}

// Partition splits the rules into the ids of disabled rules and the config of
// enabled rules. The disabled flag is dropped from enabled rules.
func Partition(ids []string, rules map[string]RuleConfigWithDisabled) (map[string]RuleConfig, []string) {
	enabled := make(map[string]RuleConfig)
	disabled := make([]string, 0)

	for _, id := range ids {
		rule := rules[id]
		if rule.IsDisabled() {
			disabled = append(disabled, id)
			continue
		}
		enabled[id] = RuleConfig{Severity: rule.Severity}
	}
	return enabled, disabled
}

// Generate merges the category defaults with the rule override files.
func (g *RulesConfigGenerator) Generate() (*RulesConfig, error) {
	var defaults CategoryRuleConfig
	if err := content.ReadInto(filepath.Join(g.Path, CategoryIaC, defaultsFilename), &defaults); err != nil {
		return nil, err
	}

	ids, rules, err := g.readRules()
	if err != nil {
		return nil, err
	}

	enabled, disabled := Partition(ids, rules)
	for id, rule := range enabled {
		checkSeverity(id, rule.Severity)
	}
	checkSeverity("defaults", defaults.MinimumSeverity)

	defaults.RulesDisabled = disabled
	defaults.Rules = enabled

	slog.Debug("generated rules config", "enabled", len(enabled), "disabled", len(disabled))
	return &RulesConfig{IaC: defaults}, nil
}
