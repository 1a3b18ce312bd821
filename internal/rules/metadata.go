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


// Package rules extracts the metadata of every check defined in a checkout of
// the checks repository, from Go scan.Rule literals and Rego METADATA annotations.
package rules

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aquasecurity/trivy-db/pkg/types"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type RuleMetadata struct {
	AVDID       string `json:"AVDID"`
	Provider    string `json:"Provider"`
	Service     string `json:"Service"`
	ShortCode   string `json:"ShortCode"`
	Summary     string `json:"Summary"`
	Impact      string `json:"Impact"`
	Resolution  string `json:"Resolution"`
	Explanation string `json:"Explanation"`
	Severity    string `json:"Severity"`
	Deprecated  bool   `json:"Deprecated"`
}

var titleCaser = cases.Title(language.English)

// NormalizeSeverity turns "HIGH", "high" or "High" into "High".
func NormalizeSeverity(severity string) string {
	severity = strings.TrimSpace(severity)
	if severity == "" {
		return ""
	}
	if s, err := types.NewSeverity(strings.ToUpper(severity)); err == nil {
		severity = s.String()
	} else {
		slog.Debug("unknown severity", "severity", severity)
	}
	return titleCaser.String(strings.ToLower(severity))
}

// Walk collects the metadata of all rules below root. A rule defined in Go
// wins over a Rego rule with the same id. The result is sorted by id.
func Walk(root string) ([]RuleMetadata, error) {
	goRules := make(map[string]RuleMetadata)
	regoRules := make(map[string]RuleMetadata)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		switch filepath.Ext(path) {
		case ".go":
			found, err := ParseGoFile(path)
			if err != nil {
				return errors.Wrapf(err, "could not parse go file %s", path)
			}
			collect(goRules, found, path)
		case ".rego":
			found, err := ParseRegoFile(path)
			if err != nil {
				return errors.Wrapf(err, "could not parse rego file %s", path)
			}
			collect(regoRules, found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for id, rule := range regoRules {
		if _, ok := goRules[id]; !ok {
			goRules[id] = rule
		}
	}

	result := make([]RuleMetadata, 0, len(goRules))
	for _, rule := range goRules {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b RuleMetadata) int {
		return strings.Compare(a.AVDID, b.AVDID)
	})
	return result, nil
}

func collect(into map[string]RuleMetadata, found []RuleMetadata, path string) {
	for _, rule := range found {
		if rule.AVDID == "" {
			slog.Debug("skipping rule without id", "file", path)
			continue
		}
		into[rule.AVDID] = rule
	}
}

// ToJSON renders rules as an indented JSON array.
func ToJSON(rules []RuleMetadata) ([]byte, error) {
	b, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal rules")
	}
	return b, nil
}
