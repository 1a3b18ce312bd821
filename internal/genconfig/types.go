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


// Package genconfig builds the JSON configuration shipped with the scanner
// bundle from the YAML files of the bundler repository.
package genconfig

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	ScannerConfigFilename = "scanner_config.yml"
	RulesFolder           = "rules-config"
	// CategoryIaC is the only scan category so far.
	CategoryIaC = "iac"
)

type ScannerConfig struct {
	ScannerVersion string            `json:"scanner_version" mapstructure:"scanner_version"`
	ScannerDlLinks map[string]string `json:"scanner_dl_links" mapstructure:"scanner_dl_links"`
	RulesVersion   *string           `json:"rules_version" mapstructure:"rules_version"`
	// TrivyChecksVersion is only used to pin the checks repository and is not part of the emitted config.
	TrivyChecksVersion string `json:"-" mapstructure:"trivy_checks_version"`
}

type ScannersConfig struct {
	IaC ScannerConfig `json:"iac" mapstructure:"iac"`
}

type RuleConfig struct {
	Severity *string `json:"severity" mapstructure:"severity"`
}

// RuleConfigWithDisabled is the shape of a single rule override file.
type RuleConfigWithDisabled struct {
	Severity *string `mapstructure:"severity"`
	Disabled *bool   `mapstructure:"disabled"`
}

func (r RuleConfigWithDisabled) IsDisabled() bool {
	return r.Disabled != nil && *r.Disabled
}

type CategoryRuleConfig struct {
	RulesDisabled   []string              `json:"rules_disabled" mapstructure:"rules_disabled"`
	Rules           map[string]RuleConfig `json:"rules" mapstructure:"rules"`
	MinimumSeverity *string               `json:"minimum_severity" mapstructure:"minimum_severity"`
}

type RulesConfig struct {
	IaC CategoryRuleConfig `json:"iac" mapstructure:"iac"`
}

type Config struct {
	Scanners ScannersConfig `json:"scanners"`
	Rules    RulesConfig    `json:"rules"`
}

// ToJSON renders v as a single line of JSON.
func ToJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "could not marshal config")
	}
	return string(b), nil
}
