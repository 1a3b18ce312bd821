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
	"context"
	"path/filepath"
)

// ConfigGenerator builds the complete config from a bundler repository root.
type ConfigGenerator struct {
	Root    string
	Scanner *ScannerConfigGenerator
	Rules   *RulesConfigGenerator
}

func NewConfigGenerator(root string) *ConfigGenerator {
	return &ConfigGenerator{
		Root:    root,
		Scanner: NewScannerConfigGenerator(filepath.Join(root, ScannerConfigFilename)),
		Rules:   NewRulesConfigGenerator(filepath.Join(root, RulesFolder)),
	}
}

func (g *ConfigGenerator) Generate(ctx context.Context) (*Config, error) {
	scanners, err := g.Scanner.Generate(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := g.Rules.Generate()
	if err != nil {
		return nil, err
	}

	return &Config{Scanners: *scanners, Rules: *rules}, nil
}
