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


package commands

import (
	"fmt"
	"net/http"

	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/config"
	"github.com/l3montree-dev/trivy-bundler/internal/genconfig"
	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v any) error {
	out, err := genconfig.ToJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func newScannerConfigGenerator() *genconfig.ScannerConfigGenerator {
	g := genconfig.NewScannerConfigGenerator(config.RuntimeBaseConfig.ScannerConfigPath())
	g.BaseURL = config.RuntimeBaseConfig.ReleaseURL
	g.Client = &http.Client{Timeout: config.RuntimeBaseConfig.TimeoutDuration()}
	return g
}

type generateConfigCommand struct{}

func newGenerateConfigCommand() Command { return generateConfigCommand{} }

func (generateConfigCommand) Help() string { return "Generate general configuration" }

func (generateConfigCommand) AddArguments(cmd *cobra.Command) {
	cmd.Long = `Merge the scanner configuration (with validated download links) and the rules
configuration into a single JSON document printed to stdout.`
}

func (generateConfigCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	g := genconfig.NewConfigGenerator(config.RuntimeBaseConfig.Root)
	g.Scanner = newScannerConfigGenerator()

	cfg, err := g.Generate(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, cfg)
}

type generateScannerConfigCommand struct{}

func newGenerateScannerConfigCommand() Command { return generateScannerConfigCommand{} }

func (generateScannerConfigCommand) Help() string { return "Generate scanner configuration" }

func (generateScannerConfigCommand) AddArguments(cmd *cobra.Command) {}

func (generateScannerConfigCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	cfg, err := newScannerConfigGenerator().Generate(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, cfg)
}

type generateRulesConfigCommand struct{}

func newGenerateRulesConfigCommand() Command { return generateRulesConfigCommand{} }

func (generateRulesConfigCommand) Help() string { return "Generate rules configuration" }

func (generateRulesConfigCommand) AddArguments(cmd *cobra.Command) {}

func (generateRulesConfigCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := genconfig.NewRulesConfigGenerator(config.RuntimeBaseConfig.RulesConfigPath()).Generate()
	if err != nil {
		return err
	}
	return printJSON(cmd, cfg)
}
