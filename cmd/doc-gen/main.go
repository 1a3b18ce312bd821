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


// doc-gen renders the markdown reference of the trivy-bundler CLI.
package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const defaultOutDir = "docs/cli"

var (
	headlineRe  = regexp.MustCompile(`(?m)^## trivy-bundler (.+)$`)
	seeAlsoRe   = regexp.MustCompile(`(?s)\n### SEE ALSO\n.*$`)
	codeBlockRe = regexp.MustCompile("(?m)^```\n([ a-z])")
)

// postProcessMarkdown strips the binary name from headlines, drops the SEE ALSO
// section and marks code blocks as shell.
func postProcessMarkdown(text string) string {
	text = headlineRe.ReplaceAllString(text, "## $1")
	text = seeAlsoRe.ReplaceAllString(text, "")
	return codeBlockRe.ReplaceAllString(text, "```shell\n$1")
}

func writeMarkdown(cmd *cobra.Command, filename string) error {
	var buf bytes.Buffer
	if err := doc.GenMarkdownCustom(cmd, &buf, func(s string) string { return s }); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(postProcessMarkdown(buf.String())), 0o644) // nolint:gosec
}

// generateDocs writes one markdown file for cmd and each visible subcommand.
func generateDocs(cmd *cobra.Command, outDir string) error {
	filename := filepath.Join(outDir, cmd.Name()+".md")
	if err := writeMarkdown(cmd, filename); err != nil {
		return err
	}
	slog.Info("generated docs", "file", filename)

	for _, sub := range cmd.Commands() {
		if sub.Hidden || !sub.IsAvailableCommand() {
			continue
		}
		if err := generateDocs(sub, outDir); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	outDir := defaultOutDir
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		slog.Error("could not create docs directory", "err", err, "dir", outDir)
		os.Exit(1)
	}

	if err := generateDocs(commands.RootCmd, outDir); err != nil {
		slog.Error("could not generate docs", "err", err)
		os.Exit(1)
	}
}
