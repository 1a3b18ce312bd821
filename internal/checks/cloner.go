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


// Package checks clones the upstream checks repository at a pinned tag.
package checks

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
)

const (
	DefaultRepository = "https://github.com/aquasecurity/trivy-checks.git"
	DefaultDir        = "trivy-checks"
)

// GitClient clones a repository into dir.
type GitClient interface {
	Clone(ctx context.Context, dir string, opts *git.CloneOptions) error
}

type goGitClient struct{}

func (goGitClient) Clone(ctx context.Context, dir string, opts *git.CloneOptions) error {
	_, err := git.PlainCloneContext(ctx, dir, false, opts)
	return err
}

type Cloner struct {
	Repository string
	Dir        string

	git      GitClient
	progress io.Writer
}

func NewCloner(repository, dir string) *Cloner {
	return &Cloner{
		Repository: repository,
		Dir:        dir,
		git:        goGitClient{},
		progress:   os.Stderr,
	}
}

// WithGitClient replaces the go-git backed client.
func (c *Cloner) WithGitClient(client GitClient) *Cloner {
	c.git = client
	return c
}

func (c *Cloner) WithProgress(w io.Writer) *Cloner {
	c.progress = w
	return c
}

// Exists reports whether the checks repository is already checked out.
func (c *Cloner) Exists() bool {
	_, err := os.Stat(c.Dir)
	return err == nil
}

// Clone checks out tag into Dir with a shallow single branch clone. It does
// nothing if Dir already exists, regardless of the tag checked out there.
func (c *Cloner) Clone(ctx context.Context, tag string) (bool, error) {
	if tag == "" {
		return false, errors.New("no tag to clone given")
	}
	if c.Exists() {
		slog.Info("repository already cloned", "dir", c.Dir)
		return false, nil
	}

	slog.Info("cloning repository", "repository", c.Repository, "tag", tag)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(c.progress))
	s.Suffix = " Cloning " + c.Repository + " at " + tag
	s.Start()
	defer s.Stop()

	err := c.git.Clone(ctx, c.Dir, &git.CloneOptions{
		URL:           c.Repository,
		ReferenceName: plumbing.NewTagReferenceName(tag),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
	if err != nil {
		// go-git leaves a partial checkout behind on failure
		if rmErr := os.RemoveAll(c.Dir); rmErr != nil {
			slog.Warn("could not remove partial checkout", "dir", c.Dir, "err", rmErr)
		}
		return false, errors.Wrapf(err, "could not clone %s at %s", c.Repository, tag)
	}
	return true, nil
}
