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


package checks

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/l3montree-dev/trivy-bundler/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClone(t *testing.T) {
	t.Run("should shallow clone the pinned tag", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "trivy-checks")
		gitClient := mocks.NewGitClient(t)
		gitClient.On("Clone", mock.Anything, dir, mock.MatchedBy(func(opts *git.CloneOptions) bool {
			return opts.URL == DefaultRepository &&
				opts.ReferenceName == plumbing.ReferenceName("refs/tags/v0.10.5") &&
				opts.SingleBranch &&
				opts.Depth == 1
		})).Return(nil)

		cloned, err := NewCloner(DefaultRepository, dir).WithGitClient(gitClient).WithProgress(io.Discard).Clone(context.Background(), "v0.10.5")
		require.NoError(t, err)
		assert.True(t, cloned)
	})

	t.Run("should do nothing if the directory exists", func(t *testing.T) {
		dir := t.TempDir()
		gitClient := mocks.NewGitClient(t)

		cloned, err := NewCloner(DefaultRepository, dir).WithGitClient(gitClient).WithProgress(io.Discard).Clone(context.Background(), "v0.10.5")
		require.NoError(t, err)
		assert.False(t, cloned)
		gitClient.AssertNotCalled(t, "Clone", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail and clean up if the clone fails", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "trivy-checks")
		gitClient := mocks.NewGitClient(t)
		gitClient.On("Clone", mock.Anything, dir, mock.Anything).Run(func(args mock.Arguments) {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
		}).Return(errors.New("reference not found"))

		_, err := NewCloner(DefaultRepository, dir).WithGitClient(gitClient).WithProgress(io.Discard).Clone(context.Background(), "v9.9.9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reference not found")
		assert.NoDirExists(t, dir)
	})

	t.Run("should require a tag", func(t *testing.T) {
		gitClient := mocks.NewGitClient(t)
		_, err := NewCloner(DefaultRepository, filepath.Join(t.TempDir(), "x")).WithGitClient(gitClient).Clone(context.Background(), "")
		assert.Error(t, err)
	})
}
