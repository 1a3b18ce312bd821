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
	"path/filepath"

	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/config"
	"github.com/l3montree-dev/trivy-bundler/internal/download"
	"github.com/l3montree-dev/trivy-bundler/internal/publish"
	"github.com/spf13/cobra"
)

type uploadScannersCommand struct {
	client publish.PutObjectAPI
}

func newUploadScannersCommand() Command { return uploadScannersCommand{} }

func (uploadScannersCommand) Help() string { return "Upload the extracted scanners to an S3 bucket" }

func (uploadScannersCommand) AddArguments(cmd *cobra.Command) {
	cmd.Long = `Upload the scanner binaries extracted by download-scanners to
s3://<bucket>/<prefix>/<platform>/<binary>. Credentials are read from the
default AWS config chain.`
	cmd.Flags().String("bucket", "", "The bucket to upload the scanners to")
	cmd.Flags().String("prefix", "", "The key prefix, e.g. trivy/0.50.1")
	cmd.Flags().String("region", "", "The AWS region, defaults to the profile region or us-east-1")
	cmd.Flags().String("endpoint", "", "Custom endpoint of an S3 compatible store")
	cmd.Flags().String("profile", "", "The AWS profile to use")
}

func (c uploadScannersCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := config.ParseUploadConfig(); err != nil {
		return err
	}
	uploadConfig := config.RuntimeUploadConfig

	client := c.client
	if client == nil {
		s3Client, err := publish.NewS3Client(ctx, publish.ClientOptions{
			Profile:  uploadConfig.Profile,
			Region:   uploadConfig.Region,
			Endpoint: uploadConfig.Endpoint,
		})
		if err != nil {
			return err
		}
		client = s3Client
	}

	scannersDir := filepath.Join(config.RuntimeBaseConfig.Output, download.ScannersDirName)
	keys, err := publish.NewPublisher(client, uploadConfig.Bucket, uploadConfig.Prefix).Upload(ctx, scannersDir)
	if err != nil {
		return err
	}

	for _, key := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", uploadConfig.Bucket, key)
	}
	return nil
}
