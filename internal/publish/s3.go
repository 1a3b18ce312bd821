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


// Package publish uploads the extracted scanner binaries to an S3 bucket.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/l3montree-dev/trivy-bundler/internal/platform"
	"github.com/pkg/errors"
)

const defaultRegion = "us-east-1"

// PutObjectAPI is the part of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ClientOptions struct {
	Profile string
	Region  string
	// Endpoint points the client at an S3 compatible store. Path style addressing is used if set.
	Endpoint string
}

// NewS3Client builds an S3 client from the default AWS config chain.
func NewS3Client(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not load aws config")
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type Publisher struct {
	Bucket string
	Prefix string

	client PutObjectAPI
}

func NewPublisher(client PutObjectAPI, bucket, prefix string) *Publisher {
	return &Publisher{Bucket: bucket, Prefix: prefix, client: client}
}

// Key returns the object key of the scanner binary of a release.
func (p *Publisher) Key(release platform.Release) string {
	return path.Join(p.Prefix, string(release.Platform), release.BinaryName)
}

// Upload puts the scanner binary of every platform found in scannersDir into
// the bucket and returns the written keys. All binaries must be present.
func (p *Publisher) Upload(ctx context.Context, scannersDir string) ([]string, error) {
	releases := platform.All()

	// check first, so a missing binary does not leave a half published bucket
	for _, release := range releases {
		binary := filepath.Join(scannersDir, string(release.Platform), release.BinaryName)
		if _, err := os.Stat(binary); err != nil {
			return nil, errors.Wrapf(err, "scanner for %s is missing, run download-scanners first", release.Platform)
		}
	}

	keys := make([]string, 0, len(releases))
	for _, release := range releases {
		key := p.Key(release)
		if err := p.put(ctx, filepath.Join(scannersDir, string(release.Platform), release.BinaryName), key); err != nil {
			return keys, err
		}
		slog.Info("uploaded scanner", "platform", release.Platform, "bucket", p.Bucket, "key", key)
		keys = append(keys, key)
	}
	return keys, nil
}

func (p *Publisher) put(ctx context.Context, file, key string) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "could not open scanner")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "could not stat scanner")
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return errors.Wrapf(err, "could not upload %s", fmt.Sprintf("s3://%s/%s", p.Bucket, key))
	}
	return nil
}
