// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/graphdiff/internal/log"
)

type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option overrides part of the default credential and region chain.
type Option func(*options)

// WithProfile selects a shared config profile. Empty keeps AWS_PROFILE.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region. Empty keeps the environment's region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer replaces the SDK's default retryer.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadConfig loads the SDK configuration from the shell environment and
// shared config files, then applies opts.
func LoadConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	log.Debugf("loading aws config: profile=%q region=%q", o.profile, o.region)
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, err
	}
	return cfg, nil
}

// NewS3 returns an S3 client for cfg.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithS3BaseEndpoint points the client at an S3 compatible endpoint, such as
// a local MinIO, using path style addressing.
func WithS3BaseEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}
