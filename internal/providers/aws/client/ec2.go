// Package client defines the narrow AWS SDK interfaces used by keyhandler
// and adapters wrapping the real SDK clients.
package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EC2Client defines the interface for EC2 operations used across AWS provider packages.
// This interface makes the code easier to test by allowing mock implementations.
type EC2Client interface {
	ImportKeyPair(
		ctx context.Context,
		params *ec2.ImportKeyPairInput,
		optFns ...func(*ec2.Options),
	) (*ec2.ImportKeyPairOutput, error)
	DeleteKeyPair(
		ctx context.Context,
		params *ec2.DeleteKeyPairInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DeleteKeyPairOutput, error)
	DescribeKeyPairs(
		ctx context.Context,
		params *ec2.DescribeKeyPairsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeKeyPairsOutput, error)
	DescribeRegions(
		ctx context.Context,
		params *ec2.DescribeRegionsInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeRegionsOutput, error)
}

var _ EC2Client = (*EC2ClientAdapter)(nil)

// EC2ClientAdapter wraps the AWS SDK EC2 client to implement EC2Client interface.
// Errors are wrapped with %w so SDK API errors remain reachable through errors.As.
type EC2ClientAdapter struct {
	client *ec2.Client
}

// NewEC2ClientAdapter creates a new adapter wrapping the AWS SDK EC2 client.
func NewEC2ClientAdapter(client *ec2.Client) *EC2ClientAdapter {
	return &EC2ClientAdapter{client: client}
}

// ImportKeyPair wraps the AWS SDK ImportKeyPair operation.
func (a *EC2ClientAdapter) ImportKeyPair(
	ctx context.Context,
	params *ec2.ImportKeyPairInput,
	optFns ...func(*ec2.Options),
) (*ec2.ImportKeyPairOutput, error) {
	result, err := a.client.ImportKeyPair(ctx, params, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to import key pair: %w", err)
	}
	return result, nil
}

// DeleteKeyPair wraps the AWS SDK DeleteKeyPair operation.
func (a *EC2ClientAdapter) DeleteKeyPair(
	ctx context.Context,
	params *ec2.DeleteKeyPairInput,
	optFns ...func(*ec2.Options),
) (*ec2.DeleteKeyPairOutput, error) {
	result, err := a.client.DeleteKeyPair(ctx, params, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete key pair: %w", err)
	}
	return result, nil
}

// DescribeKeyPairs wraps the AWS SDK DescribeKeyPairs operation.
func (a *EC2ClientAdapter) DescribeKeyPairs(
	ctx context.Context,
	params *ec2.DescribeKeyPairsInput,
	optFns ...func(*ec2.Options),
) (*ec2.DescribeKeyPairsOutput, error) {
	result, err := a.client.DescribeKeyPairs(ctx, params, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to describe key pairs: %w", err)
	}
	return result, nil
}

// DescribeRegions wraps the AWS SDK DescribeRegions operation.
func (a *EC2ClientAdapter) DescribeRegions(
	ctx context.Context,
	params *ec2.DescribeRegionsInput,
	optFns ...func(*ec2.Options),
) (*ec2.DescribeRegionsOutput, error) {
	result, err := a.client.DescribeRegions(ctx, params, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}
	return result, nil
}
