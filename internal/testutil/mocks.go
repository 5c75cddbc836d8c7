package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// MockEC2Client is a function-field mock of the EC2 key pair API.
// Every call is recorded in Calls as "<Operation>".
type MockEC2Client struct {
	ImportKeyPairFunc    func(ctx context.Context, in *ec2.ImportKeyPairInput) (*ec2.ImportKeyPairOutput, error)
	DeleteKeyPairFunc    func(ctx context.Context, in *ec2.DeleteKeyPairInput) (*ec2.DeleteKeyPairOutput, error)
	DescribeKeyPairsFunc func(ctx context.Context, in *ec2.DescribeKeyPairsInput) (*ec2.DescribeKeyPairsOutput, error)
	DescribeRegionsFunc  func(ctx context.Context, in *ec2.DescribeRegionsInput) (*ec2.DescribeRegionsOutput, error)

	mu    sync.Mutex
	Calls []string
}

func (m *MockEC2Client) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
}

// ImportKeyPair implements the EC2 key pair API.
func (m *MockEC2Client) ImportKeyPair(
	ctx context.Context, in *ec2.ImportKeyPairInput, _ ...func(*ec2.Options),
) (*ec2.ImportKeyPairOutput, error) {
	m.record("ImportKeyPair")
	if m.ImportKeyPairFunc != nil {
		return m.ImportKeyPairFunc(ctx, in)
	}
	return &ec2.ImportKeyPairOutput{KeyName: in.KeyName}, nil
}

// DeleteKeyPair implements the EC2 key pair API.
func (m *MockEC2Client) DeleteKeyPair(
	ctx context.Context, in *ec2.DeleteKeyPairInput, _ ...func(*ec2.Options),
) (*ec2.DeleteKeyPairOutput, error) {
	m.record("DeleteKeyPair")
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, in)
	}
	return &ec2.DeleteKeyPairOutput{}, nil
}

// DescribeKeyPairs implements the EC2 key pair API.
func (m *MockEC2Client) DescribeKeyPairs(
	ctx context.Context, in *ec2.DescribeKeyPairsInput, _ ...func(*ec2.Options),
) (*ec2.DescribeKeyPairsOutput, error) {
	m.record("DescribeKeyPairs")
	if m.DescribeKeyPairsFunc != nil {
		return m.DescribeKeyPairsFunc(ctx, in)
	}
	return &ec2.DescribeKeyPairsOutput{}, nil
}

// DescribeRegions implements the EC2 key pair API.
func (m *MockEC2Client) DescribeRegions(
	ctx context.Context, in *ec2.DescribeRegionsInput, _ ...func(*ec2.Options),
) (*ec2.DescribeRegionsOutput, error) {
	m.record("DescribeRegions")
	if m.DescribeRegionsFunc != nil {
		return m.DescribeRegionsFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}
