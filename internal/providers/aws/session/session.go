// Package session establishes the authenticated AWS context shared by a whole run
// and builds region-scoped clients from it.
package session

import (
	"context"
	"fmt"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/providers/aws/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Session holds the SDK configuration resolved for one credentials profile.
// It is safe for sequential reuse; clients built from it are region-scoped.
type Session struct {
	cfg     aws.Config
	profile string
}

// Identity describes the principal the session authenticates as.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

// Load resolves credentials for profile. An empty profile, or the default profile name,
// uses the SDK's ambient resolution chain (environment, shared config, SSO, instance metadata).
// Extra load options are appended after the profile option.
func Load(ctx context.Context, profile string, optFns ...func(*awsConfig.LoadOptions) error) (*Session, error) {
	var awsOpts []func(*awsConfig.LoadOptions) error
	if profile != "" && profile != constants.DefaultProfile {
		awsOpts = append(awsOpts, awsConfig.WithSharedConfigProfile(profile))
	}
	awsOpts = append(awsOpts, optFns...)

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		return nil, apperrors.ErrConfig(
			fmt.Sprintf("failed to load AWS configuration for profile '%s'", profileLabel(profile)), err)
	}

	return New(awsCfg, profile), nil
}

// New wraps an already resolved SDK configuration.
func New(cfg aws.Config, profile string) *Session {
	return &Session{cfg: cfg, profile: profile}
}

// Profile returns the credentials profile the session was loaded with.
func (s *Session) Profile() string {
	return profileLabel(s.profile)
}

// DiscoveryRegion returns the region used for account-wide lookups such as region discovery.
func (s *Session) DiscoveryRegion() string {
	if s.cfg.Region != "" {
		return s.cfg.Region
	}
	return constants.BootstrapRegion
}

// EC2 builds an EC2 client bound to region.
func (s *Session) EC2(region string) client.EC2Client {
	return client.NewEC2ClientAdapter(ec2.NewFromConfig(s.cfg, func(o *ec2.Options) {
		o.Region = region
	}))
}

// STS builds an STS client bound to the discovery region.
func (s *Session) STS() client.STSClient {
	return client.NewSTSClientAdapter(sts.NewFromConfig(s.cfg, func(o *sts.Options) {
		o.Region = s.DiscoveryRegion()
	}))
}

// Identity returns the account and principal the session authenticates as.
func (s *Session) Identity(ctx context.Context) (*Identity, error) {
	return LookupIdentity(ctx, s.STS())
}

// LookupIdentity asks STS who the caller is.
func LookupIdentity(ctx context.Context, stsClient client.STSClient) (*Identity, error) {
	out, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}

	return &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}

func profileLabel(profile string) string {
	if profile == "" {
		return constants.DefaultProfile
	}
	return profile
}
