package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/testutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedFiles writes isolated AWS config and credentials files with an "ops" profile.
func sharedFiles(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config")
	credsFile := filepath.Join(dir, "credentials")

	require.NoError(t, os.WriteFile(configFile, []byte(
		"[default]\nregion = us-west-2\n\n[profile ops]\nregion = eu-north-1\n"), 0o600))
	require.NoError(t, os.WriteFile(credsFile, []byte(
		"[default]\naws_access_key_id = AKIDDEFAULT\naws_secret_access_key = secret\n\n"+
			"[ops]\naws_access_key_id = AKIDOPS\naws_secret_access_key = secret\n"), 0o600))

	t.Setenv("AWS_CONFIG_FILE", configFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credsFile)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_SESSION_TOKEN", "")
	t.Setenv("AWS_CA_BUNDLE", "")
	t.Setenv("AWS_ENDPOINT_URL", "")
	t.Setenv("AWS_ENDPOINT_URL_EC2", "")
	t.Setenv("AWS_USE_FIPS_ENDPOINT", "")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "")
}

func TestLoad_NamedProfile(t *testing.T) {
	sharedFiles(t)

	s, err := Load(context.Background(), "ops")

	require.NoError(t, err)
	assert.Equal(t, "ops", s.Profile())
	assert.Equal(t, "eu-north-1", s.DiscoveryRegion())
}

func TestLoad_DefaultProfileUsesAmbientChain(t *testing.T) {
	sharedFiles(t)

	s, err := Load(context.Background(), constants.DefaultProfile)

	require.NoError(t, err)
	assert.Equal(t, constants.DefaultProfile, s.Profile())
	assert.Equal(t, "us-west-2", s.DiscoveryRegion())
}

func TestLoad_EmptyProfile(t *testing.T) {
	sharedFiles(t)

	s, err := Load(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, constants.DefaultProfile, s.Profile())
}

func TestLoad_UnknownProfile(t *testing.T) {
	sharedFiles(t)

	_, err := Load(context.Background(), "does-not-exist")

	require.Error(t, err)
	testutil.AssertAppErrorCode(t, err, apperrors.ErrCodeConfig)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestDiscoveryRegion_FallsBackToBootstrap(t *testing.T) {
	s := New(aws.Config{}, "")

	assert.Equal(t, constants.BootstrapRegion, s.DiscoveryRegion())
}

func TestEC2_ClientIsRegionScoped(t *testing.T) {
	// The host environment may carry loader settings, such as a CA bundle that cannot be
	// applied to a custom HTTP client; sharedFiles must neutralise them.
	ambient := map[string]map[string]string{
		"clean environment": {},
		"ca bundle and endpoint overrides": {
			"AWS_CA_BUNDLE":         "/etc/ssl/certs/ca-certificates.crt",
			"AWS_ENDPOINT_URL":      "http://localhost:4566",
			"AWS_USE_FIPS_ENDPOINT": "true",
		},
	}

	for name, env := range ambient {
		t.Run(name, func(t *testing.T) {
			for key, value := range env {
				t.Setenv(key, value)
			}
			sharedFiles(t)

			var hosts []string
			stub := testutil.StubHTTPClient(func(req *http.Request) (*http.Response, error) {
				hosts = append(hosts, req.URL.Host)
				return testutil.EC2XMLResponse(
					`<DescribeKeyPairsResponse xmlns="http://ec2.amazonaws.com/doc/2016-11-15/">` +
						`<requestId>r</requestId><keySet/></DescribeKeyPairsResponse>`), nil
			})

			s, err := Load(context.Background(), "ops",
				awsConfig.WithHTTPClient(stub),
				awsConfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
			)
			require.NoError(t, err)

			for _, region := range []string{"ap-south-1", "sa-east-1"} {
				_, err = s.EC2(region).DescribeKeyPairs(context.Background(), &ec2.DescribeKeyPairsInput{})
				require.NoError(t, err)
			}

			assert.Equal(t, []string{"ec2.ap-south-1.amazonaws.com", "ec2.sa-east-1.amazonaws.com"}, hosts)
		})
	}
}

type mockSTSClient struct {
	getCallerIdentityFunc func(ctx context.Context, in *sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockSTSClient) GetCallerIdentity(
	ctx context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	return m.getCallerIdentityFunc(ctx, in)
}

func TestLookupIdentity(t *testing.T) {
	stsClient := &mockSTSClient{
		getCallerIdentityFunc: func(_ context.Context, _ *sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error) {
			return &sts.GetCallerIdentityOutput{
				Account: aws.String("123456789012"),
				Arn:     aws.String("arn:aws:iam::123456789012:user/ops"),
				UserId:  aws.String("AIDAEXAMPLE"),
			}, nil
		},
	}

	id, err := LookupIdentity(context.Background(), stsClient)

	require.NoError(t, err)
	assert.Equal(t, &Identity{
		Account: "123456789012",
		ARN:     "arn:aws:iam::123456789012:user/ops",
		UserID:  "AIDAEXAMPLE",
	}, id)
}

func TestLookupIdentity_Error(t *testing.T) {
	stsClient := &mockSTSClient{
		getCallerIdentityFunc: func(_ context.Context, _ *sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error) {
			return nil, errors.New("expired token")
		},
	}

	_, err := LookupIdentity(context.Background(), stsClient)

	assert.EqualError(t, err, "expired token")
}
