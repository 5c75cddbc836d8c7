package keypairs

import (
	"context"
	"fmt"
	"io"

	"github.com/runvoy/keyhandler/internal/config"
	"github.com/runvoy/keyhandler/internal/constants"
	"github.com/runvoy/keyhandler/internal/providers/aws/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// KeyPair is a key pair as reported by EC2.
type KeyPair struct {
	Name        string
	Fingerprint string
}

// Upload imports material under run.KeyName into every region.
func (e *Executor) Upload(
	ctx context.Context, run config.RunConfig, material string, regions []string,
) (*Summary, error) {
	if err := config.CheckKeyName(constants.ActionUpload, run.KeyName); err != nil {
		return nil, err
	}

	return e.forEachRegion(ctx, regions, regionOp{
		action: constants.ActionUpload,
		name:   "key import",
		begin: func(w io.Writer, region string) {
			_, _ = fmt.Fprintf(w, "Importing key '%s' to: %s --- ", run.KeyName, region)
		},
		call: func(ctx context.Context, ec2Client client.EC2Client) (func(io.Writer), error) {
			_, err := ec2Client.ImportKeyPair(ctx, &ec2.ImportKeyPairInput{
				KeyName:           aws.String(run.KeyName),
				PublicKeyMaterial: []byte(material),
				DryRun:            aws.Bool(run.DryRun),
			})
			return printSuccess, err
		},
	})
}

// Delete removes run.KeyName from every region.
func (e *Executor) Delete(ctx context.Context, run config.RunConfig, regions []string) (*Summary, error) {
	if err := config.CheckKeyName(constants.ActionDelete, run.KeyName); err != nil {
		return nil, err
	}

	return e.forEachRegion(ctx, regions, regionOp{
		action: constants.ActionDelete,
		name:   "key removal",
		begin: func(w io.Writer, region string) {
			_, _ = fmt.Fprintf(w, "Removing key '%s' from: %s --- ", run.KeyName, region)
		},
		call: func(ctx context.Context, ec2Client client.EC2Client) (func(io.Writer), error) {
			_, err := ec2Client.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
				KeyName: aws.String(run.KeyName),
				DryRun:  aws.Bool(run.DryRun),
			})
			return printSuccess, err
		},
	})
}

// List prints the key pairs of every region, filtered to run.KeyName when set.
func (e *Executor) List(ctx context.Context, run config.RunConfig, regions []string) (*Summary, error) {
	return e.forEachRegion(ctx, regions, regionOp{
		action: constants.ActionList,
		name:   "key listing",
		begin: func(w io.Writer, region string) {
			_, _ = fmt.Fprintf(w, "%s Public Keys available in: %s %s\n",
				constants.RegionBannerFill, region, constants.RegionBannerFill)
		},
		call: func(ctx context.Context, ec2Client client.EC2Client) (func(io.Writer), error) {
			keys, err := describeKeyPairs(ctx, ec2Client, run.KeyName, run.DryRun)
			if err != nil {
				return nil, err
			}
			return func(w io.Writer) {
				for _, key := range keys {
					_, _ = fmt.Fprintf(w, "%s - %s\n", key.Name, key.Fingerprint)
				}
				_, _ = fmt.Fprintln(w)
			}, nil
		},
	})
}

// describeKeyPairs lists the key pairs of one region. A name narrows the result with a
// key-name filter, so an unknown name yields an empty list rather than an error.
func describeKeyPairs(
	ctx context.Context, ec2Client client.EC2Client, keyName string, dryRun bool,
) ([]KeyPair, error) {
	input := &ec2.DescribeKeyPairsInput{
		DryRun: aws.Bool(dryRun),
	}
	if keyName != "" {
		input.Filters = []types.Filter{
			{Name: aws.String("key-name"), Values: []string{keyName}},
		}
	}

	out, err := ec2Client.DescribeKeyPairs(ctx, input)
	if err != nil {
		return nil, err
	}

	keys := make([]KeyPair, 0, len(out.KeyPairs))
	for i := range out.KeyPairs {
		info := &out.KeyPairs[i]
		keys = append(keys, KeyPair{
			Name:        aws.ToString(info.KeyName),
			Fingerprint: aws.ToString(info.KeyFingerprint),
		})
	}

	return keys, nil
}
