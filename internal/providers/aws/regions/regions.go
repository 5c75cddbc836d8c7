// Package regions expands a user supplied region specifier into the ordered list of regions to visit.
package regions

import (
	"context"
	"errors"
	"strings"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/providers/aws/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// Lister returns every region the provider reports for EC2, in provider order.
type Lister interface {
	ListRegions(ctx context.Context) ([]string, error)
}

// Resolve expands a region specifier. If the first comma separated token is "all" (any casing) the
// provider's region list is returned; otherwise the lowercased tokens are returned in
// input order, one per token, without deduplication or validation.
func Resolve(ctx context.Context, input string, lister Lister) ([]string, error) {
	tokens := Split(input)

	if tokens[0] != constants.AllRegions {
		return tokens, nil
	}

	if lister == nil {
		return nil, apperrors.ErrConfig("no region lister available to expand 'all'", nil)
	}

	regions, err := lister.ListRegions(ctx)
	if err != nil {
		return nil, apperrors.ErrProvider("failed to list available regions", err)
	}

	return regions, nil
}

// Split lowercases input and splits it on commas. Tokens are trimmed of surrounding
// whitespace; empty tokens are kept so the output length always equals the token count.
func Split(input string) []string {
	tokens := strings.Split(strings.ToLower(input), ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}

// EC2Lister lists regions through ec2:DescribeRegions.
type EC2Lister struct {
	client client.EC2Client
}

// NewEC2Lister creates a lister using an EC2 client bound to any enabled region.
func NewEC2Lister(ec2Client client.EC2Client) *EC2Lister {
	return &EC2Lister{client: ec2Client}
}

// ListRegions returns the regions enabled for the account, in the order EC2 reports them.
// The call never carries the dry-run flag.
func (l *EC2Lister) ListRegions(ctx context.Context) ([]string, error) {
	out, err := l.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, err
	}

	regions := make([]string, 0, len(out.Regions))
	for i := range out.Regions {
		name := aws.ToString(out.Regions[i].RegionName)
		if name == "" {
			continue
		}
		regions = append(regions, name)
	}

	if len(regions) == 0 {
		return nil, errors.New("EC2 reported no regions")
	}

	return regions, nil
}
