// Package keypairs runs key pair actions region by region.
//
// Every action goes through the same loop: announce the region, make one provider
// call, classify the result, then either continue or abort. Soft failures (dry run,
// missing permission) are printed and the loop moves on; any other failure is printed
// raw and ends the run, leaving later regions untouched.
package keypairs

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/logger"
	"github.com/runvoy/keyhandler/internal/output"
	"github.com/runvoy/keyhandler/internal/providers/aws/client"
)

// ClientFactory builds an EC2 client bound to a region.
type ClientFactory interface {
	EC2(region string) client.EC2Client
}

// Summary records how each attempted region ended. It is only returned when no
// region failed hard.
type Summary struct {
	Action     constants.Action
	Succeeded  []string
	SoftFailed []string
}

// Attempted returns the number of regions the run touched.
func (s *Summary) Attempted() int {
	return len(s.Succeeded) + len(s.SoftFailed)
}

// Executor runs actions against a sequence of regions, one at a time.
type Executor struct {
	clients ClientFactory
	out     io.Writer
	logger  *slog.Logger
}

// NewExecutor creates an Executor printing progress to out.
// A nil out writes to output.Stdout and a nil logger uses slog.Default().
func NewExecutor(clients ClientFactory, out io.Writer, log *slog.Logger) *Executor {
	if out == nil {
		out = output.Stdout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{clients: clients, out: out, logger: log}
}

// regionOp is one action's contribution to the shared loop.
type regionOp struct {
	action constants.Action
	// name is used in the abort message, e.g. "key import".
	name string
	// begin prints what precedes the provider call: a progress prefix or a header.
	begin func(w io.Writer, region string)
	// call performs the provider call and returns what to print on success.
	call func(ctx context.Context, ec2Client client.EC2Client) (func(w io.Writer), error)
}

func (e *Executor) forEachRegion(ctx context.Context, regions []string, op regionOp) (*Summary, error) {
	summary := &Summary{Action: op.action}

	for _, region := range regions {
		regionCtx := logger.ContextWithRegion(ctx, region)
		log := logger.DeriveRegionLogger(regionCtx, e.logger)

		op.begin(e.out, region)
		succeed, err := op.call(regionCtx, e.clients.EC2(region))
		outcome := Classify(err)

		switch outcome.Kind {
		case OutcomeSuccess:
			succeed(e.out)
			summary.Succeeded = append(summary.Succeeded, region)
			log.Debug("region completed", "action", op.action)
		case OutcomeSoftFailure:
			e.printFailure(outcome.Reason)
			summary.SoftFailed = append(summary.SoftFailed, region)
			log.Debug("region skipped", "action", op.action, "code", apperrors.GetErrorCode(outcome.Err))
		default:
			e.printFailure(outcome.Reason)
			log.Debug("aborting run", "action", op.action, "error", err)
			return nil, apperrors.ErrProvider(fmt.Sprintf("%s failed in %s", op.name, region), err)
		}
	}

	return summary, nil
}

func (e *Executor) printFailure(reason string) {
	_, _ = fmt.Fprintln(e.out, output.Red("Failed."))
	_, _ = fmt.Fprintln(e.out, reason)
	_, _ = fmt.Fprintln(e.out)
}

func printSuccess(w io.Writer) {
	_, _ = fmt.Fprintln(w, output.Green("Success."))
	_, _ = fmt.Fprintln(w)
}
