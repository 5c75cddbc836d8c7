package keypairs

import (
	"errors"

	apperrors "github.com/runvoy/keyhandler/internal/errors"

	"github.com/aws/smithy-go"
)

// OutcomeKind is the result class of one operation in one region.
type OutcomeKind int

const (
	// OutcomeSuccess means the operation completed.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeSoftFailure is reported and the run continues with the next region.
	OutcomeSoftFailure
	// OutcomeHardFailure aborts the run; remaining regions are not attempted.
	OutcomeHardFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSoftFailure:
		return "soft_failure"
	case OutcomeHardFailure:
		return "hard_failure"
	default:
		return "unknown"
	}
}

// EC2 error codes treated as soft failures.
const (
	ErrorCodeDryRun       = "DryRunOperation"
	ErrorCodeUnauthorized = "UnauthorizedOperation"
)

// Explanations printed under a soft failure.
const (
	ReasonDryRun       = "Operation would have succeeded, but was a dry run."
	ReasonUnauthorized = "Operation failed due to permissions."
)

// Outcome is the classified result of one provider call.
type Outcome struct {
	Kind OutcomeKind
	// Reason is the line printed under "Failed.": the explanation for soft
	// failures, the raw provider error for hard ones.
	Reason string
	Err    error
}

// Classify maps a provider call result to an Outcome.
// Only DryRunOperation and UnauthorizedOperation are soft; any other error is hard.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: OutcomeSuccess}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case ErrorCodeDryRun:
			return Outcome{
				Kind:   OutcomeSoftFailure,
				Reason: ReasonDryRun,
				Err:    apperrors.ErrDryRun(ReasonDryRun, err),
			}
		case ErrorCodeUnauthorized:
			return Outcome{
				Kind:   OutcomeSoftFailure,
				Reason: ReasonUnauthorized,
				Err:    apperrors.ErrUnauthorized(ReasonUnauthorized, err),
			}
		}
	}

	return Outcome{
		Kind:   OutcomeHardFailure,
		Reason: err.Error(),
		Err:    err,
	}
}
