package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/keyfile"

	"github.com/go-playground/validator/v10"
)

// RunConfig is the immutable input of a single invocation.
// It is built once by NewRunConfig and passed by value afterwards.
type RunConfig struct {
	Action  constants.Action `validate:"required,oneof=upload delete list"`
	KeyName string
	KeyFile string           `validate:"required_if=Action upload"`
	Regions string           `validate:"required"`
	Profile string
	DryRun  bool
}

// NewRunConfig validates the command line input against the loaded settings
// and returns the RunConfig for the run. Validation failures are usage errors.
func NewRunConfig(action, keyName string, dryRun bool, cfg *Config) (RunConfig, error) {
	if cfg == nil {
		cfg = &Config{Profile: constants.DefaultProfile, Regions: constants.DefaultRegions}
	}

	run := RunConfig{
		Action:  constants.Action(action),
		KeyName: keyName,
		KeyFile: keyfile.ExpandHome(cfg.KeyFile),
		Regions: strings.TrimSpace(cfg.Regions),
		Profile: cfg.Profile,
		DryRun:  dryRun,
	}

	err := validate.Struct(&run)
	if err != nil && firstFailedField(err) == "Action" {
		return RunConfig{}, usageError(run, err)
	}
	if keyErr := CheckKeyName(run.Action, run.KeyName); keyErr != nil {
		return RunConfig{}, keyErr
	}
	if err != nil {
		return RunConfig{}, usageError(run, err)
	}

	return run, nil
}

// CheckKeyName returns a usage error when action targets a single key pair and keyName is empty.
func CheckKeyName(action constants.Action, keyName string) error {
	if action.RequiresKeyName() && keyName == "" {
		return apperrors.ErrUsage(fmt.Sprintf("argument '--keyname / -n' is required for %s a key.",
			actionGerund(action)), nil)
	}
	return nil
}

func firstFailedField(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return validationErrs[0].Field()
	}
	return ""
}

func usageError(run RunConfig, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apperrors.ErrUsage("invalid arguments", err)
	}

	fe := validationErrs[0]
	switch fe.Field() {
	case "Action":
		if run.Action == "" {
			return apperrors.ErrUsage(fmt.Sprintf("an action is required (one of %s)",
				strings.Join(constants.ActionNames(), ", ")), nil)
		}
		return apperrors.ErrUsage(fmt.Sprintf("Action '%s' not recognized.", run.Action), nil)
	case "KeyFile":
		return apperrors.ErrUsage("argument '--keyfile / -f' is required for uploading a key.", nil)
	case "Regions":
		return apperrors.ErrUsage("argument '--regions / -r' must not be empty.", nil)
	default:
		return apperrors.ErrUsage("invalid arguments", err)
	}
}

func actionGerund(action constants.Action) string {
	switch action {
	case constants.ActionUpload:
		return "uploading"
	case constants.ActionDelete:
		return "removing"
	default:
		return "listing"
	}
}
