package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/runvoy/keyhandler/internal/config"
	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/keyfile"
	"github.com/runvoy/keyhandler/internal/keypairs"
	"github.com/runvoy/keyhandler/internal/logger"
	"github.com/runvoy/keyhandler/internal/output"
	"github.com/runvoy/keyhandler/internal/providers/aws/regions"
	"github.com/runvoy/keyhandler/internal/providers/aws/session"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	keyName string
	dryRun  bool
	verbose bool
	debug   bool
}

func (o *rootOptions) logLevel() slog.Level {
	if o.debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// awsSession is what a run needs from the resolved credentials.
type awsSession interface {
	keypairs.ClientFactory
	Profile() string
	DiscoveryRegion() string
	Identity(ctx context.Context) (*session.Identity, error)
}

// loadSession resolves credentials for a profile. Tests replace it.
var loadSession = func(ctx context.Context, profile string) (awsSession, error) {
	sess, err := session.Load(ctx, profile)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	actions := constants.ActionNames()

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <%s>", constants.ProjectName, strings.Join(actions, "|")),
		Short: "Manage an SSH public key across EC2 regions",
		Long: fmt.Sprintf(`%s - %s
Upload, remove or list an SSH public key pair in every EC2 region, one region at a time`,
			constants.ProjectName, *constants.GetVersion()),
		Example: fmt.Sprintf(`  %[1]s upload -n deploy-key -f ~/.ssh/deploy.pub
  %[1]s delete -n old-key -r eu-west-1,eu-central-1 --dryrun
  %[1]s list -p ops`, constants.ProjectName),
		Version:       *constants.GetVersion(),
		Args:          cobra.MaximumNArgs(1),
		ValidArgs:     actions,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(context.WithValue(cmd.Context(), constants.StartTimeCtxKey, time.Now().UTC()))
			logger.Initialize(constants.CLI, opts.logLevel())

			if opts.verbose {
				output.Infof("CLI build: %s", output.Bold(*constants.GetVersion()))
				output.Infof("Verbose output enabled")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if !opts.verbose {
				return
			}
			if startTime := getStartTimeFromContext(cmd); !startTime.IsZero() {
				output.Infof("Time elapsed: %s", output.Bold(time.Since(startTime).String()))
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.keyName, "keyname", "n", "",
		"Key pair name (required for upload and delete, optional filter for list)")
	flags.StringP("keyfile", "f", config.DefaultKeyFile(), "Path to the public key file to upload")
	flags.StringP("regions", "r", constants.DefaultRegions,
		"Comma separated list of regions, or \"all\" for every region enabled for the account")
	flags.StringP("profile", "p", constants.DefaultProfile, "AWS credentials profile")
	flags.BoolVar(&opts.dryRun, "dryrun", false, "Ask EC2 to validate the request without applying it")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose output")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debugging logs")

	return cmd
}

// Execute runs the root command and exits non-zero on any fatal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func reportError(err error) {
	switch apperrors.GetErrorCode(err) {
	case apperrors.ErrCodeConfig, "":
		output.Errorf("%s", err.Error())
	default:
		output.Errorf("%s", apperrors.GetErrorMessage(err))
	}
	slog.Debug("run failed", "code", apperrors.GetErrorCode(err), "details", apperrors.GetErrorDetails(err))
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log := logger.Initialize(logger.EnvironmentForFormat(cfg.LogFormat), opts.logLevel())

	var action string
	if len(args) > 0 {
		action = args[0]
	}
	run, err := config.NewRunConfig(action, opts.keyName, opts.dryRun, cfg)
	if err != nil {
		return err
	}

	var material string
	if run.Action == constants.ActionUpload {
		if material, err = readKeyMaterial(run.KeyFile, log); err != nil {
			return err
		}
	}

	sess, err := loadSession(ctx, run.Profile)
	if err != nil {
		return err
	}

	regionList, err := regions.Resolve(ctx, run.Regions, regions.NewEC2Lister(sess.EC2(sess.DiscoveryRegion())))
	if err != nil {
		return err
	}
	log.Debug("regions resolved", "input", run.Regions, "count", len(regionList))
	if opts.verbose {
		printSession(ctx, sess, run, regionList)
	}

	summary, err := execute(ctx, keypairs.NewExecutor(sess, output.Stdout, log), run, material, regionList)
	if err != nil {
		return err
	}

	if opts.verbose {
		output.Successf("%s finished in %d regions: %d succeeded, %d skipped",
			run.Action, summary.Attempted(), len(summary.Succeeded), len(summary.SoftFailed))
	}
	return nil
}

func execute(
	ctx context.Context, executor *keypairs.Executor, run config.RunConfig, material string, regionList []string,
) (*keypairs.Summary, error) {
	switch run.Action {
	case constants.ActionUpload:
		return executor.Upload(ctx, run, material, regionList)
	case constants.ActionDelete:
		return executor.Delete(ctx, run, regionList)
	case constants.ActionList:
		return executor.List(ctx, run, regionList)
	default:
		// NewRunConfig rejects unknown actions first; this only guards direct callers.
		return nil, apperrors.ErrUsage(fmt.Sprintf("Action '%s' not recognized.", run.Action), nil)
	}
}

func readKeyMaterial(path string, log *slog.Logger) (string, error) {
	material, err := keyfile.Read(path)
	if err != nil {
		return "", err
	}

	if info, ok := keyfile.Describe(material); ok {
		log.Debug("public key loaded",
			"path", path, "type", info.Type, "fingerprint", info.Fingerprint, "comment", info.Comment)
	} else {
		log.Debug("key file is not an authorized_keys line, sending it unchanged", "path", path)
	}

	return material, nil
}

func printSession(ctx context.Context, sess awsSession, run config.RunConfig, regionList []string) {
	output.Header("Session")
	output.KeyValue("Profile", output.Bold(sess.Profile()))

	if identity, err := sess.Identity(ctx); err != nil {
		output.Warningf("Could not resolve caller identity: %v", err)
	} else {
		output.KeyValue("Account", identity.Account)
		output.KeyValue("Caller", identity.ARN)
		output.KeyValue("User ID", identity.UserID)
	}

	output.KeyValue("Dry run", strconv.FormatBool(run.DryRun))
	output.KeyValue("Regions", strconv.Itoa(len(regionList)))
	output.List(regionList)
}

func getStartTimeFromContext(cmd *cobra.Command) time.Time {
	startTime, ok := cmd.Context().Value(constants.StartTimeCtxKey).(time.Time)
	if !ok {
		return time.Time{}
	}
	return startTime
}

// RootCmd returns the root command for use by tools like doc generators.
func RootCmd() *cobra.Command {
	return rootCmd
}
