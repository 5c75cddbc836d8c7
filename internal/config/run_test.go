package config

import (
	"path/filepath"
	"testing"

	"github.com/runvoy/keyhandler/internal/constants"
	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		Profile: constants.DefaultProfile,
		Regions: constants.DefaultRegions,
		KeyFile: "/home/user/.ssh/id_rsa.pub",
	}
}

func TestNewRunConfig_Valid(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		keyName string
	}{
		{"upload with key name", "upload", "deploy-key"},
		{"delete with key name", "delete", "old-key"},
		{"list without key name", "list", ""},
		{"list with key name", "list", "deploy-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRunConfig(tt.action, tt.keyName, true, baseConfig())

			require.NoError(t, err)
			assert.Equal(t, constants.Action(tt.action), run.Action)
			assert.Equal(t, tt.keyName, run.KeyName)
			assert.Equal(t, "/home/user/.ssh/id_rsa.pub", run.KeyFile)
			assert.Equal(t, constants.DefaultRegions, run.Regions)
			assert.Equal(t, constants.DefaultProfile, run.Profile)
			assert.True(t, run.DryRun)
		})
	}
}

func TestNewRunConfig_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		keyName string
		mutate  func(*Config)
		message string
	}{
		{
			name:    "unrecognized action",
			action:  "nuke",
			message: "Action 'nuke' not recognized.",
		},
		{
			name:    "action is case sensitive",
			action:  "Upload",
			keyName: "k",
			message: "Action 'Upload' not recognized.",
		},
		{
			name:    "missing action",
			action:  "",
			message: "an action is required (one of upload, delete, list)",
		},
		{
			name:    "upload without key name",
			action:  "upload",
			message: "argument '--keyname / -n' is required for uploading a key.",
		},
		{
			name:    "delete without key name",
			action:  "delete",
			message: "argument '--keyname / -n' is required for removing a key.",
		},
		{
			name:    "upload without key file",
			action:  "upload",
			keyName: "k",
			mutate:  func(c *Config) { c.KeyFile = "" },
			message: "argument '--keyfile / -f' is required for uploading a key.",
		},
		{
			name:    "blank regions",
			action:  "list",
			mutate:  func(c *Config) { c.Regions = "  " },
			message: "argument '--regions / -r' must not be empty.",
		},
		{
			name:    "key name reported before blank regions",
			action:  "delete",
			mutate:  func(c *Config) { c.Regions = "" },
			message: "argument '--keyname / -n' is required for removing a key.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			_, err := NewRunConfig(tt.action, tt.keyName, false, cfg)

			require.Error(t, err)
			testutil.AssertAppErrorCode(t, err, apperrors.ErrCodeUsage)
			assert.Equal(t, tt.message, apperrors.GetErrorMessage(err))
		})
	}
}

func TestNewRunConfig_KeyFileNotNeededOutsideUpload(t *testing.T) {
	cfg := baseConfig()
	cfg.KeyFile = ""

	_, err := NewRunConfig("delete", "old-key", false, cfg)

	assert.NoError(t, err)
}

func TestNewRunConfig_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := baseConfig()
	cfg.KeyFile = "~/keys/deploy.pub"

	run, err := NewRunConfig("upload", "deploy", false, cfg)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "keys", "deploy.pub"), run.KeyFile)
}

func TestNewRunConfig_NilConfigUsesDefaults(t *testing.T) {
	run, err := NewRunConfig("list", "", false, nil)

	require.NoError(t, err)
	assert.Equal(t, constants.DefaultRegions, run.Regions)
	assert.Equal(t, constants.DefaultProfile, run.Profile)
}

func TestRunConfig_IsCopiedByValue(t *testing.T) {
	run, err := NewRunConfig("delete", "old-key", false, baseConfig())
	require.NoError(t, err)

	copied := run
	copied.KeyName = "changed"

	assert.Equal(t, "old-key", run.KeyName)
}

func TestCheckKeyName(t *testing.T) {
	tests := []struct {
		name    string
		action  constants.Action
		keyName string
		message string
	}{
		{"upload without name", constants.ActionUpload, "", "argument '--keyname / -n' is required for uploading a key."},
		{"delete without name", constants.ActionDelete, "", "argument '--keyname / -n' is required for removing a key."},
		{"list without name", constants.ActionList, "", ""},
		{"upload with name", constants.ActionUpload, "deploy-key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckKeyName(tt.action, tt.keyName)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			testutil.AssertAppErrorCode(t, err, apperrors.ErrCodeUsage)
			assert.Equal(t, tt.message, apperrors.GetErrorMessage(err))
		})
	}
}
