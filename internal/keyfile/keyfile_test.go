package keyfile

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/runvoy/keyhandler/internal/errors"
	"github.com/runvoy/keyhandler/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func authorizedKey(t *testing.T, comment string) (string, ssh.PublicKey) {
	t.Helper()
	pubKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pubKey)
	require.NoError(t, err)

	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub))) + " " + comment + "\n"
	return line, sshPub
}

func TestRead(t *testing.T) {
	line, _ := authorizedKey(t, "deploy@ci")
	path := filepath.Join(t.TempDir(), "id_ed25519.pub")
	require.NoError(t, os.WriteFile(path, []byte(line), 0o600))

	got, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, line, got, "material is returned unmodified")
}

func TestRead_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pub")

	_, err := Read(path)

	require.Error(t, err)
	testutil.AssertAppErrorCode(t, err, apperrors.ErrCodePrecondition)
	assert.Equal(t, "File: '"+path+"' could not be found.", apperrors.GetErrorMessage(err))
}

func TestRead_Directory(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(dir)

	require.Error(t, err)
	testutil.AssertAppErrorCode(t, err, apperrors.ErrCodePrecondition)
}

func TestRead_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ssh"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ssh", "id_rsa.pub"), []byte("material"), 0o600))

	got, err := Read("~/.ssh/id_rsa.pub")

	require.NoError(t, err)
	assert.Equal(t, "material", got)
}

func TestDescribe(t *testing.T) {
	line, pub := authorizedKey(t, "deploy@ci")

	info, ok := Describe(line)

	require.True(t, ok)
	assert.Equal(t, ssh.KeyAlgoED25519, info.Type)
	assert.Equal(t, "deploy@ci", info.Comment)
	assert.Equal(t, ssh.FingerprintSHA256(pub), info.Fingerprint)
}

func TestDescribe_UnparseableIsNotAnError(t *testing.T) {
	info, ok := Describe("not a key")

	assert.False(t, ok)
	assert.Equal(t, Info{}, info)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "a.pub"), ExpandHome("~/a.pub"))
	assert.Equal(t, "/abs/a.pub", ExpandHome("/abs/a.pub"))
	assert.Equal(t, "~other/a.pub", ExpandHome("~other/a.pub"))
}
