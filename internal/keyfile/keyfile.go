// Package keyfile reads local public key material.
package keyfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/runvoy/keyhandler/internal/errors"

	"golang.org/x/crypto/ssh"
)

// Info describes a parsed public key. It is only used for diagnostics.
type Info struct {
	Type        string
	Comment     string
	Fingerprint string
}

// Read returns the full text of the public key file at path.
// A leading "~/" is expanded to the user's home directory.
// Any failure is a precondition error: nothing can be uploaded without the key material.
func Read(path string) (string, error) {
	resolved := ExpandHome(path)

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrPrecondition(
				fmt.Sprintf("File: '%s' could not be found.", resolved), err)
		}
		return "", apperrors.ErrPrecondition(
			fmt.Sprintf("File: '%s' could not be read.", resolved), err)
	}

	return string(data), nil
}

// Describe parses material as an authorized_keys line.
// ok is false when the material is not in a format the ssh package understands;
// the caller must not treat that as an error, EC2 decides what it accepts.
func Describe(material string) (info Info, ok bool) {
	pub, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(material))
	if err != nil {
		return Info{}, false
	}

	return Info{
		Type:        pub.Type(),
		Comment:     comment,
		Fingerprint: ssh.FingerprintSHA256(pub),
	}, true
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
