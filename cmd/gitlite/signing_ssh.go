package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlite/pkg/object"
	"github.com/odvcencio/gitlite/pkg/repo"
	"golang.org/x/crypto/ssh"
)

// signingDomain prefixes every signed message so a commit signature can
// never be replayed as an SSH signature over unrelated data.
const signingDomain = "gitlite-commit-v1"

// signingKeyEnv names a key file when --sign-key is given no path.
const signingKeyEnv = "GITLITE_SIGNING_KEY"

// signedMessage derives the bytes that are actually signed. Rather than
// signing the raw commit serialization, the signature covers the object
// key the unsigned commit would hash to, so it is pinned to the store's
// content addressing: any change to the signed headers or message
// changes the key and invalidates the signature.
func signedMessage(payload []byte) []byte {
	key := object.HashObject(object.TypeCommit, payload)
	return []byte(signingDomain + " " + string(key))
}

// loadCommitSigner opens the SSH private key at keyPath (or a
// discovered default) and returns a signer producing the single-line
// sshsig header value "v1 <format> <pubkey-b64> <sig-b64>", along with
// the key path that was used.
func loadCommitSigner(keyPath string) (repo.CommitSigner, string, error) {
	resolved, err := findSigningKey(keyPath)
	if err != nil {
		return nil, "", err
	}

	pemBytes, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("signing key %s: %w", resolved, err)
	}
	sshSigner, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, "", fmt.Errorf("signing key %s: %w", resolved, err)
	}
	pubEncoded := base64.StdEncoding.EncodeToString(sshSigner.PublicKey().Marshal())

	signer := func(payload []byte) (string, error) {
		sig, err := sshSigner.Sign(rand.Reader, signedMessage(payload))
		if err != nil {
			return "", fmt.Errorf("sign with %s: %w", resolved, err)
		}
		return strings.Join([]string{
			"v1",
			sig.Format,
			pubEncoded,
			base64.StdEncoding.EncodeToString(sig.Blob),
		}, " "), nil
	}
	return signer, resolved, nil
}

// verifyCommitSignature checks a commit's sshsig header against the
// commit's own content. It returns the verified public key so callers
// can report who signed.
func verifyCommitSignature(c *object.CommitObj) (ssh.PublicKey, error) {
	value, ok := c.Header(object.SignatureHeader)
	if !ok {
		return nil, fmt.Errorf("commit carries no %s header", object.SignatureHeader)
	}

	fields := strings.Split(value, " ")
	if len(fields) != 4 || fields[0] != "v1" {
		return nil, fmt.Errorf("malformed %s header", object.SignatureHeader)
	}
	pubBytes, err := base64.StdEncoding.DecodeString(fields[2])
	if err != nil {
		return nil, fmt.Errorf("malformed %s public key: %w", object.SignatureHeader, err)
	}
	pub, err := ssh.ParsePublicKey(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("malformed %s public key: %w", object.SignatureHeader, err)
	}
	sigBlob, err := base64.StdEncoding.DecodeString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("malformed %s signature: %w", object.SignatureHeader, err)
	}

	sig := &ssh.Signature{Format: fields[1], Blob: sigBlob}
	message := signedMessage(object.CommitSigningPayload(c))
	if err := pub.Verify(message, sig); err != nil {
		return nil, fmt.Errorf("signature does not match commit content: %w", err)
	}
	return pub, nil
}

// findSigningKey picks the private key file to sign with: an explicit
// path wins, then the GITLITE_SIGNING_KEY environment variable, then
// the first id_* private key under ~/.ssh.
func findSigningKey(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return expandHome(p)
	}
	if p := strings.TrimSpace(os.Getenv(signingKeyEnv)); p != "" {
		return expandHome(p)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate signing key: %w", err)
	}
	sshDir := filepath.Join(home, ".ssh")
	entries, err := os.ReadDir(sshDir)
	if err != nil {
		return "", fmt.Errorf("locate signing key: %w (pass --sign-key or set %s)", err, signingKeyEnv)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "id_") || strings.HasSuffix(name, ".pub") {
			continue
		}
		return filepath.Join(sshDir, name), nil
	}
	return "", fmt.Errorf("locate signing key: no id_* private key under %s (pass --sign-key or set %s)", sshDir, signingKeyEnv)
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
	}
	return path, nil
}
