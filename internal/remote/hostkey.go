package remote

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"log"
	"os"

	gossh "golang.org/x/crypto/ssh"
)

// EnsureHostKey generates an ed25519 host key at path if none exists and
// returns the key's SHA256 fingerprint.
func EnsureHostKey(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeHostKey(path); err != nil {
			return "", fmt.Errorf("generate host key %s: %w", path, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(data)
	if err != nil {
		return "", fmt.Errorf("parse host key %s: %w", path, err)
	}
	return gossh.FingerprintSHA256(signer.PublicKey()), nil
}

func writeHostKey(path string) error {
	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	return writeKeyFile(path, func(w io.Writer) error {
		return pem.Encode(w, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
	})
}

// writeKeyFile creates path with owner-only permissions and fills it with
// encode. A failed write removes the file so the next start generates a
// fresh key instead of parsing a truncated one.
func writeKeyFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return encode(f)
}
