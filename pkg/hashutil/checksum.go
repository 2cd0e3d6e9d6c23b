// Package hashutil computes the content digests recorded in the
// deployment cache.
package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Checksum returns the SHA256 digest of the given bytes as a 64-character
// hex string.
func Checksum(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// FileChecksum calculates the SHA256 checksum of a file
func FileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
