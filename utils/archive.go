// utils/archive.go
package utils

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// ValidateModArchive checks that an uploaded mod file is a readable zip/jar
// and that no entry escapes the archive root (path traversal protection).
func ValidateModArchive(fileHeader *multipart.FileHeader) error {
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	readerAt, ok := file.(io.ReaderAt)
	if !ok {
		return fmt.Errorf("upload does not support random access")
	}
	r, err := zip.NewReader(readerAt, fileHeader.Size)
	if err != nil {
		return fmt.Errorf("not a valid zip archive: %w", err)
	}
	for _, f := range r.File {
		name := f.Name
		if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
			return fmt.Errorf("illegal file path in archive: %s", name)
		}
	}
	return nil
}

// FileSHA256 hashes an uploaded file so clients can verify their download.
func FileSHA256(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
