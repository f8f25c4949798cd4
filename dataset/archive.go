package dataset

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// readSource returns the uncompressed bytes of a dataset file. Archives are
// unpacked in memory; the file on disk is left untouched.
func readSource(filePath string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".zip":
		return readZipArchive(filePath)
	case ".gz":
		return readStream(filePath, func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return readStream(filePath, func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return os.ReadFile(filePath)
}

func readStream(filePath string, wrap func(io.Reader) (io.Reader, error)) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := wrap(file)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", filePath, err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", filePath, err)
	}
	return buf.Bytes(), nil
}

// readZipArchive extracts the largest file of the archive.
func readZipArchive(filePath string) ([]byte, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return nil, fmt.Errorf("zip archive %s has no files", filePath)
	}

	rc, err := largestFile.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
