package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files whose content is
// already up to date are left untouched so their modification times stay
// stable for build tools watching the directory. It returns the names of
// the files actually written. Filenames must be plain names inside
// outputDir; nothing is written when one is not.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	for _, file := range files {
		if !isPlainName(file.Filename) {
			return nil, fmt.Errorf("refusing to write %q: not a file name inside the output directory", file.Filename)
		}
	}

	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		same, err := sameContent(outputPath, file.Content)
		if err != nil {
			return written, fmt.Errorf("reading existing file %s: %w", file.Filename, err)
		}

		if same {
			continue
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, file.Filename)
	}

	return written, nil
}

func isPlainName(name string) bool {
	return filepath.IsLocal(name) && filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}

func sameContent(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return bytes.Equal(existing, content), nil
}
