package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoSQLFiles = errors.New("no .sql files found")

// ReadPath loads SQL text from a file, or from every *.sql file in a
// directory concatenated in name order.
func ReadPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema path: %w", err)
	}

	if !info.IsDir() {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read schema file %s: %w", path, err)
		}
		return string(content), nil
	}

	files, err := SQLFiles(path)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read schema file %s: %w", file, err)
		}
		parts = append(parts, string(content))
	}
	return strings.Join(parts, "\n"), nil
}

// SQLFiles lists the *.sql files directly inside dir, sorted by name.
func SQLFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list schema files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSQLFiles, dir)
	}
	sort.Strings(files)
	return files, nil
}

func ReadReader(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read schema input: %w", err)
	}
	return string(content), nil
}
