package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir writes orders into a local directory.
type Dir struct {
	path string
}

func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Name() string {
	return "local folder"
}

func (d *Dir) Export(ctx context.Context, fileName string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkFileName(fileName); err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll: %w", err)
	}

	target := filepath.Join(d.path, fileName)

	// a reader never sees a half written order
	tmp, err := os.CreateTemp(d.path, ".order-*")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("tmp.Close: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("os.Rename: %w", err)
	}

	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	return target, nil
}
