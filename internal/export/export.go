// Package export stores placed orders outside of the cart store: Google
// Drive, Google Cloud Storage or a local directory.
package export

import (
	"cloud.google.com/go/storage"
	"context"
	"fmt"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const contentTypeJSON = "application/json"

// New builds the exporter selected by cfg.Target. The drive target signs in
// interactively through in/out when no cached token exists.
func New(ctx context.Context, cfg config.ExportConfig, in io.Reader, out io.Writer, logger *zap.Logger) (port.OrderExporter, error) {
	switch cfg.Target {
	case config.ExportDir:
		return NewDir(cfg.Dir), nil
	case config.ExportGCS:
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage.NewClient: %w", err)
		}
		return NewGCS(client, cfg.Bucket, cfg.Prefix), nil
	case config.ExportDrive:
		auth, err := NewAuthenticatorFromFile(cfg.CredentialsFile, cfg.TokenFile, in, out)
		if err != nil {
			return nil, err
		}
		return NewDrive(auth, cfg.FolderID, WithDriveLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unknown export target %q", cfg.Target)
	}
}

func checkFileName(fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return fmt.Errorf("file name is empty")
	}
	if fileName != filepath.Base(fileName) || strings.ContainsRune(fileName, os.PathSeparator) {
		return fmt.Errorf("file name %q must not contain a path", fileName)
	}
	return nil
}
