package export

import (
	"cloud.google.com/go/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// GCS uploads orders as objects "<prefix>/<fileName>" of one bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCS(client *storage.Client, bucket, prefix string) *GCS {
	return &GCS{
		client: client,
		bucket: strings.TrimSpace(bucket),
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}
}

func (g *GCS) Name() string {
	return "Cloud Storage"
}

func (g *GCS) Export(ctx context.Context, fileName string, body []byte) (string, error) {
	if g.client == nil {
		return "", errors.New("gcs: storage client is nil")
	}
	if g.bucket == "" {
		return "", errors.New("gcs: bucket is empty")
	}
	if err := checkFileName(fileName); err != nil {
		return "", err
	}

	object := g.objectName(fileName)

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentTypeJSON
	// single request upload, orders are small
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("w.Write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("w.Close: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", g.bucket, object), nil
}

func (g *GCS) objectName(fileName string) string {
	if g.prefix == "" {
		return fileName
	}
	return path.Join(g.prefix, fileName)
}

func (g *GCS) Close() error {
	return g.client.Close()
}
