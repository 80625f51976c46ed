package export

import (
	"bytes"
	"context"
	"fmt"
	"go.uber.org/zap"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Drive uploads orders to the signed in user's Google Drive.
type Drive struct {
	auth     *Authenticator
	folderID string
	logger   *zap.Logger
	// extra client options, used to point the client at a test server
	clientOpts []option.ClientOption
}

type DriveOption func(*Drive)

func WithDriveLogger(logger *zap.Logger) DriveOption {
	return func(d *Drive) { d.logger = logger }
}

func WithClientOptions(opts ...option.ClientOption) DriveOption {
	return func(d *Drive) { d.clientOpts = append(d.clientOpts, opts...) }
}

func NewDrive(auth *Authenticator, folderID string, opts ...DriveOption) *Drive {
	d := &Drive{
		auth:     auth,
		folderID: folderID,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Drive) Name() string {
	return "Google Drive"
}

// Export signs in first when needed, then creates the file.
func (d *Drive) Export(ctx context.Context, fileName string, body []byte) (string, error) {
	if err := checkFileName(fileName); err != nil {
		return "", err
	}

	opts := d.clientOpts
	if d.auth != nil {
		ts, err := d.auth.EnsureSignedIn(ctx)
		if err != nil {
			return "", fmt.Errorf("sign in: %w", err)
		}
		opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("drive.NewService: %w", err)
	}

	meta := &drive.File{
		Name:     fileName,
		MimeType: contentTypeJSON,
	}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	created, err := srv.Files.Create(meta).
		Media(bytes.NewReader(body), googleapi.ContentType(contentTypeJSON)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("files.Create: %w", err)
	}

	d.logger.Debug("order uploaded to drive", zap.String("file", fileName), zap.String("id", created.Id))

	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return "drive:" + created.Id, nil
}
