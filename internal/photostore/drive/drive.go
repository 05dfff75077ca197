package drive

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mamadbah2/wms/internal/config"
)

const (
	linkTemplate = "https://drive.google.com/open?id=%s"
	chunkSize    = 1024 * 1024
)

// Store uploads photos into one Drive folder.
type Store struct {
	service  *driveapi.Service
	folderID string
	logger   *zap.Logger
}

// NewStore authenticates with the configured OAuth refresh token. Extra
// client options are appended after the token source.
func NewStore(ctx context.Context, cfg config.DriveConfig, logger *zap.Logger, opts ...option.ClientOption) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PictureFolderID == "" {
		return nil, fmt.Errorf("picture folder id must not be empty")
	}

	clientOpts := opts
	if cfg.Enabled() {
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{driveapi.DriveScope},
		}
		ts := oauthCfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
		clientOpts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	}

	service, err := driveapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}

	return &Store{service: service, folderID: cfg.PictureFolderID, logger: logger}, nil
}

// Save uploads r as a new file in the picture folder and returns its id.
func (s *Store) Save(ctx context.Context, name, mimeType string, r io.Reader) (string, error) {
	meta := &driveapi.File{Name: name, Parents: []string{s.folderID}}

	file, err := s.service.Files.Create(meta).
		Media(r, googleapi.ContentType(mimeType), googleapi.ChunkSize(chunkSize)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload %s to drive: %w", name, err)
	}

	s.logger.Info("photo uploaded", zap.String("name", name), zap.String("file_id", file.Id))
	return file.Id, nil
}

// Link returns the shareable URL of an uploaded file.
func (s *Store) Link(id string) string {
	return fmt.Sprintf(linkTemplate, id)
}
