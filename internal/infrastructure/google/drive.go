package google

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveStore uploads submission attachments into a fixed Drive folder and
// hands back long-lived shareable links. It implements the public BlobStore
// port.
type DriveStore struct {
	logger   *log.Logger
	svc      *drive.Service
	folderID string
}

// NewDriveStore builds the Drive service from service-account credentials.
func NewDriveStore(ctx context.Context, logger *log.Logger, credentialsJSON []byte, folderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init drive service: %w", err)
	}
	return &DriveStore{logger: logger, svc: svc, folderID: folderID}, nil
}

// Upload stores one attachment under the configured folder, named by its
// original filename, and returns the web link. A public-read grant is
// attempted afterwards but its failure is swallowed: the folder usually
// already shares its permissions down.
func (s *DriveStore) Upload(ctx context.Context, att domain.Attachment) (string, error) {
	meta := &drive.File{
		Name:    att.Filename,
		Parents: []string{s.folderID},
	}

	call := s.svc.Files.Create(meta).
		Fields("id", "webViewLink", "webContentLink").
		Context(ctx)
	if att.ContentType != "" {
		call = call.Media(bytes.NewReader(att.Data), googleapi.ContentType(att.ContentType))
	} else {
		call = call.Media(bytes.NewReader(att.Data))
	}

	created, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("create drive file %q: %w", att.Filename, err)
	}

	grant := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := s.svc.Permissions.Create(created.Id, grant).Context(ctx).Do(); err != nil && s.logger != nil {
		s.logger.Printf("public-read grant failed for drive file %s: %v", created.Id, err)
	}

	link := created.WebViewLink
	if link == "" {
		link = created.WebContentLink
	}
	if link == "" {
		return "", errors.New("drive returned no shareable link")
	}
	return link, nil
}
