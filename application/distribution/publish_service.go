package distribution

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"voiceshield-media/domain/distribution"
)

// PublishService uploads processed videos to Google Drive and makes them
// shareable by link
type PublishService struct {
	driveClient distribution.DriveClient
	folderID    string
	output      io.Writer
}

// NewPublishService creates a new publish service
func NewPublishService(client distribution.DriveClient, folderID string, output io.Writer) *PublishService {
	if output == nil {
		output = io.Discard
	}
	return &PublishService{
		driveClient: client,
		folderID:    folderID,
		output:      output,
	}
}

// Publish uploads a processed video and sets public sharing permissions.
// An existing file with the same name in the target folder is replaced.
func (s *PublishService) Publish(ctx context.Context, videoPath string) (*distribution.UploadResult, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", videoPath)
	}

	fileName := filepath.Base(videoPath)

	existing, err := s.driveClient.FindFileByName(ctx, s.folderID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing file: %w", err)
	}
	if existing != nil {
		fmt.Fprintf(s.output, "Replacing existing %s (%.1f MB)\n", existing.Name, float64(existing.Size)/1024/1024)
		if err := s.driveClient.DeletePermanently(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete existing file %s: %w", existing.Name, err)
		}
	}

	req := distribution.UploadRequest{
		LocalPath: videoPath,
		FileName:  fileName,
		FolderID:  s.folderID,
		MimeType:  distribution.MimeTypeMP4,
	}

	result, err := s.driveClient.UploadAndShare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload and share %s: %w", fileName, err)
	}

	return result, nil
}
