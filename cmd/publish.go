package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	appdist "voiceshield-media/application/distribution"
	"voiceshield-media/domain/distribution"
	"voiceshield-media/infrastructure/drive"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a processed video to Google Drive with public sharing",
	Long: `Uploads a processed video to the configured Google Drive folder, makes
it accessible to anyone with the link, and prints the shareable URL.
An existing file with the same name is replaced.

Requires a config file with the google section filled in:
  google:
    credentials_file: credentials.json
    token_file: token.json
    folder_id: <drive folder id>

Example:
  voiceshield publish protected.mp4`,
	Args: cobra.ArbitraryArgs,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: voiceshield publish <file>")
	}

	c := GetConfig()
	if c == nil {
		return fmt.Errorf("configuration not loaded; run 'voiceshield setup' first")
	}
	if c.Google.CredentialsFile == "" || c.Google.FolderID == "" {
		return fmt.Errorf("google credentials_file and folder_id must be configured")
	}

	ctx := cmd.Context()
	client, err := drive.NewClientWithOAuth(ctx, c.Google.CredentialsFile, c.Google.TokenFile)
	if err != nil {
		return fmt.Errorf("failed to create Google Drive client: %w", err)
	}

	return RunPublishWithDependencies(ctx, client, c.Google.FolderID, args[0], os.Stdout)
}

// RunPublishWithDependencies runs the publish command with injected dependencies (for testing)
func RunPublishWithDependencies(
	ctx context.Context,
	driveClient distribution.DriveClient,
	folderID string,
	videoPath string,
	output io.Writer,
) error {
	service := appdist.NewPublishService(driveClient, folderID, output)

	fmt.Fprintf(output, "Uploading %s...\n", filepath.Base(videoPath))
	result, err := service.Publish(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Fprintf(output, "Uploaded successfully!\n")
	fmt.Fprintf(output, "  File ID: %s\n", result.FileID)
	fmt.Fprintf(output, "  Size: %.2f MB\n", float64(result.Size)/1024/1024)
	fmt.Fprintf(output, "  Shareable URL: %s\n", result.ShareableURL)
	return nil
}
