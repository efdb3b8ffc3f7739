package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
)

var clearCmd = &cobra.Command{
	Use:   "clear <album-id>",
	Short: "Delete an album's pending photos",
	Long: `Deletes all uploaded but unassigned photos from an album's pending
pool. Assigned photos are not touched. Asks for confirmation unless --yes
is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	albumID := args[0]
	skipConfirm := mustGetBool(cmd, "yes")

	cfg := config.Load()
	if cfg.Gallery.URL == "" {
		return fmt.Errorf("GALLERY_URL environment variable is required")
	}
	if cfg.Gallery.Token == "" {
		return fmt.Errorf("GALLERY_TOKEN environment variable is required")
	}

	client, err := gallery.NewClient(cfg.Gallery.URL, cfg.Gallery.Token)
	if err != nil {
		return fmt.Errorf("failed to create gallery client: %w", err)
	}

	ctx := context.Background()

	album, err := client.GetAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}

	if album.PendingCount == 0 {
		fmt.Printf("Album '%s' has no pending photos.\n", album.Title)
		return nil
	}

	if !skipConfirm {
		fmt.Printf("This will delete %d pending photo(s) from album '%s'. Continue? [y/N] ", album.PendingCount, album.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := client.DeletePendingPhotos(ctx, albumID, nil); err != nil {
		return fmt.Errorf("failed to delete pending photos: %w", err)
	}

	fmt.Printf("Deleted %d pending photo(s) from album '%s'\n", album.PendingCount, album.Title)
	return nil
}
