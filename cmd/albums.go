package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
)

var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List the composite albums of the programme",
	Long:  `Lists the gallery albums the access token can see, with photo and pending counts.`,
	RunE:  runAlbums,
}

func init() {
	rootCmd.AddCommand(albumsCmd)
}

func runAlbums(cmd *cobra.Command, args []string) error {
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

	albums, err := client.GetAlbums(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get albums: %w", err)
	}

	if len(albums) == 0 {
		fmt.Println("No albums found.")
		return nil
	}

	fmt.Printf("Found %d album(s):\n\n", len(albums))
	for _, album := range albums {
		fmt.Printf("  %s\n", album.Title)
		fmt.Printf("    ID:      %s\n", album.ID)
		fmt.Printf("    Type:    %s\n", album.Type)
		fmt.Printf("    Photos:  %d assigned, %d pending\n\n", album.PhotoCount, album.PendingCount)
	}

	return nil
}
