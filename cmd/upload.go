package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
	"github.com/tablomester/tablomester/internal/review"
	"github.com/tablomester/tablomester/internal/uploader"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <album-id> <folder-path> [folder-path...]",
	Short: "Upload photos to an album's pending pool",
	Long: `Upload photos from one or more folders into a gallery album.
Files are sent in chunks; a failed chunk is reported but does not stop
the rest of the batch.

By default, only files in the specified folders are uploaded (non-recursive).
Use -r to search recursively in subdirectories.
Supported formats: jpg, jpeg, png, gif, heic, heif, webp, tiff, bmp

Example:
  tablomester upload album-2026a /path/to/photos
  tablomester upload -r album-2026a /path/to/photos  # recursive search`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolP("recursive", "r", false, "Search for photos recursively in subdirectories")
	uploadCmd.Flags().Int("chunk-size", 0, "Files per upload request (overrides UPLOAD_CHUNK_SIZE)")
}

// isImageFile checks if a file has a supported image extension
func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".heic": true,
		".heif": true,
		".webp": true,
		".tiff": true,
		".tif":  true,
		".bmp":  true,
	}
	return supported[ext]
}

// collectImageFiles gathers image files from the given folders.
func collectImageFiles(folderPaths []string, recursive bool) ([]string, error) {
	var filePaths []string
	for _, folderPath := range folderPaths {
		info, err := os.Stat(folderPath)
		if err != nil {
			return nil, fmt.Errorf("cannot access folder %s: %w", folderPath, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", folderPath)
		}

		if recursive {
			err := filepath.WalkDir(folderPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isImageFile(d.Name()) {
					filePaths = append(filePaths, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("cannot walk folder %s: %w", folderPath, err)
			}
		} else {
			entries, err := os.ReadDir(folderPath)
			if err != nil {
				return nil, fmt.Errorf("cannot read folder %s: %w", folderPath, err)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if isImageFile(entry.Name()) {
					filePaths = append(filePaths, filepath.Join(folderPath, entry.Name()))
				}
			}
		}
	}
	return filePaths, nil
}

// progressDone converts pipeline progress into completed bar steps. A failed
// final chunk is counted at its nominal size, which can push the raw sum past
// the batch total, so the result is capped.
func progressDone(p uploader.Progress, total int) int {
	done := p.UploadedCount + p.ErrorCount
	if done > total {
		return total
	}
	return done
}

func runUpload(cmd *cobra.Command, args []string) error {
	albumID := args[0]
	folderPaths := args[1:]
	recursive := mustGetBool(cmd, "recursive")
	chunkSize := mustGetInt(cmd, "chunk-size")

	cfg := config.Load()
	if cfg.Gallery.URL == "" {
		return fmt.Errorf("GALLERY_URL environment variable is required")
	}
	if cfg.Gallery.Token == "" {
		return fmt.Errorf("GALLERY_TOKEN environment variable is required")
	}

	filePaths, err := collectImageFiles(folderPaths, recursive)
	if err != nil {
		return err
	}
	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified folders.")
		return nil
	}

	fmt.Printf("Found %d image(s) to upload from %d folder(s)\n", len(filePaths), len(folderPaths))

	client, err := gallery.NewClient(cfg.Gallery.URL, cfg.Gallery.Token)
	if err != nil {
		return fmt.Errorf("failed to create gallery client: %w", err)
	}

	ctx := context.Background()

	// Verify album exists
	album, err := client.GetAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("failed to get album: %w", err)
	}
	fmt.Printf("Uploading to album: %s\n\n", album.Title)

	uploadBar := progressbar.NewOptions(len(filePaths),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	pipeline := uploader.NewPipeline(func(ctx context.Context, chunk []string) ([]review.UploadedPhoto, error) {
		return client.UploadChunk(ctx, albumID, chunk)
	})
	if chunkSize > 0 {
		pipeline.ChunkSize = chunkSize
	} else {
		pipeline.ChunkSize = cfg.Upload.ChunkSize
	}

	var final uploader.Progress
	processed := 0
	for progress := range pipeline.Run(ctx, filePaths) {
		final = progress
		done := progressDone(progress, len(filePaths))
		uploadBar.Add(done - processed)
		processed = done
	}
	fmt.Println()

	if final.ErrorCount > 0 {
		fmt.Printf("Warning: %d file(s) failed to upload\n", final.ErrorCount)
	}
	if final.UploadedCount == 0 {
		return fmt.Errorf("no files were uploaded successfully")
	}

	fmt.Printf("\nDone! Uploaded %d file(s) to album '%s'\n", final.UploadedCount, album.Title)
	return nil
}
