package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tablomester/tablomester/internal/config"
	"github.com/tablomester/tablomester/internal/gallery"
	"github.com/tablomester/tablomester/internal/match"
	"github.com/tablomester/tablomester/internal/uploader"
)

var portraitsCmd = &cobra.Command{
	Use:   "portraits <folder-path>",
	Short: "Upload portrait files directly to matched persons",
	Long: `Matches image files in a folder to the gallery roster by filename and
uploads each matched file as that person's portrait, replacing any previous
one. Ambiguous and unmatched files are reported and skipped.

Use --dry-run to see the matching without uploading anything.

Example:
  tablomester portraits /path/to/portraits
  tablomester portraits --dry-run /path/to/portraits`,
	Args: cobra.ExactArgs(1),
	RunE: runPortraits,
}

func init() {
	rootCmd.AddCommand(portraitsCmd)
	portraitsCmd.Flags().Bool("dry-run", false, "Only print the matching, upload nothing")
}

func runPortraits(cmd *cobra.Command, args []string) error {
	folderPath := args[0]
	dryRun := mustGetBool(cmd, "dry-run")

	cfg := config.Load()
	if cfg.Gallery.URL == "" {
		return fmt.Errorf("GALLERY_URL environment variable is required")
	}
	if cfg.Gallery.Token == "" {
		return fmt.Errorf("GALLERY_TOKEN environment variable is required")
	}

	filePaths, err := collectImageFiles([]string{folderPath}, false)
	if err != nil {
		return err
	}
	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified folder.")
		return nil
	}

	client, err := gallery.NewClient(cfg.Gallery.URL, cfg.Gallery.Token)
	if err != nil {
		return fmt.Errorf("failed to create gallery client: %w", err)
	}

	ctx := context.Background()

	roster, err := client.GetPersons(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	persons := make([]match.Person, 0, len(roster))
	for _, p := range roster {
		persons = append(persons, p.MatchPerson())
	}

	pathByName := make(map[string]string, len(filePaths))
	files := make([]match.FileRef, 0, len(filePaths))
	for _, p := range filePaths {
		name := filepath.Base(p)
		pathByName[name] = p
		files = append(files, match.FileRef{Name: name})
	}

	results := match.MatchFilesToPersons(files, persons)

	var items []uploader.PersonUpload
	var skipped int
	for _, res := range results {
		if res.MatchType != match.MatchTypeMatched {
			fmt.Printf("! %-40s skipped (%s)\n", res.File.Name, res.MatchType)
			skipped++
			continue
		}
		fmt.Printf("  %-40s -> %s (%d%%)\n", res.File.Name, res.PersonName, res.Confidence)
		items = append(items, uploader.PersonUpload{
			PersonID: res.PersonID,
			FilePath: pathByName[res.File.Name],
			Status:   uploader.StatusPending,
		})
	}

	fmt.Printf("\n%d file(s): %d matched, %d skipped\n", len(results), len(items), skipped)

	if dryRun || len(items) == 0 {
		return nil
	}

	fmt.Println("\nUploading portraits...")
	uploaded := uploader.UploadPersonPhotos(ctx, items, client.UploadPersonPhoto, func(item uploader.PersonUpload) {
		if item.Status == uploader.StatusDone {
			fmt.Printf("  done  %s\n", filepath.Base(item.FilePath))
		} else if item.Status == uploader.StatusError {
			fmt.Printf("  FAIL  %s: %s\n", filepath.Base(item.FilePath), item.Error)
		}
	})

	var failed int
	for _, item := range uploaded {
		if item.Status == uploader.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d portrait(s) failed to upload", failed)
	}

	fmt.Printf("\nDone! Uploaded %d portrait(s)\n", len(uploaded))
	return nil
}
