package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tablomester/tablomester/internal/match"
)

var matchCmd = &cobra.Command{
	Use:   "match <roster.yaml> <folder-path>",
	Short: "Match photo files in a folder against a roster",
	Long: `Match image files in a folder to the persons of a roster file by
filename. No gallery connection is needed; this is a dry run for checking
how well a batch of files is named before uploading it.

The roster file lists student and teacher names:

  students:
    - Kovács János
    - Nagy Péter
  teachers:
    - Szabó Éva

Example:
  tablomester match roster.yaml /path/to/photos`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().Bool("unmatched-only", false, "Only print files that did not match")
}

// rosterFile is the YAML shape of a roster listing.
type rosterFile struct {
	Students []string `yaml:"students"`
	Teachers []string `yaml:"teachers"`
}

// loadRoster reads a roster YAML file into match candidates. IDs are assigned
// by position, students first.
func loadRoster(path string) ([]match.Person, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided roster path
	if err != nil {
		return nil, fmt.Errorf("cannot read roster file %s: %w", path, err)
	}

	var roster rosterFile
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("cannot parse roster file %s: %w", path, err)
	}

	var persons []match.Person
	id := 1
	for _, name := range roster.Students {
		persons = append(persons, match.Person{ID: id, Name: name})
		id++
	}
	for _, name := range roster.Teachers {
		persons = append(persons, match.Person{ID: id, Name: name})
		id++
	}

	if len(persons) == 0 {
		return nil, fmt.Errorf("roster file %s contains no persons", path)
	}
	return persons, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	rosterPath := args[0]
	folderPath := args[1]
	unmatchedOnly := mustGetBool(cmd, "unmatched-only")

	persons, err := loadRoster(rosterPath)
	if err != nil {
		return err
	}

	filePaths, err := collectImageFiles([]string{folderPath}, false)
	if err != nil {
		return err
	}
	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified folder.")
		return nil
	}

	files := make([]match.FileRef, 0, len(filePaths))
	for _, p := range filePaths {
		files = append(files, match.FileRef{Name: filepath.Base(p)})
	}

	results := match.MatchFilesToPersons(files, persons)

	var matched, ambiguous, unmatched int
	for _, res := range results {
		switch res.MatchType {
		case match.MatchTypeMatched:
			matched++
			if !unmatchedOnly {
				fmt.Printf("  %-40s -> %s (%d%%)\n", res.File.Name, res.PersonName, res.Confidence)
			}
		case match.MatchTypeAmbiguous:
			ambiguous++
			fmt.Printf("? %-40s -> %s (%d%%, ambiguous)\n", res.File.Name, res.PersonName, res.Confidence)
		case match.MatchTypeUnmatched:
			unmatched++
			fmt.Printf("! %-40s -> no match\n", res.File.Name)
		}
	}

	fmt.Printf("\n%d file(s): %d matched, %d ambiguous, %d unmatched\n",
		len(results), matched, ambiguous, unmatched)

	if unmatched > 0 || ambiguous > 0 {
		fmt.Println("Rename the flagged files or fix the assignments in the web review.")
	}
	return nil
}
