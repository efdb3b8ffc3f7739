package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablomester",
	Short: "A CLI tool for matching tabló photos to a school roster",
	Long: `Tablómester connects to a tabló gallery backend and helps assemble
school composite photos: it matches uploaded portrait files to students
and teachers by filename, uploads photo batches in chunks, and serves a
browser-based review interface for fixing the assignments.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
