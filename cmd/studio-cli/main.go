package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "studio-cli",
	Short: "Studio Photo CLI - turn product snapshots into studio photos",
	Long: `studio-cli talks to a running studio-photo-server.

It resolves a background scene, uploads a product image and saves the
composited studio photo.

Examples:
  studio-cli scenes
  studio-cli compose --image mug.jpg --scene marble-surface
  studio-cli compose --image mug.jpg --custom "on a mossy rock in a forest"
  studio-cli analyze --image mug.jpg`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(analyzeCmd)

	rootCmd.PersistentFlags().String("server", envOr("STUDIO_SERVER_URL", "http://localhost:8080"), "Server base URL")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
