package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"studio-photo-server/modules/client"
	"studio-photo-server/modules/common/utils"
	"studio-photo-server/modules/scene"
)

var (
	errNotImage    = errors.New("Please upload an image file")
	errEmptyCustom = errors.New("custom background description is empty")
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Composite a product image onto a background scene",
	Long: `Upload a product image and save the composited studio photo.

Use --scene for a preset (see "studio-cli scenes") or --custom for a free-text
background. Without either, the default scene is used.`,
	RunE: runCompose,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Describe a product image in one or two sentences",
	RunE:  runAnalyze,
}

func init() {
	composeCmd.Flags().String("image", "", "Product image file (required)")
	composeCmd.Flags().String("scene", scene.DefaultID, "Preset scene id")
	composeCmd.Flags().String("custom", "", "Custom background description")
	composeCmd.Flags().StringP("out", "o", "", "Output PNG file (default studio-<unix-ms>.png)")
	composeCmd.MarkFlagRequired("image")
	composeCmd.MarkFlagsMutuallyExclusive("scene", "custom")

	analyzeCmd.Flags().String("image", "", "Product image file (required)")
	analyzeCmd.MarkFlagRequired("image")
}

func runCompose(cmd *cobra.Command, args []string) error {
	imagePath, _ := cmd.Flags().GetString("image")
	sceneID, _ := cmd.Flags().GetString("scene")
	outPath, _ := cmd.Flags().GetString("out")
	server, _ := cmd.Flags().GetString("server")

	var custom *string
	if cmd.Flags().Changed("custom") {
		v, _ := cmd.Flags().GetString("custom")
		custom = &v
	}

	key, err := sceneKey(sceneID, custom)
	if err != nil {
		return err
	}

	imageB64, err := readImageFile(imagePath)
	if err != nil {
		return err
	}

	backgroundPrompt := scene.Resolve(key)
	fmt.Fprintf(cmd.ErrOrStderr(), "🎨 Composing %s on %q...\n", imagePath, utils.TruncateString(backgroundPrompt, 60))

	result, err := client.New(server).ProcessImage(cmd.Context(), imageB64, backgroundPrompt)
	if err != nil {
		return err
	}

	png, err := utils.DecodeBase64Image(result.Image)
	if err != nil {
		return fmt.Errorf("server returned an invalid image: %w", err)
	}

	if outPath == "" {
		outPath = defaultOutputName(time.Now())
	}
	if err := os.WriteFile(outPath, png, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved %s (%d bytes)\n", outPath, len(png))
	if result.ImageURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "🔗 %s\n", result.ImageURL)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	imagePath, _ := cmd.Flags().GetString("image")
	server, _ := cmd.Flags().GetString("server")

	imageB64, err := readImageFile(imagePath)
	if err != nil {
		return err
	}

	description, err := client.New(server).Analyze(cmd.Context(), imageB64)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), description)
	return nil
}

// sceneKey - 플래그 값으로 scene key 결정 (custom이 우선)
func sceneKey(sceneID string, custom *string) (string, error) {
	if custom != nil {
		key, ok := scene.CustomKey(*custom)
		if !ok {
			return "", errEmptyCustom
		}
		return key, nil
	}

	if _, ok := scene.Lookup(sceneID); !ok {
		return "", fmt.Errorf("unknown scene %q (see \"studio-cli scenes\")", sceneID)
	}
	return sceneID, nil
}

// readImageFile - 이미지 파일만 허용, base64로 반환
func readImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utils.IsImage(data) {
		return "", errNotImage
	}
	return utils.EncodeBase64(data), nil
}

func defaultOutputName(now time.Time) string {
	return fmt.Sprintf("studio-%d.png", now.UnixMilli())
}
