package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"studio-photo-server/modules/client"
	"studio-photo-server/modules/scene"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List background scene presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := scene.Presets()

		// --remote: 서버 목록 사용
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			server, _ := cmd.Flags().GetString("server")
			var err error
			presets, err = client.New(server).Scenes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch scenes: %w", err)
			}
		}

		printScenes(cmd.OutOrStdout(), presets)
		return nil
	},
}

func init() {
	scenesCmd.Flags().Bool("remote", false, "Fetch the preset list from the server")
}

func printScenes(out io.Writer, presets []scene.Preset) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEFAULT")
	for _, p := range presets {
		def := ""
		if p.ID == scene.DefaultID {
			def = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, def)
	}
	w.Flush()
}
