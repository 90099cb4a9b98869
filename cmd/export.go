package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"novelreader/text"
)

type exportArgs struct {
	NovelID   string
	OutputDir string
}

var eArgs exportArgs

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a novel's chapters as plain-text files",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&eArgs.NovelID, "novel-id", "n", "", "novel id")
	exportCmd.Flags().StringVarP(&eArgs.OutputDir, "output", "o", ".", "output directory")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if eArgs.NovelID == "" {
		return fmt.Errorf("novel id is required")
	}

	novel, err := client.GetNovel(cmd.Context(), eArgs.NovelID)
	if err != nil {
		return fmt.Errorf("failed to load novel: %v", err)
	}
	chapters, err := client.GetChapters(cmd.Context(), eArgs.NovelID)
	if err != nil {
		return fmt.Errorf("failed to load chapters: %v", err)
	}

	if err := text.ExportNovel(cmd.Context(), client, novel, chapters, eArgs.OutputDir); err != nil {
		return fmt.Errorf("failed to export novel: %v", err)
	}
	fmt.Printf("exported %d chapters of %s\n", len(chapters), novel.Title)
	return nil
}
