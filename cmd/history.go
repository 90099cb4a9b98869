package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type historyArgs struct {
	NovelID string
}

var hArgs historyArgs

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your reading history",
	RunE:  runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one novel from your reading history",
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete your whole reading history",
	RunE:  runHistoryClear,
}

func init() {
	historyDeleteCmd.Flags().StringVarP(&hArgs.NovelID, "novel-id", "n", "", "novel id")
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	RootCmd.AddCommand(historyCmd)
}

func requireLogin() error {
	if currentUser == nil {
		return fmt.Errorf("login required: run 'novelreader login' first")
	}
	return nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	history, err := client.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load history: %v", err)
	}
	if len(history) == 0 {
		fmt.Println("no reading history")
		return nil
	}
	for _, h := range history {
		fmt.Printf("%s — chapter %d (%s) [%s]\n", h.NovelTitle, h.ChapterNumber, h.VisitedAt.Format("2006-01-02 15:04"), h.NovelID)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if hArgs.NovelID == "" {
		return fmt.Errorf("novel id is required")
	}
	if err := client.DeleteHistory(cmd.Context(), hArgs.NovelID); err != nil {
		return fmt.Errorf("failed to delete history entry: %v", err)
	}
	fmt.Println("deleted")
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if err := client.ClearHistory(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %v", err)
	}
	fmt.Println("history cleared")
	return nil
}
