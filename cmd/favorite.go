package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type favoriteArgs struct {
	NovelID string
}

var fArgs favoriteArgs

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite novels",
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a novel to your favorites",
	RunE:  runFavoriteAdd,
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a novel from your favorites",
	RunE:  runFavoriteRemove,
}

var favoriteStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a novel is in your favorites",
	RunE:  runFavoriteStatus,
}

func init() {
	for _, c := range []*cobra.Command{favoriteAddCmd, favoriteRemoveCmd, favoriteStatusCmd} {
		c.Flags().StringVarP(&fArgs.NovelID, "novel-id", "n", "", "novel id")
		favoriteCmd.AddCommand(c)
	}
	RootCmd.AddCommand(favoriteCmd)
}

func requireFavoriteArgs() error {
	if fArgs.NovelID == "" {
		return fmt.Errorf("novel id is required")
	}
	if currentUser == nil {
		return fmt.Errorf("login required: run 'novelreader login' first")
	}
	return nil
}

func runFavoriteAdd(cmd *cobra.Command, args []string) error {
	if err := requireFavoriteArgs(); err != nil {
		return err
	}
	if err := client.AddFavorite(cmd.Context(), fArgs.NovelID); err != nil {
		return fmt.Errorf("failed to add favorite: %v", err)
	}
	fmt.Println("added to favorites")
	return nil
}

func runFavoriteRemove(cmd *cobra.Command, args []string) error {
	if err := requireFavoriteArgs(); err != nil {
		return err
	}
	if err := client.RemoveFavorite(cmd.Context(), fArgs.NovelID); err != nil {
		return fmt.Errorf("failed to remove favorite: %v", err)
	}
	fmt.Println("removed from favorites")
	return nil
}

func runFavoriteStatus(cmd *cobra.Command, args []string) error {
	if err := requireFavoriteArgs(); err != nil {
		return err
	}
	favorited, err := client.CheckFavorite(cmd.Context(), fArgs.NovelID)
	if err != nil {
		return fmt.Errorf("failed to check favorite: %v", err)
	}
	if favorited {
		fmt.Println("favorited")
	} else {
		fmt.Println("not favorited")
	}
	return nil
}
