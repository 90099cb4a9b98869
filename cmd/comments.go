package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"novelreader/comments"
	"novelreader/model"
)

type commentsArgs struct {
	NovelID   string
	ChapterID string
	Page      int

	Content   string
	CommentID string
	ReplyToID string

	ItemID   string
	ParentID string
	IsReply  bool
}

var cArgs commentsArgs

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Browse and manage chapter comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of comments for a chapter",
	RunE:  runCommentsList,
}

var commentsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a comment on a chapter",
	RunE:  runCommentsPost,
}

var commentsReplyCmd = &cobra.Command{
	Use:   "reply",
	Short: "Reply to a comment, or to a reply with --reply-to",
	RunE:  runCommentsReply,
}

var commentsLikeCmd = &cobra.Command{
	Use:   "like",
	Short: "Toggle your like on a comment or reply",
	RunE:  runCommentsLike,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a comment or reply you may delete",
	RunE:  runCommentsDelete,
}

func init() {
	for _, c := range []*cobra.Command{commentsListCmd, commentsPostCmd, commentsReplyCmd, commentsLikeCmd, commentsDeleteCmd} {
		c.Flags().StringVarP(&cArgs.NovelID, "novel-id", "n", "", "novel id")
		c.Flags().StringVar(&cArgs.ChapterID, "chapter-id", "", "chapter id")
		commentsCmd.AddCommand(c)
	}
	commentsListCmd.Flags().IntVarP(&cArgs.Page, "page", "p", 1, "page number")
	commentsPostCmd.Flags().StringVarP(&cArgs.Content, "content", "m", "", "comment text")
	commentsReplyCmd.Flags().StringVarP(&cArgs.Content, "content", "m", "", "reply text")
	commentsReplyCmd.Flags().StringVar(&cArgs.CommentID, "comment-id", "", "parent comment id")
	commentsReplyCmd.Flags().StringVar(&cArgs.ReplyToID, "reply-to", "", "user id of the reply being answered")
	commentsLikeCmd.Flags().StringVar(&cArgs.ItemID, "id", "", "comment or reply id")
	commentsDeleteCmd.Flags().StringVar(&cArgs.ItemID, "id", "", "comment or reply id")
	commentsDeleteCmd.Flags().StringVar(&cArgs.ParentID, "parent-id", "", "parent comment id when deleting a reply")
	commentsDeleteCmd.Flags().BoolVar(&cArgs.IsReply, "reply", false, "the id names a reply")
	RootCmd.AddCommand(commentsCmd)
}

// newThread loads page one so the thread has the chapter's comments in
// memory for permission checks and like-set lookups.
func newThread(ctx context.Context, page int) (*comments.Thread, error) {
	if cArgs.NovelID == "" {
		return nil, fmt.Errorf("novel id is required")
	}
	if cArgs.ChapterID == "" {
		return nil, fmt.Errorf("chapter id is required")
	}

	novel, err := client.GetNovel(ctx, cArgs.NovelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load novel: %v", err)
	}

	thread := comments.NewThread(client, novel.ID, cArgs.ChapterID, novel.CreatorID, currentUser)
	thread.SetPageSize(cfg.PageSize)
	if err := thread.Load(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to load comments: %v", err)
	}
	return thread, nil
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	thread, err := newThread(cmd.Context(), cArgs.Page)
	if err != nil {
		return err
	}

	for _, c := range thread.Comments() {
		fmt.Printf("[%s] %s (%d likes)\n    %s\n", c.ID, c.User.PenName, c.LikeCount, c.Content)
		for _, r := range c.Replies {
			target := ""
			if r.ReplyToUser != nil {
				target = fmt.Sprintf(" @%s", r.ReplyToUser.PenName)
			}
			fmt.Printf("    [%s] %s%s (%d likes)\n        %s\n", r.ID, r.User.PenName, target, r.LikeCount, r.Content)
		}
	}
	if thread.ShowPagination() {
		fmt.Printf("page %d of %d (%d comments)\n", thread.Page(), thread.TotalPages(), thread.Total())
	} else {
		fmt.Printf("%d comments\n", thread.Total())
	}
	return nil
}

func runCommentsPost(cmd *cobra.Command, args []string) error {
	thread, err := newThread(cmd.Context(), 1)
	if err != nil {
		return err
	}
	if err := thread.Post(cmd.Context(), cArgs.Content); err != nil {
		return fmt.Errorf("failed to post comment: %v", err)
	}
	fmt.Println(thread.Note())
	return nil
}

func runCommentsReply(cmd *cobra.Command, args []string) error {
	if cArgs.CommentID == "" {
		return fmt.Errorf("comment id is required")
	}
	thread, err := newThread(cmd.Context(), 1)
	if err != nil {
		return err
	}
	if err := thread.Reply(cmd.Context(), cArgs.CommentID, cArgs.Content, model.UserID(cArgs.ReplyToID)); err != nil {
		return fmt.Errorf("failed to post reply: %v", err)
	}
	fmt.Println("reply posted")
	return nil
}

func runCommentsLike(cmd *cobra.Command, args []string) error {
	if cArgs.ItemID == "" {
		return fmt.Errorf("comment id is required")
	}
	thread, err := newThread(cmd.Context(), 1)
	if err != nil {
		return err
	}
	if err := thread.ToggleLike(cmd.Context(), cArgs.ItemID); err != nil {
		return fmt.Errorf("failed to toggle like: %v", err)
	}
	return nil
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	if cArgs.ItemID == "" {
		return fmt.Errorf("comment id is required")
	}
	kind := comments.KindComment
	if cArgs.IsReply {
		if cArgs.ParentID == "" {
			return fmt.Errorf("parent comment id is required when deleting a reply")
		}
		kind = comments.KindReply
	}

	thread, err := newThread(cmd.Context(), 1)
	if err != nil {
		return err
	}

	target := comments.DeleteTarget{ID: cArgs.ItemID, Kind: kind, ParentID: cArgs.ParentID}
	if !thread.RequestDelete(target) {
		return fmt.Errorf("%s", thread.ItemError(cArgs.ItemID))
	}

	fmt.Print("This action is irreversible. Delete? [y/N] ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() || strings.TrimSpace(strings.ToLower(scanner.Text())) != "y" {
		thread.CancelDelete()
		fmt.Println("cancelled")
		return nil
	}

	if err := thread.ConfirmDelete(cmd.Context()); err != nil {
		return fmt.Errorf("failed to delete: %v", err)
	}
	fmt.Println("deleted")
	return nil
}
