package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"novelreader/reader"
)

type readArgs struct {
	NovelID     string
	Chapter     int
	Interactive bool
}

var rArgs readArgs

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read a chapter of a novel",
	Long:  "Read a chapter of a novel, resuming from stored progress when no chapter is given",
	RunE:  runRead,
}

func init() {
	readCmd.Flags().StringVarP(&rArgs.NovelID, "novel-id", "n", "", "novel id")
	readCmd.Flags().IntVarP(&rArgs.Chapter, "chapter", "c", 0, "chapter number (0 resumes from progress)")
	readCmd.Flags().BoolVarP(&rArgs.Interactive, "interactive", "i", false, "page through chapters with n/p/q")
	RootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	if rArgs.NovelID == "" {
		return fmt.Errorf("novel id is required")
	}

	session := reader.NewSession(reader.Options{
		API:   client,
		Store: st,
		User:  currentUser,
	})

	ctx := cmd.Context()
	path := reader.FormatPath(reader.SchemeCurrent, rArgs.NovelID, rArgs.Chapter)
	if err := session.Open(ctx, path); err != nil {
		return err
	}
	defer session.Close(ctx)

	printChapter(session)
	if !rArgs.Interactive {
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("\n[n] next  [p] previous  [q] quit")
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "n":
			session.HandleKey(ctx, reader.KeyArrowRight)
			printChapter(session)
		case "p":
			session.HandleKey(ctx, reader.KeyArrowLeft)
			printChapter(session)
		case "q":
			return nil
		}
	}
	return scanner.Err()
}

func printChapter(session *reader.Session) {
	novel := session.Novel()
	chapter, ok := session.CurrentChapter()
	if !ok {
		fmt.Println("this novel has no chapters yet")
		return
	}

	fmt.Printf("\n%s — chapter %d: %s\n\n", novel.Title, chapter.Number, chapter.Title)
	if msg := session.ContentError(); msg != "" {
		fmt.Printf("could not load chapter content: %s\n", msg)
		return
	}
	for _, p := range session.Paragraphs() {
		fmt.Println(p)
		fmt.Println()
	}
	fmt.Printf("— %d/%d —\n", session.Index()+1, len(session.Chapters()))
}
