// Package text exports a novel's chapters as plain-text files for
// offline reading.
package text

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"novelreader/model"
	"novelreader/reader"
	"novelreader/utils"
)

// ContentFetcher fetches one chapter body by number.
type ContentFetcher interface {
	GetChapterContent(ctx context.Context, novelID string, chapterNumber int) (string, error)
}

// ExportNovel writes one numbered .txt file per chapter into a
// directory named after the novel under outputPath. An existing export
// of the same novel is replaced.
func ExportNovel(ctx context.Context, fetcher ContentFetcher, novel *model.Novel, chapters []model.Chapter, outputPath string) error {
	dir := filepath.Join(outputPath, utils.CleanFileName(novel.Title))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear output directory: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	for i, chapter := range chapters {
		content, err := fetcher.GetChapterContent(ctx, novel.ID, chapter.Number)
		if err != nil {
			return fmt.Errorf("failed to fetch chapter %d: %v", chapter.Number, err)
		}
		paragraphs := reader.SplitParagraphs(content)
		name := fmt.Sprintf("%03d-%s.txt", i+1, utils.CleanFileName(chapter.Title))
		body := strings.Join(paragraphs, "\n\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			return fmt.Errorf("failed to write chapter file: %v", err)
		}
	}
	return nil
}
