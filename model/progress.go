package model

import "time"

// ReadingProgress is the remote progress record, also returned by the
// reading-history listing.
type ReadingProgress struct {
	NovelID       string    `json:"novelId"`
	NovelTitle    string    `json:"novelTitle"`
	ChapterID     string    `json:"chapterId"`
	ChapterNumber int       `json:"chapterNumber"`
	VisitedAt     time.Time `json:"visitedAt"`
}
