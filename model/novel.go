package model

type NovelStatus string

const (
	NovelOngoing   NovelStatus = "ongoing"
	NovelPaused    NovelStatus = "paused"
	NovelCompleted NovelStatus = "completed"
)

type Novel struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	AuthorName   string      `json:"authorName"`
	Status       NovelStatus `json:"status"`
	ChapterCount int         `json:"chapterCount"`
	// CreatorID is the platform account that owns the novel. It feeds
	// the comment delete-permission check.
	CreatorID UserID `json:"creatorId"`
}

type Chapter struct {
	ID     string `json:"id"`
	Number int    `json:"chapterNumber"`
	Title  string `json:"title"`
	// IsExtra marks supplementary/side chapters. They are ordered
	// alongside regular chapters for navigation but excluded from the
	// next regular chapter number.
	IsExtra   bool `json:"isExtra"`
	IsPremium bool `json:"isPremium"`
	Views     int  `json:"views"`
}

// NextRegularChapterNumber returns the number the next non-extra
// chapter would take, ignoring extras.
func NextRegularChapterNumber(chapters []Chapter) int {
	max := 0
	for _, ch := range chapters {
		if ch.IsExtra {
			continue
		}
		if ch.Number > max {
			max = ch.Number
		}
	}
	return max + 1
}
