// Package reader implements the client-side reading session: one
// chapter of one novel at a time, with chapter navigation and three
// progress signals kept consistent (in-memory index, local store,
// remote progress record).
package reader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"novelreader/log"
	"novelreader/model"
)

// ErrLoginRequired is returned by actions that need an authenticated
// user. Callers redirect to a login entry point, remembering the
// current path to return to.
var ErrLoginRequired = errors.New("login required")

// scrollAdvanceThreshold is how close to the bottom of the fullscreen
// content region a scroll must get before auto-advancing, in pixels.
const scrollAdvanceThreshold = 120.0

// latestFallbackLimit bounds the "latest novels" listing searched when
// the direct novel lookup fails.
const latestFallbackLimit = 20

// API is the slice of the remote service the session consumes.
type API interface {
	GetNovel(ctx context.Context, novelID string) (*model.Novel, error)
	LatestNovels(ctx context.Context, limit int) ([]model.Novel, error)
	GetChapters(ctx context.Context, novelID string) ([]model.Chapter, error)
	GetChapterContent(ctx context.Context, novelID string, chapterNumber int) (string, error)
	UpdateProgress(ctx context.Context, novelID, chapterID string, chapterNumber int) error
	RecordVisit(ctx context.Context, novelID string) error
	CheckFavorite(ctx context.Context, novelID string) (bool, error)
	AddFavorite(ctx context.Context, novelID string) error
	RemoveFavorite(ctx context.Context, novelID string) error
}

// Store is the local device storage the session persists into.
type Store interface {
	Progress(novelID string) (idx int, ok bool, err error)
	SetProgress(novelID string, idx int) error
	Settings() (model.ReadingSettings, error)
	SetSettings(model.ReadingSettings) error
}

// Options are the explicit dependencies of a session. User is nil when
// nobody is logged in.
type Options struct {
	API   API
	Store Store
	View  View
	User  *model.User
}

type Session struct {
	api   API
	store Store
	view  View
	user  *model.User

	mu         sync.Mutex
	novel      *model.Novel
	chapters   []model.Chapter
	index      int
	paragraphs []string
	contentErr string
	scheme     Scheme
	fullscreen bool
	favorite   bool
	settings   model.ReadingSettings
	mounted    bool
	closed     bool
	// advanceArmed gates scroll-to-advance so one threshold crossing
	// advances exactly once.
	advanceArmed bool
	// loadSeq tags content loads; a response only applies while its
	// tag is still the newest, so a slow earlier response cannot
	// overwrite a faster later one.
	loadSeq uint64
}

func NewSession(opts Options) *Session {
	view := opts.View
	if view == nil {
		view = NopView{}
	}
	return &Session{
		api:      opts.API,
		store:    opts.Store,
		view:     view,
		user:     opts.User,
		settings: model.DefaultReadingSettings(),
	}
}

// Open runs the initialization protocol against the entry permalink;
// its scheme is kept for all paths emitted during the session. Steps that are independently recoverable (favorite
// check, stored progress, settings) never abort the session; a novel
// that cannot be resolved at all, or a chapter list that cannot be
// loaded, is fatal.
func (s *Session) Open(ctx context.Context, path string) error {
	novelID, wantNumber, scheme, err := ParsePath(path)
	if err != nil {
		return fmt.Errorf("failed to open session: %v", err)
	}

	novel, err := s.api.GetNovel(ctx, novelID)
	if err != nil {
		novel = s.novelFromLatest(ctx, novelID)
		if novel == nil {
			return fmt.Errorf("failed to load novel: %v", err)
		}
	}

	chapters, err := s.api.GetChapters(ctx, novelID)
	if err != nil {
		return fmt.Errorf("failed to load chapters: %v", err)
	}

	favorite := false
	if s.user != nil {
		favorite, err = s.api.CheckFavorite(ctx, novelID)
		if err != nil {
			log.Warn("failed to check favorite status", zap.String("novel", novelID), zap.Error(err))
			favorite = false
		}
	}

	index := s.initialIndex(novelID, wantNumber, chapters)

	settings := model.DefaultReadingSettings()
	if s.store != nil {
		if stored, err := s.store.Settings(); err != nil {
			log.Warn("failed to load reading settings", zap.Error(err))
		} else {
			settings = stored
		}
	}

	s.mu.Lock()
	s.novel = novel
	s.chapters = chapters
	s.index = index
	s.scheme = scheme
	s.favorite = favorite
	s.settings = settings
	s.mounted = true
	s.advanceArmed = true
	s.mu.Unlock()

	if s.user != nil {
		go func() {
			if err := s.api.RecordVisit(ctx, novelID); err != nil {
				log.Warn("failed to record visit", zap.String("novel", novelID), zap.Error(err))
			}
		}()
	}

	if len(chapters) > 0 {
		s.load(ctx, index)
	}
	return nil
}

// novelFromLatest is the degraded-data fallback: search a bounded
// latest-novels listing for the id.
func (s *Session) novelFromLatest(ctx context.Context, novelID string) *model.Novel {
	latest, err := s.api.LatestNovels(ctx, latestFallbackLimit)
	if err != nil {
		return nil
	}
	for i := range latest {
		if latest[i].ID == novelID {
			return &latest[i]
		}
	}
	return nil
}

// initialIndex applies the precedence: exact chapter-number match from
// the URL, then the locally stored index when in range, then 0.
func (s *Session) initialIndex(novelID string, wantNumber int, chapters []model.Chapter) int {
	if wantNumber > 0 {
		for i, ch := range chapters {
			if ch.Number == wantNumber {
				return i
			}
		}
	}
	if s.store != nil {
		idx, ok, err := s.store.Progress(novelID)
		if err != nil {
			log.Warn("failed to read stored progress", zap.String("novel", novelID), zap.Error(err))
		} else if ok && idx >= 0 && idx < len(chapters) {
			return idx
		}
	}
	return 0
}

// load fetches and applies chapter content. A response is discarded if
// a newer load started while it was in flight.
func (s *Session) load(ctx context.Context, idx int) {
	s.mu.Lock()
	if idx < 0 || idx >= len(s.chapters) {
		s.mu.Unlock()
		return
	}
	s.loadSeq++
	seq := s.loadSeq
	chapter := s.chapters[idx]
	novelID := s.novel.ID
	scheme := s.scheme
	s.mu.Unlock()

	content, err := s.api.GetChapterContent(ctx, novelID, chapter.Number)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		// Superseded by a later navigation.
		return
	}
	if err != nil {
		log.Warn("failed to load chapter content",
			zap.String("novel", novelID), zap.Int("chapter", chapter.Number), zap.Error(err))
		s.paragraphs = nil
		s.contentErr = err.Error()
		return
	}
	s.paragraphs = SplitParagraphs(content)
	s.contentErr = ""
	s.view.ReplacePath(FormatPath(scheme, novelID, chapter.Number))
}

// ChangeChapter navigates to the chapter at idx. Out-of-range indices
// are a no-op, not an error.
func (s *Session) ChangeChapter(ctx context.Context, idx int) {
	s.mu.Lock()
	if !s.mounted || idx < 0 || idx >= len(s.chapters) {
		s.mu.Unlock()
		return
	}
	s.index = idx
	s.advanceArmed = false
	chapter := s.chapters[idx]
	novelID := s.novel.ID
	fullscreen := s.fullscreen
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SetProgress(novelID, idx); err != nil {
			log.Warn("failed to store progress", zap.String("novel", novelID), zap.Error(err))
		}
	}

	if s.user != nil {
		go func() {
			if err := s.api.UpdateProgress(ctx, novelID, chapter.ID, chapter.Number); err != nil {
				log.Warn("failed to sync progress", zap.String("novel", novelID), zap.Error(err))
			}
		}()
	}

	s.load(ctx, idx)

	region := RegionDocument
	if fullscreen {
		region = RegionFullscreen
	}
	// The target region may not have repainted yet.
	s.view.AfterRender(func() {
		s.view.ScrollToTop(region)
	})
}

func (s *Session) Next(ctx context.Context) {
	s.mu.Lock()
	idx := s.index + 1
	s.mu.Unlock()
	s.ChangeChapter(ctx, idx)
}

func (s *Session) Prev(ctx context.Context) {
	s.mu.Lock()
	idx := s.index - 1
	s.mu.Unlock()
	s.ChangeChapter(ctx, idx)
}

// HandleKey routes keyboard input. Bindings are live only while the
// session is mounted; boundary navigation is a silent no-op.
func (s *Session) HandleKey(ctx context.Context, key Key) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	fullscreen := s.fullscreen
	s.mu.Unlock()

	switch key {
	case KeyArrowLeft:
		s.Prev(ctx)
	case KeyArrowRight:
		s.Next(ctx)
	case KeyEscape:
		if fullscreen {
			s.ExitFullscreen()
		}
	}
}

func (s *Session) EnterFullscreen() {
	s.mu.Lock()
	s.fullscreen = true
	s.advanceArmed = true
	s.mu.Unlock()
}

func (s *Session) ExitFullscreen() {
	s.mu.Lock()
	s.fullscreen = false
	s.mu.Unlock()
}

// ReportScroll feeds scroll positions from the fullscreen content
// region. When the position enters the bottom threshold band the
// session advances to the next chapter exactly once; the trigger
// re-arms only after the scroll leaves the band.
func (s *Session) ReportScroll(ctx context.Context, offset, viewport, total float64) {
	s.mu.Lock()
	if !s.mounted || !s.fullscreen {
		s.mu.Unlock()
		return
	}
	remaining := total - (offset + viewport)
	if remaining > scrollAdvanceThreshold {
		s.advanceArmed = true
		s.mu.Unlock()
		return
	}
	if !s.advanceArmed || s.index >= len(s.chapters)-1 {
		s.mu.Unlock()
		return
	}
	s.advanceArmed = false
	idx := s.index + 1
	s.mu.Unlock()

	s.ChangeChapter(ctx, idx)
}

// ToggleFavorite flips the favorite flag through the remote API. The
// local flag only changes on a successful response.
func (s *Session) ToggleFavorite(ctx context.Context) error {
	if s.user == nil {
		return ErrLoginRequired
	}
	s.mu.Lock()
	novelID := s.novel.ID
	favorite := s.favorite
	s.mu.Unlock()

	var err error
	if favorite {
		err = s.api.RemoveFavorite(ctx, novelID)
	} else {
		err = s.api.AddFavorite(ctx, novelID)
	}
	if err != nil {
		log.Warn("failed to toggle favorite", zap.String("novel", novelID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.favorite = !favorite
	s.mu.Unlock()
	return nil
}

// SetFontSize clamps and persists the whole settings blob.
func (s *Session) SetFontSize(size int) {
	s.updateSettings(func(st *model.ReadingSettings) { st.FontSize = size })
}

func (s *Session) SetLineHeight(height float64) {
	s.updateSettings(func(st *model.ReadingSettings) { st.LineHeight = height })
}

func (s *Session) ToggleSettingsPanel() {
	s.updateSettings(func(st *model.ReadingSettings) { st.PanelOpen = !st.PanelOpen })
}

func (s *Session) updateSettings(apply func(*model.ReadingSettings)) {
	s.mu.Lock()
	apply(&s.settings)
	s.settings = s.settings.Clamped()
	settings := s.settings
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SetSettings(settings); err != nil {
			log.Warn("failed to persist reading settings", zap.Error(err))
		}
	}
}

// Close dismounts the session. For an authenticated user it issues one
// final best-effort progress flush for the displayed chapter.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed || !s.mounted {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mounted = false
	var chapter model.Chapter
	var novelID string
	flush := s.user != nil && s.novel != nil && s.index < len(s.chapters)
	if flush {
		chapter = s.chapters[s.index]
		novelID = s.novel.ID
	}
	s.mu.Unlock()

	if flush {
		if err := s.api.UpdateProgress(ctx, novelID, chapter.ID, chapter.Number); err != nil {
			log.Warn("failed to flush progress", zap.String("novel", novelID), zap.Error(err))
		}
	}
}

// # Accessors

func (s *Session) Novel() *model.Novel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.novel
}

func (s *Session) Chapters() []model.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Chapter, len(s.chapters))
	copy(out, s.chapters)
	return out
}

func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// CurrentChapter returns the displayed chapter; ok is false for an
// empty chapter list.
func (s *Session) CurrentChapter() (model.Chapter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 || s.index >= len(s.chapters) {
		return model.Chapter{}, false
	}
	return s.chapters[s.index], true
}

func (s *Session) Paragraphs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paragraphs))
	copy(out, s.paragraphs)
	return out
}

// ContentError is the inline, recoverable content error; navigation
// stays usable while it is set.
func (s *Session) ContentError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentErr
}

func (s *Session) Fullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

func (s *Session) Favorite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorite
}

func (s *Session) Settings() model.ReadingSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// CurrentPath is the permalink of the displayed chapter in the entry
// scheme, used as the return target for login redirects.
func (s *Session) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.novel == nil || s.index >= len(s.chapters) {
		return ""
	}
	return FormatPath(s.scheme, s.novel.ID, s.chapters[s.index].Number)
}

// User returns the acting user, nil when anonymous.
func (s *Session) User() *model.User {
	return s.user
}
