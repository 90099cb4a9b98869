package reader_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelreader/model"
	"novelreader/reader"
)

type progressCall struct {
	novelID   string
	chapterID string
	number    int
}

type fakeAPI struct {
	novel       *model.Novel
	novelErr    error
	latest      []model.Novel
	latestErr   error
	chapters    []model.Chapter
	chaptersErr error
	contentFn   func(novelID string, number int) (string, error)
	favorite    bool
	favoriteErr error
	addErr      error
	removeErr   error
	progressErr error
	visitErr    error

	progressCh chan progressCall
	visitCh    chan string

	mu           sync.Mutex
	contentCalls []int
	addCalls     int
	removeCalls  int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		novel: &model.Novel{ID: "n1", Title: "Ashes of the North", CreatorID: "author-1"},
		chapters: []model.Chapter{
			{ID: "c1", Number: 1, Title: "One"},
			{ID: "c2", Number: 2, Title: "Two"},
			{ID: "c3", Number: 3, Title: "Three"},
			{ID: "c5", Number: 5, Title: "Interlude", IsExtra: true},
			{ID: "c7", Number: 7, Title: "Seven"},
		},
		progressCh: make(chan progressCall, 16),
		visitCh:    make(chan string, 16),
	}
}

func (f *fakeAPI) GetNovel(ctx context.Context, novelID string) (*model.Novel, error) {
	if f.novelErr != nil {
		return nil, f.novelErr
	}
	return f.novel, nil
}

func (f *fakeAPI) LatestNovels(ctx context.Context, limit int) ([]model.Novel, error) {
	return f.latest, f.latestErr
}

func (f *fakeAPI) GetChapters(ctx context.Context, novelID string) ([]model.Chapter, error) {
	if f.chaptersErr != nil {
		return nil, f.chaptersErr
	}
	return f.chapters, nil
}

func (f *fakeAPI) GetChapterContent(ctx context.Context, novelID string, number int) (string, error) {
	f.mu.Lock()
	f.contentCalls = append(f.contentCalls, number)
	f.mu.Unlock()
	if f.contentFn != nil {
		return f.contentFn(novelID, number)
	}
	return fmt.Sprintf("content of %d", number), nil
}

func (f *fakeAPI) UpdateProgress(ctx context.Context, novelID, chapterID string, number int) error {
	f.progressCh <- progressCall{novelID, chapterID, number}
	return f.progressErr
}

func (f *fakeAPI) RecordVisit(ctx context.Context, novelID string) error {
	f.visitCh <- novelID
	return f.visitErr
}

func (f *fakeAPI) CheckFavorite(ctx context.Context, novelID string) (bool, error) {
	return f.favorite, f.favoriteErr
}

func (f *fakeAPI) AddFavorite(ctx context.Context, novelID string) error {
	f.mu.Lock()
	f.addCalls++
	f.mu.Unlock()
	return f.addErr
}

func (f *fakeAPI) RemoveFavorite(ctx context.Context, novelID string) error {
	f.mu.Lock()
	f.removeCalls++
	f.mu.Unlock()
	return f.removeErr
}

type fakeStore struct {
	mu       sync.Mutex
	progress map[string]int
	settings *model.ReadingSettings
}

func newFakeStore() *fakeStore {
	return &fakeStore{progress: make(map[string]int)}
}

func (f *fakeStore) Progress(novelID string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, ok := f.progress[novelID]
	return idx, ok, nil
}

func (f *fakeStore) SetProgress(novelID string, idx int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[novelID] = idx
	return nil
}

func (f *fakeStore) Settings() (model.ReadingSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settings == nil {
		return model.DefaultReadingSettings(), nil
	}
	return *f.settings, nil
}

func (f *fakeStore) SetSettings(s model.ReadingSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = &s
	return nil
}

type fakeView struct {
	mu      sync.Mutex
	paths   []string
	scrolls []reader.ScrollRegion
}

func (v *fakeView) ReplacePath(p string) {
	v.mu.Lock()
	v.paths = append(v.paths, p)
	v.mu.Unlock()
}

func (v *fakeView) ScrollToTop(r reader.ScrollRegion) {
	v.mu.Lock()
	v.scrolls = append(v.scrolls, r)
	v.mu.Unlock()
}

func (v *fakeView) AfterRender(fn func()) { fn() }

func (v *fakeView) lastPath() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.paths) == 0 {
		return ""
	}
	return v.paths[len(v.paths)-1]
}

func waitProgress(t *testing.T, ch chan progressCall) progressCall {
	t.Helper()
	select {
	case call := <-ch:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for progress update")
		return progressCall{}
	}
}

func openSession(t *testing.T, api *fakeAPI, st *fakeStore, view *fakeView, user *model.User, path string) *reader.Session {
	t.Helper()
	session := reader.NewSession(reader.Options{API: api, Store: st, View: view, User: user})
	require.NoError(t, session.Open(context.Background(), path))
	return session
}

func TestOpen_InitialIndexPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		stored int
		hasP   bool
		want   int
	}{
		{"url_match_beats_stored", "/novels/n1/chapters/5", 1, true, 3},
		{"url_miss_falls_back_to_stored", "/novels/n1/chapters/4", 2, true, 2},
		{"stored_in_range", "/novels/n1", 2, true, 2},
		{"stored_out_of_range", "/novels/n1", 9, true, 0},
		{"nothing_stored", "/novels/n1", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			st := newFakeStore()
			if tt.hasP {
				st.progress["n1"] = tt.stored
			}
			session := openSession(t, api, st, &fakeView{}, nil, tt.path)
			assert.Equal(t, tt.want, session.Index())
		})
	}
}

func TestOpen_AnonymousReaderByChapterNumber(t *testing.T) {
	api := newFakeAPI()
	st := newFakeStore()
	st.progress["n1"] = 1
	view := &fakeView{}

	session := openSession(t, api, st, view, nil, "/novel/n1/read/5")

	assert.Equal(t, 3, session.Index())
	assert.Equal(t, []string{"content of 5"}, session.Paragraphs())
	// The entry scheme sticks for emitted paths.
	assert.Equal(t, "/novel/n1/read/5", view.lastPath())
	assert.Empty(t, api.visitCh)
	assert.Empty(t, api.progressCh)
}

func TestOpen_FallbackToLatestNovels(t *testing.T) {
	api := newFakeAPI()
	api.novelErr = errors.New("boom")
	api.latest = []model.Novel{{ID: "nX"}, {ID: "n1", Title: "Found via listing"}}

	session := openSession(t, api, newFakeStore(), &fakeView{}, nil, "/novels/n1")

	assert.Equal(t, "Found via listing", session.Novel().Title)
}

func TestOpen_FatalWhenNovelUnresolvable(t *testing.T) {
	api := newFakeAPI()
	api.novelErr = errors.New("boom")
	api.latestErr = errors.New("also down")

	session := reader.NewSession(reader.Options{API: api, Store: newFakeStore()})
	err := session.Open(context.Background(), "/novels/n1")

	require.Error(t, err)
}

func TestOpen_FatalWhenChapterListFails(t *testing.T) {
	api := newFakeAPI()
	api.chaptersErr = errors.New("boom")

	session := reader.NewSession(reader.Options{API: api, Store: newFakeStore()})
	err := session.Open(context.Background(), "/novels/n1")

	require.Error(t, err)
}

func TestOpen_FavoriteCheckFailureIsNonFatal(t *testing.T) {
	api := newFakeAPI()
	api.favoriteErr = errors.New("boom")
	user := &model.User{ID: "u1"}

	session := openSession(t, api, newFakeStore(), &fakeView{}, user, "/novels/n1")

	assert.False(t, session.Favorite())
}

func TestOpen_RecordsVisitOncePerOpen(t *testing.T) {
	api := newFakeAPI()
	user := &model.User{ID: "u1"}

	session := openSession(t, api, newFakeStore(), &fakeView{}, user, "/novels/n1")

	select {
	case novelID := <-api.visitCh:
		assert.Equal(t, "n1", novelID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for visit recording")
	}

	session.ChangeChapter(context.Background(), 1)
	waitProgress(t, api.progressCh)
	assert.Empty(t, api.visitCh)
}

func TestOpen_ContentFailureKeepsNavigationUsable(t *testing.T) {
	api := newFakeAPI()
	api.contentFn = func(novelID string, number int) (string, error) {
		if number == 1 {
			return "", errors.New("content gone")
		}
		return fmt.Sprintf("content of %d", number), nil
	}

	session := openSession(t, api, newFakeStore(), &fakeView{}, nil, "/novels/n1")

	assert.NotEmpty(t, session.ContentError())
	assert.Empty(t, session.Paragraphs())

	session.ChangeChapter(context.Background(), 1)
	assert.Empty(t, session.ContentError())
	assert.Equal(t, []string{"content of 2"}, session.Paragraphs())
}

func TestChangeChapter_OutOfRangeIsNoop(t *testing.T) {
	api := newFakeAPI()
	session := openSession(t, api, newFakeStore(), &fakeView{}, nil, "/novels/n1")

	session.ChangeChapter(context.Background(), -1)
	session.ChangeChapter(context.Background(), len(api.chapters))

	assert.Equal(t, 0, session.Index())
}

func TestChangeChapter_PersistsLocalAndRemoteProgress(t *testing.T) {
	api := newFakeAPI()
	st := newFakeStore()
	user := &model.User{ID: "u1"}
	session := openSession(t, api, st, &fakeView{}, user, "/novels/n1")
	<-api.visitCh

	session.ChangeChapter(context.Background(), 2)

	assert.Equal(t, 2, st.progress["n1"])
	call := waitProgress(t, api.progressCh)
	assert.Equal(t, progressCall{novelID: "n1", chapterID: "c3", number: 3}, call)
}

func TestChangeChapter_AnonymousSkipsRemoteProgress(t *testing.T) {
	api := newFakeAPI()
	st := newFakeStore()
	session := openSession(t, api, st, &fakeView{}, nil, "/novels/n1")

	session.ChangeChapter(context.Background(), 2)

	assert.Equal(t, 2, st.progress["n1"])
	assert.Empty(t, api.progressCh)
}

func TestChangeChapter_RemoteFailureNeverBlocksNavigation(t *testing.T) {
	api := newFakeAPI()
	api.progressErr = errors.New("sync down")
	user := &model.User{ID: "u1"}
	session := openSession(t, api, newFakeStore(), &fakeView{}, user, "/novels/n1")
	<-api.visitCh

	session.ChangeChapter(context.Background(), 1)
	waitProgress(t, api.progressCh)

	assert.Equal(t, 1, session.Index())
	assert.Equal(t, []string{"content of 2"}, session.Paragraphs())
}

func TestStaleContentResponseIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	entered := make(chan struct{})
	release := make(chan struct{})
	api.contentFn = func(novelID string, number int) (string, error) {
		if number == 2 {
			close(entered)
			<-release
		}
		return fmt.Sprintf("content of %d", number), nil
	}
	view := &fakeView{}
	session := openSession(t, api, newFakeStore(), view, nil, "/novels/n1")

	done := make(chan struct{})
	go func() {
		session.ChangeChapter(context.Background(), 1)
		close(done)
	}()
	<-entered
	session.ChangeChapter(context.Background(), 2)
	close(release)
	<-done

	// The chapter requested last wins even though its response came first.
	assert.Equal(t, 2, session.Index())
	assert.Equal(t, []string{"content of 3"}, session.Paragraphs())
	assert.Equal(t, "/novels/n1/chapters/3", view.lastPath())
}

func TestHandleKey_Navigation(t *testing.T) {
	api := newFakeAPI()
	session := openSession(t, api, newFakeStore(), &fakeView{}, nil, "/novels/n1")
	ctx := context.Background()

	session.HandleKey(ctx, reader.KeyArrowLeft)
	assert.Equal(t, 0, session.Index(), "left at first chapter is a no-op")

	session.HandleKey(ctx, reader.KeyArrowRight)
	assert.Equal(t, 1, session.Index())

	session.ChangeChapter(ctx, len(api.chapters)-1)
	session.HandleKey(ctx, reader.KeyArrowRight)
	assert.Equal(t, len(api.chapters)-1, session.Index(), "right at last chapter is a no-op")
}

func TestHandleKey_EscapeExitsFullscreen(t *testing.T) {
	session := openSession(t, newFakeAPI(), newFakeStore(), &fakeView{}, nil, "/novels/n1")

	session.EnterFullscreen()
	session.HandleKey(context.Background(), reader.KeyEscape)

	assert.False(t, session.Fullscreen())
}

func TestHandleKey_UnboundAfterClose(t *testing.T) {
	session := openSession(t, newFakeAPI(), newFakeStore(), &fakeView{}, nil, "/novels/n1")
	ctx := context.Background()

	session.Close(ctx)
	session.HandleKey(ctx, reader.KeyArrowRight)

	assert.Equal(t, 0, session.Index())
}

func TestScrollAdvance_OncePerThresholdCrossing(t *testing.T) {
	session := openSession(t, newFakeAPI(), newFakeStore(), &fakeView{}, nil, "/novels/n1")
	ctx := context.Background()
	session.EnterFullscreen()

	// Bottom of a 1000px region with a 600px viewport.
	session.ReportScroll(ctx, 300, 600, 1000)
	assert.Equal(t, 1, session.Index())

	// Still inside the threshold band: no repeat fire.
	session.ReportScroll(ctx, 300, 600, 1000)
	session.ReportScroll(ctx, 310, 600, 1000)
	assert.Equal(t, 1, session.Index())

	// Leaving the band re-arms the trigger.
	session.ReportScroll(ctx, 0, 600, 1000)
	session.ReportScroll(ctx, 300, 600, 1000)
	assert.Equal(t, 2, session.Index())
}

func TestScrollAdvance_OnlyInFullscreen(t *testing.T) {
	session := openSession(t, newFakeAPI(), newFakeStore(), &fakeView{}, nil, "/novels/n1")

	session.ReportScroll(context.Background(), 300, 600, 1000)

	assert.Equal(t, 0, session.Index())
}

func TestScrollAdvance_StopsAtLastChapter(t *testing.T) {
	api := newFakeAPI()
	session := openSession(t, api, newFakeStore(), &fakeView{}, nil, "/novels/n1")
	ctx := context.Background()
	last := len(api.chapters) - 1

	session.ChangeChapter(ctx, last)
	session.EnterFullscreen()
	session.ReportScroll(ctx, 300, 600, 1000)

	assert.Equal(t, last, session.Index())
}

func TestScrollAdvance_ScrollResetTargetsFullscreenRegion(t *testing.T) {
	view := &fakeView{}
	session := openSession(t, newFakeAPI(), newFakeStore(), view, nil, "/novels/n1")
	ctx := context.Background()

	session.ChangeChapter(ctx, 1)
	session.EnterFullscreen()
	session.ChangeChapter(ctx, 2)

	view.mu.Lock()
	defer view.mu.Unlock()
	require.Len(t, view.scrolls, 2)
	assert.Equal(t, reader.RegionDocument, view.scrolls[0])
	assert.Equal(t, reader.RegionFullscreen, view.scrolls[1])
}

func TestToggleFavorite(t *testing.T) {
	t.Run("requires_login", func(t *testing.T) {
		session := openSession(t, newFakeAPI(), newFakeStore(), &fakeView{}, nil, "/novels/n1")

		err := session.ToggleFavorite(context.Background())

		assert.ErrorIs(t, err, reader.ErrLoginRequired)
	})

	t.Run("flips_on_success", func(t *testing.T) {
		api := newFakeAPI()
		user := &model.User{ID: "u1"}
		session := openSession(t, api, newFakeStore(), &fakeView{}, user, "/novels/n1")
		<-api.visitCh

		require.NoError(t, session.ToggleFavorite(context.Background()))
		assert.True(t, session.Favorite())
		assert.Equal(t, 1, api.addCalls)

		require.NoError(t, session.ToggleFavorite(context.Background()))
		assert.False(t, session.Favorite())
		assert.Equal(t, 1, api.removeCalls)
	})

	t.Run("unchanged_on_failure", func(t *testing.T) {
		api := newFakeAPI()
		api.addErr = errors.New("boom")
		user := &model.User{ID: "u1"}
		session := openSession(t, api, newFakeStore(), &fakeView{}, user, "/novels/n1")
		<-api.visitCh

		err := session.ToggleFavorite(context.Background())

		require.Error(t, err)
		assert.False(t, session.Favorite())
	})
}

func TestSettings_ClampedAndPersisted(t *testing.T) {
	st := newFakeStore()
	session := openSession(t, newFakeAPI(), st, &fakeView{}, nil, "/novels/n1")

	session.SetFontSize(40)
	session.SetLineHeight(0.5)

	got := session.Settings()
	assert.Equal(t, 24, got.FontSize)
	assert.InDelta(t, 1.5, got.LineHeight, 0.001)
	require.NotNil(t, st.settings)
	assert.Equal(t, 24, st.settings.FontSize)
}

func TestClose_FlushesProgressForAuthenticatedUser(t *testing.T) {
	api := newFakeAPI()
	user := &model.User{ID: "u1"}
	session := openSession(t, api, newFakeStore(), &fakeView{}, user, "/novels/n1/chapters/3")
	<-api.visitCh

	session.Close(context.Background())

	call := waitProgress(t, api.progressCh)
	assert.Equal(t, progressCall{novelID: "n1", chapterID: "c3", number: 3}, call)

	session.Close(context.Background())
	assert.Empty(t, api.progressCh)
}

func TestClose_AnonymousSkipsFlush(t *testing.T) {
	api := newFakeAPI()
	session := openSession(t, api, newFakeStore(), &fakeView{}, nil, "/novels/n1")

	session.Close(context.Background())

	assert.Empty(t, api.progressCh)
}
