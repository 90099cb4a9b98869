package reader

// ScrollRegion names the scrollable area a scroll reset targets. The
// fullscreen container is a different region than the document.
type ScrollRegion int

const (
	RegionDocument ScrollRegion = iota
	RegionFullscreen
)

// View is the UI shell the session drives. Implementations are
// supplied by the embedding surface (browser bridge, terminal, tests).
type View interface {
	// ReplacePath updates the visible location without a history push:
	// back-navigation must skip chapter views reached this way.
	ReplacePath(path string)
	// ScrollToTop resets the given scroll region.
	ScrollToTop(region ScrollRegion)
	// AfterRender runs fn once the latest state is in the visible
	// tree. Scroll resets go through here because the target region
	// may not have repainted yet when navigation settles.
	AfterRender(fn func())
}

// NopView is a View for surfaces with no scrollable rendering, such as
// the CLI. AfterRender runs its callback immediately.
type NopView struct{}

func (NopView) ReplacePath(string)       {}
func (NopView) ScrollToTop(ScrollRegion) {}
func (NopView) AfterRender(fn func())    { fn() }

// Key is a keyboard input routed to the session while it is mounted.
type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
	KeyEscape
)
