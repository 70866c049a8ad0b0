package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	// BookmarkSnowline fires when the landed population reaches a new high.
	BookmarkSnowline BookmarkType = "snowline"
	// BookmarkAvalanche fires when far more particles slide off than usual,
	// typically after a window with a snow cap moved or closed.
	BookmarkAvalanche BookmarkType = "avalanche"
	// BookmarkSurfacesChanged fires when the accumulating surface count
	// changes between windows.
	BookmarkSurfacesChanged BookmarkType = "surfaces_changed"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds for bookmark detection.
const (
	snowlineMinLanded  = 20   // ignore highs below this
	snowlineGrowth     = 1.25 // new high must beat the last bookmarked one by this factor
	avalancheFactor    = 3.0  // slides vs rolling average
	avalancheMinSlides = 10
	avalancheMinWindow = 3 // windows of history before avalanches are judged
)

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	snowline int // landed count of the last snowline bookmark
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < avalancheMinWindow {
		historySize = avalancheMinWindow
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSnowline(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkAvalanche(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSurfaces(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// last returns the most recent window before the current one.
func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

func (bd *BookmarkDetector) checkSnowline(stats WindowStats) *Bookmark {
	if stats.Landed < snowlineMinLanded {
		return nil
	}
	if float64(stats.Landed) < float64(bd.snowline)*snowlineGrowth {
		return nil
	}
	prev := bd.snowline
	bd.snowline = stats.Landed
	return &Bookmark{
		Type:        BookmarkSnowline,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d particles resting (previous high %d)", stats.Landed, prev),
	}
}

func (bd *BookmarkDetector) checkAvalanche(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < avalancheMinWindow || stats.Slides < avalancheMinSlides {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Slides
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.Slides) > max(avg, 1)*avalancheFactor {
		return &Bookmark{
			Type:        BookmarkAvalanche,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d slides, %.1fx the average of %.1f", stats.Slides, float64(stats.Slides)/max(avg, 1), avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSurfaces(stats WindowStats) *Bookmark {
	prev, ok := bd.last()
	if !ok || prev.Accumulating == stats.Accumulating {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSurfacesChanged,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("accumulating surfaces %d -> %d", prev.Accumulating, stats.Accumulating),
	}
}
