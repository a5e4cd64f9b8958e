package activity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Placeholder is shown for any metric without data.
const Placeholder = "--"

// Source provides activity data. *Client implements it.
type Source interface {
	Today(ctx context.Context) (Today, error)
	Weekly(ctx context.Context) (Weekly, error)
}

// View is the rendered widget text.
type View struct {
	Steps     string  `json:"steps"`
	Calories  string  `json:"calories"`
	Sleep     string  `json:"sleep"`
	HeartRate string  `json:"heart_rate"`
	Live      bool    `json:"live"` // false while showing placeholders
	Chart     []Point `json:"chart"`
}

// Widget holds the latest activity data. Safe for concurrent use.
type Widget struct {
	src Source
	log zerolog.Logger

	mu     sync.RWMutex
	today  *Today
	weekly *Weekly
	demo   *Today
	rnd    *rand.Rand
}

// WidgetOption configures a Widget.
type WidgetOption func(*Widget)

// WithRand sets the source of placeholder values.
func WithRand(r *rand.Rand) WidgetOption {
	return func(w *Widget) { w.rnd = r }
}

// NewWidget creates a widget over src. A nil src shows placeholders only.
func NewWidget(src Source, log zerolog.Logger, opts ...WidgetOption) *Widget {
	w := &Widget{
		src: src,
		log: log,
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6e7574)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load fetches both endpoints. Failures are logged and leave the previous
// values in place.
func (w *Widget) Load(ctx context.Context) {
	if w.src == nil {
		return
	}

	if t, err := w.src.Today(ctx); err != nil {
		w.log.Warn().Err(err).Str("endpoint", "today").Msg("activity fetch failed")
	} else {
		w.mu.Lock()
		w.today = &t
		w.mu.Unlock()
	}

	if wk, err := w.src.Weekly(ctx); err != nil {
		w.log.Warn().Err(err).Str("endpoint", "weekly").Msg("activity fetch failed")
	} else {
		w.mu.Lock()
		w.weekly = &wk
		w.mu.Unlock()
	}
}

// Today returns the last fetched snapshot.
func (w *Widget) Today() (Today, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.today == nil {
		return Today{}, false
	}
	return *w.today, true
}

// Weekly returns the last fetched series.
func (w *Widget) Weekly() (Weekly, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.weekly == nil {
		return Weekly{}, false
	}
	return *w.weekly, true
}

// View renders live data when loaded, placeholder values otherwise.
func (w *Widget) View() View {
	w.mu.RLock()
	defer w.mu.RUnlock()

	v := View{Steps: Placeholder, Calories: Placeholder, Sleep: Placeholder, HeartRate: Placeholder, Chart: []Point{}}
	t := w.demo
	if w.today != nil {
		t, v.Live = w.today, true
	}
	if t != nil {
		v.Steps = humanize.Comma(int64(t.Steps))
		v.Calories = humanize.Comma(int64(t.Calories)) + " kcal"
		v.Sleep = FormatSleep(t.SleepMinutes)
		if t.HeartRate > 0 {
			v.HeartRate = fmt.Sprintf("%d bpm", t.HeartRate)
		}
	}
	if w.weekly != nil {
		v.Chart = w.weekly.Points()
	}
	return v
}

// Refresh replaces the placeholder values with random ones every interval
// until ctx is done. Live data is never overwritten.
func (w *Widget) Refresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Shuffle()
		}
	}
}

// Shuffle sets one round of random placeholder values.
func (w *Widget) Shuffle() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.demo = &Today{
		Steps:        w.rnd.IntN(10000),
		Calories:     w.rnd.IntN(3000),
		SleepMinutes: w.rnd.IntN(600),
		HeartRate:    55 + w.rnd.IntN(40),
	}
}

// FormatSleep renders minutes as "7h 12m".
func FormatSleep(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
