package display

import (
	"fmt"
	"time"

	"github.com/algorithmiker/scoreman/parser"
)

// LiveDisplay is the non-TTY fallback for `scoreman play`: a single
// overwritten progress line instead of the bubbletea dashboard, grounded on
// the teacher's LiveDisplay Start/Stop-over-a-stop-channel shape.
type LiveDisplay struct {
	res          *parser.ParseResult
	numTicks     int
	tickDuration time.Duration
	stopChan     chan struct{}
}

// NewLiveDisplay builds a fallback display over res, advancing in lockstep
// with the tick duration the MIDI sibling rendered at.
func NewLiveDisplay(res *parser.ParseResult, tickDuration time.Duration) *LiveDisplay {
	return &LiveDisplay{
		res:          res,
		numTicks:     len(res.TickStream) / 6,
		tickDuration: tickDuration,
		stopChan:     make(chan struct{}),
	}
}

// Start begins printing progress in a background goroutine. Stop must be
// called exactly once to release it.
func (ld *LiveDisplay) Start() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-ld.stopChan:
				return
			case <-ticker.C:
				if ld.tickDuration <= 0 {
					return
				}
				tick := int(time.Since(start) / ld.tickDuration)
				if tick >= ld.numTicks {
					return
				}
				fmt.Printf("\rtick %d/%d  measure %d", tick, ld.numTicks, measureForTick(ld.res, tick))
			}
		}
	}()
}

// Stop signals the background goroutine to exit.
func (ld *LiveDisplay) Stop() {
	close(ld.stopChan)
	fmt.Println()
}
