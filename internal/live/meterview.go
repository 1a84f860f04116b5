package live

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/meter"
)

// MeterView renders level snapshots as text bars.
type MeterView struct {
	Width   int     // bar width in characters
	FloorDB float64 // level drawn as an empty bar
}

// NewMeterView returns a view with width-character bars spanning
// [-60 dB, 0 dB].
func NewMeterView(width int) *MeterView {
	return &MeterView{Width: width, FloorDB: core.MeterFloorDB}
}

// Bar draws a single level.
func (v *MeterView) Bar(db float64) string {
	width := max(v.Width, 1)
	floor := v.FloorDB
	if floor >= 0 {
		floor = core.MeterFloorDB
	}
	frac := core.Clamp((core.FloorDB(db, floor)-floor)/-floor, 0, 1)
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

// Render draws input and output bars for both channels, one per line.
func (v *MeterView) Render(s meter.Snapshot) string {
	var b strings.Builder
	rows := []struct {
		label string
		db    float64
	}{
		{"in  L", s.Input[0]},
		{"in  R", s.Input[1]},
		{"out L", s.Output[0]},
		{"out R", s.Output[1]},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s [%s] %6.1f dB\n", r.label, v.Bar(r.db), r.db)
	}
	return b.String()
}
