package ebitenbackend

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/trellis"
)

// overlayInterval is how often, in seconds, the stats text is rebuilt.
const overlayInterval = 0.5

// statsOverlay prints frame rate and scene stats in the top-left corner,
// refreshed every half second.
type statsOverlay struct {
	elapsed float64
	text    string
}

func (o *statsOverlay) update(dt float64, d *trellis.Driver) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < overlayInterval {
		return
	}
	o.elapsed = 0
	o.text = overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), d)
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, o.text)
}

func overlayText(fps, tps float64, d *trellis.Driver) string {
	entities := 0
	if s := d.Scene(); s != nil {
		entities = s.Len()
	}
	text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nEntities: %d", fps, tps, entities)
	if p := d.Profiler(); p != nil {
		st := p.Summary()
		text += fmt.Sprintf("\nFrame: %.0fus (p95 %.0fus)", st.Mean, st.P95)
	}
	return text
}
