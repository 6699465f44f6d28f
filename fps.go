package diorama

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget is the overlay drawn in the top-left corner by Run when
// RunConfig.ShowFPS is set. Its text is refreshed about twice per second.
type fpsWidget struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSWidget() *fpsWidget {
	// Room for three lines of debug font.
	return &fpsWidget{img: ebiten.NewImage(180, 48), elapsed: 1}
}

// hudText formats the overlay lines.
func hudText(fps float64, s *Scene) string {
	hovered := "-"
	if s.hover != nil {
		if cur := s.hover.Current(); cur != nil {
			hovered = cur.Name
		}
	}
	mode := "day"
	if s.theme.night {
		mode = "night"
	}
	return fmt.Sprintf("FPS: %.1f\nHover: %s\nTheme: %s", fps, hovered, mode)
}

func (w *fpsWidget) update(dt float64, s *Scene) {
	w.elapsed += dt
	if w.elapsed < 0.5 {
		return
	}
	w.elapsed = 0
	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, hudText(ebiten.ActualFPS(), s))
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	screen.DrawImage(w.img, nil)
}
