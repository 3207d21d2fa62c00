// Command tvpreview plays a video source on its own, the way the TV screen
// binds it. Space toggles playback.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/media/gocvsource"
)

const (
	screenWidth  = 640
	screenHeight = 360
)

type previewGame struct {
	res *media.Resource
	on  bool

	source image.Image
	frame  *ebiten.Image
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.on = !g.on
	}
	g.res.Reconcile(g.on)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	if b := g.res.Binding(); b != nil {
		if img := b.Frame(); img != nil {
			if img != g.source {
				if g.frame != nil {
					g.frame.Deallocate()
				}
				g.frame = ebiten.NewImageFromImage(img)
				g.source = img
			}
			fw, fh := g.frame.Bounds().Dx(), g.frame.Bounds().Dy()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(screenWidth)/float64(fw), float64(screenHeight)/float64(fh))
			screen.DrawImage(g.frame, op)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  state: %s  failures: %d", g.res.URI, g.res.State(), g.res.Failures()))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	video := flag.String("video", "assets/video/tv.mp4", "video file or stream URL")
	flag.Parse()

	log.Init("debug")
	res := media.NewResource(*video, gocvsource.New(log.L()), media.NewScreen("preview"))
	defer res.Close()

	g := &previewGame{res: res, on: true}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("tv preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Error("tvpreview: run", "err", err)
		os.Exit(1)
	}
}
