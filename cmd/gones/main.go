// Package main implements the gones NES emulator executable: an Ebitengine
// window driving the core once per displayed frame.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nescore/gones/internal/input"
	"github.com/nescore/gones/internal/nes"
)

const (
	nesWidth  = 256
	nesHeight = 240
	scale     = 3
)

var keyMapping = map[ebiten.Key]input.Button{
	ebiten.KeyZ:          input.ButtonA,
	ebiten.KeyX:          input.ButtonB,
	ebiten.KeyShiftRight: input.ButtonSelect,
	ebiten.KeyEnter:      input.ButtonStart,
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
}

type game struct {
	console *nes.Console
	frame   *ebiten.Image
	rgba    [nesWidth * nesHeight * 4]uint8
}

func (g *game) Update() error {
	fb, pad, _ := g.console.IOInterface()
	for key, button := range keyMapping {
		if inpututil.IsKeyJustPressed(key) {
			pad.SetButton(0, button, true)
		} else if inpututil.IsKeyJustReleased(key) {
			pad.SetButton(0, button, false)
		}
	}
	g.console.RunNextFrame()
	g.console.DrainSamples() // no audio output: discard this frame's samples
	for i := 0; i < nesWidth*nesHeight; i++ {
		g.rgba[i*4+0] = fb[i*3+0]
		g.rgba[i*4+1] = fb[i*3+1]
		g.rgba[i*4+2] = fb[i*3+2]
		g.rgba[i*4+3] = 0xFF
	}
	g.frame.WritePixels(g.rgba[:])
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(g.frame, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return nesWidth * scale, nesHeight * scale
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM file")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("usage: gones -rom <file.nes>")
	}

	console, err := nes.New(*romPath)
	if err != nil {
		log.Fatalf("loading ROM: %v", err)
	}

	ebiten.SetWindowTitle(fmt.Sprintf("gones - %s", *romPath))
	ebiten.SetWindowSize(nesWidth*scale, nesHeight*scale)

	g := &game{
		console: console,
		frame:   ebiten.NewImage(nesWidth, nesHeight),
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
