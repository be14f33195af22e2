// Command ecsdemo exercises an ecs.App end to end: it spawns a field of
// moving particles, ticks them forward under a movement system that wraps
// them around the screen edges, and
// renders the live set with tcell. Structured after the teacher's
// terminal game loop (main.go's Game.run): a tcell event channel polled
// alongside a fixed-rate ticker, feeding an otherwise self-contained
// update/draw pair — generalized here to drive ecs.App.Tick instead of a
// hand-rolled Game struct.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ecsframe/asset"
	"github.com/lixenwraith/ecsframe/ecs"
)

// paletteAsset is an asset type held by a strong handle for the life of the
// program purely to exercise the asset package's reference-counted
// lifecycle alongside the ECS loop; spawnParticles uses its own fixed glyph
// list, not this asset.
type paletteAsset struct{ glyphs []rune }

type position struct{ x, y float64 }
type velocity struct{ dx, dy float64 }
type glyph struct {
	r     rune
	style tcell.Style
}

type bounds struct{ width, height int }

func spawnParticles(world *ecs.World, n int, b bounds) {
	palette := []rune{'*', '+', '.', 'o'}
	for i := 0; i < n; i++ {
		editor := world.Spawn()
		ecs.Add(editor, position{x: rand.Float64() * float64(b.width), y: rand.Float64() * float64(b.height)})
		ecs.Add(editor, velocity{dx: rand.Float64()*2 - 1, dy: rand.Float64()*2 - 1})
		ecs.Add(editor, glyph{r: palette[rand.Intn(len(palette))], style: tcell.StyleDefault.Foreground(tcell.ColorGreen)})
	}
}

func movementSystem(b *bounds) ecs.SystemFunc {
	type moving = ecs.Pair2[*position, velocity]
	query := ecs.NewQuery[moving](ecs.Tuple2[*position, velocity](ecs.Write[position]{}, ecs.Read[velocity]{}))

	return func(world *ecs.World, cmd *ecs.CommandBuffer) {
		for _, row := range query.Iter(world) {
			row.A.x += row.B.dx
			row.A.y += row.B.dy
			if row.A.x < 0 || row.A.x >= float64(b.width) {
				row.A.x = clampWrap(row.A.x, float64(b.width))
			}
			if row.A.y < 0 || row.A.y >= float64(b.height) {
				row.A.y = clampWrap(row.A.y, float64(b.height))
			}
		}
	}
}

func clampWrap(v, max float64) float64 {
	for v < 0 {
		v += max
	}
	for v >= max {
		v -= max
	}
	return v
}

func render(screen tcell.Screen, world *ecs.World) {
	type drawn = ecs.Pair2[position, glyph]
	query := ecs.NewQuery[drawn](ecs.Tuple2[position, glyph](ecs.Read[position]{}, ecs.Read[glyph]{}))

	screen.Clear()
	for _, row := range query.Iter(world) {
		screen.SetContent(int(row.A.x), int(row.A.y), row.B.r, nil, row.B.style)
	}
	screen.Show()
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	width, height := screen.Size()
	b := bounds{width: width, height: height}

	daemon := asset.NewDaemon()
	asset.Register[paletteAsset](daemon, func(id asset.HandleID) {})
	palette := asset.NewStrongHandle[paletteAsset](daemon, asset.NewHandleID[paletteAsset]())
	defer func() {
		palette.Release()
		daemon.Drain()
	}()

	app := ecs.NewApp(ecs.WithTickInterval(16*time.Millisecond), ecs.WithAssetDaemon(daemon))
	spawnParticles(app.World(), 80, b)
	app.AddSystem(ecs.StageUpdate, ecs.NewSystem("movement", movementSystem(&b)))

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
			case *tcell.EventResize:
				width, height = screen.Size()
				b.width, b.height = width, height
				screen.Sync()
			}
		case <-ticker.C:
			app.Tick()
			render(screen, app.World())
		}
	}
}
