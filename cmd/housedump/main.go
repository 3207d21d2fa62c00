// Command housedump runs the house engine headless and prints the renderer
// commands it emits while an automation script plays.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/dollhouse/house"
	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media/gocvsource"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/script"
)

func main() {
	scene := flag.String("scene", prefabs.DefaultHouse, "scene prefab in prefabs/")
	scriptName := flag.String("script", "tour", "automation script in prefabs/scripts/")
	hz := flag.Float64("hz", 60, "simulated frame rate")
	every := flag.Int("every", 30, "print commands every N ticks")
	width := flag.Int("width", 1280, "simulated display width")
	tail := flag.Float64("tail", 1, "seconds to keep ticking after the script ends")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log.Init(*logLevel)
	if err := run(*scene, *scriptName, *hz, *every, *width, *tail); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scene, scriptName string, hz float64, every, width int, tail float64) error {
	if hz <= 0 {
		return fmt.Errorf("housedump: hz must be positive")
	}
	if every <= 0 {
		every = 1
	}

	spec, err := prefabs.LoadHouseSpec(scene)
	if err != nil {
		return err
	}
	steps, err := script.Load(context.Background(), scriptName)
	if err != nil {
		return err
	}

	engine, err := house.New(spec, house.WithLogger(log.L()), house.WithSource(gocvsource.New(log.L())))
	if err != nil {
		return err
	}
	defer engine.Close()
	engine.SetSoundEnabled(false)
	engine.Resize(width, width*9/16)

	dt := 1 / hz
	player := script.NewPlayer(steps)
	remaining := int(tail * hz)
	for tick := 0; ; tick++ {
		if player.Done() {
			if remaining <= 0 {
				break
			}
			remaining--
		}
		if n := player.Advance(dt, engine); n > 0 {
			fmt.Printf("t=%.2fs %s\n", float64(tick)*dt, engine.Status())
		}
		cmds := engine.Tick(dt)
		if tick%every != 0 {
			continue
		}
		fmt.Printf("-- tick %d (%.2fs) %d commands\n", tick, float64(tick)*dt, len(cmds))
		for _, c := range cmds {
			fmt.Println("  ", c)
		}
	}
	return nil
}
