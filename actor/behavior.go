package actor

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// Behavior wraps a compiled tengo movement script. The script receives the
// enemy's position, its target's position and its configured speed, and
// leaves the chosen horizontal velocity in move_x.
type Behavior struct {
	name     string
	compiled *tengo.Compiled
}

func NewBehavior(scriptName string) (*Behavior, error) {
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return nil, fmt.Errorf("behavior: load %s: %w", scriptName, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("self_x", 0.0)
	_ = script.Add("target_x", 0.0)
	_ = script.Add("has_target", false)
	_ = script.Add("speed", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile %s: %w", scriptName, err)
	}

	return &Behavior{name: scriptName, compiled: compiled}, nil
}

// MoveX runs the script for one frame and returns the horizontal velocity it
// chose.
func (b *Behavior) MoveX(selfX, targetX float64, hasTarget bool, speed float64) (float64, error) {
	if err := b.compiled.Set("self_x", selfX); err != nil {
		return 0, err
	}
	if err := b.compiled.Set("target_x", targetX); err != nil {
		return 0, err
	}
	if err := b.compiled.Set("has_target", hasTarget); err != nil {
		return 0, err
	}
	if err := b.compiled.Set("speed", speed); err != nil {
		return 0, err
	}
	if err := b.compiled.Run(); err != nil {
		return 0, fmt.Errorf("behavior: run %s: %w", b.name, err)
	}
	return b.compiled.Get("move_x").Float(), nil
}
