// Package levels holds the embedded level data files and their decoded form.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Data is the on-disk shape of a level. Layers are row-major flat tile
// arrays, one per layer, where a nonzero tile is drawn and, on a physics
// layer, solid.
type Data struct {
	Name       string       `json:"name"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Layers     [][]int      `json:"layers"`
	LayerMeta  []LayerMeta  `json:"layer_meta"`
	SpawnX     float64      `json:"spawn_x"`
	SpawnY     float64      `json:"spawn_y"`
	Enemies    []EnemySpawn `json:"enemy_spawns,omitempty"`
	Music      string       `json:"music,omitempty"`
	IntroMusic string       `json:"intro_music,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// EnemySpawn places one enemy of the named prefab at a world position.
type EnemySpawn struct {
	Marker string  `json:"marker"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func Load(name string) (*Data, error) {
	raw, err := fs.ReadFile(LevelsFS, name+".json")
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if d.Name == "" {
		d.Name = name
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &d, nil
}

func (d *Data) validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("bad dimensions %dx%d", d.Width, d.Height)
	}
	if len(d.Layers) == 0 {
		return fmt.Errorf("no layers")
	}
	for i, layer := range d.Layers {
		if len(layer) != d.Width*d.Height {
			return fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), d.Width*d.Height)
		}
	}
	if len(d.LayerMeta) != len(d.Layers) {
		return fmt.Errorf("layer_meta count %d does not match %d layers", len(d.LayerMeta), len(d.Layers))
	}
	return nil
}
