package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec loads and unmarshals a YAML spec by prefabs-relative filename.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name               string     `yaml:"name"`
	MoveSpeed          float64    `yaml:"move_speed"`
	JumpImpulse        float64    `yaml:"jump_impulse"`
	Width              float64    `yaml:"width"`
	Height             float64    `yaml:"height"`
	Health             int        `yaml:"health"`
	GraceFrames        int        `yaml:"grace_frames"`
	FireCooldownFrames int        `yaml:"fire_cooldown_frames"`
	FireSound          string     `yaml:"fire_sound"`
	Bullet             BulletSpec `yaml:"bullet"`
}

type BulletSpec struct {
	Damage      int     `yaml:"damage"`
	Speed       float64 `yaml:"speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	LifeFrames  int     `yaml:"life_frames"`
	DecayFrames int     `yaml:"decay_frames"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemySpec struct {
	Name      string  `yaml:"name"`
	MoveSpeed float64 `yaml:"move_speed"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Health    int     `yaml:"health"`
	Damage    int     `yaml:"damage"`
	Script    string  `yaml:"script"`
}

// LoadEnemySpec loads the spec for an enemy marker name, e.g. "walker" reads
// walker.yaml.
func LoadEnemySpec(marker string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](marker + ".yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// DialogueSpec maps sequence keys (e.g. "mission1_intro") to their lines.
type DialogueSpec struct {
	Sequences map[string][]DialogueLineSpec `yaml:"sequences"`
}

type DialogueLineSpec struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
	Frames  int    `yaml:"frames"`
}

func LoadDialogueSpec() (*DialogueSpec, error) {
	spec, err := LoadSpec[DialogueSpec]("dialogue.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
