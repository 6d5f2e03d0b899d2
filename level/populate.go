package level

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mikkoJakonen/lilja-game/actor"
	"github.com/mikkoJakonen/lilja-game/prefabs"
)

// Populate binds the session's player to this level and spawns every enemy
// the level data places. Enemy prefabs are loaded by marker name; an unknown
// marker is a data error and fails the whole level rather than silently
// spawning fewer enemies.
func (l *Level) Populate(player *actor.Player) error {
	if l.player != nil {
		return fmt.Errorf("%w: level already populated", ErrConfiguration)
	}

	l.player = player
	l.playerGround = l.world.AttachPlayer(player)
	player.SetPosition(l.data.SpawnX, l.data.SpawnY)
	l.playerID = l.registry.Register(player)

	specs := make(map[string]*prefabs.EnemySpec)
	for _, spawn := range l.data.Enemies {
		spec, ok := specs[spawn.Marker]
		if !ok {
			var err error
			spec, err = prefabs.LoadEnemySpec(spawn.Marker)
			if err != nil {
				return fmt.Errorf("%w: enemy marker %q: %v", ErrConfiguration, spawn.Marker, err)
			}
			specs[spawn.Marker] = spec
		}

		e := actor.NewEnemy(spawn.X, spawn.Y, *spec, l.registry)
		l.world.AttachEnemy(e)
		id := l.registry.Register(e)
		e.SetChaseTarget(l.playerID)
		e.SetGround(l.groundID)
		l.enemies = append(l.enemies, e)
		l.enemyIDs[e] = id
	}

	log.Debug("level populated", "level", l.data.Name, "enemies", len(l.enemies))
	return nil
}
