package combat

import "testing"

func TestResolveTable(t *testing.T) {
	cases := []struct {
		name string
		a, b Target
		ea   Effect
		eb   Effect
	}{
		{
			name: "bullet_vs_terrain",
			a:    Target{Kind: KindBullet, ContactDamage: 1},
			b:    Target{Kind: KindTerrain},
			ea:   Effect{Op: OpDisable},
			eb:   Effect{Op: OpIgnore},
		},
		{
			name: "bullet_vs_enemy",
			a:    Target{Kind: KindBullet, ContactDamage: 3},
			b:    Target{Kind: KindEnemy, ContactDamage: 5},
			ea:   Effect{Op: OpDisable},
			eb:   Effect{Op: OpDamage, Amount: 3},
		},
		{
			name: "player_vs_enemy",
			a:    Target{Kind: KindPlayer},
			b:    Target{Kind: KindEnemy, ContactDamage: 7},
			ea:   Effect{Op: OpDamage, Amount: 7},
			eb:   Effect{Op: OpIgnore},
		},
		{
			name: "invincible_player_vs_enemy",
			a:    Target{Kind: KindPlayer, Invincible: true},
			b:    Target{Kind: KindEnemy, ContactDamage: 7},
			ea:   Effect{Op: OpIgnore},
			eb:   Effect{Op: OpIgnore},
		},
		{
			name: "player_vs_terrain_blocking_only",
			a:    Target{Kind: KindPlayer},
			b:    Target{Kind: KindTerrain},
			ea:   Effect{Op: OpIgnore},
			eb:   Effect{Op: OpIgnore},
		},
		{
			name: "enemy_vs_terrain_blocking_only",
			a:    Target{Kind: KindEnemy, ContactDamage: 2},
			b:    Target{Kind: KindTerrain},
			ea:   Effect{Op: OpIgnore},
			eb:   Effect{Op: OpIgnore},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ea, eb := Resolve(c.a, c.b)
			if ea != c.ea || eb != c.eb {
				t.Fatalf("Resolve(%v, %v) = (%v %d, %v %d), want (%v %d, %v %d)",
					c.a.Kind, c.b.Kind, ea.Op, ea.Amount, eb.Op, eb.Amount,
					c.ea.Op, c.ea.Amount, c.eb.Op, c.eb.Amount)
			}

			// Symmetric dispatch: the swapped call swaps the effects.
			eb2, ea2 := Resolve(c.b, c.a)
			if ea2 != ea || eb2 != eb {
				t.Fatalf("Resolve is not symmetric for %v/%v", c.a.Kind, c.b.Kind)
			}
		})
	}
}

func TestResolveUncoveredPairsIgnore(t *testing.T) {
	kinds := []Kind{KindPlayer, KindEnemy, KindBullet, KindTerrain}
	covered := map[[2]Kind]bool{
		{KindBullet, KindTerrain}: true,
		{KindTerrain, KindBullet}: true,
		{KindBullet, KindEnemy}:   true,
		{KindEnemy, KindBullet}:   true,
		{KindPlayer, KindEnemy}:   true,
		{KindEnemy, KindPlayer}:   true,
	}

	for _, ka := range kinds {
		for _, kb := range kinds {
			if covered[[2]Kind{ka, kb}] {
				continue
			}
			ea, eb := Resolve(Target{Kind: ka, ContactDamage: 9}, Target{Kind: kb, ContactDamage: 9})
			if ea.Op != OpIgnore || eb.Op != OpIgnore {
				t.Fatalf("expected %v/%v to resolve to ignore/ignore, got %v/%v", ka, kb, ea.Op, eb.Op)
			}
		}
	}
}
