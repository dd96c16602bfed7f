package state

import (
	"sort"

	"github.com/yosytuvy/agario/common/utils/number"
	"github.com/yosytuvy/agario/common/utils/vector"
)

const (
	OutcomeProjectileUpdate  = "projectile_update"
	OutcomeProjectileToVirus = "projectile_to_virus"
)

type ProjectileOutcome struct {
	Type         string           `json:"type"`
	ProjectileId *int             `json:"projectileId,omitempty"`
	Virus        *Virus           `json:"virus,omitempty"`
	Projectile   *VirusProjectile `json:"projectile,omitempty"`
}

// UpdateProjectiles advances every in-flight projectile by one explicit
// Euler step (dt is small, bounded by the tick rate). A projectile converts
// back into a virus when its cumulative travelled distance reaches the
// configured range, or when it exits the inner world bound on any axis; the
// replacement virus appears at the projectile's stop position clamped into
// the world, not at the placement-algorithm position.
func (world *WorldState) UpdateProjectiles(dt float64) []ProjectileOutcome {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	ids := make([]int, 0, len(world.projectiles))
	for id := range world.projectiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	outcomes := make([]ProjectileOutcome, 0, len(ids))

	for _, id := range ids {
		projectile := world.projectiles[id]

		step := vector.MakeVector2(projectile.Vx, projectile.Vy).MultScalar(dt)
		projectile.X += step.GetX()
		projectile.Y += step.GetY()
		projectile.Travelled += step.Mag()

		r := world.cfg.Radius(projectile.Mass)

		outOfRange := projectile.Travelled >= world.cfg.VirusProjectileRange
		outOfBounds := projectile.X <= r || projectile.X >= world.cfg.WorldSize-r ||
			projectile.Y <= r || projectile.Y >= world.cfg.WorldSize-r

		if outOfRange || outOfBounds {
			delete(world.projectiles, id)

			virus := world.spawnVirus()
			world.moveVirus(
				virus,
				number.Clamp(projectile.X, r, world.cfg.WorldSize-r),
				number.Clamp(projectile.Y, r, world.cfg.WorldSize-r),
			)

			projectileId := id
			spawned := *virus
			outcomes = append(outcomes, ProjectileOutcome{
				Type:         OutcomeProjectileToVirus,
				ProjectileId: &projectileId,
				Virus:        &spawned,
			})
		} else {
			updated := *projectile
			outcomes = append(outcomes, ProjectileOutcome{
				Type:       OutcomeProjectileUpdate,
				Projectile: &updated,
			})
		}
	}

	return outcomes
}
