package state

import (
	"github.com/yosytuvy/agario/common/utils/vector"
)

type VirusFeedResult struct {
	VirusId           int              `json:"virusId"`
	NewMass           float64          `json:"newMass"`
	ProjectileSpawned *VirusProjectile `json:"projectileSpawned,omitempty"`
}

// FeedVirus advances the per-virus feed counter. The K-th feed peels one
// projectile off along the fed angle and resets the virus to base mass; the
// virus itself never despawns during mitosis.
func (world *WorldState) FeedVirus(virusId int, feedAngle float64) (VirusFeedResult, bool) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	virus, found := world.viruses[virusId]
	if !found {
		return VirusFeedResult{}, false
	}

	angle := feedAngle
	virus.LastFeedAngle = &angle
	virus.FeedCount++
	virus.Mass += world.cfg.VirusFeedMass

	result := VirusFeedResult{
		VirusId: virusId,
		NewMass: virus.Mass,
	}

	if virus.FeedCount >= world.cfg.VirusFeedsToSplit {
		projectileId := world.nextProjectileId
		world.nextProjectileId++

		velocity := vector.MakeAngleVector2(feedAngle).MultScalar(world.cfg.VirusProjectileSpeed)

		projectile := &VirusProjectile{
			Id:   projectileId,
			X:    virus.X,
			Y:    virus.Y,
			Vx:   velocity.GetX(),
			Vy:   velocity.GetY(),
			Mass: world.cfg.VirusMass,
		}
		world.projectiles[projectileId] = projectile

		virus.Mass = world.cfg.VirusMass
		virus.FeedCount = 0
		virus.LastFeedAngle = nil

		spawned := *projectile
		result.ProjectileSpawned = &spawned
	}

	return result, true
}
