package state

import (
	"math"
	"testing"
)

func injectProjectile(world *WorldState, projectile VirusProjectile) {
	world.projectiles[projectile.Id] = &projectile
	if projectile.Id >= world.nextProjectileId {
		world.nextProjectileId = projectile.Id + 1
	}
}

func TestProjectileAdvancesAndReports(t *testing.T) {
	world := NewWorldState(testConfig())

	injectProjectile(world, VirusProjectile{Id: 0, X: 1000, Y: 1000, Vx: 350, Vy: 0, Mass: 100})

	outcomes := world.UpdateProjectiles(0.1)

	if len(outcomes) != 1 {
		panic("One in-flight projectile should produce one outcome")
	}

	outcome := outcomes[0]

	if outcome.Type != OutcomeProjectileUpdate {
		panic("A projectile still in flight should report an update")
	}

	if math.Abs(outcome.Projectile.X-1035) > 1e-9 {
		panic("The projectile should advance by velocity times dt")
	}

	if math.Abs(outcome.Projectile.Travelled-35) > 1e-9 {
		panic("Travelled should accumulate the step length")
	}
}

func TestProjectileConvertsAtRange(t *testing.T) {
	world := NewWorldState(testConfig())
	virusesBefore := world.Counts().Viruses

	injectProjectile(world, VirusProjectile{Id: 0, X: 1000, Y: 1000, Vx: 350, Vy: 0, Travelled: 340, Mass: 100})

	outcomes := world.UpdateProjectiles(0.1)

	if len(outcomes) != 1 || outcomes[0].Type != OutcomeProjectileToVirus {
		panic("Crossing the range should convert the projectile into a virus")
	}

	outcome := outcomes[0]

	if outcome.ProjectileId == nil || *outcome.ProjectileId != 0 {
		panic("The conversion should name the finished projectile")
	}

	if outcome.Virus == nil || math.Abs(outcome.Virus.X-1035) > 1e-9 {
		panic("The new virus should appear where the projectile stopped")
	}

	if world.Counts().Projectiles != 0 {
		panic("The converted projectile should be gone")
	}

	if world.Counts().Viruses != virusesBefore+1 {
		panic("The conversion should add one virus")
	}
}

func TestProjectileConvertsAtBoundary(t *testing.T) {
	world := NewWorldState(testConfig())
	r := world.cfg.Radius(100)
	edge := world.cfg.WorldSize - r

	injectProjectile(world, VirusProjectile{Id: 0, X: edge - 20, Y: 1000, Vx: 350, Vy: 0, Mass: 100})

	outcomes := world.UpdateProjectiles(0.2)

	if len(outcomes) != 1 || outcomes[0].Type != OutcomeProjectileToVirus {
		panic("Exiting the inner bound should convert the projectile")
	}

	if outcomes[0].Virus.X != edge {
		panic("The replacement virus should be clamped inside the world")
	}
}

func TestProjectilesTickDeterministicOrder(t *testing.T) {
	world := NewWorldState(testConfig())

	injectProjectile(world, VirusProjectile{Id: 3, X: 1000, Y: 1000, Vx: 10, Vy: 0, Mass: 100})
	injectProjectile(world, VirusProjectile{Id: 1, X: 900, Y: 900, Vx: 10, Vy: 0, Mass: 100})

	outcomes := world.UpdateProjectiles(0.05)

	if len(outcomes) != 2 {
		panic("Both projectiles should report an outcome")
	}

	if outcomes[0].Projectile.Id != 1 || outcomes[1].Projectile.Id != 3 {
		panic("Outcomes should be ordered by projectile id")
	}
}

func TestNoProjectilesNoOutcomes(t *testing.T) {
	world := NewWorldState(testConfig())

	if len(world.UpdateProjectiles(0.05)) != 0 {
		panic("An empty projectile set should produce no outcomes")
	}
}
