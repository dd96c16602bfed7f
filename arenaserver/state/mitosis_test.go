package state

import (
	"math"
	"testing"
)

func TestFeedVirusBelowThreshold(t *testing.T) {
	world := NewWorldState(testConfig())
	cfg := world.cfg

	virusId := world.Viruses()[0].Id

	for i := 0; i < cfg.VirusFeedsToSplit-1; i++ {
		result, ok := world.FeedVirus(virusId, 0.5)

		if !ok {
			panic("Feeding a live virus should succeed")
		}

		if result.ProjectileSpawned != nil {
			panic("No projectile should spawn below the feed threshold")
		}

		expected := cfg.VirusMass + float64(i+1)*cfg.VirusFeedMass
		if result.NewMass != expected {
			panic("Each feed should grow the virus by the feed mass")
		}
	}
}

func TestFeedVirusSplitsAtThreshold(t *testing.T) {
	world := NewWorldState(testConfig())
	cfg := world.cfg

	virusId := world.Viruses()[0].Id
	angle := math.Pi / 3

	var result VirusFeedResult
	for i := 0; i < cfg.VirusFeedsToSplit; i++ {
		result, _ = world.FeedVirus(virusId, angle)
	}

	if result.ProjectileSpawned == nil {
		panic("The threshold feed should spawn a projectile")
	}

	projectile := result.ProjectileSpawned

	virus := world.viruses[virusId]

	if projectile.X != virus.X || projectile.Y != virus.Y {
		panic("The projectile should spawn at the virus position")
	}

	speed := math.Hypot(projectile.Vx, projectile.Vy)
	if math.Abs(speed-cfg.VirusProjectileSpeed) > 1e-9 {
		panic("The projectile should fly at the configured speed")
	}

	if math.Abs(projectile.Vx-cfg.VirusProjectileSpeed*math.Cos(angle)) > 1e-9 {
		panic("The projectile should fly along the fed angle")
	}

	if virus.Mass != cfg.VirusMass || virus.FeedCount != 0 || virus.LastFeedAngle != nil {
		panic("Mitosis should reset the virus to its base state")
	}

	if world.Counts().Viruses != 3 {
		panic("Mitosis should never despawn the virus")
	}

	if world.Counts().Projectiles != 1 {
		panic("Mitosis should leave exactly one projectile in flight")
	}
}

func TestFeedVirusCounterSurvivesAcrossFeeds(t *testing.T) {
	world := NewWorldState(testConfig())
	cfg := world.cfg

	virusId := world.Viruses()[0].Id

	// two mitosis cycles in a row reuse the same counter
	for cycle := 0; cycle < 2; cycle++ {
		var result VirusFeedResult
		for i := 0; i < cfg.VirusFeedsToSplit; i++ {
			result, _ = world.FeedVirus(virusId, 0)

			if i < cfg.VirusFeedsToSplit-1 && result.ProjectileSpawned != nil {
				panic("Projectile spawned too early")
			}
		}

		if result.ProjectileSpawned == nil {
			panic("Projectile should spawn on every threshold crossing")
		}
	}

	if world.Counts().Projectiles != 2 {
		panic("Each cycle should produce one projectile")
	}
}

func TestFeedVirusUnknown(t *testing.T) {
	world := NewWorldState(testConfig())

	if _, ok := world.FeedVirus(424242, 0); ok {
		panic("Feeding an unknown virus should be a no-op")
	}
}
