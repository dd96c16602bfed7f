package state

import (
	"testing"
)

func makeDuel(world *WorldState, consumerMass, targetMass float64) (consumer Player, target Player) {
	consumer = world.CreatePlayer()
	target = world.CreatePlayer()

	// stack both on the same spot so only the mass ratio decides
	world.players[consumer.Id].X = 500
	world.players[consumer.Id].Y = 500
	world.players[consumer.Id].Mass = consumerMass
	world.players[consumer.Id].Radius = world.cfg.Radius(consumerMass)

	world.players[target.Id].X = 500
	world.players[target.Id].Y = 500
	world.players[target.Id].Mass = targetMass

	return consumer, target
}

func TestConsumePlayerAtExactRatio(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 100*1.1, 100)

	result, ok := world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypePlayer, "main", nil)

	if !ok {
		panic("Exactly 10% heavier should be enough to consume")
	}

	if result.GainedMass != 100 {
		panic("The gain should equal the target's whole mass")
	}

	if result.NewMass != 100*1.1+100 {
		panic("The consumer's new mass should include the gain")
	}

	if _, stillThere := world.players[target.Id]; stillThere {
		panic("The consumed player should be gone")
	}

	survivor := world.players[consumer.Id]
	if survivor.Radius != world.cfg.Radius(survivor.Mass) {
		panic("The consumer's radius should be recomputed from its new mass")
	}
}

func TestConsumePlayerBelowRatio(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 109, 100)

	if _, ok := world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypePlayer, "main", nil); ok {
		panic("Less than 10% heavier should not consume")
	}

	if _, alive := world.players[target.Id]; !alive {
		panic("A rejected arbitration should not touch the target")
	}
}

func TestConsumePlayerOutOfReach(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 400, 100)

	// move the target exactly to the consumer's radius; strict inequality
	reach := world.cfg.Radius(400)
	world.players[target.Id].X = 500 + reach

	if _, ok := world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypePlayer, "main", nil); ok {
		panic("A target centered on the rim should be out of reach")
	}
}

func TestConsumePlayerOnlyOnce(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 400, 100)

	if _, ok := world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypePlayer, "main", nil); !ok {
		panic("First arbitration should succeed")
	}

	if _, ok := world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypePlayer, "main", nil); ok {
		panic("A consumed target can only be spent once")
	}
}

func TestConsumePlayerCascadesTargetSplits(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 400, 100)

	world.ReplaceSplits(target.Id, []SplitUpdate{{Id: "ts", Mass: 20}})
	world.ReplaceEjected(target.Id, []EjectedUpdate{{Mass: 13}})

	world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypePlayer, "main", nil)

	counts := world.Counts()
	if counts.Splits != 0 || counts.Ejected != 0 {
		panic("Consuming a player should cascade to its splits and ejected mass")
	}
}

func TestConsumeSplitTarget(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, owner := makeDuel(world, 400, 100)

	world.ReplaceSplits(owner.Id, []SplitUpdate{{Id: "prey", X: 500, Y: 500, Mass: 50}})

	result, ok := world.ConsumePlayer(consumer.Id, "prey", EntityTypeSplit, EntityTypePlayer, "main", nil)

	if !ok {
		panic("A sufficiently heavy player should consume a split")
	}

	if result.GainedMass != 50 {
		panic("The gain should equal the split's mass")
	}

	if _, alive := world.splits["prey"]; alive {
		panic("The consumed split should be gone")
	}

	if _, alive := world.players[owner.Id]; !alive {
		panic("Consuming a split should not touch its owner")
	}
}

func TestConsumeWithSplitLeavesPlayerUntouched(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 40, 100)

	result, ok := world.ConsumePlayer(
		consumer.Id,
		target.Id,
		EntityTypePlayer,
		EntityTypeSplit,
		"split-1",
		&ConsumingEntity{Id: "split-1", X: 500, Y: 500, Mass: 400},
	)

	if !ok {
		panic("A heavy enough split should consume on behalf of its owner")
	}

	if result.NewMass != 500 {
		panic("The reported new mass should be the split's mass plus the gain")
	}

	if world.players[consumer.Id].Mass != 40 {
		panic("Split consumption must not mutate the owner's server-side mass")
	}
}

func TestConsumeWithSplitRequiresEntityData(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 400, 100)

	if _, ok := world.ConsumePlayer(consumer.Id, target.Id, EntityTypePlayer, EntityTypeSplit, "split-1", nil); ok {
		panic("Split consumption without entity data should be rejected")
	}
}

func TestConsumeUnknownTargetType(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, target := makeDuel(world, 400, 100)

	if _, ok := world.ConsumePlayer(consumer.Id, target.Id, "pellet", EntityTypePlayer, "main", nil); ok {
		panic("Unknown target types should be rejected")
	}
}

func TestConsumeOtherEjectedFixedGain(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, owner := makeDuel(world, 100, 100)

	// blob mass deliberately huge; the gain is fixed regardless
	world.ReplaceEjected(owner.Id, []EjectedUpdate{{X: 500, Y: 500, Mass: 9000}})
	blob := world.PlayerEjected()[0]

	result, ok := world.ConsumeOtherEjected(consumer.Id, blob.Id, EntityTypePlayer, "main", nil)

	if !ok {
		panic("An overlapping foreign blob should be consumable")
	}

	if result.GainedMass != world.cfg.EjectMassGain {
		panic("Ejected consumption should always yield the fixed gain")
	}

	if result.OriginalOwnerId != owner.Id {
		panic("The result should name the blob's original owner")
	}

	if world.players[consumer.Id].Mass != 100+world.cfg.EjectMassGain {
		panic("The consumer should grow by the fixed gain")
	}

	if world.Counts().Ejected != 0 {
		panic("The consumed blob should be gone")
	}
}

func TestConsumeOwnEjectedRefused(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer := world.CreatePlayer()
	world.players[consumer.Id].X = 500
	world.players[consumer.Id].Y = 500

	world.ReplaceEjected(consumer.Id, []EjectedUpdate{{X: 500, Y: 500, Mass: 13}})
	blob := world.PlayerEjected()[0]

	if _, ok := world.ConsumeOtherEjected(consumer.Id, blob.Id, EntityTypePlayer, "main", nil); ok {
		panic("A player must never consume its own ejected mass")
	}

	if world.Counts().Ejected != 1 {
		panic("The refused blob should survive")
	}
}

func TestConsumeEjectedOutOfReach(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, owner := makeDuel(world, 100, 100)

	reach := world.players[consumer.Id].Radius
	world.ReplaceEjected(owner.Id, []EjectedUpdate{{X: 500 + reach, Y: 500, Mass: 13}})
	blob := world.PlayerEjected()[0]

	if _, ok := world.ConsumeOtherEjected(consumer.Id, blob.Id, EntityTypePlayer, "main", nil); ok {
		panic("A blob centered on the rim should be out of reach")
	}
}

func TestConsumeEjectedWithSplit(t *testing.T) {
	world := NewWorldState(testConfig())

	consumer, owner := makeDuel(world, 100, 100)

	// consumer's main body is far away; only the split overlaps
	world.players[consumer.Id].X = 1500
	world.players[consumer.Id].Y = 1500

	world.ReplaceEjected(owner.Id, []EjectedUpdate{{X: 500, Y: 500, Mass: 13}})
	blob := world.PlayerEjected()[0]

	result, ok := world.ConsumeOtherEjected(
		consumer.Id,
		blob.Id,
		EntityTypeSplit,
		"split-1",
		&ConsumingEntity{Id: "split-1", X: 500, Y: 500, Mass: 60},
	)

	if !ok {
		panic("An overlapping split should consume a foreign blob")
	}

	if result.NewMass != 60+world.cfg.EjectMassGain {
		panic("The reported mass should be the split's mass plus the fixed gain")
	}

	if world.players[consumer.Id].Mass != 100 {
		panic("Split consumption must not mutate the owner's server-side mass")
	}
}
