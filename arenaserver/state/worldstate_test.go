package state

import (
	"testing"

	"github.com/yosytuvy/agario/common/config"
)

func testConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.WorldSize = 2000
	cfg.PelletCount = 10
	cfg.VirusCount = 3

	return cfg
}

func TestWorldSeedsPopulations(t *testing.T) {
	world := NewWorldState(testConfig())

	counts := world.Counts()

	if counts.Pellets != 10 {
		panic("World should seed the configured pellet count")
	}

	if counts.Viruses != 3 {
		panic("World should seed the configured virus count")
	}
}

func TestConsumePelletKeepsPopulation(t *testing.T) {
	world := NewWorldState(testConfig())

	pellets := world.Pellets()
	victim := pellets[0].Id

	result, ok := world.ConsumePellet(victim)

	if !ok {
		panic("Consuming a live pellet should succeed")
	}

	if result.Consumed != victim {
		panic("Result should report the consumed pellet id")
	}

	if result.Spawned.Id == victim {
		panic("Replacement pellet should get a fresh id")
	}

	if world.Counts().Pellets != 10 {
		panic("Pellet population should stay constant")
	}
}

func TestConsumePelletUnknown(t *testing.T) {
	world := NewWorldState(testConfig())

	if _, ok := world.ConsumePellet(424242); ok {
		panic("Consuming an unknown pellet should be a no-op")
	}

	if world.Counts().Pellets != 10 {
		panic("A failed consumption should not spawn anything")
	}
}

func TestConsumePelletTwice(t *testing.T) {
	world := NewWorldState(testConfig())

	victim := world.Pellets()[0].Id

	if _, ok := world.ConsumePellet(victim); !ok {
		panic("First consumption should succeed")
	}

	if _, ok := world.ConsumePellet(victim); ok {
		panic("Second consumption of the same pellet should fail")
	}
}

func TestConsumeVirusKeepsPopulation(t *testing.T) {
	world := NewWorldState(testConfig())

	victim := world.Viruses()[0].Id

	result, ok := world.ConsumeVirus(victim)

	if !ok {
		panic("Consuming a live virus should succeed")
	}

	if result.Spawned.Id == victim {
		panic("Replacement virus should get a fresh id")
	}

	if world.Counts().Viruses != 3 {
		panic("Virus population should stay constant")
	}

	if _, stillIndexed := world.virusspatials[victim]; stillIndexed {
		panic("Consumed virus should be removed from the spatial index")
	}
}

func TestRemovePlayerCascades(t *testing.T) {
	world := NewWorldState(testConfig())

	player := world.CreatePlayer()

	world.ReplaceSplits(player.Id, []SplitUpdate{
		{Id: "s1", X: 10, Y: 10, Mass: 20},
		{Id: "s2", X: 20, Y: 20, Mass: 20},
	})
	world.ReplaceEjected(player.Id, []EjectedUpdate{
		{X: 30, Y: 30, Mass: 13},
	})

	if !world.RemovePlayer(player.Id) {
		panic("Removing a live player should report found")
	}

	counts := world.Counts()

	if counts.Players != 0 || counts.Splits != 0 || counts.Ejected != 0 {
		panic("Removal should cascade to splits and ejected mass")
	}
}

func TestRemovePlayerUnknown(t *testing.T) {
	world := NewWorldState(testConfig())

	if world.RemovePlayer("nobody") {
		panic("Removing an unknown player should report not found")
	}
}

func TestUpdatePlayerUnknown(t *testing.T) {
	world := NewWorldState(testConfig())

	if world.UpdatePlayer("nobody", 1, 2, 3, 4, "") {
		panic("Updating an unknown player should be a no-op")
	}
}

func TestUpdatePlayerKeepsColorWhenOmitted(t *testing.T) {
	world := NewWorldState(testConfig())

	player := world.CreatePlayer()

	world.UpdatePlayer(player.Id, 1, 2, 30, 27.4, "")

	updated, _ := world.GetPlayer(player.Id)

	if updated.Color != player.Color {
		panic("An empty color should leave the current color in place")
	}

	if updated.Mass != 30 {
		panic("Mass should have been updated")
	}
}

func TestReplaceSplitsKeepsClientIds(t *testing.T) {
	world := NewWorldState(testConfig())

	player := world.CreatePlayer()

	world.ReplaceSplits(player.Id, []SplitUpdate{
		{Id: "client-split-7", X: 1, Y: 1, Mass: 16},
	})

	splits := world.PlayerSplits()

	if len(splits) != 1 || splits[0].Id != "client-split-7" {
		panic("Client-provided split ids should be preserved")
	}
}

func TestReplaceSplitsSynthesizesMissingIds(t *testing.T) {
	world := NewWorldState(testConfig())

	player := world.CreatePlayer()

	world.ReplaceSplits(player.Id, []SplitUpdate{
		{X: 1, Y: 1, Mass: 16},
		{X: 2, Y: 2, Mass: 16},
	})

	splits := world.PlayerSplits()

	if len(splits) != 2 {
		panic("Both splits should have been stored")
	}

	if splits[0].Id == splits[1].Id {
		panic("Synthesized split ids should be distinct")
	}
}

func TestReplaceSplitsIsWholesale(t *testing.T) {
	world := NewWorldState(testConfig())

	player := world.CreatePlayer()

	world.ReplaceSplits(player.Id, []SplitUpdate{
		{Id: "a", Mass: 16}, {Id: "b", Mass: 16}, {Id: "c", Mass: 16},
	})
	world.ReplaceSplits(player.Id, []SplitUpdate{
		{Id: "d", Mass: 24},
	})

	splits := world.PlayerSplits()

	if len(splits) != 1 || splits[0].Id != "d" {
		panic("Each update should replace the previous split collection wholesale")
	}
}

func TestReplaceEjectedAssignsFreshIds(t *testing.T) {
	world := NewWorldState(testConfig())

	player := world.CreatePlayer()

	world.ReplaceEjected(player.Id, []EjectedUpdate{{Mass: 13}, {Mass: 13}})
	firstGen := world.PlayerEjected()

	world.ReplaceEjected(player.Id, []EjectedUpdate{{Mass: 13}})
	secondGen := world.PlayerEjected()

	for _, old := range firstGen {
		for _, current := range secondGen {
			if old.Id == current.Id {
				panic("Replacement ejected blobs should never reuse ids")
			}
		}
	}
}

func TestReplaceForUnknownPlayerIsNoop(t *testing.T) {
	world := NewWorldState(testConfig())

	world.ReplaceSplits("nobody", []SplitUpdate{{Id: "x", Mass: 16}})
	world.ReplaceEjected("nobody", []EjectedUpdate{{Mass: 13}})

	counts := world.Counts()

	if counts.Splits != 0 || counts.Ejected != 0 {
		panic("Updates for an unknown player should not create orphans")
	}
}
