package state

import (
	"math"
)

const (
	// strict 10% size advantage required to consume a player or split
	consumeMassRatio = 1.1

	EntityTypePlayer = "player"
	EntityTypeSplit  = "split"
)

// ConsumingEntity is the client-reported body doing the consuming when it is
// a split; the server does not simulate splits and trusts these values,
// verifying only the legality of the consumption itself.
type ConsumingEntity struct {
	Id   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Mass float64 `json:"mass"`
}

type PlayerConsumedResult struct {
	TargetId            string  `json:"targetId"`
	TargetType          string  `json:"targetType"`
	GainedMass          float64 `json:"gainedMass"`
	ConsumerId          string  `json:"consumerId"`
	NewMass             float64 `json:"newMass"`
	ConsumingEntityType string  `json:"consumingEntityType"`
	ConsumingEntityId   string  `json:"consumingEntityId"`
}

type EjectedConsumedResult struct {
	EjectedId           int     `json:"ejectedId"`
	GainedMass          float64 `json:"gainedMass"`
	ConsumerId          string  `json:"consumerId"`
	NewMass             float64 `json:"newMass"`
	ConsumingEntityType string  `json:"consumingEntityType"`
	ConsumingEntityId   string  `json:"consumingEntityId"`
	OriginalOwnerId     string  `json:"originalOwnerId"`
}

// ConsumePlayer arbitrates "consumer eats target" for player and split
// targets. Preconditions: target center inside the consumer's body, and the
// consumer at least 10% heavier (inclusive on the consumer side). Any
// failure is a silent no-op so clients may fire these speculatively.
//
// On success the target is removed before any mass is transferred, so a
// concurrent arbitration on the same target observes not-found.
func (world *WorldState) ConsumePlayer(
	consumerId string,
	targetId string,
	targetType string,
	consumingEntityType string,
	consumingEntityId string,
	consumingEntity *ConsumingEntity,
) (PlayerConsumedResult, bool) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	consumer, found := world.players[consumerId]
	if !found {
		return PlayerConsumedResult{}, false
	}

	consumingMass, consumingX, consumingY := consumingEntityData(consumer, consumingEntityType, consumingEntity)
	if consumingMass == 0 {
		return PlayerConsumedResult{}, false
	}

	var targetMass, targetX, targetY float64

	switch targetType {
	case EntityTypePlayer:
		target, found := world.players[targetId]
		if !found {
			return PlayerConsumedResult{}, false
		}
		targetMass, targetX, targetY = target.Mass, target.X, target.Y

	case EntityTypeSplit:
		target, found := world.splits[targetId]
		if !found {
			return PlayerConsumedResult{}, false
		}
		targetMass, targetX, targetY = target.Mass, target.X, target.Y

	default:
		return PlayerConsumedResult{}, false
	}

	if consumingMass < targetMass*consumeMassRatio {
		return PlayerConsumedResult{}, false
	}
	if math.Hypot(consumingX-targetX, consumingY-targetY) >= world.cfg.Radius(consumingMass) {
		return PlayerConsumedResult{}, false
	}

	// Target removed first; double-spend prevention.
	if targetType == EntityTypePlayer {
		world.removePlayer(targetId)
	} else {
		delete(world.splits, targetId)
	}

	gainedMass := targetMass

	var newMass float64
	if consumingEntityType == EntityTypePlayer {
		consumer.Mass += gainedMass
		consumer.Radius = world.cfg.Radius(consumer.Mass)
		newMass = consumer.Mass
	} else {
		// Split state stays client-authoritative: report the new mass,
		// let the owner apply it.
		newMass = consumingMass + gainedMass
	}

	return PlayerConsumedResult{
		TargetId:            targetId,
		TargetType:          targetType,
		GainedMass:          gainedMass,
		ConsumerId:          consumerId,
		NewMass:             newMass,
		ConsumingEntityType: consumingEntityType,
		ConsumingEntityId:   consumingEntityId,
	}, true
}

// ConsumeOtherEjected arbitrates consumption of another player's ejected
// mass: collision only, no mass-ratio check, and the gain is always exactly
// EjectMassGain regardless of the blob's reported mass. A player can never
// consume its own ejected mass.
func (world *WorldState) ConsumeOtherEjected(
	consumerId string,
	ejectedId int,
	consumingEntityType string,
	consumingEntityId string,
	consumingEntity *ConsumingEntity,
) (EjectedConsumedResult, bool) {
	world.worldmutex.Lock()
	defer world.worldmutex.Unlock()

	consumer, found := world.players[consumerId]
	if !found {
		return EjectedConsumedResult{}, false
	}

	target, found := world.ejected[ejectedId]
	if !found {
		return EjectedConsumedResult{}, false
	}

	if target.PlayerId == consumerId {
		return EjectedConsumedResult{}, false
	}

	consumingX, consumingY, consumingRadius := consumingPositionAndRadius(world.cfg.Radius, consumer, consumingEntityType, consumingEntity)

	if math.Hypot(consumingX-target.X, consumingY-target.Y) >= consumingRadius {
		return EjectedConsumedResult{}, false
	}

	delete(world.ejected, ejectedId)

	gainedMass := world.cfg.EjectMassGain

	var newMass float64
	if consumingEntityType == EntityTypePlayer {
		consumer.Mass += gainedMass
		consumer.Radius = world.cfg.Radius(consumer.Mass)
		newMass = consumer.Mass
	} else {
		newMass = consumingEntity.Mass + gainedMass
	}

	return EjectedConsumedResult{
		EjectedId:           ejectedId,
		GainedMass:          gainedMass,
		ConsumerId:          consumerId,
		NewMass:             newMass,
		ConsumingEntityType: consumingEntityType,
		ConsumingEntityId:   consumingEntityId,
		OriginalOwnerId:     target.PlayerId,
	}, true
}

func consumingEntityData(consumer *Player, consumingEntityType string, consumingEntity *ConsumingEntity) (mass, x, y float64) {
	if consumingEntityType == EntityTypePlayer {
		return consumer.Mass, consumer.X, consumer.Y
	}
	if consumingEntityType == EntityTypeSplit && consumingEntity != nil {
		return consumingEntity.Mass, consumingEntity.X, consumingEntity.Y
	}
	return 0, 0, 0
}

func consumingPositionAndRadius(radiusOf func(float64) float64, consumer *Player, consumingEntityType string, consumingEntity *ConsumingEntity) (x, y, radius float64) {
	if consumingEntityType == EntityTypePlayer {
		return consumer.X, consumer.Y, consumer.Radius
	}
	if consumingEntityType == EntityTypeSplit && consumingEntity != nil {
		return consumingEntity.X, consumingEntity.Y, radiusOf(consumingEntity.Mass)
	}
	return 0, 0, 0
}
