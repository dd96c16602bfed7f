package protocol

import (
	"github.com/yosytuvy/agario/arenaserver/state"
	"github.com/yosytuvy/agario/common/config"
)

// Outbound server events. Same flat, type-discriminated JSON shape as the
// inbound messages.

const (
	EventTypeInit                 = "init"
	EventTypePlayerJoined         = "player_joined"
	EventTypePlayerLeft           = "player_left"
	EventTypePlayerUpdate         = "player_update"
	EventTypePelletUpdate         = "pellet_update"
	EventTypeVirusFeed            = "virus_feed"
	EventTypeVirusUpdate          = "virus_update"
	EventTypePlayerConsumed       = "player_consumed"
	EventTypeOtherEjectedConsumed = "other_ejected_consumed"
	EventTypeProjectileUpdates    = "projectile_updates"
)

type EventInit struct {
	Type             string                  `json:"type"`
	PlayerId         string                  `json:"playerId"`
	Config           config.GameConfig       `json:"config"`
	Pellets          []state.Pellet          `json:"pellets"`
	Viruses          []state.Virus           `json:"viruses"`
	VirusProjectiles []state.VirusProjectile `json:"virusProjectiles"`
	Players          []state.Player          `json:"players"`
	PlayerSplits     []state.PlayerSplit     `json:"playerSplits"`
	PlayerEjected    []state.PlayerEjected   `json:"playerEjected"`
}

type EventPlayerJoined struct {
	Type   string       `json:"type"`
	Player state.Player `json:"player"`
}

func MakeEventPlayerJoined(player state.Player) EventPlayerJoined {
	return EventPlayerJoined{Type: EventTypePlayerJoined, Player: player}
}

type EventPlayerLeft struct {
	Type     string `json:"type"`
	PlayerId string `json:"playerId"`
}

func MakeEventPlayerLeft(playerId string) EventPlayerLeft {
	return EventPlayerLeft{Type: EventTypePlayerLeft, PlayerId: playerId}
}

type EventPlayerUpdate struct {
	Type     string  `json:"type"`
	PlayerId string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
	Color    string  `json:"color"`

	Splits  []state.PlayerSplit   `json:"splits"`
	Ejected []state.PlayerEjected `json:"ejected"`
}

type EventPelletUpdate struct {
	Type string `json:"type"`
	state.PelletUpdate
}

func MakeEventPelletUpdate(result state.PelletUpdate) EventPelletUpdate {
	return EventPelletUpdate{Type: EventTypePelletUpdate, PelletUpdate: result}
}

type EventVirusFeed struct {
	Type string `json:"type"`
	state.VirusFeedResult
}

func MakeEventVirusFeed(result state.VirusFeedResult) EventVirusFeed {
	return EventVirusFeed{Type: EventTypeVirusFeed, VirusFeedResult: result}
}

type EventVirusUpdate struct {
	Type string `json:"type"`
	state.VirusUpdate
}

func MakeEventVirusUpdate(result state.VirusUpdate) EventVirusUpdate {
	return EventVirusUpdate{Type: EventTypeVirusUpdate, VirusUpdate: result}
}

type EventPlayerConsumed struct {
	Type string `json:"type"`
	state.PlayerConsumedResult
}

func MakeEventPlayerConsumed(result state.PlayerConsumedResult) EventPlayerConsumed {
	return EventPlayerConsumed{Type: EventTypePlayerConsumed, PlayerConsumedResult: result}
}

type EventOtherEjectedConsumed struct {
	Type string `json:"type"`
	state.EjectedConsumedResult
}

func MakeEventOtherEjectedConsumed(result state.EjectedConsumedResult) EventOtherEjectedConsumed {
	return EventOtherEjectedConsumed{Type: EventTypeOtherEjectedConsumed, EjectedConsumedResult: result}
}

type EventProjectileUpdates struct {
	Type    string                    `json:"type"`
	Updates []state.ProjectileOutcome `json:"updates"`
}

func MakeEventProjectileUpdates(updates []state.ProjectileOutcome) EventProjectileUpdates {
	return EventProjectileUpdates{Type: EventTypeProjectileUpdates, Updates: updates}
}
