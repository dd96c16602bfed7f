package protocol

import (
	"encoding/json"
	"errors"

	"github.com/yosytuvy/agario/arenaserver/state"
)

// Inbound client messages. Flat JSON objects discriminated by a "type"
// field; required values are pointer fields so a missing field is
// distinguishable from a zero and the message can be dropped as malformed.

const (
	MessageTypePlayerUpdate        = "player_update"
	MessageTypeConsumePellet       = "consume_pellet"
	MessageTypeFeedVirus           = "feed_virus"
	MessageTypeConsumeVirus        = "consume_virus"
	MessageTypeConsumePlayer       = "consume_player"
	MessageTypeConsumeOtherEjected = "consume_other_ejected"
)

type MessageEnvelope struct {
	Type string `json:"type"`
}

// DecodeMessageType peeks at the discriminator without committing to a
// payload shape.
func DecodeMessageType(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("empty message")
	}

	var envelope MessageEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", err
	}

	if envelope.Type == "" {
		return "", errors.New("message without type discriminator")
	}

	return envelope.Type, nil
}

type MessagePlayerUpdate struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Mass   *float64 `json:"mass"`
	Radius *float64 `json:"radius"`
	Color  string   `json:"color"`

	// optional; when present they replace the player's collections wholesale
	Splits  *[]state.SplitUpdate   `json:"splits"`
	Ejected *[]state.EjectedUpdate `json:"ejected"`
}

func (m MessagePlayerUpdate) Validate() error {
	if m.X == nil || m.Y == nil || m.Mass == nil || m.Radius == nil {
		return errors.New("player_update: missing x/y/mass/radius")
	}
	return nil
}

type MessageConsumePellet struct {
	PelletId *int `json:"pelletId"`
}

func (m MessageConsumePellet) Validate() error {
	if m.PelletId == nil {
		return errors.New("consume_pellet: missing pelletId")
	}
	return nil
}

type MessageFeedVirus struct {
	VirusId *int     `json:"virusId"`
	Angle   *float64 `json:"angle"`
}

func (m MessageFeedVirus) Validate() error {
	if m.VirusId == nil || m.Angle == nil {
		return errors.New("feed_virus: missing virusId/angle")
	}
	return nil
}

type MessageConsumeVirus struct {
	VirusId *int `json:"virusId"`
}

func (m MessageConsumeVirus) Validate() error {
	if m.VirusId == nil {
		return errors.New("consume_virus: missing virusId")
	}
	return nil
}

type MessageConsumePlayer struct {
	TargetId            *string                `json:"targetId"`
	TargetType          *string                `json:"targetType"`
	ConsumingEntityType string                 `json:"consumingEntityType"`
	ConsumingEntityId   string                 `json:"consumingEntityId"`
	ConsumingEntity     *state.ConsumingEntity `json:"consumingEntity"`
}

func (m MessageConsumePlayer) Validate() error {
	if m.TargetId == nil || m.TargetType == nil {
		return errors.New("consume_player: missing targetId/targetType")
	}
	return nil
}

type MessageConsumeOtherEjected struct {
	EjectedId           *int                   `json:"ejectedId"`
	ConsumingEntityType string                 `json:"consumingEntityType"`
	ConsumingEntityId   string                 `json:"consumingEntityId"`
	ConsumingEntity     *state.ConsumingEntity `json:"consumingEntity"`
}

func (m MessageConsumeOtherEjected) Validate() error {
	if m.EjectedId == nil {
		return errors.New("consume_other_ejected: missing ejectedId")
	}
	return nil
}
