package arenaserver

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yosytuvy/agario/arenaserver/protocol"
	"github.com/yosytuvy/agario/arenaserver/state"
	"github.com/yosytuvy/agario/common/utils"
)

// Session binds one websocket connection to one player. Lifecycle is
// connecting -> active -> closed; read failures and broadcast send failures
// both funnel into Server.closeSession, which runs exactly once.
type Session struct {
	server *Server
	conn   *websocket.Conn
	player state.Player

	sendmutex *sync.Mutex

	closed      bool
	closedmutex *sync.Mutex
}

func makeSession(server *Server, conn *websocket.Conn, player state.Player) *Session {
	return &Session{
		server: server,
		conn:   conn,
		player: player,

		sendmutex:   &sync.Mutex{},
		closedmutex: &sync.Mutex{},
	}
}

func (session *Session) PlayerId() string {
	return session.player.Id
}

// markClosed flips the session to closed; returns false when it already was,
// so cleanup runs once even if the read pump and a failing broadcast race.
func (session *Session) markClosed() bool {
	session.closedmutex.Lock()
	defer session.closedmutex.Unlock()

	if session.closed {
		return false
	}

	session.closed = true
	return true
}

func (session *Session) send(data []byte) error {
	session.sendmutex.Lock()
	defer session.sendmutex.Unlock()

	return session.conn.WriteMessage(websocket.TextMessage, data)
}

func (session *Session) sendEvent(event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return session.send(data)
}

// readPump blocks until the connection dies; every inbound message is one
// dispatch step. Malformed messages are dropped, the session survives.
func (session *Session) readPump() {
	for {
		_, raw, err := session.conn.ReadMessage()
		if err != nil {
			session.server.closeSession(session)
			return
		}

		session.server.messagesCounter.Add(1)

		if err := session.dispatch(raw); err != nil {
			utils.Debug("session", "Dropped message from player "+session.player.Id+"; "+err.Error())
		}
	}
}

func (session *Session) dispatch(raw []byte) error {
	msgtype, err := protocol.DecodeMessageType(raw)
	if err != nil {
		return err
	}

	switch msgtype {
	case protocol.MessageTypePlayerUpdate:
		{
			var msg protocol.MessagePlayerUpdate
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			session.handlePlayerUpdate(msg)
		}
	case protocol.MessageTypeConsumePellet:
		{
			var msg protocol.MessageConsumePellet
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			if result, ok := session.server.world.ConsumePellet(*msg.PelletId); ok {
				session.server.Broadcast(protocol.MakeEventPelletUpdate(result), nil)
			}
		}
	case protocol.MessageTypeFeedVirus:
		{
			var msg protocol.MessageFeedVirus
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			if result, ok := session.server.world.FeedVirus(*msg.VirusId, *msg.Angle); ok {
				session.server.Broadcast(protocol.MakeEventVirusFeed(result), nil)
			}
		}
	case protocol.MessageTypeConsumeVirus:
		{
			var msg protocol.MessageConsumeVirus
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			if result, ok := session.server.world.ConsumeVirus(*msg.VirusId); ok {
				session.server.Broadcast(protocol.MakeEventVirusUpdate(result), nil)
			}
		}
	case protocol.MessageTypeConsumePlayer:
		{
			var msg protocol.MessageConsumePlayer
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			result, ok := session.server.world.ConsumePlayer(
				session.player.Id,
				*msg.TargetId,
				*msg.TargetType,
				consumingEntityTypeOrDefault(msg.ConsumingEntityType),
				consumingEntityIdOrDefault(msg.ConsumingEntityId),
				msg.ConsumingEntity,
			)
			if ok {
				session.server.Broadcast(protocol.MakeEventPlayerConsumed(result), nil)
			}
		}
	case protocol.MessageTypeConsumeOtherEjected:
		{
			var msg protocol.MessageConsumeOtherEjected
			if err := json.Unmarshal(raw, &msg); err != nil {
				return err
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			result, ok := session.server.world.ConsumeOtherEjected(
				session.player.Id,
				*msg.EjectedId,
				consumingEntityTypeOrDefault(msg.ConsumingEntityType),
				consumingEntityIdOrDefault(msg.ConsumingEntityId),
				msg.ConsumingEntity,
			)
			if ok {
				session.server.Broadcast(protocol.MakeEventOtherEjectedConsumed(result), nil)
			}
		}
	default:
		return errors.New("unknown message type " + msgtype)
	}

	return nil
}

func (session *Session) handlePlayerUpdate(msg protocol.MessagePlayerUpdate) {
	world := session.server.world

	world.UpdatePlayer(session.player.Id, *msg.X, *msg.Y, *msg.Mass, *msg.Radius, msg.Color)

	if msg.Splits != nil {
		world.ReplaceSplits(session.player.Id, *msg.Splits)
	}

	if msg.Ejected != nil {
		world.ReplaceEjected(session.player.Id, *msg.Ejected)
	}

	player, found := world.GetPlayer(session.player.Id)
	if !found {
		// player was consumed or removed concurrently; nothing to rebroadcast
		return
	}

	session.server.Broadcast(protocol.EventPlayerUpdate{
		Type:     protocol.EventTypePlayerUpdate,
		PlayerId: session.player.Id,
		X:        *msg.X,
		Y:        *msg.Y,
		Mass:     *msg.Mass,
		Radius:   *msg.Radius,
		Color:    player.Color,
		Splits:   world.PlayerSplits(),
		Ejected:  world.PlayerEjected(),
	}, session)
}

func consumingEntityTypeOrDefault(entityType string) string {
	if entityType == "" {
		return state.EntityTypePlayer
	}
	return entityType
}

func consumingEntityIdOrDefault(entityId string) string {
	if entityId == "" {
		return "main"
	}
	return entityId
}
