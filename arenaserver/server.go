package arenaserver

import (
	"encoding/json"
	"log"
	"runtime"
	"strconv"
	"time"

	notify "github.com/bitly/go-notify"
	"github.com/gorilla/websocket"
	"github.com/ttacon/chalk"

	"github.com/yosytuvy/agario/arenaserver/protocol"
	"github.com/yosytuvy/agario/arenaserver/state"
	"github.com/yosytuvy/agario/common/influxdb"
	"github.com/yosytuvy/agario/common/recording"
	"github.com/yosytuvy/agario/common/utils"
)

// Server owns the arena: the world state, the set of live sessions and the
// projectile tick loop. One Server per process.
type Server struct {
	world    *state.WorldState
	sessions *SessionMap
	recorder recording.Recorder

	updaterate   int
	tickduration time.Duration

	stopticking  chan bool
	nbhandshaked int

	metricsclient    *influxdb.Client
	ticksCounter     *influxdb.Counter
	messagesCounter  *influxdb.Counter
	broadcastCounter *influxdb.Counter
}

func NewServer(world *state.WorldState, updaterate int, recorder recording.Recorder) *Server {

	metricsclient, err := influxdb.NewClient("arena-server")
	if err != nil {
		utils.Debug("arena-server", "Metrics disabled; "+err.Error())
	}

	tickduration := time.Duration((1000000 / time.Duration(updaterate)) * time.Microsecond)

	s := &Server{
		world:    world,
		sessions: NewSessionMap(),
		recorder: recorder,

		updaterate:   updaterate,
		tickduration: tickduration,

		stopticking: make(chan bool),

		metricsclient:    metricsclient,
		ticksCounter:     influxdb.NewCounter(),
		messagesCounter:  influxdb.NewCounter(),
		broadcastCounter: influxdb.NewCounter(),
	}

	s.metricsclient.Loop(func() {
		counts := s.world.Counts()

		s.metricsclient.WriteAppMetric("arena", map[string]interface{}{
			"ticks":       s.ticksCounter.GetAndReset(),
			"messages":    s.messagesCounter.GetAndReset(),
			"broadcasts":  s.broadcastCounter.GetAndReset(),
			"sessions":    s.sessions.Size(),
			"players":     counts.Players,
			"projectiles": counts.Projectiles,
		})
	})

	return s
}

func (server *Server) World() *state.WorldState {
	return server.world
}

// Start launches the tick loop and the monitoring routine; the returned
// channel is closed when the server has fully wound down after Stop.
func (server *Server) Start() chan interface{} {
	go server.startTicking()
	go server.monitoring()

	block := make(chan interface{})
	notify.Start("app:stopticking", block)

	return block
}

func (server *Server) Stop() {
	server.stopticking <- true

	server.sessions.Each(func(session *Session) {
		server.closeSession(session)
	})

	server.metricsclient.TearDown()
	server.recorder.Close()
}

/* ***************************************************************************/
/* Ticking */
/* ***************************************************************************/

func (server *Server) startTicking() {
	log.Println(chalk.Green.Color("Starting projectile tick loop at " + strconv.Itoa(server.updaterate) + " Hz"))

	ticker := time.Tick(server.tickduration)
	lasttick := time.Now()

	for {
		select {
		case <-server.stopticking:
			{
				log.Println(chalk.Yellow.Color("Tick loop stopped"))
				notify.Post("app:stopticking", nil)
				return
			}
		case <-ticker:
			{
				now := time.Now()
				dt := now.Sub(lasttick).Seconds()
				lasttick = now

				server.doTick(dt)
			}
		}
	}
}

func (server *Server) doTick(dt float64) {
	server.ticksCounter.Add(1)

	outcomes := server.world.UpdateProjectiles(dt)
	if len(outcomes) == 0 {
		return
	}

	server.Broadcast(protocol.MakeEventProjectileUpdates(outcomes), nil)
}

func (server *Server) monitoring() {
	monitorfreq := time.Second
	for {
		select {
		case <-time.After(monitorfreq):
			{
				counts := server.world.Counts()

				log.Println(
					chalk.Cyan,
					"sessions:", server.sessions.Size(),
					"players:", counts.Players,
					"projectiles:", counts.Projectiles,
					"goroutines:", runtime.NumGoroutine(),
					chalk.Reset,
				)
			}
		}
	}
}

/* ***************************************************************************/
/* Session lifecycle */
/* ***************************************************************************/

// HandleConnection runs the whole life of one websocket client; it returns
// when the connection is gone and the session is cleaned up.
func (server *Server) HandleConnection(conn *websocket.Conn) {
	player := server.world.CreatePlayer()
	session := makeSession(server, conn, player)

	// registered before the snapshot is built, so a join landing after the
	// snapshot is announced to this client instead of lost
	server.sessions.Set(player.Id, session)
	server.nbhandshaked++

	// the init snapshot lists the other players only
	others := make([]state.Player, 0)
	for _, p := range server.world.Players() {
		if p.Id != player.Id {
			others = append(others, p)
		}
	}

	if err := session.sendEvent(protocol.EventInit{
		Type:             protocol.EventTypeInit,
		PlayerId:         player.Id,
		Config:           server.world.Config(),
		Pellets:          server.world.Pellets(),
		Viruses:          server.world.Viruses(),
		VirusProjectiles: server.world.Projectiles(),
		Players:          others,
		PlayerSplits:     server.world.PlayerSplits(),
		PlayerEjected:    server.world.PlayerEjected(),
	}); err != nil {
		server.closeSession(session)
		return
	}

	log.Println(chalk.Green.Color("Player " + player.Id + " joined"))

	server.Broadcast(protocol.MakeEventPlayerJoined(player), session)

	session.readPump()
}

// closeSession is the single cleanup path for a session, whatever killed it
// (read failure, send failure, server shutdown). Safe to call repeatedly;
// player_left goes out exactly once.
func (server *Server) closeSession(session *Session) {
	if !session.markClosed() {
		return
	}

	playerId := session.PlayerId()

	server.sessions.Remove(playerId)
	session.conn.Close()
	server.world.RemovePlayer(playerId)

	log.Println(chalk.Yellow.Color("Player " + playerId + " left"))

	server.Broadcast(protocol.MakeEventPlayerLeft(playerId), nil)
}

/* ***************************************************************************/
/* Broadcast */
/* ***************************************************************************/

// Broadcast serializes the event once and fans it out to every live session
// except exclude (nil for all). A failed write kills that session only.
func (server *Server) Broadcast(event interface{}, exclude *Session) {
	data, err := json.Marshal(event)
	if err != nil {
		utils.Debug("arena-server", "Could not marshal broadcast event; "+err.Error())
		return
	}

	server.broadcastCounter.Add(1)

	if err := server.recorder.Record(string(data)); err != nil {
		utils.Debug("recorder", "Could not record broadcast; "+err.Error())
	}

	var failed []*Session

	server.sessions.Each(func(session *Session) {
		if session == exclude {
			return
		}

		if err := session.send(data); err != nil {
			failed = append(failed, session)
		}
	})

	for _, session := range failed {
		server.closeSession(session)
	}
}
