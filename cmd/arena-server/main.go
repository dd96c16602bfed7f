package main

import (
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	bettererrors "github.com/xtuc/better-errors"

	"github.com/yosytuvy/agario/apiserver"
	"github.com/yosytuvy/agario/arenaserver"
	"github.com/yosytuvy/agario/arenaserver/state"
	"github.com/yosytuvy/agario/common"
	"github.com/yosytuvy/agario/common/config"
	"github.com/yosytuvy/agario/common/healthcheck"
	"github.com/yosytuvy/agario/common/recording"
	"github.com/yosytuvy/agario/common/utils"
)

// matches the projectile cadence the game was tuned for
const defaultUpdateRate = 60

func main() {
	env := os.Getenv("ENV")

	rand.Seed(time.Now().UnixNano())

	host := flag.String("host", "", "IP serving the arena; defaults to all interfaces")
	port := flag.Int("port", 8000, "Port serving the arena")
	configpath := flag.String("config", "", "Path to a game config JSON file; defaults apply when empty")
	record := flag.String("record", "", "Record broadcast events to this file")
	updaterate := flag.Int("updaterate", defaultUpdateRate, "Projectile tick frequency in Hz")
	healthport := flag.Int("healthport", 8099, "Port serving the healthcheck (prod only)")

	flag.Parse()

	utils.Assert(*updaterate > 0, "updaterate must be positive")

	log.Println("Agario Arena Server v" + utils.GetVersion())

	cfg := config.DefaultGameConfig()
	if *configpath != "" {
		cfg = config.LoadGameConfig(*configpath)
	}

	var recorder recording.Recorder = recording.MakeEmptyRecorder()
	if *record != "" {
		recorder = recording.MakeGameRecorder(*record)
	}

	world := state.NewWorldState(cfg)
	srv := arenaserver.NewServer(world, *updaterate, recorder)

	addr := *host + ":" + strconv.Itoa(*port)
	api := apiserver.NewApiService(addr, srv)

	go func() {
		if err := api.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			berror := bettererrors.
				New("Could not serve the API").
				SetContext("addr", addr).
				With(bettererrors.NewFromErr(err))

			utils.FailWith(berror)
		}
	}()

	var hc *healthcheck.HealthCheckServer
	if env == "prod" {
		hc = NewHealthCheck(srv, ":"+strconv.Itoa(*healthport))
		hc.Start()
	}

	// handling signals
	go func() {
		<-common.SignalHandler()
		utils.Debug("sighandler", "RECEIVED SHUTDOWN SIGNAL; closing.")
		api.Stop()
		srv.Stop()
	}()

	<-srv.Start()

	if hc != nil {
		hc.Stop()
	}
}
