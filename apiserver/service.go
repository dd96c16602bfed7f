package apiserver

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	apphandler "github.com/yosytuvy/agario/apiserver/handler"
	"github.com/yosytuvy/agario/arenaserver"
)

// ApiService exposes the REST surface and the game websocket endpoint over a
// single listener. REST handlers only read world snapshots; every mutation
// goes through the websocket protocol.
type ApiService struct {
	addr   string
	arena  *arenaserver.Server
	server *http.Server
}

func NewApiService(addr string, arena *arenaserver.Server) *ApiService {
	return &ApiService{
		addr:  addr,
		arena: arena,
	}
}

func (api *ApiService) ListenAndServe() error {

	world := api.arena.World()

	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Home()),
	)).Methods("GET")

	router.Handle("/api/game/config", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Config(world)),
	)).Methods("GET")

	router.Handle("/api/game/pellets", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Pellets(world)),
	)).Methods("GET")

	router.Handle("/api/game/viruses", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Viruses(world)),
	)).Methods("GET")

	router.Handle("/api/game/players", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Players(world)),
	)).Methods("GET")

	router.Handle("/api/game/stats", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Stats(world)),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Websocket(api.arena)),
	)).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET"}),
	)

	log.Println("API Listening on " + api.addr)

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: cors(router),
	}

	return api.server.ListenAndServe()
}

func (api *ApiService) Stop() {
	if api.server != nil {
		api.server.Shutdown(context.TODO())
	}
}
