package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yosytuvy/agario/arenaserver"
)

func Websocket(arena *arenaserver.Server) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		// blocks for the whole life of the connection
		arena.HandleConnection(c)
	}
}
