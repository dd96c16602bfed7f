package handler

import (
	"net/http"

	"github.com/yosytuvy/agario/arenaserver/state"
)

func Players(world *state.WorldState) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, map[string]interface{}{
			"players": world.Players(),
			"splits":  world.PlayerSplits(),
			"ejected": world.PlayerEjected(),
		})
	}
}
