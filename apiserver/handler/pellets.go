package handler

import (
	"net/http"

	"github.com/yosytuvy/agario/arenaserver/state"
)

func Pellets(world *state.WorldState) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, map[string]interface{}{
			"pellets": world.Pellets(),
		})
	}
}
