package handler

import (
	"net/http"

	"github.com/yosytuvy/agario/arenaserver/state"
)

func Config(world *state.WorldState) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, world.Config())
	}
}
