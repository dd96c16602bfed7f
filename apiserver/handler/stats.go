package handler

import (
	"net/http"

	"github.com/yosytuvy/agario/arenaserver/state"
)

func Stats(world *state.WorldState) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, world.Counts())
	}
}
