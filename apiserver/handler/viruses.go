package handler

import (
	"net/http"

	"github.com/yosytuvy/agario/arenaserver/state"
)

func Viruses(world *state.WorldState) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, map[string]interface{}{
			"viruses":     world.Viruses(),
			"projectiles": world.Projectiles(),
		})
	}
}
