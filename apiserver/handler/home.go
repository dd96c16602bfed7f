package handler

import (
	"net/http"
)

func Home() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, map[string]interface{}{
			"message": "Agario Server Running",
		})
	}
}
