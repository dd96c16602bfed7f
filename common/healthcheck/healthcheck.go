package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yosytuvy/agario/common/utils"
)

type HealthCheckServer struct {
	checkers map[string]HealthCheckHandler
	server   *http.Server
}

type HealthChecks struct {
	Status bool
	Name   string
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks
	StatusCode int
}

type HealthCheckHandler func() (err error, ok bool)

func NewHealthCheckServer(addr string) *HealthCheckServer {
	hc := &HealthCheckServer{
		checkers: make(map[string]HealthCheckHandler),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", hc.httpHandler)

	hc.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	return hc
}

func (hc *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	hc.checkers[name] = handler
}

func (hc *HealthCheckServer) httpHandler(w http.ResponseWriter, r *http.Request) {
	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0),
		StatusCode: 200,
	}

	for name, checker := range hc.checkers {
		err, checkerRes := checker()

		if err == nil {
			res.Checks = append(res.Checks, HealthChecks{
				Name:   name,
				Status: checkerRes,
			})

			if !checkerRes {
				res.StatusCode = http.StatusServiceUnavailable
			}
		} else {
			res.StatusCode = http.StatusInternalServerError
		}
	}

	data, err := json.Marshal(res)
	utils.Check(err, "Failed to marshal healthcheck response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}

func (hc *HealthCheckServer) Start() {
	go func() {
		if err := hc.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Debug("healthcheck", "healthcheck server stopped; "+err.Error())
		}
	}()
}

func (hc *HealthCheckServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hc.server.Shutdown(ctx)
}
