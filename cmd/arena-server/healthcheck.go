package main

import (
	"errors"

	"github.com/yosytuvy/agario/arenaserver"
	"github.com/yosytuvy/agario/common/healthcheck"
)

func NewHealthCheck(srv *arenaserver.Server, addr string) *healthcheck.HealthCheckServer {
	healthCheckServer := healthcheck.NewHealthCheckServer(addr)

	healthCheckServer.Register("world", worldCheck(srv))

	return healthCheckServer
}

// worldCheck verifies the store's population invariants. Pellets are strictly
// conserved; viruses grow over time because every completed mitosis converts
// its projectile into a brand-new virus, so only a shortfall is a defect.
func worldCheck(srv *arenaserver.Server) healthcheck.HealthCheckHandler {
	return func() (err error, ok bool) {
		counts := srv.World().Counts()
		cfg := srv.World().Config()

		if counts.Pellets != cfg.PelletCount {
			return errors.New("pellet population drifted"), false
		}

		if counts.Viruses < cfg.VirusCount {
			return errors.New("virus population below seed count"), false
		}

		return nil, true
	}
}
