package common

import (
	"os"
	"os/signal"
	"syscall"
)

func SignalHandler() chan os.Signal {
	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)

	return hassigtermed
}
