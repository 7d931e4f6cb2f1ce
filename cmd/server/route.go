package main

import (
	"github.com/matryer/way"
)

const URI_RUN = "/run_simulation"
const URI_HEALTH = "/health"
const URI_WATCH = "/watch"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_RUN, s.SimServer.HandleRunSimulation())
	s.router.HandleFunc("GET", URI_HEALTH, s.SimServer.HandleHealth())
	s.router.HandleFunc("GET", URI_WATCH, s.SimServer.HandleWatch())
}
