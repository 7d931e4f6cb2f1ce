package main

import (
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/rescue/server"
)

type Server struct {
	router    *way.Router
	SimServer *server.SimServer
}

func main() {
	scenario := server.DefaultScenario()
	if path := os.Getenv("SCENARIO"); path != "" {
		loaded, err := server.Load(path)
		if err != nil {
			log.Fatalf("cant load scenario %s: %v", path, err)
		}
		scenario = loaded
		log.Printf("loaded scenario from %s", path)
	}

	Server := Server{
		SimServer: server.NewSimServer(scenario),
	}
	Server.routes()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, Server.router))
}
