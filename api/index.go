package handler

import (
	"net/http"
	"sync"

	"floorplan/config"
	"floorplan/di"
	"floorplan/shared/logger"
	floorplanHTTP "floorplan/transport/http"
)

var (
	server *floorplanHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint; the dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
