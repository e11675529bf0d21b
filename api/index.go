package handler

import (
	"net/http"
	"sync"

	"studio/config"
	"studio/di"
	"studio/shared/logger"
)

var (
	app  *di.Application
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app, _ = di.InitializeService()
	})

	app.HTTP.ServeHTTP(w, r)
}
