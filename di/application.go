package di

import (
	"studio/config"
	"studio/infras/otel"
	"studio/internal/notifier"
	"studio/transport/http"
	"studio/transport/scheduler"
)

// Application is everything cmd/app needs to run and stop the studio.
type Application struct {
	Config     *config.Config
	HTTP       *http.HTTP
	Scheduler  *scheduler.Scheduler
	Dispatcher *notifier.Dispatcher
	Otel       otel.Otel
}
