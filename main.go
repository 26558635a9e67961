package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/middleware"

	"github.com/comandaclub/comanda/internal/bus"
	"github.com/comandaclub/comanda/internal/console"
)

const (
	appNamespace = "COMANDA"
	appName      = "comanda-console"
	appVersion   = "0.1.0"
)

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	apiURL, _ := config.GetString("services.comanda.url")
	if apiURL == "" {
		log.Fatalf("%s(%s) requires services.comanda.url", appName, appVersion)
	}
	api := console.NewAPIClient(apiURL)

	lifecycle := []interface{}{}

	// Close-out events are optional; without a broker the console still works.
	var publisher *bus.NATSPublisher
	natsURL := config.GetStringOrDef("nats.url", "")
	if natsURL != "" {
		publisher, err = bus.NewNATSPublisher(natsURL)
		if err != nil {
			log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
		}
		lifecycle = append(lifecycle, aqm.LifecycleHooks{
			OnStop: func(context.Context) error {
				return publisher.Close()
			},
		})
	}

	sessionTTLStr := config.GetStringOrDef("session.ttl", "8h")
	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	sessions := console.NewSessionStore(sessionTTL)

	var controller *console.Controller
	if publisher != nil {
		controller = console.NewController(api, publisher, logger)
	} else {
		controller = console.NewController(api, nil, logger)
	}

	handler := console.NewHandler(controller, sessions, config, logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: false, // staff-facing service
	})

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(lifecycle...),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
