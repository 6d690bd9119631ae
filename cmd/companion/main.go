package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/watchface-weather/config"
	"ulascansenturk/watchface-weather/internal/api/v1/handlers"
	"ulascansenturk/watchface-weather/internal/appmessage"
	"ulascansenturk/watchface-weather/internal/inmemorycache"
	"ulascansenturk/watchface-weather/internal/location"
	"ulascansenturk/watchface-weather/internal/providers"
	"ulascansenturk/watchface-weather/internal/service"
	"ulascansenturk/watchface-weather/internal/telemetry"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		logLevel = zerolog.InfoLevel
	}
	var output io.Writer = os.Stdout
	if conf.IsDevelopment() {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(output).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())

	shutdownTracer, err := telemetry.InitTracer(conf.ServiceName, conf.ZipkinURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}

	positionCache := inmemorycache.NewPositionCache(conf.LocationMaxAge, time.Minute)

	resolver := location.NewResolver(
		newLocationSource(conf),
		positionCache,
		location.Options{
			Timeout: conf.LocationTimeout,
			MaxAge:  conf.LocationMaxAge,
		},
	)

	weatherProvider := providers.NewRateLimitedProvider(
		providers.NewOpenWeatherMapProvider(conf.WeatherBaseURL, nil),
		conf.WeatherRateLimit,
		conf.WeatherRateBurst,
	)

	var sender appmessage.Sender = appmessage.LogSender{}
	if conf.HostWebhookURL != "" {
		sender = appmessage.NewWebhookSender(conf.HostWebhookURL, conf.HTTPTimeoutDuration())
	} else {
		log.Warn().Msg("HOST_WEBHOOK_URL not set, app messages will only be logged")
	}

	bus := service.NewTriggerBus(ctx)
	service.Subscribe(bus, service.NewPipeline(resolver, weatherProvider, sender))

	handler := handlers.NewAppMessageHandler(bus)

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, conf.ShutdownTimeout, func(shutdownCtx context.Context) {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
		if err := bus.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("in-flight runs did not finish")
		}
		positionCache.Close()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("tracer shutdown failed")
		}
	})

	log.Info().Msg("ready")
	if err := bus.Publish(service.EventReady); err != nil {
		log.Error().Err(err).Msg("failed to publish ready event")
	}

	log.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func newLocationSource(conf *config.Config) location.Source {
	if conf.LocationSource == config.LocationSourceStatic {
		return location.NewStaticSource(location.Coordinate{
			Latitude:  conf.LocationLatitude,
			Longitude: conf.LocationLongitude,
		})
	}

	return location.NewIPSource(conf.LocationIPURL, nil)
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, shutdownDuration time.Duration, callback func(ctx context.Context)) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback(shutdownCtx)

		cancel()
		cancelCtx()
	}()
}
