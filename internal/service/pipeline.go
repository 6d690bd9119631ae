package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"ulascansenturk/watchface-weather/internal/appmessage"
	"ulascansenturk/watchface-weather/internal/location"
	"ulascansenturk/watchface-weather/internal/providers"
)

type Pipeline interface {
	Run(ctx context.Context, event Event) error
}

type pipeline struct {
	resolver location.Resolver
	weather  providers.WeatherProvider
	sender   appmessage.Sender
	tracer   trace.Tracer
}

func NewPipeline(resolver location.Resolver, weather providers.WeatherProvider, sender appmessage.Sender) Pipeline {
	return &pipeline{
		resolver: resolver,
		weather:  weather,
		sender:   sender,
		tracer:   otel.Tracer("watchface-weather/pipeline"),
	}
}

// Run resolves the position, fetches the weather and sends it to the watch.
// Each call is independent of every other call.
func (p *pipeline) Run(ctx context.Context, event Event) error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Str("event", string(event)).Logger()

	ctx, span := p.tracer.Start(ctx, "pipeline-run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("run.event", string(event)),
	))
	defer span.End()

	coord, err := p.resolve(ctx)
	if err != nil {
		return p.fail(span, &logger, &RunError{Kind: LocationFailure, Err: err}, "Error requesting location")
	}

	logger.Debug().
		Float64("latitude", coord.Latitude).
		Float64("longitude", coord.Longitude).
		Msg("location resolved")

	reading, err := p.fetch(ctx, coord)
	if err != nil {
		return p.fail(span, &logger, &RunError{Kind: classifyWeatherError(err), Err: err}, "failed to get weather data")
	}

	logger.Info().
		Int("temperature", reading.TemperatureCelsius).
		Str("conditions", reading.Conditions).
		Msg("weather received")

	payload := appmessage.Payload{
		Temperature: reading.TemperatureCelsius,
		Conditions:  reading.Conditions,
	}

	if err := p.dispatch(ctx, payload); err != nil {
		return p.fail(span, &logger, &RunError{Kind: DispatchFailure, Err: err}, "sending error")
	}

	logger.Info().Msg("data sent successfully")
	return nil
}

func (p *pipeline) fail(span trace.Span, logger *zerolog.Logger, runErr *RunError, msg string) error {
	span.RecordError(runErr)
	span.SetStatus(codes.Error, string(runErr.Kind))

	logger.Error().Err(runErr.Err).Str("kind", string(runErr.Kind)).Msg(msg)
	return runErr
}

func (p *pipeline) resolve(ctx context.Context) (location.Coordinate, error) {
	ctx, span := p.tracer.Start(ctx, "resolve-location")
	defer span.End()

	coord, err := p.resolver.Resolve(ctx)
	if err != nil {
		span.RecordError(err)
		return location.Coordinate{}, err
	}

	span.SetAttributes(
		attribute.Float64("location.latitude", coord.Latitude),
		attribute.Float64("location.longitude", coord.Longitude),
	)
	return coord, nil
}

func (p *pipeline) fetch(ctx context.Context, coord location.Coordinate) (providers.WeatherReading, error) {
	ctx, span := p.tracer.Start(ctx, "fetch-weather", trace.WithAttributes(
		attribute.String("weather.provider", p.weather.Name()),
	))
	defer span.End()

	reading, err := p.weather.GetCurrentWeather(ctx, coord)
	if err != nil {
		span.RecordError(err)
		return providers.WeatherReading{}, err
	}

	span.SetAttributes(
		attribute.Int("weather.temperature_celsius", reading.TemperatureCelsius),
		attribute.String("weather.conditions", reading.Conditions),
	)
	return reading, nil
}

func (p *pipeline) dispatch(ctx context.Context, payload appmessage.Payload) error {
	ctx, span := p.tracer.Start(ctx, "dispatch-app-message")
	defer span.End()

	if err := p.sender.Send(ctx, payload); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Subscribe wires the pipeline to both triggers that ask for fresh weather.
func Subscribe(bus TriggerBus, p Pipeline) {
	bus.Subscribe(EventReady, p.Run)
	bus.Subscribe(EventAppMessage, p.Run)
}
