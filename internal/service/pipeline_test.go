package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"ulascansenturk/watchface-weather/internal/appmessage"
	"ulascansenturk/watchface-weather/internal/location"
	"ulascansenturk/watchface-weather/internal/mocks"
	"ulascansenturk/watchface-weather/internal/providers"
	"ulascansenturk/watchface-weather/internal/service"
)

type PipelineTestSuite struct {
	suite.Suite
	resolver *mocks.MockResolver
	weather  *mocks.MockWeatherProvider
	sender   *mocks.MockSender
	pipeline service.Pipeline
	ctx      context.Context
	coord    location.Coordinate
}

func (s *PipelineTestSuite) SetupTest() {
	s.resolver = mocks.NewMockResolver(s.T())
	s.weather = mocks.NewMockWeatherProvider(s.T())
	s.weather.On("Name").Return("OpenWeatherMap").Maybe()
	s.sender = mocks.NewMockSender(s.T())
	s.pipeline = service.NewPipeline(s.resolver, s.weather, s.sender)
	s.ctx = context.Background()
	s.coord = location.Coordinate{Latitude: 41.0082, Longitude: 28.9784}
}

func (s *PipelineTestSuite) assertKind(err error, kind service.FailureKind) {
	var runErr *service.RunError
	s.Require().ErrorAs(err, &runErr)
	s.Equal(kind, runErr.Kind)
	s.Equal(kind, service.KindOf(err))
}

func (s *PipelineTestSuite) TestRunDispatchesReading() {
	s.resolver.On("Resolve", mock.Anything).Return(s.coord, nil).Once()
	s.weather.On("GetCurrentWeather", mock.Anything, s.coord).
		Return(providers.WeatherReading{TemperatureCelsius: 0, Conditions: "Clear"}, nil).Once()
	s.sender.On("Send", mock.Anything, appmessage.Payload{Temperature: 0, Conditions: "Clear"}).Return(nil).Once()

	err := s.pipeline.Run(s.ctx, service.EventReady)

	s.NoError(err)
}

func (s *PipelineTestSuite) TestLocationFailureSkipsWeatherFetch() {
	s.resolver.On("Resolve", mock.Anything).
		Return(location.Coordinate{}, &location.Error{Code: location.Timeout, Err: context.DeadlineExceeded}).Once()

	err := s.pipeline.Run(s.ctx, service.EventAppMessage)

	s.assertKind(err, service.LocationFailure)
	s.weather.AssertNotCalled(s.T(), "GetCurrentWeather", mock.Anything, mock.Anything)
	s.sender.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *PipelineTestSuite) TestMalformedResponseSendsNothing() {
	s.resolver.On("Resolve", mock.Anything).Return(s.coord, nil).Once()
	s.weather.On("GetCurrentWeather", mock.Anything, s.coord).
		Return(providers.WeatherReading{}, fmt.Errorf("%w: empty weather array", providers.ErrMalformedResponse)).Once()

	err := s.pipeline.Run(s.ctx, service.EventAppMessage)

	s.assertKind(err, service.MalformedResponse)
	s.ErrorIs(err, providers.ErrMalformedResponse)
	s.sender.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *PipelineTestSuite) TestTransportFailureSendsNothing() {
	s.resolver.On("Resolve", mock.Anything).Return(s.coord, nil).Once()
	s.weather.On("GetCurrentWeather", mock.Anything, s.coord).
		Return(providers.WeatherReading{}, fmt.Errorf("%w: returned status code: 500", providers.ErrTransport)).Once()

	err := s.pipeline.Run(s.ctx, service.EventAppMessage)

	s.assertKind(err, service.TransportFailure)
	s.sender.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *PipelineTestSuite) TestDispatchFailureIsNotRetried() {
	s.resolver.On("Resolve", mock.Anything).Return(s.coord, nil).Once()
	s.weather.On("GetCurrentWeather", mock.Anything, s.coord).
		Return(providers.WeatherReading{TemperatureCelsius: 18, Conditions: "Rain"}, nil).Once()
	s.sender.On("Send", mock.Anything, appmessage.Payload{Temperature: 18, Conditions: "Rain"}).
		Return(fmt.Errorf("%w: host returned status code 503", appmessage.ErrDispatch)).Once()

	err := s.pipeline.Run(s.ctx, service.EventAppMessage)

	s.assertKind(err, service.DispatchFailure)
	s.sender.AssertNumberOfCalls(s.T(), "Send", 1)
}

func (s *PipelineTestSuite) TestRepeatedRunsAreIndependent() {
	first := location.Coordinate{Latitude: 1, Longitude: 2}
	second := location.Coordinate{Latitude: 3, Longitude: 4}

	s.resolver.On("Resolve", mock.Anything).Return(first, nil).Once()
	s.resolver.On("Resolve", mock.Anything).Return(second, nil).Once()
	s.weather.On("GetCurrentWeather", mock.Anything, first).
		Return(providers.WeatherReading{TemperatureCelsius: 10, Conditions: "Clouds"}, nil).Once()
	s.weather.On("GetCurrentWeather", mock.Anything, second).
		Return(providers.WeatherReading{}, errors.New("connection reset")).Once()
	s.sender.On("Send", mock.Anything, appmessage.Payload{Temperature: 10, Conditions: "Clouds"}).Return(nil).Once()

	s.NoError(s.pipeline.Run(s.ctx, service.EventAppMessage))

	err := s.pipeline.Run(s.ctx, service.EventAppMessage)
	s.assertKind(err, service.TransportFailure)
	s.sender.AssertNumberOfCalls(s.T(), "Send", 1)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want service.FailureKind
	}{
		{err: &location.Error{Code: location.PermissionDenied}, want: service.LocationFailure},
		{err: fmt.Errorf("%w: bad", providers.ErrMalformedResponse), want: service.MalformedResponse},
		{err: fmt.Errorf("%w: down", providers.ErrTransport), want: service.TransportFailure},
		{err: fmt.Errorf("%w: rejected", appmessage.ErrDispatch), want: service.DispatchFailure},
		{err: &service.RunError{Kind: service.DispatchFailure, Err: errors.New("x")}, want: service.DispatchFailure},
		{err: errors.New("other"), want: ""},
		{err: nil, want: ""},
	}

	for _, tt := range tests {
		if got := service.KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
