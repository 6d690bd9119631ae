package location_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"ulascansenturk/watchface-weather/internal/inmemorycache"
	"ulascansenturk/watchface-weather/internal/location"
	"ulascansenturk/watchface-weather/internal/mocks"
)

type ResolverTestSuite struct {
	suite.Suite
	source *mocks.MockSource
	cache  *inmemorycache.PositionCache
	ctx    context.Context
}

func (s *ResolverTestSuite) SetupTest() {
	s.source = mocks.NewMockSource(s.T())
	s.source.On("Name").Return("mock").Maybe()
	s.cache = inmemorycache.NewPositionCache(time.Hour, time.Minute)
	s.ctx = context.Background()
}

func (s *ResolverTestSuite) TearDownTest() {
	s.cache.Close()
}

func (s *ResolverTestSuite) newResolver(timeout, maxAge time.Duration) location.Resolver {
	return location.NewResolver(s.source, s.cache, location.Options{Timeout: timeout, MaxAge: maxAge})
}

func (s *ResolverTestSuite) TestResolveFromSource() {
	coord := location.Coordinate{Latitude: 41.0082, Longitude: 28.9784}
	s.source.On("CurrentPosition", mock.Anything).Return(coord, nil).Once()

	result, err := s.newResolver(location.DefaultTimeout, location.DefaultMaxAge).Resolve(s.ctx)

	s.NoError(err)
	s.Equal(coord, result)

	fix, ok := s.cache.Get("mock", time.Minute)
	s.True(ok)
	s.Equal(coord, fix.Coordinate)
}

func (s *ResolverTestSuite) TestResolveReusesFreshCachedFix() {
	coord := location.Coordinate{Latitude: 52.52, Longitude: 13.405}
	s.cache.Set("mock", location.Fix{Coordinate: coord, Timestamp: time.Now().Add(-30 * time.Second)})

	result, err := s.newResolver(location.DefaultTimeout, location.DefaultMaxAge).Resolve(s.ctx)

	s.NoError(err)
	s.Equal(coord, result)
	s.source.AssertNotCalled(s.T(), "CurrentPosition", mock.Anything)
}

func (s *ResolverTestSuite) TestResolveIgnoresStaleCachedFix() {
	stale := location.Coordinate{Latitude: 1, Longitude: 1}
	fresh := location.Coordinate{Latitude: 2, Longitude: 2}
	s.cache.Set("mock", location.Fix{Coordinate: stale, Timestamp: time.Now().Add(-2 * time.Minute)})
	s.source.On("CurrentPosition", mock.Anything).Return(fresh, nil).Once()

	result, err := s.newResolver(location.DefaultTimeout, location.DefaultMaxAge).Resolve(s.ctx)

	s.NoError(err)
	s.Equal(fresh, result)
}

func (s *ResolverTestSuite) TestResolveTimeout() {
	s.source.On("CurrentPosition", mock.Anything).
		Return(func(ctx context.Context) (location.Coordinate, error) {
			<-ctx.Done()
			return location.Coordinate{}, ctx.Err()
		}).Once()

	_, err := s.newResolver(50*time.Millisecond, location.DefaultMaxAge).Resolve(s.ctx)

	var locErr *location.Error
	s.Require().ErrorAs(err, &locErr)
	s.Equal(location.Timeout, locErr.Code)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *ResolverTestSuite) TestResolvePermissionDenied() {
	denied := &location.Error{Code: location.PermissionDenied, Err: errors.New("user denied geolocation")}
	s.source.On("CurrentPosition", mock.Anything).Return(location.Coordinate{}, denied).Once()

	_, err := s.newResolver(location.DefaultTimeout, location.DefaultMaxAge).Resolve(s.ctx)

	var locErr *location.Error
	s.Require().ErrorAs(err, &locErr)
	s.Equal(location.PermissionDenied, locErr.Code)
	s.Contains(err.Error(), "PERMISSION_DENIED")

	_, ok := s.cache.Get("mock", time.Hour)
	s.False(ok)
}

func (s *ResolverTestSuite) TestResolveUnclassifiedErrorIsUnavailable() {
	s.source.On("CurrentPosition", mock.Anything).Return(location.Coordinate{}, errors.New("no provider")).Once()

	_, err := s.newResolver(location.DefaultTimeout, location.DefaultMaxAge).Resolve(s.ctx)

	var locErr *location.Error
	s.Require().ErrorAs(err, &locErr)
	s.Equal(location.PositionUnavailable, locErr.Code)
}

func (s *ResolverTestSuite) TestResolveRejectsOutOfRangeCoordinate() {
	s.source.On("CurrentPosition", mock.Anything).
		Return(location.Coordinate{Latitude: 120, Longitude: 0}, nil).Once()

	_, err := s.newResolver(location.DefaultTimeout, location.DefaultMaxAge).Resolve(s.ctx)

	var locErr *location.Error
	s.Require().ErrorAs(err, &locErr)
	s.Equal(location.PositionUnavailable, locErr.Code)
}

func (s *ResolverTestSuite) TestResolveWithoutCache() {
	coord := location.Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	s.source.On("CurrentPosition", mock.Anything).Return(coord, nil).Twice()

	resolver := location.NewResolver(s.source, nil, location.Options{})

	for i := 0; i < 2; i++ {
		result, err := resolver.Resolve(s.ctx)
		s.NoError(err)
		s.Equal(coord, result)
	}
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
