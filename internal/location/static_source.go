package location

import "context"

// StaticSource always reports the configured coordinate.
type StaticSource struct {
	coord Coordinate
}

func NewStaticSource(coord Coordinate) *StaticSource {
	return &StaticSource{coord: coord}
}

func (s *StaticSource) Name() string {
	return "static"
}

func (s *StaticSource) CurrentPosition(ctx context.Context) (Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return Coordinate{}, err
	}
	return s.coord, nil
}
