package geo

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Berlin -> Hamburg, roughly 255 km.
	dist := CalculateHaversineDistance(52.5200, 13.4050, 53.5511, 9.9937)
	assert.InDelta(t, 255.0, dist, 3.0)
}

func TestHaversineZero(t *testing.T) {
	assert.Equal(t, 0.0, CalculateHaversineDistance(-7.5658, 110.8315, -7.5658, 110.8315))
}

func TestHaversineMatchesS2(t *testing.T) {
	points := [][4]float64{
		{0, 0, 0, 1},
		{52.5200, 13.4050, 48.8566, 2.3522},
		{-7.5658, 110.8315, -6.2088, 106.8456},
		{89.9, 0, 89.9, 180},
	}
	for _, p := range points {
		want := s2.LatLngFromDegrees(p[0], p[1]).Distance(s2.LatLngFromDegrees(p[2], p[3])).Radians() * 6371.0
		got := CalculateHaversineDistance(p[0], p[1], p[2], p[3])
		assert.InDelta(t, want, got, 1e-6)
	}
}
