package osmparser

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func wayWithTags(pairs ...string) *osm.Way {
	way := &osm.Way{}
	for i := 0; i+1 < len(pairs); i += 2 {
		way.Tags = append(way.Tags, osm.Tag{Key: pairs[i], Value: pairs[i+1]})
	}
	return way
}

func TestParseMaxSpeed(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"50", 50},
		{"30 km/h", 30},
		{"40 mph", 40 * 1.60934},
		{"10 knots", 10 * 1.852},
		{"walk", 0},
		{"", 0},
	}
	for _, tt := range tests {
		way := wayWithTags("maxspeed", tt.value)
		assert.InDelta(t, tt.want, parseMaxSpeed(way), 1e-9, tt.value)
	}
}

func TestIsOneway(t *testing.T) {
	assert.True(t, isOneway(wayWithTags("oneway", "yes")))
	assert.True(t, isOneway(wayWithTags("oneway", "-1")))
	assert.True(t, isOneway(wayWithTags("junction", "roundabout")))
	assert.False(t, isOneway(wayWithTags("oneway", "no")))
	assert.False(t, isOneway(wayWithTags("highway", "residential")))
}

func TestHasAccess(t *testing.T) {
	assert.True(t, hasAccess(wayWithTags("highway", "residential")))
	assert.False(t, hasAccess(wayWithTags("access", "private")))
	assert.False(t, hasAccess(wayWithTags("motor_vehicle", "no")))
}

func TestRestrictionTypeName(t *testing.T) {
	relation := &osm.Relation{Tags: osm.Tags{
		{Key: "type", Value: "restriction"},
		{Key: "restriction", Value: "no_left_turn"},
	}}
	assert.Equal(t, "restriction_no_left_turn", restrictionTypeName(relation))

	assert.Equal(t, "", restrictionTypeName(&osm.Relation{Tags: osm.Tags{
		{Key: "type", Value: "route"},
	}}))
	assert.Equal(t, "", restrictionTypeName(&osm.Relation{Tags: osm.Tags{
		{Key: "type", Value: "restriction"},
	}}))
}
