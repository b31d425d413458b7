package datastructure

import (
	"path/filepath"
	"testing"

	"routegraph/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteNodeRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "route.dat")

	node := RouteNode{
		ID:   42,
		Ways: []int64{7, 9, 9, 13},
		Paths: []Path{
			{ID: 43, WayIndex: 0, Type: 3, MaxSpeed: 50, Flags: WayHasAccess, Lat: 52.1, Lon: 13.9, Distance: 1.25},
			{ID: 44, WayIndex: 3, Type: 5, MaxSpeed: 30, Flags: 0, Lat: -7.5, Lon: 110.8, Distance: 0.75},
		},
		Excludes: []Exclude{{SourceWay: 7, TargetPath: 1}},
	}

	writer, err := storage.CreateFileWriter(filename)
	require.NoError(t, err)
	require.NoError(t, node.Write(writer))
	require.NoError(t, writer.Close())

	scanner, err := storage.OpenFileScanner(filename, false)
	require.NoError(t, err)
	defer scanner.Close()

	var got RouteNode
	require.NoError(t, got.Read(scanner))
	assert.Equal(t, node, got)
}

func TestWayFlags(t *testing.T) {
	way := Way{Flags: WayHasAccess | WayArea}
	assert.True(t, way.HasAccess())
	assert.True(t, way.IsArea())
	assert.False(t, way.IsOneway())
}

func TestWayIsClosed(t *testing.T) {
	open := Way{Nodes: []Point{{ID: 1}, {ID: 2}, {ID: 3}}}
	assert.False(t, open.IsClosed())

	closed := Way{Nodes: []Point{{ID: 1}, {ID: 2}, {ID: 1}}}
	assert.True(t, closed.IsClosed())

	var empty Way
	assert.False(t, empty.IsClosed())
}

func TestTypeConfigRegistration(t *testing.T) {
	config := DefaultTypeConfig()

	residential := config.GetWayTypeID("residential")
	require.NotEqual(t, TypeIgnore, residential)
	assert.True(t, config.CanBeRoute(residential))
	assert.False(t, config.GetIgnore(residential))
	assert.Equal(t, uint8(30), config.DefaultMaxSpeed(residential))

	footway := config.GetWayTypeID("footway")
	require.NotEqual(t, TypeIgnore, footway)
	assert.False(t, config.CanBeRoute(footway))

	assert.Equal(t, TypeIgnore, config.GetWayTypeID("heliport"))

	for _, name := range append(append([]string{}, AllowRestrictionTypes...), ForbidRestrictionTypes...) {
		assert.NotEqual(t, TypeIgnore, config.GetRelationTypeID(name), name)
	}
	assert.Equal(t, TypeIgnore, config.GetRelationTypeID("restriction_no_entry"))
}
