package routegraph

import (
	"testing"

	"routegraph/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func allow(from, to int64) datastructure.Restriction {
	return datastructure.Restriction{From: from, To: to, Kind: datastructure.RestrictionAllow}
}

func forbid(from, to int64) datastructure.Restriction {
	return datastructure.Restriction{From: from, To: to, Kind: datastructure.RestrictionForbid}
}

func TestCanTurnEmpty(t *testing.T) {
	assert.True(t, canTurn(nil, 1, 2))
	assert.True(t, canTurn([]datastructure.Restriction{}, 3, 4))
}

func TestCanTurnAllow(t *testing.T) {
	restrictions := []datastructure.Restriction{allow(1, 2)}

	assert.True(t, canTurn(restrictions, 1, 2))
	assert.False(t, canTurn(restrictions, 1, 3))
}

func TestCanTurnForbid(t *testing.T) {
	restrictions := []datastructure.Restriction{forbid(1, 2)}

	assert.False(t, canTurn(restrictions, 1, 2))
	assert.True(t, canTurn(restrictions, 1, 3))
}

func TestCanTurnOtherSourceWay(t *testing.T) {
	assert.True(t, canTurn([]datastructure.Restriction{forbid(9, 2)}, 1, 2))
	assert.True(t, canTurn([]datastructure.Restriction{allow(9, 2)}, 1, 3))
}

func TestCanTurnMixedLastWriteWins(t *testing.T) {
	// The last matching entry sets the default for unlisted targets.
	restrictions := []datastructure.Restriction{allow(1, 2), forbid(1, 3)}
	assert.True(t, canTurn(restrictions, 1, 4))

	restrictions = []datastructure.Restriction{forbid(1, 3), allow(1, 2)}
	assert.False(t, canTurn(restrictions, 1, 4))

	// Explicit targets still win over the default.
	assert.True(t, canTurn(restrictions, 1, 2))
	assert.False(t, canTurn(restrictions, 1, 3))
}
