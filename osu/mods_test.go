package osu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModString(t *testing.T) {
	assert.Equal(t, "NM", ModString(0))
	assert.Equal(t, "+HD", ModString(ModHidden))
	assert.Equal(t, "+HDDT", ModString(ModHidden|ModDoubleTime))
	assert.Equal(t, "+HDHR", ModString(ModHidden|ModHardRock))
}

func TestModString_NightcoreImpliesDoubleTime(t *testing.T) {
	// The API always sets DT alongside NC; only NC is shown.
	assert.Equal(t, "+NC", ModString(ModNightcore|ModDoubleTime))
	assert.Equal(t, "+HDNC", ModString(ModHidden|ModNightcore|ModDoubleTime))
}

func TestModString_PerfectImpliesSuddenDeath(t *testing.T) {
	assert.Equal(t, "+PF", ModString(ModPerfect|ModSuddenDeath))
}

func TestScore_Accuracy(t *testing.T) {
	perfect := Score{Count300: 100}
	assert.InDelta(t, 100.0, perfect.Accuracy(), 0.0001)

	mixed := Score{Count300: 90, Count100: 8, Count50: 1, CountMiss: 1}
	// (1*1 + 2*8 + 6*90) / 100 / 6 * 100
	assert.InDelta(t, 92.8333, mixed.Accuracy(), 0.001)

	empty := Score{}
	assert.Equal(t, 0.0, empty.Accuracy())
}
