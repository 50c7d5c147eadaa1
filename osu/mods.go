package osu

// Gameplay modifiers, bitwise-OR-encoded as in the osu! API enabled_mods
// field.
const (
	ModNoFail      = 1
	ModEasy        = 2
	ModTouchDevice = 4
	ModHidden      = 8
	ModHardRock    = 16
	ModSuddenDeath = 32
	ModDoubleTime  = 64
	ModRelax       = 128
	ModHalfTime    = 256
	ModNightcore   = 512
	ModFlashlight  = 1024
	ModAutoplay    = 2048
	ModSpunOut     = 4096
	ModAutopilot   = 8192
	ModPerfect     = 16384
	ModKey4        = 32768
	ModKey5        = 65536
	ModKey6        = 131072
	ModKey7        = 262144
	ModKey8        = 524288
	ModFadeIn      = 1048576
	ModRandom      = 2097152
	ModCinema      = 4194304
	ModKey9        = 16777216
	ModKey10       = 33554432
	ModKey1        = 67108864
	ModKey3        = 134217728
	ModKey2        = 268435456
	ModScoreV2     = 536870912
)

// modNames lists mods in display order.
var modNames = []struct {
	name string
	bit  int
}{
	{"NF", ModNoFail},
	{"EZ", ModEasy},
	{"TD", ModTouchDevice},
	{"HD", ModHidden},
	{"HR", ModHardRock},
	{"SD", ModSuddenDeath},
	{"DT", ModDoubleTime},
	{"RX", ModRelax},
	{"HT", ModHalfTime},
	{"NC", ModNightcore},
	{"FL", ModFlashlight},
	{"AT", ModAutoplay},
	{"SO", ModSpunOut},
	{"AP", ModAutopilot},
	{"PF", ModPerfect},
	{"4K", ModKey4},
	{"5K", ModKey5},
	{"6K", ModKey6},
	{"7K", ModKey7},
	{"8K", ModKey8},
	{"FI", ModFadeIn},
	{"RD", ModRandom},
	{"LM", ModCinema},
	{"9K", ModKey9},
	{"10K", ModKey10},
	{"1K", ModKey1},
	{"3K", ModKey3},
	{"2K", ModKey2},
	{"V2", ModScoreV2},
}

// ModString renders a mods bitmask like "+HDDT", or "NM" for no mods.
// Nightcore implies DoubleTime and Perfect implies SuddenDeath, so the
// implied mod is dropped from the rendering.
func ModString(mods int) string {
	if mods == 0 {
		return "NM"
	}
	if mods&ModNightcore != 0 {
		mods &^= ModDoubleTime
	}
	if mods&ModPerfect != 0 {
		mods &^= ModSuddenDeath
	}

	result := "+"
	for _, mod := range modNames {
		if mods&mod.bit != 0 {
			result += mod.name
		}
	}
	if result == "+" {
		return "NM"
	}
	return result
}
