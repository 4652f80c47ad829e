package models

type WineColor string
type SugarLevel string

const (
	ColorRed   WineColor = "red"
	ColorWhite WineColor = "white"
	ColorPink  WineColor = "pink"

	SugarDry       SugarLevel = "dry"
	SugarSemiDry   SugarLevel = "semidry"
	SugarBrut      SugarLevel = "brut"
	SugarSemiSweet SugarLevel = "semisweet"
	SugarSweet     SugarLevel = "sweet"

	FlagYes = "yes"
	FlagNo  = "no"
)

var WineColors = []WineColor{ColorRed, ColorWhite, ColorPink}

var SugarLevels = []SugarLevel{SugarDry, SugarSemiDry, SugarBrut, SugarSemiSweet, SugarSweet}

func (c WineColor) Valid() bool {
	for _, v := range WineColors {
		if c == v {
			return true
		}
	}
	return false
}

func (s SugarLevel) Valid() bool {
	for _, v := range SugarLevels {
		if s == v {
			return true
		}
	}
	return false
}
