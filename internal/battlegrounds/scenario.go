package battlegrounds

import "github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"

const maxBoardSize = 7

// Hero powers and minions the simplified combat model cannot resolve.
// Boards carrying one of these get a descriptive status instead of odds.
var unsupportedCompositions = map[string]string{
	"TB_BaconShop_HERO_35p":  "Shudderwock's hero power is not supported yet",
	"TB_BaconUps_200":        "Golden Baron Rivendare is not supported yet",
	"BGS_006":                "Sneed's Old Shredder summons are not supported yet",
	"TB_BaconShop_HERO_15p":  "Professor Putricide's hero power is not supported yet",
}

// supportedScenario reports whether the battle can be simulated, with a
// user-facing message when it cannot.
func supportedScenario(info bgs.BattleInfo) (bool, string) {
	for _, board := range []bgs.BoardInfo{info.PlayerBoard, info.OpponentBoard} {
		if msg, ok := unsupportedCompositions[board.Hero.HeroPowerCardID]; ok && !board.Hero.HeroPowerUsed {
			return false, msg
		}
		for _, entity := range board.Board {
			if msg, ok := unsupportedCompositions[entity.CardID]; ok {
				return false, msg
			}
		}
	}
	return true, ""
}
