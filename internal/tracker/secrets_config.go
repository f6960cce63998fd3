package tracker

import "strings"

// Secret candidates per class, standard pool. The helper narrows this list
// as triggers rule options out; an empty table means the class has no
// secrets and nothing is suggested.
var secretCandidates = map[string][]string{
	"hunter": {
		"AT_060", // Bear Trap
		"EX1_554", // Snake Trap
		"EX1_609", // Snipe
		"EX1_610", // Explosive Trap
		"EX1_611", // Freezing Trap
		"EX1_533", // Misdirection
		"AV_226",  // Ice Trap
		"TSC_947", // Naval Mine
	},
	"mage": {
		"EX1_287", // Counterspell
		"EX1_289", // Ice Barrier
		"EX1_294", // Mirror Entity
		"EX1_594", // Vaporize
		"tt_010",  // Spellbender
		"UNG_024", // Mana Bind
		"FP1_018", // Duplicate
	},
	"paladin": {
		"EX1_130", // Noble Sacrifice
		"EX1_132", // Eye for an Eye
		"EX1_136", // Redemption
		"EX1_379", // Repentance
		"FP1_020", // Avenge
		"DMF_107", // Oh My Yogg!
	},
	"rogue": {
		"DAL_714", // Sudden Betrayal
		"DAL_716", // Evasion
		"GIL_577", // Cheat Death
		"SW_071",  // Plagiarize's rogue counterpart
	},
}

// CandidateSecretsFor returns the candidate card ids for a hero class,
// nil when the class runs no secrets.
func CandidateSecretsFor(heroClass string) []string {
	list, ok := secretCandidates[strings.ToLower(heroClass)]
	if !ok {
		return nil
	}
	return append([]string(nil), list...)
}
