package tracker

// Card ids referenced by name in parser logic.
const (
	cardCounterspell      = "EX1_287"
	cardOhMyYogg          = "DMF_107"
	cardIceTrap           = "AV_226"
	cardEmbiggen          = "DRG_315"
	cardIncantersFlow     = "BT_004"
	cardLuminousGeode     = "TSC_210" // Radiance of Azshara
	cardDeckOfLunacy      = "DMF_114"
	cardWyrmrestPurifier  = "DRG_306"
	cardPrinceLiam        = "GIL_826"
	cardMindrenderIllucia = "SCH_351"
	cardLibramOfWisdom    = "BT_025"
	cardLibramOfJustice   = "BT_011"
	cardLibramOfHope      = "BT_026"
	cardAldorAttendant    = "BT_020"
	cardAldorTruthseeker  = "BT_195"
	cardLadyLiadrin       = "BT_334"
	cardFrizzKindleroost  = "DRG_075"
	cardLunasPocketGalaxy = "BOT_531"
	cardSkullOfGuldan     = "BT_601"
)
