package deck

import "testing"

func TestWithDeckSyncsCardsLeft(t *testing.T) {
	d := DeckState{}
	d = d.WithDeck([]DeckCard{{CardID: "A"}, {CardID: "B"}, {CardID: "C"}})
	if d.CardsLeftInDeck != 3 {
		t.Errorf("cardsLeftInDeck = %d, want 3", d.CardsLeftInDeck)
	}
}

func TestWithSecretAddedAndRemoved(t *testing.T) {
	d := DeckState{}
	d = d.WithSecretAdded(NewBoardSecret(1, "EX1_287", []string{"EX1_287", "EX1_289"}))
	d = d.WithSecretAdded(NewBoardSecret(2, "EX1_289", nil))
	if len(d.Secrets) != 2 {
		t.Fatalf("secrets = %d, want 2", len(d.Secrets))
	}

	d = d.WithSecretRemoved(1)
	if len(d.Secrets) != 1 {
		t.Fatalf("secrets = %d after removal, want 1", len(d.Secrets))
	}
	if d.Secrets[0].EntityID != 2 {
		t.Errorf("remaining secret entityID = %d, want 2", d.Secrets[0].EntityID)
	}
}

func TestWithGlobalEffectDeduplicates(t *testing.T) {
	d := DeckState{}
	effect := DeckCard{CardID: "DRG_315", EntityID: 5}
	d = d.WithGlobalEffect(effect)
	d = d.WithGlobalEffect(effect)
	if len(d.GlobalEffects) != 1 {
		t.Errorf("globalEffects = %d, want 1", len(d.GlobalEffects))
	}
}

func TestWithTurnResetClearsPlayedCards(t *testing.T) {
	d := DeckState{}
	d = d.WithCardPlayedThisTurn(DeckCard{CardID: "A"})
	d = d.WithSpellPlayed()
	d = d.WithTurnReset()
	if len(d.CardsPlayedThisTurn) != 0 {
		t.Error("cardsPlayedThisTurn should reset on turn start")
	}
	if d.SpellsPlayedThisMatch != 1 {
		t.Errorf("spellsPlayedThisMatch = %d, want 1 (match counter survives turns)", d.SpellsPlayedThisMatch)
	}
}

func TestTotalCardCount(t *testing.T) {
	d := DeckState{}
	d = d.WithZones(
		[]DeckCard{{CardID: "A"}, {CardID: "B"}},
		[]DeckCard{{CardID: "C"}},
		[]DeckCard{{CardID: "D"}},
		[]DeckCard{{CardID: "E"}},
	)
	if got := d.TotalCardCount(); got != 5 {
		t.Errorf("totalCardCount = %d, want 5", got)
	}
}

func TestGameStateCopyOnWrite(t *testing.T) {
	original := NewGameState()
	updated := original.WithTurn(5)
	if original.CurrentTurn == 5 {
		t.Error("WithTurn mutated the original state")
	}
	if updated.CurrentTurn != 5 {
		t.Errorf("turn = %d, want 5", updated.CurrentTurn)
	}
	if !updated.PlayerDeck.IsPlayer {
		t.Error("player deck lost its IsPlayer flag")
	}
}

func TestIsBattlegrounds(t *testing.T) {
	g := NewGameState().WithMetadata(Metadata{GameType: GameTypeBattlegrounds})
	if !g.IsBattlegrounds() {
		t.Error("expected battlegrounds game type to be detected")
	}
	if NewGameState().IsBattlegrounds() {
		t.Error("fresh state should not be battlegrounds")
	}
}
