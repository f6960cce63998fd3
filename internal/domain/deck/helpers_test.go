package deck

import (
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
)

func testZone() []DeckCard {
	return []DeckCard{
		{CardID: "CS2_029", CardName: "Fireball", EntityID: 10, ManaCost: 4, ActualManaCost: 4},
		{CardID: "CS2_029", CardName: "Fireball", EntityID: 0, ManaCost: 4, ActualManaCost: 4},
		{CardID: "EX1_287", CardName: "Counterspell", EntityID: 12, ManaCost: 3, ActualManaCost: 3},
		{CardID: "", EntityID: 0, ManaCost: -1, ActualManaCost: -1},
	}
}

func TestFindResolutionIndex(t *testing.T) {
	costsSeven := MatchCondition(func(ref cards.Card) bool { return ref.Cost == 7 })
	sevenCost := cards.Card{ID: "DMF_533", Cost: 7, Type: "SPELL"}
	fourCost := cards.Card{ID: "CS2_029", Cost: 4, Type: "SPELL"}

	t.Run("exact entity wins over placeholders", func(t *testing.T) {
		if got := FindResolutionIndex(testZone(), fourCost, 12); got != 2 {
			t.Errorf("index = %d, want 2", got)
		}
	})

	t.Run("unregistered entity lands on the placeholder", func(t *testing.T) {
		if got := FindResolutionIndex(testZone(), fourCost, 99); got != 3 {
			t.Errorf("index = %d, want 3", got)
		}
	})

	t.Run("conditioned placeholders are skipped until one accepts", func(t *testing.T) {
		zone := []DeckCard{
			{EntityID: 0, ManaCost: -1, ActualManaCost: -1, MatchCondition: costsSeven},
			{EntityID: 0, ManaCost: -1, ActualManaCost: -1},
		}
		if got := FindResolutionIndex(zone, fourCost, 40); got != 1 {
			t.Errorf("index = %d, want 1", got)
		}
		if got := FindResolutionIndex(zone, sevenCost, 40); got != 0 {
			t.Errorf("index = %d, want 0", got)
		}
	})

	t.Run("no candidate", func(t *testing.T) {
		zone := []DeckCard{{CardID: "CS2_029", EntityID: 10}}
		if got := FindResolutionIndex(zone, fourCost, 99); got != -1 {
			t.Errorf("index = %d, want -1", got)
		}
	})
}

func TestRemoveSingleCardFromZone(t *testing.T) {
	zone := testZone()

	newZone, removed, found := RemoveSingleCardFromZone(zone, "CS2_029", 10)
	if !found {
		t.Fatal("expected a match")
	}
	if removed.EntityID != 10 {
		t.Errorf("removed entityID = %d, want 10", removed.EntityID)
	}
	if len(newZone) != len(zone)-1 {
		t.Errorf("zone length = %d, want %d", len(newZone), len(zone)-1)
	}
	if len(zone) != 4 {
		t.Error("input zone was mutated")
	}
}

func TestRemoveSingleCardFromZoneFallsBackToPlaceholder(t *testing.T) {
	zone := []DeckCard{
		{CardID: "", EntityID: 0, ManaCost: -1, ActualManaCost: -1},
		{CardID: "", EntityID: 0, ManaCost: -1, ActualManaCost: -1},
	}
	newZone, removed, found := RemoveSingleCardFromZone(zone, "CS2_029", 42)
	if !found {
		t.Fatal("expected placeholder consumption")
	}
	if removed.CardID != "" {
		t.Errorf("removed cardID = %q, want empty", removed.CardID)
	}
	if len(newZone) != 1 {
		t.Errorf("zone length = %d, want 1", len(newZone))
	}
}

func TestRemoveSingleCardFromZoneNoMatch(t *testing.T) {
	zone := []DeckCard{{CardID: "CS2_029", EntityID: 10}}
	newZone, _, found := RemoveSingleCardFromZone(zone, "NEW1_030", 0)
	if found {
		t.Fatal("expected no match")
	}
	if len(newZone) != 1 {
		t.Error("zone changed despite no match")
	}
}

func TestReplaceCardAt(t *testing.T) {
	zone := testZone()
	replacement := DeckCard{CardID: "NEW1_030", EntityID: 12}

	newZone := ReplaceCardAt(zone, 2, replacement)
	if newZone[2].CardID != "NEW1_030" {
		t.Errorf("cardID at index 2 = %q, want NEW1_030", newZone[2].CardID)
	}
	if zone[2].CardID != "EX1_287" {
		t.Error("input zone was mutated")
	}
}

func TestObfuscatedKeepsEntityOnly(t *testing.T) {
	card := DeckCard{
		CardID: "CS2_029", CardName: "Fireball", EntityID: 10,
		Rarity: "rare", CreatorCardID: "EX1_001",
	}
	hidden := card.Obfuscated()
	if hidden.EntityID != 10 {
		t.Errorf("entityID = %d, want 10", hidden.EntityID)
	}
	if hidden.CardID != "" || hidden.CardName != "" || hidden.Rarity != "" || hidden.CreatorCardID != "" {
		t.Errorf("identity fields survived obfuscation: %+v", hidden)
	}
}

func TestEmptyCardForUnknownID(t *testing.T) {
	svc := cards.NewService(nil)
	card := EmptyCardFor(svc, "MYSTERY_001", 7)
	if card.CardID != "MYSTERY_001" {
		t.Errorf("cardID = %q, want MYSTERY_001", card.CardID)
	}
	if card.HasKnownCost() {
		t.Error("synthesized unknown card should have no known cost")
	}
}

func TestEmptyCardForKnownID(t *testing.T) {
	svc := cards.NewService([]cards.Card{
		{ID: "CS2_029", Name: "Fireball", Cost: 4, Rarity: "RARE", Type: "SPELL"},
	})
	card := EmptyCardFor(svc, "CS2_029", 7)
	if card.CardName != "Fireball" || card.ManaCost != 4 {
		t.Errorf("unexpected synthesized card: %+v", card)
	}
	if card.EffectiveManaCost() != 4 {
		t.Errorf("effective cost = %d, want 4", card.EffectiveManaCost())
	}
}
