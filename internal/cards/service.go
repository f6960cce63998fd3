// Package cards provides the reference card database lookup service.
// Lookups never fail: an unknown id yields a zero-value Card, since card ids
// in game logs can be generated, obfuscated, or from newer sets than the
// local database.
package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Card is one reference card entry.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Cost        int      `json:"cost"`
	Attack      int      `json:"attack"`
	Health      int      `json:"health"`
	Rarity      string   `json:"rarity"`
	Type        string   `json:"type"`
	Race        string   `json:"race"`
	PlayerClass string   `json:"playerClass"`
	Set         string   `json:"set"`
	Mechanics   []string `json:"mechanics"`
}

// Service is an in-memory card database keyed by card id.
type Service struct {
	byID map[string]Card
}

// NewService builds a service from an already-loaded card list. Used by
// tests and by callers that fetch reference data themselves.
func NewService(list []Card) *Service {
	byID := make(map[string]Card, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}
	return &Service{byID: byID}
}

// LoadFromFile reads a JSON card database from disk.
func LoadFromFile(path string) (*Service, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cards file: %w", err)
	}
	var list []Card
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode cards file: %w", err)
	}
	return NewService(list), nil
}

// GetCard returns the reference entry for a card id, or a zero-value Card
// when the id is unknown or empty.
func (s *Service) GetCard(cardID string) Card {
	if cardID == "" {
		return Card{}
	}
	return s.byID[cardID]
}

// Has reports whether the database knows the card id.
func (s *Service) Has(cardID string) bool {
	_, ok := s.byID[cardID]
	return ok
}

// Size returns the number of known cards.
func (s *Service) Size() int {
	return len(s.byID)
}

// HasMechanic reports whether a card carries the given mechanic keyword.
func (c Card) HasMechanic(mechanic string) bool {
	for _, m := range c.Mechanics {
		if strings.EqualFold(m, mechanic) {
			return true
		}
	}
	return false
}
