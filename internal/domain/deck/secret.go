package deck

// SecretOption is one candidate identity for an unrevealed secret.
type SecretOption struct {
	CardID        string `json:"cardId"`
	IsValidOption bool   `json:"isValidOption"`
}

// BoardSecret tracks an active secret commitment: the entity that holds it
// and the candidate identities still possible given what has been ruled
// out so far.
type BoardSecret struct {
	EntityID           int            `json:"entityId"`
	CardID             string         `json:"cardId,omitempty"`
	AllPossibleOptions []SecretOption `json:"allPossibleOptions"`
}

// NewBoardSecret creates a secret with every candidate still valid. The
// card id is set only when the secret's identity is already known (the
// local player's own secrets).
func NewBoardSecret(entityID int, cardID string, candidates []string) BoardSecret {
	options := make([]SecretOption, 0, len(candidates))
	for _, id := range candidates {
		options = append(options, SecretOption{CardID: id, IsValidOption: true})
	}
	return BoardSecret{
		EntityID:           entityID,
		CardID:             cardID,
		AllPossibleOptions: options,
	}
}

// WithRuledOut marks a candidate identity as no longer possible.
func (s BoardSecret) WithRuledOut(cardID string) BoardSecret {
	options := make([]SecretOption, len(s.AllPossibleOptions))
	for i, o := range s.AllPossibleOptions {
		if o.CardID == cardID {
			o.IsValidOption = false
		}
		options[i] = o
	}
	s.AllPossibleOptions = options
	return s
}

// ValidOptions returns the candidate ids still possible.
func (s BoardSecret) ValidOptions() []string {
	var out []string
	for _, o := range s.AllPossibleOptions {
		if o.IsValidOption {
			out = append(out, o.CardID)
		}
	}
	return out
}
