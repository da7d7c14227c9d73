package player

import "strings"

// Player is one entry of the provider's player dictionary.
type Player struct {
	ID           string
	FirstName    string
	LastName     string
	Team         string
	Position     string
	InjuryStatus string
	Status       string
}

// FullName joins first and last name, falling back to the player id.
func (p Player) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return p.ID
	}
	return name
}

// Dictionary indexes players by provider id.
type Dictionary map[string]Player
