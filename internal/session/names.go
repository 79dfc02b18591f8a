// Package session implements the session router: the
// {userId → outbound channel} registry, inbound dispatch to the right
// Match, and reconnect/matchmaking around it.
package session

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Brave", "Clever", "Wild", "Swift", "Bold", "Mighty", "Mystic", "Noble",
	"Fierce", "Gentle", "Silent", "Rapid", "Calm", "Proud", "Wise", "Happy",
	"Lucky", "Sneaky", "Cunning", "Bright", "Dark", "Golden", "Silver", "Royal",
}

var animals = []string{
	"Octopus", "Tiger", "Phoenix", "Dragon", "Eagle", "Wolf", "Bear", "Fox",
	"Lion", "Hawk", "Shark", "Panther", "Raven", "Falcon", "Cobra", "Viper",
	"Lynx", "Owl", "Dolphin", "Whale", "Rhino", "Jaguar", "Cheetah", "Leopard",
}

// RandomDisplayName produces a default Player display name for a user
// who hasn't chosen one.
func RandomDisplayName(rng *rand.Rand) string {
	adjective := adjectives[rng.Intn(len(adjectives))]
	animal := animals[rng.Intn(len(animals))]
	number := rng.Intn(100)
	return fmt.Sprintf("%s%s%d", adjective, animal, number)
}
