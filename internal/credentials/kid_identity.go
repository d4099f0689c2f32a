package credentials

import (
	"crypto/rand"
	"math/big"
)

// Avatar glyphs offered to new kid profiles
var avatars = []string{
	"🦊", "🐼", "🦁", "🐸", "🦄", "🐙", "🐯", "🐨",
	"🦉", "🐢", "🐳", "🦕", "🚀", "🌟", "🌈", "🤖",
	"🦋", "🐞", "🐧", "🦜", "🐬", "🦓", "🐝", "🍄",
}

// Word lists for suggesting kid-friendly display names
var adjectives = []string{
	"happy", "sunny", "brave", "bright", "swift", "clever", "jolly",
	"mighty", "curious", "sparkly", "gentle", "merry", "zippy", "cosmic",
	"dandy", "plucky", "snazzy", "twinkly", "bouncy", "cheery",
}

var creatures = []string{
	"panda", "dolphin", "dragon", "bunny", "otter", "koala", "penguin",
	"tiger", "unicorn", "fox", "owl", "turtle", "whale", "robin",
	"gecko", "lemur", "puffin", "seal", "fawn", "cub",
}

// RandomAvatar picks a random avatar glyph for a new kid profile
func RandomAvatar() (string, error) {
	return randomElement(avatars)
}

// SuggestDisplayName generates a random "adjective creature" name a
// parent can accept or replace while creating a kid profile
func SuggestDisplayName() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	creature, err := randomElement(creatures)
	if err != nil {
		return "", err
	}

	return adjective + " " + creature, nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
