package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short url-safe identifier used for human-facing
// reference codes (e.g. recommendation references shown in the UI).
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return id
}
