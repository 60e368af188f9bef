package id

import (
	"crypto/rand"
	"fmt"
)

// Generator creates the short join codes stamped on championships and
// participant sheets.
type Generator interface {
	NewChampionshipCode() (string, error)
	NewParticipantCode() (string, error)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	championshipCodeLength = 5
	participantCodeLength  = 4
)

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewChampionshipCode() (string, error) {
	return randomCode(championshipCodeLength)
}

func (g *RandomGenerator) NewParticipantCode() (string, error) {
	return randomCode(participantCodeLength)
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
