package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack-coach/internal/deck"
)

func hand(s string) Hand {
	return Hand(deck.MustParseCards(s))
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		value int
	}{
		{"empty hand", "", 0},
		{"no aces", "KhQd", 20},
		{"blackjack", "AsKd", 21},
		{"two aces", "AhAd", 12},
		{"two aces and nine", "AhAd9c", 21},
		{"soft seventeen", "Ah6d", 17},
		{"ace demoted", "Ah6d9c", 16},
		{"all aces", "AhAdAcAs", 14},
		{"bust", "KhQd5c", 25},
		{"face cards count ten", "JhQdKc", 30},
		{"five card twenty one", "2h3d4c5s7h", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.value, hand(tt.cards).Value())
		})
	}
}

func TestHandValueOrderIndependent(t *testing.T) {
	permutations := []string{"AhAd9c", "Ah9cAd", "9cAhAd"}
	for _, p := range permutations {
		assert.Equal(t, 21, hand(p).Value(), "permutation %s", p)
	}
}

func TestHandIsSoft(t *testing.T) {
	tests := []struct {
		cards string
		soft  bool
	}{
		{"Ah6d", true},     // A+6: ace as 11
		{"AhKd", true},     // natural is soft
		{"Ah6d9c", false},  // ace demoted to 1
		{"AhAd", true},     // one ace demoted, one still 11
		{"AhAd9c", true},   // 21 with one ace at 11
		{"AhAd9c5s", false}, // both aces demoted
		{"KhQd", false},    // no aces
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.soft, hand(tt.cards).IsSoft())
		})
	}
}

func TestHandPredicates(t *testing.T) {
	assert.True(t, hand("8h8d").IsPair())
	assert.True(t, hand("KhKd").IsPair())
	assert.False(t, hand("KhQd").IsPair(), "equal value, different rank")
	assert.False(t, hand("8h8d8c").IsPair())

	assert.True(t, hand("AsKd").IsBlackjack())
	assert.False(t, hand("Ks5d6c").IsBlackjack(), "21 in three cards is not a natural")

	assert.True(t, hand("KhQd5c").IsBust())
	assert.False(t, hand("AhAd9c").IsBust())
}

func TestHandString(t *testing.T) {
	assert.Equal(t, "A♠ K♦", hand("AsKd").String())
	assert.Equal(t, "", Hand{}.String())
}
