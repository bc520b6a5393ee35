package deck

import "math/rand"

// Size is the number of cards in a full deck, no jokers.
const Size = 52

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

type Rank string

const (
	Ace   Rank = "A"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var Ranks = []Rank{Ace, "2", "3", "4", "5", "6", "7", "8", "9", "10", Jack, Queen, King}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

// French display names for the court cards; numeric ranks display as-is.
var displayNames = map[Rank]string{
	Ace:   "As",
	Jack:  "Valet",
	Queen: "Dame",
	King:  "Roi",
}

// Card is an immutable value. Cards are never mutated, only moved
// between hands and the pile.
type Card struct {
	ID      string `json:"id"`
	Suit    Suit   `json:"suit"`
	Rank    Rank   `json:"value"`
	Display string `json:"displayValue"`
	Symbol  string `json:"symbol"`
}

// ValidRank reports whether r is one of the 13 playable ranks.
func ValidRank(r Rank) bool {
	for _, v := range Ranks {
		if v == r {
			return true
		}
	}
	return false
}

// Generate returns the canonical 52-card deck in fixed suit/rank order.
// Card ids follow "<suit>-<rank>" and are unique across the deck.
func Generate() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			display := string(rank)
			if name, ok := displayNames[rank]; ok {
				display = name
			}
			cards = append(cards, Card{
				ID:      string(suit) + "-" + string(rank),
				Suit:    suit,
				Rank:    rank,
				Display: display,
				Symbol:  suitSymbols[suit],
			})
		}
	}
	return cards
}

// Shuffle returns a uniformly random permutation of cards (Fisher–Yates).
// The input slice is left untouched.
func Shuffle(cards []Card) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deal splits cards into players hands of floor(len/players) cards each,
// assigned as contiguous slices in player order. Leftover cards are
// discarded for the hand: never dealt, never tracked.
func Deal(cards []Card, players int) [][]Card {
	if players <= 0 {
		return nil
	}
	per := len(cards) / players
	hands := make([][]Card, players)
	for i := 0; i < players; i++ {
		hand := make([]Card, per)
		copy(hand, cards[i*per:(i+1)*per])
		hands[i] = hand
	}
	return hands
}
