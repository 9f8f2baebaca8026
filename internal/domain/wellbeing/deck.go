package wellbeing

import (
	"math/rand"
	"strconv"
)

var motivations = [...]string{
	"You are stronger than you think, and braver than you feel.",
	"This moment will pass, and you will be okay.",
	"Your mental health matters just as much as your physical health.",
	"It's okay to not be okay sometimes. Healing takes time.",
	"Healing is not linear, and that's perfectly fine.",
	"You deserve kindness, especially from yourself.",
	"Small steps lead to big changes. Keep moving forward.",
	"Your story is not over yet. There are beautiful chapters ahead.",
	"Progress, not perfection. Every step counts.",
	"You are not alone in this journey. Support is always available.",
	"Be gentle with yourself today. You're doing the best you can.",
	"This too shall pass. Storms don't last forever.",
	"Every day is a fresh start and a new opportunity to grow.",
	"Your feelings are valid, and it's okay to feel them fully.",
	"You've survived 100% of your worst days. That's an amazing track record.",
	"Recovery is possible and worth fighting for. You are worth it.",
	"You matter more than you know. Your presence makes a difference.",
	"Tomorrow is a new opportunity to create positive change.",
	"Your courage to keep going inspires others, even when you don't see it.",
	"Self-care isn't selfish. It's necessary for your wellbeing.",
	"You have the power to rewrite your story, one day at a time.",
	"Asking for help is a sign of strength, not weakness.",
	"You are worthy of love, happiness, and all good things in life.",
	"Every breath you take is a victory. Keep breathing, keep fighting.",
	"Your struggles today are developing the strength you need for tomorrow.",
	"You don't have to be perfect to be amazing.",
	"Trust the process. Your current situation is not your final destination.",
	"You are capable of incredible things, even when you don't feel like it.",
	"Every small victory deserves to be celebrated.",
	"Your mental health journey is unique and valid.",
	"It's okay to rest. You don't always have to be productive.",
	"You are not broken. You are healing and growing.",
	"Your sensitivity is a superpower, not a weakness.",
	"You have survived difficult days before, and you can do it again.",
}

// Card is one motivation message and its position in the deck.
type Card struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// DeckSize is the number of distinct motivation cards.
const DeckSize = len(motivations)

// Draw returns n distinct cards chosen with rng. n is clamped to [1, DeckSize].
func Draw(n int, rng *rand.Rand) []Card {
	if n < 1 {
		n = 1
	}
	if n > DeckSize {
		n = DeckSize
	}
	perm := rng.Perm(DeckSize)
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{Index: perm[i], Message: motivations[perm[i]]}
	}
	return cards
}

// CardAt returns the card for a deck reference such as "12".
func CardAt(ref string) (Card, bool) {
	i, err := strconv.Atoi(ref)
	if err != nil || i < 0 || i >= DeckSize {
		return Card{}, false
	}
	return Card{Index: i, Message: motivations[i]}, true
}
