package cart

import "strings"

// Action is a cart operation kind.
type Action string

const (
	ActionAdd      Action = "add"
	ActionRemove   Action = "remove"
	ActionView     Action = "view"
	ActionCheckout Action = "checkout"
)

var addWords = []string{"add", "buy", "purchase", "take"}
var removeWords = []string{"remove", "delete"}
var checkoutWords = []string{"checkout", "check out", "payment", "proceed"}
var viewPhrases = []string{"show cart", "view cart", "my cart", "cart summary", "what's in my cart"}

// DetectAction classifies a cart utterance into an operation. Vague cart
// requests fall back to view, the only always-safe operation.
func DetectAction(input string) Action {
	lower := strings.ToLower(input)

	switch {
	case containsAny(lower, addWords) || strings.Contains(lower, "i want"):
		return ActionAdd
	case containsAny(lower, removeWords):
		return ActionRemove
	case containsAny(lower, checkoutWords):
		return ActionCheckout
	default:
		return ActionView
	}
}

// IsCartUtterance reports whether the text contains an explicit cart keyword.
// Used by the intent router to keep short clarification replies ("medium",
// "slim") inside the search flow.
func IsCartUtterance(input string) bool {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "cart") {
		return true
	}
	return containsAny(lower, addWords) ||
		containsAny(lower, removeWords) ||
		containsAny(lower, checkoutWords) ||
		containsAny(lower, viewPhrases)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if containsWord(s, w) {
			return true
		}
	}
	return false
}

// containsWord matches on word boundaries so "add" does not fire on "madder".
func containsWord(s, word string) bool {
	if strings.Contains(word, " ") {
		return strings.Contains(s, word)
	}
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		if field == word {
			return true
		}
	}
	return false
}
