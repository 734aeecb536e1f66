package cart

import "strings"

// ordinalWords maps item-selection phrases to zero-based result indexes.
// Checked in declaration order; longer forms shadow the bare digits.
var ordinalWords = []struct {
	words []string
	index int
}{
	{[]string{"1st", "first", "1"}, 0},
	{[]string{"2nd", "second", "2"}, 1},
	{[]string{"3rd", "third", "3"}, 2},
	{[]string{"4th", "fourth", "4"}, 3},
	{[]string{"5th", "fifth", "5"}, 4},
}

// ParseOrdinal extracts which item in a result list the user refers to
// ("add the 2nd one", "buy the last"). resultCount bounds the answer;
// unspecified selection defaults to the top-ranked item.
func ParseOrdinal(input string, resultCount int) int {
	if resultCount <= 0 {
		return 0
	}

	lower := strings.ToLower(input)

	if containsWord(lower, "last") {
		return resultCount - 1
	}

	for _, entry := range ordinalWords {
		for _, w := range entry.words {
			if containsWord(lower, w) {
				if entry.index > resultCount-1 {
					return resultCount - 1
				}
				return entry.index
			}
		}
	}
	return 0
}
