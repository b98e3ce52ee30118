package rank

import (
	"fmt"
	"strings"
)

// DefaultTopN is how many words the model is asked to rank.
const DefaultTopN = 5

// BuildPrompt renders the single user message sent to the model.
func BuildPrompt(candidates []string, letters []rune, topN int) string {
	if topN < 1 {
		topN = DefaultTopN
	}
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r)
	}
	return fmt.Sprintf(
		"Out of these words, which are the most common ones containing the letters %s "+
			"and the most used statistically? Suggest them as a ranked list from 1 to %d only. "+
			"Possible words: [%s]",
		strings.Join(parts, ","), topN, strings.Join(candidates, ", "))
}
