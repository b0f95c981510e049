package advisory

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedBlock matches a triple-backtick region, optionally tagged json
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseSuggestions extracts the structured suggestion list from the
// provider's raw reply. If the reply contains a fenced block its inner
// content is used, otherwise the full trimmed reply. The content must
// parse strictly as a JSON list; on failure a ParseError with a
// truncated excerpt of the offending text is returned, never a silently
// dropped or guessed-at result.
func ParseSuggestions(reply string) ([]Suggestion, error) {
	content := strings.TrimSpace(reply)
	if match := fencedBlock.FindStringSubmatch(content); match != nil {
		content = strings.TrimSpace(match[1])
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, &ParseError{Excerpt: excerpt(content), Err: err}
	}
	return suggestions, nil
}
