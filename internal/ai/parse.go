package ai

import (
	"strings"
)

// ParseError reports a model response that could not be parsed as the
// expected JSON. It carries the raw text so the user can see what came
// back and retry; it is never fatal.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "failed to parse model response"
}

// StripFence removes an optional markdown code fence wrapping a response.
// The first fence line starts capture, the second ends it; text outside the
// fence is discarded. Unfenced input is returned unchanged.
func StripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	var captured []string
	inBlock := false
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "```") && !inBlock:
			inBlock = true
		case strings.HasPrefix(line, "```") && inBlock:
			return strings.Join(captured, "\n")
		case inBlock:
			captured = append(captured, line)
		}
	}
	return strings.Join(captured, "\n")
}
