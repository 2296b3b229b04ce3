package parse

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// Reply is the parsed form of a raw completion
type Reply struct {
	Prose   string
	Options []string
}

// suggested-options fragment the policy prompt asks the model to append.
// Non-greedy and dotall: the array may span lines inside a longer reply.
var optionsPattern = regexp.MustCompile(`(?s)\{\s*"options"\s*:\s*\[.*?\]\s*\}`)

const expectedOptionCount = 4

type optionsPayload struct {
	Options []string `json:"options"`
}

// Parser splits raw completions into prose and suggested options. The logger
// records fragments that look like an options block but cannot be used; it
// may be nil.
type Parser struct {
	logger *log.Logger
}

func NewParser(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse is total: any input yields a Reply. A missing or unusable options
// fragment means the whole text is prose, returned unchanged. When several
// fragments appear the last one wins.
func (p *Parser) Parse(raw string) Reply {
	matches := optionsPattern.FindAllStringIndex(raw, -1)
	if len(matches) == 0 {
		return Reply{Prose: raw}
	}

	last := matches[len(matches)-1]
	fragment := raw[last[0]:last[1]]

	var payload optionsPayload
	if err := json.Unmarshal([]byte(fragment), &payload); err != nil {
		p.logf("[WARN] Options fragment is not valid JSON, keeping it as prose: %v", err)
		return Reply{Prose: raw}
	}
	if len(payload.Options) != expectedOptionCount {
		p.logf("[WARN] Options fragment has %d entries instead of %d, keeping it as prose",
			len(payload.Options), expectedOptionCount)
		return Reply{Prose: raw}
	}

	prose := strings.TrimSpace(raw[:last[0]] + raw[last[1]:])
	return Reply{
		Prose:   prose,
		Options: payload.Options,
	}
}

func (p *Parser) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// Parse is the logger-less form, for callers that do not record parse outcomes.
func Parse(raw string) Reply {
	return (&Parser{}).Parse(raw)
}
