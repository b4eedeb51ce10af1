package digest

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode marks payloads that are not well-formed event summaries.
var ErrDecode = errors.New("malformed event summary payload")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run decodes a raw summary payload. Decoding is all-or-nothing: a malformed
// payload yields no partial result.
func (p *Parser) Run(data []byte) (*EventSummary, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	var summary EventSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &summary, nil
}
