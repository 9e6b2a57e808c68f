package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"lumo_backend/internal/util"
)

// GeneratedQuestionSet is the typed form of the model's question
// generation output.
type GeneratedQuestionSet struct {
	Quiz      []GeneratedQuizItem      `json:"quiz"`
	Coding    []GeneratedCodingItem    `json:"coding"`
	Interview []GeneratedInterviewItem `json:"interview"`
}

type GeneratedQuizItem struct {
	QuestionText     string            `json:"question_text"`
	Options          map[string]string `json:"options"`
	CorrectAnswerKey string            `json:"correct_answer_key"`
}

type GeneratedCodingItem struct {
	Title            string          `json:"title"`
	ProblemStatement string          `json:"problem_statement"`
	TestCases        json.RawMessage `json:"test_cases"`
}

type GeneratedInterviewItem struct {
	QuestionText    string `json:"question_text"`
	SuggestedAnswer string `json:"suggested_answer"`
}

// EmptyQuestionSet is what callers substitute when the model output is
// malformed: question generation is best-effort enrichment.
func EmptyQuestionSet() GeneratedQuestionSet {
	return GeneratedQuestionSet{
		Quiz:      []GeneratedQuizItem{},
		Coding:    []GeneratedCodingItem{},
		Interview: []GeneratedInterviewItem{},
	}
}

// SwotResult is the 5-field performance analysis.
type SwotResult struct {
	Strengths       string `json:"strengths"`
	Weaknesses      string `json:"weaknesses"`
	StrengthsScore  int    `json:"strengthsScore"`
	WeaknessesScore int    `json:"weaknessesScore"`
	OverallScore    int    `json:"overallScore"`
}

// FallbackSwotResult is returned whenever analysis fails for any reason.
func FallbackSwotResult() SwotResult {
	return SwotResult{
		Strengths:  "Error analyzing chat.",
		Weaknesses: "Could not generate analysis due to an internal error.",
	}
}

// NoHistorySwotResult is returned for users with no chat turns, without
// calling the model at all.
func NoHistorySwotResult() SwotResult {
	return SwotResult{
		Strengths:  "No chat history to analyze.",
		Weaknesses: "Start a conversation first!",
	}
}

// stripFence removes a markdown code fence wrapper if the model added
// one despite being told not to.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "python", ...).
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseQuestionSet converts raw model text into a GeneratedQuestionSet.
// Returns util.ErrMalformedOutput when the text is not JSON or any of
// the three top-level arrays is missing.
func ParseQuestionSet(raw string) (GeneratedQuestionSet, error) {
	cleaned := stripFence(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return GeneratedQuestionSet{}, fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
	}
	for _, key := range []string{"quiz", "coding", "interview"} {
		if _, ok := top[key]; !ok {
			return GeneratedQuestionSet{}, fmt.Errorf("%w: missing %q array", util.ErrMalformedOutput, key)
		}
	}

	var set GeneratedQuestionSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return GeneratedQuestionSet{}, fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
	}
	return set, nil
}

// ParseSwotList parses the model's 5-element list output. The model is
// prompted for a Python-style list, so this accepts both single and
// double quoted strings, but only as literals: the parser allow-lists
// brackets, commas, quoted strings and integers and fails closed on
// anything else. Model output must never be evaluated.
func ParseSwotList(raw string) (SwotResult, error) {
	values, err := parseLiteralList(stripFence(raw))
	if err != nil {
		return SwotResult{}, err
	}
	if len(values) != 5 {
		return SwotResult{}, fmt.Errorf("%w: expected 5 elements, got %d", util.ErrMalformedOutput, len(values))
	}

	strengths, ok1 := values[0].(string)
	weaknesses, ok2 := values[1].(string)
	strengthsScore, ok3 := values[2].(int)
	weaknessesScore, ok4 := values[3].(int)
	overallScore, ok5 := values[4].(int)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return SwotResult{}, fmt.Errorf("%w: expected [string, string, int, int, int]", util.ErrMalformedOutput)
	}

	return SwotResult{
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		StrengthsScore:  clampScore(strengthsScore),
		WeaknessesScore: clampScore(weaknessesScore),
		OverallScore:    clampScore(overallScore),
	}, nil
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// parseLiteralList scans a bracketed, comma-separated sequence of
// quoted strings and integers. Any other token is rejected.
func parseLiteralList(s string) ([]interface{}, error) {
	p := &literalParser{input: []rune(s)}

	p.skipSpace()
	if !p.consume('[') {
		return nil, fmt.Errorf("%w: expected '['", util.ErrMalformedOutput)
	}

	var values []interface{}
	p.skipSpace()
	if p.consume(']') {
		p.skipSpace()
		if !p.done() {
			return nil, fmt.Errorf("%w: trailing content after list", util.ErrMalformedOutput)
		}
		return values, nil
	}

	for {
		p.skipSpace()
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, fmt.Errorf("%w: expected ',' or ']'", util.ErrMalformedOutput)
	}

	p.skipSpace()
	if !p.done() {
		return nil, fmt.Errorf("%w: trailing content after list", util.ErrMalformedOutput)
	}
	return values, nil
}

type literalParser struct {
	input []rune
	pos   int
}

func (p *literalParser) done() bool {
	return p.pos >= len(p.input)
}

func (p *literalParser) peek() rune {
	if p.done() {
		return 0
	}
	return p.input[p.pos]
}

func (p *literalParser) consume(r rune) bool {
	if !p.done() && p.input[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) skipSpace() {
	for !p.done() && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *literalParser) parseValue() (interface{}, error) {
	switch {
	case p.peek() == '\'' || p.peek() == '"':
		return p.parseString()
	case p.peek() == '-' || unicode.IsDigit(p.peek()):
		return p.parseInt()
	default:
		return nil, fmt.Errorf("%w: unexpected token at position %d", util.ErrMalformedOutput, p.pos)
	}
}

func (p *literalParser) parseString() (string, error) {
	quote := p.input[p.pos]
	p.pos++

	var sb strings.Builder
	for !p.done() {
		r := p.input[p.pos]
		p.pos++

		switch r {
		case quote:
			return sb.String(), nil
		case '\\':
			if p.done() {
				return "", fmt.Errorf("%w: unterminated escape", util.ErrMalformedOutput)
			}
			esc := p.input[p.pos]
			p.pos++
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				// \', \", \\ and anything else: keep the escaped rune.
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return "", fmt.Errorf("%w: unterminated string", util.ErrMalformedOutput)
}

func (p *literalParser) parseInt() (int, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	digits := 0
	for !p.done() && unicode.IsDigit(p.input[p.pos]) {
		p.pos++
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: invalid number", util.ErrMalformedOutput)
	}

	n := 0
	negative := p.input[start] == '-'
	for _, r := range p.input[start:p.pos] {
		if r == '-' {
			continue
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return 0, fmt.Errorf("%w: number out of range", util.ErrMalformedOutput)
		}
	}
	if negative {
		n = -n
	}
	return n, nil
}
