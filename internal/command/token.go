package command

import (
	"strconv"
	"unicode"
)

// TokenClass tags what a normalized token is
type TokenClass int

const (
	ClassWord TokenClass = iota
	ClassNumber
	ClassOrdinal
	ClassUnit
)

func (c TokenClass) String() string {
	switch c {
	case ClassNumber:
		return "NUMBER"
	case ClassOrdinal:
		return "ORDINAL"
	case ClassUnit:
		return "UNIT"
	default:
		return "WORD"
	}
}

// Token is one normalized word of the utterance. Text keeps the original
// spelling for error messages; Norm is the folded form used for matching.
// Start and End are byte offsets into the raw utterance.
type Token struct {
	Text  string
	Norm  string
	Class TokenClass
	Value int // NUMBER and ORDINAL only
	Unit  string
	Start int
	End   int
}

// Tokenize splits the raw utterance into classified tokens. Words are
// separated on whitespace and punctuation; no token is dropped. Digits and
// number words become NUMBER, ordinal words ORDINAL, unit words UNIT, and
// everything else WORD.
func Tokenize(raw string, lex *Lexicon) ([]Token, error) {
	var tokens []Token

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		text := raw[start:end]
		tokens = append(tokens, classify(text, start, end, lex))
		start = -1
	}

	for i, r := range raw {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(raw))

	if len(tokens) == 0 {
		return nil, &EmptyUtteranceError{Utterance: raw}
	}
	return tokens, nil
}

func classify(text string, start, end int, lex *Lexicon) Token {
	tok := Token{
		Text:  text,
		Norm:  Fold(text),
		Class: ClassWord,
		Start: start,
		End:   end,
	}

	if n, err := strconv.Atoi(tok.Norm); err == nil {
		tok.Class = ClassNumber
		tok.Value = n
		return tok
	}
	if n, ok := lex.NumberWords[tok.Norm]; ok {
		tok.Class = ClassNumber
		tok.Value = n
		return tok
	}
	if n, ok := lex.OrdinalWords[tok.Norm]; ok {
		tok.Class = ClassOrdinal
		tok.Value = n
		return tok
	}
	if unit, ok := lex.Units[tok.Norm]; ok {
		tok.Class = ClassUnit
		tok.Unit = unit
		return tok
	}
	return tok
}
