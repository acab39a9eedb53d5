package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeClassifiesTokens(t *testing.T) {
	lex := DefaultLexicon()

	tokens, err := Tokenize("dodaj 2 mleka na pierwszą półkę", lex)
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, ClassWord, tokens[0].Class)
	assert.Equal(t, "dodaj", tokens[0].Norm)

	assert.Equal(t, ClassNumber, tokens[1].Class)
	assert.Equal(t, 2, tokens[1].Value)

	assert.Equal(t, ClassWord, tokens[2].Class)
	assert.Equal(t, "mleka", tokens[2].Norm)

	assert.Equal(t, ClassOrdinal, tokens[4].Class)
	assert.Equal(t, 1, tokens[4].Value)
	assert.Equal(t, "pierwszą", tokens[4].Text)

	assert.Equal(t, "polke", tokens[5].Norm)
}

func TestTokenizeNumberWords(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		word  string
		value int
	}{
		{"dwa", 2},
		{"dwie", 2},
		{"pięć", 5},
		{"three", 3},
		{"10", 10},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			tokens, err := Tokenize(tt.word, lex)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, ClassNumber, tokens[0].Class)
			assert.Equal(t, tt.value, tokens[0].Value)
		})
	}
}

func TestTokenizeUnits(t *testing.T) {
	lex := DefaultLexicon()

	tokens, err := Tokenize("dodaj 2 l mleka", lex)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, ClassUnit, tokens[2].Class)
	assert.Equal(t, "l", tokens[2].Unit)
}

func TestTokenizeKeepsSpans(t *testing.T) {
	lex := DefaultLexicon()

	raw := "dodaj  mleko"
	tokens, err := Tokenize(raw, lex)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "dodaj", raw[tokens[0].Start:tokens[0].End])
	assert.Equal(t, "mleko", raw[tokens[1].Start:tokens[1].End])
}

func TestTokenizeStripsPunctuation(t *testing.T) {
	lex := DefaultLexicon()

	tokens, err := Tokenize("dodaj mleko, jajka!", lex)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "mleko", tokens[1].Norm)
	assert.Equal(t, "jajka", tokens[2].Norm)
}

func TestTokenizeEmptyUtterance(t *testing.T) {
	lex := DefaultLexicon()

	for _, raw := range []string{"", "   ", "...!?"} {
		_, err := Tokenize(raw, lex)
		var emptyErr *EmptyUtteranceError
		assert.ErrorAs(t, err, &emptyErr, "raw=%q", raw)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "polke", Fold("Półkę"))
	assert.Equal(t, "piec", Fold("pięć"))
	assert.Equal(t, "zoladz", Fold("żołądź"))
	assert.Equal(t, "mleko", Fold("MLEKO"))
}
