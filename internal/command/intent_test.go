package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyText(t *testing.T, text string) (Action, []Token, error) {
	t.Helper()
	lex := DefaultLexicon()
	tokens, err := Tokenize(text, lex)
	require.NoError(t, err)
	return Classify(tokens, lex, text)
}

func TestClassifyTriggers(t *testing.T) {
	tests := []struct {
		text   string
		action Action
	}{
		{"dodaj 2 mleka", ActionAdd},
		{"Dodaj mleko", ActionAdd},
		{"add milk", ActionAdd},
		{"usuń jajka", ActionRemove},
		{"zabierz 3 jogurty", ActionRemove},
		{"przenieś 2 masła na drugą półkę", ActionMove},
		{"ile mam mleka", ActionQuery},
		{"how many eggs", ActionQuery},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			action, span, err := classifyText(t, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.action, action)
			assert.NotEmpty(t, span)
		})
	}
}

func TestClassifyArgumentSpan(t *testing.T) {
	action, span, err := classifyText(t, "dodaj 2 mleka na pierwszą półkę")
	require.NoError(t, err)
	assert.Equal(t, ActionAdd, action)
	require.Len(t, span, 5)
	assert.Equal(t, "2", span[0].Text)
}

func TestClassifyMultiWordTrigger(t *testing.T) {
	action, span, err := classifyText(t, "how many eggs are there")
	require.NoError(t, err)
	assert.Equal(t, ActionQuery, action)
	assert.Equal(t, "eggs", span[0].Norm)
}

func TestClassifyWholeTokensOnly(t *testing.T) {
	// "dodatek" contains the trigger "dodaj" as a prefix but must not match
	_, _, err := classifyText(t, "dodatek mleczny")
	var intentErr *UnknownIntentError
	assert.ErrorAs(t, err, &intentErr)
}

func TestClassifyUnknownIntent(t *testing.T) {
	_, _, err := classifyText(t, "mleko")
	var intentErr *UnknownIntentError
	require.ErrorAs(t, err, &intentErr)
	assert.Contains(t, intentErr.Error(), "mleko")
}
