package command

// Action is the closed set of things a command can do. Every stage switches
// exhaustively over it; adding an action means touching each switch.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
	ActionMove
	ActionQuery
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "ADD"
	case ActionRemove:
		return "REMOVE"
	case ActionMove:
		return "MOVE"
	case ActionQuery:
		return "QUERY"
	default:
		return "UNKNOWN"
	}
}

// Classify finds the first trigger phrase in the token sequence and returns
// the action plus the argument span (tokens after the trigger). Triggers
// match whole folded tokens only, so an item called "dodatek" never
// triggers ADD.
func Classify(tokens []Token, lex *Lexicon, utterance string) (Action, []Token, error) {
	for i := range tokens {
		for _, trig := range lex.Triggers {
			if matchPhrase(tokens[i:], trig.Phrase) {
				return trig.Action, tokens[i+len(trig.Phrase):], nil
			}
		}
	}
	return 0, nil, &UnknownIntentError{Utterance: utterance}
}

func matchPhrase(tokens []Token, phrase []string) bool {
	if len(tokens) < len(phrase) {
		return false
	}
	for i, word := range phrase {
		if tokens[i].Norm != word {
			return false
		}
	}
	return true
}
