package command

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The lexicon is a pure data table. Adding a locale or a synonym means
// adding entries here; no classifier or resolver logic changes.

// Trigger binds an ordered keyword phrase to an action. Phrases match whole
// consecutive tokens only, never substrings inside item names.
type Trigger struct {
	Action Action
	Phrase []string // folded words
}

// Lexicon holds the locale-specific word tables, all keys folded
type Lexicon struct {
	Triggers     []Trigger
	NumberWords  map[string]int
	OrdinalWords map[string]int
	ShelfNouns   map[string]bool
	KindWords    map[string]string // container-kind keyword -> kind
	FromPreps    map[string]bool
	ToPreps      map[string]bool
	Fillers      map[string]bool
	Units        map[string]string // surface form -> canonical unit
}

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold lower-cases and strips diacritics so that "pięć" and "piec" or
// "mleko" and "Mleko" compare equal. Polish ł is not a combining mark and
// needs its own mapping.
func Fold(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if r == 'ł' {
			return 'l'
		}
		return r
	}, s)
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// DefaultLexicon covers Polish and English inventory vocabulary
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Triggers: []Trigger{
			{ActionAdd, []string{"dodaj"}},
			{ActionAdd, []string{"dorzuc"}},
			{ActionAdd, []string{"doloz"}},
			{ActionAdd, []string{"add"}},
			{ActionAdd, []string{"put"}},
			{ActionRemove, []string{"usun"}},
			{ActionRemove, []string{"zabierz"}},
			{ActionRemove, []string{"wyrzuc"}},
			{ActionRemove, []string{"wyjmij"}},
			{ActionRemove, []string{"remove"}},
			{ActionRemove, []string{"take"}},
			{ActionMove, []string{"przenies"}},
			{ActionMove, []string{"przeloz"}},
			{ActionMove, []string{"move"}},
			{ActionQuery, []string{"ile"}},
			{ActionQuery, []string{"how", "many"}},
			{ActionQuery, []string{"how", "much"}},
		},
		NumberWords: map[string]int{
			"jeden": 1, "jedna": 1, "jedno": 1,
			"dwa": 2, "dwie": 2,
			"trzy": 3, "cztery": 4,
			"piec": 5, "szesc": 6, "siedem": 7, "osiem": 8,
			"dziewiec": 9, "dziesiec": 10,
			"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		},
		OrdinalWords: map[string]int{
			"pierwszy": 1, "pierwsza": 1, "pierwszej": 1, "pierwsze": 1,
			"drugi": 2, "druga": 2, "drugiej": 2, "drugie": 2,
			"trzeci": 3, "trzecia": 3, "trzeciej": 3, "trzecie": 3,
			"czwarty": 4, "czwarta": 4, "czwartej": 4, "czwarte": 4,
			"piaty": 5, "piata": 5, "piatej": 5, "piate": 5,
			"szosty": 6, "szosta": 6, "szostej": 6, "szoste": 6,
			"siodmy": 7, "siodma": 7, "siodmej": 7, "siodme": 7,
			"osmy": 8, "osma": 8, "osmej": 8, "osme": 8,
			"first": 1, "second": 2, "third": 3, "fourth": 4,
			"fifth": 5, "sixth": 6, "seventh": 7, "eighth": 8,
		},
		ShelfNouns: map[string]bool{
			"polka": true, "polke": true, "polki": true, "polce": true,
			"shelf": true, "shelves": true,
		},
		KindWords: map[string]string{
			"lodowka": "fridge", "lodowki": "fridge", "lodowce": "fridge",
			"zamrazarka": "freezer", "zamrazarki": "freezer", "zamrazarce": "freezer",
			"fridge": "fridge", "freezer": "freezer",
		},
		FromPreps: map[string]bool{
			"z": true, "ze": true, "from": true,
		},
		ToPreps: map[string]bool{
			"na": true, "do": true, "w": true, "to": true, "into": true, "onto": true, "in": true, "on": true,
		},
		Fillers: map[string]bool{
			"i": true, "a": true, "an": true, "the": true, "of": true,
			"mam": true, "jest": true, "sa": true, "moje": true,
			"is": true, "are": true, "there": true, "have": true, "my": true,
		},
		Units: map[string]string{
			"l": "l", "litr": "l", "litry": "l", "litrow": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
			"ml": "ml",
			"kg": "kg", "kilo": "kg", "kilogram": "kg", "kilogramy": "kg", "kilogramow": "kg",
			"g": "g", "gram": "g", "gramy": "g", "gramow": "g", "grams": "g",
			"szt": "szt", "sztuk": "szt", "sztuki": "szt",
		},
	}
}
