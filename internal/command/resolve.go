package command

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// RefState is the explicit three-way outcome of resolving a reference.
// There is deliberately no nullable "best guess" value.
type RefState int

const (
	RefResolved RefState = iota
	RefAmbiguous
	RefNotFound
)

// ShelfResolution is the outcome of resolving one shelf reference
type ShelfResolution struct {
	State      RefState
	Phrase     string
	Ref        *domain.ShelfRef
	Candidates []Candidate
}

// Resolution holds everything the resolver extracted from the argument
// span, ready for the command builder.
type Resolution struct {
	Action        Action
	Quantity      int
	QuantityGiven bool
	Unit          string
	ItemText      string
	Item          *domain.Item
	ItemShelf     *domain.ShelfRef
	Source        *ShelfResolution
	Target        *ShelfResolution
	Container     *domain.Container
}

// Resolver maps argument spans onto the snapshot. Resolution order is
// fixed: quantity, then container, then shelf references, then the item,
// because item matching is scoped to the resolved shelf when one exists.
type Resolver struct {
	snap *domain.InventorySnapshot
	lex  *Lexicon
}

func NewResolver(snap *domain.InventorySnapshot, lex *Lexicon) *Resolver {
	return &Resolver{snap: snap, lex: lex}
}

// Resolve turns the argument span into a Resolution or one typed error.
// Nothing is guessed past an ambiguity: a reference that matches more than
// one entity stops the pipeline with the candidate list.
func (r *Resolver) Resolve(action Action, span []Token) (*Resolution, error) {
	res := &Resolution{Action: action, Quantity: 1}
	consumed := make([]bool, len(span))

	r.extractQuantity(span, consumed, res)

	if err := r.extractContainer(span, consumed, res); err != nil {
		return nil, err
	}

	if err := r.extractShelfRefs(action, span, consumed, res); err != nil {
		return nil, err
	}

	// Container inference: an unambiguous shelf implies its container.
	if res.Container == nil {
		if res.Target != nil && res.Target.State == RefResolved {
			res.Container = res.Target.Ref.Container
		} else if res.Source != nil && res.Source.State == RefResolved {
			res.Container = res.Source.Ref.Container
		}
	}

	r.extractItemText(span, consumed, res)

	if err := r.matchItem(action, res); err != nil {
		return nil, err
	}

	// ADD without a stated shelf: an existing item pins the target to its
	// own shelf; failing that, an inventory with a single shelf leaves no
	// room for doubt. Anything else stays unresolved for the builder.
	if action == ActionAdd && res.Target == nil {
		if res.Item != nil {
			res.Target = &ShelfResolution{
				State:  RefResolved,
				Phrase: res.ItemShelf.Shelf.Name,
				Ref:    res.ItemShelf,
			}
		} else if scope := r.itemScope(action, res); len(scope) == 1 {
			res.Target = &ShelfResolution{
				State:  RefResolved,
				Phrase: scope[0].Shelf.Name,
				Ref:    &scope[0],
			}
		}
	}

	return res, nil
}

// extractQuantity takes the first NUMBER token, plus a directly following
// unit token if present. Absence keeps the default of 1; the builder
// decides whether a default is allowed for the action.
func (r *Resolver) extractQuantity(span []Token, consumed []bool, res *Resolution) {
	for i, tok := range span {
		if tok.Class != ClassNumber {
			continue
		}
		res.Quantity = tok.Value
		res.QuantityGiven = true
		consumed[i] = true
		if i+1 < len(span) && span[i+1].Class == ClassUnit {
			res.Unit = span[i+1].Unit
			consumed[i+1] = true
		}
		return
	}
}

// extractContainer consumes an explicit container mention: either a kind
// word ("lodówka", "freezer") or a container's own name.
func (r *Resolver) extractContainer(span []Token, consumed []bool, res *Resolution) error {
	for i, tok := range span {
		if consumed[i] || tok.Class != ClassWord {
			continue
		}

		if kind, ok := r.lex.KindWords[tok.Norm]; ok {
			matches := r.containersOfKind(kind)
			switch len(matches) {
			case 0:
				return &UnresolvedReferenceError{Phrase: tok.Text, Reason: "no such container"}
			case 1:
				res.Container = matches[0]
				consumed[i] = true
				r.consumePrecedingPrep(span, consumed, i)
				return nil
			default:
				return &AmbiguousReferenceError{
					Phrase:     tok.Text,
					Candidates: containerCandidates(matches),
				}
			}
		}

		if c, length := r.matchContainerName(span, consumed, i); c != nil {
			res.Container = c
			for j := i; j < i+length; j++ {
				consumed[j] = true
			}
			r.consumePrecedingPrep(span, consumed, i)
			return nil
		}
	}
	return nil
}

func (r *Resolver) containersOfKind(kind string) []*domain.Container {
	var matches []*domain.Container
	for i := range r.snap.Containers {
		if r.snap.Containers[i].Kind == kind {
			matches = append(matches, &r.snap.Containers[i])
		}
	}
	return matches
}

// matchContainerName tries the longest token run starting at i that equals
// a container name, up to three words.
func (r *Resolver) matchContainerName(span []Token, consumed []bool, i int) (*domain.Container, int) {
	for length := 3; length >= 1; length-- {
		phrase, ok := foldedRun(span, consumed, i, length)
		if !ok {
			continue
		}
		for ci := range r.snap.Containers {
			if Fold(r.snap.Containers[ci].Name) == phrase {
				return &r.snap.Containers[ci], length
			}
		}
	}
	return nil, 0
}

// extractShelfRefs finds ordinal references ("pierwszą półkę") and named
// references ("na Top Shelf") and assigns each a source or target role
// based on the preceding preposition.
func (r *Resolver) extractShelfRefs(action Action, span []Token, consumed []bool, res *Resolution) error {
	for i := 0; i < len(span); i++ {
		if consumed[i] {
			continue
		}
		tok := span[i]

		if tok.Class == ClassOrdinal {
			phrase := tok.Text
			consumed[i] = true
			if i+1 < len(span) && !consumed[i+1] && r.lex.ShelfNouns[span[i+1].Norm] {
				phrase = tok.Text + " " + span[i+1].Text
				consumed[i+1] = true
			}
			role := r.takeRole(action, span, consumed, i, res)
			sr := r.resolveOrdinal(tok.Value, phrase, res.Container)
			if err := r.assignRef(sr, role, res); err != nil {
				return err
			}
			continue
		}

		// A bare shelf noun may be followed by the shelf's name.
		if tok.Class == ClassWord && r.lex.ShelfNouns[tok.Norm] {
			consumed[i] = true
			role := r.takeRole(action, span, consumed, i, res)
			if sr, length := r.matchShelfName(span, consumed, i+1, res.Container); sr != nil {
				for j := i + 1; j < i+1+length; j++ {
					consumed[j] = true
				}
				if err := r.assignRef(sr, role, res); err != nil {
					return err
				}
			}
			continue
		}

		// A preposition directly followed by a shelf name.
		if tok.Class == ClassWord && (r.lex.ToPreps[tok.Norm] || r.lex.FromPreps[tok.Norm]) {
			if sr, length := r.matchShelfName(span, consumed, i+1, res.Container); sr != nil {
				role := roleForPrep(action, tok.Norm, r.lex, res)
				consumed[i] = true
				for j := i + 1; j < i+1+length; j++ {
					consumed[j] = true
				}
				if err := r.assignRef(sr, role, res); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

type refRole int

const (
	roleTarget refRole = iota
	roleSource
)

// takeRole consumes the preposition right before position i, if any, and
// derives the reference's role from it.
func (r *Resolver) takeRole(action Action, span []Token, consumed []bool, i int, res *Resolution) refRole {
	for j := i - 1; j >= 0; j-- {
		if consumed[j] {
			continue
		}
		if r.lex.FromPreps[span[j].Norm] {
			consumed[j] = true
			return roleSource
		}
		if r.lex.ToPreps[span[j].Norm] {
			consumed[j] = true
			return roleTarget
		}
		break
	}
	return defaultRole(action, res)
}

func roleForPrep(action Action, norm string, lex *Lexicon, res *Resolution) refRole {
	if lex.FromPreps[norm] {
		return roleSource
	}
	if lex.ToPreps[norm] {
		return roleTarget
	}
	return defaultRole(action, res)
}

// defaultRole applies when no preposition disambiguates: ADD fills the
// target, REMOVE and QUERY the source, MOVE fills source first then target.
func defaultRole(action Action, res *Resolution) refRole {
	switch action {
	case ActionAdd:
		return roleTarget
	case ActionRemove, ActionQuery:
		return roleSource
	case ActionMove:
		if res.Source == nil {
			return roleSource
		}
		return roleTarget
	default:
		return roleTarget
	}
}

func (r *Resolver) assignRef(sr *ShelfResolution, role refRole, res *Resolution) error {
	switch sr.State {
	case RefAmbiguous:
		return &AmbiguousReferenceError{Phrase: sr.Phrase, Candidates: sr.Candidates}
	case RefNotFound:
		return &UnresolvedReferenceError{Phrase: sr.Phrase, Reason: "no matching shelf"}
	}
	if role == roleSource {
		res.Source = sr
	} else {
		res.Target = sr
	}
	return nil
}

// resolveOrdinal maps an ordinal value onto shelf positions. With a named
// container the search is scoped to it; otherwise every container is
// searched and more than one hit is ambiguous, never a silent first pick.
func (r *Resolver) resolveOrdinal(value int, phrase string, container *domain.Container) *ShelfResolution {
	var containerID uint
	if container != nil {
		containerID = container.ID
	}
	refs := r.snap.ShelvesAtPosition(value, containerID)
	switch len(refs) {
	case 0:
		return &ShelfResolution{State: RefNotFound, Phrase: phrase}
	case 1:
		return &ShelfResolution{State: RefResolved, Phrase: phrase, Ref: &refs[0]}
	default:
		return &ShelfResolution{
			State:      RefAmbiguous,
			Phrase:     phrase,
			Candidates: shelfCandidates(refs),
		}
	}
}

// matchShelfName tries token runs starting at i against shelf names, case
// and diacritic insensitively, longest run first.
func (r *Resolver) matchShelfName(span []Token, consumed []bool, i int, container *domain.Container) (*ShelfResolution, int) {
	for length := 3; length >= 1; length-- {
		phrase, ok := foldedRun(span, consumed, i, length)
		if !ok {
			continue
		}

		var refs []domain.ShelfRef
		for ci := range r.snap.Containers {
			c := &r.snap.Containers[ci]
			if container != nil && c.ID != container.ID {
				continue
			}
			for si := range c.Shelves {
				if nameMatches(Fold(c.Shelves[si].Name), phrase) {
					refs = append(refs, domain.ShelfRef{Container: c, Shelf: &c.Shelves[si]})
				}
			}
		}

		original := originalRun(span, i, length)
		switch len(refs) {
		case 0:
			continue
		case 1:
			return &ShelfResolution{State: RefResolved, Phrase: original, Ref: &refs[0]}, length
		default:
			return &ShelfResolution{
				State:      RefAmbiguous,
				Phrase:     original,
				Candidates: shelfCandidates(refs),
			}, length
		}
	}
	return nil, 0
}

// extractItemText joins the remaining WORD tokens into the item phrase,
// skipping prepositions and fillers. Original spelling is kept so a created
// item is stored the way the user typed it.
func (r *Resolver) extractItemText(span []Token, consumed []bool, res *Resolution) {
	var words []string
	for i, tok := range span {
		if consumed[i] || tok.Class != ClassWord {
			continue
		}
		if r.lex.ToPreps[tok.Norm] || r.lex.FromPreps[tok.Norm] || r.lex.Fillers[tok.Norm] {
			continue
		}
		words = append(words, tok.Text)
	}
	res.ItemText = strings.Join(words, " ")
}

// matchItem resolves the item phrase against existing items: exact match
// first, then folded, then prefix, then a fuzzy tier for inflected forms
// ("mleka" finding "mleko"). Scope is the relevant resolved shelf when one
// exists, otherwise every shelf.
func (r *Resolver) matchItem(action Action, res *Resolution) error {
	if res.ItemText == "" {
		return nil
	}

	scope := r.itemScope(action, res)

	type hit struct {
		item  *domain.Item
		shelf domain.ShelfRef
	}
	collect := func(match func(itemName string) bool) []hit {
		var hits []hit
		for _, ref := range scope {
			for ii := range ref.Shelf.Items {
				if match(ref.Shelf.Items[ii].Name) {
					hits = append(hits, hit{item: &ref.Shelf.Items[ii], shelf: ref})
				}
			}
		}
		return hits
	}

	folded := Fold(res.ItemText)
	tiers := []func(string) bool{
		func(name string) bool { return name == res.ItemText },
		func(name string) bool { return Fold(name) == folded },
		func(name string) bool { return strings.HasPrefix(Fold(name), folded) },
	}
	// Inflection tiers: Polish declension mostly changes the final one or
	// two characters ("mleka" vs the stored "mleko"), so retry with a
	// shortened stem before falling back to fuzzy ranking.
	for trim := 1; trim <= 2; trim++ {
		if len(folded) > trim+2 {
			stem := folded[:len(folded)-trim]
			tiers = append(tiers, func(name string) bool {
				return strings.HasPrefix(Fold(name), stem)
			})
		}
	}

	var hits []hit
	for _, tier := range tiers {
		if hits = collect(tier); len(hits) > 0 {
			break
		}
	}

	if len(hits) == 0 {
		// Fuzzy tier for inflected forms: rank every name in scope and
		// keep only the best-scoring one.
		var names []string
		for _, ref := range scope {
			for ii := range ref.Shelf.Items {
				names = append(names, Fold(ref.Shelf.Items[ii].Name))
			}
		}
		if matches := fuzzy.Find(folded, names); len(matches) > 0 {
			best := matches[0].Str
			hits = collect(func(name string) bool { return Fold(name) == best })
		}
	}

	switch len(hits) {
	case 0:
		if action == ActionAdd {
			return nil // a new item will be created
		}
		e := &ItemNotFoundError{Name: res.ItemText}
		if len(scope) == 1 {
			e.ShelfName = scope[0].Shelf.Name
		}
		return e
	case 1:
		res.Item = hits[0].item
		res.ItemShelf = &hits[0].shelf
		return nil
	default:
		candidates := make([]Candidate, len(hits))
		for i, h := range hits {
			candidates[i] = Candidate{
				ContainerName: h.shelf.Container.Name,
				ShelfName:     h.shelf.Shelf.Name,
				ShelfID:       h.shelf.Shelf.ID,
			}
		}
		return &AmbiguousReferenceError{Phrase: res.ItemText, Candidates: candidates}
	}
}

// itemScope narrows item matching to the shelf the action reads from when
// it resolved, or the whole inventory otherwise.
func (r *Resolver) itemScope(action Action, res *Resolution) []domain.ShelfRef {
	var ref *ShelfResolution
	switch action {
	case ActionAdd:
		ref = res.Target
	case ActionRemove, ActionMove, ActionQuery:
		ref = res.Source
	}
	if ref != nil && ref.State == RefResolved {
		return []domain.ShelfRef{*ref.Ref}
	}

	var scope []domain.ShelfRef
	for ci := range r.snap.Containers {
		c := &r.snap.Containers[ci]
		if res.Container != nil && c.ID != res.Container.ID {
			continue
		}
		for si := range c.Shelves {
			scope = append(scope, domain.ShelfRef{Container: c, Shelf: &c.Shelves[si]})
		}
	}
	return scope
}

// consumePrecedingPrep marks the preposition right before position i as
// consumed so it does not leak into the item phrase.
func (r *Resolver) consumePrecedingPrep(span []Token, consumed []bool, i int) {
	for j := i - 1; j >= 0; j-- {
		if consumed[j] {
			continue
		}
		if r.lex.ToPreps[span[j].Norm] || r.lex.FromPreps[span[j].Norm] {
			consumed[j] = true
		}
		return
	}
}

// nameMatches compares a folded stored name against a folded phrase,
// tolerating the final one or two characters changing under declension
// ("dolnej" matching the shelf "Dolna").
func nameMatches(name, phrase string) bool {
	if name == phrase {
		return true
	}
	for trim := 1; trim <= 2; trim++ {
		if len(phrase) <= trim+2 {
			break
		}
		stem := phrase[:len(phrase)-trim]
		if strings.HasPrefix(name, stem) && len(name) <= len(stem)+3 {
			return true
		}
	}
	return false
}

func foldedRun(span []Token, consumed []bool, i, length int) (string, bool) {
	if i+length > len(span) {
		return "", false
	}
	var parts []string
	for j := i; j < i+length; j++ {
		if consumed[j] {
			return "", false
		}
		parts = append(parts, span[j].Norm)
	}
	return strings.Join(parts, " "), true
}

func originalRun(span []Token, i, length int) string {
	var parts []string
	for j := i; j < i+length; j++ {
		parts = append(parts, span[j].Text)
	}
	return strings.Join(parts, " ")
}

func shelfCandidates(refs []domain.ShelfRef) []Candidate {
	candidates := make([]Candidate, len(refs))
	for i, ref := range refs {
		candidates[i] = Candidate{
			ContainerName: ref.Container.Name,
			ShelfName:     ref.Shelf.Name,
			ShelfID:       ref.Shelf.ID,
		}
	}
	return candidates
}

func containerCandidates(containers []*domain.Container) []Candidate {
	candidates := make([]Candidate, len(containers))
	for i, c := range containers {
		candidates[i] = Candidate{ContainerName: c.Name}
	}
	return candidates
}
