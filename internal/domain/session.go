package domain

// SearchMode selects which search surface is active. Exactly one mode
// is active at a time.
type SearchMode int

const (
	ModeURL SearchMode = iota
	ModeName
	ModeIngredient
	ModeDiscovery
)

// String returns a human-readable search mode.
func (m SearchMode) String() string {
	switch m {
	case ModeURL:
		return "url"
	case ModeName:
		return "name"
	case ModeIngredient:
		return "ingredient"
	case ModeDiscovery:
		return "discovery"
	default:
		return "unknown"
	}
}

// ResultWindow is the revealed prefix of a larger candidate result set.
// Revealed only grows within one candidate set and resets to the page
// size whenever the set is replaced. Fetched holds the full records for
// revealed candidates in candidate order; items whose fetch failed are
// omitted, so len(Fetched) <= min(Revealed, len(Candidates)).
type ResultWindow struct {
	Candidates []RecipeSummary
	Revealed   int
	Fetched    []*Recipe
}

// HasMore reports whether candidates beyond the revealed window remain.
func (w ResultWindow) HasMore() bool {
	return w.Revealed < len(w.Candidates)
}

// SearchSession is the whole state of one search screen. It is owned by
// the search controller and mutated only by controller transitions.
// Single and a non-empty Window are mutually exclusive: the session
// shows either one focused recipe or a browsable batch, never both.
type SearchSession struct {
	Mode        SearchMode
	Query       string
	Single      *Recipe
	Window      ResultWindow
	ErrMsg      string
	Busy        bool
	LoadingMore bool
}
