package store

// Scope identifies which parent's slice of a collection an operation
// targets: a concrete parent entity (city, cup, team, season) or the
// unscoped "all parents" view. Using a tagged value instead of a
// sentinel string means a real parent id can never collide with the
// all-scopes marker.
type Scope struct {
	all    bool
	parent string
}

func AllScope() Scope {
	return Scope{all: true}
}

func ForParent(id string) Scope {
	return Scope{parent: id}
}

// ForPair builds a composite scope for collections keyed by two parents
// at once, such as league groups keyed by city and sport.
func ForPair(first, second string) Scope {
	return Scope{parent: first + "\x1f" + second}
}

func (s Scope) IsAll() bool {
	return s.all
}

// Parent returns the parent id; empty for the all scope.
func (s Scope) Parent() string {
	if s.all {
		return ""
	}
	return s.parent
}

func (s Scope) String() string {
	if s.all {
		return "all"
	}
	return s.parent
}

// key is the internal map key. The all scope gets a marker outside the
// parent namespace.
func (s Scope) key() string {
	if s.all {
		return "*"
	}
	return "p:" + s.parent
}
