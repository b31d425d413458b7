package datastructure

type RestrictionKind uint8

const (
	RestrictionAllow RestrictionKind = iota
	RestrictionForbid
)

// Restriction is a turn restriction through a via node: travelling from way
// From, the turn onto way To is either the only permitted one (Allow) or a
// forbidden one (Forbid).
type Restriction struct {
	From int64
	To   int64
	Kind RestrictionKind
}
