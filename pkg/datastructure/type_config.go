package datastructure

// TypeIgnore is the reserved type id for ways and relations whose type is not
// registered. Records carrying it are skipped by every stage.
const TypeIgnore int32 = 0

type TypeInfo struct {
	Name            string
	Ignore          bool
	CanRoute        bool
	DefaultMaxSpeed uint8
}

// TypeConfig maps way and relation type names to small integer ids and keeps
// the per-type routing attributes. Id 0 is reserved for TypeIgnore.
type TypeConfig struct {
	types           []TypeInfo
	wayTypeIDs      map[string]int32
	relationTypeIDs map[string]int32
}

func NewTypeConfig() *TypeConfig {
	return &TypeConfig{
		types:           []TypeInfo{{Name: "", Ignore: true}},
		wayTypeIDs:      make(map[string]int32),
		relationTypeIDs: make(map[string]int32),
	}
}

func (c *TypeConfig) RegisterWayType(info TypeInfo) int32 {
	id := int32(len(c.types))
	c.types = append(c.types, info)
	c.wayTypeIDs[info.Name] = id
	return id
}

func (c *TypeConfig) RegisterRelationType(name string) int32 {
	id := int32(len(c.types))
	c.types = append(c.types, TypeInfo{Name: name})
	c.relationTypeIDs[name] = id
	return id
}

// GetWayTypeID returns TypeIgnore for names that were never registered.
func (c *TypeConfig) GetWayTypeID(name string) int32 {
	if id, ok := c.wayTypeIDs[name]; ok {
		return id
	}
	return TypeIgnore
}

func (c *TypeConfig) GetRelationTypeID(name string) int32 {
	if id, ok := c.relationTypeIDs[name]; ok {
		return id
	}
	return TypeIgnore
}

func (c *TypeConfig) GetIgnore(id int32) bool {
	if id <= 0 || int(id) >= len(c.types) {
		return true
	}
	return c.types[id].Ignore
}

func (c *TypeConfig) CanBeRoute(id int32) bool {
	if id <= 0 || int(id) >= len(c.types) {
		return false
	}
	return c.types[id].CanRoute
}

func (c *TypeConfig) DefaultMaxSpeed(id int32) uint8 {
	if id <= 0 || int(id) >= len(c.types) {
		return 0
	}
	return c.types[id].DefaultMaxSpeed
}

// AllowRestrictionTypes and ForbidRestrictionTypes list the relation type
// names the route graph stage recognises, split into the allowing and the
// forbidding family.
var (
	AllowRestrictionTypes = []string{
		"restriction_only_right_turn",
		"restriction_only_left_turn",
		"restriction_only_straight_on",
	}
	ForbidRestrictionTypes = []string{
		"restriction_no_right_turn",
		"restriction_no_left_turn",
		"restriction_no_u_turn",
		"restriction_no_straight_on",
	}
)

// DefaultTypeConfig registers the highway types the importer understands.
// Speeds follow the usual km/h defaults per road class.
func DefaultTypeConfig() *TypeConfig {
	config := NewTypeConfig()

	routable := []TypeInfo{
		{Name: "motorway", CanRoute: true, DefaultMaxSpeed: 100},
		{Name: "motorway_link", CanRoute: true, DefaultMaxSpeed: 70},
		{Name: "trunk", CanRoute: true, DefaultMaxSpeed: 70},
		{Name: "trunk_link", CanRoute: true, DefaultMaxSpeed: 65},
		{Name: "primary", CanRoute: true, DefaultMaxSpeed: 65},
		{Name: "primary_link", CanRoute: true, DefaultMaxSpeed: 60},
		{Name: "secondary", CanRoute: true, DefaultMaxSpeed: 60},
		{Name: "secondary_link", CanRoute: true, DefaultMaxSpeed: 50},
		{Name: "tertiary", CanRoute: true, DefaultMaxSpeed: 50},
		{Name: "tertiary_link", CanRoute: true, DefaultMaxSpeed: 40},
		{Name: "unclassified", CanRoute: true, DefaultMaxSpeed: 30},
		{Name: "residential", CanRoute: true, DefaultMaxSpeed: 30},
		{Name: "living_street", CanRoute: true, DefaultMaxSpeed: 10},
		{Name: "service", CanRoute: true, DefaultMaxSpeed: 20},
		{Name: "road", CanRoute: true, DefaultMaxSpeed: 20},
		{Name: "track", CanRoute: true, DefaultMaxSpeed: 15},
	}
	for _, info := range routable {
		config.RegisterWayType(info)
	}

	// Kept in ways.dat for rendering stages, never routed.
	nonRoutable := []string{
		"footway", "path", "cycleway", "pedestrian", "steps", "bridleway",
		"corridor", "platform", "construction",
	}
	for _, name := range nonRoutable {
		config.RegisterWayType(TypeInfo{Name: name})
	}

	for _, name := range AllowRestrictionTypes {
		config.RegisterRelationType(name)
	}
	for _, name := range ForbidRestrictionTypes {
		config.RegisterRelationType(name)
	}

	return config
}
