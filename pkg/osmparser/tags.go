package osmparser

import (
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

func isRestricted(value string) bool {
	switch value {
	case "no", "restricted", "military", "emergency", "private", "permit":
		return true
	}
	return false
}

func hasAccess(way *osm.Way) bool {
	return !isRestricted(way.Tags.Find("access")) &&
		!isRestricted(way.Tags.Find("vehicle")) &&
		!isRestricted(way.Tags.Find("motor_vehicle"))
}

func isOneway(way *osm.Way) bool {
	switch way.Tags.Find("oneway") {
	case "yes", "true", "1", "-1":
		return true
	}
	switch way.Tags.Find("junction") {
	case "roundabout", "circular":
		return true
	}
	return false
}

func isArea(way *osm.Way) bool {
	return way.Tags.Find("area") == "yes"
}

// parseMaxSpeed returns the way's maxspeed tag in km/h, or 0 when the tag is
// absent or unparseable.
func parseMaxSpeed(way *osm.Way) float64 {
	value := way.Tags.Find("maxspeed")
	if value == "" {
		return 0
	}

	switch {
	case strings.Contains(value, "mph"):
		speed, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(value, "mph", "", -1)), 64)
		if err != nil {
			return 0
		}
		return speed * 1.60934
	case strings.Contains(value, "km/h"):
		speed, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(value, "km/h", "", -1)), 64)
		if err != nil {
			return 0
		}
		return speed
	case strings.Contains(value, "knots"):
		speed, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(value, "knots", "", -1)), 64)
		if err != nil {
			return 0
		}
		return speed * 1.852
	default:
		speed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return speed
	}
}

// restrictionTypeName maps an OSM turn restriction relation to the relation
// type name registered in the type config, e.g. type=restriction +
// restriction=no_left_turn -> "restriction_no_left_turn". Relations that are
// not turn restrictions yield "".
func restrictionTypeName(relation *osm.Relation) string {
	if relation.Tags.Find("type") != "restriction" {
		return ""
	}
	value := relation.Tags.Find("restriction")
	if value == "" {
		return ""
	}
	return "restriction_" + value
}
