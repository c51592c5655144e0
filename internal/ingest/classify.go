package ingest

// Mode selects the routability filter: Bus honors the highway/service/
// access rule set; Tram accepts any railway-class way reaching the fetcher.
type Mode int

const (
	ModeBus Mode = iota
	ModeTram
)

var busHighways = map[string]bool{
	"residential": true, "service": true, "unclassified": true,
	"tertiary": true, "tertiary_link": true,
	"secondary": true, "secondary_link": true,
	"primary": true, "primary_link": true,
	"living_street": true,
	"trunk": true, "trunk_link": true,
	"motorway": true, "motorway_link": true, "motorway_junction": true,
	"road": true, "busway": true, "bus_guideway": true,
}

var disallowedServices = map[string]bool{
	"driveway": true, "driveway2": true, "parking_aisle": true,
	"alley": true, "emergency_access": true,
}

// IsRoutable applies the routability filter for mode. For ModeTram, every
// railway-class way reaching the fetcher is routable (the fetcher is
// assumed to have already restricted by railway kind upstream).
func IsRoutable(tags map[string]string, mode Mode) bool {
	if mode == ModeTram {
		_, hasRailway := tags["railway"]

		return hasRailway
	}

	highway := tags["highway"]
	accessDesignated := false
	busOrPsvYes := tagEquals(tags, "bus", "yes") || tagEquals(tags, "psv", "yes")

	highwayValid := busHighways[highway]
	if !highwayValid && highway == "pedestrian" && busOrPsvYes {
		highwayValid = true
	}
	if !highwayValid {
		return false
	}

	service, hasService := tags["service"]
	serviceValid := !hasService || !disallowedServices[service]

	if v, ok := tags["bus"]; ok {
		accessDesignated = v != "no"
	} else if v, ok := tags["psv"]; ok {
		accessDesignated = v != "no"
	}

	accessValid := true
	if v, ok := tags["bus"]; ok {
		accessValid = v != "no"
	} else if v, ok := tags["psv"]; ok {
		accessValid = v != "no"
	} else if v, ok := tags["motor_vehicle"]; ok {
		accessValid = v != "private" && v != "customers" && v != "no"
	} else if v, ok := tags["access"]; ok {
		accessValid = v != "private" && v != "customers" && v != "no"
	}

	areaValid := tags["area"] != "yes"

	return highwayValid && (serviceValid || accessDesignated) && accessValid && areaValid
}

func tagEquals(tags map[string]string, key, val string) bool {
	v, ok := tags[key]

	return ok && v == val
}

// Classify derives the Oneway and Roundabout flags from tags, following
// priority oneway:bus > oneway:psv > oneway > junction=roundabout.
// Any value other than "yes" (including "-1") makes the way two-way.
func Classify(tags map[string]string) (oneway, roundabout bool) {
	roundabout = tags["junction"] == "roundabout"
	oneway = roundabout

	if v, ok := tags["oneway:bus"]; ok {
		oneway = v == "yes"
	} else if v, ok := tags["oneway:psv"]; ok {
		oneway = v == "yes"
	} else if v, ok := tags["oneway"]; ok {
		oneway = v == "yes"
	}

	return oneway, roundabout
}
