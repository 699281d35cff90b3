package domain

// DatasetKind identifies which CNEOS feed a payload or table came from.
// It selects the rename table and the chart shape.
type DatasetKind string

const (
	Fireball      DatasetKind = "fireball"
	CloseApproach DatasetKind = "close_approach"
)

// Display column names. The chart builder looks columns up by these, so
// they are shared constants rather than string literals.
const (
	ColDateTime     = "Date/Time"
	ColEnergy       = "Energy (kt)"
	ColImpactEnergy = "Impact Energy (10^10 J)"
	ColLatitude     = "Latitude"
	ColLongitude    = "Longitude"
	ColAltitude     = "Altitude (km)"
	ColVelocity     = "Velocity (km/s)"

	ColObject          = "Object"
	ColOrbitID         = "Orbit ID"
	ColTimeTDB         = "Time (TDB)"
	ColNominalDistance = "Nominal Distance (au)"
	ColMinimumDistance = "Minimum Distance (au)"
	ColMaximumDistance = "Maximum Distance (au)"
	ColMagnitude       = "H (mag)"
)

// fireballRenames maps fireball.api source keys to display names.
var fireballRenames = map[string]string{
	"date":     ColDateTime,
	"energy":   ColEnergy,
	"impact-e": ColImpactEnergy,
	"lat":      ColLatitude,
	"lon":      ColLongitude,
	"alt":      ColAltitude,
	"vel":      ColVelocity,
}

// closeApproachRenames maps cad.api source keys to display names.
var closeApproachRenames = map[string]string{
	"des":      ColObject,
	"orbit_id": ColOrbitID,
	"cd":       ColTimeTDB,
	"dist":     ColNominalDistance,
	"dist_min": ColMinimumDistance,
	"dist_max": ColMaximumDistance,
	"v_rel":    ColVelocity,
	"h":        ColMagnitude,
}

// Renames returns the display-name mapping for the kind. Unknown kinds
// rename nothing.
func (k DatasetKind) Renames() map[string]string {
	switch k {
	case Fireball:
		return fireballRenames
	case CloseApproach:
		return closeApproachRenames
	default:
		return nil
	}
}

func (k DatasetKind) String() string {
	return string(k)
}
