// Package scoring maps raw vehicle attributes to normalized criterion values
// in [0, 1]. Every function is pure and total on its input domain.
package scoring

import "time"

// ReferenceYear is the year vehicle age is measured against.
const ReferenceYear = 2025

// VehicleType classifies a vehicle by its service role.
type VehicleType int

const (
	VehicleEmergency VehicleType = iota
	VehiclePublicTransport
	VehicleCommercial
	VehiclePrivate
)

// AgePowerScore rates the driver age against engine power. Light vehicles
// look power up by exact row; unknown powers score 0. Heavy vehicles ignore
// power.
func AgePowerScore(power, driverAge int, heavy bool) float64 {
	if heavy {
		idx := bracketIndex(heavyAgeBrackets, driverAge)
		if idx < 0 {
			return 0
		}
		return heavyAgeScores[idx]
	}

	for _, row := range lightPowerTable {
		if row.power != power {
			continue
		}
		idx := bracketIndex(lightAgeBrackets, driverAge)
		if idx < 0 {
			return 0
		}
		return row.scores[idx]
	}
	return 0
}

func VehicleAgeScore(manufactureYear int) float64 {
	age := max(0, ReferenceYear-manufactureYear)
	switch {
	case age <= 10:
		return 1
	case age <= 20:
		return 0.75
	case age <= 40:
		return 0.5
	default:
		return 0.25
	}
}

func TimeTraveledScore(hours float64) float64 {
	switch {
	case hours <= 0:
		return 0
	case hours <= 2:
		return 1
	case hours <= 4:
		return 0.75
	case hours <= 8:
		return 0.5
	default:
		return 0.25
	}
}

func LicenseTenureScore(years int) float64 {
	switch {
	case years > 10:
		return 1
	case years > 5:
		return 0.75
	case years > 2:
		return 0.5
	case years >= 1:
		return 0.25
	default:
		return 0
	}
}

func FuelEfficiencyScore(class int) float64 {
	switch class {
	case 0:
		return 1
	case 1:
		return 0.8
	case 2:
		return 0.7
	case 3:
		return 0.4
	default:
		return 0.2
	}
}

func AverageSpeedScore(kmh float64) float64 {
	switch {
	case kmh >= 80:
		return 1
	case kmh >= 60:
		return 0.75
	case kmh >= 40:
		return 0.5
	case kmh > 0:
		return 0.25
	default:
		return 0
	}
}

// ClusterVelocityCoherenceScore rates how close a vehicle's speed is to the
// cluster average. A stationary cluster only accepts stationary vehicles.
func ClusterVelocityCoherenceScore(vehicleKmh, clusterAvgKmh float64) float64 {
	if clusterAvgKmh <= 1 {
		if vehicleKmh <= 1 {
			return 1
		}
		return 0
	}

	ratio := vehicleKmh / clusterAvgKmh
	switch {
	case ratio >= 0.8 && ratio < 1.5:
		return 1
	case (ratio >= 0.6 && ratio < 0.8) || (ratio >= 1.5 && ratio < 2.0):
		return 0.75
	case (ratio >= 0.4 && ratio < 0.6) || (ratio >= 2.0 && ratio < 2.5):
		return 0.5
	case (ratio > 0 && ratio < 0.4) || (ratio >= 2.5 && ratio < 3.0):
		return 0.25
	default:
		return 0
	}
}

func VehicleTypeScore(class VehicleType) float64 {
	switch class {
	case VehicleEmergency:
		return 1
	case VehiclePublicTransport:
		return 0.75
	case VehicleCommercial:
		return 0.5
	default:
		return 0.25
	}
}

// LinkQualityScore decays linearly from 1 at zero RTT to 0 at threshold.
// An unmeasured link (rtt <= 0) or one above threshold scores 0.
func LinkQualityScore(rtt, threshold time.Duration) float64 {
	if rtt <= 0 || threshold <= 0 || rtt > threshold {
		return 0
	}
	return 1 - float64(rtt)/float64(threshold)
}

// DegreeScore is the neighbor count relative to the best connected candidate.
func DegreeScore(neighbors, maxNeighbors int) float64 {
	if maxNeighbors <= 0 || neighbors <= 0 {
		return 0
	}
	if neighbors >= maxNeighbors {
		return 1
	}
	return float64(neighbors) / float64(maxNeighbors)
}
