// Package election turns vehicle attributes into a criteria matrix and ranks
// head candidates with every configured decision method.
package election

import (
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/mcda"
	"github.com/anthanhphan/go-vanet-cluster/pkg/scoring"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
)

// VehicleProfile holds the raw attributes a vehicle advertises.
type VehicleProfile struct {
	Power           int                 `json:"power" yaml:"power"`
	DriverAge       int                 `json:"driver_age" yaml:"driver_age"`
	Heavy           bool                `json:"heavy" yaml:"heavy"`
	ManufactureYear int                 `json:"manufacture_year" yaml:"manufacture_year"`
	HoursTraveled   float64             `json:"hours_traveled" yaml:"hours_traveled"`
	LicenseYears    int                 `json:"license_years" yaml:"license_years"`
	FuelClass       int                 `json:"fuel_class" yaml:"fuel_class"`
	SpeedKmh        float64             `json:"speed_kmh" yaml:"speed_kmh"`
	Type            scoring.VehicleType `json:"type" yaml:"type"`
}

// Candidate is one vehicle competing for cluster headship.
type Candidate struct {
	ID        wire.NodeID    `json:"id"`
	Profile   VehicleProfile `json:"profile"`
	Neighbors int            `json:"neighbors"`
	RTT       time.Duration  `json:"rtt"`
}

// CriteriaCount is the number of columns BuildMatrix produces, in
// mcda.CriteriaCodes order.
const CriteriaCount = len(mcda.CriteriaCodes)

// BuildMatrix scores every candidate on the ten criteria. Velocity coherence
// is measured against the candidates' mean speed and degree against the best
// connected candidate.
func BuildMatrix(cands []Candidate, rttThreshold time.Duration) [][]float64 {
	if len(cands) == 0 {
		return nil
	}

	var speedSum float64
	maxNeighbors := 0
	for _, c := range cands {
		speedSum += c.Profile.SpeedKmh
		maxNeighbors = max(maxNeighbors, c.Neighbors)
	}
	avgSpeed := speedSum / float64(len(cands))

	matrix := make([][]float64, len(cands))
	for i, c := range cands {
		p := c.Profile
		matrix[i] = []float64{
			scoring.LinkQualityScore(c.RTT, rttThreshold),
			scoring.ClusterVelocityCoherenceScore(p.SpeedKmh, avgSpeed),
			scoring.DegreeScore(c.Neighbors, maxNeighbors),
			scoring.TimeTraveledScore(p.HoursTraveled),
			scoring.AverageSpeedScore(p.SpeedKmh),
			scoring.VehicleAgeScore(p.ManufactureYear),
			scoring.FuelEfficiencyScore(p.FuelClass),
			scoring.AgePowerScore(p.Power, p.DriverAge, p.Heavy),
			scoring.LicenseTenureScore(p.LicenseYears),
			scoring.VehicleTypeScore(p.Type),
		}
	}
	return matrix
}

// IDs returns the candidate identifiers in order.
func IDs(cands []Candidate) []wire.NodeID {
	ids := make([]wire.NodeID, len(cands))
	for i, c := range cands {
		ids[i] = c.ID
	}
	return ids
}
