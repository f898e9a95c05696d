package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgePowerScore(t *testing.T) {
	tests := []struct {
		name  string
		power int
		age   int
		heavy bool
		want  float64
	}{
		{"LightYoungLowPower", 60, 18, false, 1},
		{"LightYoungHighPower", 300, 25, false, 0},
		{"LightMiddleAgeHighPower", 250, 45, false, 0.75},
		{"LightSeventies", 130, 75, false, 0.5},
		{"LightEightyPlus", 100, 95, false, 0.25},
		{"LightEightyPlusStrongEngine", 160, 80, false, 0},
		{"LightBracketBoundary", 200, 50, false, 0.75},
		{"LightUnknownPower", 95, 40, false, 0},
		{"LightUnderage", 60, 17, false, 0},
		{"HeavyYoung", 0, 20, true, 0.75},
		{"HeavyPrime", 500, 45, true, 1},
		{"HeavySixtyFive", 0, 65, true, 0.5},
		{"HeavySixtyEight", 0, 68, true, 0.25},
		{"HeavySeventyPlus", 0, 71, true, 0},
		{"HeavyUnderage", 0, 16, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgePowerScore(tt.power, tt.age, tt.heavy))
		})
	}
}

func TestVehicleAgeScore(t *testing.T) {
	assert.Equal(t, 1.0, VehicleAgeScore(2030))
	assert.Equal(t, 1.0, VehicleAgeScore(2015))
	assert.Equal(t, 0.75, VehicleAgeScore(2014))
	assert.Equal(t, 0.75, VehicleAgeScore(2005))
	assert.Equal(t, 0.5, VehicleAgeScore(1985))
	assert.Equal(t, 0.25, VehicleAgeScore(1984))
}

func TestTimeTraveledScore(t *testing.T) {
	cases := map[float64]float64{
		-1: 0, 0: 0, 0.5: 1, 2: 1, 2.5: 0.75, 4: 0.75, 8: 0.5, 8.1: 0.25, 100: 0.25,
	}
	for hours, want := range cases {
		assert.Equal(t, want, TimeTraveledScore(hours), "hours=%v", hours)
	}
}

func TestLicenseTenureScore(t *testing.T) {
	cases := map[int]float64{0: 0, 1: 0.25, 2: 0.25, 3: 0.5, 5: 0.5, 6: 0.75, 10: 0.75, 11: 1}
	for years, want := range cases {
		assert.Equal(t, want, LicenseTenureScore(years), "years=%d", years)
	}
}

func TestFuelEfficiencyScore(t *testing.T) {
	cases := map[int]float64{0: 1, 1: 0.8, 2: 0.7, 3: 0.4, 4: 0.2, -1: 0.2}
	for class, want := range cases {
		assert.Equal(t, want, FuelEfficiencyScore(class), "class=%d", class)
	}
}

func TestAverageSpeedScore(t *testing.T) {
	cases := map[float64]float64{0: 0, -5: 0, 0.1: 0.25, 39.9: 0.25, 40: 0.5, 60: 0.75, 80: 1, 130: 1}
	for kmh, want := range cases {
		assert.Equal(t, want, AverageSpeedScore(kmh), "kmh=%v", kmh)
	}
}

func TestClusterVelocityCoherenceScore(t *testing.T) {
	tests := []struct {
		vehicle, avg, want float64
	}{
		{0, 0, 1},
		{1, 0.5, 1},
		{10, 1, 0},
		{50, 50, 1},
		{40, 50, 1},
		{35, 50, 0.75},
		{80, 50, 0.75},
		{25, 50, 0.5},
		{110, 50, 0.5},
		{10, 50, 0.25},
		{130, 50, 0.25},
		{0, 50, 0},
		{150, 50, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClusterVelocityCoherenceScore(tt.vehicle, tt.avg), "vehicle=%v avg=%v", tt.vehicle, tt.avg)
	}
}

func TestVehicleTypeScore(t *testing.T) {
	assert.Equal(t, 1.0, VehicleTypeScore(VehicleEmergency))
	assert.Equal(t, 0.75, VehicleTypeScore(VehiclePublicTransport))
	assert.Equal(t, 0.5, VehicleTypeScore(VehicleCommercial))
	assert.Equal(t, 0.25, VehicleTypeScore(VehiclePrivate))
	assert.Equal(t, 0.25, VehicleTypeScore(VehicleType(42)))
}

func TestLinkQualityScore(t *testing.T) {
	threshold := 10 * time.Millisecond
	assert.Equal(t, 0.0, LinkQualityScore(0, threshold))
	assert.Equal(t, 0.0, LinkQualityScore(11*time.Millisecond, threshold))
	assert.Equal(t, 0.0, LinkQualityScore(time.Millisecond, 0))
	assert.InDelta(t, 0.9, LinkQualityScore(time.Millisecond, threshold), 1e-9)
	assert.InDelta(t, 0.0, LinkQualityScore(threshold, threshold), 1e-9)
}

func TestDegreeScore(t *testing.T) {
	assert.Equal(t, 0.0, DegreeScore(3, 0))
	assert.Equal(t, 0.0, DegreeScore(0, 4))
	assert.Equal(t, 0.5, DegreeScore(2, 4))
	assert.Equal(t, 1.0, DegreeScore(4, 4))
}

func TestScoresStayInUnitInterval(t *testing.T) {
	for power := 0; power <= 320; power += 5 {
		for age := 0; age <= 100; age += 3 {
			for _, heavy := range []bool{false, true} {
				s := AgePowerScore(power, age, heavy)
				assert.True(t, s >= 0 && s <= 1, "power=%d age=%d heavy=%v score=%v", power, age, heavy, s)
			}
		}
	}
	for v := -10.0; v <= 300; v += 7 {
		for avg := -1.0; avg <= 150; avg += 11 {
			s := ClusterVelocityCoherenceScore(v, avg)
			assert.True(t, s >= 0 && s <= 1)
		}
	}
}
