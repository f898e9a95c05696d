package scoring

// lightAgeBrackets are the lower bounds of the driver age brackets for light
// vehicles: 18-29, 30-39, 40-49, 50-59, 60-69, 70-79, 80+.
var lightAgeBrackets = [7]int{18, 30, 40, 50, 60, 70, 80}

type powerRow struct {
	power  int
	scores [7]float64
}

// lightPowerTable maps engine power (cv) to a coefficient per age bracket.
var lightPowerTable = [19]powerRow{
	{60, [7]float64{1, 1, 1, 1, 0.75, 0.75, 0.25}},
	{70, [7]float64{1, 1, 1, 1, 0.75, 0.75, 0.25}},
	{80, [7]float64{1, 1, 1, 1, 0.75, 0.75, 0.25}},
	{90, [7]float64{1, 1, 1, 1, 0.75, 0.75, 0.25}},
	{100, [7]float64{1, 1, 1, 1, 0.75, 0.75, 0.25}},
	{110, [7]float64{0.75, 1, 1, 1, 0.75, 0.75, 0.25}},
	{120, [7]float64{0.75, 1, 1, 1, 0.75, 0.75, 0.25}},
	{130, [7]float64{0.75, 1, 1, 1, 0.75, 0.5, 0.25}},
	{140, [7]float64{0.75, 1, 1, 1, 0.75, 0.5, 0.25}},
	{150, [7]float64{0.75, 1, 1, 1, 0.75, 0.5, 0.25}},
	{160, [7]float64{0.5, 1, 1, 1, 0.5, 0.5, 0}},
	{170, [7]float64{0.5, 1, 1, 1, 0.5, 0.5, 0}},
	{180, [7]float64{0.5, 0.75, 1, 1, 0.5, 0.5, 0}},
	{190, [7]float64{0.25, 0.75, 1, 1, 0.5, 0.5, 0}},
	{200, [7]float64{0.25, 0.75, 1, 0.75, 0.5, 0.25, 0}},
	{225, [7]float64{0, 0.75, 1, 0.75, 0.25, 0, 0}},
	{250, [7]float64{0, 0.5, 0.75, 0.75, 0.25, 0, 0}},
	{275, [7]float64{0, 0.5, 0.75, 0.75, 0.25, 0, 0}},
	{300, [7]float64{0, 0.5, 0.75, 0.75, 0.25, 0, 0}},
}

// Heavy vehicles are scored on driver age only:
// 18-29, 30-49, 50-59, 60-64, 65-66, 67-69, 70+.
var (
	heavyAgeBrackets = [7]int{18, 30, 50, 60, 65, 67, 70}
	heavyAgeScores   = [7]float64{0.75, 1, 1, 0.75, 0.5, 0.25, 0}
)

// bracketIndex returns the index of the last lower bound <= age, or -1.
func bracketIndex(bounds [7]int, age int) int {
	idx := -1
	for i, lower := range bounds {
		if age < lower {
			break
		}
		idx = i
	}
	return idx
}
