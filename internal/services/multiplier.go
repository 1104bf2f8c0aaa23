package services

import "math"

// Payout math for the step game. Each step multiplies the coefficient by
// cells/(cells-1), discounted once by the house edge, so expected value
// stays strictly below fair odds.

type MultiplierModel struct {
	HouseEdge float64
}

func NewMultiplierModel(houseEdge float64) *MultiplierModel {
	return &MultiplierModel{HouseEdge: houseEdge}
}

// Multiplier returns the payout coefficient after step completed steps.
// Step 0 is the pre-play state and always maps to 1.
func (m *MultiplierModel) Multiplier(cellCount, step int) float64 {
	if step == 0 {
		return 1
	}
	base := math.Pow(float64(cellCount)/float64(cellCount-1), float64(step))
	return round2(base * (1 - m.HouseEdge))
}

// MultiplierTable lists the coefficients for steps 1..maxSteps.
func (m *MultiplierModel) MultiplierTable(cellCount, maxSteps int) []float64 {
	table := make([]float64, 0, maxSteps)
	for step := 1; step <= maxSteps; step++ {
		table = append(table, m.Multiplier(cellCount, step))
	}
	return table
}

// MaxMultiplier is the coefficient at the final step.
func (m *MultiplierModel) MaxMultiplier(cellCount, maxSteps int) float64 {
	return m.Multiplier(cellCount, maxSteps)
}

// PotentialWin is the payout for a bet at the given coefficient.
func PotentialWin(bet, multiplier float64) float64 {
	return round2(bet * multiplier)
}

// WinProbability is the chance of surviving a single step.
func WinProbability(cellCount int) float64 {
	return float64(cellCount-1) / float64(cellCount)
}

// TotalWinProbability is the chance of surviving the given number of steps.
func TotalWinProbability(cellCount, steps int) float64 {
	return math.Pow(WinProbability(cellCount), float64(steps))
}

// round2 rounds to 2 decimal places. The epsilon keeps values that are
// mathematically exact ties (1.455 from 1.5*0.97) from falling just
// under the .5 boundary in binary floating point.
func round2(v float64) float64 {
	return math.Round(v*100+1e-9) / 100
}
