package services_test

import (
	"math"
	"testing"

	"steprush-backend/internal/services"
)

func TestMultiplierIdentityAtStepZero(t *testing.T) {
	model := services.NewMultiplierModel(0.03)

	for cells := 2; cells <= 5; cells++ {
		if got := model.Multiplier(cells, 0); got != 1 {
			t.Errorf("Multiplier(%d, 0) should be 1, got %.2f", cells, got)
		}
	}
}

func TestMultiplierStrictlyIncreasing(t *testing.T) {
	model := services.NewMultiplierModel(0.03)

	for cells := 2; cells <= 5; cells++ {
		prev := model.Multiplier(cells, 0)
		for step := 1; step <= 10; step++ {
			cur := model.Multiplier(cells, step)
			if cur <= prev {
				t.Errorf("Multiplier(%d, %d)=%.2f should exceed step %d value %.2f",
					cells, step, cur, step-1, prev)
			}
			prev = cur
		}
	}
}

func TestMultiplierBelowFairOdds(t *testing.T) {
	model := services.NewMultiplierModel(0.03)

	for cells := 2; cells <= 5; cells++ {
		for step := 1; step <= 10; step++ {
			fair := math.Pow(float64(cells)/float64(cells-1), float64(step))
			if got := model.Multiplier(cells, step); got >= fair {
				t.Errorf("Multiplier(%d, %d)=%.2f should be below fair odds %.4f",
					cells, step, got, fair)
			}
		}
	}
}

func TestMultiplierScenario(t *testing.T) {
	// 3 cells, 3% house edge: step 1 pays (3/2) * 0.97 = 1.455 -> 1.46.
	model := services.NewMultiplierModel(0.03)

	if got := model.Multiplier(3, 1); got != 1.46 {
		t.Errorf("Multiplier(3, 1) should be 1.46, got %.2f", got)
	}

	if got := services.PotentialWin(100, 1.46); got != 146.00 {
		t.Errorf("PotentialWin(100, 1.46) should be 146.00, got %.2f", got)
	}
}

func TestPotentialWinRounding(t *testing.T) {
	cases := []struct {
		bet, multiplier, want float64
	}{
		{100, 1.46, 146.00},
		{50, 1.94, 97.00},
		{33.33, 1.46, 48.66},
		{0.01, 1.46, 0.01},
	}

	for _, tc := range cases {
		got := services.PotentialWin(tc.bet, tc.multiplier)
		if got != tc.want {
			t.Errorf("PotentialWin(%.2f, %.2f) = %v, want %v", tc.bet, tc.multiplier, got, tc.want)
		}
		if math.Round(got*100)/100 != got {
			t.Errorf("PotentialWin(%.2f, %.2f) = %v is not rounded to 2 decimals", tc.bet, tc.multiplier, got)
		}
	}
}

func TestWinProbability(t *testing.T) {
	if got := services.WinProbability(2); got != 0.5 {
		t.Errorf("WinProbability(2) should be 0.5, got %v", got)
	}
	if got := services.WinProbability(4); got != 0.75 {
		t.Errorf("WinProbability(4) should be 0.75, got %v", got)
	}

	total := services.TotalWinProbability(2, 3)
	if math.Abs(total-0.125) > 1e-12 {
		t.Errorf("TotalWinProbability(2, 3) should be 0.125, got %v", total)
	}
}

func TestMultiplierTable(t *testing.T) {
	model := services.NewMultiplierModel(0.03)

	table := model.MultiplierTable(3, 10)
	if len(table) != 10 {
		t.Fatalf("Expected 10 entries, got %d", len(table))
	}
	if table[0] != model.Multiplier(3, 1) {
		t.Error("Table should start at step 1")
	}
	if table[9] != model.MaxMultiplier(3, 10) {
		t.Error("Table should end at the max multiplier")
	}
}
