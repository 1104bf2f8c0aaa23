package services

import (
	"fmt"
	"strconv"

	"steprush-backend/internal/models"
)

// OutcomePolicy deterministically maps one round's seed material to the
// full outcome sequence. Policies are fixed at startup and never mixed
// at runtime.
type OutcomePolicy interface {
	Name() models.PolicyName
	Derive(serverSeed, clientSeed string, nonce int64, cellCount, maxSteps int) (*models.OutcomeSequence, error)
}

func PolicyByName(name models.PolicyName) (OutcomePolicy, error) {
	switch name {
	case models.PolicyTrapPosition:
		return TrapPositionPolicy{}, nil
	case models.PolicyDicePair:
		return DicePairPolicy{}, nil
	case models.PolicySafePath:
		return SafePathPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown outcome policy: %s", name)
	}
}

// TrapPositionPolicy hides one trap per row. The player picks a cell each
// step and loses if it matches the trap index.
type TrapPositionPolicy struct{}

func (TrapPositionPolicy) Name() models.PolicyName { return models.PolicyTrapPosition }

func (TrapPositionPolicy) Derive(serverSeed, clientSeed string, nonce int64, cellCount, maxSteps int) (*models.OutcomeSequence, error) {
	if err := checkDeriveArgs(cellCount, maxSteps); err != nil {
		return nil, err
	}

	steps := make([]models.StepOutcome, maxSteps)
	for row := 0; row < maxSteps; row++ {
		message := fmt.Sprintf("%s:%d:%d", clientSeed, nonce, row)
		hash := KeyedDigest([]byte(serverSeed), []byte(message))

		// First 8 hex chars as a 32-bit value, reduced mod cellCount.
		value, err := strconv.ParseUint(hash[:8], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse digest prefix: %v", err)
		}
		steps[row] = models.StepOutcome{TrapIndex: int(value % uint64(cellCount))}
	}

	return &models.OutcomeSequence{
		Policy:    models.PolicyTrapPosition,
		CellCount: cellCount,
		Steps:     steps,
		MaxStep:   maxSteps,
	}, nil
}

// DicePairPolicy rolls a pair of dice per step from one combined digest.
// Doubles end the round; the first doubles fixes the step ceiling.
type DicePairPolicy struct{}

func (DicePairPolicy) Name() models.PolicyName { return models.PolicyDicePair }

func (DicePairPolicy) Derive(serverSeed, clientSeed string, nonce int64, cellCount, maxSteps int) (*models.OutcomeSequence, error) {
	if err := checkDeriveArgs(cellCount, maxSteps); err != nil {
		return nil, err
	}
	if maxSteps*4 > 64 {
		return nil, fmt.Errorf("dice policy supports at most 16 steps, got %d", maxSteps)
	}

	combined := fmt.Sprintf("%s-%s-%d", serverSeed, clientSeed, nonce)
	hash := Digest([]byte(combined))

	steps := make([]models.StepOutcome, maxSteps)
	maxStep := maxSteps
	for i := 0; i < maxSteps; i++ {
		d1, err := hexByte(hash, i*4)
		if err != nil {
			return nil, err
		}
		d2, err := hexByte(hash, i*4+2)
		if err != nil {
			return nil, err
		}

		steps[i] = models.StepOutcome{
			Dice1: d1%6 + 1,
			Dice2: d2%6 + 1,
		}
		if steps[i].Dice1 == steps[i].Dice2 && i < maxStep {
			maxStep = i
		}
	}

	return &models.OutcomeSequence{
		Policy:    models.PolicyDicePair,
		CellCount: cellCount,
		Steps:     steps,
		MaxStep:   maxStep,
	}, nil
}

// SafePathPolicy derives a step ceiling from the first digest byte via a
// cubic transform, skewing rounds toward fewer safe steps, plus one safe
// cell index per step for display.
type SafePathPolicy struct{}

func (SafePathPolicy) Name() models.PolicyName { return models.PolicySafePath }

func (SafePathPolicy) Derive(serverSeed, clientSeed string, nonce int64, cellCount, maxSteps int) (*models.OutcomeSequence, error) {
	if err := checkDeriveArgs(cellCount, maxSteps); err != nil {
		return nil, err
	}
	if 2+maxSteps*2 > 64 {
		return nil, fmt.Errorf("safepath policy supports at most 31 steps, got %d", maxSteps)
	}

	combined := fmt.Sprintf("%s-%s-%d", serverSeed, clientSeed, nonce)
	hash := Digest([]byte(combined))

	first, err := hexByte(hash, 0)
	if err != nil {
		return nil, err
	}
	norm := float64(first) / 255.0
	maxStep := int(norm * norm * norm * float64(maxSteps))
	if maxStep > maxSteps {
		maxStep = maxSteps
	}

	steps := make([]models.StepOutcome, maxSteps)
	for i := 0; i < maxSteps; i++ {
		b, err := hexByte(hash, 2+i*2)
		if err != nil {
			return nil, err
		}
		steps[i] = models.StepOutcome{SafeIndex: b % cellCount}
	}

	return &models.OutcomeSequence{
		Policy:    models.PolicySafePath,
		CellCount: cellCount,
		Steps:     steps,
		MaxStep:   maxStep,
	}, nil
}

// StepIsSafe evaluates step stepIndex against the precomputed sequence.
// chosenCell is only consulted by the trap policy.
func StepIsSafe(seq *models.OutcomeSequence, stepIndex, chosenCell int) bool {
	if stepIndex < 0 || stepIndex >= len(seq.Steps) {
		return false
	}
	switch seq.Policy {
	case models.PolicyTrapPosition:
		return chosenCell != seq.Steps[stepIndex].TrapIndex
	default:
		return stepIndex < seq.MaxStep
	}
}

// VerifyOutcome recomputes the commitment and the outcome sequence from
// the revealed server seed and compares both against the claimed values.
// A mismatch is an expected, checkable result, not an error.
func VerifyOutcome(serverSeed, serverSeedHash, clientSeed string, nonce int64, cellCount int, claimed *models.OutcomeSequence) bool {
	if claimed == nil || len(claimed.Steps) == 0 {
		return false
	}
	if Digest([]byte(serverSeed)) != serverSeedHash {
		return false
	}

	policy, err := PolicyByName(claimed.Policy)
	if err != nil {
		return false
	}

	expected, err := policy.Derive(serverSeed, clientSeed, nonce, cellCount, len(claimed.Steps))
	if err != nil {
		return false
	}
	if expected.MaxStep != claimed.MaxStep {
		return false
	}
	for i := range expected.Steps {
		if expected.Steps[i] != claimed.Steps[i] {
			return false
		}
	}
	return true
}

func checkDeriveArgs(cellCount, maxSteps int) error {
	if cellCount < 2 {
		return fmt.Errorf("cell count must be at least 2, got %d", cellCount)
	}
	if maxSteps < 1 {
		return fmt.Errorf("max steps must be at least 1, got %d", maxSteps)
	}
	return nil
}

func hexByte(hash string, offset int) (int, error) {
	if offset+2 > len(hash) {
		return 0, fmt.Errorf("digest too short at offset %d", offset)
	}
	v, err := strconv.ParseUint(hash[offset:offset+2], 16, 16)
	if err != nil {
		return 0, fmt.Errorf("failed to parse digest at offset %d: %v", offset, err)
	}
	return int(v), nil
}
