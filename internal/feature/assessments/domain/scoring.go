package domain

import (
	"fmt"
	"math"

	"orgair_backend/internal/feature/assessments/domain/entity"
)

// WeightSumTolerance is the numeric tolerance on the weight-sum
// invariant. Drift beyond it is a validation failure, never a silent
// renormalization.
const WeightSumTolerance = 1e-6

// ValidateScoreFields checks a single score's fields against their
// legal ranges. Used when a score is first recorded, before the full
// set-level validation applies.
func ValidateScoreFields(dim entity.Dimension, score, confidence, weight float64) error {
	if !dim.Valid() {
		return &ValidationError{Reason: "unknown dimension", Dimensions: []entity.Dimension{dim}}
	}
	if score < 0 || score > 100 {
		return &ValidationError{
			Reason:     fmt.Sprintf("score %g out of range [0, 100]", score),
			Dimensions: []entity.Dimension{dim},
		}
	}
	if confidence < 0 || confidence > 1 {
		return &ValidationError{
			Reason:     fmt.Sprintf("confidence %g out of range [0, 1]", confidence),
			Dimensions: []entity.Dimension{dim},
		}
	}
	if weight < 0 || weight > 1 {
		return &ValidationError{
			Reason:     fmt.Sprintf("weight %g out of range [0, 1]", weight),
			Dimensions: []entity.Dimension{dim},
		}
	}
	return nil
}

// ValidateScores checks a full dimension score set against the
// governing industry weight profile. It verifies field ranges,
// rejects duplicate dimensions, requires one score for every profile
// dimension, and enforces the weight-sum invariant. The error names
// the missing or unbalanced dimensions.
func ValidateScores(scores []entity.DimensionScore, profile map[entity.Dimension]float64) error {
	if len(profile) == 0 {
		return &ValidationError{Reason: "industry weight profile is empty"}
	}

	seen := make(map[entity.Dimension]bool, len(scores))
	var duplicates []entity.Dimension
	var sum float64

	for _, s := range scores {
		if err := ValidateScoreFields(s.Dimension, s.Score, s.Confidence, s.Weight); err != nil {
			return err
		}
		if _, ok := profile[s.Dimension]; !ok {
			return &ValidationError{
				Reason:     "dimension not in industry weight profile",
				Dimensions: []entity.Dimension{s.Dimension},
			}
		}
		if seen[s.Dimension] {
			duplicates = append(duplicates, s.Dimension)
		}
		seen[s.Dimension] = true
		sum += s.Weight
	}

	if len(duplicates) > 0 {
		return &ValidationError{Reason: "duplicate dimensions", Dimensions: duplicates}
	}

	var missing []entity.Dimension
	for _, d := range AllProfileDimensions(profile) {
		if !seen[d] {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Reason: "missing dimension scores", Dimensions: missing}
	}

	if math.Abs(sum-1.0) > WeightSumTolerance {
		return &ValidationError{
			Reason: fmt.Sprintf("dimension weights sum to %g, expected 1.0", sum),
		}
	}

	return nil
}

// AggregateScore computes the overall readiness score as the
// weight-weighted sum of dimension scores. Confidence does not enter
// the formula. Callers must not invoke this until ValidateScores has
// passed; on an incomplete set the result is meaningless.
func AggregateScore(scores []entity.DimensionScore) float64 {
	var overall float64
	for _, s := range scores {
		overall += s.Score * s.Weight
	}
	return overall
}

// AllProfileDimensions returns the profile's dimensions in the
// canonical enum order so that error messages are deterministic.
func AllProfileDimensions(profile map[entity.Dimension]float64) []entity.Dimension {
	out := make([]entity.Dimension, 0, len(profile))
	for _, d := range entity.AllDimensions() {
		if _, ok := profile[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
