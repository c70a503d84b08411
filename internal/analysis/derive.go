package analysis

import (
	"infraghost/backend/internal/config"
	"infraghost/backend/internal/models"
)

// Derive converts a usability score into the ghost fields. Pure: the input is
// already validated to [0,100] by the parser, so there is no failure path.
// Invariant: UsabilityScore + GhostScore == 100.
func Derive(usabilityScore int) models.DerivedFields {
	ghostScore := config.GhostScoreMax - usabilityScore
	return models.DerivedFields{
		GhostScore: ghostScore,
		GhostLevel: GhostLevel(ghostScore),
	}
}

// GhostLevel classifies a ghost score. Exactly 60 is InfraGhost, exactly 30
// is Functional; there is no unreachable gap between the bands.
func GhostLevel(ghostScore int) string {
	switch {
	case ghostScore >= config.GhostThreshold:
		return models.LevelInfraGhost
	case ghostScore > config.FunctionalThreshold:
		return models.LevelPartial
	default:
		return models.LevelFunctional
	}
}
