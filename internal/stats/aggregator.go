// Package stats turns a report collection snapshot into summary statistics.
// Aggregation is a pure function: no mutation, no caching, recomputed in full
// on every call.
package stats

import (
	"fmt"
	"math"
	"sort"

	"infraghost/backend/internal/config"
	"infraghost/backend/internal/models"
)

const (
	topFailingTypes   = 3
	affectedLocations = 5
)

// IsGhost reports whether a report counts as an infra ghost. This goes by the
// numeric score, independent of the stored ghost_level label.
func IsGhost(r models.Report) bool {
	return r.Analysis.GhostScore >= config.GhostThreshold
}

// LocationKey buckets a coordinate pair to 4 decimal places, roughly an
// 11-meter grid cell.
func LocationKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// Aggregate computes the full stats snapshot for a report collection. Ordering
// is deterministic: per-type and per-location ranking sorts by the count
// metric descending with first-seen input order breaking ties.
func Aggregate(reports []models.Report) models.Stats {
	stats := models.Stats{
		ByType:            map[string]models.TypeStats{},
		TopFailingTypes:   []models.TypeStatsEntry{},
		AffectedLocations: []models.LocationStats{},
	}
	stats.TotalReports = len(reports)

	var typeOrder []string
	var locationOrder []string
	locationCounts := map[string]int{}

	for _, r := range reports {
		if IsGhost(r) {
			stats.InfraGhosts++
			key := LocationKey(r.Latitude, r.Longitude)
			if _, seen := locationCounts[key]; !seen {
				locationOrder = append(locationOrder, key)
			}
			locationCounts[key]++
		}
		switch r.Analysis.GhostLevel {
		case models.LevelFunctional:
			stats.Functional++
		case models.LevelPartial:
			stats.Partial++
		}

		ts, seen := stats.ByType[r.InfraType]
		if !seen {
			typeOrder = append(typeOrder, r.InfraType)
		}
		ts.Total++
		if IsGhost(r) {
			ts.Ghosts++
		}
		stats.ByType[r.InfraType] = ts
	}

	for t, ts := range stats.ByType {
		ts.GhostPercentage = int(math.Round(float64(ts.Ghosts) / float64(ts.Total) * 100))
		stats.ByType[t] = ts
	}

	for _, t := range typeOrder {
		ts := stats.ByType[t]
		stats.TopFailingTypes = append(stats.TopFailingTypes, models.TypeStatsEntry{
			Type:            t,
			Total:           ts.Total,
			Ghosts:          ts.Ghosts,
			GhostPercentage: ts.GhostPercentage,
		})
	}
	sort.SliceStable(stats.TopFailingTypes, func(i, j int) bool {
		return stats.TopFailingTypes[i].GhostPercentage > stats.TopFailingTypes[j].GhostPercentage
	})
	if len(stats.TopFailingTypes) > topFailingTypes {
		stats.TopFailingTypes = stats.TopFailingTypes[:topFailingTypes]
	}

	for _, key := range locationOrder {
		stats.AffectedLocations = append(stats.AffectedLocations, models.LocationStats{
			Location:   key,
			GhostCount: locationCounts[key],
		})
	}
	sort.SliceStable(stats.AffectedLocations, func(i, j int) bool {
		return stats.AffectedLocations[i].GhostCount > stats.AffectedLocations[j].GhostCount
	})
	if len(stats.AffectedLocations) > affectedLocations {
		stats.AffectedLocations = stats.AffectedLocations[:affectedLocations]
	}

	return stats
}
