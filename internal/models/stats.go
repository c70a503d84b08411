package models

// TypeStats summarizes one infrastructure type within a stats snapshot.
type TypeStats struct {
	Total           int `json:"total"`
	Ghosts          int `json:"ghosts"`
	GhostPercentage int `json:"ghost_percentage"`
}

// TypeStatsEntry is a TypeStats annotated with its type, used for the ranked
// top_failing_types list.
type TypeStatsEntry struct {
	Type            string `json:"type"`
	Total           int    `json:"total"`
	Ghosts          int    `json:"ghosts"`
	GhostPercentage int    `json:"ghost_percentage"`
}

// LocationStats counts ghost reports clustered at one rounded coordinate pair.
type LocationStats struct {
	// Location is "lat,lng" with both values rounded to 4 decimal places.
	Location   string `json:"location"`
	GhostCount int    `json:"ghost_count"`
}

// Stats is the aggregation output: a deterministic summary of a report
// collection snapshot.
type Stats struct {
	TotalReports      int                  `json:"total_reports"`
	InfraGhosts       int                  `json:"infra_ghosts"`
	Functional        int                  `json:"functional"`
	Partial           int                  `json:"partial"`
	ByType            map[string]TypeStats `json:"by_type"`
	TopFailingTypes   []TypeStatsEntry     `json:"top_failing_types"`
	AffectedLocations []LocationStats      `json:"affected_locations"`
}
