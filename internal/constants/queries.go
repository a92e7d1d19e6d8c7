package constants

// Fleet-wide aggregates. Plain SQL so the read path stays on sqlx and
// works against both postgres and sqlite.
const (
	QueryFleetTotals = `
	SELECT COUNT(*)                                              AS total,
	       COALESCE(SUM(CASE WHEN is_used THEN 1 ELSE 0 END), 0) AS used,
	       COALESCE(AVG(speed), 0)                               AS avg_speed,
	       COALESCE(AVG(rating), 0)                              AS avg_rating
	FROM ships
	`

	QueryFleetTypeCounts = `
	SELECT ship_type, COUNT(*) AS count
	FROM ships
	GROUP BY ship_type
	ORDER BY ship_type
	`

	QueryFleetCrewSpan = `
	SELECT COALESCE(MIN(crew_size), 0) AS min_crew,
	       COALESCE(MAX(crew_size), 0) AS max_crew,
	       COALESCE(SUM(crew_size), 0) AS total_crew
	FROM ships
	`
)
