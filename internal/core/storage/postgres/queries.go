package postgres

// SQL queries for encounter storage operations

const (
	// querySaveEncounter inserts an encounter keyed by its id.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	// RETURNING ingest_seq gives listings a strict insertion order.
	querySaveEncounter = `
		INSERT INTO encounters (
			id, recorded_at, ingested_at, skill_count, agent_count, document
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryGetEncounter fetches the stored document for one encounter.
	queryGetEncounter = `
		SELECT document
		FROM encounters
		WHERE id = $1
	`

	// queryListEncounters returns summaries, newest first.
	queryListEncounters = `
		SELECT
			id, recorded_at, ingested_at, skill_count, agent_count
		FROM encounters
		ORDER BY ingest_seq DESC
		LIMIT $1
	`
)
