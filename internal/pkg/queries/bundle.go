package queries

const (
	UpsertBundle = `INSERT INTO bundles (id, type, timestamp, entry_count, patient_ids, practitioner_ids, resource_counts, signed, payload, digest, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			timestamp = EXCLUDED.timestamp,
			entry_count = EXCLUDED.entry_count,
			patient_ids = EXCLUDED.patient_ids,
			practitioner_ids = EXCLUDED.practitioner_ids,
			resource_counts = EXCLUDED.resource_counts,
			signed = EXCLUDED.signed,
			payload = EXCLUDED.payload,
			digest = EXCLUDED.digest,
			archive = NULL,
			stored_at = EXCLUDED.stored_at`

	GetBundleByID = `SELECT id, type, timestamp, entry_count, patient_ids, practitioner_ids, resource_counts, signed, payload, digest, archive, stored_at
		FROM bundles WHERE id = $1`

	GetBundleIDs  = "SELECT id FROM bundles ORDER BY id LIMIT $1 OFFSET $2"
	CountBundles  = "SELECT COUNT(*) FROM bundles"
	DeleteBundle  = "DELETE FROM bundles WHERE id = $1"
	UpdateArchive = "UPDATE bundles SET archive = $2 WHERE id = $1"

	GetBundleIDsByPatientID      = "SELECT id FROM bundles WHERE $1 = ANY(patient_ids) ORDER BY id"
	GetBundleIDsByPractitionerID = "SELECT id FROM bundles WHERE $1 = ANY(practitioner_ids) ORDER BY id"

	GetResourceCountTotals = `SELECT counts.key, SUM(counts.value::int)
		FROM bundles, jsonb_each_text(bundles.resource_counts) AS counts
		GROUP BY counts.key ORDER BY counts.key`
)
