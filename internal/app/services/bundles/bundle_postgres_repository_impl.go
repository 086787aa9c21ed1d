package bundles

import (
	"context"
	"database/sql"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/queries"
	"sync"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type bundlePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	bundlePostgresRepositoryInstance contracts.BundleRepository
	onceBundlePostgresRepository     sync.Once
)

func NewBundlePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.BundleRepository {
	onceBundlePostgresRepository.Do(func() {
		instance := &bundlePostgresRepository{
			DB:  db,
			Log: logger,
		}
		bundlePostgresRepositoryInstance = instance
	})
	return bundlePostgresRepositoryInstance
}

func (r *bundlePostgresRepository) Store(ctx context.Context, document *models.BundleDocument) error {
	resourceCounts, err := json.Marshal(document.ResourceCounts)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = r.DB.ExecContext(ctx, queries.UpsertBundle,
		document.ID,
		document.Type,
		document.Timestamp,
		document.EntryCount,
		pq.Array(document.PatientIDs),
		pq.Array(document.PractitionerIDs),
		string(resourceCounts),
		document.Signed,
		document.Payload,
		document.Digest,
		document.StoredAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *bundlePostgresRepository) FindByID(ctx context.Context, bundleID string) (*models.BundleDocument, error) {
	var (
		document       models.BundleDocument
		resourceCounts []byte
		archive        []byte
	)
	err := r.DB.QueryRowContext(ctx, queries.GetBundleByID, bundleID).Scan(
		&document.ID,
		&document.Type,
		&document.Timestamp,
		&document.EntryCount,
		pq.Array(&document.PatientIDs),
		pq.Array(&document.PractitionerIDs),
		&resourceCounts,
		&document.Signed,
		&document.Payload,
		&document.Digest,
		&archive,
		&document.StoredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	err = json.Unmarshal(resourceCounts, &document.ResourceCounts)
	if err != nil {
		return nil, exceptions.ErrCannotUnmarshalJSON(err)
	}
	if archive != nil {
		document.Archive = &models.ArchiveReceipt{}
		err = json.Unmarshal(archive, document.Archive)
		if err != nil {
			return nil, exceptions.ErrCannotUnmarshalJSON(err)
		}
	}
	return &document, nil
}

func (r *bundlePostgresRepository) ListIDs(ctx context.Context, offset, limit int) ([]string, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, queries.CountBundles).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	ids, err := r.queryIDs(ctx, queries.GetBundleIDs, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func (r *bundlePostgresRepository) Delete(ctx context.Context, bundleID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.DeleteBundle, bundleID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return affected > 0, nil
}

func (r *bundlePostgresRepository) FindIDsByPatientID(ctx context.Context, patientID string) ([]string, error) {
	return r.queryIDs(ctx, queries.GetBundleIDsByPatientID, patientID)
}

func (r *bundlePostgresRepository) FindIDsByPractitionerID(ctx context.Context, practitionerID string) ([]string, error) {
	return r.queryIDs(ctx, queries.GetBundleIDsByPractitionerID, practitionerID)
}

func (r *bundlePostgresRepository) Statistics(ctx context.Context) (*models.BundleStatistics, error) {
	statistics := &models.BundleStatistics{ResourceCounts: make(map[string]int)}
	err := r.DB.QueryRowContext(ctx, queries.CountBundles).Scan(&statistics.TotalBundles)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.GetResourceCountTotals)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind  string
			total int
		)
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		statistics.ResourceCounts[kind] = total
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return statistics, nil
}

func (r *bundlePostgresRepository) UpdateArchive(ctx context.Context, bundleID string, receipt *models.ArchiveReceipt) error {
	archive, err := json.Marshal(receipt)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = r.DB.ExecContext(ctx, queries.UpdateArchive, bundleID, string(archive))
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *bundlePostgresRepository) queryIDs(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return ids, nil
}
