package bundles

import (
	"context"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type bundleMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

type bundleIDProjection struct {
	ID string `bson:"_id"`
}

type resourceCountTotal struct {
	Kind  string `bson:"_id"`
	Total int    `bson:"total"`
}

var (
	bundleMongoRepositoryInstance contracts.BundleRepository
	onceBundleMongoRepository     sync.Once
)

func NewBundleMongoRepository(db *mongo.Client, dbName string, logger *zap.Logger) contracts.BundleRepository {
	onceBundleMongoRepository.Do(func() {
		instance := &bundleMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionBundles),
			Log:        logger,
		}
		bundleMongoRepositoryInstance = instance
	})
	return bundleMongoRepositoryInstance
}

// Store replaces any earlier document with the same bundle id.
func (repo *bundleMongoRepository) Store(ctx context.Context, document *models.BundleDocument) error {
	_, err := repo.Collection.ReplaceOne(
		ctx,
		bson.M{"_id": document.ID},
		document,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *bundleMongoRepository) FindByID(ctx context.Context, bundleID string) (*models.BundleDocument, error) {
	var document models.BundleDocument
	err := repo.Collection.FindOne(ctx, bson.M{"_id": bundleID}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &document, nil
}

func (repo *bundleMongoRepository) ListIDs(ctx context.Context, offset, limit int) ([]string, int, error) {
	total, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	ids, err := repo.findIDs(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return ids, int(total), nil
}

func (repo *bundleMongoRepository) Delete(ctx context.Context, bundleID string) (bool, error) {
	result, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": bundleID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (repo *bundleMongoRepository) FindIDsByPatientID(ctx context.Context, patientID string) ([]string, error) {
	return repo.findIDs(ctx, bson.M{"patient_ids": patientID}, repo.idOptions())
}

func (repo *bundleMongoRepository) FindIDsByPractitionerID(ctx context.Context, practitionerID string) ([]string, error) {
	return repo.findIDs(ctx, bson.M{"practitioner_ids": practitionerID}, repo.idOptions())
}

func (repo *bundleMongoRepository) Statistics(ctx context.Context) (*models.BundleStatistics, error) {
	total, err := repo.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"counts": bson.M{"$objectToArray": "$resource_counts"}}}},
		{{Key: "$unwind", Value: "$counts"}},
		{{Key: "$group", Value: bson.M{"_id": "$counts.k", "total": bson.M{"$sum": "$counts.v"}}}},
	}
	cursor, err := repo.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}

	var totals []resourceCountTotal
	err = cursor.All(ctx, &totals)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	statistics := &models.BundleStatistics{
		TotalBundles:   int(total),
		ResourceCounts: make(map[string]int, len(totals)),
	}
	for _, each := range totals {
		statistics.ResourceCounts[each.Kind] = each.Total
	}
	return statistics, nil
}

func (repo *bundleMongoRepository) UpdateArchive(ctx context.Context, bundleID string, receipt *models.ArchiveReceipt) error {
	_, err := repo.Collection.UpdateOne(
		ctx,
		bson.M{"_id": bundleID},
		bson.M{"$set": bson.M{"archive": receipt}},
	)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *bundleMongoRepository) idOptions() *options.FindOptions {
	return options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
}

func (repo *bundleMongoRepository) findIDs(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]string, error) {
	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var projections []bundleIDProjection
	err = cursor.All(ctx, &projections)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	ids := make([]string, 0, len(projections))
	for _, each := range projections {
		ids = append(ids, each.ID)
	}
	return ids, nil
}
