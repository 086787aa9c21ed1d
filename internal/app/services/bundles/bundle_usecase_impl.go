package bundles

import (
	"context"
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/dto/requests"
	"ehr-bundle-service/internal/pkg/dto/responses"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/fhir_parser"
	"ehr-bundle-service/internal/pkg/metrics"
	"ehr-bundle-service/internal/pkg/utils"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	sideEffectArchive = "archive"
	sideEffectPublish = "publish"
	sideEffectCache   = "cache"
)

type bundleUsecase struct {
	BundleRepository contracts.BundleRepository
	RedisRepository  contracts.RedisRepository
	LockerService    contracts.LockerService
	ArchiveService   contracts.ArchiveService
	EventPublisher   contracts.EventPublisher
	ReportRenderer   contracts.ReportRenderer
	Metrics          *metrics.Metrics
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

// NewBundleUsecase wires the ingestion pipeline. lockerService,
// archiveService and eventPublisher may be nil, which turns the matching
// step off.
func NewBundleUsecase(
	bundleRepository contracts.BundleRepository,
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	archiveService contracts.ArchiveService,
	eventPublisher contracts.EventPublisher,
	reportRenderer contracts.ReportRenderer,
	bundleMetrics *metrics.Metrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BundleUsecase {
	return &bundleUsecase{
		BundleRepository: bundleRepository,
		RedisRepository:  redisRepository,
		LockerService:    lockerService,
		ArchiveService:   archiveService,
		EventPublisher:   eventPublisher,
		ReportRenderer:   reportRenderer,
		Metrics:          bundleMetrics,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

func (uc *bundleUsecase) Ingest(ctx context.Context, raw []byte) (*responses.BundleIngestion, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.Ingest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundle, diagnostics, err := uc.parse(ctx, raw)
	if err != nil {
		uc.Metrics.IncrementOutcome(metrics.OutcomeMalformed)
		return nil, err
	}

	violations := fhir_parser.ValidateBundle(bundle)
	if len(violations) > 0 {
		uc.Metrics.IncrementOutcome(metrics.OutcomeInvalid)
		for _, violation := range violations {
			uc.Metrics.IncrementViolation(violation.Rule)
		}
		uc.Log.Warn("bundleUsecase.Ingest bundle rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBundleIDKey, bundle.ID),
			zap.Int(constvars.LoggingViolationCountKey, len(violations)),
		)
		violationErr := &fhir_parser.ViolationError{Violations: violations}
		return nil, exceptions.ErrBundleValidation(violationErr, len(violations)).WithDetails(violations)
	}

	document, err := models.NewBundleDocument(bundle, time.Now().UTC())
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	unlock, err := uc.lockBundle(ctx, bundle.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = uc.BundleRepository.Store(ctx, document)
	if err != nil {
		uc.Log.Error("bundleUsecase.Ingest error storing bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBundleIDKey, bundle.ID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.evictCache(ctx, bundle.ID)

	response := &responses.BundleIngestion{
		Summary:        responses.NewBundleSummary(bundle),
		SkippedEntries: diagnostics,
	}

	if receipt := uc.archive(ctx, bundle); receipt != nil {
		archive := receipt.ConvertIntoResponse()
		response.Archived = true
		response.Archive = &archive
	}

	uc.publish(ctx, &models.BundleEvent{
		Event:      constvars.EventBundleIngested,
		BundleID:   document.ID,
		BundleType: document.Type,
		EntryCount: document.EntryCount,
		Digest:     document.Digest,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	})

	uc.Metrics.IncrementOutcome(metrics.OutcomeAccepted)
	for kind, count := range document.ResourceCounts {
		uc.Metrics.AddRecords(kind, count)
	}

	utils.LogBusinessEvent(uc.Log, constvars.EventBundleIngested, requestID,
		zap.String(constvars.LoggingBundleIDKey, bundle.ID),
		zap.String(constvars.LoggingBundleTypeKey, bundle.Type),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
		zap.Int(constvars.LoggingSkippedCountKey, len(diagnostics)),
	)
	return response, nil
}

func (uc *bundleUsecase) Validate(ctx context.Context, raw []byte) (*responses.BundleValidation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.Validate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundle, diagnostics, err := uc.parse(ctx, raw)
	if err != nil {
		uc.Metrics.IncrementOutcome(metrics.OutcomeMalformed)
		return nil, err
	}
	uc.Metrics.IncrementOutcome(metrics.OutcomeDryRun)

	violations := fhir_parser.ValidateBundle(bundle)
	if violations == nil {
		violations = []fhir_parser.Violation{}
	}

	uc.Log.Info("bundleUsecase.Validate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundle.ID),
		zap.Int(constvars.LoggingViolationCountKey, len(violations)),
	)
	return &responses.BundleValidation{
		Valid:          len(violations) == 0,
		Summary:        responses.NewBundleSummary(bundle),
		Violations:     violations,
		SkippedEntries: diagnostics,
	}, nil
}

func (uc *bundleUsecase) FindByID(ctx context.Context, bundleID string) (*fhir_dto.Bundle, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	cacheKey := fmt.Sprintf(constvars.RedisBundleKeyFormat, bundleID)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("bundleUsecase.FindByID error reading cache, falling back to repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if cached != "" {
		bundle, err := fhir_dto.UnmarshalBundle([]byte(cached))
		if err == nil {
			uc.Log.Info("bundleUsecase.FindByID data found in Redis",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return bundle, nil
		}
		uc.Log.Warn("bundleUsecase.FindByID discarding unreadable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	document, err := uc.findDocument(ctx, bundleID)
	if err != nil {
		return nil, err
	}

	bundle, err := document.ConvertIntoBundle()
	if err != nil {
		return nil, exceptions.ErrCannotUnmarshalJSON(err)
	}

	ttl := time.Duration(uc.InternalConfig.Cache.BundleTTLInMinutes) * time.Minute
	err = uc.RedisRepository.Set(ctx, cacheKey, bundle, ttl)
	if err != nil {
		uc.Metrics.IncrementSideEffectFailure(sideEffectCache)
		uc.Log.Warn("bundleUsecase.FindByID error caching bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return bundle, nil
}

func (uc *bundleUsecase) ListIDs(ctx context.Context, request *requests.Pagination) ([]string, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.ListIDs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, request),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, 0, exceptions.ErrInputValidation(err)
	}

	offset := (request.Page - 1) * request.PageSize
	ids, total, err := uc.BundleRepository.ListIDs(ctx, offset, request.PageSize)
	if err != nil {
		uc.Log.Error("bundleUsecase.ListIDs error listing bundles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return ids, total, nil
}

func (uc *bundleUsecase) Delete(ctx context.Context, bundleID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	deleted, err := uc.BundleRepository.Delete(ctx, bundleID)
	if err != nil {
		uc.Log.Error("bundleUsecase.Delete error deleting bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return exceptions.ErrBundleNotFound(nil, bundleID)
	}

	uc.evictCache(ctx, bundleID)
	uc.publish(ctx, &models.BundleEvent{
		Event:      constvars.EventBundleDeleted,
		BundleID:   bundleID,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	})

	utils.LogBusinessEvent(uc.Log, constvars.EventBundleDeleted, requestID,
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)
	return nil
}

// Search returns the ids of bundles holding the given patient, the given
// practitioner, or both when both are supplied.
func (uc *bundleUsecase) Search(ctx context.Context, request *requests.SearchBundles) (*responses.BundleSearch, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	var ids []string
	if request.PatientID != "" {
		ids, err = uc.BundleRepository.FindIDsByPatientID(ctx, request.PatientID)
		if err != nil {
			return nil, err
		}
	}
	if request.PractitionerID != "" {
		practitionerIDs, err := uc.BundleRepository.FindIDsByPractitionerID(ctx, request.PractitionerID)
		if err != nil {
			return nil, err
		}
		if request.PatientID != "" {
			ids = intersect(ids, practitionerIDs)
		} else {
			ids = practitionerIDs
		}
	}
	if ids == nil {
		ids = []string{}
	}

	return &responses.BundleSearch{
		PatientID:      request.PatientID,
		PractitionerID: request.PractitionerID,
		BundleIDs:      ids,
	}, nil
}

func (uc *bundleUsecase) Statistics(ctx context.Context) (*responses.BundleStatistics, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.Statistics called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	statistics, err := uc.BundleRepository.Statistics(ctx)
	if err != nil {
		uc.Log.Error("bundleUsecase.Statistics error aggregating bundles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := statistics.ConvertIntoResponse()
	return &response, nil
}

func (uc *bundleUsecase) RenderReport(ctx context.Context, bundleID string) (string, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.RenderReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	bundle, err := uc.FindByID(ctx, bundleID)
	if err != nil {
		return "", err
	}

	document, err := uc.ReportRenderer.RenderVisitSummary(bundle)
	if err != nil {
		uc.Log.Error("bundleUsecase.RenderReport error rendering report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrServerProcess(err)
	}
	return document, nil
}

func (uc *bundleUsecase) RestoreArchive(ctx context.Context, bundleID string) (*responses.BundleRestore, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("bundleUsecase.RestoreArchive called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	document, err := uc.findDocument(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if document.Archive == nil || uc.ArchiveService == nil {
		return nil, exceptions.ErrBundleArchiveMissing(nil, bundleID)
	}

	bundle, digest, err := uc.ArchiveService.Restore(ctx, document.Archive)
	if err != nil {
		uc.Log.Error("bundleUsecase.RestoreArchive error restoring archive",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArchiveObjectKey, document.Archive.ObjectName),
			zap.Error(err),
		)
		return nil, err
	}
	if digest != document.Archive.Digest {
		uc.Log.Error("bundleUsecase.RestoreArchive digest mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPayloadDigestKey, digest),
		)
		return nil, exceptions.ErrBundleArchiveDigest(nil, bundleID)
	}

	return &responses.BundleRestore{
		Archive:  document.Archive.ConvertIntoResponse(),
		Verified: digest == document.Digest,
		Bundle:   bundle,
	}, nil
}

func (uc *bundleUsecase) parse(ctx context.Context, raw []byte) (*fhir_dto.Bundle, []fhir_parser.Diagnostic, error) {
	requestID := utils.GetRequestID(ctx)
	recorder := fhir_parser.NewRecorder()
	parser := fhir_parser.NewParser(fhir_parser.MultiSink(
		fhir_parser.NewZapSink(uc.Log.With(zap.String(constvars.LoggingRequestIDKey, requestID))),
		recorder,
	))

	start := time.Now()
	bundle, err := parser.Parse(raw)
	uc.Metrics.ObserveParseLatency(time.Since(start))
	if err != nil {
		uc.Log.Warn("bundleUsecase.parse malformed document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	diagnostics := recorder.Diagnostics()
	for _, diagnostic := range diagnostics {
		uc.Metrics.IncrementSkipped(string(diagnostic.Code))
	}
	if diagnostics == nil {
		diagnostics = []fhir_parser.Diagnostic{}
	}
	return bundle, diagnostics, nil
}

func (uc *bundleUsecase) findDocument(ctx context.Context, bundleID string) (*models.BundleDocument, error) {
	document, err := uc.BundleRepository.FindByID(ctx, bundleID)
	if err != nil {
		uc.Log.Error("bundleUsecase.findDocument error fetching bundle",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBundleIDKey, bundleID),
			zap.Error(err),
		)
		return nil, err
	}
	if document == nil {
		return nil, exceptions.ErrBundleNotFound(nil, bundleID)
	}
	return document, nil
}

// archive returns nil when archiving is off or failed; the failure is logged.
func (uc *bundleUsecase) archive(ctx context.Context, bundle *fhir_dto.Bundle) *models.ArchiveReceipt {
	if uc.ArchiveService == nil {
		return nil
	}
	requestID := utils.GetRequestID(ctx)

	receipt, err := uc.ArchiveService.Archive(ctx, bundle)
	if err != nil {
		uc.Metrics.IncrementSideEffectFailure(sideEffectArchive)
		uc.Log.Error("bundleUsecase.archive error archiving bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBundleIDKey, bundle.ID),
			zap.Error(err),
		)
		return nil
	}

	err = uc.BundleRepository.UpdateArchive(ctx, bundle.ID, receipt)
	if err != nil {
		uc.Metrics.IncrementSideEffectFailure(sideEffectArchive)
		uc.Log.Error("bundleUsecase.archive error recording archive receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArchiveObjectKey, receipt.ObjectName),
			zap.Error(err),
		)
		return nil
	}
	return receipt
}

func (uc *bundleUsecase) publish(ctx context.Context, event *models.BundleEvent) {
	if uc.EventPublisher == nil {
		return
	}

	err := uc.EventPublisher.Publish(ctx, event)
	if err != nil {
		uc.Metrics.IncrementSideEffectFailure(sideEffectPublish)
		uc.Log.Error("bundleUsecase.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBundleIDKey, event.BundleID),
			zap.Error(err),
		)
	}
}

func (uc *bundleUsecase) evictCache(ctx context.Context, bundleID string) {
	err := uc.RedisRepository.Delete(ctx, fmt.Sprintf(constvars.RedisBundleKeyFormat, bundleID))
	if err != nil {
		uc.Metrics.IncrementSideEffectFailure(sideEffectCache)
		uc.Log.Warn("bundleUsecase.evictCache error deleting cache entry",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingBundleIDKey, bundleID),
			zap.Error(err),
		)
	}
}

// lockBundle serialises ingests of one bundle id. Redis errors fail open so
// an unavailable lock store never blocks ingestion.
func (uc *bundleUsecase) lockBundle(ctx context.Context, bundleID string) (func(), error) {
	noop := func() {}
	if uc.LockerService == nil {
		return noop, nil
	}

	requestID := utils.GetRequestID(ctx)
	key := fmt.Sprintf(constvars.RedisBundleLockKeyFormat, bundleID)
	acquired, token, err := uc.LockerService.TryLock(ctx, key, constvars.BundleLockExpiration)
	if err != nil {
		uc.Log.Warn("bundleUsecase.lockBundle lock store unavailable, continuing unlocked",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBundleIDKey, bundleID),
			zap.Error(err),
		)
		return noop, nil
	}
	if !acquired {
		return nil, exceptions.ErrBundleLocked(nil, bundleID)
	}

	return func() {
		err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, token)
		if err != nil {
			uc.Log.Warn("bundleUsecase.lockBundle error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBundleIDKey, bundleID),
				zap.Error(err),
			)
		}
	}, nil
}

func intersect(left, right []string) []string {
	present := make(map[string]struct{}, len(right))
	for _, id := range right {
		present[id] = struct{}{}
	}

	result := make([]string, 0)
	for _, id := range left {
		if _, ok := present[id]; ok {
			result = append(result, id)
		}
	}
	return result
}
