package archive

import (
	"context"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/fhir_dto"
	"ehr-bundle-service/internal/pkg/utils"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type archiveService struct {
	Storage    contracts.Storage
	BucketName string
	Key        []byte
	Log        *zap.Logger
}

// NewArchiveService keeps encrypted bundle copies in bucketName. The
// encryption key is derived from encryptionKey.
func NewArchiveService(storage contracts.Storage, bucketName, encryptionKey string, logger *zap.Logger) contracts.ArchiveService {
	return &archiveService{
		Storage:    storage,
		BucketName: bucketName,
		Key:        utils.DeriveKey(encryptionKey),
		Log:        logger,
	}
}

func (s *archiveService) Archive(ctx context.Context, bundle *fhir_dto.Bundle) (*models.ArchiveReceipt, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("archiveService.Archive called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	payload, err := fhir_dto.MarshalBundle(bundle)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	digest := utils.SHA256Hex(payload)

	ciphertext, err := utils.EncryptPayload(s.Key, payload)
	if err != nil {
		s.Log.Error("archiveService.Archive error encrypting payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBundleIDKey, bundle.ID),
			zap.Error(err),
		)
		return nil, exceptions.ErrEncryptPayload(err)
	}

	objectName := fmt.Sprintf(constvars.ArchiveObjectNameFormat, bundle.ID, uuid.NewString())
	size, err := s.Storage.PutObject(ctx, s.BucketName, objectName, ciphertext, constvars.MIMEOctetStream)
	if err != nil {
		s.Log.Error("archiveService.Archive error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArchiveObjectKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	s.Log.Info("archiveService.Archive succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArchiveObjectKey, objectName),
		zap.String(constvars.LoggingPayloadDigestKey, digest),
	)

	return &models.ArchiveReceipt{
		Bucket:     s.BucketName,
		ObjectName: objectName,
		Digest:     digest,
		Size:       size,
		ArchivedAt: time.Now().UTC(),
	}, nil
}

func (s *archiveService) Restore(ctx context.Context, receipt *models.ArchiveReceipt) (*fhir_dto.Bundle, string, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("archiveService.Restore called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingArchiveObjectKey, receipt.ObjectName),
	)

	bucketName := receipt.Bucket
	if bucketName == "" {
		bucketName = s.BucketName
	}

	ciphertext, err := s.Storage.GetObject(ctx, bucketName, receipt.ObjectName)
	if err != nil {
		return nil, "", err
	}

	payload, err := utils.DecryptPayload(s.Key, ciphertext)
	if err != nil {
		s.Log.Error("archiveService.Restore error decrypting payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingArchiveObjectKey, receipt.ObjectName),
			zap.Error(err),
		)
		return nil, "", exceptions.ErrDecryptPayload(err)
	}

	bundle, err := fhir_dto.UnmarshalBundle(payload)
	if err != nil {
		return nil, "", exceptions.ErrCannotUnmarshalJSON(err)
	}

	return bundle, utils.SHA256Hex(payload), nil
}
