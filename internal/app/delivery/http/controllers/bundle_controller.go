package controllers

import (
	"context"
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/dto/requests"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/utils"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BundleController struct {
	Log            *zap.Logger
	BundleUsecase  contracts.BundleUsecase
	InternalConfig *config.InternalConfig
}

func NewBundleController(logger *zap.Logger, bundleUsecase contracts.BundleUsecase, internalConfig *config.InternalConfig) *BundleController {
	return &BundleController{
		Log:            logger,
		BundleUsecase:  bundleUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *BundleController) IngestBundle(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BundleController.IngestBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	raw, err := ctrl.readBody(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.BundleUsecase.Ingest(ctx, raw)
	if err != nil {
		ctrl.respondError(w, "BundleController.IngestBundle", requestID, err)
		return
	}

	ctrl.Log.Info("BundleController.IngestBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, result.Summary.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BundleIngestSuccessMessage, result)
}

func (ctrl *BundleController) ValidateBundle(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BundleController.ValidateBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	raw, err := ctrl.readBody(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.BundleUsecase.Validate(ctx, raw)
	if err != nil {
		ctrl.respondError(w, "BundleController.ValidateBundle", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BundleValidateSuccessMessage, result)
}

func (ctrl *BundleController) ListBundleIDs(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BundleController.ListBundleIDs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	paginationRequest := utils.BuildPaginationRequest(r)

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	ids, total, err := ctrl.BundleUsecase.ListIDs(ctx, paginationRequest)
	if err != nil {
		ctrl.respondError(w, "BundleController.ListBundleIDs", requestID, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, paginationRequest.Page, paginationRequest.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.BundleListSuccessMessage, pagination, ids)
}

func (ctrl *BundleController) SearchBundles(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BundleController.SearchBundles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.SearchBundles{
		PatientID:      r.URL.Query().Get("patient_id"),
		PractitionerID: r.URL.Query().Get("practitioner_id"),
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.BundleUsecase.Search(ctx, request)
	if err != nil {
		ctrl.respondError(w, "BundleController.SearchBundles", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BundleSearchSuccessMessage, result)
}

func (ctrl *BundleController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BundleController.GetStatistics called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.BundleUsecase.Statistics(ctx)
	if err != nil {
		ctrl.respondError(w, "BundleController.GetStatistics", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BundleStatsSuccessMessage, result)
}

func (ctrl *BundleController) FindBundleByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bundleID := chi.URLParam(r, constvars.URLParamBundleID)
	ctrl.Log.Info("BundleController.FindBundleByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.BundleUsecase.FindByID(ctx, bundleID)
	if err != nil {
		ctrl.respondError(w, "BundleController.FindBundleByID", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BundleGetSuccessMessage, result)
}

func (ctrl *BundleController) RenderBundleReport(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bundleID := chi.URLParam(r, constvars.URLParamBundleID)
	ctrl.Log.Info("BundleController.RenderBundleReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	report, err := ctrl.BundleUsecase.RenderReport(ctx, bundleID)
	if err != nil {
		ctrl.respondError(w, "BundleController.RenderBundleReport", requestID, err)
		return
	}

	utils.BuildTextResponse(w, constvars.StatusOK, report)
}

func (ctrl *BundleController) RestoreBundleArchive(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bundleID := chi.URLParam(r, constvars.URLParamBundleID)
	ctrl.Log.Info("BundleController.RestoreBundleArchive called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.BundleUsecase.RestoreArchive(ctx, bundleID)
	if err != nil {
		ctrl.respondError(w, "BundleController.RestoreBundleArchive", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BundleRestoreSuccessMessage, result)
}

func (ctrl *BundleController) DeleteBundleByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bundleID := chi.URLParam(r, constvars.URLParamBundleID)
	ctrl.Log.Info("BundleController.DeleteBundleByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, bundleID),
	)

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	err := ctrl.BundleUsecase.Delete(ctx, bundleID)
	if err != nil {
		ctrl.respondError(w, "BundleController.DeleteBundleByID", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BundleDeleteSuccessMessage, nil)
}

func (ctrl *BundleController) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *BundleController) readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, exceptions.ErrRequestBodyTooLarge(err)
		}
		return nil, exceptions.ErrCannotReadRequestBody(err)
	}
	return raw, nil
}

func (ctrl *BundleController) respondError(w http.ResponseWriter, operation, requestID string, err error) {
	ctrl.Log.Error(operation+" error from usecase",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
