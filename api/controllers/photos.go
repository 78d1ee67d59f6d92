package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmoralesdev/salon-backoffice/api/responses"
	"github.com/rmoralesdev/salon-backoffice/internal/photos"
	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	pkgerrors "github.com/rmoralesdev/salon-backoffice/pkg/errors"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
)

const photoFormField = "photo"

// PhotoUpload stores a multipart photo for a client. The file arrives in
// the "photo" field; photo_type and description ride along as form values.
func PhotoUpload(svc photos.Service, logg *logger.Logger, cfg config.PhotosConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		customerID, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "upload exceeds size limit").
					WithDetails(map[string]any{"max_upload_mb": cfg.MaxUploadMB}))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		file, header, err := r.FormFile(photoFormField)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "photo file is required").
				WithDetails(map[string]any{"field": photoFormField}))
			return
		}
		defer file.Close()

		input := photos.UploadPhotoInput{
			Filename:    header.Filename,
			Content:     file,
			PhotoType:   formValuePtr(r, "photo_type"),
			Description: formValuePtr(r, "description"),
		}

		photo, err := svc.UploadPhoto(r.Context(), customerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, photo)
	}
}

// PhotosList returns a client's photos, newest first.
func PhotosList(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		customerID, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListPhotos(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// PhotoDelete removes the record and its file. A stubborn file downgrades
// the response to 207, never 500; the row is gone either way.
func PhotoDelete(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		photoID, err := parseIDParam(r, "photoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePhoto(r.Context(), photoID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// PhotoServe streams a stored file. Path containment lives in the service;
// anything outside the root comes back as a plain 404.
func PhotoServe(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		relPath := chi.URLParam(r, "*")
		absPath, err := svc.ResolvePhotoPath(r.Context(), relPath)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.ServeFile(w, r, absPath)
	}
}

func formValuePtr(r *http.Request, key string) *string {
	if values, ok := r.MultipartForm.Value[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}
