package receiptwire

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/database"
	"github.com/receiptwirehq/core/extra"
	"github.com/receiptwirehq/core/internal"
	"github.com/receiptwirehq/core/model"
)

const (
	// maxFileSize is enforced on both sides of the wire.
	maxFileSize = 10 << 20

	// transformedWidth bounds the derived variant backing the
	// transformed URL.
	transformedWidth = 1280
)

var acceptedFormats = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// upload is the storage upload entry point. The caller must present a grant
// issued by the signer; the signature is recomputed from the received
// parameters and consumed on success.
func upload(w http.ResponseWriter, r *http.Request) {
	if !config.Current.HasStorageCredentials() {
		respondErr(w, http.StatusInternalServerError, msgMissingCredentials)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	file, h, err := r.FormFile("file")
	if err != nil {
		respondErr(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	if h.Size > maxFileSize {
		respondErr(w, http.StatusRequestEntityTooLarge, "file exceeds the 10 MiB limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType := http.DetectContentType(data)
	ext, ok := acceptedFormats[contentType]
	if !ok {
		respondErr(w, http.StatusBadRequest, "only JPEG and PNG images are accepted")
		return
	}

	publicID := r.Form.Get("public_id")
	if code, msg := verifyGrant(r, publicID); code != 0 {
		respondErr(w, code, msg)
		return
	}

	folder := r.Form.Get("asset_folder")
	fileKey := publicID + ext
	if folder != "" {
		fileKey = folder + "/" + fileKey
	}

	url, err := storer.Save(model.UploadFileData{FileKey: fileKey, File: bytes.NewReader(data)})
	if err != nil {
		applog.Error().Err(err).Msgf("unable to store %s", fileKey)
		respondErr(w, storageErrorCode(err), "unable to store the file")
		return
	}

	var width, height int
	var format string
	if cfg, f, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height, format = cfg.Width, cfg.Height, f
	}

	// the transformed variant is best effort, the raw URL stands in when
	// it cannot be produced
	transformedURL := url
	if variant, err := extra.TransformVariant(data, transformedWidth); err != nil {
		applog.Warn().Err(err).Msgf("unable to create a variant for %s", fileKey)
	} else {
		vURL, err := storer.Save(model.UploadFileData{
			FileKey: variantKey(fileKey),
			File:    bytes.NewReader(variant),
		})
		if err != nil {
			applog.Warn().Err(err).Msgf("unable to store the variant of %s", fileKey)
		} else {
			transformedURL = vURL
		}
	}

	displayName := r.Form.Get("displayName")
	if displayName == "" {
		displayName = internal.CleanUpFileName(h.Filename)
	}

	collection := r.Form.Get("collectionName")
	if collection == "" {
		collection = folder
	}

	f := model.File{
		ID:             uuid.NewString(),
		Key:            fileKey,
		URL:            url,
		TransformedURL: transformedURL,
		Size:           int64(len(data)),
		Width:          width,
		Height:         height,
		Format:         format,
		Collection:     collection,
		DisplayName:    displayName,
		OwnerName:      r.Form.Get("ownerName"),
		OwnerContact:   r.Form.Get("ownerContact"),
		Uploaded:       time.Now(),
	}

	if _, err := datastore.AddFile(f); err != nil {
		applog.Error().Err(err).Msg("unable to persist the file record")
		respondErr(w, http.StatusInternalServerError, "unable to record the file")
		return
	}

	respond(w, http.StatusOK, f)
}

// verifyGrant recomputes the signature from the received parameters and
// consumes the matching ledger entry. Returns a status code and message on
// refusal, 0 when the grant holds.
func verifyGrant(r *http.Request, publicID string) (int, string) {
	sig := r.Form.Get("signature")
	tsRaw := r.Form.Get("timestamp")
	apiKey := r.Form.Get("api_key")

	if sig == "" || tsRaw == "" || publicID == "" {
		return http.StatusUnauthorized, "missing upload authorization"
	}

	if apiKey != config.Current.StorageKeyPublic {
		return http.StatusUnauthorized, "unknown API key"
	}

	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil || time.Since(time.Unix(ts, 0)) > grantTTL {
		return http.StatusUnauthorized, "upload authorization expired"
	}

	expected := signString(stringToSign(map[string]string{
		"public_id": publicID,
		"timestamp": tsRaw,
	}), config.Current.StorageKeyPrivate)

	if expected != sig {
		return http.StatusUnauthorized, "invalid upload signature"
	}

	if _, err := volatile.Consume(grantKey(sig)); err != nil {
		return http.StatusUnauthorized, "upload authorization unknown or already used"
	}

	return 0, ""
}

func storageErrorCode(err error) int {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// variantKey derives the storage key of the transformed variant.
func variantKey(fileKey string) string {
	if idx := strings.LastIndex(fileKey, "."); idx > 0 {
		fileKey = fileKey[:idx]
	}
	return fileKey + "_t.jpg"
}

type deleteResult struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

// deleteFile removes a stored receipt. An unknown id is treated as already
// deleted; blob removal failures are logged but the record still goes away,
// local state is the source of truth.
func deleteFile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ObjectID string `json:"objectId"`
	}
	if err := parseBody(r.Body, &body); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := datastore.GetFileByID(body.ObjectID)
	if errors.Is(err, database.ErrFileNotFound) {
		respond(w, http.StatusOK, deleteResult{Success: true, Result: "already absent"})
		return
	} else if err != nil {
		respondErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := storer.Delete(f.Key); err != nil {
		applog.Error().Err(err).Msgf("unable to delete blob %s", f.Key)
	}
	if err := storer.Delete(variantKey(f.Key)); err != nil {
		applog.Error().Err(err).Msgf("unable to delete variant of %s", f.Key)
	}

	if err := datastore.DeleteFile(f.ID); err != nil {
		respondErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	respond(w, http.StatusOK, deleteResult{Success: true, Result: f.ID})
}
