package uploader

import (
	"context"
	"errors"

	"github.com/receiptwirehq/core/model"
)

var (
	// ErrBatchNotSettled means uploads are still pending or in flight.
	ErrBatchNotSettled = errors.New("uploads are still in progress")

	// ErrNothingUploaded means every upload failed; there is nothing to
	// notify downstream about.
	ErrNothingUploaded = errors.New("no receipt was uploaded, please re-select your files and try again")
)

// Complete assembles the canonical records of every succeeded candidate and
// submits them to the automation endpoint in one call. It refuses to run
// before the batch settled and refuses an empty submission. A submission
// failure does not roll back any upload or deletion already performed, the
// caller may simply retry.
func (u *Uploader) Complete(ctx context.Context) error {
	if !u.AllSettled() {
		return ErrBatchNotSettled
	}

	var records []model.ReceiptRecord
	for _, c := range u.Snapshot() {
		if c.Status != StatusSucceeded || c.Result == nil {
			continue
		}
		records = append(records, canonical(*c.Result))
	}

	if len(records) == 0 {
		return ErrNothingUploaded
	}

	return u.client.Notify(ctx, model.NotifyPayload{
		Files: records,
		User:  u.owner,
	})
}

// canonical normalizes an upload result, preferring the post-processed URL
// over the raw one when both exist.
func canonical(f model.File) model.ReceiptRecord {
	url := f.URL
	if f.TransformedURL != "" {
		url = f.TransformedURL
	}

	return model.ReceiptRecord{
		ID:     f.ID,
		URL:    url,
		Name:   f.DisplayName,
		Size:   f.Size,
		Width:  f.Width,
		Height: f.Height,
	}
}
