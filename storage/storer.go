package storage

import "github.com/receiptwirehq/core/model"

const (
	StorageProviderLocal = "local"
	StorageProviderS3    = "s3"
)

// Storer writes and removes receipt blobs. Save returns the public URL of
// the stored object.
type Storer interface {
	Save(model.UploadFileData) (string, error)
	Delete(string) error
}
