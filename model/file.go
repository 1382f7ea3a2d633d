package model

import (
	"io"
	"time"
)

// UploadFileData carries the blob and its storage key to a Storer.
type UploadFileData struct {
	FileKey string
	File    io.ReadSeeker
}

// File is the record persisted for every stored receipt image. It is also
// the JSON body returned by the upload entry point; caller-supplied metadata
// (display name, owner name, owner contact) is echoed back for later
// reconciliation. Immutable once written.
type File struct {
	ID             string    `json:"id"`
	Key            string    `json:"key"`
	URL            string    `json:"url"`
	TransformedURL string    `json:"transformedUrl"`
	Size           int64     `json:"size"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Format         string    `json:"format"`
	Collection     string    `json:"collectionName"`
	DisplayName    string    `json:"displayName"`
	OwnerName      string    `json:"ownerName"`
	OwnerContact   string    `json:"ownerContact"`
	Uploaded       time.Time `json:"uploaded"`
}
