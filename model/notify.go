package model

// ReceiptRecord is the canonical per-file entry of the completion payload.
// URL prefers the transformed variant when one exists.
type ReceiptRecord struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NotifyUser is the batch-level owner metadata attached to a notification.
type NotifyUser struct {
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	CollectionName string `json:"collectionName"`
}

// NotifyPayload is submitted once to the automation endpoint after every
// upload in a batch settled.
type NotifyPayload struct {
	Files []ReceiptRecord `json:"files"`
	User  NotifyUser      `json:"user"`
}
