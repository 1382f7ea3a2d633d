// Package uploader is the client side of the receipt pipeline: it admits
// photographed receipts, corrects their orientation, uploads each one
// through a signed grant and assembles the completion notification.
package uploader

import "github.com/receiptwirehq/core/model"

type Status string

const (
	StatusPending   Status = "pending"
	StatusInFlight  Status = "in-flight"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Candidate is one admitted file. Its index is assigned at admission and
// never changes for the life of the batch; the index feeds the remote
// object key, which is what guarantees key uniqueness within a collection.
type Candidate struct {
	Index       int
	DisplayName string
	Original    []byte
	Corrected   []byte // nil when the photo was already upright
	Preview     []byte
	Status      Status
	Result      *model.File
	Message     string
}

// Bytes returns what gets uploaded: the corrected pixels when orientation
// had to be fixed, the untouched original otherwise.
func (c Candidate) Bytes() []byte {
	if c.Corrected != nil {
		return c.Corrected
	}
	return c.Original
}

// Settled reports whether the candidate reached a terminal state.
func (c Candidate) Settled() bool {
	return c.Status == StatusSucceeded || c.Status == StatusFailed
}

// Rejection explains why a selected file was not admitted.
type Rejection struct {
	Name   string
	Reason string
}

// NamedFile is a user-selected file handed to Admit.
type NamedFile struct {
	Name string
	Data []byte
}
