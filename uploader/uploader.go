package uploader

import (
	"context"
	"net/http"
	"sync"

	"github.com/receiptwirehq/core/extra"
	"github.com/receiptwirehq/core/internal"
	"github.com/receiptwirehq/core/logger"
	"github.com/receiptwirehq/core/model"
	"golang.org/x/sync/errgroup"
)

const (
	// maxFileSize matches the server-side ceiling.
	maxFileSize = 10 << 20

	previewWidth = 320
)

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Uploader runs the per-file state machine for one named collection. The
// candidate list is only mutated by producing a fresh snapshot under the
// lock, so Snapshot always returns a consistent point-in-time view.
type Uploader struct {
	client     *Client
	log        *logger.Logger
	collection string
	owner      model.NotifyUser

	mu       sync.Mutex
	admitted int // session counter feeding index assignment
	items    []Candidate
}

func New(client *Client, owner model.NotifyUser, log *logger.Logger) *Uploader {
	return &Uploader{
		client:     client,
		log:        log,
		collection: owner.CollectionName,
		owner:      owner,
	}
}

// Admit validates the selected files and registers the valid ones as
// pending candidates. Admission is partial: invalid files are reported and
// skipped without blocking the rest. Indices are assigned here,
// synchronously, continuing from the session count; two browser tabs
// admitting into the same collection could still collide since the counter
// is local, the server does not issue sequences.
func (u *Uploader) Admit(files []NamedFile) (admitted []Candidate, rejected []Rejection) {
	for _, file := range files {
		if int64(len(file.Data)) > maxFileSize {
			rejected = append(rejected, Rejection{Name: file.Name, Reason: "file exceeds the 10 MiB limit"})
			continue
		}

		if !acceptedTypes[http.DetectContentType(file.Data)] {
			rejected = append(rejected, Rejection{Name: file.Name, Reason: "only JPEG and PNG images are accepted"})
			continue
		}

		c := Candidate{
			DisplayName: internal.CleanUpFileName(file.Name),
			Original:    file.Data,
			Status:      StatusPending,
		}

		if o := extra.ReadOrientation(file.Data); o != 1 {
			c.Corrected = extra.Reorient(file.Data, o)
		}

		// preview degrades to the full-size bytes when the variant
		// cannot be produced
		if p, err := extra.TransformVariant(c.Bytes(), previewWidth); err == nil {
			c.Preview = p
		} else {
			c.Preview = c.Bytes()
		}

		u.mu.Lock()
		u.admitted++
		c.Index = u.admitted
		u.items = append(u.snapshotLocked(), c)
		u.mu.Unlock()

		admitted = append(admitted, c)
	}

	return
}

// Process uploads every pending candidate sequentially in admission order,
// each waiting for the previous to settle. Sequential-within-batch bounds
// peak network and memory pressure on constrained mobile clients.
func (u *Uploader) Process(ctx context.Context) {
	for {
		idx, ok := u.nextPending()
		if !ok {
			return
		}

		u.transition(idx, func(c *Candidate) { c.Status = StatusInFlight })

		candidate, _ := u.candidate(idx)

		result, err := u.uploadOne(ctx, candidate)
		if err != nil {
			u.log.Error().Err(err).Msgf("upload %d failed", idx)
			u.transition(idx, func(c *Candidate) {
				c.Status = StatusFailed
				c.Message = err.Error()
			})
			continue
		}

		u.transition(idx, func(c *Candidate) {
			c.Status = StatusSucceeded
			c.Result = &result
		})
	}
}

func (u *Uploader) uploadOne(ctx context.Context, c Candidate) (model.File, error) {
	grant, err := u.client.Sign(ctx, model.SignRequest{
		CollectionName: u.collection,
		Index:          c.Index,
	})
	if err != nil {
		return model.File{}, err
	}

	return u.client.Upload(ctx, grant, c.DisplayName, c.Bytes(), UploadMeta{
		Collection:   u.collection,
		DisplayName:  c.DisplayName,
		OwnerName:    u.owner.Name,
		OwnerContact: u.owner.Contact,
		Index:        c.Index,
	})
}

// Remove discards a candidate locally; for a succeeded one it also fires a
// best-effort remote deletion that is never awaited, a failure there is
// only visible in the log.
func (u *Uploader) Remove(index int) {
	u.mu.Lock()

	var removed *Candidate
	next := make([]Candidate, 0, len(u.items))
	for _, c := range u.items {
		if c.Index == index {
			rc := c
			removed = &rc
			continue
		}
		next = append(next, c)
	}
	u.items = next
	u.mu.Unlock()

	if removed != nil {
		u.deleteRemote(*removed)
	}
}

// RemoveAll resets the batch and parallelizes the remote deletions without
// waiting for stragglers.
func (u *Uploader) RemoveAll() {
	u.mu.Lock()
	items := u.items
	u.items = nil
	u.mu.Unlock()

	g := new(errgroup.Group)
	for _, c := range items {
		c := c
		g.Go(func() error {
			u.deleteRemoteWait(c)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
	}()
}

func (u *Uploader) deleteRemote(c Candidate) {
	go u.deleteRemoteWait(c)
}

func (u *Uploader) deleteRemoteWait(c Candidate) {
	if c.Status != StatusSucceeded || c.Result == nil {
		// no request was issued or its result is disregarded
		return
	}

	if err := u.client.Delete(context.Background(), c.Result.ID); err != nil {
		u.log.Error().Err(err).Msgf("best-effort delete of %s failed", c.Result.ID)
	}
}

// AllSettled holds when the batch is non-empty and every candidate reached
// a terminal state.
func (u *Uploader) AllSettled() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.items) == 0 {
		return false
	}
	for _, c := range u.items {
		if !c.Settled() {
			return false
		}
	}
	return true
}

// Snapshot returns a point-in-time copy of the batch in admission order.
func (u *Uploader) Snapshot() []Candidate {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.snapshotLocked()
}

func (u *Uploader) snapshotLocked() []Candidate {
	out := make([]Candidate, len(u.items))
	copy(out, u.items)
	return out
}

func (u *Uploader) nextPending() (int, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, c := range u.items {
		if c.Status == StatusPending {
			return c.Index, true
		}
	}
	return 0, false
}

func (u *Uploader) candidate(index int) (Candidate, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, c := range u.items {
		if c.Index == index {
			return c, true
		}
	}
	return Candidate{}, false
}

// transition replaces the batch with a new snapshot where fn was applied to
// the candidate at index.
func (u *Uploader) transition(index int, fn func(*Candidate)) {
	u.mu.Lock()
	defer u.mu.Unlock()

	next := u.snapshotLocked()
	for i := range next {
		if next[i].Index == index {
			fn(&next[i])
			break
		}
	}
	u.items = next
}
