package uploader

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/logger"
	"github.com/receiptwirehq/core/model"
)

var testLog *logger.Logger

func TestMain(m *testing.M) {
	testLog = logger.Get(config.AppConfig{AppEnv: "dev"})
	os.Exit(m.Run())
}

func pngFile(t *testing.T, name string, w, h int) NamedFile {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return NamedFile{Name: name, Data: buf.Bytes()}
}

func newTestUploader(client *Client) *Uploader {
	return New(client, model.NotifyUser{
		Name:           "Kim",
		Contact:        "kim@example.com",
		CollectionName: "Kim_20250110",
	}, testLog)
}

func TestAdmitAssignsGaplessIndices(t *testing.T) {
	u := newTestUploader(nil)

	first, rejected := u.Admit([]NamedFile{
		pngFile(t, "a.png", 4, 4),
		pngFile(t, "b.png", 4, 4),
	})
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejections: %+v", rejected)
	}

	// a later admission event continues the session counter
	second, _ := u.Admit([]NamedFile{pngFile(t, "c.png", 4, 4)})

	all := append(first, second...)
	for i, c := range all {
		if c.Index != i+1 {
			t.Errorf("expected index %d got %d", i+1, c.Index)
		}
	}
}

func TestAdmitIsPartial(t *testing.T) {
	u := newTestUploader(nil)

	oversized := NamedFile{Name: "huge.png", Data: make([]byte, maxFileSize+1)}
	copy(oversized.Data, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A})

	admitted, rejected := u.Admit([]NamedFile{
		pngFile(t, "a.png", 4, 4),
		pngFile(t, "b.png", 4, 4),
		oversized,
		pngFile(t, "c.png", 4, 4),
	})

	if len(admitted) != 3 {
		t.Errorf("expected 3 admitted got %d", len(admitted))
	}
	if len(rejected) != 1 || rejected[0].Name != "huge.png" {
		t.Fatalf("expected one rejection for huge.png got %+v", rejected)
	}
	if want := "file exceeds the 10 MiB limit"; rejected[0].Reason != want {
		t.Errorf("expected %q got %q", want, rejected[0].Reason)
	}

	if n := len(u.Snapshot()); n != 3 {
		t.Errorf("expected batch count 3 got %d", n)
	}
}

func TestAdmitRejectsUnknownTypes(t *testing.T) {
	u := newTestUploader(nil)

	_, rejected := u.Admit([]NamedFile{
		{Name: "notes.txt", Data: []byte("plain text, definitely not pixels")},
	})

	if len(rejected) != 1 {
		t.Fatalf("expected a rejection got %+v", rejected)
	}
	if len(u.Snapshot()) != 0 {
		t.Error("rejected files must not enter the batch")
	}
}

func TestAllSettled(t *testing.T) {
	u := newTestUploader(nil)

	// empty batch never counts as settled
	if u.AllSettled() {
		t.Error("empty batch should not be settled")
	}

	u.Admit([]NamedFile{pngFile(t, "a.png", 4, 4), pngFile(t, "b.png", 4, 4)})
	if u.AllSettled() {
		t.Error("pending candidates should not be settled")
	}

	u.transition(1, func(c *Candidate) { c.Status = StatusSucceeded })
	if u.AllSettled() {
		t.Error("one pending candidate left, not settled")
	}

	u.transition(2, func(c *Candidate) { c.Status = StatusInFlight })
	if u.AllSettled() {
		t.Error("in-flight candidate should not be settled")
	}

	u.transition(2, func(c *Candidate) { c.Status = StatusFailed })
	if !u.AllSettled() {
		t.Error("succeeded + failed should be settled")
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	u := newTestUploader(nil)
	u.Admit([]NamedFile{pngFile(t, "a.png", 4, 4)})

	snap := u.Snapshot()
	u.transition(1, func(c *Candidate) { c.Status = StatusSucceeded })

	if snap[0].Status != StatusPending {
		t.Error("an earlier snapshot must not observe later transitions")
	}
}
