package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/model"
)

func TestLocalSaveAndDelete(t *testing.T) {
	config.Current.LocalStorageURL = "http://localhost:8099"

	data := model.UploadFileData{
		FileKey: "unittest/receipts/receipt_1.jpg",
		File:    bytes.NewReader([]byte("not a real jpeg")),
	}

	l := Local{}

	url, err := l.Save(data)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasSuffix(url, data.FileKey) {
		t.Errorf("expected url to end with the file key, got %s", url)
	}

	if err := l.Delete(data.FileKey); err != nil {
		t.Fatal(err)
	}
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	if err := (Local{}).Delete("unittest/receipts/never_existed.jpg"); err != nil {
		t.Errorf("deleting an absent file should succeed, got %v", err)
	}
}
