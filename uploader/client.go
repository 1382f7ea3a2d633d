package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/receiptwirehq/core/logger"
	"github.com/receiptwirehq/core/model"
)

// genericUploadError is shown when the server did not supply a message.
const genericUploadError = "the upload failed, please try again"

// Client talks to the receipt service entry points.
type Client struct {
	rc  *resty.Client
	log *logger.Logger
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2 * time.Minute)

	return &Client{rc: rc, log: log}
}

// Sign requests a single-use grant for the next upload.
func (c *Client) Sign(ctx context.Context, req model.SignRequest) (model.SignGrant, error) {
	var grant model.SignGrant

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&grant).
		Post("/storage/sign")
	if err != nil {
		return grant, err
	}
	if resp.IsError() {
		return grant, errors.New(serverMessage(resp.Body()))
	}

	return grant, nil
}

// UploadMeta is the caller-supplied metadata echoed back by the server.
type UploadMeta struct {
	Collection   string
	DisplayName  string
	OwnerName    string
	OwnerContact string
	Index        int
}

// Upload sends the bytes along with exactly the parameters the grant was
// computed over; changing any signed parameter voids the grant server-side.
func (c *Client) Upload(ctx context.Context, grant model.SignGrant, filename string, data []byte, meta UploadMeta) (model.File, error) {
	var f model.File

	form := map[string]string{
		"signature": grant.Signature,
		"timestamp": strconv.FormatInt(grant.Timestamp, 10),
		"api_key":   grant.APIKeyPublic,
	}
	for k, v := range grant.Parameters {
		form[k] = v
	}

	form["collectionName"] = meta.Collection
	form["displayName"] = meta.DisplayName
	form["ownerName"] = meta.OwnerName
	form["ownerContact"] = meta.OwnerContact
	form["index"] = strconv.Itoa(meta.Index)

	resp, err := c.rc.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(form).
		SetResult(&f).
		Post("/storage/upload")
	if err != nil {
		return f, err
	}
	if resp.IsError() {
		return f, errors.New(serverMessage(resp.Body()))
	}

	return f, nil
}

// Delete asks the server to remove a stored receipt. Removing an already
// absent object succeeds.
func (c *Client) Delete(ctx context.Context, objectID string) error {
	var result struct {
		Success bool   `json:"success"`
		Result  string `json:"result"`
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]string{"objectId": objectID}).
		SetResult(&result).
		Post("/storage/delete")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.New(serverMessage(resp.Body()))
	}
	if !result.Success {
		return errors.New("delete refused: " + result.Result)
	}

	return nil
}

// Notify submits the completion payload.
func (c *Client) Notify(ctx context.Context, payload model.NotifyPayload) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/notify")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.New(serverMessage(resp.Body()))
	}

	return nil
}

// serverMessage extracts the server-supplied message, surfaced verbatim
// when present.
func serverMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return genericUploadError
}
