package receiptwire

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/model"
)

func notifyPayload() model.NotifyPayload {
	return model.NotifyPayload{
		Files: []model.ReceiptRecord{
			{ID: "abc", URL: "http://localhost/f_t.jpg", Name: "receipt", Size: 1024, Width: 640, Height: 480},
		},
		User: model.NotifyUser{Name: "Kim", Contact: "kim@example.com", CollectionName: "Kim_20250110"},
	}
}

func TestNotifyRelaysToWebhook(t *testing.T) {
	var received model.NotifyPayload

	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Error(err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	saved := config.Current
	config.Current.AutomationWebhookURL = hook.URL
	defer func() { config.Current = saved }()

	resp := jsonReq(t, notify, "POST", "/notify", notifyPayload())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %s", resp.Status)
	}

	if len(received.Files) != 1 || received.User.Name != "Kim" {
		t.Errorf("webhook received a mangled payload: %+v", received)
	}
}

func TestNotifyRefusesEmptySubmission(t *testing.T) {
	saved := config.Current
	config.Current.AutomationWebhookURL = "http://localhost:1"
	defer func() { config.Current = saved }()

	payload := notifyPayload()
	payload.Files = nil

	resp := jsonReq(t, notify, "POST", "/notify", payload)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 got %s", resp.Status)
	}
}

func TestNotifyUnreachableWebhook(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	hook.Close() // nothing listens anymore

	saved := config.Current
	config.Current.AutomationWebhookURL = hook.URL
	defer func() { config.Current = saved }()

	resp := jsonReq(t, notify, "POST", "/notify", notifyPayload())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 got %s", resp.Status)
	}
}

func TestNotifyWithoutWebhookConfig(t *testing.T) {
	saved := config.Current
	config.Current.AutomationWebhookURL = ""
	defer func() { config.Current = saved }()

	resp := jsonReq(t, notify, "POST", "/notify", notifyPayload())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 got %s", resp.Status)
	}
}
