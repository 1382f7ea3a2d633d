package receiptwire

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/model"
)

var notifyClient = resty.New().SetTimeout(30 * time.Second)

// notify validates the completion payload and relays it to the automation
// webhook. The webhook URL (and its credentials, if any) stays server-side.
func notify(w http.ResponseWriter, r *http.Request) {
	if config.Current.AutomationWebhookURL == "" {
		respondErr(w, http.StatusInternalServerError, "automation webhook is not configured on this server")
		return
	}

	var payload model.NotifyPayload
	if err := parseBody(r.Body, &payload); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(payload.Files) == 0 {
		respondErr(w, http.StatusBadRequest, "the notification must contain at least one file")
		return
	}

	resp, err := notifyClient.R().
		SetContext(r.Context()).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(config.Current.AutomationWebhookURL)
	if err != nil {
		applog.Error().Err(err).Msg("unable to reach the automation webhook")
		respondErr(w, http.StatusBadGateway, "could not reach the automation pipeline, please retry")
		return
	}

	if resp.IsError() {
		applog.Error().Msgf("automation webhook replied %s", resp.Status())
		respondErr(w, http.StatusBadGateway, "the automation pipeline refused the notification, please retry")
		return
	}

	respond(w, http.StatusOK, true)
}
