package receiptwire

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/receiptwirehq/core/config"
	"github.com/receiptwirehq/core/internal"
	"github.com/receiptwirehq/core/model"
)

// grantTTL bounds the freshness of a signing grant; the upload entry point
// refuses anything older.
const grantTTL = 1 * time.Hour

const msgMissingCredentials = "storage credentials are not configured on this server"

type signer struct{}

// sign issues a single-use grant for a direct upload. Only public_id and
// timestamp participate in the signature; asset_folder travels in the
// parameter map but is derived from the key, not signed.
func (sg *signer) sign(w http.ResponseWriter, r *http.Request) {
	if !config.Current.HasStorageCredentials() {
		respondErr(w, http.StatusInternalServerError, msgMissingCredentials)
		return
	}

	var req model.SignRequest
	if err := parseBody(r.Body, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return
	}

	ts := time.Now().Unix()
	params := signatureParams(req, ts)

	signed := stringToSign(params)
	sig := signString(signed, config.Current.StorageKeyPrivate)

	if req.CollectionName != "" {
		params["asset_folder"] = req.CollectionName
	}

	grant := model.SignGrant{
		Signature:         sig,
		Timestamp:         ts,
		AccountID:         config.Current.StorageAccountID,
		APIKeyPublic:      config.Current.StorageKeyPublic,
		Parameters:        params,
		DebugStringSigned: signed,
	}

	// remember the signature so the upload entry point can enforce
	// single use and freshness
	if err := volatile.SetTTL(grantKey(sig), signed, grantTTL); err != nil {
		applog.Error().Err(err).Msg("unable to record the issued grant")
		respondErr(w, http.StatusInternalServerError, "unable to issue an upload grant")
		return
	}

	respond(w, http.StatusOK, grant)
}

// signatureParams builds the signed subset of the upload parameters.
func signatureParams(req model.SignRequest, ts int64) map[string]string {
	publicID := req.ExplicitKey
	if publicID == "" {
		if req.CollectionName != "" {
			publicID = fmt.Sprintf("receipts/%s_%d", req.CollectionName, req.Index)
		} else {
			publicID = fmt.Sprintf("receipts/%s", internal.RandStringRunes(16))
		}
	}

	return map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(ts, 10),
	}
}

// stringToSign serializes params deterministically: keys sorted
// lexicographically, joined as key=value pairs with &. The upload call must
// reproduce this byte-for-byte or the grant is worthless.
func stringToSign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	return strings.Join(pairs, "&")
}

// signString applies the storage provider's signing primitive: SHA-1 over
// the serialized parameters concatenated with the secret key.
func signString(s, secret string) string {
	sum := sha1.Sum([]byte(s + secret))
	return fmt.Sprintf("%x", sum)
}

func grantKey(sig string) string {
	return "grant:" + sig
}
