package receiptwire

import (
	"encoding/json"
	"io"
	"net/http"
)

func respond(w http.ResponseWriter, code int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}

// respondErr writes the error taxonomy's JSON shape: a human-readable
// message the client surfaces verbatim.
func respondErr(w http.ResponseWriter, code int, msg string) {
	respond(w, code, map[string]string{"message": msg})
}

func parseBody(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}
