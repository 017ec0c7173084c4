package api

import (
	"encoding/json/v2"
	"net/http"
)

// decodeRequest decodes a JSON request body into dst.
func decodeRequest(r *http.Request, dst any) error {
	return json.UnmarshalRead(r.Body, dst)
}
