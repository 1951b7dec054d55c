package products

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"ProductAPI/pkg/kit"
)

const (
	DefaultMaxBodyBytes = 1 << 20

	jsonMediaType = "application/json"
)

var errMalformed = kit.NewError(http.StatusBadRequest, kit.MsgMalformed)

// isJSONMediaType accepts application/json and structured-syntax suffixes
// such as application/merge-patch+json.
func isJSONMediaType(mt string) bool {
	return mt == jsonMediaType ||
		strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}

// decodeObject reads a JSON object body. It returns nil without error when
// the body is absent, declared as something other than JSON, or is valid JSON
// that is not an object. Syntax errors, invalid UTF-8, trailing data and
// oversized bodies are malformed requests.
func decodeObject(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]Value, error) {
	if r.Body == nil {
		return nil, nil
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || !isJSONMediaType(mt) {
			return nil, nil
		}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	defer func() { _ = r.Body.Close() }()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, kit.WrapError(http.StatusBadRequest, kit.MsgMalformed, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !utf8.Valid(raw) {
		return nil, errMalformed
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return nil, kit.WrapError(http.StatusBadRequest, kit.MsgMalformed, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errMalformed
	}

	if Value(v).Kind() != KindObject {
		return nil, nil
	}

	var obj map[string]Value
	if err := json.Unmarshal(v, &obj); err != nil {
		return nil, kit.WrapError(http.StatusBadRequest, kit.MsgMalformed, err)
	}
	return obj, nil
}
