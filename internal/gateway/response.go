package gateway

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// Shape records which form the backend answered in.
type Shape int

const (
	// ShapeWrapped is the {success, message, data, error} envelope.
	ShapeWrapped Shape = iota + 1
	// ShapeRaw is any other JSON document, taken as the payload itself.
	ShapeRaw
	// ShapeText is a body that is not JSON.
	ShapeText
)

func (s Shape) String() string {
	switch s {
	case ShapeWrapped:
		return "wrapped"
	case ShapeRaw:
		return "raw"
	case ShapeText:
		return "text"
	default:
		return "unknown"
	}
}

// Response is the uniform result of every call. Callers branch on Success
// and Data without knowing which Shape the backend used.
type Response struct {
	Shape   Shape
	Success bool
	Message string
	// Data is the payload: the envelope's data field for ShapeWrapped, the
	// whole document for ShapeRaw, and empty for ShapeText.
	Data  json.RawMessage
	Error string

	StatusCode int
	// Body is the undecoded response body.
	Body []byte
}

// HasData reports whether Data holds a non-null value.
func (r *Response) HasData() bool {
	d := bytes.TrimSpace(r.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Decode unmarshals Data into v. A response without data leaves v untouched.
func (r *Response) Decode(v any) error {
	if !r.HasData() {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.Wrap(errors.ErrCodeResponseDecoding, "failed to decode response data", err).WithStatus(r.StatusCode)
	}
	return nil
}

// FailureMessage is the text reported when the response counts as a failure:
// the backend message, else its error field, else the HTTP status line.
func (r *Response) FailureMessage() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Error != "" {
		return r.Error
	}
	return statusMessage(r.StatusCode)
}

// Normalize folds a backend answer into a Response.
//
// A JSON object carrying a success or data key is ShapeWrapped; its success
// flag wins when present, otherwise success follows the status code. Any
// other JSON is ShapeRaw. Everything else is ShapeText and never successful.
func Normalize(status int, contentType string, body []byte) *Response {
	resp := &Response{StatusCode: status, Body: body}

	trimmed := bytes.TrimSpace(body)
	if !isJSONContentType(contentType) || !json.Valid(trimmed) || len(trimmed) == 0 {
		resp.Shape = ShapeText
		resp.Success = false
		resp.Message = strings.TrimSpace(string(body))
		if resp.Message == "" {
			resp.Message = statusMessage(status)
		}
		return resp
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		// Arrays, strings and numbers carry no envelope.
		resp.Shape = ShapeRaw
		resp.Success = isSuccessStatus(status)
		resp.Data = json.RawMessage(trimmed)
		return resp
	}

	resp.Message = stringField(fields, "message")
	resp.Error = stringField(fields, "error")

	successRaw, hasSuccess := fields["success"]
	dataRaw, hasData := fields["data"]

	if !hasSuccess && !hasData {
		resp.Shape = ShapeRaw
		resp.Success = isSuccessStatus(status)
		resp.Data = json.RawMessage(trimmed)
		return resp
	}

	resp.Shape = ShapeWrapped
	resp.Data = dataRaw

	var flag bool
	if hasSuccess && json.Unmarshal(successRaw, &flag) == nil {
		resp.Success = flag
	} else {
		resp.Success = isSuccessStatus(status)
	}
	return resp
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "+json")
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
