package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// upload posts a single file as multipart/form-data under field.
func (c *Client) upload(ctx context.Context, endpoint, field, filename string, r io.Reader) (*Response, error) {
	if r == nil {
		return nil, errors.NewValidationError("no file to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestEncoding, "failed to create form file", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestEncoding, "failed to read upload", err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestEncoding, "failed to finish form", err)
	}

	c.logger.Debug("uploading file", "endpoint", endpoint, "field", field, "bytes", buf.Len())
	return c.Request(ctx, endpoint, RequestOptions{
		Method:      http.MethodPost,
		RawBody:     &buf,
		ContentType: w.FormDataContentType(),
	})
}
