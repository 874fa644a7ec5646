// Package sendpart sends payloads that may carry file attachments, using a
// plain JSON body when there are no files and a streamed multipart form when
// there are.
package sendpart

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/utils/httputil"
	"github.com/quaverlib/quaver/utils/json"
)

// File is one attachment to upload.
type File struct {
	Name   string
	Reader io.Reader
}

// DataMultipartWriter is a payload that knows whether it carries files and
// how to lay itself out in a multipart form.
type DataMultipartWriter interface {
	// NeedsMultipart reports whether the payload must go out as a multipart
	// form.
	NeedsMultipart() bool

	WriteMultipart(body *multipart.Writer) error
}

// Do sends data to url with the method, decoding the response into v unless v
// is nil. Multipart is only used when the payload asks for it.
func Do(c *httputil.Client, method string, data DataMultipartWriter, v interface{}, url string) error {
	if !data.NeedsMultipart() {
		return c.RequestJSON(v, method, url, httputil.WithJSONBody(data))
	}

	resp, err := c.MeanwhileMultipart(data.WriteMultipart, method, url)
	if err != nil {
		return err
	}

	body := resp.GetBody()
	defer body.Close()

	if v == nil {
		return nil
	}

	return json.DecodeStream(body, v)
}

// POST is Do with "POST".
func POST(c *httputil.Client, data DataMultipartWriter, v interface{}, url string) error {
	return Do(c, "POST", data, v, url)
}

// PATCH is Do with "PATCH".
func PATCH(c *httputil.Client, data DataMultipartWriter, v interface{}, url string) error {
	return Do(c, "PATCH", data, v, url)
}

// Write lays item out as the form's payload_json field followed by each file
// as its own part. The writer is left open for the caller to close.
func Write(body *multipart.Writer, item interface{}, files []File) error {
	field, err := body.CreateFormField("payload_json")
	if err != nil {
		return errors.Wrap(err, "failed to create JSON field")
	}

	if err := json.EncodeStream(field, item); err != nil {
		return errors.Wrap(err, "failed to encode JSON payload")
	}

	for i, file := range files {
		num := strconv.Itoa(i)

		part, err := body.CreateFormFile("file"+num, file.Name)
		if err != nil {
			return errors.Wrap(err, "failed to create part for file "+num)
		}

		if _, err := io.Copy(part, file.Reader); err != nil {
			return errors.Wrap(err, "failed to write file "+num)
		}
	}

	return nil
}
