package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
)

// attachmentsField is the repeated form field the server expects every
// uploaded file under.
const attachmentsField = "attachments"

// FilePart is one file to include in a multipart request. The bytes are
// already staged in memory by the attachment pipeline.
type FilePart struct {
	Name string
	Data []byte
}

// PostMultipart performs a POST request encoded as multipart/form-data,
// merging scalar fields with the given file parts.
func (c *Client) PostMultipart(path string, fields map[string]string, files []FilePart, result interface{}) error {
	return c.doMultipart(http.MethodPost, path, fields, files, result)
}

// PutMultipart performs a PUT request encoded as multipart/form-data.
func (c *Client) PutMultipart(path string, fields map[string]string, files []FilePart, result interface{}) error {
	return c.doMultipart(http.MethodPut, path, fields, files, result)
}

// doMultipart builds and sends a multipart request. Scalar fields become
// plain form fields; every file goes under the attachments field.
func (c *Client) doMultipart(method, path string, fields map[string]string, files []FilePart, result interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(attachmentsField, file.Name)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", file.Name, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("failed to write form file %s: %w", file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.execute(req, result)
}
