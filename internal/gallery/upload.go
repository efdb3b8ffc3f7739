package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tablomester/tablomester/internal/review"
)

// addFileToMultipart opens a file and writes it to the multipart writer under
// the given field name.
func addFileToMultipart(writer *multipart.Writer, fieldName, filePath string) error {
	file, err := os.Open(filePath) //nolint:gosec // user-provided file path for upload
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", filePath, err)
	}
	defer file.Close()

	fileName := filepath.Base(filePath)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("could not create form file: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("could not copy file data: %w", err)
	}
	return nil
}

// doMultipart sends a multipart POST and unmarshals the JSON response.
func doMultipart[T any](ctx context.Context, c *Client, endpoint string, body *bytes.Buffer, contentType string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// UploadChunk uploads a batch of photo files into an album's pending pool.
// The gallery responds with the stored photo descriptors in request order.
func (c *Client) UploadChunk(ctx context.Context, albumID string, filePaths []string) ([]review.UploadedPhoto, error) {
	if len(filePaths) == 0 {
		return nil, errors.New("no files to upload")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, filePath := range filePaths {
		if err := addFileToMultipart(writer, "photos[]", filePath); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	result, err := doMultipart[uploadResponse](ctx, c, fmt.Sprintf("albums/%s/upload", albumID), &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("upload rejected: %s", result.Message)
	}

	return result.Photos, nil
}

// UploadPersonPhoto uploads one portrait directly to a person's profile,
// replacing any previous portrait.
func (c *Client) UploadPersonPhoto(ctx context.Context, personID int, filePath string) (*PersonPhoto, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := addFileToMultipart(writer, "photo", filePath); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	result, err := doMultipart[personPhotoResponse](ctx, c, fmt.Sprintf("persons/%d/photo", personID), &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("portrait upload rejected: %s", result.Message)
	}

	return &result.Photo, nil
}
