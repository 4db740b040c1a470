// Package media uploads image bytes directly to the external media host
// using a signed ticket issued by the club backend.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clubdesk/internal/domain/intake"
)

// ErrNotDataURI is returned when the value is not inline-encoded image data.
var ErrNotDataURI = errors.New("value is not an inline data URI")

// HostUploader performs the direct multipart upload.
type HostUploader struct {
	HTTPClient *http.Client
}

// NewHostUploader creates an uploader with a default timeout suited to
// image payloads.
func NewHostUploader() *HostUploader {
	return &HostUploader{HTTPClient: &http.Client{Timeout: 60 * time.Second}}
}

// Upload decodes the inline image and posts it to the ticket's upload URL
// with the ticket credentials. Returns the permanent URL the host assigns.
// PRE: ticket was issued by the backend for this upload
// POST: Returned URL is remote; the data URI is no longer needed
func (u *HostUploader) Upload(ctx context.Context, ticket intake.UploadTicket, dataURI string) (string, error) {
	data, mimeType, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := map[string]string{
		"api_key":   ticket.APIKey,
		"timestamp": strconv.FormatInt(ticket.Timestamp, 10),
		"folder":    ticket.Folder,
		"signature": ticket.Signature,
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return "", fmt.Errorf("write upload field %s: %w", k, err)
		}
	}
	part, err := form.CreateFormFile("file", fileName(mimeType))
	if err != nil {
		return "", fmt.Errorf("create upload part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write upload bytes: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ticket.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	client := u.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("media host rejected upload: status=%d body=%s", resp.StatusCode, string(b))
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.SecureURL == "" {
		return "", errors.New("media host returned no URL")
	}
	return out.SecureURL, nil
}

// DecodeDataURI splits a base64 data URI into raw bytes and mime type.
func DecodeDataURI(value string) ([]byte, string, error) {
	if !strings.HasPrefix(value, "data:") {
		return nil, "", ErrNotDataURI
	}
	comma := strings.Index(value, ",")
	if comma < 0 {
		return nil, "", ErrNotDataURI
	}
	meta := value[len("data:"):comma]
	payload := value[comma+1:]
	mimeType := meta
	if semi := strings.Index(meta, ";"); semi >= 0 {
		mimeType = meta[:semi]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode inline image: %w", err)
	}
	return data, mimeType, nil
}

// fileName derives an upload file name from the mime type.
func fileName(mimeType string) string {
	ext := "bin"
	if slash := strings.Index(mimeType, "/"); slash >= 0 && slash < len(mimeType)-1 {
		ext = mimeType[slash+1:]
	}
	return "upload." + ext
}
