package media_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubdesk/internal/adapters/media"
	"clubdesk/internal/domain/intake"
)

const pngURI = "data:image/png;base64,aGVsbG8="

// TestUploadSendsTicketFields verifies the multipart form carries the ticket
// credentials and the raw image bytes.
func TestUploadSendsTicketFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		if got := r.FormValue("api_key"); got != "key-1" {
			t.Errorf("api_key = %q", got)
		}
		if got := r.FormValue("timestamp"); got != "1700000000" {
			t.Errorf("timestamp = %q", got)
		}
		if got := r.FormValue("folder"); got != "profile" {
			t.Errorf("folder = %q", got)
		}
		if got := r.FormValue("signature"); got != "sig-1" {
			t.Errorf("signature = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("no file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "upload.png" {
			t.Errorf("filename = %q, want upload.png", header.Filename)
		}
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		if string(buf[:n]) != "hello" {
			t.Errorf("file bytes = %q, want hello", buf[:n])
		}
		w.Write([]byte(`{"secure_url":"https://media.example/p/1.png"}`))
	}))
	defer srv.Close()

	ticket := intake.UploadTicket{
		UploadURL: srv.URL,
		APIKey:    "key-1",
		Timestamp: 1700000000,
		Folder:    "profile",
		Signature: "sig-1",
	}
	url, err := media.NewHostUploader().Upload(context.Background(), ticket, pngURI)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "https://media.example/p/1.png" {
		t.Errorf("url = %q", url)
	}
}

// TestUploadRejectedByHost verifies non-2xx responses surface as errors.
func TestUploadRejectedByHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := media.NewHostUploader().Upload(context.Background(), intake.UploadTicket{UploadURL: srv.URL}, pngURI)
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}

// TestDecodeDataURI covers the accepted and rejected inline forms.
func TestDecodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})

	data, mimeType, err := media.DecodeDataURI("data:image/png;base64," + payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mime = %q, want image/png", mimeType)
	}
	if len(data) != 4 || data[0] != 0x89 {
		t.Errorf("bytes = %v", data)
	}

	if _, _, err := media.DecodeDataURI("https://media.example/p/1.png"); !errors.Is(err, media.ErrNotDataURI) {
		t.Errorf("remote URL: err = %v, want ErrNotDataURI", err)
	}
	if _, _, err := media.DecodeDataURI("data:image/png;base64,%%%"); err == nil {
		t.Error("broken base64 accepted")
	}
}
