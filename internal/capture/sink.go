package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Sink is the upload boundary: it takes a finished clip and returns a
// reference usable in a message.
type Sink interface {
	Send(ctx context.Context, clip Clip) (videoURL string, err error)
}

// HTTPSink uploads clips to the backend's video upload endpoint as a
// multipart form and returns the server-assigned URL.
type HTTPSink struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSink(baseURL string, client *http.Client) *HTTPSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSink{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *HTTPSink) Send(ctx context.Context, clip Clip) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="video"; filename="clip`+extFor(clip.MIMEType)+`"`)
	header.Set("Content-Type", clip.MIMEType)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(clip.Data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/upload/video", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload rejected: %s", resp.Status)
	}

	var result struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return result.VideoURL, nil
}

func extFor(mimeType string) string {
	base, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		base = mimeType
	}
	if base == "video/mp4" {
		return ".mp4"
	}
	return ".webm"
}
