package telegram

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"proposal-backend/internal/retry"
)

const defaultAPIBase = "https://api.telegram.org"

// StorageMode tags where the photo bytes actually live.
type StorageMode string

const (
	// ModeExternal means the bytes sit in the Telegram channel and
	// FileURL points at the Bot API file endpoint.
	ModeExternal StorageMode = "external"
	// ModeInline means the channel was unavailable and FileURL is a
	// self-contained data: URL. MessageID is zero and delete is a no-op.
	ModeInline StorageMode = "inline"
)

// StoredPhoto is the result of one Store call. Callers see the same
// field shape in both modes.
type StoredPhoto struct {
	Mode      StorageMode
	FileURL   string
	FileID    string
	MessageID int64
	FileSize  int64
	MimeType  string
}

// Config holds the channel credentials. Empty BotToken or ChannelID
// puts the client in inline-only mode.
type Config struct {
	BotToken  string
	ChannelID string
	// APIBase overrides the Telegram API host, used in tests.
	APIBase string
	Retry   retry.Config
	Timeout time.Duration
}

// Client stores photos in a Telegram channel used as a blob store and
// resolves them to fetchable URLs. It is safe for concurrent use.
type Client struct {
	botToken  string
	channelID string
	apiBase   string
	retryCfg  retry.Config
	http      *http.Client
}

// New builds a Client from cfg, applying the default API host, retry
// policy and a 30s per-attempt timeout where unset.
func New(cfg Config) *Client {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	retryCfg := cfg.Retry
	if retryCfg.MaxAttempts == 0 {
		retryCfg = retry.DefaultConfig()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		botToken:  cfg.BotToken,
		channelID: cfg.ChannelID,
		apiBase:   apiBase,
		retryCfg:  retryCfg,
		http:      &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the external channel can be used.
func (c *Client) Configured() bool {
	return c.botToken != "" && c.channelID != ""
}

// Store pushes the photo to the channel and resolves a fetchable URL.
// The upload and the follow-up getFile resolution are retried as one
// unit so a half-uploaded state is never returned. If the channel is
// not configured, unreachable or rejects our credentials, Store falls
// back to an inline data: URL instead of failing the upload.
func (c *Client) Store(ctx context.Context, content []byte, mimeType string) (*StoredPhoto, error) {
	if !c.Configured() {
		log.Println("telegram store not configured, storing photo inline")
		return inlinePhoto(content, mimeType)
	}

	stored, err := retry.Do(ctx, c.retryCfg, "telegram upload", func(ctx context.Context) (*StoredPhoto, error) {
		return c.upload(ctx, content, mimeType)
	})
	if err != nil {
		log.Printf("telegram upload failed, storing photo inline: %v", err)
		return inlinePhoto(content, mimeType)
	}
	return stored, nil
}

// Delete removes the channel message holding the photo. A zero
// messageID (inline mode) and a message that is already gone are both
// treated as success.
func (c *Client) Delete(ctx context.Context, messageID int64) error {
	if messageID == 0 || !c.Configured() {
		return nil
	}

	_, err := retry.Do(ctx, c.retryCfg, "telegram delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.deleteMessage(ctx, messageID)
	})
	return err
}

// apiError is a Bot API response with ok=false.
type apiError struct {
	Status      int
	Description string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("telegram: api error (%d): %s", e.Status, e.Description)
}

func (c *Client) upload(ctx context.Context, content []byte, mimeType string) (*StoredPhoto, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("chat_id", c.channelID); err != nil {
		return nil, err
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo"; filename="photo.png"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendPhoto"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		MessageID int64 `json:"message_id"`
		Photo     []struct {
			FileID   string `json:"file_id"`
			FileSize int64  `json:"file_size"`
		} `json:"photo"`
	}
	if err := c.call(req, &result); err != nil {
		return nil, err
	}
	if len(result.Photo) == 0 {
		return nil, errors.New("telegram: sendPhoto response has no photo sizes")
	}
	// Telegram lists sizes smallest first; keep the largest.
	fileID := result.Photo[len(result.Photo)-1].FileID

	fileURL, err := c.resolveFileURL(ctx, fileID)
	if err != nil {
		return nil, err
	}

	return &StoredPhoto{
		Mode:      ModeExternal,
		FileURL:   fileURL,
		FileID:    fileID,
		MessageID: result.MessageID,
		FileSize:  int64(len(content)),
		MimeType:  mimeType,
	}, nil
}

func (c *Client) resolveFileURL(ctx context.Context, fileID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.methodURL("getFile")+"?file_id="+url.QueryEscape(fileID), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		FilePath string `json:"file_path"`
	}
	if err := c.call(req, &result); err != nil {
		return "", err
	}
	if result.FilePath == "" {
		return "", errors.New("telegram: getFile returned empty file_path")
	}
	return fmt.Sprintf("%s/file/bot%s/%s", c.apiBase, c.botToken, result.FilePath), nil
}

func (c *Client) deleteMessage(ctx context.Context, messageID int64) error {
	form := url.Values{}
	form.Set("chat_id", c.channelID)
	form.Set("message_id", strconv.FormatInt(messageID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.methodURL("deleteMessage"), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	err = c.call(req, &json.RawMessage{})
	var ae *apiError
	if errors.As(err, &ae) && ae.Status == http.StatusBadRequest {
		// "message to delete not found" and friends: idempotent success
		log.Printf("telegram delete: message %d already gone: %s", messageID, ae.Description)
		return nil
	}
	return err
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.botToken, method)
}

// call executes req, decodes the standard Bot API envelope and unwraps
// result into out. Credential errors come back marked permanent so the
// retry loop rethrows them immediately.
func (c *Client) call(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return retry.Permanent(fmt.Errorf("telegram: credentials rejected (%d): %s", resp.StatusCode, raw))
	}

	var envelope struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("telegram: decode response (%d): %w", resp.StatusCode, err)
	}
	if !envelope.OK {
		return &apiError{Status: resp.StatusCode, Description: envelope.Description}
	}
	return json.Unmarshal(envelope.Result, out)
}

// inlinePhoto builds the self-contained fallback representation. It
// only tolerates store unavailability; bad input data here is fatal.
func inlinePhoto(content []byte, mimeType string) (*StoredPhoto, error) {
	if len(content) == 0 {
		return nil, errors.New("inline photo: empty content")
	}
	if mimeType == "" {
		return nil, errors.New("inline photo: missing mime type")
	}
	return &StoredPhoto{
		Mode:     ModeInline,
		FileURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content),
		FileSize: int64(len(content)),
		MimeType: mimeType,
	}, nil
}
