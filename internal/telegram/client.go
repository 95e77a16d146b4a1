// README: Telegram Bot API client (sendMessage, sendVoice, file download).
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"skybook/internal/types"
)

const defaultBaseURL = "https://api.telegram.org"

// Client talks to the Telegram Bot API over plain HTTP. The four calls the
// bot needs (sendMessage, sendVoice, getFile, file download) do not warrant
// a bot framework; a framework would also bring its own long-polling loop,
// which conflicts with the webhook design.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
}

func NewClient(token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
		baseURL: defaultBaseURL,
	}
}

// apiResponse is the common Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// SendText delivers a text message to the chat identified by userID.
func (c *Client) SendText(ctx context.Context, userID types.ID, text string) error {
	payload, _ := json.Marshal(map[string]string{
		"chat_id": string(userID),
		"text":    text,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req)
	return err
}

// SendVoice delivers an OGG/Opus blob as a voice message.
func (c *Client) SendVoice(ctx context.Context, userID types.ID, voice []byte) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", string(userID)); err != nil {
		return err
	}
	part, err := w.CreateFormFile("voice", "reply.ogg")
	if err != nil {
		return err
	}
	if _, err := part.Write(voice); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/sendVoice", c.baseURL, c.token), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, err = c.do(req)
	return err
}

// DownloadVoice resolves a file_id via getFile and downloads the audio bytes.
func (c *Client) DownloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	payload, _ := json.Marshal(map[string]string{"file_id": fileID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/getFile", c.baseURL, c.token), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	result, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var file struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal(result, &file); err != nil {
		return nil, fmt.Errorf("telegram getFile: decode result: %w", err)
	}
	if file.FilePath == "" {
		return nil, fmt.Errorf("telegram getFile: empty file_path")
	}

	dl, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, file.FilePath), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(dl)
	if err != nil {
		return nil, fmt.Errorf("telegram file download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram file download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("telegram api: decode response: %w", err)
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram api: %s", out.Description)
	}
	return out.Result, nil
}
