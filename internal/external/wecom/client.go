package wecom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/time/rate"

	"github.com/wonny/putscreener/pkg/config"
	"github.com/wonny/putscreener/pkg/httputil"
	"github.com/wonny/putscreener/pkg/logger"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	placeholderKey  = "xxxx"
)

var (
	// ErrMalformedWebhook means the webhook URL carries no key parameter
	ErrMalformedWebhook = errors.New("webhook url has no key parameter")

	// ErrPlaceholderWebhook means the webhook URL still holds the sample key
	ErrPlaceholderWebhook = errors.New("webhook url contains placeholder key")

	keyPattern = regexp.MustCompile(`key=([^&]+)`)
)

// APIError is a non-zero errcode returned by the robot API
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wecom api error %d: %s", e.Code, e.Message)
}

type apiResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	MediaID string `json:"media_id,omitempty"`
}

// Client talks to a WeCom group robot
// ⭐ SSOT: WeCom 웹훅 호출은 이 클라이언트에서만
type Client struct {
	upload     *httputil.Client
	post       *httputil.Client
	logger     *logger.Logger
	webhookURL string
	uploadURL  string
}

// NewClient creates a robot client. Upload and message requests use separate
// timeouts and share one rate limiter.
func NewClient(cfg config.WeComConfig, log *logger.Logger) *Client {
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60), perMinute)

	return &Client{
		upload:     httputil.New(log, cfg.UploadTimeout).WithRateLimiter(limiter),
		post:       httputil.New(log, cfg.PostTimeout).WithRateLimiter(limiter),
		logger:     log,
		webhookURL: cfg.WebhookURL,
		uploadURL:  cfg.UploadURL,
	}
}

// ExtractKey returns the key query value of a webhook URL
func ExtractKey(webhookURL string) (string, error) {
	m := keyPattern.FindStringSubmatch(webhookURL)
	if m == nil {
		return "", ErrMalformedWebhook
	}
	if strings.Contains(webhookURL, placeholderKey) {
		return "", ErrPlaceholderWebhook
	}
	return m[1], nil
}

// UploadMedia uploads a file as robot media and returns its media id
func (c *Client) UploadMedia(ctx context.Context, path string) (string, error) {
	key, err := ExtractKey(c.webhookURL)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	target := fmt.Sprintf("%s?key=%s&type=file", c.uploadURL, key)
	resp, err := c.upload.PostFile(ctx, target, httputil.FilePart{
		FieldName:   "media",
		FileName:    filepath.Base(path),
		ContentType: xlsxContentType,
		Content:     f,
	})
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}

	result, err := decode(resp)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	if result.MediaID == "" {
		return "", fmt.Errorf("upload media: empty media_id")
	}

	c.logger.WithField("file", filepath.Base(path)).Info("Media uploaded")
	return result.MediaID, nil
}

// SendFile posts a file message referencing an uploaded media id
func (c *Client) SendFile(ctx context.Context, mediaID string) error {
	payload := map[string]interface{}{
		"msgtype": "file",
		"file":    map[string]string{"media_id": mediaID},
	}
	if err := c.send(ctx, payload); err != nil {
		return fmt.Errorf("send file: %w", err)
	}
	return nil
}

// SendMarkdown posts a markdown message
func (c *Client) SendMarkdown(ctx context.Context, content string) error {
	payload := map[string]interface{}{
		"msgtype":  "markdown",
		"markdown": map[string]string{"content": content},
	}
	if err := c.send(ctx, payload); err != nil {
		return fmt.Errorf("send markdown: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, payload interface{}) error {
	resp, err := c.post.PostJSON(ctx, c.webhookURL, payload)
	if err != nil {
		return err
	}
	_, err = decode(resp)
	return err
}

func decode(resp *http.Response) (*apiResponse, error) {
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result apiResponse
	if err := httputil.DecodeJSON(resp, &result); err != nil {
		return nil, err
	}
	if result.ErrCode != 0 {
		return nil, &APIError{Code: result.ErrCode, Message: result.ErrMsg}
	}
	return &result, nil
}
