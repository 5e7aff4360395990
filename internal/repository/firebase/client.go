package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/config"
	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ErrNotConfigured indicates the database URL is missing.
var ErrNotConfigured = errors.New("firebase database url not configured")

// Collection paths read for a dashboard snapshot.
const (
	PathDepartments    = "departments"
	PathPatient        = "patient"
	PathPatientsLegacy = "patients"
	PathBilling        = "billing"
)

// Reader reads JSON trees from the realtime database by path.
type Reader interface {
	Get(ctx context.Context, path string) (map[string]any, error)
	FetchSnapshot(ctx context.Context) (models.SourceSnapshot, error)
}

var _ Reader = (*Client)(nil)

// Client is a resty-backed realtime database REST client.
type Client struct {
	httpClient *resty.Client
	authToken  string
	logger     *zap.Logger
}

// NewClient builds a client against cfg.DatabaseURL.
func NewClient(cfg config.FirebaseConfig, logger *zap.Logger) (*Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.DatabaseURL, "/")).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}

	return &Client{
		httpClient: restyClient,
		authToken:  cfg.AuthToken,
		logger:     logger,
	}, nil
}

// apiError mirrors the realtime database error payload.
type apiError struct {
	Error string `json:"error"`
}

// Get returns the object stored at path. A path holding nothing yields an empty map.
func (c *Client) Get(ctx context.Context, path string) (map[string]any, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("path must not be empty")
	}

	req := c.httpClient.R().SetContext(ctx)
	if c.authToken != "" {
		req.SetQueryParam("auth", c.authToken)
	}

	resp, err := req.Get("/" + path + ".json")
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		var apiErr apiError
		_ = json.Unmarshal(resp.Body(), &apiErr)
		return nil, fmt.Errorf("firebase api error: path=%s, code=%d, message=%s", path, resp.StatusCode(), apiErr.Error)
	}

	tree, err := decodeTree(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	c.logger.Debug("path fetched", zap.String("path", path), zap.Int("records", len(tree)))
	return tree, nil
}

// FetchSnapshot reads the departments, patient and billing collections.
// The legacy "patients" path is read when "patient" holds nothing.
func (c *Client) FetchSnapshot(ctx context.Context) (models.SourceSnapshot, error) {
	departments, err := c.Get(ctx, PathDepartments)
	if err != nil {
		return models.SourceSnapshot{}, err
	}

	patients, err := c.Get(ctx, PathPatient)
	if err != nil {
		return models.SourceSnapshot{}, err
	}
	if len(patients) == 0 {
		if patients, err = c.Get(ctx, PathPatientsLegacy); err != nil {
			return models.SourceSnapshot{}, err
		}
	}

	billing, err := c.Get(ctx, PathBilling)
	if err != nil {
		return models.SourceSnapshot{}, err
	}

	return models.SourceSnapshot{
		Departments: departments,
		Patients:    patients,
		Billing:     billing,
	}, nil
}

// decodeTree converts a response body into a keyed tree. Arrays become
// index-keyed maps without their null holes.
func decodeTree(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case []any:
		tree := make(map[string]any, len(v))
		for i, item := range v {
			if item != nil {
				tree[strconv.Itoa(i)] = item
			}
		}
		return tree, nil
	default:
		return nil, fmt.Errorf("expected object, got %T", raw)
	}
}
