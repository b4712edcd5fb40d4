// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Client implements homework.StatusFetcher against the Practicum homework_statuses endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logrus.Entry
}

func NewClient(httpClient *http.Client, endpoint, token string, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
	}
}

// GetHomeworkStatuses requests homeworks updated since fromDate and returns the decoded JSON body.
func (c *Client) GetHomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	logCtx := c.logger.WithFields(logrus.Fields{"endpoint": c.endpoint, "from_date": fromDate})
	logCtx.Info("Requesting homework statuses")

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q: %v", homework.ErrEndpointUnavailable, c.endpoint, err)
	}
	query := reqURL.Query()
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", homework.ErrEndpointUnavailable, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Endpoint is unreachable")
		return nil, fmt.Errorf("%w: %s: %w", homework.ErrEndpointUnavailable, c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logCtx.WithField("status_code", resp.StatusCode).Error("Unexpected response status")
		return nil, &homework.APIStatusError{StatusCode: resp.StatusCode}
	}

	var body any
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		logCtx.WithError(err).Error("Failed to decode response body")
		return nil, fmt.Errorf("%w: %v", homework.ErrResponseDecode, err)
	}

	logCtx.Debug("Homework statuses received")
	return body, nil
}
