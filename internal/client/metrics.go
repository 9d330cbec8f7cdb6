package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/robocorp/robocorp-planhat/internal/constants"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// MetricsClient implements planhat.MetricsClient.
type MetricsClient struct {
	objects *ObjectsClient
}

// NewMetricsClient creates a new metrics client.
func NewMetricsClient(objects *ObjectsClient) *MetricsClient {
	return &MetricsClient{objects: objects}
}

// DimensionData implements planhat.MetricsClient.DimensionData. Day
// bounds go on the wire as days since the Unix epoch.
func (c *MetricsClient) DimensionData(ctx context.Context, opts *planhat.DimensionDataOptions) (*planhat.ObjectList, error) {
	if opts == nil {
		opts = &planhat.DimensionDataOptions{}
	}

	path, err := planhat.KindMetric.URLPath()
	if err != nil {
		return nil, err
	}

	query := url.Values{}

	if opts.CompanyID != "" {
		query.Set("cId", opts.CompanyID)
	}

	if opts.DimensionID != "" {
		query.Set("dimid", opts.DimensionID)
	}

	if !opts.From.IsZero() {
		query.Set("from", strconv.Itoa(planhat.EpochDays(opts.From)))
	}

	if !opts.To.IsZero() {
		query.Set("to", strconv.Itoa(planhat.EpochDays(opts.To)))
	}

	limit := constants.DefaultPageLimit
	if opts.MaxLength > 0 && opts.MaxLength < limit {
		limit = opts.MaxLength
	}

	result := planhat.ObjectsFromData(planhat.KindMetric, nil)

	for offset := 0; ; offset += limit {
		if opts.MaxLength > 0 {
			remaining := opts.MaxLength - result.Len()
			if remaining <= 0 {
				break
			}

			if remaining < limit {
				limit = remaining
			}
		}

		query.Set("limit", strconv.Itoa(limit))
		query.Set("offset", strconv.Itoa(offset))

		resp, err := c.objects.httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, fmt.Errorf("getting dimension data: %w", err)
		}

		fetched, err := planhat.ListFromResponse(planhat.KindMetric, resp)
		if err != nil {
			return nil, fmt.Errorf("getting dimension data: %w", err)
		}

		if fetched.Len() == 0 {
			break
		}

		err = result.Extend(fetched.Objects()...)
		if err != nil {
			return nil, err
		}

		if fetched.Len() < limit {
			break
		}
	}

	return result, nil
}
