package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/robocorp/robocorp-planhat/internal/constants"
	"github.com/robocorp/robocorp-planhat/internal/http"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// ObjectsClient implements planhat.ObjectsClient.
type ObjectsClient struct {
	httpClient *http.Client
	cache      *planhat.CacheManager
}

// NewObjectsClient creates a new objects client.
func NewObjectsClient(httpClient *http.Client, cache *planhat.CacheManager) *ObjectsClient {
	return &ObjectsClient{
		httpClient: httpClient,
		cache:      cache,
	}
}

// List implements planhat.ObjectsClient.List.
//
// Full-kind retrievals (no company filter, no field selection) are served
// from the cache when possible. Filtered retrievals always go to the API:
// the cache holds whole kinds only, and partial objects from a "select"
// query must never shadow complete ones.
func (c *ObjectsClient) List(ctx context.Context, kind planhat.Kind, opts *planhat.ListOptions) (*planhat.ObjectList, error) {
	if opts == nil {
		opts = &planhat.ListOptions{}
	}

	if len(opts.CompanyIDs) == 0 && len(opts.Properties) == 0 {
		return c.listAll(ctx, kind, opts.PageLimit)
	}

	list, err := c.listViaAPI(ctx, kind, opts)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// listAll retrieves every object of a kind, consulting the cache first.
func (c *ObjectsClient) listAll(ctx context.Context, kind planhat.Kind, pageLimit int) (*planhat.ObjectList, error) {
	key, err := c.kindCacheKey(kind)
	if err != nil {
		return nil, err
	}

	data, cacheErr := c.cache.Get(ctx, key)
	if cacheErr == nil {
		return decodeCachedList(kind, data)
	}

	list, err := c.listViaAPI(ctx, kind, &planhat.ListOptions{PageLimit: pageLimit})
	if err != nil {
		return nil, err
	}

	c.storeKindList(ctx, key, list)

	return list, nil
}

// listViaAPI pages through the kind endpoint. Long company ID sets are
// split so the joined companyId parameter stays under the API's limit.
func (c *ObjectsClient) listViaAPI(ctx context.Context, kind planhat.Kind, opts *planhat.ListOptions) (*planhat.ObjectList, error) {
	path, err := kind.URLPath()
	if err != nil {
		return nil, err
	}

	if summedLength(opts.CompanyIDs) > constants.MaxCompanyIDsLength {
		return c.listInCompanyBatches(ctx, kind, opts)
	}

	limit := opts.PageLimit
	if limit <= 0 {
		limit = kind.PageLimit()
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	if len(opts.CompanyIDs) > 0 {
		query.Set("companyId", strings.Join(opts.CompanyIDs, ","))
	}

	if len(opts.Properties) > 0 {
		query.Set("select", strings.Join(opts.Properties, ","))
	}

	result := planhat.ObjectsFromData(kind, nil)

	for page := 0; page < constants.MaxPages; page++ {
		query.Set("offset", strconv.Itoa(page*limit))

		resp, err := c.httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", kind.Plural(), err)
		}

		found, err := planhat.ListFromResponse(kind, resp)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", kind.Plural(), err)
		}

		err = result.Extend(found.Objects()...)
		if err != nil {
			return nil, err
		}

		if found.Len() < limit {
			break
		}
	}

	return result, nil
}

// listInCompanyBatches splits the company ID set into groups whose summed
// length fits one query parameter, and merges the per-group results.
func (c *ObjectsClient) listInCompanyBatches(ctx context.Context, kind planhat.Kind, opts *planhat.ListOptions) (*planhat.ObjectList, error) {
	result := planhat.ObjectsFromData(kind, nil)

	var (
		batch       []string
		batchLength int
	)

	flush := func(ids []string) error {
		list, err := c.listViaAPI(ctx, kind, &planhat.ListOptions{
			CompanyIDs: ids,
			Properties: opts.Properties,
			PageLimit:  opts.PageLimit,
		})
		if err != nil {
			return err
		}

		return result.Extend(list.Objects()...)
	}

	for _, id := range opts.CompanyIDs {
		batchLength += len(id)
		if batchLength > constants.MaxCompanyIDsLength {
			err := flush(batch)
			if err != nil {
				return nil, err
			}

			batch = nil
			batchLength = len(id)
		}

		batch = append(batch, id)
	}

	if len(batch) > 0 {
		err := flush(batch)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Get implements planhat.ObjectsClient.Get. A cached full-kind list is
// consulted before the API.
func (c *ObjectsClient) Get(ctx context.Context, kind planhat.Kind, id string, idType planhat.IDType) (*planhat.Object, error) {
	if !idType.Valid() {
		return nil, fmt.Errorf("%w: %q", planhat.ErrInvalidIDType, idType)
	}

	if key, err := c.kindCacheKey(kind); err == nil {
		if data, cacheErr := c.cache.Get(ctx, key); cacheErr == nil {
			cached, decodeErr := decodeCachedList(kind, data)
			if decodeErr == nil {
				obj, findErr := cached.FindByIDType(id, idType)
				if findErr == nil {
					return obj, nil
				}
			}
		}
	}

	base, err := kind.URLPath()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, base+"/"+idType.Apply(id), nil)
	if err != nil {
		if planhat.IsNotFound(err) {
			return nil, &planhat.NotFoundError{Kind: kind, IDType: idType, ID: id}
		}

		return nil, fmt.Errorf("getting %s: %w", kind.Singular(), err)
	}

	obj, err := planhat.ObjectFromResponse(kind, resp)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", kind.Singular(), err)
	}

	return obj, nil
}

// Create implements planhat.ObjectsClient.Create.
func (c *ObjectsClient) Create(ctx context.Context, obj *planhat.Object) (*planhat.Object, error) {
	path, err := obj.Kind().URLPath()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, obj)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", obj.Kind().Singular(), err)
	}

	c.invalidateKind(ctx, obj.Kind())

	created, err := planhat.ObjectFromResponse(obj.Kind(), resp)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", obj.Kind().Singular(), err)
	}

	return created, nil
}

// Update implements planhat.ObjectsClient.Update. The object is addressed
// by its first populated identity field.
func (c *ObjectsClient) Update(ctx context.Context, obj *planhat.Object) (*planhat.Object, error) {
	path, err := obj.URLPath(planhat.PlanhatID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, path, obj)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", obj.Kind().Singular(), err)
	}

	c.invalidateKind(ctx, obj.Kind())

	updated, err := planhat.ObjectFromResponse(obj.Kind(), resp)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", obj.Kind().Singular(), err)
	}

	return updated, nil
}

// Delete implements planhat.ObjectsClient.Delete.
func (c *ObjectsClient) Delete(ctx context.Context, obj *planhat.Object) error {
	path, err := obj.URLPath(planhat.PlanhatID)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", obj.Kind().Singular(), err)
	}

	c.invalidateKind(ctx, obj.Kind())

	return nil
}

// BulkUpsert implements planhat.ObjectsClient.BulkUpsert.
func (c *ObjectsClient) BulkUpsert(ctx context.Context, list *planhat.ObjectList) ([]planhat.BulkUpsertResult, error) {
	path, err := list.URLPath()
	if err != nil {
		return nil, err
	}

	var results []planhat.BulkUpsertResult

	// Once a batch has gone out the remote may differ from any cached
	// list, so the kind is invalidated even when a later batch fails.
	sent := false

	defer func() {
		if sent {
			c.invalidateKind(ctx, list.Kind())
		}
	}()

	for from := 0; from < list.Len(); from += constants.BulkUpsertBatchSize {
		to := from + constants.BulkUpsertBatchSize
		if to > list.Len() {
			to = list.Len()
		}

		sent = true

		resp, err := c.httpClient.Put(ctx, path, list.Slice(from, to))
		if err != nil {
			return results, fmt.Errorf("upserting %s: %w", list.Kind().Plural(), err)
		}

		var result planhat.BulkUpsertResult

		err = json.Unmarshal(resp.Body, &result)
		if err != nil {
			return results, fmt.Errorf("parsing upsert response: %w", err)
		}

		results = append(results, result)
	}

	return results, nil
}

// FindMissing implements planhat.ObjectsClient.FindMissing.
func (c *ObjectsClient) FindMissing(ctx context.Context, list *planhat.ObjectList) (*planhat.ObjectList, error) {
	kind := list.Kind()
	if kind == "" {
		return nil, planhat.ErrUntypedList
	}

	existing, err := c.listAll(ctx, kind, 0)
	if err != nil {
		return nil, err
	}

	missing := planhat.ObjectsFromData(kind, nil)

	for _, obj := range list.Objects() {
		found, err := existing.Contains(obj)
		if err != nil {
			return nil, err
		}

		if !found {
			err = missing.Append(obj)
			if err != nil {
				return nil, err
			}
		}
	}

	return missing, nil
}

func (c *ObjectsClient) kindCacheKey(kind planhat.Kind) (string, error) {
	path, err := kind.URLPath()
	if err != nil {
		return "", err
	}

	return c.cache.GetCacheKey("GET", path, nil), nil
}

// storeKindList caches a full-kind list when the policy allows it. Cache
// failures only cost future hits, so they are not surfaced.
func (c *ObjectsClient) storeKindList(ctx context.Context, key string, list *planhat.ObjectList) {
	path, err := list.URLPath()
	if err != nil {
		return
	}

	if !c.cache.Policy().ShouldCache("GET", path, 200) {
		return
	}

	data, err := list.Encode()
	if err != nil {
		return
	}

	_ = c.cache.Set(ctx, key, data, 0)
}

func (c *ObjectsClient) invalidateKind(ctx context.Context, kind planhat.Kind) {
	key, err := c.kindCacheKey(kind)
	if err != nil {
		return
	}

	_ = c.cache.Delete(ctx, key)
}

func decodeCachedList(kind planhat.Kind, data []byte) (*planhat.ObjectList, error) {
	var raw []map[string]any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding cached %s list: %w", kind.Singular(), err)
	}

	return planhat.ObjectsFromData(kind, raw), nil
}

func summedLength(ids []string) int {
	total := 0
	for _, id := range ids {
		total += len(id)
	}

	return total
}
