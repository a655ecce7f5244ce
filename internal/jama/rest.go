package jama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2/clientcredentials"

	"jamamcp/internal/auth"
	"jamamcp/internal/instrumentation"
)

// maxPageSize is the page size requested from Jama list endpoints.
// Jama caps maxResults at 50 per page.
const maxPageSize = 50

// APIError describes a non-2xx response from the Jama REST API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("jama API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("jama API error (status %d)", e.StatusCode)
}

// RESTClient talks to a Jama Connect instance over its REST v1 API using an
// OAuth client-credential token. It holds no per-request state and is safe
// for concurrent use.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient constructs a client for the Jama instance at baseURL.
// The token exchange against {baseURL}/rest/oauth/token is deferred until
// the first API call; construction never touches the network.
func NewRESTClient(ctx context.Context, baseURL string, creds auth.Credentials) *RESTClient {
	base := strings.TrimRight(baseURL, "/")

	oauthCfg := clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     base + "/rest/oauth/token",
	}

	return &RESTClient{
		baseURL:    base + "/rest/v1",
		httpClient: oauthCfg.Client(ctx),
	}
}

// envelope is the standard Jama response wrapper.
type envelope struct {
	Meta struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		ID       int    `json:"id"`
		PageInfo struct {
			StartIndex   int `json:"startIndex"`
			ResultCount  int `json:"resultCount"`
			TotalResults int `json:"totalResults"`
		} `json:"pageInfo"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body any) (env *envelope, err error) {
	// The span is named after the HTTP method; the path goes into an
	// attribute to keep span-name cardinality bounded.
	ctx, span := instrumentation.StartJamaAPISpan(ctx, strings.ToLower(method),
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)
	defer func() {
		if err != nil {
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		span.End()
	}()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	var decoded envelope
	if len(raw) > 0 {
		// Some mutating endpoints return an empty body; tolerate it.
		if err := json.Unmarshal(raw, &decoded); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: decoded.Meta.Message}
	}

	decoded.Meta.Status = fmt.Sprintf("%d", resp.StatusCode)
	return &decoded, nil
}

// getObject fetches a single resource and decodes its data member.
func (c *RESTClient) getObject(ctx context.Context, path string) (map[string]any, error) {
	env, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(env.Data, &obj); err != nil {
		return nil, fmt.Errorf("decoding %s data: %w", path, err)
	}
	return obj, nil
}

// getList fetches every page of a collection resource.
func (c *RESTClient) getList(ctx context.Context, path string, query url.Values) ([]map[string]any, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("maxResults", fmt.Sprintf("%d", maxPageSize))

	var results []map[string]any
	startAt := 0
	for {
		query.Set("startAt", fmt.Sprintf("%d", startAt))

		env, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}

		var page []map[string]any
		if err := json.Unmarshal(env.Data, &page); err != nil {
			return nil, fmt.Errorf("decoding %s data: %w", path, err)
		}
		results = append(results, page...)

		info := env.Meta.PageInfo
		if info.ResultCount == 0 || len(results) >= info.TotalResults {
			return results, nil
		}
		startAt += info.ResultCount
	}
}

// postForID issues a mutating request and returns the created resource ID
// from the response meta, or the HTTP status when no ID is present.
func (c *RESTClient) postForID(ctx context.Context, method, path string, body any) (int, error) {
	env, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return 0, err
	}
	if env.Meta.ID != 0 {
		return env.Meta.ID, nil
	}
	var status int
	fmt.Sscanf(env.Meta.Status, "%d", &status)
	return status, nil
}

func (c *RESTClient) GetProjects(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, "/projects", nil)
}

func (c *RESTClient) GetItem(ctx context.Context, itemID string) (map[string]any, error) {
	return c.getObject(ctx, "/items/"+url.PathEscape(itemID))
}

func (c *RESTClient) GetItems(ctx context.Context, projectID string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("project", projectID)
	return c.getList(ctx, "/items", query)
}

func (c *RESTClient) GetItemChildren(ctx context.Context, itemID string) ([]map[string]any, error) {
	return c.getList(ctx, "/items/"+url.PathEscape(itemID)+"/children", nil)
}

func (c *RESTClient) GetRelationships(ctx context.Context, projectID string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("project", projectID)
	return c.getList(ctx, "/relationships", query)
}

func (c *RESTClient) GetRelationship(ctx context.Context, relationshipID string) (map[string]any, error) {
	return c.getObject(ctx, "/relationships/"+url.PathEscape(relationshipID))
}

func (c *RESTClient) GetItemUpstreamRelationships(ctx context.Context, itemID string) ([]map[string]any, error) {
	return c.getList(ctx, "/items/"+url.PathEscape(itemID)+"/upstreamrelationships", nil)
}

func (c *RESTClient) GetItemDownstreamRelationships(ctx context.Context, itemID string) ([]map[string]any, error) {
	return c.getList(ctx, "/items/"+url.PathEscape(itemID)+"/downstreamrelationships", nil)
}

func (c *RESTClient) GetItemUpstreamRelated(ctx context.Context, itemID string) ([]map[string]any, error) {
	return c.getList(ctx, "/items/"+url.PathEscape(itemID)+"/upstreamrelated", nil)
}

func (c *RESTClient) GetItemDownstreamRelated(ctx context.Context, itemID string) ([]map[string]any, error) {
	return c.getList(ctx, "/items/"+url.PathEscape(itemID)+"/downstreamrelated", nil)
}

func (c *RESTClient) GetItemTypes(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, "/itemtypes", nil)
}

func (c *RESTClient) GetItemType(ctx context.Context, itemTypeID string) (map[string]any, error) {
	return c.getObject(ctx, "/itemtypes/"+url.PathEscape(itemTypeID))
}

func (c *RESTClient) GetPickLists(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, "/picklists", nil)
}

func (c *RESTClient) GetPickList(ctx context.Context, pickListID string) (map[string]any, error) {
	return c.getObject(ctx, "/picklists/"+url.PathEscape(pickListID))
}

func (c *RESTClient) GetPickListOptions(ctx context.Context, pickListID string) ([]map[string]any, error) {
	return c.getList(ctx, "/picklists/"+url.PathEscape(pickListID)+"/options", nil)
}

func (c *RESTClient) GetPickListOption(ctx context.Context, optionID string) (map[string]any, error) {
	return c.getObject(ctx, "/picklistoptions/"+url.PathEscape(optionID))
}

func (c *RESTClient) GetTags(ctx context.Context, projectID string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("project", projectID)
	return c.getList(ctx, "/tags", query)
}

func (c *RESTClient) GetTaggedItems(ctx context.Context, tagID string) ([]map[string]any, error) {
	return c.getList(ctx, "/tags/"+url.PathEscape(tagID)+"/items", nil)
}

func (c *RESTClient) GetTestCycle(ctx context.Context, testCycleID string) (map[string]any, error) {
	return c.getObject(ctx, "/testcycles/"+url.PathEscape(testCycleID))
}

func (c *RESTClient) GetTestRuns(ctx context.Context, testCycleID string) ([]map[string]any, error) {
	return c.getList(ctx, "/testcycles/"+url.PathEscape(testCycleID)+"/testruns", nil)
}

func (c *RESTClient) GetAvailableEndpoints(ctx context.Context) (map[string]any, error) {
	env, err := c.do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return nil, err
	}

	var endpoints []map[string]any
	if err := json.Unmarshal(env.Data, &endpoints); err != nil {
		return nil, fmt.Errorf("decoding endpoint list: %w", err)
	}
	return map[string]any{"data": endpoints}, nil
}

func (c *RESTClient) PostItem(ctx context.Context, project, itemTypeID, childItemTypeID int, location, fields map[string]any) (int, error) {
	body := map[string]any{
		"project":  project,
		"itemType": itemTypeID,
		"location": map[string]any{"parent": location},
		"fields":   fields,
	}
	if childItemTypeID != 0 {
		body["childItemType"] = childItemTypeID
	}
	return c.postForID(ctx, http.MethodPost, "/items", body)
}

func (c *RESTClient) PostTag(ctx context.Context, name string, project int) (int, error) {
	return c.postForID(ctx, http.MethodPost, "/tags", map[string]any{
		"name":    name,
		"project": project,
	})
}

func (c *RESTClient) PostItemTag(ctx context.Context, itemID, tagID int) (int, error) {
	return c.postForID(ctx, http.MethodPost, fmt.Sprintf("/items/%d/tags", itemID), map[string]any{
		"tag": tagID,
	})
}

func (c *RESTClient) PutItem(ctx context.Context, project, itemID, itemTypeID, childItemTypeID int, location, fields map[string]any) (int, error) {
	body := map[string]any{
		"project":  project,
		"itemType": itemTypeID,
		"location": map[string]any{"parent": location},
		"fields":   fields,
	}
	if childItemTypeID != 0 {
		body["childItemType"] = childItemTypeID
	}
	return c.postForID(ctx, http.MethodPut, fmt.Sprintf("/items/%d", itemID), body)
}

func (c *RESTClient) PostProject(ctx context.Context, name, projectKey string, itemTypeID int) (map[string]any, error) {
	id, err := c.postForID(ctx, http.MethodPost, "/projects", map[string]any{
		"projectKey": projectKey,
		"itemType":   itemTypeID,
		"fields":     map[string]any{"name": name},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":         id,
		"projectKey": projectKey,
		"fields":     map[string]any{"name": name},
	}, nil
}

func (c *RESTClient) PostRelationship(ctx context.Context, fromItem, toItem int) (map[string]any, error) {
	id, err := c.postForID(ctx, http.MethodPost, "/relationships", map[string]any{
		"fromItem": fromItem,
		"toItem":   toItem,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":       id,
		"fromItem": fromItem,
		"toItem":   toItem,
	}, nil
}
