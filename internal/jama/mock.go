package jama

import "context"

// MockClient serves a small fixed dataset without any network access. It is
// selected when mock mode is enabled and requires no credentials. Lookups
// for unknown IDs return nil rather than an error, mirroring an empty API
// response.
type MockClient struct{}

var _ Client = (*MockClient)(nil)

// NewMockClient returns a client backed by the canned dataset.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) GetProjects(ctx context.Context) ([]map[string]any, error) {
	return []map[string]any{
		{"id": 1, "name": "Mock Project Alpha", "projectKey": "MPA"},
		{"id": 2, "name": "Mock Project Beta", "projectKey": "MPB"},
	}, nil
}

func (c *MockClient) GetItem(ctx context.Context, itemID string) (map[string]any, error) {
	switch itemID {
	case "123":
		return map[string]any{
			"id":          123,
			"documentKey": "MOCK-1",
			"fields":      map[string]any{"name": "Mock Item 123", "description": "A sample item."},
		}, nil
	case "456":
		return map[string]any{
			"id":          456,
			"documentKey": "MOCK-2",
			"fields":      map[string]any{"name": "Another Mock Item", "description": "Details here."},
		}, nil
	}
	return nil, nil
}

func (c *MockClient) GetItems(ctx context.Context, projectID string) ([]map[string]any, error) {
	switch projectID {
	case "1":
		item, _ := c.GetItem(ctx, "123")
		return []map[string]any{item}, nil
	case "2":
		item, _ := c.GetItem(ctx, "456")
		return []map[string]any{item}, nil
	}
	return []map[string]any{}, nil
}

func (c *MockClient) GetItemChildren(ctx context.Context, itemID string) ([]map[string]any, error) {
	if itemID != "123" {
		return []map[string]any{}, nil
	}
	return []map[string]any{
		{
			"id":          789,
			"documentKey": "MOCK-3",
			"fields":      map[string]any{"name": "Child Item 1", "description": "Child of 123"},
		},
		{
			"id":          790,
			"documentKey": "MOCK-4",
			"fields":      map[string]any{"name": "Child Item 2", "description": "Another child of 123"},
		},
	}, nil
}

func (c *MockClient) GetRelationships(ctx context.Context, projectID string) ([]map[string]any, error) {
	if projectID != "1" {
		return []map[string]any{}, nil
	}
	return []map[string]any{
		{"id": 101, "fromItem": 123, "toItem": 789, "relationshipType": 1},
		{"id": 102, "fromItem": 790, "toItem": 123, "relationshipType": 2},
	}, nil
}

func (c *MockClient) GetRelationship(ctx context.Context, relationshipID string) (map[string]any, error) {
	if relationshipID != "101" {
		return nil, nil
	}
	return map[string]any{"id": 101, "fromItem": 123, "toItem": 789, "relationshipType": 1}, nil
}

func (c *MockClient) GetItemUpstreamRelationships(ctx context.Context, itemID string) ([]map[string]any, error) {
	if itemID != "789" {
		return []map[string]any{}, nil
	}
	rel, _ := c.GetRelationship(ctx, "101")
	return []map[string]any{rel}, nil
}

func (c *MockClient) GetItemDownstreamRelationships(ctx context.Context, itemID string) ([]map[string]any, error) {
	if itemID != "123" {
		return []map[string]any{}, nil
	}
	rel, _ := c.GetRelationship(ctx, "101")
	return []map[string]any{rel}, nil
}

func (c *MockClient) GetItemUpstreamRelated(ctx context.Context, itemID string) ([]map[string]any, error) {
	if itemID != "789" {
		return []map[string]any{}, nil
	}
	item, _ := c.GetItem(ctx, "123")
	return []map[string]any{item}, nil
}

func (c *MockClient) GetItemDownstreamRelated(ctx context.Context, itemID string) ([]map[string]any, error) {
	if itemID != "123" {
		return []map[string]any{}, nil
	}
	// Item 789 is not in the item store, so this list carries a nil entry.
	item, _ := c.GetItem(ctx, "789")
	return []map[string]any{item}, nil
}

func (c *MockClient) GetItemTypes(ctx context.Context) ([]map[string]any, error) {
	return []map[string]any{
		{"id": 10, "name": "Requirement", "typeKey": "REQ"},
		{"id": 11, "name": "Test Case", "typeKey": "TC"},
	}, nil
}

func (c *MockClient) GetItemType(ctx context.Context, itemTypeID string) (map[string]any, error) {
	if itemTypeID != "10" {
		return nil, nil
	}
	return map[string]any{"id": 10, "name": "Requirement", "typeKey": "REQ"}, nil
}

func (c *MockClient) GetPickLists(ctx context.Context) ([]map[string]any, error) {
	return []map[string]any{
		{"id": 20, "name": "Priority"},
		{"id": 21, "name": "Status"},
	}, nil
}

func (c *MockClient) GetPickList(ctx context.Context, pickListID string) (map[string]any, error) {
	if pickListID != "20" {
		return nil, nil
	}
	return map[string]any{"id": 20, "name": "Priority"}, nil
}

func (c *MockClient) GetPickListOptions(ctx context.Context, pickListID string) ([]map[string]any, error) {
	if pickListID != "20" {
		return []map[string]any{}, nil
	}
	return []map[string]any{
		{"id": 201, "name": "High"},
		{"id": 202, "name": "Medium"},
		{"id": 203, "name": "Low"},
	}, nil
}

func (c *MockClient) GetPickListOption(ctx context.Context, optionID string) (map[string]any, error) {
	if optionID != "201" {
		return nil, nil
	}
	return map[string]any{"id": 201, "name": "High"}, nil
}

func (c *MockClient) GetTags(ctx context.Context, projectID string) ([]map[string]any, error) {
	if projectID != "1" {
		return []map[string]any{}, nil
	}
	return []map[string]any{
		{"id": 301, "name": "UI"},
		{"id": 302, "name": "Backend"},
	}, nil
}

func (c *MockClient) GetTaggedItems(ctx context.Context, tagID string) ([]map[string]any, error) {
	if tagID != "301" {
		return []map[string]any{}, nil
	}
	item, _ := c.GetItem(ctx, "123")
	return []map[string]any{item}, nil
}

func (c *MockClient) GetTestCycle(ctx context.Context, testCycleID string) (map[string]any, error) {
	if testCycleID != "501" {
		return nil, nil
	}
	return map[string]any{
		"id":        501,
		"name":      "Cycle 1",
		"startDate": "2025-01-01",
		"endDate":   "2025-01-31",
	}, nil
}

func (c *MockClient) GetTestRuns(ctx context.Context, testCycleID string) ([]map[string]any, error) {
	if testCycleID != "501" {
		return []map[string]any{}, nil
	}
	return []map[string]any{
		{"id": 601, "name": "Run 1", "status": "PASSED"},
		{"id": 602, "name": "Run 2", "status": "FAILED"},
	}, nil
}

func (c *MockClient) GetAvailableEndpoints(ctx context.Context) (map[string]any, error) {
	return map[string]any{
		"data": []map[string]any{
			{"path": "/mock", "method": "GET"},
		},
	}, nil
}

func (c *MockClient) PostItem(ctx context.Context, project, itemTypeID, childItemTypeID int, location, fields map[string]any) (int, error) {
	return 123, nil
}

func (c *MockClient) PostTag(ctx context.Context, name string, project int) (int, error) {
	return 301, nil
}

func (c *MockClient) PostItemTag(ctx context.Context, itemID, tagID int) (int, error) {
	return 201, nil
}

func (c *MockClient) PutItem(ctx context.Context, project, itemID, itemTypeID, childItemTypeID int, location, fields map[string]any) (int, error) {
	return 200, nil
}

func (c *MockClient) PostProject(ctx context.Context, name, projectKey string, itemTypeID int) (map[string]any, error) {
	return map[string]any{
		"id":         3,
		"projectKey": projectKey,
		"fields":     map[string]any{"name": name},
	}, nil
}

func (c *MockClient) PostRelationship(ctx context.Context, fromItem, toItem int) (map[string]any, error) {
	return map[string]any{
		"id":       103,
		"fromItem": fromItem,
		"toItem":   toItem,
	}, nil
}
