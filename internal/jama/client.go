package jama

import (
	"context"
)

// Client is the operation set the MCP tools need from Jama Connect.
// Implementations must be safe for concurrent use; the server constructs a
// single client at startup and shares it, read-only, across all tool
// handlers for the process lifetime.
type Client interface {
	// Read operations. Single-object getters return (nil, nil) when the
	// implementation represents "not found" as an absent result (the mock
	// does); the REST client returns an *APIError instead.
	GetProjects(ctx context.Context) ([]map[string]any, error)
	GetItem(ctx context.Context, itemID string) (map[string]any, error)
	GetItems(ctx context.Context, projectID string) ([]map[string]any, error)
	GetItemChildren(ctx context.Context, itemID string) ([]map[string]any, error)
	GetRelationships(ctx context.Context, projectID string) ([]map[string]any, error)
	GetRelationship(ctx context.Context, relationshipID string) (map[string]any, error)
	GetItemUpstreamRelationships(ctx context.Context, itemID string) ([]map[string]any, error)
	GetItemDownstreamRelationships(ctx context.Context, itemID string) ([]map[string]any, error)
	GetItemUpstreamRelated(ctx context.Context, itemID string) ([]map[string]any, error)
	GetItemDownstreamRelated(ctx context.Context, itemID string) ([]map[string]any, error)
	GetItemTypes(ctx context.Context) ([]map[string]any, error)
	GetItemType(ctx context.Context, itemTypeID string) (map[string]any, error)
	GetPickLists(ctx context.Context) ([]map[string]any, error)
	GetPickList(ctx context.Context, pickListID string) (map[string]any, error)
	GetPickListOptions(ctx context.Context, pickListID string) ([]map[string]any, error)
	GetPickListOption(ctx context.Context, optionID string) (map[string]any, error)
	GetTags(ctx context.Context, projectID string) ([]map[string]any, error)
	GetTaggedItems(ctx context.Context, tagID string) ([]map[string]any, error)
	GetTestCycle(ctx context.Context, testCycleID string) (map[string]any, error)
	GetTestRuns(ctx context.Context, testCycleID string) ([]map[string]any, error)
	GetAvailableEndpoints(ctx context.Context) (map[string]any, error)

	// Write operations.
	PostItem(ctx context.Context, project, itemTypeID, childItemTypeID int, location, fields map[string]any) (int, error)
	PostTag(ctx context.Context, name string, project int) (int, error)
	PostItemTag(ctx context.Context, itemID, tagID int) (int, error)
	PutItem(ctx context.Context, project, itemID, itemTypeID, childItemTypeID int, location, fields map[string]any) (int, error)
	PostProject(ctx context.Context, name, projectKey string, itemTypeID int) (map[string]any, error)
	PostRelationship(ctx context.Context, fromItem, toItem int) (map[string]any, error)
}
