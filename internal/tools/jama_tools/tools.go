package jama_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"jamamcp/internal/instrumentation"
	"jamamcp/internal/server"
	"jamamcp/internal/tools/batch"
	"jamamcp/internal/tools/common"
)

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

// intArg extracts a required integer argument. JSON numbers arrive as
// float64 over the wire.
func intArg(args map[string]interface{}, name string) (int, error) {
	switch v := args[name].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	}
	return 0, fmt.Errorf("%s is required and must be a number", name)
}

// optionalIntArg extracts an optional integer argument, returning 0 when
// absent.
func optionalIntArg(args map[string]interface{}, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// optionalMapArg extracts an optional object argument.
func optionalMapArg(args map[string]interface{}, name string) map[string]interface{} {
	if v, ok := args[name].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// jsonResult marshals a value as indented JSON for the tool result.
// Jama API payloads are plain maps, so marshaling cannot realistically
// fail, but a failure still must not crash the handler.
func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// RegisterJamaTools registers all Jama tools with the MCP server. Write
// tools are skipped in read-only mode.
func RegisterJamaTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerProjectTools(s, sc); err != nil {
		return fmt.Errorf("failed to register project tools: %w", err)
	}
	if err := registerItemTools(s, sc); err != nil {
		return fmt.Errorf("failed to register item tools: %w", err)
	}
	if err := registerRelationshipTools(s, sc); err != nil {
		return fmt.Errorf("failed to register relationship tools: %w", err)
	}
	if err := registerMetadataTools(s, sc); err != nil {
		return fmt.Errorf("failed to register metadata tools: %w", err)
	}
	if err := registerTagTools(s, sc); err != nil {
		return fmt.Errorf("failed to register tag tools: %w", err)
	}
	if err := registerTestManagementTools(s, sc); err != nil {
		return fmt.Errorf("failed to register test management tools: %w", err)
	}
	if err := registerConnectionTools(s, sc); err != nil {
		return fmt.Errorf("failed to register connection tools: %w", err)
	}

	if !readOnly {
		if err := registerWriteTools(s, sc); err != nil {
			return fmt.Errorf("failed to register write tools: %w", err)
		}
	}

	return nil
}

// registerProjectTools registers project browsing tools
func registerProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getProjectsTool := mcp.NewTool("get_jama_projects",
		mcp.WithDescription("Retrieve a list of all projects in Jama Connect"),
	)

	s.AddTool(getProjectsTool, common.InstrumentedToolHandlerWithOperation("get_jama_projects", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projects, err := sc.JamaClient().GetProjects(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get projects: %v", err)), nil
			}
			return jsonResult(projects), nil
		}))

	getItemsTool := mcp.NewTool("get_jama_project_items",
		mcp.WithDescription("Retrieve items in a Jama Connect project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project to fetch items for"),
		),
	)

	s.AddTool(getItemsTool, common.InstrumentedToolHandlerWithOperation("get_jama_project_items", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			projectID, err := stringArg(args, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			items, err := sc.JamaClient().GetItems(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get items: %v", err)), nil
			}
			return jsonResult(items), nil
		}))

	return nil
}

// registerItemTools registers single-item browsing tools
func registerItemTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getItemTool := mcp.NewTool("get_jama_item",
		mcp.WithDescription("Retrieve a single item from Jama Connect by its ID"),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item to retrieve"),
		),
	)

	s.AddTool(getItemTool, common.InstrumentedToolHandlerWithOperation("get_jama_item", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			itemID, err := stringArg(args, "item_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			item, err := sc.JamaClient().GetItem(ctx, itemID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get item: %v", err)), nil
			}
			return jsonResult(item), nil
		}))

	getChildrenTool := mcp.NewTool("get_jama_item_children",
		mcp.WithDescription("Retrieve the direct children of a Jama Connect item"),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("The ID of the parent item"),
		),
	)

	s.AddTool(getChildrenTool, common.InstrumentedToolHandlerWithOperation("get_jama_item_children", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			itemID, err := stringArg(args, "item_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			children, err := sc.JamaClient().GetItemChildren(ctx, itemID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get item children: %v", err)), nil
			}
			return jsonResult(children), nil
		}))

	getItemsByIDTool := mcp.NewTool("get_jama_items_by_id",
		mcp.WithDescription("Retrieve multiple items by ID in one call. Accepts a single ID or an array of IDs; failures are reported per item."),
		mcp.WithString("item_ids",
			mcp.Required(),
			mcp.Description("An item ID, or an array of item IDs"),
		),
	)

	s.AddTool(getItemsByIDTool, common.InstrumentedToolHandlerWithOperation("get_jama_items_by_id", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			itemIDs, err := batch.ParseStringOrArray(args["item_ids"], "item_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(itemIDs, func(id string) (string, error) {
				item, err := sc.JamaClient().GetItem(ctx, id)
				if err != nil {
					return "", err
				}
				data, err := json.Marshal(item)
				if err != nil {
					return "", err
				}
				return string(data), nil
			})
			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		}))

	return nil
}

// registerRelationshipTools registers relationship traversal tools
func registerRelationshipTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getRelationshipsTool := mcp.NewTool("get_jama_relationships",
		mcp.WithDescription("Retrieve all relationships in a Jama Connect project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
	)

	s.AddTool(getRelationshipsTool, common.InstrumentedToolHandlerWithOperation("get_jama_relationships", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			projectID, err := stringArg(args, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			relationships, err := sc.JamaClient().GetRelationships(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get relationships: %v", err)), nil
			}
			return jsonResult(relationships), nil
		}))

	getRelationshipTool := mcp.NewTool("get_jama_relationship",
		mcp.WithDescription("Retrieve a single relationship by its ID"),
		mcp.WithString("relationship_id",
			mcp.Required(),
			mcp.Description("The ID of the relationship"),
		),
	)

	s.AddTool(getRelationshipTool, common.InstrumentedToolHandlerWithOperation("get_jama_relationship", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			relationshipID, err := stringArg(args, "relationship_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			relationship, err := sc.JamaClient().GetRelationship(ctx, relationshipID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get relationship: %v", err)), nil
			}
			return jsonResult(relationship), nil
		}))

	// The four directional traversals share the same shape: one item ID in,
	// a list out.
	type traversal struct {
		name        string
		description string
		call        func(ctx context.Context, itemID string) ([]map[string]interface{}, error)
	}

	traversals := []traversal{
		{
			name:        "get_jama_item_upstream_relationships",
			description: "Retrieve the upstream relationships of an item",
			call: func(ctx context.Context, itemID string) ([]map[string]interface{}, error) {
				return sc.JamaClient().GetItemUpstreamRelationships(ctx, itemID)
			},
		},
		{
			name:        "get_jama_item_downstream_relationships",
			description: "Retrieve the downstream relationships of an item",
			call: func(ctx context.Context, itemID string) ([]map[string]interface{}, error) {
				return sc.JamaClient().GetItemDownstreamRelationships(ctx, itemID)
			},
		},
		{
			name:        "get_jama_item_upstream_related",
			description: "Retrieve the items upstream-related to an item",
			call: func(ctx context.Context, itemID string) ([]map[string]interface{}, error) {
				return sc.JamaClient().GetItemUpstreamRelated(ctx, itemID)
			},
		},
		{
			name:        "get_jama_item_downstream_related",
			description: "Retrieve the items downstream-related to an item",
			call: func(ctx context.Context, itemID string) ([]map[string]interface{}, error) {
				return sc.JamaClient().GetItemDownstreamRelated(ctx, itemID)
			},
		},
	}

	for _, tr := range traversals {
		call := tr.call
		tool := mcp.NewTool(tr.name,
			mcp.WithDescription(tr.description),
			mcp.WithString("item_id",
				mcp.Required(),
				mcp.Description("The ID of the item"),
			),
		)

		s.AddTool(tool, common.InstrumentedToolHandlerWithOperation(tr.name, instrumentation.OperationList, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args := request.GetArguments()

				itemID, err := stringArg(args, "item_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				results, err := call(ctx, itemID)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to traverse relationships: %v", err)), nil
				}
				return jsonResult(results), nil
			}))
	}

	return nil
}

// registerMetadataTools registers item type and pick list tools
func registerMetadataTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getItemTypesTool := mcp.NewTool("get_jama_item_types",
		mcp.WithDescription("Retrieve all item types defined in Jama Connect"),
	)

	s.AddTool(getItemTypesTool, common.InstrumentedToolHandlerWithOperation("get_jama_item_types", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			itemTypes, err := sc.JamaClient().GetItemTypes(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get item types: %v", err)), nil
			}
			return jsonResult(itemTypes), nil
		}))

	getItemTypeTool := mcp.NewTool("get_jama_item_type",
		mcp.WithDescription("Retrieve a single item type by its ID"),
		mcp.WithString("item_type_id",
			mcp.Required(),
			mcp.Description("The ID of the item type"),
		),
	)

	s.AddTool(getItemTypeTool, common.InstrumentedToolHandlerWithOperation("get_jama_item_type", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			itemTypeID, err := stringArg(args, "item_type_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			itemType, err := sc.JamaClient().GetItemType(ctx, itemTypeID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get item type: %v", err)), nil
			}
			return jsonResult(itemType), nil
		}))

	getPickListsTool := mcp.NewTool("get_jama_pick_lists",
		mcp.WithDescription("Retrieve all pick lists defined in Jama Connect"),
	)

	s.AddTool(getPickListsTool, common.InstrumentedToolHandlerWithOperation("get_jama_pick_lists", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			pickLists, err := sc.JamaClient().GetPickLists(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get pick lists: %v", err)), nil
			}
			return jsonResult(pickLists), nil
		}))

	getPickListTool := mcp.NewTool("get_jama_pick_list",
		mcp.WithDescription("Retrieve a single pick list by its ID"),
		mcp.WithString("pick_list_id",
			mcp.Required(),
			mcp.Description("The ID of the pick list"),
		),
	)

	s.AddTool(getPickListTool, common.InstrumentedToolHandlerWithOperation("get_jama_pick_list", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			pickListID, err := stringArg(args, "pick_list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			pickList, err := sc.JamaClient().GetPickList(ctx, pickListID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get pick list: %v", err)), nil
			}
			return jsonResult(pickList), nil
		}))

	getPickListOptionsTool := mcp.NewTool("get_jama_pick_list_options",
		mcp.WithDescription("Retrieve the options of a pick list"),
		mcp.WithString("pick_list_id",
			mcp.Required(),
			mcp.Description("The ID of the pick list"),
		),
	)

	s.AddTool(getPickListOptionsTool, common.InstrumentedToolHandlerWithOperation("get_jama_pick_list_options", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			pickListID, err := stringArg(args, "pick_list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			options, err := sc.JamaClient().GetPickListOptions(ctx, pickListID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get pick list options: %v", err)), nil
			}
			return jsonResult(options), nil
		}))

	getPickListOptionTool := mcp.NewTool("get_jama_pick_list_option",
		mcp.WithDescription("Retrieve a single pick list option by its ID"),
		mcp.WithString("pick_list_option_id",
			mcp.Required(),
			mcp.Description("The ID of the pick list option"),
		),
	)

	s.AddTool(getPickListOptionTool, common.InstrumentedToolHandlerWithOperation("get_jama_pick_list_option", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			optionID, err := stringArg(args, "pick_list_option_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			option, err := sc.JamaClient().GetPickListOption(ctx, optionID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get pick list option: %v", err)), nil
			}
			return jsonResult(option), nil
		}))

	return nil
}

// registerTagTools registers tag browsing tools
func registerTagTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getTagsTool := mcp.NewTool("get_jama_tags",
		mcp.WithDescription("Retrieve all tags in a Jama Connect project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
	)

	s.AddTool(getTagsTool, common.InstrumentedToolHandlerWithOperation("get_jama_tags", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			projectID, err := stringArg(args, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			tags, err := sc.JamaClient().GetTags(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get tags: %v", err)), nil
			}
			return jsonResult(tags), nil
		}))

	getTaggedItemsTool := mcp.NewTool("get_jama_tagged_items",
		mcp.WithDescription("Retrieve the items carrying a given tag"),
		mcp.WithString("tag_id",
			mcp.Required(),
			mcp.Description("The ID of the tag"),
		),
	)

	s.AddTool(getTaggedItemsTool, common.InstrumentedToolHandlerWithOperation("get_jama_tagged_items", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			tagID, err := stringArg(args, "tag_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			items, err := sc.JamaClient().GetTaggedItems(ctx, tagID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get tagged items: %v", err)), nil
			}
			return jsonResult(items), nil
		}))

	return nil
}

// registerTestManagementTools registers test cycle and test run tools
func registerTestManagementTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getTestCycleTool := mcp.NewTool("get_jama_test_cycle",
		mcp.WithDescription("Retrieve a test cycle by its ID"),
		mcp.WithString("test_cycle_id",
			mcp.Required(),
			mcp.Description("The ID of the test cycle"),
		),
	)

	s.AddTool(getTestCycleTool, common.InstrumentedToolHandlerWithOperation("get_jama_test_cycle", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			testCycleID, err := stringArg(args, "test_cycle_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			cycle, err := sc.JamaClient().GetTestCycle(ctx, testCycleID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get test cycle: %v", err)), nil
			}
			return jsonResult(cycle), nil
		}))

	getTestRunsTool := mcp.NewTool("get_jama_test_runs",
		mcp.WithDescription("Retrieve the test runs of a test cycle"),
		mcp.WithString("test_cycle_id",
			mcp.Required(),
			mcp.Description("The ID of the test cycle"),
		),
	)

	s.AddTool(getTestRunsTool, common.InstrumentedToolHandlerWithOperation("get_jama_test_runs", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			testCycleID, err := stringArg(args, "test_cycle_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			runs, err := sc.JamaClient().GetTestRuns(ctx, testCycleID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get test runs: %v", err)), nil
			}
			return jsonResult(runs), nil
		}))

	return nil
}

// registerConnectionTools registers diagnostics tools
func registerConnectionTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getEndpointsTool := mcp.NewTool("get_jama_available_endpoints",
		mcp.WithDescription("Retrieve the REST endpoints exposed by the Jama Connect instance"),
	)

	s.AddTool(getEndpointsTool, common.InstrumentedToolHandlerWithOperation("get_jama_available_endpoints", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			endpoints, err := sc.JamaClient().GetAvailableEndpoints(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get available endpoints: %v", err)), nil
			}
			return jsonResult(endpoints), nil
		}))

	testConnectionTool := mcp.NewTool("test_jama_connection",
		mcp.WithDescription("Verify connectivity to the Jama Connect backend"),
	)

	s.AddTool(testConnectionTool, common.InstrumentedToolHandler("test_jama_connection", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if _, err := sc.JamaClient().GetAvailableEndpoints(ctx); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Jama connection failed: %v", err)), nil
			}
			return jsonResult(map[string]interface{}{
				"status": "ok",
				"mode":   string(sc.Mode()),
			}), nil
		}))

	return nil
}
