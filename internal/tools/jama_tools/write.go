package jama_tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"jamamcp/internal/instrumentation"
	"jamamcp/internal/server"
	"jamamcp/internal/tools/common"
)

// registerWriteTools registers the tools that modify Jama data. They are
// only available when the server runs with write access enabled.
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createItemTool := mcp.NewTool("create_jama_item",
		mcp.WithDescription("Create a new item in a Jama Connect project"),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("The ID of the project to create the item in"),
		),
		mcp.WithNumber("item_type_id",
			mcp.Required(),
			mcp.Description("The ID of the item type for the new item"),
		),
		mcp.WithNumber("child_item_type_id",
			mcp.Description("The child item type ID, for set-type items"),
		),
		mcp.WithObject("location",
			mcp.Description("Parent location, e.g. {\"item\": 123} or {\"project\": 1}"),
		),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Item fields, e.g. {\"name\": \"...\", \"description\": \"...\"}"),
		),
	)

	s.AddTool(createItemTool, common.InstrumentedToolHandlerWithOperation("create_jama_item", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			project, err := intArg(args, "project")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			itemTypeID, err := intArg(args, "item_type_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			fields := optionalMapArg(args, "fields")
			if fields == nil {
				return mcp.NewToolResultError("fields is required"), nil
			}

			childItemTypeID := optionalIntArg(args, "child_item_type_id")
			location := optionalMapArg(args, "location")

			id, err := sc.JamaClient().PostItem(ctx, project, itemTypeID, childItemTypeID, location, fields)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create item: %v", err)), nil
			}

			// Return the full created item, not just its ID.
			item, err := sc.JamaClient().GetItem(ctx, strconv.Itoa(id))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Item %d was created but fetching it failed: %v", id, err)), nil
			}
			return jsonResult(item), nil
		}))

	updateItemTool := mcp.NewTool("update_jama_item",
		mcp.WithDescription("Update an existing item in Jama Connect"),
		mcp.WithNumber("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item to update"),
		),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("The ID of the project the item belongs to"),
		),
		mcp.WithNumber("item_type_id",
			mcp.Required(),
			mcp.Description("The item type ID of the item"),
		),
		mcp.WithNumber("child_item_type_id",
			mcp.Description("The child item type ID, for set-type items"),
		),
		mcp.WithObject("location",
			mcp.Description("Parent location, e.g. {\"item\": 123} or {\"project\": 1}"),
		),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Replacement item fields"),
		),
	)

	s.AddTool(updateItemTool, common.InstrumentedToolHandlerWithOperation("update_jama_item", instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			itemID, err := intArg(args, "item_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			project, err := intArg(args, "project")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			itemTypeID, err := intArg(args, "item_type_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			fields := optionalMapArg(args, "fields")
			if fields == nil {
				return mcp.NewToolResultError("fields is required"), nil
			}

			childItemTypeID := optionalIntArg(args, "child_item_type_id")
			location := optionalMapArg(args, "location")

			status, err := sc.JamaClient().PutItem(ctx, project, itemID, itemTypeID, childItemTypeID, location, fields)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update item: %v", err)), nil
			}
			return jsonResult(map[string]interface{}{"status": status}), nil
		}))

	createProjectTool := mcp.NewTool("create_jama_project",
		mcp.WithDescription("Create a new project in Jama Connect"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the new project"),
		),
		mcp.WithString("project_key",
			mcp.Required(),
			mcp.Description("The short key for the new project, e.g. MPA"),
		),
		mcp.WithNumber("item_type_id",
			mcp.Required(),
			mcp.Description("The root item type ID for the project"),
		),
	)

	s.AddTool(createProjectTool, common.InstrumentedToolHandlerWithOperation("create_jama_project", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			name, err := stringArg(args, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			projectKey, err := stringArg(args, "project_key")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			itemTypeID, err := intArg(args, "item_type_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := sc.JamaClient().PostProject(ctx, name, projectKey, itemTypeID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create project: %v", err)), nil
			}
			return jsonResult(project), nil
		}))

	createRelationshipTool := mcp.NewTool("create_jama_relationship",
		mcp.WithDescription("Create a relationship between two Jama Connect items"),
		mcp.WithNumber("from_item",
			mcp.Required(),
			mcp.Description("The ID of the source item"),
		),
		mcp.WithNumber("to_item",
			mcp.Required(),
			mcp.Description("The ID of the target item"),
		),
	)

	s.AddTool(createRelationshipTool, common.InstrumentedToolHandlerWithOperation("create_jama_relationship", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			fromItem, err := intArg(args, "from_item")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			toItem, err := intArg(args, "to_item")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			relationship, err := sc.JamaClient().PostRelationship(ctx, fromItem, toItem)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create relationship: %v", err)), nil
			}
			return jsonResult(relationship), nil
		}))

	createTagTool := mcp.NewTool("create_jama_tag",
		mcp.WithDescription("Create a new tag in a Jama Connect project"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the tag"),
		),
		mcp.WithNumber("project",
			mcp.Required(),
			mcp.Description("The ID of the project the tag belongs to"),
		),
	)

	s.AddTool(createTagTool, common.InstrumentedToolHandlerWithOperation("create_jama_tag", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			name, err := stringArg(args, "name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			project, err := intArg(args, "project")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			id, err := sc.JamaClient().PostTag(ctx, name, project)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create tag: %v", err)), nil
			}
			return jsonResult(map[string]interface{}{"id": id}), nil
		}))

	addItemTagTool := mcp.NewTool("add_jama_item_tag",
		mcp.WithDescription("Attach an existing tag to an item"),
		mcp.WithNumber("item_id",
			mcp.Required(),
			mcp.Description("The ID of the item"),
		),
		mcp.WithNumber("tag_id",
			mcp.Required(),
			mcp.Description("The ID of the tag to attach"),
		),
	)

	s.AddTool(addItemTagTool, common.InstrumentedToolHandlerWithOperation("add_jama_item_tag", instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			itemID, err := intArg(args, "item_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			tagID, err := intArg(args, "tag_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			status, err := sc.JamaClient().PostItemTag(ctx, itemID, tagID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to tag item: %v", err)), nil
			}
			return jsonResult(map[string]interface{}{"status": status}), nil
		}))

	return nil
}
