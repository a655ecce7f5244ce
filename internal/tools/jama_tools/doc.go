// Package jama_tools provides MCP tools for browsing and modifying Jama
// Connect data: projects, items, relationships, item types, pick lists,
// tags, and test cycles.
//
// All tools share the single Jama client selected at server startup. Read
// tools are always registered; tools that modify data are only registered
// when the server runs with write access enabled.
package jama_tools
