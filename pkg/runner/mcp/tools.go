package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEventsTool(srv, svc)
	registerGetEventTool(srv, svc)
	registerListCatalogTool(srv, svc)
	registerSearchEventsTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerRemoveEventTool(srv, svc)
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List the days of a month, week or day view with the events that pass the filters."),
		mcp.WithString("view",
			mcp.Description("View to list; defaults to month."),
			mcp.Enum("month", "week", "day"),
		),
		mcp.WithString("on",
			mcp.Description("Date inside the view as YYYY-MM-DD; defaults to today."),
		),
		mcp.WithArray("countries",
			mcp.Description("Country ids from list_catalog. Any match passes."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("religions",
			mcp.Description("Religion ids from list_catalog. Any match passes."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("types",
			mcp.Description("Event type ids from list_catalog. Any match passes."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			View      string   `json:"view"`
			On        string   `json:"on"`
			Countries []string `json:"countries"`
			Religions []string `json:"religions"`
			Types     []string `json:"types"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		snap, err := svc.ListEvents(ctx, ListEventsOptions{
			View:      args.View,
			On:        args.On,
			Countries: args.Countries,
			Religions: args.Religions,
			Types:     args.Types,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(snap)
	})
}

func registerGetEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_event",
		mcp.WithDescription("Fetch a single event with its description, cultural significance and regional variations."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		card, err := svc.GetEvent(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(card)
	})
}

func registerListCatalogTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_catalog",
		mcp.WithDescription("List the countries, religions and event types that can be used as filters."),
		mcp.WithString("search",
			mcp.Description("Optional case-insensitive substring of option names."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		listing, err := svc.ListCatalog(ctx, request.GetString("search", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(listing)
	})
}

func registerSearchEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_events",
		mcp.WithDescription("Search events by name, country, religion or description."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive substring to look for."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEvents(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Store a new one-day event."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Event name."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day of the event as YYYY-MM-DD."),
		),
		mcp.WithString("type",
			mcp.Description("Event type; defaults to special."),
			mcp.Enum("national", "religious", "cultural", "special", "un"),
		),
		mcp.WithString("country",
			mcp.Description("Optional country name."),
		),
		mcp.WithString("religion",
			mcp.Description("Optional religion name."),
		),
		mcp.WithString("description",
			mcp.Description("Optional description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name        string `json:"name"`
			Date        string `json:"date"`
			Type        string `json:"type"`
			Country     string `json:"country"`
			Religion    string `json:"religion"`
			Description string `json:"description"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		card, err := svc.AddEvent(ctx, AddEventOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(card)
	})
}

func registerRemoveEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_event",
		mcp.WithDescription("Remove a stored event."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier to remove."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.RemoveEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "removed": true})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
