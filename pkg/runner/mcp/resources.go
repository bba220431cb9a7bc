package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCatalogResource(srv, svc)
	registerLegendResource(srv, svc)
	registerEventTemplate(srv, svc)
}

func registerCatalogResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"worldsync://catalog",
		"Filter Catalog",
		mcp.WithResourceDescription("Countries, religions and event types that events can be filtered by."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		listing, err := svc.ListCatalog(ctx, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, listing)
	})
}

func registerLegendResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"worldsync://legend",
		"Legend",
		mcp.WithResourceDescription("Event type colors with this month's event counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		rows, err := svc.Legend(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"legend": rows,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEventTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"worldsync://events/{id}",
		"Event Details",
		mcp.WithTemplateDescription("Detailed information about a single event."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("event id is required")
		}

		card, err := svc.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"event": card,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
