package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSectionsResource(srv, svc)
	registerSectionTemplate(srv, svc)
	registerEntryTemplate(srv, svc)
}

func registerSectionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"trail://sections",
		"Sections",
		mcp.WithResourceDescription("All journal sections with entry counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListSections(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"sections": summaries,
			"count":    len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSectionTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"trail://sections/{name}",
		"Section Entries",
		mcp.WithTemplateDescription("Entries that belong to a section."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name, _ := request.Params.Arguments["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("section name is required")
		}

		entries, err := svc.ListEntries(ctx, name)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"section": name,
			"count":   len(entries),
			"entries": entries,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"trail://entries/{id}",
		"Entry Details",
		mcp.WithTemplateDescription("Detailed information about a single entry."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw, _ := request.Params.Arguments["id"].(string)
		if raw == "" {
			return nil, fmt.Errorf("entry id is required")
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("entry id must be a number: %v", err)
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"entry": dto,
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
