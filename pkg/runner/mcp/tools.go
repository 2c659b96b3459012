package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddEntryTool(srv, svc)
	registerFinishEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerMoveEntryTool(srv, svc)
	registerTagEntryTool(srv, svc)
	registerUntagEntryTool(srv, svc)
	registerRetitleEntryTool(srv, svc)
	registerAppendNoteTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerListSectionsTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Add a new entry to the journal. Tags ride inline in the title as @tag or @tag(value)."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Entry title, including any inline tags."),
		),
		mcp.WithString("section",
			mcp.Description("Section that should hold the entry. Defaults to the configured section."),
		),
		mcp.WithString("note",
			mcp.Description("Optional note text stored under the entry; newlines split into note lines."),
		),
		mcp.WithString("when",
			mcp.Description("Optional date expression for the entry timestamp, like 'yesterday 3pm' or '2026-01-05'."),
		),
		mcp.WithBoolean("timed",
			mcp.Description("Close out the previous open entry in the section first."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title   string `json:"title"`
			Section string `json:"section"`
			Note    string `json:"note"`
			When    string `json:"when"`
			Timed   bool   `json:"timed"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddEntry(ctx, AddEntryOptions{
			Section: args.Section,
			Title:   args.Title,
			Note:    noteLines(args.Note),
			When:    args.When,
			Timed:   args.Timed,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerFinishEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"finish_entry",
		mcp.WithDescription("Close an entry out with a done stamp. The interval between entry and stamp becomes its duration."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to finish."),
		),
		mcp.WithString("took",
			mcp.Description("Optional duration spent, like '45m' or '2h', counted from the entry timestamp."),
		),
		mcp.WithString("at",
			mcp.Description("Optional date expression naming the finish time."),
		),
		mcp.WithBoolean("cancel",
			mcp.Description("Mark done without a finish time, recording no duration."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID     int64  `json:"id"`
			Took   string `json:"took"`
			At     string `json:"at"`
			Cancel bool   `json:"cancel"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.FinishEntry(ctx, FinishEntryOptions{
			ID:     args.ID,
			Took:   args.Took,
			At:     args.At,
			Cancel: args.Cancel,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry and its note permanently."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(request.GetInt("id", 0))
		if id == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.DeleteEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"deleted": dto,
		})
	})
}

func registerMoveEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_entry",
		mcp.WithDescription("Move an entry to a different section."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to move."),
		),
		mcp.WithString("section",
			mcp.Required(),
			mcp.Description("Destination section; it is created when missing."),
		),
		mcp.WithBoolean("label",
			mcp.Description("Stamp the title with the section it came from."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      int64  `json:"id"`
			Section string `json:"section"`
			Label   bool   `json:"label"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}
		if args.Section == "" {
			return mcp.NewToolResultError("section is required"), nil
		}

		dto, err := svc.MoveEntry(ctx, args.ID, args.Section, args.Label)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerTagEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"tag_entry",
		mcp.WithDescription("Set a tag on an entry title, replacing the value if the tag is already there."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to tag."),
		),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Tag name, with or without the leading @."),
		),
		mcp.WithString("value",
			mcp.Description("Optional tag value, stored as @tag(value)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(request.GetInt("id", 0))
		if id == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}
		name, err := request.RequireString("tag")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value := request.GetString("value", "")

		dto, err := svc.TagEntry(ctx, id, name, value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUntagEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"untag_entry",
		mcp.WithDescription("Remove a tag from an entry title."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to untag."),
		),
		mcp.WithString("tag",
			mcp.Required(),
			mcp.Description("Tag name to remove, with or without the leading @."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(request.GetInt("id", 0))
		if id == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}
		name, err := request.RequireString("tag")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.UntagEntry(ctx, id, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRetitleEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"retitle_entry",
		mcp.WithDescription("Replace an entry title, including its inline tags."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to retitle."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("New title text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(request.GetInt("id", 0))
		if id == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.RetitleEntry(ctx, id, title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAppendNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"append_note",
		mcp.WithDescription("Append note lines under an entry, or replace the whole note."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to annotate."),
		),
		mcp.WithString("note",
			mcp.Required(),
			mcp.Description("Note text; newlines split into note lines."),
		),
		mcp.WithBoolean("replace",
			mcp.Description("Replace the existing note instead of appending."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      int64  `json:"id"`
			Note    string `json:"note"`
			Replace bool   `json:"replace"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.AppendNote(ctx, args.ID, noteLines(args.Note), args.Replace)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List entries for a section or the entire journal, oldest first."),
		mcp.WithString("section",
			mcp.Description("Optional section filter."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		section := strings.TrimSpace(request.GetString("section", ""))
		var (
			results []EntryDTO
			err     error
		)
		if section == "" {
			results, err = svc.ListAllEntries(ctx)
		} else {
			results, err = svc.ListEntries(ctx, section)
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"section": section,
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerListSectionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_sections",
		mcp.WithDescription("List all sections in the journal with entry counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListSections(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"sections": summaries,
			"count":    len(summaries),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entry titles and notes. Wrap the query in slashes for regex, prefix with a single quote for exact match."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEntries(ctx, query, limit)
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

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(request.GetInt("id", 0))
		if id == 0 {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

// noteLines splits tool note text into stored note lines, dropping blanks.
func noteLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
