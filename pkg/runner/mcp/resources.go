package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/caddr/pkg/routine"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTodayResource(srv, svc)
	registerDayTemplate(srv, svc)
	registerStatsTemplate(srv, svc)
	registerProfileResource(srv, svc)
	registerTemplatesResource(srv, svc)
	registerGoalsResource(srv, svc)
	registerInboxResource(srv, svc)
}

func registerTodayResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"caddr://today",
		"Today",
		mcp.WithResourceDescription("Today's resolved routine with journal and completion."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		view, err := svc.Day("")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"caddr://days/{date}",
		"Day Routine",
		mcp.WithTemplateDescription("The resolved routine of a date in YYYY-MM-DD format."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date, _ := request.Params.Arguments["date"].(string)
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}
		view, err := svc.Day(date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerStatsTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"caddr://stats/{timeframe}",
		"Statistics",
		mcp.WithTemplateDescription("Completion statistics for day, week, month or year."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tf, _ := request.Params.Arguments["timeframe"].(string)
		if tf == "" {
			return nil, fmt.Errorf("timeframe is required")
		}
		stats, err := svc.Stats(tf, "", "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, stats)
	})
}

func registerProfileResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"caddr://profile",
		"Profile",
		mcp.WithResourceDescription("Experience points, level and rank."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, err := svc.Profile()
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, p)
	})
}

func registerTemplatesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"caddr://templates",
		"Templates",
		mcp.WithResourceDescription("Saved routine templates with block and goal counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := svc.Templates()
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, templateSummaries(list))
	})
}

func registerGoalsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"caddr://goals",
		"Recurring Goals",
		mcp.WithResourceDescription("All recurring goals."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		goals, err := svc.Goals()
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"goals": goals,
			"count": len(goals),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerInboxResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"caddr://inbox",
		"Inbox",
		mcp.WithResourceDescription("Captured tasks that are not scheduled yet."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tasks, err := svc.Inbox()
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// TemplateSummary describes a saved template without its blocks.
type TemplateSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Goal   string `json:"goal,omitempty"`
	Blocks int    `json:"blocks"`
	Goals  int    `json:"goals"`
}

func templateSummaries(list []routine.Template) map[string]any {
	out := make([]TemplateSummary, 0, len(list))
	for _, t := range list {
		out = append(out, TemplateSummary{
			ID:     t.ID,
			Name:   t.Name,
			Goal:   t.TemplateGoal,
			Blocks: len(t.Blocks),
			Goals:  len(t.RecurringGoals),
		})
	}
	return map[string]any{
		"templates": out,
		"count":     len(out),
	}
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
