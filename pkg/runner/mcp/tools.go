package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/caddr/pkg/recurrence"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetDayTool(srv, svc)
	registerAddBlockTool(srv, svc)
	registerAddTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerToggleGoalTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerUpdateBlockTool(srv, svc)
	registerDeleteTool(srv, svc)
	registerMoveTool(srv, svc)
	registerDuplicateTool(srv, svc)
	registerRescheduleTool(srv, svc)
	registerPromoteTool(srv, svc)
	registerDetachTool(srv, svc)
	registerReattachTool(srv, svc)
	registerUpdateJournalTool(srv, svc)
	registerListGoalsTool(srv, svc)
	registerAddGoalTool(srv, svc)
	registerDeleteGoalTool(srv, svc)
	registerUpdateGoalTool(srv, svc)
	registerStatsTool(srv, svc)
	registerReportTool(srv, svc)
	registerMigrationTool(srv, svc)
	registerListTemplatesTool(srv, svc)
	registerSaveTemplateTool(srv, svc)
	registerApplyTemplateTool(srv, svc)
	registerListInboxTool(srv, svc)
	registerAddInboxTool(srv, svc)
	registerDeployInboxTool(srv, svc)
	registerUndoTool(srv, svc)
	registerProfileTool(srv, svc)
	registerAdviceTool(srv, svc)
	registerReviewTool(srv, svc)
	registerGenerateTool(srv, svc)
}

func recurrenceNames() []string {
	names := make([]string, 0, len(recurrence.Kinds))
	for _, k := range recurrence.Kinds {
		names = append(names, string(k))
	}
	return names
}

func withDate() mcp.ToolOption {
	return mcp.WithString("date",
		mcp.Description("Date in YYYY-MM-DD format. Defaults to today."),
	)
}

func withDayScope() mcp.ToolOption {
	return mcp.WithBoolean("day_only",
		mcp.Description("Apply the change to the given date only instead of the template. The date is detached from the template first."),
	)
}

func withID(desc string) mcp.ToolOption {
	return mcp.WithString("id",
		mcp.Required(),
		mcp.Description(desc),
	)
}

// scoped holds the arguments shared by tree-editing tools.
type scoped struct {
	Date    string `json:"date"`
	DayOnly bool   `json:"day_only"`
	ID      string `json:"id"`
}

func invalid(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
}

func registerGetDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_day",
		mcp.WithDescription("Show the resolved routine of a date: blocks, tasks, goal, journal and completion."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := svc.Day(request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerAddBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_block",
		mcp.WithDescription("Add a time block to the routine template, or to one date only."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Block title."),
		),
		withDate(),
		withDayScope(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title   string `json:"title"`
			Date    string `json:"date"`
			DayOnly bool   `json:"day_only"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		res, err := svc.AddBlock(args.Date, args.DayOnly, args.Title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task under a block, or a sub-task under a task."),
		mcp.WithString("parent_id",
			mcp.Required(),
			mcp.Description("Block or task identifier (a unique prefix is enough)."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		withDate(),
		withDayScope(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ParentID string `json:"parent_id"`
			Title    string `json:"title"`
			Date     string `json:"date"`
			DayOnly  bool   `json:"day_only"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		res, err := svc.AddTask(args.Date, args.DayOnly, args.ParentID, args.Title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Mark a task done on a date, or undo it. Completion awards experience points."),
		withID("Task identifier (a unique prefix is enough)."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args scoped
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		res, err := svc.ToggleTask(args.Date, args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerToggleGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_goal",
		mcp.WithDescription("Mark the daily goal of a date reached, or undo it."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.ToggleGoal(request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change fields of a task. Omitted fields are left unchanged."),
		withID("Task identifier (a unique prefix is enough)."),
		withDate(),
		withDayScope(),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("description", mcp.Description("New description.")),
		mcp.WithString("priority",
			mcp.Description("Priority, empty to clear."),
			mcp.Enum("", "low", "medium", "high"),
		),
		mcp.WithString("start_time", mcp.Description("Start time as HH:MM, empty to clear.")),
		mcp.WithNumber("duration", mcp.Description("Duration in minutes.")),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence rule."),
			mcp.Enum(recurrenceNames()...),
		),
		mcp.WithString("specific_date", mcp.Description("Date for specific or once recurrence.")),
		mcp.WithString("start_date", mcp.Description("First date of a period, or the anchor of week/month recurrence.")),
		mcp.WithString("end_date", mcp.Description("Last date of a period.")),
		mcp.WithString("note", mcp.Description("Execution note for the date.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			scoped
			TaskFields
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.UpdateTask(args.Date, args.DayOnly, args.ID, args.TaskFields); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("updated"), nil
	})
}

func registerUpdateBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_block",
		mcp.WithDescription("Change fields of a block. Omitted fields are left unchanged."),
		withID("Block identifier (a unique prefix is enough)."),
		withDate(),
		withDayScope(),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("description", mcp.Description("New description.")),
		mcp.WithBoolean("collapsed", mcp.Description("Hide the block's tasks.")),
		mcp.WithBoolean("locked", mcp.Description("Protect the block from edits.")),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence rule."),
			mcp.Enum(recurrenceNames()...),
		),
		mcp.WithString("specific_date", mcp.Description("Date for specific or once recurrence.")),
		mcp.WithString("start_date", mcp.Description("First date of a period, or the anchor of week/month recurrence.")),
		mcp.WithString("end_date", mcp.Description("Last date of a period.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			scoped
			BlockFields
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.UpdateBlock(args.Date, args.DayOnly, args.ID, args.BlockFields); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("updated"), nil
	})
}

func registerDeleteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_item",
		mcp.WithDescription("Delete a block, task or sub-task. Undo restores it."),
		withID("Block or task identifier (a unique prefix is enough)."),
		withDate(),
		withDayScope(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args scoped
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.Delete(args.Date, args.DayOnly, args.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("deleted"), nil
	})
}

func registerMoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_item",
		mcp.WithDescription("Swap a block or task with its neighbour."),
		withID("Block or task identifier (a unique prefix is enough)."),
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Description("Which neighbour to swap with."),
			mcp.Enum("up", "down"),
		),
		withDate(),
		withDayScope(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			scoped
			Direction string `json:"direction"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.Move(args.Date, args.DayOnly, args.ID, args.Direction); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("moved"), nil
	})
}

func registerDuplicateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"duplicate_item",
		mcp.WithDescription("Copy a block or task, with fresh identifiers, right after the original."),
		withID("Block or task identifier (a unique prefix is enough)."),
		withDate(),
		withDayScope(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args scoped
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		res, err := svc.Duplicate(args.Date, args.DayOnly, args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerRescheduleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reschedule_task",
		mcp.WithDescription("Move a task seen on a date to another date. The template is not changed."),
		withID("Task identifier (a unique prefix is enough)."),
		withDate(),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Destination date in YYYY-MM-DD format."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID     string `json:"id"`
			Date   string `json:"date"`
			Target string `json:"target"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.Reschedule(args.Date, args.ID, args.Target); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("rescheduled"), nil
	})
}

func registerPromoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"promote_item",
		mcp.WithDescription("Copy a block or task that exists on one date into the template so it recurs daily."),
		withID("Block or task identifier on the date (a unique prefix is enough)."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.Promote(request.GetString("date", ""), id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("promoted"), nil
	})
}

func registerDetachTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"detach_day",
		mcp.WithDescription("Freeze a date's schedule so later template edits do not affect it."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.Detach(request.GetString("date", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("detached"), nil
	})
}

func registerReattachTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reattach_day",
		mcp.WithDescription("Drop a date's own schedule so it follows the template again."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ok, err := svc.Reattach(request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ok {
			return mcp.NewToolResultText("date already follows the template"), nil
		}
		return mcp.NewToolResultText("reattached"), nil
	})
}

func registerUpdateJournalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_journal",
		mcp.WithDescription("Write the note, reflection, mood, reminder time or goal override of a date."),
		withDate(),
		mcp.WithString("note", mcp.Description("Free-form note.")),
		mcp.WithString("reflection", mcp.Description("Evening reflection.")),
		mcp.WithString("mood", mcp.Description("Mood label.")),
		mcp.WithString("reminder_time", mcp.Description("Reminder time as HH:MM.")),
		mcp.WithString("goal_override", mcp.Description("Goal for this date only.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
			JournalFields
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.UpdateJournal(args.Date, args.JournalFields); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("updated"), nil
	})
}

func registerListGoalsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_goals",
		mcp.WithDescription("List the recurring goals."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goals, err := svc.Goals()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"goals": goals,
			"count": len(goals),
		})
	})
}

func registerAddGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_goal",
		mcp.WithDescription("Add a recurring goal. New goals recur daily."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Goal text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := svc.AddGoal(title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id})
	})
}

func registerDeleteGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_goal",
		mcp.WithDescription("Delete a recurring goal."),
		withID("Goal identifier (a unique prefix is enough)."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteGoal(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("deleted"), nil
	})
}

func registerUpdateGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_goal",
		mcp.WithDescription("Change a recurring goal. Omitted fields are left unchanged."),
		withID("Goal identifier (a unique prefix is enough)."),
		withDate(),
		withDayScope(),
		mcp.WithString("title", mcp.Description("New goal text.")),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence rule."),
			mcp.Enum(recurrenceNames()...),
		),
		mcp.WithString("specific_date", mcp.Description("Date for specific or once recurrence.")),
		mcp.WithString("start_date", mcp.Description("First date of a period.")),
		mcp.WithString("end_date", mcp.Description("Last date of a period.")),
		mcp.WithString("reminder_time", mcp.Description("Reminder time as HH:MM.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			scoped
			GoalFields
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.UpdateGoal(args.Date, args.DayOnly, args.ID, args.GoalFields); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("updated"), nil
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_stats",
		mcp.WithDescription("Completion statistics for a timeframe ending today, or for an explicit range."),
		mcp.WithString("timeframe",
			mcp.Description("Preset range. Defaults to week."),
			mcp.Enum("day", "week", "month", "year"),
		),
		mcp.WithString("since", mcp.Description("Range start in YYYY-MM-DD format. Overrides timeframe.")),
		mcp.WithString("until", mcp.Description("Range end in YYYY-MM-DD format. Defaults to today.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Timeframe string `json:"timeframe"`
			Since     string `json:"since"`
			Until     string `json:"until"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		stats, err := svc.Stats(args.Timeframe, args.Since, args.Until)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(stats)
	})
}

func withWindow() mcp.ToolOption {
	return mcp.WithString("window",
		mcp.Description("Window ending today, such as 3d or 2w. Defaults to 1w."),
	)
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"completed_report",
		mcp.WithDescription("Tasks completed over a recent window, grouped by block."),
		withWindow(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := svc.Report(request.GetString("window", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(report)
	})
}

func registerMigrationTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_unfinished",
		mcp.WithDescription("Tasks left undone on past dates of a recent window. Use reschedule_task to carry them forward."),
		withWindow(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		candidates, err := svc.Migration(request.GetString("window", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": candidates,
			"count": len(candidates),
		})
	})
}

func registerListTemplatesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_templates",
		mcp.WithDescription("List the saved routine templates."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.Templates()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(templateSummaries(list))
	})
}

func registerSaveTemplateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_template",
		mcp.WithDescription("Save the current routine as a named template and clear it, leaving an empty routine to start from."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Template name."),
		),
		mcp.WithString("goal", mcp.Description("Goal to set when the template is applied.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := svc.SaveTemplate(name, request.GetString("goal", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id})
	})
}

func registerApplyTemplateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"apply_template",
		mcp.WithDescription("Replace the routine with a saved template. Dates before the given date keep their current schedule."),
		withID("Template identifier or exact name."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.ApplyTemplate(id, request.GetString("date", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("applied"), nil
	})
}

func registerListInboxTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_inbox",
		mcp.WithDescription("List tasks captured in the inbox."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := svc.Inbox()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerAddInboxTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_inbox_task",
		mcp.WithDescription("Capture a task in the inbox without scheduling it."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := svc.AddInboxTask(title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id})
	})
}

func registerDeployInboxTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"deploy_inbox_task",
		mcp.WithDescription("Move an inbox task into a template block."),
		withID("Inbox task identifier (a unique prefix is enough)."),
		mcp.WithString("block_id",
			mcp.Required(),
			mcp.Description("Template block identifier (a unique prefix is enough)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID      string `json:"id"`
			BlockID string `json:"block_id"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err), nil
		}
		if err := svc.DeployInboxTask(args.ID, args.BlockID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("deployed"), nil
	})
}

func registerUndoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"undo",
		mcp.WithDescription("Revert the last structural change."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.Undo(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("undone"), nil
	})
}

func registerProfileTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_profile",
		mcp.WithDescription("Experience points, level and rank."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := svc.Profile()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerAdviceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_advice",
		mcp.WithDescription("Ask the configured advisor for a suggestion about a date's routine."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		advice, err := svc.Advice(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if advice == nil {
			return mcp.NewToolResultText("No suggestion available."), nil
		}
		return toJSONResult(advice)
	})
}

func registerReviewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"review_day",
		mcp.WithDescription("Ask the advisor to review a date's reflection. The feedback is stored on the date."),
		withDate(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		feedback, err := svc.Review(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if feedback == nil {
			return mcp.NewToolResultText("No feedback available. Write a reflection first."), nil
		}
		return toJSONResult(feedback)
	})
}

func registerGenerateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"generate_routine",
		mcp.WithDescription("Ask the advisor for blocks that work towards a goal and append them to the template."),
		mcp.WithString("goal",
			mcp.Required(),
			mcp.Description("What the routine should achieve."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goal, err := request.RequireString("goal")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ids, err := svc.Generate(ctx, goal)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"blocks": ids,
			"count":  len(ids),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
