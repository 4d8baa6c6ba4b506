package main

import (
	"context"

	"github.com/fwojciec/partcat"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverVersion = "0.1.0"

// newMCPServer builds an MCP server exposing catalog search, component
// details and store status as tools.
func newMCPServer(deps *Dependencies) *server.MCPServer {
	s := server.NewMCPServer(
		"partcat",
		serverVersion,
		server.WithToolCapabilities(true),
	)

	searchTool := mcp.NewTool("search_components",
		mcp.WithDescription("Search the local component catalog by keywords and parametric filters. Results include live stock and pricing when available."),
		mcp.WithString("query",
			mcp.Description("Search terms matched against part numbers and descriptions, e.g. 'stm32 lqfp' or '10k resistor'"),
		),
		mcp.WithString("category",
			mcp.Description("Filter by category or subcategory name, e.g. 'Resistors'"),
		),
		mcp.WithString("package",
			mcp.Description("Filter by package, e.g. '0805' or 'SOT-23'"),
		),
		mcp.WithBoolean("basic_only",
			mcp.Description("Only return basic parts (no extended-part fee)"),
		),
		mcp.WithNumber("min_stock",
			mcp.Description("Minimum stock level"),
		),
		mcp.WithString("resistance",
			mcp.Description("Resistance value, e.g. '10k', '4.7M', '100R'"),
		),
		mcp.WithString("capacitance",
			mcp.Description("Capacitance value, e.g. '100nF', '4.7uF'"),
		),
		mcp.WithString("min_voltage",
			mcp.Description("Minimum voltage rating, e.g. '16V', '50V'"),
		),
		mcp.WithString("min_current",
			mcp.Description("Minimum output current rating, e.g. '500mA', '2A'"),
		),
		mcp.WithString("min_power",
			mcp.Description("Minimum power rating, e.g. '250mW', '1W'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (1-50, default 10)"),
		),
	)
	s.AddTool(searchTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := searchFilterFromRequest(req)
		if err != nil {
			return mcp.NewToolResultError(partcat.ErrorMessage(err)), nil
		}

		results, err := deps.Searcher.Search(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(partcat.ErrorMessage(err)), nil
		}

		return mcp.NewToolResultText(partcat.FormatSearchResults(filter.Query, results)), nil
	})

	detailsTool := mcp.NewTool("get_component_details",
		mcp.WithDescription("Get full details for a single component by its catalog ID, including live stock, pricing and specifications."),
		mcp.WithString("component_id",
			mcp.Required(),
			mcp.Description("Catalog ID, e.g. 'C17976'"),
		),
	)
	s.AddTool(detailsTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("component_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := deps.Searcher.Details(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(partcat.ErrorMessage(err)), nil
		}

		return mcp.NewToolResultText(partcat.FormatDetails(result)), nil
	})

	statusTool := mcp.NewTool("catalog_status",
		mcp.WithDescription("Report the state of the local catalog store: component and category counts and when the dataset was downloaded."),
	)
	s.AddTool(statusTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status, err := deps.Catalog.Status(ctx)
		if err != nil {
			return mcp.NewToolResultError(partcat.ErrorMessage(err)), nil
		}

		return mcp.NewToolResultText(partcat.FormatStatus(status)), nil
	})

	return s
}

// searchFilterFromRequest converts MCP tool arguments into a search filter.
func searchFilterFromRequest(req mcp.CallToolRequest) (partcat.SearchFilter, error) {
	filter := partcat.SearchFilter{
		Query:     req.GetString("query", ""),
		BasicOnly: req.GetBool("basic_only", false),
		Limit:     req.GetInt("limit", partcat.DefaultSearchLimit),
	}

	if category := req.GetString("category", ""); category != "" {
		filter.Category = &category
	}
	if pkg := req.GetString("package", ""); pkg != "" {
		filter.Package = &pkg
	}
	if minStock := req.GetInt("min_stock", 0); minStock > 0 {
		filter.MinStock = &minStock
	}

	if resistance := req.GetString("resistance", ""); resistance != "" {
		ohms, ok := partcat.ParseResistance(resistance)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid resistance value %q", resistance)
		}
		filter.Resistance = &ohms
	}
	if capacitance := req.GetString("capacitance", ""); capacitance != "" {
		farads, ok := partcat.ParseCapacitance(capacitance)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid capacitance value %q", capacitance)
		}
		filter.Capacitance = &farads
	}
	if voltage := req.GetString("min_voltage", ""); voltage != "" {
		volts, ok := partcat.ParseVoltage(voltage)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid voltage value %q", voltage)
		}
		filter.VoltageMin = &volts
	}
	if current := req.GetString("min_current", ""); current != "" {
		amps, ok := partcat.ParseCurrent(current)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid current value %q", current)
		}
		filter.CurrentMin = &amps
	}
	if power := req.GetString("min_power", ""); power != "" {
		watts, ok := partcat.ParsePower(power)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid power value %q", power)
		}
		filter.PowerMin = &watts
	}

	return filter, filter.Validate()
}
