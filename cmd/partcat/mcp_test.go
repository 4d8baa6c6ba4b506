package main

import (
	"testing"

	"github.com/fwojciec/partcat"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestSearchFilterFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("converts all tool arguments", func(t *testing.T) {
		t.Parallel()

		filter, err := searchFilterFromRequest(toolRequest(map[string]any{
			"query":       "voltage regulator",
			"category":    "Power Management",
			"package":     "SOT-23",
			"basic_only":  true,
			"min_stock":   float64(500),
			"min_voltage": "16V",
			"min_current": "500mA",
			"min_power":   "250mW",
			"limit":       float64(20),
		}))
		require.NoError(t, err)

		assert.Equal(t, "voltage regulator", filter.Query)
		require.NotNil(t, filter.Category)
		assert.Equal(t, "Power Management", *filter.Category)
		require.NotNil(t, filter.Package)
		assert.Equal(t, "SOT-23", *filter.Package)
		assert.True(t, filter.BasicOnly)
		require.NotNil(t, filter.MinStock)
		assert.Equal(t, 500, *filter.MinStock)
		require.NotNil(t, filter.VoltageMin)
		assert.InDelta(t, 16.0, *filter.VoltageMin, 0.001)
		require.NotNil(t, filter.CurrentMin)
		assert.InDelta(t, 0.5, *filter.CurrentMin, 0.001)
		require.NotNil(t, filter.PowerMin)
		assert.InDelta(t, 0.25, *filter.PowerMin, 0.001)
		assert.Equal(t, 20, filter.Limit)
	})

	t.Run("parses resistance and capacitance values", func(t *testing.T) {
		t.Parallel()

		filter, err := searchFilterFromRequest(toolRequest(map[string]any{
			"resistance":  "10k",
			"capacitance": "100nF",
		}))
		require.NoError(t, err)

		require.NotNil(t, filter.Resistance)
		assert.InDelta(t, 10000.0, *filter.Resistance, 0.001)
		require.NotNil(t, filter.Capacitance)
		assert.InDelta(t, 1e-7, *filter.Capacitance, 1e-12)
	})

	t.Run("a voltage-or-power-only filter is a valid query", func(t *testing.T) {
		t.Parallel()

		_, err := searchFilterFromRequest(toolRequest(map[string]any{"min_voltage": "50V"}))
		assert.NoError(t, err)

		_, err = searchFilterFromRequest(toolRequest(map[string]any{"min_power": "1W"}))
		assert.NoError(t, err)
	})

	t.Run("rejects unparsable parametric values", func(t *testing.T) {
		t.Parallel()

		for arg, value := range map[string]string{
			"resistance":  "ten-ish",
			"capacitance": "a lot",
			"min_voltage": "high",
			"min_current": "some",
			"min_power":   "plenty",
		} {
			_, err := searchFilterFromRequest(toolRequest(map[string]any{arg: value}))
			assert.Equal(t, partcat.EINVALID, partcat.ErrorCode(err), "argument %s", arg)
		}
	})

	t.Run("rejects an empty request", func(t *testing.T) {
		t.Parallel()

		_, err := searchFilterFromRequest(toolRequest(map[string]any{}))
		assert.Equal(t, partcat.EINVALID, partcat.ErrorCode(err))
	})
}
