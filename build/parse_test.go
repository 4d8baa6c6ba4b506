package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShard(t *testing.T) {
	t.Parallel()

	t.Run("decodes positional rows", func(t *testing.T) {
		t.Parallel()

		payload := []byte(`{"components": [
			[17976, "0805W8F1002T5E", 100000, "10kOhm resistor", "https://example.com/ds.pdf",
			 [{"qFrom": 100, "qTo": 199, "price": 0.0008}], "https://example.com/img.jpg", null,
			 {"Basic/Extended": {"values": {"default": ["Basic"]}},
			  "Manufacturer": {"values": {"default": ["UNI-ROYAL"]}},
			  "Package": {"values": {"default": ["0805"]}}}]
		]}`)

		comps, skipped, err := parseShard(payload)
		require.NoError(t, err)
		require.Len(t, comps, 1)
		assert.Zero(t, skipped)

		comp := comps[0]
		assert.Equal(t, "C17976", comp.CatalogID)
		assert.Equal(t, "0805W8F1002T5E", comp.MPN)
		assert.Equal(t, 100000, comp.Stock)
		assert.True(t, comp.Basic)
		assert.False(t, comp.Preferred)
		assert.Equal(t, "UNI-ROYAL", comp.Manufacturer)
		assert.Equal(t, "0805", comp.Package)
		assert.Equal(t, "https://example.com/ds.pdf", comp.DatasheetURL)
		require.Len(t, comp.Prices, 1)
		assert.Equal(t, 100, comp.Prices[0].Qty)
		assert.InDelta(t, 0.0008, comp.Prices[0].Price, 1e-9)
	})

	t.Run("skips malformed rows", func(t *testing.T) {
		t.Parallel()

		payload := []byte(`{"components": [
			["C1", "MPN1", 10, "good part", "", [], "", null, {}],
			["too short"],
			"not an array",
			[null, "MPN2", 10, "missing id", "", [], "", null, {}]
		]}`)

		comps, skipped, err := parseShard(payload)
		require.NoError(t, err)
		assert.Len(t, comps, 1)
		assert.Equal(t, 3, skipped)
	})

	t.Run("marks preferred parts", func(t *testing.T) {
		t.Parallel()

		payload := []byte(`{"components": [
			["C2", "MPN2", 10, "preferred part", "", [], "", null,
			 {"Basic/Extended": {"values": {"default": ["Preferred"]}}}]
		]}`)

		comps, _, err := parseShard(payload)
		require.NoError(t, err)
		require.Len(t, comps, 1)
		assert.False(t, comps[0].Basic)
		assert.True(t, comps[0].Preferred)
	})

	t.Run("parses string price tiers", func(t *testing.T) {
		t.Parallel()

		payload := []byte(`{"components": [
			["C3", "MPN3", 10, "part", "",
			 [{"qFrom": 1, "price": "$0.0123"}, {"qFrom": 10, "price": "garbage"}],
			 "", null, {}]
		]}`)

		comps, _, err := parseShard(payload)
		require.NoError(t, err)
		require.Len(t, comps, 1)
		require.Len(t, comps[0].Prices, 1)
		assert.Equal(t, 1, comps[0].Prices[0].Qty)
		assert.InDelta(t, 0.0123, comps[0].Prices[0].Price, 1e-9)
	})

	t.Run("rejects payloads that are not shard documents", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseShard([]byte("not json"))
		assert.Error(t, err)
	})
}
