package build

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/partcat"
)

// Positions of component fields within a shard row array.
const (
	fieldCatalogID = 0
	fieldMPN       = 1
	fieldStock     = 2
	fieldDesc      = 3
	fieldDatasheet = 4
	fieldPrices    = 5
	fieldImage     = 6
	fieldAttrs     = 8
)

// shardDocument mirrors a decompressed shard payload: one subcategory's
// components, each encoded as a positional array.
type shardDocument struct {
	Components []json.RawMessage `json:"components"`
}

// parseShard decodes a shard payload into components. Malformed individual
// rows are skipped and counted rather than failing the shard; a payload
// that is not the expected document shape fails with EINVALID.
// Category and manufacturer surrogate IDs are assigned later by the
// builder; the manufacturer name travels on the display field.
func parseShard(payload []byte) (comps []*partcat.Component, skipped int, err error) {
	var doc shardDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, 0, partcat.Errorf(partcat.EINVALID, "malformed shard payload: %v", err)
	}

	for _, raw := range doc.Components {
		comp, ok := parseComponentRow(raw)
		if !ok {
			skipped++
			continue
		}
		comps = append(comps, comp)
	}

	return comps, skipped, nil
}

func parseComponentRow(raw json.RawMessage) (*partcat.Component, bool) {
	var row []any
	if err := json.Unmarshal(raw, &row); err != nil || len(row) <= fieldStock {
		return nil, false
	}

	id := partcat.NormalizeCatalogID(stringAt(row, fieldCatalogID))
	if id == "" {
		return nil, false
	}

	comp := &partcat.Component{
		CatalogID:    id,
		MPN:          stringAt(row, fieldMPN),
		Stock:        intAt(row, fieldStock),
		Description:  stringAt(row, fieldDesc),
		DatasheetURL: stringAt(row, fieldDatasheet),
		ImageURL:     stringAt(row, fieldImage),
		Prices:       parsePriceTiers(row),
	}

	if attrs, ok := at(row, fieldAttrs).(map[string]any); ok && len(attrs) > 0 {
		comp.Attrs = attrs
		switch attrDefault(attrs, "Basic/Extended") {
		case "Basic":
			comp.Basic = true
		case "Preferred":
			comp.Preferred = true
		}
		comp.Manufacturer = attrDefault(attrs, "Manufacturer")
		comp.Package = attrDefault(attrs, "Package")
	}

	return comp, true
}

func parsePriceTiers(row []any) []partcat.PriceTier {
	list, ok := at(row, fieldPrices).([]any)
	if !ok {
		return nil
	}

	var tiers []partcat.PriceTier
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		price, ok := priceValue(entry["price"])
		if !ok {
			continue
		}
		tiers = append(tiers, partcat.PriceTier{
			Qty:   asInt(entry["qFrom"]),
			Price: price,
		})
	}
	return tiers
}

// priceValue accepts tier prices encoded as JSON numbers or as strings,
// possibly with a currency prefix.
func priceValue(v any) (float64, bool) {
	switch p := v.(type) {
	case float64:
		return p, true
	case string:
		return partcat.ParsePrice(p)
	default:
		return 0, false
	}
}

// attrDefault extracts the first default value of a parametric attribute:
// attrs[key].values.default[0].
func attrDefault(attrs map[string]any, key string) string {
	attr, ok := attrs[key].(map[string]any)
	if !ok {
		return ""
	}
	values, ok := attr["values"].(map[string]any)
	if !ok {
		return ""
	}
	defaults, ok := values["default"].([]any)
	if !ok || len(defaults) == 0 {
		return ""
	}
	s, _ := defaults[0].(string)
	return s
}

func at(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func stringAt(row []any, i int) string {
	switch v := at(row, i).(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func intAt(row []any, i int) int {
	return asInt(at(row, i))
}

func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}
