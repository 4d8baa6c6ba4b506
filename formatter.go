package partcat

import (
	"fmt"
	"strings"
)

// productPageURL is the public product page for a catalog entry.
const productPageURL = "https://jlcpcb.com/partdetail/"

// FormatSearchResults renders enriched search results as markdown for
// display or LLM context. Each item states whether its stock and pricing
// come from the live API or only from the local database snapshot.
func FormatSearchResults(query string, results []*EnrichedComponent) string {
	if len(results) == 0 {
		return fmt.Sprintf("No components found matching %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Search Results for %q\n\n", query)
	fmt.Fprintf(&b, "Found %d components\n\n", len(results))

	for i, r := range results {
		c := r.Component
		fmt.Fprintf(&b, "### %d. %s - %s\n\n", i+1, c.CatalogID, orNA(c.MPN))
		fmt.Fprintf(&b, "- **Type**: %s\n", partType(c))
		fmt.Fprintf(&b, "- **Manufacturer**: %s\n", orNA(c.Manufacturer))
		fmt.Fprintf(&b, "- **Package**: %s\n", orNA(c.Package))
		fmt.Fprintf(&b, "- **Category**: %s / %s\n", c.Category, c.Subcategory)
		if r.Live {
			fmt.Fprintf(&b, "- **Stock**: %d units (live)\n", r.CurrentStock())
		} else {
			fmt.Fprintf(&b, "- **Stock**: %d units (database only)\n", r.CurrentStock())
		}

		if prices := r.CurrentPrices(); len(prices) > 0 {
			b.WriteString("- **Pricing**:\n")
			for _, tier := range prices[:min(len(prices), 3)] {
				fmt.Fprintf(&b, "  - %d+: $%.4f\n", tier.Qty, tier.Price)
			}
		}

		if ds := r.CurrentDatasheet(); ds != "" {
			fmt.Fprintf(&b, "- **Datasheet**: %s\n", ds)
		}
		fmt.Fprintf(&b, "- **Product Link**: %s%s\n\n", productPageURL, c.CatalogID)
	}

	return b.String()
}

// FormatDetails renders a single enriched component as a markdown detail
// record, including live specifications and images when available.
func FormatDetails(r *EnrichedComponent) string {
	c := r.Component

	var b strings.Builder
	fmt.Fprintf(&b, "## %s - %s\n\n", c.CatalogID, orNA(c.MPN))
	fmt.Fprintf(&b, "### %s Part\n\n", partType(c))

	b.WriteString("### General Information\n\n")
	fmt.Fprintf(&b, "- **Manufacturer**: %s\n", orNA(c.Manufacturer))
	fmt.Fprintf(&b, "- **Package**: %s\n", orNA(c.Package))
	fmt.Fprintf(&b, "- **Category**: %s / %s\n\n", c.Category, c.Subcategory)

	b.WriteString("### Availability\n\n")
	if r.Live {
		fmt.Fprintf(&b, "- **Current Stock**: %d units\n\n", r.CurrentStock())
	} else {
		fmt.Fprintf(&b, "- **Catalog Stock**: %d units\n", c.Stock)
		b.WriteString("- *Live data unavailable*\n\n")
	}

	if prices := r.CurrentPrices(); len(prices) > 0 {
		b.WriteString("### Pricing Tiers\n\n")
		b.WriteString("| Quantity | Unit Price (USD) |\n")
		b.WriteString("|----------|------------------|\n")
		for _, tier := range prices {
			fmt.Fprintf(&b, "| %d+ | $%.4f |\n", tier.Qty, tier.Price)
		}
		b.WriteString("\n")
	}

	if r.Live && len(r.Snapshot.Params) > 0 {
		b.WriteString("### Specifications\n\n")
		for _, p := range r.Snapshot.Params {
			if p.Name != "" && p.Value != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", p.Name, p.Value)
			}
		}
		b.WriteString("\n")
	}

	if r.Live && len(r.Snapshot.Images) > 0 {
		b.WriteString("### Images\n\n")
		for _, img := range r.Snapshot.Images[:min(len(r.Snapshot.Images), 3)] {
			fmt.Fprintf(&b, "![Component Image](%s)\n\n", img)
		}
	}

	b.WriteString("### Links\n\n")
	fmt.Fprintf(&b, "- **Product Page**: %s%s\n", productPageURL, c.CatalogID)
	if ds := r.CurrentDatasheet(); ds != "" {
		fmt.Fprintf(&b, "- **Datasheet**: %s\n", ds)
	}

	return b.String()
}

// FormatStatus renders the store status as a short markdown report.
func FormatStatus(s *Status) string {
	var b strings.Builder
	b.WriteString("## Catalog Status\n\n")
	if !s.HasStore {
		b.WriteString("No catalog store has been built yet. Run `partcat refresh` to build one.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- **Components**: %d\n", s.Components)
	fmt.Fprintf(&b, "- **Categories**: %d\n", s.Categories)
	if m := s.Meta; m != nil {
		fmt.Fprintf(&b, "- **Downloaded**: %s\n", m.DownloadedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(&b, "- **Source**: %s\n", m.Source)
		fmt.Fprintf(&b, "- **Build ID**: %s\n", m.BuildID)
	}
	return b.String()
}

func partType(c *Component) string {
	switch {
	case c.Basic:
		return "Basic"
	case c.Preferred:
		return "Preferred"
	default:
		return "Extended"
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
