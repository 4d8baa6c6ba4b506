package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/partcat"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", partcat.ErrorMessage(err))
		return err
	}

	if err := ensureStore(deps); err != nil {
		return err
	}

	results, err := deps.Searcher.Search(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", partcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, partcat.FormatSearchResults(filter.Query, results))
	return nil
}

// filter converts command flags into a search filter, parsing parametric
// values into base units.
func (c *SearchCmd) filter() (partcat.SearchFilter, error) {
	filter := partcat.SearchFilter{
		Query:     strings.Join(c.Query, " "),
		BasicOnly: c.Basic,
		Limit:     c.Limit,
	}

	if c.Category != "" {
		filter.Category = &c.Category
	}
	if c.Package != "" {
		filter.Package = &c.Package
	}
	if c.MinStock > 0 {
		filter.MinStock = &c.MinStock
	}

	if c.Resistance != "" {
		ohms, ok := partcat.ParseResistance(c.Resistance)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid resistance value %q", c.Resistance)
		}
		filter.Resistance = &ohms
	}
	if c.Capacitance != "" {
		farads, ok := partcat.ParseCapacitance(c.Capacitance)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid capacitance value %q", c.Capacitance)
		}
		filter.Capacitance = &farads
	}
	if c.MinVoltage != "" {
		volts, ok := partcat.ParseVoltage(c.MinVoltage)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid voltage value %q", c.MinVoltage)
		}
		filter.VoltageMin = &volts
	}
	if c.MinCurrent != "" {
		amps, ok := partcat.ParseCurrent(c.MinCurrent)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid current value %q", c.MinCurrent)
		}
		filter.CurrentMin = &amps
	}
	if c.MinPower != "" {
		watts, ok := partcat.ParsePower(c.MinPower)
		if !ok {
			return filter, partcat.Errorf(partcat.EINVALID, "invalid power value %q", c.MinPower)
		}
		filter.PowerMin = &watts
	}

	return filter, filter.Validate()
}
