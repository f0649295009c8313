package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"resupplycharts/internal/charts"
)

// chartOptions applies the query overrides (size, style, grid, hover) to the
// catalog options of a chart. fallback is used when neither sets a size.
func chartOptions(base charts.Options, q url.Values, fallback charts.Size) (charts.Options, error) {
	opts := base
	if opts.Size == "" {
		opts.Size = fallback
	}

	if v := q.Get("size"); v != "" {
		size, err := charts.ParseSize(v)
		if err != nil {
			return opts, err
		}
		opts.Size = size
	}
	if v := q.Get("style"); v != "" {
		style, err := charts.ParseLineStyle(v)
		if err != nil {
			return opts, err
		}
		opts.LineStyle = style
	}
	if v := q.Get("grid"); v != "" {
		grid, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid grid flag %q", v)
		}
		opts.ShowGrid = grid
	}
	if v := q.Get("hover"); v != "" {
		hover, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid hover flag %q", v)
		}
		opts.EnableHover = hover
	}
	return opts, nil
}

// pointerX reads the pointer column, if the request has one
func pointerX(q url.Values) (float64, bool, error) {
	v := q.Get("pointer")
	if v == "" {
		return 0, false, nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false, fmt.Errorf("invalid pointer %q", v)
	}
	return x, true, nil
}

// reportLimit parses the list limit: 10 by default, at most 100
func reportLimit(q url.Values) int {
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
