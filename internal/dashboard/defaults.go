package dashboard

import (
	"resupplycharts/internal/charts"
	"resupplycharts/internal/fetchers"
)

// Default returns the resupply market charts
func Default() *Catalog {
	dollars := charts.Prefixed("$", charts.Abbreviated())

	c, err := NewCatalog(
		ChartSpec{
			Name:     "sreusd",
			Title:    "sreUSD",
			DataPath: "data.sreusd",
			Mapping: fetchers.FieldMapping{
				Value:      "apr",
				ValueScale: 100,
				Secondary:  "total_assets",
			},
			Options: charts.Options{
				Size:                    charts.SizeMedium,
				EnableHover:             true,
				ValueLabel:              "APR",
				ValueFormatter:          charts.RoundedPercent(),
				SecondaryValueLabel:     "TVL",
				SecondaryValueFormatter: charts.Millions(1),
				PrimaryLineColor:        "green",
				SecondaryLineColor:      "black",
			},
			Caption: "Savings **sreUSD** vault. APR on the left axis, total assets (TVL) on the right.",
			Metrics: []Metric{
				{Label: "APR", Axis: charts.AxisPrimary, Format: charts.Percent(2)},
				{Label: "TVL", Axis: charts.AxisSecondary, Format: charts.Millions(2)},
			},
		},
		ChartSpec{
			Name:     "bad-debt",
			Title:    "Bad Debt",
			DataPath: "data.loan_repayment.bad_debt_history",
			Mapping:  fetchers.FieldMapping{Value: "amount"},
			Options: charts.Options{
				Size:           charts.SizeLarge,
				LineStyle:      charts.LineStep,
				ShowGrid:       true,
				EnableHover:    true,
				ValueLabel:     "Bad Debt",
				ValueFormatter: dollars,
			},
			Caption: "Outstanding protocol bad debt. Each step is a repayment or a new write-off.",
			Metrics: []Metric{
				{Label: "Remaining", Axis: charts.AxisPrimary, Format: dollars},
			},
		},
		ChartSpec{
			Name:     "yearn-loan",
			Title:    "Yearn Loan",
			DataPath: "data.loan_repayment.yearn_loan_history",
			Mapping:  fetchers.FieldMapping{Value: "amount"},
			Options: charts.Options{
				Size:           charts.SizeLarge,
				LineStyle:      charts.LineStep,
				ShowGrid:       true,
				EnableHover:    true,
				ValueLabel:     "Loan",
				ValueFormatter: dollars,
			},
			Caption: "Balance of the Yearn loan as it is repaid.",
			Metrics: []Metric{
				{Label: "Outstanding", Axis: charts.AxisPrimary, Format: dollars},
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}
