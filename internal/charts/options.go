package charts

// Default display settings
const (
	DefaultValueLabel          = "Value"
	DefaultSecondaryValueLabel = "Secondary Value"
	DefaultPrimaryLineColor    = "black"
	DefaultSecondaryLineColor  = "#3182ce"
)

// Options configures one chart. The zero value renders a large continuous
// chart without hover, grid or custom labels.
type Options struct {
	Size                    Size      `json:"size"`
	LineStyle               LineStyle `json:"line_style"`
	EnableHover             bool      `json:"enable_hover"`
	ShowGrid                bool      `json:"show_grid"`
	ValueFormatter          Formatter `json:"-"`
	SecondaryValueFormatter Formatter `json:"-"`
	ValueLabel              string    `json:"value_label"`
	SecondaryValueLabel     string    `json:"secondary_value_label"`
	PrimaryLineColor        string    `json:"primary_line_color"`
	SecondaryLineColor      string    `json:"secondary_line_color"`
}

// withDefaults fills every unset option
func (o Options) withDefaults() Options {
	if _, ok := layouts[o.Size]; !ok {
		o.Size = SizeLarge
	}
	if o.LineStyle != LineStep {
		o.LineStyle = LineContinuous
	}
	if o.ValueFormatter == nil {
		o.ValueFormatter = Fixed(2)
	}
	if o.SecondaryValueFormatter == nil {
		o.SecondaryValueFormatter = Fixed(2)
	}
	if o.ValueLabel == "" {
		o.ValueLabel = DefaultValueLabel
	}
	if o.SecondaryValueLabel == "" {
		o.SecondaryValueLabel = DefaultSecondaryValueLabel
	}
	if o.PrimaryLineColor == "" {
		o.PrimaryLineColor = DefaultPrimaryLineColor
	}
	if o.SecondaryLineColor == "" {
		o.SecondaryLineColor = DefaultSecondaryLineColor
	}
	return o
}
