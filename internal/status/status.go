// Package status maps an order's lifecycle stage onto its display
// projection: a label, a completion percentage, an icon hint and the
// four-step fulfilment timeline. It holds no state; transitions are
// written elsewhere and this package only renders whatever value it is
// given.
package status

import "poppes-store/internal/model"

// Projection is the display view of a single order status.
type Projection struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Icon    string `json:"icon"`
}

// Step is one entry of the fulfilment timeline. Reached is true for the
// current status and every stage before it.
type Step struct {
	Status  model.OrderStatus `json:"status"`
	Label   string            `json:"label"`
	Icon    string            `json:"icon"`
	Reached bool              `json:"reached"`
}

// stages is the fixed forward-only order of fulfilment.
var stages = []model.OrderStatus{
	model.StatusPending,
	model.StatusPacked,
	model.StatusShipped,
	model.StatusDelivered,
}

var projections = map[model.OrderStatus]Projection{
	model.StatusPending:   {Label: "Pending", Percent: 25, Icon: "clock"},
	model.StatusPacked:    {Label: "Packed", Percent: 50, Icon: "package"},
	model.StatusShipped:   {Label: "Shipped", Percent: 75, Icon: "truck"},
	model.StatusDelivered: {Label: "Delivered", Percent: 100, Icon: "check"},
}

// unknown is the fallback for unrecognised status values.
var unknown = Projection{Label: "Unknown", Percent: 0, Icon: "help"}

// Of returns the display projection for s. Unrecognised values map to a
// neutral 0% projection.
func Of(s model.OrderStatus) Projection {
	if p, ok := projections[s]; ok {
		return p
	}
	return unknown
}

// Timeline returns the four fulfilment steps with steps at or before s
// marked as reached. An unrecognised status reaches no steps.
func Timeline(s model.OrderStatus) []Step {
	current := ordinal(s)

	steps := make([]Step, len(stages))
	for i, stage := range stages {
		p := projections[stage]
		steps[i] = Step{
			Status:  stage,
			Label:   p.Label,
			Icon:    p.Icon,
			Reached: current >= 0 && i <= current,
		}
	}
	return steps
}

// ordinal returns the position of s in the fixed stage order, or -1 when
// s is not a known status.
func ordinal(s model.OrderStatus) int {
	for i, stage := range stages {
		if stage == s {
			return i
		}
	}
	return -1
}
