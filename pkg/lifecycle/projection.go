package lifecycle

// Color is the severity category a status renders with.
type Color string

const (
	ColorBrand   Color = "brand"
	ColorWarning Color = "warning"
	ColorSuccess Color = "success"
	ColorError   Color = "error"
)

// Projection is the display-oriented view of a status: a 0-100 progress
// value, a color category and a human label. Identical for the customer
// tracking screen and the provider dashboard.
type Projection struct {
	Percent int
	Color   Color
	Label   string
}

// Project maps a status to its projection. Pure and total: an unrecognized
// status falls back to a low-progress placeholder instead of failing, since
// display code must never crash on data from an older or newer backend.
func Project(s Status) Projection {
	switch s {
	case StatusPending:
		return Projection{Percent: 10, Color: ColorBrand, Label: "Waiting for shop approval"}
	case StatusPickedUp:
		return Projection{Percent: 30, Color: ColorBrand, Label: "Clothes picked up"}
	case StatusWashing:
		return Projection{Percent: 50, Color: ColorBrand, Label: "Washing in progress"}
	case StatusIroning:
		return Projection{Percent: 70, Color: ColorBrand, Label: "Ironing your clothes"}
	case StatusReady:
		return Projection{Percent: 90, Color: ColorWarning, Label: "Ready for delivery"}
	case StatusDelivered:
		return Projection{Percent: 100, Color: ColorSuccess, Label: "Delivered successfully"}
	case StatusRejected:
		// Terminal, so the bar reads full even though nothing progressed.
		return Projection{Percent: 100, Color: ColorError, Label: "Order rejected"}
	default:
		return Projection{Percent: 5, Color: ColorBrand, Label: "Processing order..."}
	}
}
