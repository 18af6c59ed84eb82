package lifecycle

// ViewKind discriminates the affordance the provider dashboard renders for an
// order card.
type ViewKind int

const (
	// ViewTwoButton is the Pending branch: Reject next to Accept.
	ViewTwoButton ViewKind = iota
	// ViewSingleButton is one in-progress step with a single advance button.
	ViewSingleButton
	// ViewTerminalBadge is a completed or rejected order with no actions.
	ViewTerminalBadge
)

// OwnerView is the concrete affordance for one status. Exactly one of the
// variant field groups is populated, selected by Kind.
type OwnerView struct {
	Kind ViewKind

	// TwoButton variant.
	Reject ActionSpec
	Accept ActionSpec

	// SingleButton variant.
	Button ActionSpec

	// TerminalBadge variant.
	Badge string
	Tone  Color
}

// ResolveOwnerView maps a status to the affordance the dashboard must render.
// Exhaustive over the status enumeration; an unknown status renders as a
// neutral badge rather than a missing card.
func ResolveOwnerView(status Status) OwnerView {
	switch status {
	case StatusPending:
		actions := AvailableActions(status, RoleOwner)
		return OwnerView{Kind: ViewTwoButton, Reject: actions[0], Accept: actions[1]}
	case StatusPickedUp, StatusWashing, StatusIroning, StatusReady:
		return OwnerView{Kind: ViewSingleButton, Button: AvailableActions(status, RoleOwner)[0]}
	case StatusDelivered:
		return OwnerView{Kind: ViewTerminalBadge, Badge: "Order Completed", Tone: ColorSuccess}
	case StatusRejected:
		return OwnerView{Kind: ViewTerminalBadge, Badge: "Order Rejected", Tone: ColorError}
	default:
		return OwnerView{Kind: ViewTerminalBadge, Badge: "Processing", Tone: ColorBrand}
	}
}
