package flow

import "fmt"

var actionLabels = map[ActionKind]string{
	ActionRequest: "Send Connection Request",
	ActionMessage: "Send Message",
	ActionInMail:  "InMail",
	ActionProfile: "View Profile",
	ActionFollow:  "Follow",
	ActionPost:    "Like Post",
}

// ActionLabel returns the display text of an outreach step.
func ActionLabel(kind ActionKind) string {
	if l, ok := actionLabels[kind]; ok {
		return l
	}
	return "New Node"
}

// WaitLabel formats a wait step, e.g. "1 Day at 08:00" or "2 Days at 09:30".
func WaitLabel(p WaitParams) string {
	unit := "Day"
	if p.Days > 1 {
		unit = "Days"
	}
	return fmt.Sprintf("%d %s at %s", p.Days, unit, p.Time)
}

// Label derives the display text of a node from its kind and parameters.
func Label(n Node) string {
	switch n.Kind {
	case KindStart:
		return "Campaign Start"
	case KindAction:
		return ActionLabel(n.Action)
	case KindWait:
		if n.Wait == nil {
			return WaitLabel(WaitParams{Days: 1, Time: "00:00"})
		}
		return WaitLabel(*n.Wait)
	case KindPlaceholder:
		return "+"
	case KindEnd:
		return "End"
	}
	return "New Node"
}
