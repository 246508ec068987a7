package core

// ResponseKind tags the outcome of handling one inbound message.
// Rendering to platform-specific text or UI elements is the transport's
// job; the core only signals what happened and with which quantities.
type ResponseKind int

const (
	// ResponseNone means the message was not recognized and the
	// transport should apply its default behavior.
	ResponseNone ResponseKind = iota
	ResponseHelp
	ResponseTodayTotal
	ResponseNoDataToday
	ResponseRecorded
	ResponseError
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseHelp:
		return "help"
	case ResponseTodayTotal:
		return "today_total"
	case ResponseNoDataToday:
		return "no_data_today"
	case ResponseRecorded:
		return "recorded"
	case ResponseError:
		return "error"
	default:
		return "none"
	}
}

// Response is the payload handed back to the transport collaborator.
type Response struct {
	Kind     ResponseKind
	Recorded Quantity // set for ResponseRecorded
	Total    Quantity // set for ResponseTodayTotal and, when HasTotal, ResponseRecorded
	// HasTotal distinguishes "recorded, running total known" from
	// "recorded, but the follow-up aggregation failed". An insert is
	// never rolled back by a failing aggregation.
	HasTotal bool

	// Help payload: suggested quick-reply volumes and the today
	// trigger, for transports that render keyboards or menus.
	QuickAmounts []Quantity
	TodayKeyword string
}
