package service

import (
	"fmt"

	"ticketportal/internal/domain"
)

// PageState is the lifecycle state of one payment-result page.
type PageState string

const (
	StateIdle       PageState = "IDLE"
	StateLoading    PageState = "LOADING"
	StateResolved   PageState = "RESOLVED"
	StateUnresolved PageState = "UNRESOLVED"
)

type pageEventKind int

const (
	eventStart pageEventKind = iota
	eventComplete
)

// PageEvent drives a ResultPage from one state to the next.
type PageEvent struct {
	kind   pageEventKind
	result domain.VerificationResult
}

// StartEvent is fired when the verification call is issued.
func StartEvent() PageEvent {
	return PageEvent{kind: eventStart}
}

// CompleteEvent is fired when the verification call finishes.
func CompleteEvent(result domain.VerificationResult) PageEvent {
	return PageEvent{kind: eventComplete, result: result}
}

// ResultPage is the view state of a payment-result page.
// The zero value is an idle page.
type ResultPage struct {
	State  PageState
	Result domain.VerificationResult
}

// NewResultPage returns an idle page.
func NewResultPage() ResultPage {
	return ResultPage{State: StateIdle}
}

// Transition applies ev to page. Only Idle->Loading on start and
// Loading->Resolved|Unresolved on completion are legal.
func Transition(page ResultPage, ev PageEvent) (ResultPage, error) {
	state := page.State
	if state == "" {
		state = StateIdle
	}

	switch {
	case state == StateIdle && ev.kind == eventStart:
		return ResultPage{State: StateLoading}, nil

	case state == StateLoading && ev.kind == eventComplete:
		if ev.result.IsResolved() {
			return ResultPage{State: StateResolved, Result: ev.result}, nil
		}
		return ResultPage{State: StateUnresolved, Result: ev.result}, nil
	}

	return page, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev.kind, state)
}

func (k pageEventKind) String() string {
	switch k {
	case eventStart:
		return "start"
	case eventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the page has reached a final state.
func (p ResultPage) Terminal() bool {
	return p.State == StateResolved || p.State == StateUnresolved
}
