// internal/domain/checkout/state.go
package checkout

// State is the checkout progression stage. It is derived from what the
// cart already holds plus the placement flags, so a reloaded session
// resumes at the right step.
type State string

const (
	StateEmptyCart        State = "EMPTY_CART"
	StateShippingPending  State = "SHIPPING_PENDING"
	StateShippingSet      State = "SHIPPING_SET"
	StatePaymentMethodSet State = "PAYMENT_METHOD_SET"
	StateOrderPlacing     State = "ORDER_PLACING"
	StateOrderPlaced      State = "ORDER_PLACED"
)

// validTransitions defines the forward edges of the checkout progression
var validTransitions = map[State][]State{
	StateEmptyCart:        {StateShippingPending},
	StateShippingPending:  {StateShippingSet, StateEmptyCart},
	StateShippingSet:      {StatePaymentMethodSet, StateShippingPending, StateEmptyCart},
	StatePaymentMethodSet: {StateOrderPlacing, StateShippingSet, StateEmptyCart},
	StateOrderPlacing:     {StateOrderPlaced, StatePaymentMethodSet},
	StateOrderPlaced:      {StateEmptyCart},
}

// CanTransition reports whether moving from s to target is a valid step.
func (s State) CanTransition(target State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
