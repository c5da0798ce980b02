package walmart

// SimulatedCartURL is the static cart URL reported by the simulator.
const SimulatedCartURL = "https://www.walmart.com/cart"

// SimulatedStatus is the fixed status reported for simulated additions.
const SimulatedStatus = "Simulated addition to cart"

// CartAction is the acknowledgment for a (simulated) cart addition.
type CartAction struct {
	ItemID  string `json:"item_id"`
	Status  string `json:"status"`
	CartURL string `json:"cart_url"`
}

// SimulateCartAdd returns a canned acknowledgment for adding an item
// to the cart. Real cart addition requires a user session, so no call
// is made and no state changes.
func SimulateCartAdd(itemID string) CartAction {
	return CartAction{
		ItemID:  itemID,
		Status:  SimulatedStatus,
		CartURL: SimulatedCartURL,
	}
}
