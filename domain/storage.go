package domain

// Storage keys shared by the stores and the navigation guard. The durable and
// tab-scoped tiers are disjoint Storage instances, so the "user" key never
// collides between them.
const (
	// KeyUser holds the serialized User (durable tier when remembered,
	// tab-scoped tier otherwise).
	KeyUser = "user"
	// KeyRememberMe holds "true"/"false" in the durable tier.
	KeyRememberMe = "rememberMe"
	// KeyCart holds the JSON array of cart items in the durable tier.
	KeyCart = "cart"
	// KeyCartVisible holds "true"/"false" in the durable tier.
	KeyCartVisible = "cartVisible"
)
