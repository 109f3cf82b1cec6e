package domain

// ScrollPosition is the viewport offset attached to a navigation result.
// Fresh navigations land at the top; back navigation restores the position
// saved for the history entry being returned to.
type ScrollPosition struct {
	Top  int
	Left int
}
