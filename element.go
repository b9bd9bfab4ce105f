package daregister

import "sort"

// Element is a positioned run of text extracted from one page of the
// register. Elements are built fresh for every page and never outlive the
// page that produced them.
type Element struct {
	Text string
	Rect Rect
}

// sortReadingOrder sorts elements into reading order: ascending vertical
// position, then ascending horizontal position for ties.
func sortReadingOrder(elements []Element) {
	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].Rect.Y != elements[j].Rect.Y {
			return elements[i].Rect.Y < elements[j].Rect.Y
		}
		return elements[i].Rect.X < elements[j].Rect.X
	})
}
