package object

// Visitor is called twice per visited object: once on entry, before any
// children (enter true), and once on exit, after all children (enter
// false). chain is the id prefix from the walk root; the root itself
// gets an empty chain. Returning true aborts the walk immediately.
type Visitor func(o Object, chain Chain, enter bool) (stop bool)

// WalkObject traverses o depth-first, pre-order. Children are visited
// in ascending id order within each container; the order is externally
// observable and stable. Every Item fetched during the walk is returned
// to its container before the walk moves on.
func WalkObject(o Object, chain Chain, fn Visitor) bool {
	if fn(o, chain, true) {
		return true
	}
	if IsContainer(o) {
		c := o.(Container)
		// A container holding id MaxID has MaxID+1 slots, one more
		// than the id type can count; iterate in int space.
		n := int(c.Size())
		if n < 0 {
			n = int(MaxID) + 1
		}
		for i := 0; i < n; i++ {
			id := ID(i)
			item := c.Item(id)
			if item == nil {
				continue
			}
			stopped := WalkObject(item, chain.Child(id), fn)
			c.ReturnItem(id, item)
			if stopped {
				return true
			}
		}
	}
	return fn(o, chain, false)
}

// WalkContainer traverses the subtree rooted at c, visiting c itself
// with the empty chain.
func WalkContainer(c Container, fn Visitor) bool {
	return WalkObject(c, Chain{}, fn)
}

// WalkRoot is the convenience entry point starting at the true root.
func WalkRoot(root Container, fn Visitor) bool {
	return WalkContainer(root, fn)
}
