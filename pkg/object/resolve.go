package object

// Loan is a borrowed reference produced by resolution. The object stays
// checked out of its lending container until Release performs the
// obligatory ReturnItem. Release is idempotent and safe on error paths:
// defer it immediately after a successful lookup.
type Loan struct {
	parent   Container
	id       ID
	obj      Object
	released bool
}

// Object returns the resolved object.
func (l *Loan) Object() Object { return l.obj }

// ID returns the slot id the object was fetched at, or InvalidID for a
// root loan.
func (l *Loan) ID() ID { return l.id }

// Parent returns the lending container, or nil for a root loan.
func (l *Loan) Parent() Container { return l.parent }

// Release returns the object to its lending container. Subsequent calls
// do nothing.
func (l *Loan) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	if l.parent != nil {
		l.parent.ReturnItem(l.id, l.obj)
	}
}

// Lookup resolves chain starting at start, performing the final Item
// fetch. The empty chain resolves to start itself (a root loan whose
// Release is a no-op). Resolution never allocates objects: it only
// dereferences existing container slots, gated by capability flags, and
// returns intermediate objects to their lenders as the descent passes
// them.
func Lookup(start Object, chain Chain) (*Loan, error) {
	if len(chain) > MaxDepth {
		return nil, ErrChainTooDeep
	}
	cur := start
	var lender Container
	lenderID := InvalidID
	for _, id := range chain {
		if id < 0 || id > MaxID {
			if lender != nil {
				lender.ReturnItem(lenderID, cur)
			}
			return nil, ErrInvalidID
		}
		if !IsContainer(cur) {
			if lender != nil {
				lender.ReturnItem(lenderID, cur)
			}
			return nil, ErrNotContainer
		}
		c := cur.(Container)
		next := c.Item(id)
		if next == nil {
			if lender != nil {
				lender.ReturnItem(lenderID, cur)
			}
			return nil, ErrNotFound
		}
		if lender != nil {
			lender.ReturnItem(lenderID, cur)
		}
		lender, lenderID, cur = c, id, next
	}
	if cur == nil {
		return nil, ErrNotFound
	}
	return &Loan{parent: lender, id: lenderID, obj: cur}, nil
}

// LookupContainer resolves all but the terminal id and requires the
// deepest object reached to be a container. The returned loan holds
// that container and the terminal id is reported separately, for the
// caller to finish the final Item, Add, or Remove step itself.
func LookupContainer(start Object, chain Chain) (*Loan, ID, error) {
	if len(chain) == 0 {
		return nil, InvalidID, ErrNotFound
	}
	if len(chain) > MaxDepth {
		return nil, InvalidID, ErrChainTooDeep
	}
	last := chain[len(chain)-1]
	if last < 0 || last > MaxID {
		return nil, InvalidID, ErrInvalidID
	}
	loan, err := Lookup(start, chain[:len(chain)-1])
	if err != nil {
		return nil, InvalidID, err
	}
	if !IsContainer(loan.Object()) {
		loan.Release()
		return nil, InvalidID, ErrNotContainer
	}
	return loan, last, nil
}

// LookupOpenContainer is LookupContainer gated on the open-container
// flags, for callers that need to Add or Remove at the terminal id.
func LookupOpenContainer(start Object, chain Chain) (*Loan, ID, error) {
	loan, last, err := LookupContainer(start, chain)
	if err != nil {
		return nil, InvalidID, err
	}
	if !IsOpenContainer(loan.Object()) {
		loan.Release()
		return nil, InvalidID, ErrNotOpenContainer
	}
	return loan, last, nil
}

// FetchContained performs a single-level Item fetch: nil unless o is a
// container holding an object at id. The caller owes the container a
// ReturnItem for a non-nil result.
func FetchContained(o Object, id ID) Object {
	if !IsContainer(o) || id < 0 {
		return nil
	}
	return o.(Container).Item(id)
}
