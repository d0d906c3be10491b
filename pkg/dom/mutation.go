package dom

// MutationOp is the type of surface mutation.
type MutationOp uint8

const (
	OpCreateElement MutationOp = iota + 1 // New detached element
	OpCreateText                          // New detached text node
	OpInsertBefore                        // Insert or move a node
	OpRemoveChild                         // Remove a node from its parent
	OpSetText                             // Update character data
	OpSetAttr                             // Set/update attribute
	OpRemoveAttr                          // Remove attribute
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpInsertBefore:
		return "InsertBefore"
	case OpRemoveChild:
		return "RemoveChild"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	default:
		return "Unknown"
	}
}

// Mutation records a single surface operation.
type Mutation struct {
	Op     MutationOp
	Target *Node  // Node created, inserted, removed or updated
	Parent *Node  // Parent for InsertBefore/RemoveChild
	Ref    *Node  // Reference sibling for InsertBefore (nil = append)
	Key    string // Attribute name
	Value  string // Tag, text or attribute value
}

// Recorder collects mutations reported by a Document.
type Recorder struct {
	Mutations []Mutation
}

// Record appends m. It has the Observer signature.
func (r *Recorder) Record(m Mutation) {
	r.Mutations = append(r.Mutations, m)
}

// Ops returns the recorded operation kinds in order.
func (r *Recorder) Ops() []MutationOp {
	ops := make([]MutationOp, len(r.Mutations))
	for i, m := range r.Mutations {
		ops[i] = m.Op
	}
	return ops
}

// Reset drops all recorded mutations.
func (r *Recorder) Reset() {
	r.Mutations = r.Mutations[:0]
}
