package frame

import "encoding/json"

// Frame is one snapshot of algorithm state at a point in its execution
// timeline. A frame may carry any combination of structure snapshots plus a
// flat variable table; empty categories are simply omitted.
//
// Frames are immutable once decoded. The execution backend owns their
// contents; this package only reads them.
type Frame struct {
	FrameID     int    `json:"frame_id" bson:"frame_id"`
	TimestampMS int    `json:"timestamp_ms,omitempty" bson:"timestamp_ms,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	Arrays      []ArraySnapshot `json:"arrays,omitempty" bson:"arrays,omitempty"`
	Trees       []TreeSnapshot  `json:"trees,omitempty" bson:"trees,omitempty"`
	Graphs      []GraphSnapshot `json:"graphs,omitempty" bson:"graphs,omitempty"`
	LinkedLists []ListSnapshot  `json:"linked_lists,omitempty" bson:"linked_lists,omitempty"`
	Stacks      []StackSnapshot `json:"stacks,omitempty" bson:"stacks,omitempty"`
	Queues      []QueueSnapshot `json:"queues,omitempty" bson:"queues,omitempty"`
	Variables   []Variable      `json:"variables,omitempty" bson:"variables,omitempty"`
}

// IsEmpty reports whether the frame carries no structure data at all.
func (f *Frame) IsEmpty() bool {
	return len(f.Arrays) == 0 && len(f.Trees) == 0 && len(f.Graphs) == 0 &&
		len(f.LinkedLists) == 0 && len(f.Stacks) == 0 && len(f.Queues) == 0 &&
		len(f.Variables) == 0
}

// Range is an inclusive index span within a linear snapshot.
type Range struct {
	Start int `json:"start" bson:"start"`
	End   int `json:"end" bson:"end"`
}

// ArraySnapshot is an ordered sequence of scalar values, optionally decorated
// with search metadata emitted by searching algorithms.
//
// Highlights is kept raw: the backend emits several highlight shapes (flat
// index lists, parallel index/color/label lists) and pkg/annotate normalizes
// them at the rendering boundary.
type ArraySnapshot struct {
	Name            string          `json:"name,omitempty" bson:"name,omitempty"`
	Values          []float64       `json:"values" bson:"values"`
	Highlights      json.RawMessage `json:"highlights,omitempty" bson:"highlights,omitempty"`
	SearchRange     *Range          `json:"search_range,omitempty" bson:"search_range,omitempty"`
	Eliminated      []Range         `json:"eliminated_ranges,omitempty" bson:"eliminated_ranges,omitempty"`
	ComparisonIndex *int            `json:"comparison_index,omitempty" bson:"comparison_index,omitempty"`
}

// StackSnapshot is a LIFO sequence. The top of the stack is the last value.
type StackSnapshot struct {
	Name       string          `json:"name,omitempty" bson:"name,omitempty"`
	Values     []float64       `json:"values" bson:"values"`
	Highlights json.RawMessage `json:"highlights,omitempty" bson:"highlights,omitempty"`
}

// QueueSnapshot is a FIFO sequence. FrontIndex and RearIndex override the
// default front/rear positions (first and last value) when set, which circular
// queue algorithms rely on.
type QueueSnapshot struct {
	Name       string          `json:"name,omitempty" bson:"name,omitempty"`
	Values     []float64       `json:"values" bson:"values"`
	FrontIndex *int            `json:"front_index,omitempty" bson:"front_index,omitempty"`
	RearIndex  *int            `json:"rear_index,omitempty" bson:"rear_index,omitempty"`
	Highlights json.RawMessage `json:"highlights,omitempty" bson:"highlights,omitempty"`
}

// TreeNode is a binary tree node. Child references are lookup keys into the
// owning snapshot's node set, never ownership pointers; a reference that does
// not resolve is skipped at render time.
type TreeNode struct {
	ID           int     `json:"id" bson:"id"`
	Value        float64 `json:"value" bson:"value"`
	X            float64 `json:"x" bson:"x"`
	Y            float64 `json:"y" bson:"y"`
	LeftChildID  *int    `json:"left_child_id,omitempty" bson:"left_child_id,omitempty"`
	RightChildID *int    `json:"right_child_id,omitempty" bson:"right_child_id,omitempty"`
	Color        string  `json:"color,omitempty" bson:"color,omitempty"`
	Highlighted  bool    `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// TreeSnapshot is a flat arena of positioned tree nodes.
type TreeSnapshot struct {
	Name       string          `json:"name,omitempty" bson:"name,omitempty"`
	Type       string          `json:"type,omitempty" bson:"type,omitempty"`
	Nodes      []TreeNode      `json:"nodes" bson:"nodes"`
	Highlights json.RawMessage `json:"highlights,omitempty" bson:"highlights,omitempty"`
}

// Node returns the node with the given id, if present.
func (s *TreeSnapshot) Node(id int) (TreeNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return TreeNode{}, false
}

// GraphNode is a positioned, labeled graph vertex.
type GraphNode struct {
	ID          int     `json:"id" bson:"id"`
	Label       string  `json:"label,omitempty" bson:"label,omitempty"`
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	Color       string  `json:"color,omitempty" bson:"color,omitempty"`
	Highlighted bool    `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// GraphEdge connects two nodes by id. Endpoints that do not resolve to a node
// in the snapshot are skipped at render time, never fatal.
type GraphEdge struct {
	From        int      `json:"from" bson:"from"`
	To          int      `json:"to" bson:"to"`
	Weight      *float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	Directed    bool     `json:"directed,omitempty" bson:"directed,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// GraphSnapshot is a node arena plus an edge list.
type GraphSnapshot struct {
	Name       string          `json:"name,omitempty" bson:"name,omitempty"`
	Type       string          `json:"type,omitempty" bson:"type,omitempty"`
	Nodes      []GraphNode     `json:"nodes" bson:"nodes"`
	Edges      []GraphEdge     `json:"edges,omitempty" bson:"edges,omitempty"`
	Highlights json.RawMessage `json:"highlights,omitempty" bson:"highlights,omitempty"`
}

// Node returns the node with the given id, if present.
func (s *GraphSnapshot) Node(id int) (GraphNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// ListNode is a linked-list node record. A nil NextID marks the list end.
type ListNode struct {
	ID          int     `json:"id" bson:"id"`
	Value       float64 `json:"value" bson:"value"`
	NextID      *int    `json:"next_id,omitempty" bson:"next_id,omitempty"`
	PrevID      *int    `json:"prev_id,omitempty" bson:"prev_id,omitempty"`
	Highlighted bool    `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// ListSnapshot is an ordered sequence of linked-list node records.
type ListSnapshot struct {
	Name       string          `json:"name,omitempty" bson:"name,omitempty"`
	Kind       string          `json:"type,omitempty" bson:"type,omitempty"` // "singly" or "doubly"
	Nodes      []ListNode      `json:"nodes" bson:"nodes"`
	HeadID     *int            `json:"head_id,omitempty" bson:"head_id,omitempty"`
	TailID     *int            `json:"tail_id,omitempty" bson:"tail_id,omitempty"`
	Highlights json.RawMessage `json:"highlights,omitempty" bson:"highlights,omitempty"`
}

// Node returns the node with the given id, if present.
func (s *ListSnapshot) Node(id int) (ListNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ListNode{}, false
}

// Variable is one row of the flat variable table shown beside structures.
type Variable struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
	Type  string `json:"type,omitempty" bson:"type,omitempty"`
}
