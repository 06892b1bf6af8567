package cypher

// Node represents a single AST element. It participates in the visitor
// pattern used by the Compiler.
type Node interface {
	// Accept allows a visitor to process the node.
	Accept(v Visitor) error
}

// Visitor is implemented by types that can handle specific AST nodes.
// Nodes probe the visitor for a matching Visit method, so a visitor only
// implements the methods it cares about.
type Visitor interface{}
