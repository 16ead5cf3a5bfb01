// Package ast defines the closed family of AST node variants spec.md §3
// specifies. Every node except Document carries a source Pos (byte offset)
// for diagnostics; Document has no position field. Every string field is a view into the source buffer that
// produced it, never an owned copy. All nodes are allocated by an
// *ast.Arena (see arena.go) and live until that arena is reset or dropped.
package ast

// Document is the root of a parsed GraphQL document: an ordered sequence
// of operation and fragment definitions.
type Document struct {
	Definitions []Definition
}

// Definition is the sum type of top-level GraphQL definitions.
type Definition interface {
	isDefinition()
}

// OperationKind distinguishes the three GraphQL operation forms.
type OperationKind uint8

const (
	OperationQuery OperationKind = iota
	OperationMutation
	OperationSubscription
)

func (k OperationKind) String() string {
	switch k {
	case OperationMutation:
		return "mutation"
	case OperationSubscription:
		return "subscription"
	default:
		return "query"
	}
}

// OperationDefinition represents a query, mutation, or subscription,
// including the shorthand anonymous query form (spec.md §4.4.1).
type OperationDefinition struct {
	Op                  OperationKind
	Name                string // empty if the operation is unnamed
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet // never nil once parsing succeeds (spec.md §3 invariants)
	Pos                 int
}

func (*OperationDefinition) isDefinition() {}

// FragmentDefinition represents a `fragment Name on Type { ... }` block.
type FragmentDefinition struct {
	Name          string
	TypeCondition string
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Pos           int
}

func (*FragmentDefinition) isDefinition() {}

// SelectionSet is an ordered, brace-delimited sequence of selections.
type SelectionSet struct {
	Selections []Selection
	Pos        int
}

// Selection is the sum type of Field, FragmentSpread, and InlineFragment.
type Selection interface {
	isSelection()
}

// Field is a single field selection, with an optional alias and an
// optional nested selection set (present iff the source had subselections,
// spec.md §3 invariants).
type Field struct {
	Alias        string // empty unless the source wrote "alias: name"
	Name         string
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet // nil if the field has no subselections
	Pos          int
}

func (*Field) isSelection() {}

// ResponseKey returns the alias if present, else the field name — the key
// under which this field's result would be keyed in a response.
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FragmentSpread is `...Name`, referencing a named fragment definition.
type FragmentSpread struct {
	Name       string
	Directives []*Directive
	Pos        int
}

func (*FragmentSpread) isSelection() {}

// InlineFragment is `... on Type { ... }` or `... { ... }`.
type InlineFragment struct {
	TypeCondition string // empty if no `on Type` clause was present
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Pos           int
}

func (*InlineFragment) isSelection() {}

// VariableDefinition declares an operation-scoped variable.
type VariableDefinition struct {
	Variable     string // without the leading '$'
	Type         TypeRef
	DefaultValue Value // nil if no default was given
	Directives   []*Directive
	Pos          int
}

// Directive is `@name(args...)`, name stored without the leading '@'.
type Directive struct {
	Name      string
	Arguments []*Argument
	Pos       int
}

// Argument is a single `name: value` pair, used by fields and directives.
type Argument struct {
	Name  string
	Value Value
	Pos   int
}

// TypeRef is the sum type of Named, List, and NonNull type references. A
// NonNull never wraps another NonNull — the grammar prevents it
// (spec.md §3 invariants).
type TypeRef interface {
	isTypeRef()
}

// NamedType is a bare type name reference, e.g. `User` or `ID`.
type NamedType struct {
	Name string
	Pos  int
}

func (*NamedType) isTypeRef() {}

// ListType is `[Elem]`.
type ListType struct {
	Elem TypeRef
	Pos  int
}

func (*ListType) isTypeRef() {}

// NonNullType is `Inner!`.
type NonNullType struct {
	Inner TypeRef
	Pos   int
}

func (*NonNullType) isTypeRef() {}

// Value is the sum type of every GraphQL value literal.
type Value interface {
	isValue()
}

// IntValue holds the raw lexeme of an integer literal (no numeric
// conversion is performed at this layer — that is a semantic, not
// syntactic, concern).
type IntValue struct {
	Raw string
	Pos int
}

func (*IntValue) isValue() {}

// FloatValue holds the raw lexeme of a floating-point literal.
type FloatValue struct {
	Raw string
	Pos int
}

func (*FloatValue) isValue() {}

// StringValue holds a raw string literal exactly as it appears in the
// source, quotes and escape sequences untouched — a view into the source
// buffer, not an owned copy (spec.md §3 "String fields in AST nodes are
// views into the source buffer"). Block indicates whether the source used
// the triple-quoted block-string form. Call Decoded to materialize the
// unescaped/indentation-stripped value; that call allocates, so it is left
// to callers that actually need the decoded text rather than being paid on
// every parse.
type StringValue struct {
	Value string
	Block bool
	Pos   int
}

func (*StringValue) isValue() {}

// Decoded returns the string literal's semantic value: for a block string,
// the triple quotes stripped and the GraphQL block-string
// indentation-stripping algorithm applied; for a regular string, the quotes
// stripped and backslash escapes interpreted (SPEC_FULL.md "Supplemented
// Features"). Unlike Value, this allocates.
func (sv *StringValue) Decoded() string {
	if sv.Block {
		return stripBlockIndentation(sv.Value[3 : len(sv.Value)-3])
	}
	inner := sv.Value
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return unescapeString(inner)
}

// BoolValue is `true` or `false`.
type BoolValue struct {
	Value bool
	Pos   int
}

func (*BoolValue) isValue() {}

// NullValue is the `null` literal.
type NullValue struct {
	Pos int
}

func (*NullValue) isValue() {}

// EnumValue is a bare identifier used as a value, e.g. `RED`.
type EnumValue struct {
	Name string
	Pos  int
}

func (*EnumValue) isValue() {}

// ListValue is `[value, value, ...]`.
type ListValue struct {
	Values []Value
	Pos    int
}

func (*ListValue) isValue() {}

// ObjectField is one `name: value` entry inside an ObjectValue.
type ObjectField struct {
	Name  string
	Value Value
	Pos   int
}

// ObjectValue is `{name: value, ...}`.
type ObjectValue struct {
	Fields []ObjectField
	Pos    int
}

func (*ObjectValue) isValue() {}

// VariableValue is a `$name` reference used in value position.
type VariableValue struct {
	Name string
	Pos  int
}

func (*VariableValue) isValue() {}
