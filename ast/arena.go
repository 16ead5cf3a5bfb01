package ast

import "github.com/Protocol-Lattice/turbographql/internal/arena"

// Arena is the bump allocator every AST node in a parse is created in
// (spec.md §4.3). One sub-arena per concrete node type keeps allocation
// branch-free (no runtime type switch on what's being allocated) and keeps
// same-type nodes contiguous in memory, which is friendlier to the cache
// than a single arena of a sum-typed slot. Sequences (argument lists,
// selections, ...) are ordinary Go slices rather than arena-backed runs,
// per spec.md §9 design notes strategy (a) — they grow during parsing and
// are simply left to the garbage collector once the arena is reset.
//
// The zero Arena is ready to use. Reset is O(number of chunks) across all
// twenty-two sub-arenas — small and bounded — and invalidates every
// pointer this Arena has ever handed out.
type Arena struct {
	documents            arena.Arena[Document]
	operationDefinitions arena.Arena[OperationDefinition]
	fragmentDefinitions  arena.Arena[FragmentDefinition]
	selectionSets        arena.Arena[SelectionSet]
	fields               arena.Arena[Field]
	fragmentSpreads      arena.Arena[FragmentSpread]
	inlineFragments      arena.Arena[InlineFragment]
	variableDefinitions  arena.Arena[VariableDefinition]
	directives           arena.Arena[Directive]
	arguments            arena.Arena[Argument]
	namedTypes           arena.Arena[NamedType]
	listTypes            arena.Arena[ListType]
	nonNullTypes         arena.Arena[NonNullType]
	intValues            arena.Arena[IntValue]
	floatValues          arena.Arena[FloatValue]
	stringValues         arena.Arena[StringValue]
	boolValues           arena.Arena[BoolValue]
	nullValues           arena.Arena[NullValue]
	enumValues           arena.Arena[EnumValue]
	listValues           arena.Arena[ListValue]
	objectValues         arena.Arena[ObjectValue]
	variableValues       arena.Arena[VariableValue]
}

// NewDocument allocates a Document in the arena.
func (a *Arena) NewDocument(v Document) *Document { return a.documents.New(v) }

// NewOperationDefinition allocates an OperationDefinition in the arena.
func (a *Arena) NewOperationDefinition(v OperationDefinition) *OperationDefinition {
	return a.operationDefinitions.New(v)
}

// NewFragmentDefinition allocates a FragmentDefinition in the arena.
func (a *Arena) NewFragmentDefinition(v FragmentDefinition) *FragmentDefinition {
	return a.fragmentDefinitions.New(v)
}

// NewSelectionSet allocates a SelectionSet in the arena.
func (a *Arena) NewSelectionSet(v SelectionSet) *SelectionSet { return a.selectionSets.New(v) }

// NewField allocates a Field in the arena.
func (a *Arena) NewField(v Field) *Field { return a.fields.New(v) }

// NewFragmentSpread allocates a FragmentSpread in the arena.
func (a *Arena) NewFragmentSpread(v FragmentSpread) *FragmentSpread {
	return a.fragmentSpreads.New(v)
}

// NewInlineFragment allocates an InlineFragment in the arena.
func (a *Arena) NewInlineFragment(v InlineFragment) *InlineFragment {
	return a.inlineFragments.New(v)
}

// NewVariableDefinition allocates a VariableDefinition in the arena.
func (a *Arena) NewVariableDefinition(v VariableDefinition) *VariableDefinition {
	return a.variableDefinitions.New(v)
}

// NewDirective allocates a Directive in the arena.
func (a *Arena) NewDirective(v Directive) *Directive { return a.directives.New(v) }

// NewArgument allocates an Argument in the arena.
func (a *Arena) NewArgument(v Argument) *Argument { return a.arguments.New(v) }

// NewNamedType allocates a NamedType in the arena.
func (a *Arena) NewNamedType(v NamedType) *NamedType { return a.namedTypes.New(v) }

// NewListType allocates a ListType in the arena.
func (a *Arena) NewListType(v ListType) *ListType { return a.listTypes.New(v) }

// NewNonNullType allocates a NonNullType in the arena.
func (a *Arena) NewNonNullType(v NonNullType) *NonNullType { return a.nonNullTypes.New(v) }

// NewIntValue allocates an IntValue in the arena.
func (a *Arena) NewIntValue(v IntValue) *IntValue { return a.intValues.New(v) }

// NewFloatValue allocates a FloatValue in the arena.
func (a *Arena) NewFloatValue(v FloatValue) *FloatValue { return a.floatValues.New(v) }

// NewStringValue allocates a StringValue in the arena.
func (a *Arena) NewStringValue(v StringValue) *StringValue { return a.stringValues.New(v) }

// NewBoolValue allocates a BoolValue in the arena.
func (a *Arena) NewBoolValue(v BoolValue) *BoolValue { return a.boolValues.New(v) }

// NewNullValue allocates a NullValue in the arena.
func (a *Arena) NewNullValue(v NullValue) *NullValue { return a.nullValues.New(v) }

// NewEnumValue allocates an EnumValue in the arena.
func (a *Arena) NewEnumValue(v EnumValue) *EnumValue { return a.enumValues.New(v) }

// NewListValue allocates a ListValue in the arena.
func (a *Arena) NewListValue(v ListValue) *ListValue { return a.listValues.New(v) }

// NewObjectValue allocates an ObjectValue in the arena.
func (a *Arena) NewObjectValue(v ObjectValue) *ObjectValue { return a.objectValues.New(v) }

// NewVariableValue allocates a VariableValue in the arena.
func (a *Arena) NewVariableValue(v VariableValue) *VariableValue { return a.variableValues.New(v) }

// Reset bulk-releases every node this arena has allocated, in O(1)
// amortized over the typed sub-arenas, and retains their buffers for the
// next parse (spec.md §4.3).
func (a *Arena) Reset() {
	a.documents.Reset()
	a.operationDefinitions.Reset()
	a.fragmentDefinitions.Reset()
	a.selectionSets.Reset()
	a.fields.Reset()
	a.fragmentSpreads.Reset()
	a.inlineFragments.Reset()
	a.variableDefinitions.Reset()
	a.directives.Reset()
	a.arguments.Reset()
	a.namedTypes.Reset()
	a.listTypes.Reset()
	a.nonNullTypes.Reset()
	a.intValues.Reset()
	a.floatValues.Reset()
	a.stringValues.Reset()
	a.boolValues.Reset()
	a.nullValues.Reset()
	a.enumValues.Reset()
	a.listValues.Reset()
	a.objectValues.Reset()
	a.variableValues.Reset()
}
