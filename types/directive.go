package types

// DirectiveLocation names a position in a document where a directive
// may appear.
type DirectiveLocation string

const (
	LocationQuery              DirectiveLocation = "QUERY"
	LocationMutation           DirectiveLocation = "MUTATION"
	LocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocationField              DirectiveLocation = "FIELD"
	LocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocationFieldDefinition    DirectiveLocation = "FIELD_DEFINITION"
	LocationEnumValue          DirectiveLocation = "ENUM_VALUE"
	LocationInputFieldDef      DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// Directive is a declared directive definition.
type Directive struct {
	Name      string
	Desc      string
	Locations []DirectiveLocation
	Args      map[string]*InputValue
}
