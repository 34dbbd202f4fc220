// Package model defines the declarative field schema that drives every form in
// the admin client. A FormSchema is an ordered list of Field descriptors; each
// descriptor carries a FieldKind variant (Entry, Password, Dropdown, IDDropdown)
// holding only the data that kind needs. IDDropdown options are an OptionMap,
// an ordered bijection between display names and entity ids built by the
// reference resolver. Schemas are validated when a form is rendered so that
// configuration mistakes (missing keys, duplicate keys, missing option maps)
// surface at build time instead of on the first user interaction.
package model
