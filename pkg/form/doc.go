// Package form is the dynamic form renderer. Render validates a
// model.FormSchema and returns a Handle that owns the form state: one display
// string per field key. Frontends draw the visible fields from the handle and
// write user input back through SetValue; pages populate it with SetData and
// read typed-as-string values with GetData, where IDDropdown fields yield the
// underlying id rather than the display name.
//
// A handle is built fresh whenever a page receives new data and discarded when
// the page rebuilds it, so no callback ever outlives the form it was bound to.
package form
