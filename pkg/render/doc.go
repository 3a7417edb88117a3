// Package render is the default rendering backend for the dom package.
//
// Each active tag is backed by a real *html.Node element; rendering
// serializes the element subtree and structural operations relocate the
// backing elements, so the server-side markup always matches the model.
// XPath queries run against the backing tree and map results back to their
// owning tags.
package render
