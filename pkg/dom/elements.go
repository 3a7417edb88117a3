package dom

// Constructors for the handful of elements used by tests and the demo
// application. The full HTML catalog is deliberately absent; NewTag covers
// any element name.

// Div creates a <div> tag.
func Div(opts ...TagOption) *Tag { return NewTag("div", opts...) }

// Span creates a <span> tag.
func Span(opts ...TagOption) *Tag { return NewTag("span", opts...) }

// P creates a <p> tag.
func P(opts ...TagOption) *Tag { return NewTag("p", opts...) }

// A creates an <a> tag.
func A(opts ...TagOption) *Tag { return NewTag("a", opts...) }

// H1 creates an <h1> tag.
func H1(opts ...TagOption) *Tag { return NewTag("h1", opts...) }

// Ul creates a <ul> tag.
func Ul(opts ...TagOption) *Tag { return NewTag("ul", opts...) }

// Li creates an <li> tag.
func Li(opts ...TagOption) *Tag { return NewTag("li", opts...) }

// Button creates a <button> tag.
func Button(opts ...TagOption) *Tag { return NewTag("button", opts...) }

// Input creates an <input> tag.
func Input(opts ...TagOption) *Tag { return NewTag("input", opts...) }

// Body creates a <body> tag.
func Body(opts ...TagOption) *Tag { return NewTag("body", opts...) }

// Head creates a <head> tag.
func Head(opts ...TagOption) *Tag { return NewTag("head", opts...) }
