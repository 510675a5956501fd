package manifest

// File is one parsed manifest.
type File struct {
	// Package is the dotted package name; empty for the default package.
	Package string        `yaml:"package" json:"package"`
	Imports StringOrArray `yaml:"imports,omitempty" json:"imports,omitempty"`
	Types   []TypeDecl    `yaml:"types" json:"types"`

	// Path is the file the manifest was read from, for diagnostics.
	Path string `yaml:"-" json:"-"`
}

// TypeDecl declares one class or interface.
type TypeDecl struct {
	// Name is the nested name inside the package ("Outer.Inner").
	Name      string        `yaml:"name" json:"name"`
	Kind      string        `yaml:"kind,omitempty" json:"kind,omitempty"`
	Modifiers StringOrArray `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	// Wrap selects the type for generation. Types with wrap: false only
	// serve as supertypes of others.
	Wrap           *bool           `yaml:"wrap,omitempty" json:"wrap,omitempty"`
	Extends        StringOrArray   `yaml:"extends,omitempty" json:"extends,omitempty"`
	TypeParameters []TypeParamDecl `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	Methods        []MethodDecl    `yaml:"methods,omitempty" json:"methods,omitempty"`
}

// ShouldWrap reports whether a wrapper is requested for the type.
func (t *TypeDecl) ShouldWrap() bool {
	return t.Wrap == nil || *t.Wrap
}

// MethodDecl declares one method.
type MethodDecl struct {
	Name           string          `yaml:"name" json:"name"`
	Modifiers      StringOrArray   `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	TypeParameters []TypeParamDecl `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	Parameters     []ParamDecl     `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	// Variadic marks the last parameter as varargs. A last parameter type
	// spelled "T..." sets it as well.
	Variadic bool          `yaml:"variadic,omitempty" json:"variadic,omitempty"`
	Throws   StringOrArray `yaml:"throws,omitempty" json:"throws,omitempty"`
	// Returns is the result type; empty means void.
	Returns string `yaml:"returns,omitempty" json:"returns,omitempty"`
}

// ParamDecl declares one parameter.
type ParamDecl struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Type string `yaml:"type" json:"type"`
}

// TypeParamDecl declares a type parameter. In a manifest it is either a
// mapping {name, bound} or a bare name.
type TypeParamDecl struct {
	Name  string `yaml:"name" json:"name"`
	Bound string `yaml:"bound,omitempty" json:"bound,omitempty"`
}

// StringOrArray accepts a single string or a list of strings.
type StringOrArray []string
