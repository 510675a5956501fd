package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"weakwrap-generator/internal/diagnostic"
	"weakwrap-generator/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Config controls package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// Tags are build tags applied while loading.
	Tags []string
}

// Target is one annotated type found in the loaded packages.
type Target struct {
	Descriptor *model.TypeDescriptor
	// PkgName is the package clause name of the declaring package.
	PkgName string
	// Dir is the directory of the declaring package.
	Dir string
	// OutputFile overrides the generated file name when set.
	OutputFile string
	Position   token.Position
}

// Analyzer loads Go packages and collects annotated types.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Load loads the packages matching patterns and returns every annotated
// type in declaration order. Packages that fail to type-check are reported
// as diagnostics and skipped; only a failure of the loader itself is an
// error.
func (a *Analyzer) Load(ctx context.Context, patterns ...string) ([]*Target, *diagnostic.Diagnostics, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.cfg.Dir,
	}

	if len(a.cfg.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages: %w", err)
	}

	diags := &diagnostic.Diagnostics{}

	var targets []*Target

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			for _, e := range pkg.Errors {
				diags.Add(diagnostic.Diagnostic{
					Severity: diagnostic.SeverityError,
					Code:     diagnostic.CodeLoad,
					Message:  e.Msg,
					Type:     pkg.PkgPath,
					Position: e.Pos,
				})
			}

			continue
		}

		targets = append(targets, a.processPackage(pkg, diags)...)
	}

	return targets, diags, nil
}

// annotated is a type spec carrying a directive.
type annotated struct {
	spec      *ast.TypeSpec
	directive *Directive
	local     bool
}

// processPackage collects the annotated types of one package.
func (a *Analyzer) processPackage(pkg *packages.Package, diags *diagnostic.Diagnostics) []*Target {
	var targets []*Target

	for _, file := range pkg.Syntax {
		for _, found := range findAnnotated(pkg.Fset, file, diags, pkg.PkgPath) {
			obj, ok := pkg.TypesInfo.Defs[found.spec.Name].(*types.TypeName)
			if !ok {
				continue
			}

			pos := pkg.Fset.Position(found.spec.Pos())

			nesting := model.TopLevel
			if found.local {
				nesting = model.InstanceMember
			}

			td, ok := describe(obj, nesting, diags)
			if !ok {
				continue
			}

			td.Position = pos.String()

			targets = append(targets, &Target{
				Descriptor: td,
				PkgName:    pkg.Name,
				Dir:        filepath.Dir(pos.Filename),
				OutputFile: found.directive.File,
				Position:   pos,
			})
		}
	}

	return targets
}

// findAnnotated walks the package-level declarations of file and the
// bodies of its functions. Types declared in a function body are local.
func findAnnotated(fset *token.FileSet, file *ast.File, diags *diagnostic.Diagnostics, pkgPath string) []annotated {
	var out []annotated

	visit := func(gd *ast.GenDecl, local bool) {
		if gd.Tok != token.TYPE {
			return
		}

		for _, s := range gd.Specs {
			spec, ok := s.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := spec.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}

			d, err := directiveOf(doc)
			if err != nil {
				diags.Add(directiveDiagnostic(err, pkgPath+"."+spec.Name.Name, fset.Position(spec.Pos())))
				continue
			}

			if d != nil {
				out = append(out, annotated{spec: spec, directive: d, local: local})
			}
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			visit(d, false)
		case *ast.FuncDecl:
			if d.Body == nil {
				continue
			}

			ast.Inspect(d.Body, func(n ast.Node) bool {
				if gd, ok := n.(*ast.GenDecl); ok {
					visit(gd, true)
				}

				return true
			})
		}
	}

	return out
}

// directiveOf returns the directive of a doc comment, nil when there is none.
// Raw comment lines are read since CommentGroup.Text drops directives.
func directiveOf(doc *ast.CommentGroup) (*Directive, error) {
	if doc == nil {
		return nil, nil
	}

	for _, c := range doc.List {
		if IsDirective(c.Text) {
			return ParseDirective(c.Text)
		}
	}

	return nil, nil
}

func directiveDiagnostic(err error, typeName string, pos token.Position) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     diagnostic.CodeBadDirective,
		Message:  err.Error(),
		Type:     typeName,
		Position: pos.String(),
	}

	var de *DirectiveError
	if errors.As(err, &de) {
		d.Suggestions = de.Suggestions
	}

	return d
}
