package evaluator

import (
	"encoding/json"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/shapelang/shape/ast"
	"github.com/shapelang/shape/diagnostics"
	"github.com/shapelang/shape/evalctx"
	"github.com/shapelang/shape/geometry"
	"github.com/shapelang/shape/lexer"
	"github.com/shapelang/shape/parser"
	"github.com/shapelang/shape/value"
)

// permissiveDataSchemaSrc accepts any JSON document shaped like an object or
// an array, rejecting bare scalars at the document root: a `.json` import is
// meant to supply structured data to a program, so a file containing just
// `42` is almost certainly the wrong file, and FileParsingError says so
// instead of a bare decode error.
const permissiveDataSchemaSrc = `{
	"anyOf": [
		{"type": "object"},
		{"type": "array"}
	]
}`

var (
	permissiveDataSchemaOnce sync.Once
	permissiveDataSchema     *jsonschema.Schema
	permissiveDataSchemaErr  error
)

func compiledPermissiveSchema() (*jsonschema.Schema, error) {
	permissiveDataSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("permissive.json", strings.NewReader(permissiveDataSchemaSrc)); err != nil {
			permissiveDataSchemaErr = err
			return
		}
		permissiveDataSchema, permissiveDataSchemaErr = c.Compile("permissive.json")
	})
	return permissiveDataSchema, permissiveDataSchemaErr
}

// execImport implements `import path`: resolve, cycle-check, dispatch by
// extension, and (for the cases that produce a value rather than merging
// statements directly into the current scope) apply it the same way any
// other statement's resulting value is applied.
func (e *Evaluator) execImport(ctx *evalctx.Context, s *ast.ImportStmt, isCancelled func() bool) error {
	pathVal, err := e.evalExpr(ctx, s.Expr, isCancelled)
	if err != nil {
		return err
	}
	if pathVal.Kind != value.String {
		return diagnostics.NewTypeMismatch("import", 0, "string", pathVal.Type().String(), s.Rng)
	}

	url, err := ctx.Delegate.ResolveURL(pathVal.Str, ctx.BaseURL)
	if err != nil {
		return wrapDelegateError(err, url, s.Rng)
	}
	if !ctx.EnterImport(url) {
		return diagnostics.NewCircularImport(url, s.Rng)
	}
	defer ctx.ExitImport()

	switch ext := strings.ToLower(path.Ext(url)); ext {
	case ".shape":
		return e.importShape(ctx, url, s.Rng, isCancelled)
	case ".txt":
		v, err := e.importText(ctx, url, s.Rng)
		if err != nil {
			return err
		}
		return e.addValue(ctx, v, s.Rng)
	case ".json":
		v, err := e.importJSON(ctx, url, s.Rng)
		if err != nil {
			return err
		}
		return e.addValue(ctx, v, s.Rng)
	case ".yaml", ".yml":
		v, err := e.importYAML(ctx, url, s.Rng)
		if err != nil {
			return err
		}
		return e.addValue(ctx, v, s.Rng)
	default:
		return e.importGeometry(ctx, url, s.Rng)
	}
}

// importShape parses (caching the Program by URL) and evaluates a `.shape`
// import's statements directly into ctx, with baseURL temporarily swapped to
// the imported file's URL; errors inside are wrapped as ImportError so a
// diagnostic can walk back through the chain of importing files.
func (e *Evaluator) importShape(ctx *evalctx.Context, url string, rng lexer.Range, isCancelled func() bool) error {
	program, ok := ctx.Imports.Programs[url]
	if !ok {
		src, err := ctx.Delegate.ReadText(url)
		if err != nil {
			return wrapDelegateError(err, url, rng)
		}
		toks, lexErrs := lexer.Lex(src)
		if len(lexErrs) > 0 {
			return diagnostics.NewImportError(lexErrs[0], url, src, rng)
		}
		prog, parseErrs := parser.Parse(toks)
		if len(parseErrs) > 0 {
			return diagnostics.NewImportError(parseErrs[0], url, src, rng)
		}
		prog.Source = src
		ctx.Imports.Programs[url] = prog
		program = prog
	}

	savedBaseURL := ctx.BaseURL
	ctx.BaseURL = url
	err := e.execStatements(ctx, program.Statements, isCancelled)
	ctx.BaseURL = savedBaseURL
	if err != nil {
		if _, cancelled := err.(cancelled); cancelled {
			return err
		}
		return diagnostics.NewImportError(err, url, program.Source, rng)
	}
	return nil
}

// importText reads and caches a `.txt` import's raw content, returning it as
// a string value.
func (e *Evaluator) importText(ctx *evalctx.Context, url string, rng lexer.Range) (value.Value, error) {
	raw, err := readCachedText(ctx, url)
	if err != nil {
		return value.Void, wrapDelegateError(err, url, rng)
	}
	return value.StringOf(raw), nil
}

// importJSON decodes a `.json` import against the permissive object/array
// schema, then converts it through value.FromDecoded; a document that fails
// the schema or isn't valid JSON is a FileParsingError, not a bare decode
// error.
func (e *Evaluator) importJSON(ctx *evalctx.Context, url string, rng lexer.Range) (value.Value, error) {
	if cached, ok := ctx.Imports.Values[url]; ok {
		return cached, nil
	}
	raw, err := readCachedText(ctx, url)
	if err != nil {
		return value.Void, wrapDelegateError(err, url, rng)
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return value.Void, diagnostics.NewFileParsingError(url, err.Error(), rng)
	}
	schema, err := compiledPermissiveSchema()
	if err != nil {
		return value.Void, diagnostics.NewFileParsingError(url, err.Error(), rng)
	}
	if err := schema.Validate(decoded); err != nil {
		return value.Void, diagnostics.NewFileParsingError(url, err.Error(), rng)
	}

	v, err := value.FromDecoded(decoded)
	if err != nil {
		return value.Void, diagnostics.NewFileParsingError(url, err.Error(), rng)
	}
	ctx.Imports.Values[url] = v
	return v, nil
}

// importYAML decodes a `.yaml`/`.yml` import and converts it through the
// same value.FromDecoded path as `.json`.
func (e *Evaluator) importYAML(ctx *evalctx.Context, url string, rng lexer.Range) (value.Value, error) {
	if cached, ok := ctx.Imports.Values[url]; ok {
		return cached, nil
	}
	raw, err := readCachedText(ctx, url)
	if err != nil {
		return value.Void, wrapDelegateError(err, url, rng)
	}

	var decoded any
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return value.Void, diagnostics.NewFileParsingError(url, err.Error(), rng)
	}
	v, err := value.FromDecoded(decoded)
	if err != nil {
		return value.Void, diagnostics.NewFileParsingError(url, err.Error(), rng)
	}
	ctx.Imports.Values[url] = v
	return v, nil
}

// importGeometry delegates an unrecognised-extension import to the host as
// a model file, attaching the current transform/material/name the way any
// other mesh-producing statement does.
func (e *Evaluator) importGeometry(ctx *evalctx.Context, url string, rng lexer.Range) error {
	node, ok, err := ctx.Delegate.ImportGeometry(url)
	if err != nil {
		return wrapDelegateError(err, url, rng)
	}
	if !ok {
		return diagnostics.NewFileTypeMismatch(url, rng)
	}
	node.Transform = ctx.Transform
	node.Material = ctx.Material
	node.Name = ctx.Name
	return e.addValue(ctx, value.Value{Kind: value.Mesh, Geometry: node}, rng)
}

// readCachedText fetches url's raw bytes through the host-supplied import
// cache, so repeated imports of the same resolved URL within one evaluation
// read the delegate at most once.
func readCachedText(ctx *evalctx.Context, url string) (string, error) {
	if entry, ok := ctx.ImportCache.Get(url); ok && entry.Raw != nil {
		return string(entry.Raw), nil
	}
	raw, err := ctx.Delegate.ReadText(url)
	if err != nil {
		return "", err
	}
	ctx.ImportCache.Put(url, nil, []byte(raw))
	return raw, nil
}

// wrapDelegateError classifies a *geometry.Error from the delegate into the
// matching diagnostic, falling back to a generic ImportError for anything
// else the delegate returns.
func wrapDelegateError(err error, url string, rng lexer.Range) error {
	if ge, ok := err.(*geometry.Error); ok {
		switch ge.Kind {
		case "not_found":
			return diagnostics.NewFileNotFound(url, rng)
		case "access_restricted":
			return diagnostics.NewFileAccessRestricted(url, rng)
		default:
			return diagnostics.NewImportError(err, url, "", rng)
		}
	}
	return diagnostics.NewImportError(err, url, "", rng)
}
