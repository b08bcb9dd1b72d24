package main

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

const (
	gqlclientPkg = "github.com/inventory-app/gqlclient"
	graphPkg     = "github.com/inventory-app/gqlclient/graph"
)

// exportName upper-cases the first letter of a GraphQL name.
func exportName(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// enumValueName turns IN_PROGRESS into InProgress.
func enumValueName(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i := range words {
		words[i] = exportName(words[i])
	}
	return strings.Join(words, "")
}

func genDescription(s string) jen.Code {
	if s == "" {
		return jen.Null()
	}
	return jen.Comment(s).Line()
}

func genType(schema *ast.Schema, t *ast.Type) jen.Code {
	var prefix []jen.Code

	toplevel := true
	for t.Elem != nil {
		prefix = append(prefix, jen.Index())
		toplevel = false
		t = t.Elem
	}

	def, ok := schema.Types[t.NamedType]
	if !ok {
		panic(fmt.Sprintf("unknown type name %q", t.NamedType))
	}

	var gen jen.Code
	switch def.Name {
	case "Int":
		gen = jen.Int32()
	case "Float":
		gen = jen.Float64()
	case "String":
		gen = jen.String()
	case "Boolean":
		gen = jen.Bool()
	case "ID", "Cursor":
		gen = jen.String()
	case "Time":
		gen = jen.Qual("time", "Time")
	case "Map":
		gen = jen.Map(jen.String()).Interface()
	case "Any":
		gen = jen.Interface()
	default:
		if def.BuiltIn {
			panic(fmt.Sprintf("unsupported built-in type: %s", def.Name))
		}
		gen = jen.Id(def.Name)
	}

	if !t.NonNull {
		switch def.Name {
		case "ID", "Map", "Any":
			// The zero value is recognizable.
		default:
			prefix = append(prefix, jen.Op("*"))
		}
	} else if toplevel {
		switch def.Kind {
		case ast.Object, ast.Interface:
			// Recursive types.
			prefix = append(prefix, jen.Op("*"))
		}
	}

	return jen.Add(prefix...).Add(gen)
}

func jsonTag(name string, nonNull bool) map[string]string {
	if !nonNull {
		name += ",omitempty"
	}
	return map[string]string{"json": name}
}

func genDef(schema *ast.Schema, def *ast.Definition) *jen.Statement {
	switch def.Kind {
	case ast.Scalar:
		switch def.Name {
		case "Time", "Map", "Any", "Cursor":
			return nil
		default:
			return jen.Type().Id(def.Name).String()
		}
	case ast.Enum:
		var defs []jen.Code
		for _, val := range def.EnumValues {
			defs = append(defs,
				jen.Add(genDescription(val.Description)).Id(def.Name+enumValueName(val.Name)).Id(def.Name).Op("=").Lit(val.Name),
			)
		}
		return jen.Add(
			jen.Type().Id(def.Name).String(),
			jen.Line(),
			jen.Const().Defs(defs...),
		)
	case ast.Object, ast.Interface, ast.InputObject:
		var fields []jen.Code
		for _, field := range def.Fields {
			if strings.HasPrefix(field.Name, "__") {
				continue
			}
			fields = append(fields,
				jen.Add(genDescription(field.Description)).
					Id(exportName(field.Name)).
					Add(genType(schema, field.Type)).
					Tag(jsonTag(field.Name, field.Type.NonNull)),
			)
		}
		return jen.Type().Id(def.Name).Struct(fields...)
	case ast.Union:
		return genUnion(def)
	default:
		panic(fmt.Sprintf("unsupported definition kind: %s", def.Kind))
	}
}

// genUnion emits a struct holding one member, picked by __typename when
// decoding.
func genUnion(def *ast.Definition) *jen.Statement {
	var cases []jen.Code
	for _, name := range def.Types {
		cases = append(cases, jen.Case(jen.Lit(name)).Block(
			jen.Id("union").Dot("Value").Op("=").New(jen.Id(name)),
		))
	}

	errPrefix := fmt.Sprintf("union %v: ", def.Name)
	cases = append(cases,
		jen.Case(jen.Lit("")).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(errPrefix+"missing __typename field"))),
		),
		jen.Default().Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(errPrefix+"unknown __typename %q"), jen.Id("data").Dot("Type"))),
		),
	)

	return jen.Add(
		jen.Type().Id(def.Name).Struct(
			jen.Comment(strings.Join(def.Types, " | ")),
			jen.Id("Value").Interface(),
		),
		jen.Line(),
		jen.Line(),
		jen.Func().Params(
			jen.Id("union").Op("*").Id(def.Name),
		).Id("UnmarshalJSON").Params(
			jen.Id("b").Index().Byte(),
		).Error().Block(
			jen.Var().Id("data").Struct(
				jen.Id("Type").String().Tag(map[string]string{"json": "__typename"}),
			),
			jen.If(
				jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("data")),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Err())),
			jen.Switch(jen.Id("data").Dot("Type")).Block(cases...),
			jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(
				jen.Id("b"),
				jen.Id("union").Dot("Value"),
			)),
		),
	)
}

// opNames derives the Go identifiers for an operation: RemoveProjectMutation
// gives the descriptor RemoveProjectMutation, the wrapper RemoveProject and
// the types RemoveProjectVariables and RemoveProjectResponse.
type opNames struct {
	descriptor string
	wrapper    string
	variables  string
	response   string
}

func namesFor(op *ast.OperationDefinition) opNames {
	name := exportName(op.Name)
	base := name
	for _, suffix := range []string{"Mutation", "Query"} {
		if trimmed := strings.TrimSuffix(name, suffix); trimmed != name && trimmed != "" {
			base = trimmed
			break
		}
	}
	n := opNames{
		descriptor: name,
		wrapper:    base,
		variables:  base + "Variables",
		response:   base + "Response",
	}
	if n.descriptor == n.wrapper {
		n.descriptor += "Descriptor"
	}
	return n
}

// usedFragments returns the fragments reachable from set, in document order.
func usedFragments(doc *ast.QueryDocument, set ast.SelectionSet) ast.FragmentDefinitionList {
	seen := make(map[string]bool)
	var walk func(ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.Field:
				walk(sel.SelectionSet)
			case *ast.InlineFragment:
				walk(sel.SelectionSet)
			case *ast.FragmentSpread:
				if seen[sel.Name] {
					continue
				}
				seen[sel.Name] = true
				if frag := doc.Fragments.ForName(sel.Name); frag != nil {
					walk(frag.SelectionSet)
				}
			}
		}
	}
	walk(set)

	var out ast.FragmentDefinitionList
	for _, frag := range doc.Fragments {
		if seen[frag.Name] {
			out = append(out, frag)
		}
	}
	return out
}

func formatOperation(doc *ast.QueryDocument, op *ast.OperationDefinition) string {
	query := ast.QueryDocument{
		Operations: ast.OperationList{op},
		Fragments:  usedFragments(doc, op.SelectionSet),
	}
	var sb strings.Builder
	formatter.NewFormatter(&sb).FormatQueryDocument(&query)
	return sb.String()
}

// genOp emits the variables and response types, the descriptor and the
// dispatch wrapper of one operation.
func genOp(schema *ast.Schema, doc *ast.QueryDocument, op *ast.OperationDefinition) (*jen.Statement, error) {
	if op.Name == "" {
		return nil, fmt.Errorf("anonymous operations are not supported")
	}
	if op.Operation == ast.Subscription {
		return nil, fmt.Errorf("operation %s: subscriptions are not supported", op.Name)
	}
	names := namesFor(op)

	var varFields []jen.Code
	for _, v := range op.VariableDefinitions {
		varFields = append(varFields,
			jen.Id(exportName(v.Variable)).Add(genType(schema, v.Type)).Tag(jsonTag(v.Variable, v.Type.NonNull)),
		)
	}

	var respFields []jen.Code
	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			return nil, fmt.Errorf("operation %s: unsupported top-level selection %T", op.Name, sel)
		}
		key := field.Alias
		if key == "" {
			key = field.Name
		}
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		respFields = append(respFields,
			jen.Id(exportName(key)).Add(genType(schema, field.Definition.Type)).Tag(jsonTag(key, field.Definition.Type.NonNull)),
		)
	}

	v, r := jen.Id(names.variables), jen.Id(names.response)
	stmt := jen.Type().Id(names.variables).Struct(varFields...).Line().Line().
		Type().Id(names.response).Struct(respFields...).Line().Line().
		Var().Id(names.descriptor).Op("=").Qual(graphPkg, "MustDefine").Types(v, r).Call(jen.Lit(formatOperation(doc, op))).Line().Line()

	switch op.Operation {
	case ast.Mutation:
		stmt.Func().Id(names.wrapper).Params(
			jen.Id("env").Op("*").Qual(graphPkg, "Environment"),
			jen.Id("vars").Id(names.variables),
			jen.Id("cb").Qual(graphPkg, "Callbacks").Types(r),
			jen.Id("updater").Qual(graphPkg, "Updater").Types(r),
		).Block(
			jen.Qual(graphPkg, "Commit").Call(jen.Id("env"), jen.Id(names.descriptor), jen.Id("vars"), jen.Id("cb"), jen.Id("updater")),
		)
	default:
		stmt.Func().Id(names.wrapper).Params(
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id("env").Op("*").Qual(graphPkg, "Environment"),
			jen.Id("vars").Id(names.variables),
		).Params(
			jen.Id(names.response),
			jen.Index().Qual(gqlclientPkg, "Error"),
			jen.Error(),
		).Block(
			jen.Return(jen.Qual(graphPkg, "Fetch").Call(jen.Id("ctx"), jen.Id("env"), jen.Id(names.descriptor), jen.Id("vars"))),
		)
	}
	return stmt, nil
}

// generate renders the schema types and every operation of queries into f.
func generate(f *jen.File, schema *ast.Schema, queries []*ast.QueryDocument) error {
	var typeNames []string
	for _, def := range schema.Types {
		if def.BuiltIn || def == schema.Query || def == schema.Mutation || def == schema.Subscription {
			continue
		}
		typeNames = append(typeNames, def.Name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		def := schema.Types[name]
		if stmt := genDef(schema, def); stmt != nil {
			f.Add(genDescription(def.Description), stmt).Line()
		}
	}

	for _, q := range queries {
		for _, op := range q.Operations {
			stmt, err := genOp(schema, q, op)
			if err != nil {
				return err
			}
			f.Add(stmt).Line()
		}
	}
	return nil
}
