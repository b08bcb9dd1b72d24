package introspect

import (
	"fmt"
	"io"
	"strings"
)

var builtinScalars = map[string]bool{
	"Int": true, "Float": true, "String": true, "Boolean": true, "ID": true,
}

var builtinDirectives = map[string]bool{
	"defer": true, "include": true, "skip": true, "deprecated": true,
	"specifiedBy": true, "oneOf": true,
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// PrintSchema writes s as SDL. Introspection types, built-in scalars and
// built-in directives are left out.
func PrintSchema(w io.Writer, s *Schema) error {
	p := &printer{w: w}
	p.schemaDefinition(s)
	for _, d := range s.Directives {
		if builtinDirectives[d.Name] {
			continue
		}
		p.directive(d)
	}
	for _, t := range s.Types {
		if t.Name == nil || strings.HasPrefix(*t.Name, "__") {
			continue
		}
		if t.Kind == TypeKindScalar && builtinScalars[*t.Name] {
			continue
		}
		if err := p.namedType(t); err != nil {
			return err
		}
	}
	return p.err
}

func rootName(t *Type) string {
	if t == nil || t.Name == nil {
		return ""
	}
	return *t.Name
}

// schemaDefinition prints a schema block only when the root types are not
// the conventional Query/Mutation/Subscription.
func (p *printer) schemaDefinition(s *Schema) {
	query, mutation, subscription := rootName(s.QueryType), rootName(s.MutationType), rootName(s.SubscriptionType)
	if (query == "" || query == "Query") &&
		(mutation == "" || mutation == "Mutation") &&
		(subscription == "" || subscription == "Subscription") {
		return
	}
	p.printf("schema {\n")
	if query != "" {
		p.printf("\tquery: %s\n", query)
	}
	if mutation != "" {
		p.printf("\tmutation: %s\n", mutation)
	}
	if subscription != "" {
		p.printf("\tsubscription: %s\n", subscription)
	}
	p.printf("}\n\n")
}

func (p *printer) description(desc *string, prefix string) {
	if desc == nil || *desc == "" {
		return
	}
	if !strings.Contains(*desc, "\n") {
		p.printf("%s%q\n", prefix, *desc)
		return
	}
	p.printf("%s\"\"\"\n", prefix)
	for _, line := range strings.Split(*desc, "\n") {
		p.printf("%s%s\n", prefix, line)
	}
	p.printf("%s\"\"\"\n", prefix)
}

func (p *printer) deprecated(isDeprecated bool, reason *string) {
	if !isDeprecated {
		return
	}
	if reason == nil || *reason == "" {
		p.printf(" @deprecated")
		return
	}
	p.printf(" @deprecated(reason: %q)", *reason)
}

func (p *printer) args(args []InputValue) error {
	if len(args) == 0 {
		return nil
	}
	p.printf("(")
	for i, a := range args {
		if i > 0 {
			p.printf(", ")
		}
		ref, err := typeReference(a.Type)
		if err != nil {
			return fmt.Errorf("argument %s: %w", a.Name, err)
		}
		p.printf("%s: %s", a.Name, ref)
		if a.DefaultValue != nil {
			p.printf(" = %s", *a.DefaultValue)
		}
	}
	p.printf(")")
	return nil
}

func (p *printer) directive(d Directive) {
	p.description(d.Description, "")
	p.printf("directive @%s", d.Name)
	if err := p.args(d.Args); err != nil && p.err == nil {
		p.err = fmt.Errorf("introspect: directive @%s: %w", d.Name, err)
	}
	p.printf(" on %s\n\n", strings.Join(d.Locations, " | "))
}

func (p *printer) namedType(t Type) error {
	name := *t.Name
	p.description(t.Description, "")
	switch t.Kind {
	case TypeKindScalar:
		p.printf("scalar %s\n\n", name)
	case TypeKindUnion:
		members := make([]string, 0, len(t.PossibleTypes))
		for _, m := range t.PossibleTypes {
			members = append(members, rootName(&m))
		}
		p.printf("union %s = %s\n\n", name, strings.Join(members, " | "))
	case TypeKindEnum:
		p.printf("enum %s {\n", name)
		for _, e := range t.EnumValues {
			p.description(e.Description, "\t")
			p.printf("\t%s", e.Name)
			p.deprecated(e.IsDeprecated, e.DeprecationReason)
			p.printf("\n")
		}
		p.printf("}\n\n")
	case TypeKindInputObject:
		p.printf("input %s {\n", name)
		for _, f := range t.InputFields {
			p.description(f.Description, "\t")
			ref, err := typeReference(f.Type)
			if err != nil {
				return fmt.Errorf("introspect: %s.%s: %w", name, f.Name, err)
			}
			p.printf("\t%s: %s", f.Name, ref)
			if f.DefaultValue != nil {
				p.printf(" = %s", *f.DefaultValue)
			}
			p.printf("\n")
		}
		p.printf("}\n\n")
	case TypeKindObject, TypeKindInterface:
		keyword := "type"
		if t.Kind == TypeKindInterface {
			keyword = "interface"
		}
		p.printf("%s %s", keyword, name)
		if len(t.Interfaces) > 0 {
			names := make([]string, 0, len(t.Interfaces))
			for _, i := range t.Interfaces {
				names = append(names, rootName(&i))
			}
			p.printf(" implements %s", strings.Join(names, " & "))
		}
		p.printf(" {\n")
		for _, f := range t.Fields {
			p.description(f.Description, "\t")
			p.printf("\t%s", f.Name)
			if err := p.args(f.Args); err != nil {
				return fmt.Errorf("introspect: %s.%s: %w", name, f.Name, err)
			}
			ref, err := typeReference(f.Type)
			if err != nil {
				return fmt.Errorf("introspect: %s.%s: %w", name, f.Name, err)
			}
			p.printf(": %s", ref)
			p.deprecated(f.IsDeprecated, f.DeprecationReason)
			p.printf("\n")
		}
		p.printf("}\n\n")
	default:
		return fmt.Errorf("introspect: type %s has unexpected kind %q", name, t.Kind)
	}
	return p.err
}

// typeReference renders a wrapped type reference such as [ID!]!.
func typeReference(t *Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("missing type")
	}
	switch t.Kind {
	case TypeKindNonNull:
		inner, err := typeReference(t.OfType)
		if err != nil {
			return "", err
		}
		return inner + "!", nil
	case TypeKindList:
		inner, err := typeReference(t.OfType)
		if err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	}
	if t.Name == nil {
		return "", fmt.Errorf("unnamed %s type", t.Kind)
	}
	return *t.Name, nil
}
