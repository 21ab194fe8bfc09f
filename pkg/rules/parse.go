package rules

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Date layouts accepted for date check targets, tried in order after any
// layout registered with WithDateLayout.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	time.DateTime,
}

// ParseOption configures Parse.
type ParseOption func(*parser)

// WithFuncs registers the functions that `custom` checks may reference by name.
func WithFuncs(funcs map[string]CustomFunc) ParseOption {
	return func(p *parser) {
		for name, fn := range funcs {
			if fn != nil {
				p.funcs[name] = fn
			}
		}
	}
}

// WithDateLayout adds a layout tried first when decoding date check targets.
func WithDateLayout(layout string) ParseOption {
	return func(p *parser) {
		if layout != "" {
			p.layouts = append([]string{layout}, p.layouts...)
		}
	}
}

type parser struct {
	funcs   map[string]CustomFunc
	layouts []string
}

// Parse decodes a YAML or JSON rules document. The document is a mapping from
// field name to `true` or to a mapping of checks; declaration order is kept.
// An empty document yields no declarations.
func Parse(data []byte, opts ...ParseOption) (Declarations, error) {
	p := &parser{
		funcs:   make(map[string]CustomFunc),
		layouts: slices.Clone(dateLayouts),
	}
	for _, opt := range opts {
		opt(p)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if doc.Kind == 0 {
		return Declarations{}, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Declarations{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected mapping of fields at line %d", ErrInvalidDocument, root.Line)
	}

	decls := make(Declarations, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		field := root.Content[i].Value
		decl, ok, err := p.field(field, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		if ok {
			decls = append(decls, decl)
		}
	}
	return decls, nil
}

func (p *parser) field(field string, node *yaml.Node) (Declaration, bool, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return Declaration{}, false, fmt.Errorf("%w: %q at line %d has no value", ErrInvalidField, field, node.Line)
		}
		var on bool
		if err := node.Decode(&on); err != nil {
			return Declaration{}, false, fmt.Errorf("%w: %q at line %d must be true or a mapping", ErrInvalidField, field, node.Line)
		}
		return Required(field), on, nil
	case yaml.MappingNode:
		spec, err := p.spec(field, node)
		if err != nil {
			return Declaration{}, false, err
		}
		return Field(field, spec), true, nil
	default:
		return Declaration{}, false, fmt.Errorf("%w: %q at line %d must be true or a mapping", ErrInvalidField, field, node.Line)
	}
}

func (p *parser) spec(field string, node *yaml.Node) (*Spec, error) {
	spec := &Spec{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]

		var err error
		switch name {
		case "required":
			spec.Required, err = decodeCheck(value, scalar[bool])
		case "isEmail":
			spec.IsEmail, err = decodeCheck(value, scalar[bool])
		case "isURL":
			spec.IsURL, err = decodeCheck(value, scalar[bool])
		case "minLength":
			spec.MinLength, err = decodeCheck(value, scalar[int])
		case "maxLength":
			spec.MaxLength, err = decodeCheck(value, scalar[int])
		case "pattern":
			spec.Pattern, err = decodeCheck(value, scalar[string])
		case "min":
			spec.Min, err = decodeCheck(value, scalar[float64])
		case "max":
			spec.Max, err = decodeCheck(value, scalar[float64])
		case "ltDate":
			spec.LtDate, err = decodeCheck(value, p.date)
		case "lteDate":
			spec.LteDate, err = decodeCheck(value, p.date)
		case "gtDate":
			spec.GtDate, err = decodeCheck(value, p.date)
		case "gteDate":
			spec.GteDate, err = decodeCheck(value, p.date)
		case "custom":
			spec.Custom, err = decodeCheck(value, p.custom)
		case "expression":
			spec.Expression, err = decodeCheck(value, scalar[string])
		default:
			return nil, fmt.Errorf("%w: %q on field %q at line %d", ErrUnknownCheck, name, field, node.Content[i].Line)
		}
		if err != nil {
			return nil, fmt.Errorf("field %q check %q: %w", field, name, err)
		}
	}
	return spec, nil
}

// decodeCheck reads either a bare value or an override record {value, message}.
func decodeCheck[T any](node *yaml.Node, conv func(*yaml.Node) (T, error)) (Check[T], error) {
	if node.Kind != yaml.MappingNode {
		v, err := conv(node)
		if err != nil {
			return Check[T]{}, err
		}
		return Plain(v), nil
	}

	var (
		valueNode *yaml.Node
		message   string
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch key := node.Content[i].Value; key {
		case "value":
			valueNode = node.Content[i+1]
		case "message":
			message = node.Content[i+1].Value
		default:
			return Check[T]{}, fmt.Errorf("%w: unexpected key %q at line %d", ErrInvalidCheckValue, key, node.Content[i].Line)
		}
	}
	if valueNode == nil {
		return Check[T]{}, fmt.Errorf("%w: override record at line %d has no value", ErrInvalidCheckValue, node.Line)
	}

	v, err := conv(valueNode)
	if err != nil {
		return Check[T]{}, err
	}
	if message == "" {
		return Plain(v), nil
	}
	return Override(v, message), nil
}

func scalar[T any](node *yaml.Node) (T, error) {
	var v T
	if node.Kind != yaml.ScalarNode {
		return v, fmt.Errorf("%w: expected scalar at line %d", ErrInvalidCheckValue, node.Line)
	}
	if err := node.Decode(&v); err != nil {
		return v, errors.Join(ErrInvalidCheckValue, err)
	}
	return v, nil
}

func (p *parser) date(node *yaml.Node) (time.Time, error) {
	if node.Kind != yaml.ScalarNode {
		return time.Time{}, fmt.Errorf("%w: expected date at line %d", ErrInvalidCheckValue, node.Line)
	}
	s := strings.TrimSpace(node.Value)
	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q as a date at line %d", ErrInvalidCheckValue, s, node.Line)
}

func (p *parser) custom(node *yaml.Node) (CustomFunc, error) {
	name, err := scalar[string](node)
	if err != nil {
		return nil, err
	}
	fn, ok := p.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, name)
	}
	return fn, nil
}
