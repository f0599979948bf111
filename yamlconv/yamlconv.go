// Package yamlconv converts YAML documents into jsonkit values.
//
// Numbers follow the JSON interpretation rules (narrowest fitting width);
// mapping keys must be scalars; repeated keys keep their first occurrence.
package yamlconv

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	jsonkit "github.com/reoring/jsonkit"
)

const maxAliasDepth = 1000

// A document may expand to at most minNodeBudget nodes, or nodesPerByte
// nodes per input byte when that is larger. Aliases count once per use.
const (
	minNodeBudget = 10000
	nodesPerByte  = 100
)

// walker converts a node tree while counting the nodes it produces.
type walker struct {
	nodes  int
	budget int
}

func newWalker(data []byte) *walker {
	return &walker{budget: max(minNodeBudget, nodesPerByte*len(data))}
}

// Decode converts the first YAML document in data. Empty input is None.
func Decode(data []byte) (jsonkit.Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return jsonkit.Value{}, syntaxError(err)
	}
	return newWalker(data).convert(&root, 0)
}

// DecodeAll converts every document of a multi-document YAML stream.
func DecodeAll(data []byte) ([]jsonkit.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	w := newWalker(data)
	var out []jsonkit.Value
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, syntaxError(err)
		}
		v, err := w.convert(&n, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (w *walker) convert(n *yaml.Node, aliases int) (jsonkit.Value, error) {
	if n.Kind != yaml.DocumentNode && n.Kind != yaml.AliasNode {
		if w.nodes++; w.nodes > w.budget {
			return jsonkit.Value{}, nodeError(jsonkit.CodeOutOfRange, n, "document expands to more than "+strconv.Itoa(w.budget)+" nodes")
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonkit.Value{}, nil
		}
		return w.convert(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return jsonkit.Value{}, nodeError(jsonkit.CodeOutOfRange, n, "alias nesting too deep")
		}
		return w.convert(n.Alias, aliases+1)
	case yaml.SequenceNode:
		arr := make([]jsonkit.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.convert(c, aliases)
			if err != nil {
				return jsonkit.Value{}, err
			}
			arr = append(arr, v)
		}
		return jsonkit.NewArrayFrom(arr), nil
	case yaml.MappingNode:
		var o jsonkit.Object
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return jsonkit.Value{}, nodeError(jsonkit.CodeBadKey, k, "mapping key must be a scalar")
			}
			if k.Value == "" {
				return jsonkit.Value{}, nodeError(jsonkit.CodeBadKey, k, "empty key")
			}
			v, err := w.convert(vn, aliases)
			if err != nil {
				return jsonkit.Value{}, err
			}
			o.Add(k.Value, v)
		}
		return jsonkit.NewObjectFrom(o), nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return jsonkit.Value{}, nil
}

func scalar(n *yaml.Node) (jsonkit.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonkit.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsonkit.Value{}, nodeError(jsonkit.CodeBadValue, n, err.Error())
		}
		return jsonkit.NewBool(b), nil
	case "!!int":
		return integer(n)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsonkit.Value{}, nodeError(jsonkit.CodeBadValue, n, err.Error())
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return jsonkit.Value{}, nodeError(jsonkit.CodeBadValue, n, "non-finite number")
		}
		lit := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(lit, ".eE") {
			lit += ".0"
		}
		return number(n, lit)
	}
	return jsonkit.NewString(n.Value), nil
}

func integer(n *yaml.Node) (jsonkit.Value, error) {
	var i int64
	if err := n.Decode(&i); err == nil {
		return number(n, strconv.FormatInt(i, 10))
	}
	var u uint64
	if err := n.Decode(&u); err != nil {
		return jsonkit.Value{}, nodeError(jsonkit.CodeBadValue, n, err.Error())
	}
	return number(n, strconv.FormatUint(u, 10))
}

func number(n *yaml.Node, lit string) (jsonkit.Value, error) {
	v, err := jsonkit.ParseNumber(lit)
	if err != nil {
		return jsonkit.Value{}, nodeError(jsonkit.CodeBadValue, n, lit)
	}
	return v, nil
}

func nodeError(code jsonkit.Code, n *yaml.Node, detail string) *jsonkit.Error {
	e := jsonkit.NewError(code, map[string]string{"detail": detail})
	e.Line, e.Column = n.Line, n.Column
	return e
}

func syntaxError(err error) *jsonkit.Error {
	return &jsonkit.Error{Code: jsonkit.CodeUnexpectedToken, Message: err.Error(), Cause: err}
}
