package fixtures

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/toejough/factori"
	"gopkg.in/yaml.v3"
)

// Document is a parsed fixture file.
type Document struct {
	entries map[string]*Entry
	names   []string
}

// Entry is one factory declared in a Document.
type Entry struct {
	Name       string
	Defaults   []factori.Field
	Transients []factori.Field
	Mixins     []Mixin
}

// Mixin is a named bundle of overrides declared in a Document.
type Mixin struct {
	Name   string
	Fields []factori.Field
}

// Errors returned while parsing or binding a Document.
var (
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrFactoryNotFound = errors.New("factory not found in fixture document")
	ErrInvalidDocument = errors.New("invalid fixture document")
	ErrUnknownBlock    = errors.New("unknown block")
)

// Functions - Public

// Define turns the entry called name into a definer for T. The caller may add builders,
// lazy values or more mixins before registering it.
func Define[T any](doc *Document, name string) (*factori.Definer[T], error) {
	entry, ok := doc.Entry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFactoryNotFound, name)
	}

	definer := factori.Define[T]()

	for _, field := range entry.Defaults {
		definer.Default(field.Name, field.Value)
	}

	for _, field := range entry.Transients {
		definer.Transient(field.Name, field.Value)
	}

	for _, mixin := range entry.Mixins {
		definer.Mixin(mixin.Name, mixin.Fields...)
	}

	return definer, nil
}

// LoadFile reads and parses the fixture document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse parses YAML data into a Document. Key order within each block is kept.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node

	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	doc := &Document{entries: make(map[string]*Entry)}

	// an empty file holds no document node
	if len(root.Content) == 0 {
		return doc, nil
	}

	err = doc.parseRoot(root.Content[0])
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Register binds the entry called name to T and registers it with the default registry.
func Register[T any](doc *Document, name string) error {
	return RegisterIn[T](factori.DefaultRegistry(), doc, name)
}

// RegisterIn binds the entry called name to T and registers it with reg.
func RegisterIn[T any](reg *factori.Registry, doc *Document, name string) error {
	definer, err := Define[T](doc, name)
	if err != nil {
		return err
	}

	return definer.RegisterIn(reg)
}

// Entry returns the factory called name.
func (d *Document) Entry(name string) (*Entry, bool) {
	entry, ok := d.entries[name]

	return entry, ok
}

// Names returns the factory names in document order.
func (d *Document) Names() []string {
	return slices.Clone(d.names)
}

// Functions - Private

func (d *Document) parseRoot(node *yaml.Node) error {
	return eachPair(node, "document", func(key string, value *yaml.Node) error {
		if key != "factories" {
			return fmt.Errorf("%w: %q at line %d", ErrUnknownBlock, key, value.Line)
		}

		return eachPair(value, "factories", func(name string, body *yaml.Node) error {
			entry, err := parseEntry(name, body)
			if err != nil {
				return fmt.Errorf("factory %q: %w", name, err)
			}

			d.entries[name] = entry
			d.names = append(d.names, name)

			return nil
		})
	})
}

func parseEntry(name string, node *yaml.Node) (*Entry, error) {
	entry := &Entry{Name: name}

	// a factory with no blocks builds zero values
	if isNull(node) {
		return entry, nil
	}

	err := eachPair(node, "factory", func(key string, value *yaml.Node) error {
		var err error

		switch key {
		case "default":
			entry.Defaults, err = parseFields(value, "default")
		case "transient":
			entry.Transients, err = parseFields(value, "transient")
		case "mixins":
			entry.Mixins, err = parseMixins(value)
		default:
			return fmt.Errorf("%w: %q at line %d", ErrUnknownBlock, key, value.Line)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func parseFields(node *yaml.Node, where string) ([]factori.Field, error) {
	var fields []factori.Field

	err := eachPair(node, where, func(key string, value *yaml.Node) error {
		var decoded any

		err := value.Decode(&decoded)
		if err != nil {
			return fmt.Errorf("%s field %q: %w", where, key, err)
		}

		fields = append(fields, factori.Set(key, decoded))

		return nil
	})

	return fields, err
}

func parseMixins(node *yaml.Node) ([]Mixin, error) {
	var mixins []Mixin

	err := eachPair(node, "mixins", func(name string, value *yaml.Node) error {
		fields, err := parseFields(value, "mixin "+name)
		if err != nil {
			return err
		}

		mixins = append(mixins, Mixin{Name: name, Fields: fields})

		return nil
	})

	return mixins, err
}

// eachPair calls visit for every key of a mapping node, in order, rejecting duplicate
// keys. Aliases are followed and a null node counts as an empty mapping.
func eachPair(node *yaml.Node, where string, visit func(key string, value *yaml.Node) error) error {
	node = resolve(node)

	if isNull(node) {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s at line %d must be a mapping", ErrInvalidDocument, where, node.Line)
	}

	seen := make(map[string]int, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], resolve(node.Content[i+1])
		key := keyNode.Value

		if line, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q in %s at line %d, first at line %d",
				ErrDuplicateKey, key, where, keyNode.Line, line)
		}

		seen[key] = keyNode.Line

		err := visit(key, valueNode)
		if err != nil {
			return err
		}
	}

	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	return node
}
