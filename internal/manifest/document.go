package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	objectOpenLiteralConstant        = "{"
	objectCloseLiteralConstant       = "}"
	arrayOpenLiteralConstant         = "["
	arrayCloseLiteralConstant        = "]"
	emptyObjectLiteralConstant       = "{}"
	emptyArrayLiteralConstant        = "[]"
	fieldSeparatorLiteralConstant    = ": "
	elementSeparatorLiteralConstant  = ","
	nullLiteralConstant              = "null"
	trueLiteralConstant              = "true"
	falseLiteralConstant             = "false"
	unexpectedTokenTemplateConstant  = "unexpected token %v"
	unexpectedKeyTemplateConstant    = "expected object key, found %v"
	unsupportedValueTemplateConstant = "unsupported value of type %T"
)

// Field pairs a document key with its decoded value.
type Field struct {
	Name  string
	Value any
}

// Document is an order-preserving JSON object: a sequence of fields in source
// order with an auxiliary index for O(1) lookup. Values are strings, bools,
// json.Number literals, nil, []any arrays, or nested *Document objects.
type Document struct {
	fields []Field
	index  map[string]int
}

// NewDocument constructs an empty ordered document.
func NewDocument() *Document {
	return &Document{index: map[string]int{}}
}

// Len reports the number of fields in the document.
func (document *Document) Len() int {
	return len(document.fields)
}

// Keys returns the field names in source order.
func (document *Document) Keys() []string {
	keys := make([]string, 0, len(document.fields))
	for _, field := range document.fields {
		keys = append(keys, field.Name)
	}
	return keys
}

// Fields returns a copy of the ordered field sequence.
func (document *Document) Fields() []Field {
	duplicated := make([]Field, len(document.fields))
	copy(duplicated, document.fields)
	return duplicated
}

// Get returns the value stored under the provided name.
func (document *Document) Get(name string) (any, bool) {
	position, exists := document.index[name]
	if !exists {
		return nil, false
	}
	return document.fields[position].Value, true
}

// GetString returns the string value stored under the provided name.
func (document *Document) GetString(name string) (string, bool) {
	value, exists := document.Get(name)
	if !exists {
		return "", false
	}
	stringValue, isString := value.(string)
	return stringValue, isString
}

// GetBool returns the boolean value stored under the provided name.
func (document *Document) GetBool(name string) (bool, bool) {
	value, exists := document.Get(name)
	if !exists {
		return false, false
	}
	boolValue, isBool := value.(bool)
	return boolValue, isBool
}

// GetDocument returns the nested object stored under the provided name.
func (document *Document) GetDocument(name string) (*Document, bool) {
	value, exists := document.Get(name)
	if !exists {
		return nil, false
	}
	nestedDocument, isDocument := value.(*Document)
	return nestedDocument, isDocument
}

// GetStringSlice returns the array of strings stored under the provided name.
func (document *Document) GetStringSlice(name string) ([]string, bool) {
	value, exists := document.Get(name)
	if !exists {
		return nil, false
	}
	elements, isArray := value.([]any)
	if !isArray {
		return nil, false
	}
	strings := make([]string, 0, len(elements))
	for _, element := range elements {
		stringValue, isString := element.(string)
		if !isString {
			return nil, false
		}
		strings = append(strings, stringValue)
	}
	return strings, true
}

// Set stores a value under the provided name, preserving the position of an
// existing field and appending new fields at the end.
func (document *Document) Set(name string, value any) {
	if position, exists := document.index[name]; exists {
		document.fields[position].Value = value
		return
	}
	document.index[name] = len(document.fields)
	document.fields = append(document.fields, Field{Name: name, Value: value})
}

// Remove deletes the field with the provided name and reports whether it existed.
func (document *Document) Remove(name string) bool {
	position, exists := document.index[name]
	if !exists {
		return false
	}
	document.fields = append(document.fields[:position], document.fields[position+1:]...)
	delete(document.index, name)
	for followingPosition := position; followingPosition < len(document.fields); followingPosition++ {
		document.index[document.fields[followingPosition].Name] = followingPosition
	}
	return true
}

// SortByName reorders the fields into case-sensitive ascending lexical order.
func (document *Document) SortByName() {
	sort.Slice(document.fields, func(first int, second int) bool {
		return document.fields[first].Name < document.fields[second].Name
	})
	for position, field := range document.fields {
		document.index[field.Name] = position
	}
}

// IsSortedByName reports whether the fields are already in case-sensitive
// ascending lexical order.
func (document *Document) IsSortedByName() bool {
	for position := 1; position < len(document.fields); position++ {
		if document.fields[position-1].Name > document.fields[position].Name {
			return false
		}
	}
	return true
}

// Plain converts a decoded value into plain maps and slices suitable for
// generic decoders such as mapstructure.
func Plain(value any) any {
	switch typed := value.(type) {
	case *Document:
		plainMap := make(map[string]any, len(typed.fields))
		for _, field := range typed.fields {
			plainMap[field.Name] = Plain(field.Value)
		}
		return plainMap
	case []any:
		plainSlice := make([]any, len(typed))
		for position, element := range typed {
			plainSlice[position] = Plain(element)
		}
		return plainSlice
	default:
		return typed
	}
}

func parseDocument(decoder *json.Decoder) (*Document, error) {
	document := NewDocument()

	for decoder.More() {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return nil, keyError
		}

		key, isString := keyToken.(string)
		if !isString {
			return nil, fmt.Errorf(unexpectedKeyTemplateConstant, keyToken)
		}

		value, valueError := parseValue(decoder)
		if valueError != nil {
			return nil, valueError
		}

		document.Set(key, value)
	}

	if _, closingError := decoder.Token(); closingError != nil {
		return nil, closingError
	}

	return document, nil
}

func parseValue(decoder *json.Decoder) (any, error) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return nil, tokenError
	}

	delimiter, isDelimiter := token.(json.Delim)
	if !isDelimiter {
		return token, nil
	}

	switch delimiter.String() {
	case objectOpenLiteralConstant:
		return parseDocument(decoder)
	case arrayOpenLiteralConstant:
		elements := []any{}
		for decoder.More() {
			element, elementError := parseValue(decoder)
			if elementError != nil {
				return nil, elementError
			}
			elements = append(elements, element)
		}
		if _, closingError := decoder.Token(); closingError != nil {
			return nil, closingError
		}
		return elements, nil
	default:
		return nil, fmt.Errorf(unexpectedTokenTemplateConstant, token)
	}
}

type documentWriter struct {
	buffer     bytes.Buffer
	indentUnit string
	lineEnding string
}

func (writer *documentWriter) writeIndent(depth int) {
	for level := 0; level < depth; level++ {
		writer.buffer.WriteString(writer.indentUnit)
	}
}

func (writer *documentWriter) writeDocument(document *Document, depth int) error {
	if document.Len() == 0 {
		writer.buffer.WriteString(emptyObjectLiteralConstant)
		return nil
	}

	writer.buffer.WriteString(objectOpenLiteralConstant)
	writer.buffer.WriteString(writer.lineEnding)

	for position, field := range document.fields {
		writer.writeIndent(depth + 1)

		encodedName, encodeError := encodeJSONString(field.Name)
		if encodeError != nil {
			return encodeError
		}
		writer.buffer.WriteString(encodedName)
		writer.buffer.WriteString(fieldSeparatorLiteralConstant)

		if valueError := writer.writeValue(field.Value, depth+1); valueError != nil {
			return valueError
		}

		if position < len(document.fields)-1 {
			writer.buffer.WriteString(elementSeparatorLiteralConstant)
		}
		writer.buffer.WriteString(writer.lineEnding)
	}

	writer.writeIndent(depth)
	writer.buffer.WriteString(objectCloseLiteralConstant)
	return nil
}

func (writer *documentWriter) writeArray(elements []any, depth int) error {
	if len(elements) == 0 {
		writer.buffer.WriteString(emptyArrayLiteralConstant)
		return nil
	}

	writer.buffer.WriteString(arrayOpenLiteralConstant)
	writer.buffer.WriteString(writer.lineEnding)

	for position, element := range elements {
		writer.writeIndent(depth + 1)
		if valueError := writer.writeValue(element, depth+1); valueError != nil {
			return valueError
		}
		if position < len(elements)-1 {
			writer.buffer.WriteString(elementSeparatorLiteralConstant)
		}
		writer.buffer.WriteString(writer.lineEnding)
	}

	writer.writeIndent(depth)
	writer.buffer.WriteString(arrayCloseLiteralConstant)
	return nil
}

func (writer *documentWriter) writeValue(value any, depth int) error {
	switch typed := value.(type) {
	case *Document:
		return writer.writeDocument(typed, depth)
	case []any:
		return writer.writeArray(typed, depth)
	case string:
		encoded, encodeError := encodeJSONString(typed)
		if encodeError != nil {
			return encodeError
		}
		writer.buffer.WriteString(encoded)
		return nil
	case bool:
		if typed {
			writer.buffer.WriteString(trueLiteralConstant)
		} else {
			writer.buffer.WriteString(falseLiteralConstant)
		}
		return nil
	case json.Number:
		writer.buffer.WriteString(typed.String())
		return nil
	case nil:
		writer.buffer.WriteString(nullLiteralConstant)
		return nil
	default:
		return fmt.Errorf(unsupportedValueTemplateConstant, value)
	}
}

func encodeJSONString(value string) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return "", encodeError
	}
	return strings.TrimRight(buffer.String(), "\n"), nil
}
