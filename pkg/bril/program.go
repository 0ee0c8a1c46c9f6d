// SPDX-License-Identifier: MPL-2.0

// Package bril defines the data model for Bril programs in their canonical
// JSON interchange form.
//
// The model is structural only: it captures the shape the toolchain exchanges
// (functions, instructions, labels, types) and says nothing about whether a
// program is well formed. Semantic validation belongs to checker
// implementations, execution to interpreter implementations.
package bril

import (
	"encoding/json"
	"fmt"
)

// EntryFunctionName is the function an interpreter starts from; invocation
// arguments bind positionally to its parameters.
const EntryFunctionName = "main"

type (
	// Program is the root of a Bril document.
	Program struct {
		Functions []Function `json:"functions"`
	}

	// Function is a named sequence of instructions with optional typed
	// parameters and an optional return type.
	Function struct {
		Name   string        `json:"name"`
		Args   []Arg         `json:"args,omitempty"`
		Type   *Type         `json:"type,omitempty"`
		Instrs []Instruction `json:"instrs"`
	}

	// Arg is a formal parameter of a function.
	Arg struct {
		Name string `json:"name"`
		Type Type   `json:"type"`
	}

	// Instruction is a single element of a function body. Bril encodes
	// operations and labels in the same position: a label carries only the
	// Label field, an operation carries Op plus whichever operands apply.
	Instruction struct {
		Op     string   `json:"op,omitempty"`
		Dest   string   `json:"dest,omitempty"`
		Type   *Type    `json:"type,omitempty"`
		Args   []string `json:"args,omitempty"`
		Funcs  []string `json:"funcs,omitempty"`
		Labels []string `json:"labels,omitempty"`
		Value  any      `json:"value,omitempty"`
		Label  string   `json:"label,omitempty"`
	}

	// Type is a Bril type: either a primitive such as "int" or "bool", or a
	// parameterized type such as {"ptr": "int"}.
	Type struct {
		Name  string
		Param *Type
	}
)

// IsLabel reports whether the instruction is a label marker.
func (i Instruction) IsLabel() bool { return i.Label != "" && i.Op == "" }

// Function returns the named function, or nil when absent.
func (p *Program) Function(name string) *Function {
	for idx := range p.Functions {
		if p.Functions[idx].Name == name {
			return &p.Functions[idx]
		}
	}
	return nil
}

// Entry returns the program's entry function, or nil when absent.
func (p *Program) Entry() *Function {
	return p.Function(EntryFunctionName)
}

// UnmarshalProgram decodes a JSON-form Bril program.
func UnmarshalProgram(data []byte) (*Program, error) {
	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode bril program: %w", err)
	}
	return &p, nil
}

// MarshalProgram encodes a program back to its JSON form.
func MarshalProgram(p *Program) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode bril program: %w", err)
	}
	return data, nil
}

// MarshalJSON encodes primitive types as bare strings and parameterized types
// as single-entry objects.
func (t Type) MarshalJSON() ([]byte, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("bril type has no name")
	}
	if t.Param == nil {
		return json.Marshal(t.Name)
	}
	return json.Marshal(map[string]*Type{t.Name: t.Param})
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON.
func (t *Type) UnmarshalJSON(data []byte) error {
	var prim string
	if err := json.Unmarshal(data, &prim); err == nil {
		t.Name, t.Param = prim, nil
		return nil
	}

	var parameterized map[string]*Type
	if err := json.Unmarshal(data, &parameterized); err != nil {
		return fmt.Errorf("bril type must be a string or a single-entry object: %w", err)
	}
	if len(parameterized) != 1 {
		return fmt.Errorf("bril type object must have exactly one entry, got %d", len(parameterized))
	}
	for name, param := range parameterized {
		t.Name, t.Param = name, param
	}
	return nil
}

// String renders the type in the textual-form notation, e.g. "ptr<int>".
func (t Type) String() string {
	if t.Param == nil {
		return t.Name
	}
	return fmt.Sprintf("%s<%s>", t.Name, t.Param)
}
