// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package ast

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/strcase"
)

// KindName returns the discriminator used in the JSON encoding of a node, such
// as "prop_to" for a PropTo.
func KindName(k Kind) string {
	return strcase.ToSnake(k.String())
}

// marshalKind encodes v, which must encode to a JSON object, and adds a kind
// field at the front of it.
func marshalKind(kind string, v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(b) < 2 || b[0] != '{' {
		return nil, fmt.Errorf("kind %s did not encode to an object", kind)
	}
	k, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	buf.WriteString(`{"kind":`)
	buf.Write(k)
	if rest := b[1:]; !bytes.Equal(rest, []byte("}")) {
		buf.WriteByte(',')
		buf.Write(rest)
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the node with its kind.
func (obj *Const) MarshalJSON() ([]byte, error) {
	type alias Const
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Spider) MarshalJSON() ([]byte, error) {
	type alias Spider
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Var) MarshalJSON() ([]byte, error) {
	type alias Var
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Stack) MarshalJSON() ([]byte, error) {
	type alias Stack
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Compose) MarshalJSON() ([]byte, error) {
	type alias Compose
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *NStack) MarshalJSON() ([]byte, error) {
	type alias NStack
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *NStack1) MarshalJSON() ([]byte, error) {
	type alias NStack1
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Cast) MarshalJSON() ([]byte, error) {
	type alias Cast
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *PropTo) MarshalJSON() ([]byte, error) {
	type alias PropTo
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Transform) MarshalJSON() ([]byte, error) {
	type alias Transform
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Scale) MarshalJSON() ([]byte, error) {
	type alias Scale
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *Function) MarshalJSON() ([]byte, error) {
	type alias Function
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes the node with its kind.
func (obj *NWire) MarshalJSON() ([]byte, error) {
	type alias NWire
	return marshalKind(KindName(obj.Kind()), (*alias)(obj))
}

// MarshalJSON encodes whichever of the two fields is set.
func (obj *Arg) MarshalJSON() ([]byte, error) {
	if obj.Num != nil {
		return json.Marshal(obj.Num)
	}
	return json.Marshal(obj.Node)
}

// MarshalJSON encodes the number with its kind.
func (obj *NumLiteral) MarshalJSON() ([]byte, error) {
	type alias NumLiteral
	return marshalKind("literal", (*alias)(obj))
}

// MarshalJSON encodes the number with its kind.
func (obj *NumVariable) MarshalJSON() ([]byte, error) {
	type alias NumVariable
	return marshalKind("variable", (*alias)(obj))
}

// MarshalJSON encodes the number with its kind.
func (obj *NumBinaryOp) MarshalJSON() ([]byte, error) {
	type alias NumBinaryOp
	return marshalKind("binary_op", (*alias)(obj))
}

// MarshalJSON encodes the number with its kind.
func (obj *NumUnaryOp) MarshalJSON() ([]byte, error) {
	type alias NumUnaryOp
	return marshalKind("unary_op", (*alias)(obj))
}

// MarshalJSON encodes the number with its kind.
func (obj *NumFunctionCall) MarshalJSON() ([]byte, error) {
	type alias NumFunctionCall
	return marshalKind("function_call", (*alias)(obj))
}

// MarshalJSON encodes the number with its kind.
func (obj *NumRealConstant) MarshalJSON() ([]byte, error) {
	type alias NumRealConstant
	return marshalKind("real_constant", (*alias)(obj))
}
