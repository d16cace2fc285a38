package dict

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind JSON 值类型
type Kind uint8

const (
	// NullKind null
	NullKind Kind = iota
	// BoolKind true/false
	BoolKind
	// NumberKind 数字（保留原始字面量）
	NumberKind
	// StringKind 字符串
	StringKind
	// ArrayKind 数组
	ArrayKind
	// ObjectKind 有序对象
	ObjectKind
)

// String 返回类型名称
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Value JSON 值（tagged union）
// 零值为 null
type Value struct {
	kind Kind
	b    bool
	s    string // 字符串内容或数字字面量
	arr  []Value
	obj  *Map
}

// Null 创建 null 值
func Null() Value { return Value{} }

// Bool 创建布尔值
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Number 创建数字值，lit 为 JSON 数字字面量（如 "1"、"2.50"、"1e3"）
func Number(lit string) Value { return Value{kind: NumberKind, s: lit} }

// Int 创建整数值
func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// String 创建字符串值
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Array 创建数组值
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, arr: items}
}

// Object 创建对象值，m 为 nil 时创建空对象
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: ObjectKind, obj: m}
}

// Kind 返回值类型
func (v Value) Kind() Kind { return v.kind }

// IsObject 是否为对象
func (v Value) IsObject() bool { return v.kind == ObjectKind }

// Str 返回字符串内容，非字符串返回空串
func (v Value) Str() string {
	if v.kind != StringKind {
		return ""
	}
	return v.s
}

// Num 返回数字字面量，非数字返回空串
func (v Value) Num() json.Number {
	if v.kind != NumberKind {
		return ""
	}
	return json.Number(v.s)
}

// Boolean 返回布尔值
func (v Value) Boolean() bool { return v.kind == BoolKind && v.b }

// Items 返回数组元素
func (v Value) Items() []Value {
	if v.kind != ArrayKind {
		return nil
	}
	return v.arr
}

// Map 返回对象，非对象返回 nil
func (v Value) Map() *Map {
	if v.kind != ObjectKind {
		return nil
	}
	return v.obj
}

// Equal 深度比较（对象按键序比较）
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case NumberKind, StringKind:
		return v.s == o.s
	case ArrayKind:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		return v.obj.Equal(o.obj)
	}
	return false
}

// MarshalJSON 实现 json.Marshaler（不转义 HTML 与非 ASCII 字符）
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON 实现 json.Unmarshaler（保留对象键序）
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := newDecoder(bytes.NewReader(data))
	val, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func (v Value) appendTo(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		buf.WriteString(formatNumber(v.s))
	case StringKind:
		return appendString(buf, v.s)
	case ArrayKind:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.appendTo(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectKind:
		return v.obj.appendTo(buf)
	}
	return nil
}

// appendString 以 JSON 字符串写入 s，保留 <、>、& 与非 ASCII 原文
func appendString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
