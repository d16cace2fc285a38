package dict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const indent = "  "

func newDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

// DecodeFlat 解码扁平字典
// 顶层必须是对象；按键首次出现的顺序返回键值对，重复键取最后一次出现的值
func DecodeFlat(r io.Reader) ([]Entry, error) {
	dec := newDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, ErrDecode.WithError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		v, err := decodeToken(dec, tok)
		if err != nil {
			return nil, ErrDecode.WithError(err)
		}
		// 空字典可能被后端序列化为 []
		if v.Kind() == ArrayKind && len(v.Items()) == 0 {
			if err := expectEOF(dec); err != nil {
				return nil, ErrDecode.WithError(err)
			}
			return []Entry{}, nil
		}
		return nil, ErrNotObject.WithMessage("expected JSON object, got " + v.Kind().String())
	}

	m := NewMap()
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return nil, ErrDecode.WithError(err)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, ErrDecode.WithError(err)
		}
		m.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, ErrDecode.WithError(err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, ErrDecode.WithError(err)
	}
	return m.Entries(), nil
}

// Encode 以 2 空格缩进写出对象，不转义非 ASCII 与 HTML 字符，末尾不带换行
func Encode(w io.Writer, m *Map) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(m); err != nil {
		return ErrEncode.WithError(err)
	}
	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		return ErrEncode.WithError(err)
	}
	return nil
}

// Marshal 同 Encode，返回字节
func Marshal(m *Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("unexpected object key token %v", tok)
	}
	return key, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				key, err := decodeKey(dec)
				if err != nil {
					return Value{}, err
				}
				v, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Object(m), nil
		case '[':
			items := []Value{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(items...), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func expectEOF(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("unexpected trailing data %v", tok)
}
