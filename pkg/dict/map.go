package dict

import (
	"bytes"
)

// Entry 键值对
type Entry struct {
	Key   string
	Value Value
}

// Map 按插入顺序保存键值的对象
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap 创建空对象
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// MapOf 按顺序由键值对构建对象，重复键以后者为准
func MapOf(entries ...Entry) *Map {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Len 键数量
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys 按插入顺序返回所有键
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries 按插入顺序返回键值对副本
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Get 获取键对应的值
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Set 设置值：键已存在时原位替换，否则追加到末尾
func (m *Map) Set(key string, v Value) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// SetIfAbsent 仅在键不存在时写入，返回是否写入
func (m *Map) SetIfAbsent(key string, v Value) bool {
	if _, ok := m.index[key]; ok {
		return false
	}
	m.Set(key, v)
	return true
}

// Range 按插入顺序遍历，fn 返回 false 时停止
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Equal 比较两个对象（键序也需一致）
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i := 0; i < m.Len(); i++ {
		a, b := m.entries[i], o.entries[i]
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

// MarshalJSON 实现 json.Marshaler
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.appendTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON 实现 json.Unmarshaler（保留键序）
func (m *Map) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if !v.IsObject() {
		return ErrNotObject.WithMessage("expected JSON object, got " + v.Kind().String())
	}
	*m = *v.Map()
	return nil
}

func (m *Map) appendTo(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i := 0; i < m.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		e := m.entries[i]
		if err := appendString(buf, e.Key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := e.Value.appendTo(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
