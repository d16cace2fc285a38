package dict

import "strings"

// Delimiter 扁平键的路径分隔符
const Delimiter = "."

// Deflatten 将点分隔的扁平键展开为嵌套对象
//
//	{"a.b": 1, "a.c": 2}  =>  {"a": {"b": 1, "c": 2}}
//
// 按输入顺序处理，已存在的节点从不覆盖：
//   - 末段已存在时新值被丢弃（先写入者胜出）
//   - 中间段已是非对象值时返回 *ConflictError
//
// 因此结果依赖输入顺序：{"a": 1, "a.b": 2} 报错，
// 而 {"a.b": 2, "a": 1} 得到 {"a": {"b": 2}}。
func Deflatten(entries []Entry) (*Map, error) {
	root := NewMap()
	for _, e := range entries {
		if err := insert(root, e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// DeflattenMap 同 Deflatten，输入为有序对象
func DeflattenMap(m *Map) (*Map, error) {
	return Deflatten(m.Entries())
}

func insert(root *Map, key string, value Value) error {
	parts := strings.Split(key, Delimiter)
	node := root
	for i, part := range parts {
		last := i == len(parts)-1

		existing, ok := node.Get(part)
		if !ok {
			if last {
				node.Set(part, value)
				return nil
			}
			child := NewMap()
			node.Set(part, Object(child))
			node = child
			continue
		}

		if last {
			return nil
		}
		if !existing.IsObject() {
			return &ConflictError{
				Key:      key,
				Path:     strings.Join(parts[:i+1], Delimiter),
				Existing: existing.Kind(),
			}
		}
		node = existing.Map()
	}
	return nil
}

// Flatten 将嵌套对象压平为点分隔键，深度优先并保持键序
// 空对象作为叶子保留
func Flatten(m *Map) []Entry {
	var out []Entry
	flattenInto(&out, m, nil)
	return out
}

func flattenInto(out *[]Entry, m *Map, path []string) {
	m.Range(func(k string, v Value) bool {
		p := append(path[:len(path):len(path)], k)
		if v.IsObject() && v.Map().Len() > 0 {
			flattenInto(out, v.Map(), p)
			return true
		}
		*out = append(*out, Entry{Key: strings.Join(p, Delimiter), Value: v})
		return true
	})
}
