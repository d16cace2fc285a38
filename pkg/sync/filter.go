package sync

import (
	"golang.org/x/text/language"

	"github.com/tokmz/dictsync/pkg/brandapi"
)

// sameLanguage 两侧都是合法 BCP 47 标签时按标签比较（pt_br == pt-BR），否则按原字符串比较
func sameLanguage(a, b string) bool {
	if a == b {
		return true
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return ta == tb
}

// filterLanguages 保留 only 中请求的语言，保持平台返回的顺序
// 返回值 unknown 为平台未提供的请求代码
func filterLanguages(langs []brandapi.Language, only []string) (kept []brandapi.Language, unknown []string) {
	if len(only) == 0 {
		return langs, nil
	}

	found := make([]bool, len(only))
	for _, l := range langs {
		match := false
		for i, want := range only {
			if sameLanguage(l.Code, want) {
				found[i] = true
				match = true
			}
		}
		if match {
			kept = append(kept, l)
		}
	}
	for i, want := range only {
		if !found[i] {
			unknown = append(unknown, want)
		}
	}
	return kept, unknown
}
