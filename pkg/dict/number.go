package dict

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// formatNumber 将 JSON 数字字面量规范为已生成词典文件中的写法：
// 整数原样输出（-0 写作 0），小数按最短往返表示输出，
// 整数值的小数保留 ".0"，十进制指数超出 [-4, 16) 时使用科学计数法（1e+16、1e-05）
func formatNumber(lit string) string {
	if lit == "" {
		return "0"
	}
	if !strings.ContainsAny(lit, ".eE") {
		if lit == "-0" {
			return "0"
		}
		return lit
	}

	f, err := strconv.ParseFloat(lit, 64)
	if errors.Is(err, strconv.ErrSyntax) {
		return lit
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	sign := ""
	if math.Signbit(f) {
		sign = "-"
		f = -f
	}

	// d.ddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.Replace(mant, ".", "", 1)
	if f == 0 {
		return sign + "0.0"
	}

	// 小数点位于第 point 位数字之后
	point := exp + 1
	if point > 16 || point < -3 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		es := "+"
		if exp < 0 {
			es = "-"
			exp = -exp
		}
		e := strconv.Itoa(exp)
		if len(e) < 2 {
			e = "0" + e
		}
		return sign + out + "e" + es + e
	}

	switch {
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits)) + ".0"
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}
