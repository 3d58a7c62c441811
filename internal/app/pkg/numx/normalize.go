package numx

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// 进程间交换格式无法原生表达高精度整数和定点小数两类数值，
// 直接转 float64 会丢失金额精度。本包在序列化边界上把这两类值
// 改写为规范的十进制字符串，数值的重新解释推迟到接收方完成。

// Normalize 递归遍历值树，将高精度数值改写为文本表示
// - decimal.Decimal / *decimal.Decimal → 规范十进制字符串
// - big.Int / *big.Int → 整数字符串
// - map / slice 递归处理
// - 其他值原样保留
func Normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.String()
	case *decimal.Decimal:
		if t == nil {
			return nil
		}
		return t.String()
	case big.Int:
		return t.String()
	case *big.Int:
		if t == nil {
			return nil
		}
		return t.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// Denormalize 将规范十进制字符串还原为 decimal.Decimal
// 与 Normalize 构成无损往返：值和符号完全一致
func Denormalize(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// DenormalizeInt 将整数字符串还原为 big.Int
func DenormalizeInt(s string) (*big.Int, bool) {
	n := new(big.Int)
	return n.SetString(s, 10)
}
