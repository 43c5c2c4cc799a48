package tensor

// 类型标签 -> 读取函数，每种元素类型实例化一次

var floatReaders = [...]func(data any, i int) float64{
	Int8:    readFloat[int8],
	UInt8:   readFloat[uint8],
	Int16:   readFloat[int16],
	UInt16:  readFloat[uint16],
	Int32:   readFloat[int32],
	UInt32:  readFloat[uint32],
	Int64:   readFloat[int64],
	Float32: readFloat[float32],
}

var intReaders = [...]func(data any, i int) int64{
	Int8:    readInt[int8],
	UInt8:   readInt[uint8],
	Int16:   readInt[int16],
	UInt16:  readInt[uint16],
	Int32:   readInt[int32],
	UInt32:  readInt[uint32],
	Int64:   readInt[int64],
	Float32: readInt[float32],
}

func readFloat[T Element](data any, i int) float64 {
	return float64(data.([]T)[i])
}

func readInt[T Element](data any, i int) int64 {
	return int64(data.([]T)[i])
}

// Table 以类型标签为下标的函数表
//
// 调用方为每种元素类型填入同一个泛型函数的实例，运行时按 Tensor.Type 取用。
type Table[F any] [Float32 + 1]F

// Lookup 按类型标签取出函数
func (tb *Table[F]) Lookup(typ ElemType) (F, bool) {
	var zero F
	if !typ.Valid() {
		return zero, false
	}
	return tb[typ], true
}
