package tensor

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// ElemType 张量元素类型标签
type ElemType int

const (
	Int8 ElemType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	Float32
)

var (
	ErrShapeMismatch = errors.New("张量形状与数据长度不匹配")
	ErrTypeMismatch  = errors.New("张量元素类型不匹配")
	ErrUnknownType   = errors.New("未知的张量元素类型")
)

var typeNames = [...]string{
	Int8:    "int8",
	UInt8:   "uint8",
	Int16:   "int16",
	UInt16:  "uint16",
	Int32:   "int32",
	UInt32:  "uint32",
	Int64:   "int64",
	Float32: "float32",
}

var typeSizes = [...]int{
	Int8:    1,
	UInt8:   1,
	Int16:   2,
	UInt16:  2,
	Int32:   4,
	UInt32:  4,
	Int64:   8,
	Float32: 4,
}

func (t ElemType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ElemType(%d)", int(t))
	}
	return typeNames[t]
}

// Valid 是否为支持的元素类型
func (t ElemType) Valid() bool {
	return t >= Int8 && t <= Float32
}

// Size 单个元素的字节数
func (t ElemType) Size() int {
	if !t.Valid() {
		return 0
	}
	return typeSizes[t]
}

// ParseElemType 解析推理框架给出的类型名称，例如 "float32"、"uint8"
func ParseElemType(name string) (ElemType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "tensor(")
	name = strings.TrimSuffix(name, ")")
	if name == "float" {
		name = "float32"
	}
	for i, n := range typeNames {
		if n == name {
			return ElemType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

// Element 支持的张量元素
type Element interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | float32
}

// TypeOf 返回 T 对应的类型标签
func TypeOf[T Element]() ElemType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return UInt8
	case int16:
		return Int16
	case uint16:
		return UInt16
	case int32:
		return Int32
	case uint32:
		return UInt32
	case int64:
		return Int64
	default:
		return Float32
	}
}

// Tensor 推理输出张量的只读视图
//
// 数据由推理框架持有，Tensor 不复制也不释放。
type Tensor struct {
	Name  string
	Type  ElemType
	Shape []int64

	data any // []T, T 与 Type 对应
}

// New 用已有的切片创建张量视图
//
// # Params:
//
//	shape: 张量形状
//	data: 元素数据，长度必须等于 shape 各维乘积
func New[T Element](shape []int64, data []T) (*Tensor, error) {
	n, err := numElem(shape)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != n {
		return nil, fmt.Errorf("%w: shape %v 需要 %d 个元素，实际 %d", ErrShapeMismatch, shape, n, len(data))
	}
	return &Tensor{
		Type:  TypeOf[T](),
		Shape: append([]int64(nil), shape...),
		data:  data,
	}, nil
}

// MustNew 与 New 相同，出错时 panic
func MustNew[T Element](shape []int64, data []T) *Tensor {
	t, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return t
}

// FromBytes 将推理框架的原始内存解释为张量
//
// raw 按本机字节序存放，必须至少容纳 shape 所需的字节数。
func FromBytes(typ ElemType, shape []int64, raw []byte) (*Tensor, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(typ))
	}
	n, err := numElem(shape)
	if err != nil {
		return nil, err
	}
	need := n * int64(typ.Size())
	if int64(len(raw)) < need {
		return nil, fmt.Errorf("%w: 需要 %d 字节，实际 %d", ErrShapeMismatch, need, len(raw))
	}

	t := &Tensor{
		Type:  typ,
		Shape: append([]int64(nil), shape...),
	}
	if n == 0 {
		t.data = emptyOf(typ)
		return t, nil
	}
	ptr := unsafe.Pointer(&raw[0])
	switch typ {
	case Int8:
		t.data = unsafe.Slice((*int8)(ptr), n)
	case UInt8:
		t.data = raw[:n]
	case Int16:
		t.data = unsafe.Slice((*int16)(ptr), n)
	case UInt16:
		t.data = unsafe.Slice((*uint16)(ptr), n)
	case Int32:
		t.data = unsafe.Slice((*int32)(ptr), n)
	case UInt32:
		t.data = unsafe.Slice((*uint32)(ptr), n)
	case Int64:
		t.data = unsafe.Slice((*int64)(ptr), n)
	case Float32:
		t.data = unsafe.Slice((*float32)(ptr), n)
	}
	return t, nil
}

func emptyOf(typ ElemType) any {
	switch typ {
	case Int8:
		return []int8{}
	case UInt8:
		return []uint8{}
	case Int16:
		return []int16{}
	case UInt16:
		return []uint16{}
	case Int32:
		return []int32{}
	case UInt32:
		return []uint32{}
	case Int64:
		return []int64{}
	default:
		return []float32{}
	}
}

func numElem(shape []int64) (int64, error) {
	n := int64(1)
	for _, s := range shape {
		if s < 0 {
			return 0, fmt.Errorf("%w: 非法维度 %v", ErrShapeMismatch, shape)
		}
		n *= s
	}
	return n, nil
}

// Data 取出类型化的数据切片
func Data[T Element](t *Tensor) ([]T, error) {
	d, ok := t.data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: 张量为 %v, 请求 %v", ErrTypeMismatch, t.Type, TypeOf[T]())
	}
	return d, nil
}

// NumElem 元素个数
func (t *Tensor) NumElem() int64 {
	n, _ := numElem(t.Shape)
	return n
}

// ElemSize 单个元素字节数
func (t *Tensor) ElemSize() int {
	return t.Type.Size()
}

// Size 数据总字节数
func (t *Tensor) Size() int64 {
	return t.NumElem() * int64(t.ElemSize())
}

// Dim 维度数
func (t *Tensor) Dim() int {
	return len(t.Shape)
}

// LastDim 每个条目包含的值个数
//
// 忽略所有为 1 的维度 (类似 numpy squeeze)，只剩一维时返回 1:
//
//	[1,1,100,4] -> 4
//	[100]       -> 1
//	[1,100,1]   -> 1
func (t *Tensor) LastDim() int64 {
	if len(t.Shape) == 0 {
		return 1
	}
	nDims := 0
	for _, s := range t.Shape {
		if s != 1 {
			nDims++
		}
	}
	if nDims <= 1 {
		return 1
	}
	return t.Shape[len(t.Shape)-1]
}

// Float 以 float64 读取第 i 个元素
func (t *Tensor) Float(i int) float64 {
	return floatReaders[t.Type](t.data, i)
}

// Int 以 int64 读取第 i 个元素，浮点数向零截断
func (t *Tensor) Int(i int) int64 {
	return intReaders[t.Type](t.data, i)
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s %v %v)", t.Name, t.Type, t.Shape)
}
