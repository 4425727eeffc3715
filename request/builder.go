package request

type builderState int

const (
	// 尚未写入根节点
	stateReady builderState = iota
	// 已写入Key，等待Value
	stateExpectValue
	// 字典内，等待Key或EndDict
	stateExpectKeyOrEnd
	// 数组内，等待元素或EndArray
	stateExpectArrayItemOrEnd
	// 根节点已完成
	stateDone
)

func (s builderState) String() string {
	switch s {
	case stateReady:
		return "Ready"
	case stateExpectValue:
		return "ExpectValue"
	case stateExpectKeyOrEnd:
		return "ExpectKeyOrEnd"
	case stateExpectArrayItemOrEnd:
		return "ExpectArrayItemOrEnd"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

type frame struct {
	dict  map[string]any
	items []any
	key   string
}

// Builder 按状态机构造JSON值，非法调用顺序立即panic
//
//	b := NewBuilder()
//	b.StartDict().Key("request_id").Value(1).EndDict()
//	v := b.Build()
type Builder struct {
	root  any
	stack []*frame
	state builderState
}

func NewBuilder() *Builder {
	return &Builder{state: stateReady}
}

func (b *Builder) expect(op string, states ...builderState) {
	for _, s := range states {
		if b.state == s {
			return
		}
	}
	log.Panicf("json builder: %s called in state %s", op, b.state)
}

func (b *Builder) expectValue(op string) {
	b.expect(op, stateReady, stateExpectValue, stateExpectArrayItemOrEnd)
}

// emit 将完成的值放入父容器并切换状态
func (b *Builder) emit(v any) {
	if len(b.stack) == 0 {
		b.root = v
		b.state = stateDone
		return
	}
	top := b.stack[len(b.stack)-1]
	if top.dict != nil {
		top.dict[top.key] = v
		b.state = stateExpectKeyOrEnd
	} else {
		top.items = append(top.items, v)
		b.state = stateExpectArrayItemOrEnd
	}
}

func (b *Builder) Key(key string) *Builder {
	b.expect("Key", stateExpectKeyOrEnd)
	b.stack[len(b.stack)-1].key = key
	b.state = stateExpectValue
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.expectValue("Value")
	b.emit(v)
	return b
}

func (b *Builder) StartDict() *Builder {
	b.expectValue("StartDict")
	b.stack = append(b.stack, &frame{dict: make(map[string]any)})
	b.state = stateExpectKeyOrEnd
	return b
}

func (b *Builder) EndDict() *Builder {
	b.expect("EndDict", stateExpectKeyOrEnd)
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.emit(top.dict)
	return b
}

func (b *Builder) StartArray() *Builder {
	b.expectValue("StartArray")
	b.stack = append(b.stack, &frame{items: make([]any, 0)})
	b.state = stateExpectArrayItemOrEnd
	return b
}

func (b *Builder) EndArray() *Builder {
	b.expect("EndArray", stateExpectArrayItemOrEnd)
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.emit(top.items)
	return b
}

// Build 返回构造完成的根节点
func (b *Builder) Build() any {
	b.expect("Build", stateDone)
	return b.root
}
