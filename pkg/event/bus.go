// Package event 提供单线程、有序的进程内事件总线
//
// 系统在 tick 中 Publish 事件，Simulation 在固定的安全点调用 Process，
// 按 FIFO 顺序把事件分发给订阅者，直到队列清空（不动点）。
// 处理器可以返回后续事件，它们会被追加到队列尾部，在同一次 Process 内处理完毕。
package event

import "log"

// DefaultMaxEventsPerProcess 单次 Process 处理事件数上限，防止处理器互相触发形成死循环
const DefaultMaxEventsPerProcess = 100000

// Handler 事件处理器，返回需要继续分发的后续事件（可为 nil）
type Handler func(ev Event) []Event

// Bus 有序事件总线
type Bus struct {
	handlers   map[Type][]Handler
	queue      []Event
	processing bool
	maxEvents  int
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		handlers:  make(map[Type][]Handler),
		queue:     make([]Event, 0, 64),
		maxEvents: DefaultMaxEventsPerProcess,
	}
}

// Subscribe 订阅某类事件，处理器按订阅顺序调用
func (b *Bus) Subscribe(t Type, h Handler) {
	if h == nil {
		return
	}
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish 将事件加入队列尾部（不立即分发）
func (b *Bus) Publish(ev Event) {
	if ev == nil {
		return
	}
	b.queue = append(b.queue, ev)
}

// Pending 返回尚未分发的事件数量
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Process 分发队列中所有事件直到队列为空，返回本次分发的事件数
//
// 处理器内再次调用 Process 是空操作：新事件由外层循环继续处理。
func (b *Bus) Process() int {
	if b.processing {
		return 0
	}
	b.processing = true
	defer func() { b.processing = false }()

	processed := 0
	for len(b.queue) > 0 {
		ev := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]

		processed++
		if processed > b.maxEvents {
			log.Printf("[EventBus] WARNING: event limit %d exceeded, dropping %d pending events", b.maxEvents, len(b.queue)+1)
			b.queue = b.queue[:0]
			break
		}

		for _, h := range b.handlers[ev.Type()] {
			if follow := h(ev); len(follow) > 0 {
				for _, f := range follow {
					if f != nil {
						b.queue = append(b.queue, f)
					}
				}
			}
		}
	}

	// 队列底层数组复用
	if cap(b.queue) > 4096 {
		b.queue = make([]Event, 0, 64)
	}
	return processed
}

// Clear 丢弃所有未处理事件
func (b *Bus) Clear() {
	b.queue = b.queue[:0]
}
