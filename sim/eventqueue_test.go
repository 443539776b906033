package sim

import (
	gomock "go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventQueueImpl", func() {
	var (
		mockCtrl *gomock.Controller
		queue    *EventQueueImpl
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		queue = NewEventQueue()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	newEventAt := func(time Cycle) *MockEvent {
		evt := NewMockEvent(mockCtrl)
		evt.EXPECT().Time().Return(time).AnyTimes()
		return evt
	}

	It("should pop events in time order", func() {
		evt1 := newEventAt(10)
		evt2 := newEventAt(4)
		evt3 := newEventAt(7)

		queue.Push(evt1)
		queue.Push(evt2)
		queue.Push(evt3)

		Expect(queue.Len()).To(Equal(3))
		Expect(queue.Peek().Time()).To(Equal(Cycle(4)))
		Expect(queue.Pop().Time()).To(Equal(Cycle(4)))
		Expect(queue.Pop().Time()).To(Equal(Cycle(7)))
		Expect(queue.Pop().Time()).To(Equal(Cycle(10)))
		Expect(queue.Len()).To(Equal(0))
	})
})
