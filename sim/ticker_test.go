package sim

import (
	gomock "go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ticking Component", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		ticker   *MockTicker
		tc       *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		ticker = NewMockTicker(mockCtrl)
		tc = NewTickingComponent("TC", engine, ticker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should tick at the current cycle when woken", func() {
		engine.EXPECT().CurrentCycle().Return(Cycle(10))
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(Cycle(10)))
				Expect(e.IsSecondary()).To(BeFalse())
			})

		tc.TickNow()
	})

	It("should keep ticking while the ticker makes progress", func() {
		engine.EXPECT().CurrentCycle().Return(Cycle(10))
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(Cycle(11)))
			})
		ticker.EXPECT().Tick().Return(true)

		tc.Handle(MakeTickEvent(tc, 10))
	})

	It("should not schedule a second tick for the same cycle", func() {
		engine.EXPECT().CurrentCycle().Return(Cycle(10)).Times(2)
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(Cycle(11)))
			})
		ticker.EXPECT().Tick().Return(true).Times(2)

		tc.Handle(MakeTickEvent(tc, 10))
		tc.Handle(MakeTickEvent(tc, 10))
	})

	It("should stop ticking if no progress is made", func() {
		ticker.EXPECT().Tick().Return(false)

		tc.Handle(MakeTickEvent(tc, 10))
	})
})

var _ = Describe("Secondary Ticking Component", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		ticker   *MockTicker
		tc       *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		ticker = NewMockTicker(mockCtrl)
		tc = NewSecondaryTickingComponent("TC", engine, ticker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should schedule secondary tick events", func() {
		engine.EXPECT().CurrentCycle().Return(Cycle(4))
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(Cycle(4)))
				Expect(e.IsSecondary()).To(BeTrue())
			})

		tc.TickNow()
	})
})
