package interact_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/interact"
)

var _ = Describe("Controller", func() {
	var (
		ctrl interact.Controller
		g    grid.Grid
	)

	BeforeEach(func() {
		ctrl = interact.New()
		g = grid.Default()
	})

	Describe("PointerDown", func() {
		It("toggles the wall and starts dragging", func() {
			ctrl, g = ctrl.PointerDown(g, 2, 3)
			Expect(ctrl.State).To(Equal(interact.Dragging))
			Expect(g.IsWall(2, 3)).To(BeTrue())
		})

		It("starts a drag without touching the start node", func() {
			start := g.Start()
			before := g
			ctrl, g = ctrl.PointerDown(g, start.Row, start.Col)
			Expect(ctrl.State).To(Equal(interact.Dragging))
			Expect(g.Equal(before)).To(BeTrue())
		})

		It("is ignored while locked", func() {
			ctrl = ctrl.Lock()
			before := g
			ctrl, g = ctrl.PointerDown(g, 2, 3)
			Expect(ctrl.State).To(Equal(interact.Locked))
			Expect(g.Equal(before)).To(BeTrue())
		})
	})

	Describe("PointerEnter", func() {
		It("never mutates before a pointer down", func() {
			before := g
			ctrl, g = ctrl.PointerEnter(g, 4, 4)
			Expect(g.Equal(before)).To(BeTrue())
			Expect(ctrl.State).To(Equal(interact.Idle))
		})

		It("paints along a drag", func() {
			ctrl, g = ctrl.PointerDown(g, 0, 0)
			for col := 1; col < 5; col++ {
				ctrl, g = ctrl.PointerEnter(g, 0, col)
			}
			Expect(g.WallCount()).To(Equal(5))
		})

		It("stops painting after pointer up", func() {
			ctrl, g = ctrl.PointerDown(g, 0, 0)
			ctrl = ctrl.PointerUp()
			ctrl, g = ctrl.PointerEnter(g, 0, 1)
			Expect(ctrl.State).To(Equal(interact.Idle))
			Expect(g.IsWall(0, 1)).To(BeFalse())
		})

		It("is ignored while locked even mid-drag", func() {
			ctrl, g = ctrl.PointerDown(g, 0, 0)
			ctrl = ctrl.Lock()
			before := g
			ctrl, g = ctrl.PointerEnter(g, 0, 1)
			Expect(g.Equal(before)).To(BeTrue())
		})
	})

	Describe("PointerUp", func() {
		It("does not release a lock", func() {
			ctrl = ctrl.Lock().PointerUp()
			Expect(ctrl.IsLocked()).To(BeTrue())
		})
	})

	Describe("Unlock", func() {
		It("returns to idle", func() {
			ctrl = ctrl.Lock().Unlock()
			Expect(ctrl.State).To(Equal(interact.Idle))
			Expect(ctrl.CanEdit()).To(BeTrue())
		})

		It("is a no-op while dragging", func() {
			ctrl, g = ctrl.PointerDown(g, 1, 1)
			Expect(ctrl.Unlock().State).To(Equal(interact.Dragging))
		})
	})
})
