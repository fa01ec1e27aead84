package sim_test

import (
	"context"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/sim"
)

type frameLog struct {
	frames []sim.FrameStats
}

func (l *frameLog) OnFrame(st sim.FrameStats) { l.frames = append(l.frames, st) }

var _ = Describe("Scheduler", func() {
	var (
		s   *mesh.Simulation
		r   *render.Renderer
		rec *render.Recorder
	)

	BeforeEach(func() {
		s = mesh.New(mesh.DefaultParams(), rand.New(rand.NewSource(3)))
		r = render.New(render.DefaultParams())
		rec = &render.Recorder{CountOnly: true}
	})

	Describe("Frame", func() {
		It("draws a 1200x600 lattice within the pair bound", func() {
			s.Resize(1200, 600)
			st := sim.New(s, r, rec).Frame(time.Now())

			Expect(st.Particles).To(Equal(200))
			Expect(st.Circles).To(BeNumerically("<=", 200))
			Expect(st.Lines).To(BeNumerically("<=", 200*199))
			Expect(rec.Clears).To(Equal(1))
			Expect(rec.Circles).To(Equal(st.Circles))
			Expect(rec.Lines).To(Equal(st.Lines))
		})

		It("clears before drawing on every tick", func() {
			s.Resize(300, 300)
			full := &render.Recorder{}
			sched := sim.New(s, r, full)
			sched.Frame(time.Now())
			last := sched.Frame(time.Now())

			Expect(full.Clears).To(Equal(2))
			Expect(full.Commands).To(HaveLen(last.Circles + last.Lines))
			Expect(full.Commands[0].Op).To(Equal(render.OpCircle))
		})

		It("steps the simulation once per tick", func() {
			s.Resize(600, 600)
			sched := sim.New(s, r, rec)
			for i := 0; i < 5; i++ {
				sched.Frame(time.Now())
			}
			Expect(s.Steps()).To(Equal(uint64(5)))
		})

		It("notifies observers with the frame stats", func() {
			s.Resize(600, 600)
			log := &frameLog{}
			sched := sim.New(s, r, rec)
			sched.AddObserver(log)

			now := time.Unix(100, 0)
			sched.Frame(now)
			sched.Frame(now.Add(time.Second))

			Expect(log.frames).To(HaveLen(2))
			Expect(log.frames[0].Frame).To(Equal(uint64(1)))
			Expect(log.frames[1].Frame).To(Equal(uint64(2)))
			Expect(log.frames[1].Time).To(Equal(now.Add(time.Second)))
			Expect(log.frames[0].Generation).To(Equal(s.Generation()))
		})

		It("reports displacement once the pointer pushes particles", func() {
			s.Resize(600, 600)
			s.SetPointer(35, 35)
			st := sim.New(s, r, rec).Frame(time.Now())
			Expect(st.MeanDisplacement).To(BeNumerically(">", 0))
		})

		It("draws nothing for a zero-area viewport", func() {
			s.Resize(0, 0)
			st := sim.New(s, r, rec).Frame(time.Now())
			Expect(st.Particles).To(BeZero())
			Expect(rec.Circles + rec.Lines).To(BeZero())
		})
	})

	Describe("without a surface", func() {
		It("is inert", func() {
			s.Resize(1200, 600)
			sched := sim.New(s, r, nil)

			Expect(sched.Inert()).To(BeTrue())
			Expect(sched.Frame(time.Now())).To(Equal(sim.FrameStats{}))
			Expect(sched.Start(context.Background(), make(chan time.Time))).To(Succeed())
			Expect(sched.Running()).To(BeFalse())
			Expect(s.Steps()).To(BeZero())
			sched.Stop()
		})
	})

	Describe("lifecycle", func() {
		var (
			ticks chan time.Time
			sched *sim.Scheduler
			log   *frameLog
		)

		BeforeEach(func() {
			s.Resize(600, 600)
			ticks = make(chan time.Time)
			sched = sim.New(s, r, rec)
			log = &frameLog{}
			sched.AddObserver(log)
		})

		It("ticks until stopped", func() {
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			Expect(sched.Running()).To(BeTrue())

			for i := 0; i < 3; i++ {
				ticks <- time.Now()
			}
			sched.Stop()

			Expect(sched.Running()).To(BeFalse())
			Expect(log.frames).To(HaveLen(3))
			Consistently(func() uint64 { return s.Steps() }, 50*time.Millisecond).Should(Equal(uint64(3)))
		})

		It("rejects a second start while running", func() {
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			Expect(sched.Start(context.Background(), ticks)).To(MatchError(sim.ErrAlreadyRunning))
			sched.Stop()
		})

		It("can be stopped more than once", func() {
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			sched.Stop()
			sched.Stop()
			Expect(sched.Running()).To(BeFalse())
		})

		It("restarts after a stop", func() {
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			ticks <- time.Now()
			sched.Stop()
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			ticks <- time.Now()
			sched.Stop()
			Expect(log.frames).To(HaveLen(2))
		})

		It("exits when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- sched.Run(ctx, ticks) }()

			ticks <- time.Now()
			cancel()

			Eventually(done).Should(Receive(MatchError(context.Canceled)))
			Expect(sched.Running()).To(BeFalse())
		})

		It("exits when the tick source closes", func() {
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			close(ticks)
			sched.Wait()
			Expect(sched.Running()).To(BeFalse())
		})

		It("sees a resize made between ticks", func() {
			Expect(sched.Start(context.Background(), ticks)).To(Succeed())
			ticks <- time.Now()
			s.Resize(1200, 600)
			ticks <- time.Now()
			sched.Stop()

			Expect(log.frames).To(HaveLen(2))
			Expect(log.frames[0].Particles).To(Equal(100))
			Expect(log.frames[1].Particles).To(Equal(200))
		})
	})
})

var _ = Describe("Interval", func() {
	It("converts frame rates to periods", func() {
		Expect(sim.Interval(60)).To(BeNumerically("~", time.Second/60, time.Microsecond))
		Expect(sim.Interval(30)).To(BeNumerically("~", time.Second/30, time.Microsecond))
	})

	It("falls back to the default rate", func() {
		Expect(sim.Interval(0)).To(Equal(sim.Interval(sim.DefaultFPS)))
		Expect(sim.Interval(-5)).To(Equal(sim.Interval(sim.DefaultFPS)))
	})

	It("produces ticks until stopped", func() {
		ticks, stop := sim.NewTicker(200)
		defer stop()
		Eventually(ticks).Should(Receive())
	})
})
