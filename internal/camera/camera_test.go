package camera_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/dynamo"
)

const tol = 1e-9

func expectOrthonormal(p camera.Pose) {
	GinkgoHelper()
	Expect(p.Front.Length()).To(BeNumerically("~", 1, tol))
	Expect(p.Right.Length()).To(BeNumerically("~", 1, tol))
	Expect(p.Up.Length()).To(BeNumerically("~", 1, tol))
	Expect(p.Front.Dot(p.Right)).To(BeNumerically("~", 0, tol))
	Expect(p.Front.Dot(p.Up)).To(BeNumerically("~", 0, tol))
	Expect(p.Right.Dot(p.Up)).To(BeNumerically("~", 0, tol))
	// right x up points backwards for a right-handed view basis
	Expect(p.Right.Cross(p.Up).ApproxEqual(p.Front.Neg(), 1e-6)).To(BeTrue())
}

var _ = Describe("Camera", func() {
	var cam *camera.Camera

	BeforeEach(func() {
		cam = camera.New(camera.DefaultSettings())
	})

	It("starts grabbed, in free mode, with a valid basis", func() {
		Expect(cam.Grabbed()).To(BeTrue())
		Expect(cam.Mode()).To(Equal(camera.ModeFree))
		expectOrthonormal(cam.Pose())
		Expect(cam.Pose().Front.ApproxEqual(dynamo.Spherical(1.18, 0), tol)).To(BeTrue())
	})

	Describe("free flight", func() {
		It("moves along front by a fixed step per call regardless of frame time", func() {
			front := cam.Pose().Front
			cam.UpdateFree(camera.Input{Keys: camera.KeysOf(camera.KeyW), FrameDelta: 10})
			Expect(cam.Pose().Position.ApproxEqual(front.Scale(0.01), tol)).To(BeTrue())
		})

		It("cancels opposite keys", func() {
			cam.UpdateFree(camera.Input{Keys: camera.KeysOf(camera.KeyW, camera.KeyS, camera.KeyA, camera.KeyD, camera.KeyQ, camera.KeyE)})
			Expect(cam.Pose().Position.Length()).To(BeNumerically("<", tol))
		})

		It("strafes along right and rises along up", func() {
			p := cam.Pose()
			cam.UpdateFree(camera.Input{Keys: camera.KeysOf(camera.KeyD, camera.KeyQ)})
			want := p.Right.Scale(0.01).Add(p.Up.Scale(0.01))
			Expect(cam.Pose().Position.ApproxEqual(want, tol)).To(BeTrue())
		})

		It("turns with the mouse delta scaled by frame time when grabbed", func() {
			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 100, Y: 100}, FrameDelta: 0.5})
			Expect(cam.Yaw()).To(BeNumerically("~", 1.18, tol))

			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 110, Y: 96}, FrameDelta: 0.5})
			Expect(cam.Yaw()).To(BeNumerically("~", 1.18+10*0.5*0.1, tol))
			Expect(cam.Pitch()).To(BeNumerically("~", -4*0.5*-0.1, tol))
			expectOrthonormal(cam.Pose())
		})

		It("ignores the mouse when not grabbed but keeps sampling it", func() {
			Expect(cam.ToggleGrab()).To(BeFalse())
			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 0, Y: 0}, FrameDelta: 1})
			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 500, Y: 500}, FrameDelta: 1})
			Expect(cam.Yaw()).To(BeNumerically("~", 1.18, tol))
			Expect(cam.Pitch()).To(BeNumerically("~", 0, tol))

			Expect(cam.ToggleGrab()).To(BeTrue())
			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 500, Y: 500}, FrameDelta: 1})
			Expect(cam.Yaw()).To(BeNumerically("~", 1.18, tol))
		})

		It("never lets pitch leave [-1.5, 1.5]", func() {
			y := 0.0
			for i := 0; i < 200; i++ {
				y -= 1000
				cam.UpdateFree(camera.Input{Mouse: camera.Point{Y: y}, FrameDelta: 0.1})
				Expect(cam.Pitch()).To(BeNumerically("<=", 1.5))
				Expect(cam.Pitch()).To(BeNumerically(">=", -1.5))
			}
			Expect(cam.Pitch()).To(BeNumerically("==", 1.5))
			expectOrthonormal(cam.Pose())

			for i := 0; i < 200; i++ {
				y += 1000
				cam.UpdateFree(camera.Input{Mouse: camera.Point{Y: y}, FrameDelta: 0.1})
			}
			Expect(cam.Pitch()).To(BeNumerically("==", -1.5))
			expectOrthonormal(cam.Pose())
		})
	})

	Describe("orbiting", func() {
		target := dynamo.V(3, -2, 7)

		It("faces the target from the current radius", func() {
			cam.UpdateOrbit(target, camera.Input{})
			p := cam.Pose()
			Expect(cam.Mode()).To(Equal(camera.ModeOrbit))
			Expect(p.Position.Sub(target).Length()).To(BeNumerically("~", 5, tol))
			Expect(p.Front.ApproxEqual(target.Sub(p.Position).Normalize(), tol)).To(BeTrue())
			expectOrthonormal(p)
		})

		It("turns by look speed times frame time", func() {
			cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyD, camera.KeyQ), FrameDelta: 2})
			Expect(cam.Yaw()).To(BeNumerically("~", 1.18+0.2, tol))
			Expect(cam.Pitch()).To(BeNumerically("~", 0.2, tol))

			cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyA, camera.KeyE), FrameDelta: 1})
			Expect(cam.Yaw()).To(BeNumerically("~", 1.18+0.1, tol))
			Expect(cam.Pitch()).To(BeNumerically("~", 0.1, tol))
		})

		It("zooms with W and S", func() {
			cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyW)})
			Expect(cam.Radius()).To(BeNumerically("~", 4.98, tol))
			cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyS)})
			cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyS)})
			Expect(cam.Radius()).To(BeNumerically("~", 5.02, tol))
		})

		It("keeps the radius above zero", func() {
			for i := 0; i < 1000; i++ {
				cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyW)})
			}
			Expect(cam.Radius()).To(BeNumerically(">", 0))
			expectOrthonormal(cam.Pose())
		})

		It("keeps pitch clamped at the poles", func() {
			for i := 0; i < 100; i++ {
				cam.UpdateOrbit(target, camera.Input{Keys: camera.KeysOf(camera.KeyQ), FrameDelta: 1})
			}
			Expect(cam.Pitch()).To(BeNumerically("==", 1.5))
			expectOrthonormal(cam.Pose())
		})

		It("follows a moving target", func() {
			cam.UpdateOrbit(target, camera.Input{})
			offset := cam.Pose().Position.Sub(target)
			moved := target.Add(dynamo.V(10, 0, 0))
			cam.UpdateOrbit(moved, camera.Input{})
			Expect(cam.Pose().Position.Sub(moved).ApproxEqual(offset, tol)).To(BeTrue())
		})

		It("does not jump when switching back to free flight", func() {
			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 10, Y: 10}, FrameDelta: 1})
			cam.UpdateOrbit(target, camera.Input{Mouse: camera.Point{X: 900, Y: 900}, FrameDelta: 1})
			yaw, pitch := cam.Yaw(), cam.Pitch()
			cam.UpdateFree(camera.Input{Mouse: camera.Point{X: 900, Y: 900}, FrameDelta: 1})
			Expect(cam.Yaw()).To(BeNumerically("~", yaw, tol))
			Expect(cam.Pitch()).To(BeNumerically("~", pitch, tol))
		})
	})

	It("stays orthonormal over a mixed sequence of updates", func() {
		inputs := []camera.Input{
			{Keys: camera.KeysOf(camera.KeyW, camera.KeyD), Mouse: camera.Point{X: 3, Y: -8}, FrameDelta: 0.016},
			{Keys: camera.KeysOf(camera.KeyQ), Mouse: camera.Point{X: 40, Y: 70}, FrameDelta: 0.5},
			{Keys: camera.KeysOf(camera.KeyA, camera.KeyE, camera.KeyS), Mouse: camera.Point{X: -300, Y: 2}, FrameDelta: 0.3},
		}
		for i := 0; i < 300; i++ {
			in := inputs[i%len(inputs)]
			if i%7 < 3 {
				cam.UpdateOrbit(dynamo.V(float64(i), 1, -2), in)
			} else {
				cam.UpdateFree(in)
			}
			expectOrthonormal(cam.Pose())
		}
	})
})

var _ = Describe("Pose helpers", func() {
	var pose camera.Pose

	BeforeEach(func() {
		cam := camera.New(camera.Settings{Yaw: -math.Pi / 2})
		pose = cam.Pose()
	})

	It("looks down -Z with yaw -pi/2", func() {
		Expect(pose.Front.ApproxEqual(dynamo.V(0, 0, -1), tol)).To(BeTrue())
		Expect(pose.Right.ApproxEqual(dynamo.V(1, 0, 0), tol)).To(BeTrue())
		Expect(pose.Up.ApproxEqual(dynamo.V(0, 1, 0), tol)).To(BeTrue())
		Expect(pose.Target().ApproxEqual(dynamo.V(0, 0, -1), tol)).To(BeTrue())
	})

	It("expresses world axes in screen space", func() {
		axes := camera.GizmoAxes(pose)
		Expect(axes[0].Label).To(Equal("X"))
		Expect(axes[0].Dir.X).To(BeNumerically("~", 1, tol))
		Expect(axes[1].Dir.Y).To(BeNumerically("~", 1, tol))
		Expect(axes[2].Dir.X).To(BeNumerically("~", 0, tol))
		Expect(axes[2].Dir.Y).To(BeNumerically("~", 0, tol))
	})

	It("reads out the position in simulation units", func() {
		pose.Position = dynamo.V(1, 2, 3)
		Expect(pose.Readout(0.001).ApproxEqual(dynamo.V(1000, 2000, 3000), 1e-9)).To(BeTrue())
	})

	It("projects points in front of the camera", func() {
		pr := camera.Projection{FovY: math.Pi / 2, Near: 0.01, Width: 200, Height: 100}

		x, y, depth, ok := pr.Project(pose, dynamo.V(0, 0, -10))
		Expect(ok).To(BeTrue())
		Expect(depth).To(BeNumerically("~", 10, tol))
		Expect(x).To(BeNumerically("~", 100, tol))
		Expect(y).To(BeNumerically("~", 50, tol))

		x, y, _, ok = pr.Project(pose, dynamo.V(10, 10, -10))
		Expect(ok).To(BeTrue())
		Expect(x).To(BeNumerically("~", 150, tol))
		Expect(y).To(BeNumerically("~", 0, tol))

		_, _, _, ok = pr.Project(pose, dynamo.V(0, 0, 5))
		Expect(ok).To(BeFalse())
	})
})
