package systems

import "rotten-soup/internal/domain"

// Viewport - окно камеры в координатах уровня.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Contains - попадает ли клетка в окно
func (v Viewport) Contains(p domain.Position) bool {
	return p.X >= v.X && p.Y >= v.Y && p.X < v.X+v.Width && p.Y < v.Y+v.Height
}

// CameraWindow центрирует окно размера min(уровень, экран) на игроке
// и прижимает его к краям уровня. Результат всегда лежит внутри уровня.
func CameraWindow(levelW, levelH, displayW, displayH int, center domain.Position) Viewport {
	w := min(levelW, displayW)
	h := min(levelH, displayH)

	return Viewport{
		X:      clamp(center.X-w/2, 0, levelW-w),
		Y:      clamp(center.Y-h/2, 0, levelH-h),
		Width:  w,
		Height: h,
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
