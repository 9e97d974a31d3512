package util

// SlideVelocity removes the part of v that points into the surface with
// normal n. What is left runs along the surface.
func SlideVelocity(v, n Vector3) Vector3 {
	BdotB := n.Dot(n)
	if BdotB == 0 {
		return v
	}
	AdotB := v.Dot(n)
	return v.Sub(n.Mul(AdotB / BdotB))
}

type SweepResult struct {
	Position Vector3
	Hit      Hit
	Collided bool
}

func (s SweepResult) Displacement(from Vector3) Vector3 {
	return s.Position.Sub(from)
}

// Sweep moves a point by delta through the grid. A blocked move stops margin
// in front of the struck face and the rest of the move slides along it. The
// slide is checked once more and stops at the next face it runs into.
func Sweep(grid Occupancy, from, delta Vector3, margin float64) SweepResult {
	target := from.Add(delta)
	hit, collided := castMove(grid, from, delta, margin)
	if !collided {
		return SweepResult{Position: target}
	}
	base := hit.Point.Add(hit.Normal.Mul(margin))
	result := SweepResult{Position: base, Hit: hit, Collided: true}

	slide := SlideVelocity(target.Sub(hit.Point), hit.Normal)
	if slide.Len() < DetectEpsilon {
		return result
	}
	second, blocked := castMove(grid, base, slide, margin)
	if !blocked {
		result.Position = base.Add(slide)
		return result
	}
	result.Position = second.Point.Add(second.Normal.Mul(margin))
	return result
}

func castMove(grid Occupancy, from, delta Vector3, margin float64) (Hit, bool) {
	length := delta.Len()
	if length == 0 {
		return Hit{}, false
	}
	return CastRay(Ray{Origin: from, Direction: delta.Mul(1 / length)}, length+margin, grid)
}
