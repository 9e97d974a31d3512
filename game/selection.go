package game

import (
	"fmt"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/memmaker/termcraft/engine/voxel"
)

// Selection is the block under the crosshair and the face looked at.
type Selection struct {
	Position voxel.Int3
	Normal   util.Vector3
	// Adjacent is the cell a new block would fill.
	Adjacent voxel.Int3
	Valid    bool
}

func (s Selection) String() string {
	if !s.Valid {
		return "none"
	}
	return fmt.Sprintf("%v %s", s.Position, util.SideFromNormal(s.Normal))
}

// Contains reports whether the hit landed on the selected block.
func (s Selection) Contains(hit util.Hit) bool {
	return s.Valid && voxel.ToGridInt3(hit.Point.Sub(hit.Normal.Mul(0.5))) == s.Position
}

// IsSelectedFace reports whether the hit is on the selected face.
func (s Selection) IsSelectedFace(hit util.Hit) bool {
	return s.Contains(hit) && util.ApproxEqual(hit.Normal, s.Normal)
}

// UpdateSelection casts from the eye along the view, no further than the
// player's reach.
func (s *Session) UpdateSelection() {
	ray := util.Ray{Origin: s.Player.Eye(), Direction: s.Player.View.Direction()}
	hit, ok := util.CastRay(ray, s.Config.Player.Reach, s.Grid)
	s.Metrics.ObserveRays(1, boolToInt(ok))
	if !ok {
		s.Selection = Selection{}
		return
	}
	s.Selection = Selection{
		Position: voxel.ToGridInt3(hit.Point.Sub(hit.Normal.Mul(0.5))),
		Normal:   hit.Normal,
		Adjacent: hit.Adjacent(),
		Valid:    true,
	}
}

// CreateBlock places a block against the selected face. Targets outside the
// world or inside the player's body are refused.
func (s *Session) CreateBlock() bool {
	if !s.Selection.Valid {
		return false
	}
	target := s.Selection.Adjacent
	if !s.Grid.Contains(target) {
		util.LogVoxelDebug(fmt.Sprintf("[Edit] %v is outside the world", target))
		return false
	}
	if s.Player.Occupies(target) {
		util.LogVoxelDebug(fmt.Sprintf("[Edit] %v would trap the player", target))
		return false
	}
	s.Grid.Create(target.X, target.Y, target.Z)
	s.Metrics.ObserveEdit("create")
	util.LogVoxelDebug(fmt.Sprintf("[Edit] Created %v", target))
	s.UpdateSelection()
	return true
}

func (s *Session) DeleteBlock() bool {
	if !s.Selection.Valid {
		return false
	}
	target := s.Selection.Position
	if !s.Grid.Contains(target) {
		return false
	}
	s.Grid.Delete(target.X, target.Y, target.Z)
	s.Metrics.ObserveEdit("delete")
	util.LogVoxelDebug(fmt.Sprintf("[Edit] Deleted %v", target))
	s.UpdateSelection()
	return true
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
