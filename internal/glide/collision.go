package glide

// Collides reports whether the player touches any obstacle column.
// A hit requires horizontal overlap with the obstacle and the player's
// circle extending above the gap top or below the gap bottom.
func Collides(p Player, obstacles []Obstacle) bool {
	for _, o := range obstacles {
		if p.X+p.Radius <= o.X || p.X-p.Radius >= o.Right() {
			continue
		}
		if p.Y-p.Radius < o.GapY || p.Y+p.Radius > o.GapY+o.GapSize {
			return true
		}
	}
	return false
}
