package dungeon

import (
	"rotten-soup/internal/domain"
	"rotten-soup/pkg/utils"
)

const (
	surfaceTreeChance = 8 // % клеток травы, занятых деревьями
	clearingRX        = 6
	clearingRY        = 3
	pondRX            = 4
	pondRY            = 2
)

// WithSurface создает "домашний" уровень: луг в кольце деревьев, пруд
// и поляна в центре, где стоят спуски в подземелье и пещеру.
func (b *LevelBuilder) WithSurface() *LevelBuilder {
	w, h := b.req.Width, b.req.Height
	b.fill(domain.TerrainGrass)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			isBoundary := x == 0 || y == 0 || x == w-1 || y == h-1
			if isBoundary || b.rng.Intn(100) < surfaceTreeChance {
				b.grid[y][x] = domain.TerrainTree
			}
		}
	}

	// Пруд в левой трети карты
	if w > 2*pondRX+4 && h > 2*pondRY+4 {
		px := utils.RandRange(b.rng, pondRX+2, max(pondRX+2, w/3))
		py := utils.RandRange(b.rng, pondRY+2, h-pondRY-3)
		for dy := -pondRY; dy <= pondRY; dy++ {
			for dx := -pondRX; dx <= pondRX; dx++ {
				// Эллипс: (dx/rx)^2 + (dy/ry)^2 <= 1
				if dx*dx*pondRY*pondRY+dy*dy*pondRX*pondRX <= pondRX*pondRX*pondRY*pondRY {
					b.set(domain.Position{X: px + dx, Y: py + dy}, domain.TerrainWater)
				}
			}
		}
	}

	// Поляна вокруг точки старта
	b.start = domain.Position{X: w / 2, Y: h / 2}
	for dy := -clearingRY; dy <= clearingRY; dy++ {
		for dx := -clearingRX; dx <= clearingRX; dx++ {
			p := b.start.Shift(dx, dy)
			if p.X > 0 && p.Y > 0 && p.X < w-1 && p.Y < h-1 {
				b.set(p, domain.TerrainGrass)
			}
		}
	}

	// Лужайки, отрезанные деревьями от поляны, зарастают
	b.keepOnly(b.flood(b.start), domain.TerrainTree)
	return b
}
