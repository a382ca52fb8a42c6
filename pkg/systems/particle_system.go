package systems

import (
	"image/color"
	"math"

	"github.com/decker502/monmon/pkg/components"
	"github.com/decker502/monmon/pkg/config"
	"github.com/decker502/monmon/pkg/ecs"
	"github.com/decker502/monmon/pkg/utils"
)

var fallbackParticleColors = []color.RGBA{{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

// ParticleSystem spawns, moves and expires battle effect particles.
//
// Each particle is an entity with a PositionComponent and a ParticleComponent.
// Expired particles are removed before Update returns, so Count and Active
// reflect the live set immediately after an Update.
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	rng           utils.RandomSource

	// gravity 竖直方向加速度（像素/秒²，Y 轴向下为正）
	gravity float64
}

// NewParticleSystem creates a ParticleSystem.
func NewParticleSystem(em *ecs.EntityManager, rng utils.RandomSource, gravity float64) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
		rng:           rng,
		gravity:       gravity,
	}
}

// Emit spawns exactly count particles at (x, y) using the given profile.
//
// Per particle: angle = Angle ± Spread/2, speed = Speed × [0.5, 1),
// a random color from Colors, life = Life × [0.7, 1), size = Size × [0.5, 1).
// A profile without colors emits white particles.
func (ps *ParticleSystem) Emit(x, y float64, count int, profile config.EffectProfile) {
	if count <= 0 {
		return
	}
	colors := profile.Colors
	if len(colors) == 0 {
		colors = fallbackParticleColors
	}

	for i := 0; i < count; i++ {
		angle := profile.Angle + utils.RandSpread(ps.rng, profile.Spread)
		speed := profile.Speed * utils.RandRange(ps.rng, 0.5, 1)
		clr := colors[ps.rng.Intn(len(colors))]
		life := profile.Life * utils.RandRange(ps.rng, 0.7, 1)
		size := profile.Size * utils.RandRange(ps.rng, 0.5, 1)

		id := ps.entityManager.CreateEntity()
		ps.entityManager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
		ps.entityManager.AddComponent(id, &components.ParticleComponent{
			VelocityX: math.Cos(angle) * speed,
			VelocityY: math.Sin(angle) * speed,
			Color:     clr,
			Life:      life,
			MaxLife:   life,
			Size:      size,
		})
	}
}

// Update moves every particle, applies gravity and removes expired ones.
// dt is the delta time in seconds since the last frame.
func (ps *ParticleSystem) Update(dt float64) {
	particles := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.entityManager)

	for _, id := range particles {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		position, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)

		position.X += particle.VelocityX * dt
		position.Y += particle.VelocityY * dt
		particle.Life -= dt
		particle.VelocityY += ps.gravity * dt

		if particle.Life <= 0 {
			ps.entityManager.DestroyEntity(id)
		}
	}

	ps.entityManager.RemoveMarkedEntities()
}

// Count returns the number of live particles.
func (ps *ParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager))
}

// Active reports whether any particle is still alive.
func (ps *ParticleSystem) Active() bool {
	return ps.Count() > 0
}

// Clear removes every particle immediately.
func (ps *ParticleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager) {
		ps.entityManager.DestroyEntity(id)
	}
	ps.entityManager.RemoveMarkedEntities()
}
