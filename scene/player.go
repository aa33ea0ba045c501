package scene

import (
	"github.com/jakecoffman/cp"
)

const (
	playerTag = "Player"

	jumpBufferTime = 0.15
	coyoteTime     = 0.1
)

// Intent is one frame of player controls.
type Intent struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	Jump  bool
}

// PlayerConfig tunes movement.
type PlayerConfig struct {
	MoveSpeed float64
	JumpSpeed float64
	Width     float64
	Height    float64
	// KillY is the depth below which the player respawns. Zero disables it.
	KillY float64
}

// playerState is the interface each concrete player state implements.
type playerState interface {
	Enter(p *Player)
	HandleInput(p *Player)
	OnPhysics(p *Player)
	Name() string
}

type idleState struct{}

func (idleState) Name() string    { return "idle" }
func (idleState) Enter(p *Player) {}
func (idleState) HandleInput(p *Player) {
	if p.wantsJump() {
		p.jump()
		return
	}
	if p.intent.MoveX != 0 {
		p.setState(stateRunning)
	}
}
func (idleState) OnPhysics(p *Player) {
	if !p.grounded {
		p.setState(stateFalling)
	}
}

type runningState struct{}

func (runningState) Name() string    { return "running" }
func (runningState) Enter(p *Player) {}
func (runningState) HandleInput(p *Player) {
	if p.wantsJump() {
		p.jump()
		return
	}
	if p.intent.MoveX == 0 {
		p.setState(stateIdle)
	}
}
func (runningState) OnPhysics(p *Player) {
	if !p.grounded {
		p.setState(stateFalling)
	}
}

type jumpingState struct{}

func (jumpingState) Name() string    { return "jumping" }
func (jumpingState) Enter(p *Player) {}
func (jumpingState) HandleInput(p *Player) {
	if p.jumpPressed() {
		p.jumpBuffer = jumpBufferTime
	}
}
func (jumpingState) OnPhysics(p *Player) {
	if p.body.Velocity().Y > 0 {
		p.setState(stateFalling)
	}
}

type fallingState struct{}

func (fallingState) Name() string    { return "falling" }
func (fallingState) Enter(p *Player) {}
func (fallingState) HandleInput(p *Player) {
	if !p.jumpPressed() {
		return
	}
	// allow coyote jump shortly after leaving ground
	if p.coyote > 0 {
		p.jump()
		return
	}
	p.jumpBuffer = jumpBufferTime
}
func (fallingState) OnPhysics(p *Player) {
	if !p.grounded {
		return
	}
	if p.jumpBuffer > 0 {
		p.jump()
		return
	}
	if p.intent.MoveX != 0 {
		p.setState(stateRunning)
	} else {
		p.setState(stateIdle)
	}
}

// singletons for each state to avoid allocating on every transition
var (
	stateIdle    playerState = &idleState{}
	stateRunning playerState = &runningState{}
	stateJumping playerState = &jumpingState{}
	stateFalling playerState = &fallingState{}
)

// Player is the level-mode actor. It registers in the World under the
// "Player" tag so collectables can detect it.
type Player struct {
	cfg   PlayerConfig
	body  *cp.Body
	spawn cp.Vector

	state      playerState
	intent     Intent
	prevJump   bool
	grounded   bool
	jumpBuffer float64
	coyote     float64
	physics    *Physics
}

// NewPlayer spawns a player with its top-left corner at spawn.
func NewPlayer(physics *Physics, spawn cp.Vector, cfg PlayerConfig) *Player {
	p := &Player{
		cfg:     cfg,
		spawn:   spawn,
		physics: physics,
		state:   stateIdle,
	}
	p.body = physics.AddBox(p.centerFor(spawn), cfg.Width, cfg.Height)
	p.state.Enter(p)
	return p
}

func (p *Player) Tag() string { return playerTag }

// Bounds is the player's bounding box in world space.
func (p *Player) Bounds() cp.BB {
	c := p.Center()
	hw, hh := p.cfg.Width/2, p.cfg.Height/2
	return cp.BB{L: c.X - hw, B: c.Y - hh, R: c.X + hw, T: c.Y + hh}
}

func (p *Player) Center() cp.Vector {
	if p.body == nil {
		return p.centerFor(p.spawn)
	}
	return p.body.Position()
}

func (p *Player) State() string { return p.state.Name() }

func (p *Player) Grounded() bool { return p.grounded }

// Update applies one frame of intent before the physics step.
func (p *Player) Update(dt float64, in Intent) {
	if p.body == nil {
		return
	}
	p.intent = in
	p.grounded = p.physics.Supported(p.Bounds())
	if p.grounded {
		p.coyote = coyoteTime
	} else if p.coyote > 0 {
		p.coyote -= dt
	}
	if p.jumpBuffer > 0 {
		p.jumpBuffer -= dt
	}

	v := p.body.Velocity()
	p.body.SetVelocity(in.MoveX*p.cfg.MoveSpeed, v.Y)

	p.state.HandleInput(p)
	p.prevJump = in.Jump
}

// AfterStep lets the state react to the simulation and respawns the player
// when it falls out of the level.
func (p *Player) AfterStep() {
	if p.body == nil {
		return
	}
	if p.cfg.KillY > 0 && p.Bounds().B > p.cfg.KillY {
		p.Respawn()
		return
	}
	p.grounded = p.physics.Supported(p.Bounds())
	p.state.OnPhysics(p)
}

// Respawn moves the player back to its spawn point at rest.
func (p *Player) Respawn() {
	if p.body == nil {
		return
	}
	p.body.SetPosition(p.centerFor(p.spawn))
	p.body.SetVelocity(0, 0)
	p.jumpBuffer = 0
	p.coyote = 0
	p.setState(stateIdle)
}

func (p *Player) setState(s playerState) {
	p.state = s
	p.state.Enter(p)
}

func (p *Player) jumpPressed() bool {
	return p.intent.Jump && !p.prevJump
}

func (p *Player) wantsJump() bool {
	return p.jumpPressed() || p.jumpBuffer > 0
}

func (p *Player) jump() {
	v := p.body.Velocity()
	p.body.SetVelocity(v.X, -p.cfg.JumpSpeed)
	p.jumpBuffer = 0
	p.coyote = 0
	p.setState(stateJumping)
}

func (p *Player) centerFor(topLeft cp.Vector) cp.Vector {
	return topLeft.Add(cp.Vector{X: p.cfg.Width / 2, Y: p.cfg.Height / 2})
}
