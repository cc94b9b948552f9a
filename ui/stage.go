package ui

import (
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/uimotion/timing"
)

// AssetResolver looks up a loaded asset by its ui:// URL. It returns nil when
// the asset is unknown.
type AssetResolver interface {
	ItemAssetByURL(url string) any
}

// SoundPlayer plays a clip returned by an AssetResolver once.
type SoundPlayer interface {
	PlayOneShot(clip any, volume float64)
}

// Stage drives a tree of components: tweens, timers, movie clips and pending
// sizes advance once per Update.
type Stage struct {
	root      *Component
	scheduler *timing.Scheduler
	timers    *timing.Timers
	tweens    *timing.Engine
	rand      *rand.Rand
	assets    AssetResolver
	sound     SoundPlayer
	measurer  TextMeasurer
}

type StageOption func(*Stage)

func WithAssets(assets AssetResolver) StageOption {
	return func(s *Stage) { s.assets = assets }
}

func WithSound(player SoundPlayer) StageOption {
	return func(s *Stage) { s.sound = player }
}

// WithRand replaces the random source used by shake actions.
func WithRand(r *rand.Rand) StageOption {
	return func(s *Stage) { s.rand = r }
}

func WithTextMeasurer(m TextMeasurer) StageOption {
	return func(s *Stage) { s.measurer = m }
}

func NewStage(opts ...StageOption) *Stage {
	s := &Stage{
		timers: timing.NewTimers(),
		tweens: timing.NewEngine(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.root = NewComponent(s, "")
	s.scheduler = timing.NewScheduler(
		s.tweens,
		s.timers,
		timing.SystemFunc(s.advanceClips),
		timing.SystemFunc(s.ensureSizes),
	)
	return s
}

func (s *Stage) Root() *Component             { return s.root }
func (s *Stage) Timers() *timing.Timers       { return s.timers }
func (s *Stage) Tweens() *timing.Engine       { return s.tweens }
func (s *Stage) Scheduler() *timing.Scheduler { return s.scheduler }
func (s *Stage) Assets() AssetResolver        { return s.assets }
func (s *Stage) TextMeasurer() TextMeasurer   { return s.measurer }

// Update advances the stage by dt seconds.
func (s *Stage) Update(dt float64) {
	s.scheduler.Update(dt)
}

func (s *Stage) advanceClips(dt float64) {
	s.root.walk(func(e Element) {
		if mc, ok := e.(*MovieClip); ok {
			mc.Advance(dt)
		}
	})
}

func (s *Stage) ensureSizes(float64) {
	s.root.walk(func(e Element) {
		e.Base().EnsureSizeCorrect()
	})
}

func (s *Stage) playSound(url string, volume float64) {
	if s.assets == nil || s.sound == nil {
		return
	}
	clip := s.assets.ItemAssetByURL(url)
	if clip == nil {
		return
	}
	s.sound.PlayOneShot(clip, volume)
}

// randomInUnitCircle returns a uniformly distributed point inside the unit
// circle.
func (s *Stage) randomInUnitCircle() (x, y float64) {
	v := cp.ForAngle(2 * math.Pi * s.rand.Float64()).Mult(math.Sqrt(s.rand.Float64()))
	return v.X, v.Y
}
