package ui

import "image/color"

// ColorGear is implemented by elements whose tint can be driven by
// transitions and color gears.
type ColorGear interface {
	Color() color.Color
	SetColor(c color.Color)
}

// AnimationGear is implemented by elements with a frame timeline.
type AnimationGear interface {
	Frame() int
	SetFrame(frame int)
	Playing() bool
	SetPlaying(playing bool)
}

// Image is a tinted rectangle.
type Image struct {
	Object
	color color.Color
}

func NewImage(id string) *Image {
	img := &Image{color: color.White}
	img.init(img, id)
	return img
}

func (img *Image) Color() color.Color { return img.color }

func (img *Image) SetColor(c color.Color) {
	if c == nil {
		c = color.White
	}
	img.color = c
	img.updateGear(gearColor)
}

// MovieClip is a frame-based animation. While playing it advances one frame
// every Interval seconds and wraps at FrameCount.
type MovieClip struct {
	Object
	color      color.Color
	frame      int
	frameCount int
	interval   float64
	playing    bool
	elapsed    float64
}

func NewMovieClip(id string, frameCount int, interval float64) *MovieClip {
	if interval <= 0 {
		interval = 1.0 / 12.0
	}
	mc := &MovieClip{color: color.White, frameCount: frameCount, interval: interval, playing: true}
	mc.init(mc, id)
	return mc
}

func (mc *MovieClip) Color() color.Color { return mc.color }

func (mc *MovieClip) SetColor(c color.Color) {
	if c == nil {
		c = color.White
	}
	mc.color = c
	mc.updateGear(gearColor)
}

func (mc *MovieClip) Frame() int { return mc.frame }

func (mc *MovieClip) SetFrame(frame int) {
	if mc.frameCount > 0 {
		if frame < 0 {
			frame = 0
		}
		if frame >= mc.frameCount {
			frame = mc.frameCount - 1
		}
	}
	mc.frame = frame
	mc.elapsed = 0
}

func (mc *MovieClip) FrameCount() int { return mc.frameCount }
func (mc *MovieClip) Playing() bool   { return mc.playing }

func (mc *MovieClip) SetPlaying(playing bool) { mc.playing = playing }

// Advance moves the timeline forward by dt seconds.
func (mc *MovieClip) Advance(dt float64) {
	if !mc.playing || mc.frameCount <= 1 {
		return
	}
	mc.elapsed += dt
	for mc.elapsed >= mc.interval {
		mc.elapsed -= mc.interval
		mc.frame = (mc.frame + 1) % mc.frameCount
	}
}

// TextMeasurer reports the pixel size of a rendered string.
type TextMeasurer interface {
	MeasureText(text string) (w, h float64)
}

// TextField shows a string. With auto-size on, a text change requests the
// measured size; it is applied on the next EnsureSizeCorrect.
type TextField struct {
	Object
	text     string
	color    color.Color
	autoSize bool
	measurer TextMeasurer
}

func NewTextField(id string, measurer TextMeasurer) *TextField {
	tf := &TextField{color: color.Black, measurer: measurer}
	tf.init(tf, id)
	return tf
}

func (tf *TextField) Text() string { return tf.text }

func (tf *TextField) SetText(text string) {
	tf.text = text
	tf.requestAutoSize()
}

func (tf *TextField) AutoSize() bool { return tf.autoSize }

func (tf *TextField) SetAutoSize(on bool) {
	tf.autoSize = on
	tf.requestAutoSize()
}

func (tf *TextField) Color() color.Color { return tf.color }

func (tf *TextField) SetColor(c color.Color) {
	if c == nil {
		c = color.Black
	}
	tf.color = c
	tf.updateGear(gearColor)
}

func (tf *TextField) requestAutoSize() {
	if !tf.autoSize || tf.measurer == nil {
		return
	}
	w, h := tf.measurer.MeasureText(tf.text)
	tf.RequestSize(w, h)
}
