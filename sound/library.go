// Package sound resolves transition sound items to decoded clips and plays
// them through Ebitengine's audio context.
package sound

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const DefaultSampleRate = 44100

const urlScheme = "ui://"

// Clip is a decoded sound: 16 bit little endian stereo PCM.
type Clip struct {
	URL string
	PCM []byte
}

// Library loads "ui://<pkg>/<item>" clips from <pkg>/<item>.wav and keeps
// them decoded. Failed lookups are remembered so they are logged once.
type Library struct {
	fsys       fs.FS
	sampleRate int
	clips      map[string]*Clip
	failed     map[string]bool
}

func NewLibrary(fsys fs.FS, sampleRate int) *Library {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Library{
		fsys:       fsys,
		sampleRate: sampleRate,
		clips:      map[string]*Clip{},
		failed:     map[string]bool{},
	}
}

// PathForURL maps an item url to the file that holds it.
func PathForURL(url string) (string, error) {
	rest, ok := strings.CutPrefix(url, urlScheme)
	if !ok {
		return "", fmt.Errorf("sound: %q is not a %s url", url, urlScheme)
	}
	pkg, item, ok := strings.Cut(rest, "/")
	if !ok || pkg == "" || item == "" || strings.Contains(item, "/") {
		return "", fmt.Errorf("sound: %q: want %s<package>/<item>", url, urlScheme)
	}
	p := path.Join(pkg, item)
	if path.Ext(p) == "" {
		p += ".wav"
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("sound: %q escapes the asset root", url)
	}
	return p, nil
}

// Load returns the clip for url, decoding it on first use.
func (l *Library) Load(url string) (*Clip, error) {
	if c, ok := l.clips[url]; ok {
		return c, nil
	}
	p, err := PathForURL(url)
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("sound: read %s: %w", p, err)
	}
	stream, err := wav.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("sound: decode wav %q: %w", p, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("sound: decode wav %q: %w", p, err)
	}
	c := &Clip{URL: url, PCM: pcm}
	l.clips[url] = c
	return c, nil
}

// ItemAssetByURL resolves a sound item for the stage. Unknown clips yield nil
// so the item is skipped.
func (l *Library) ItemAssetByURL(url string) any {
	c, err := l.Load(url)
	if err != nil {
		if !l.failed[url] {
			l.failed[url] = true
			log.Printf("%v", err)
		}
		return nil
	}
	return c
}

// Player plays clips once through an audio context.
type Player struct {
	ctx *audio.Context
}

func NewPlayer(ctx *audio.Context) *Player {
	return &Player{ctx: ctx}
}

func (p *Player) PlayOneShot(clip any, volume float64) {
	c, ok := clip.(*Clip)
	if !ok || c == nil || p.ctx == nil {
		return
	}
	player := p.ctx.NewPlayerFromBytes(c.PCM)
	player.SetVolume(volume)
	player.Play()
}
