package descriptor

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDescriptor marks authoring data that cannot be loaded.
var ErrInvalidDescriptor = errors.New("descriptor: invalid")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("descriptor: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("descriptor: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ComponentSpec describes one component: its children, controllers,
// relations, transitions and script hooks.
type ComponentSpec struct {
	Name        string           `yaml:"name"`
	Width       float64          `yaml:"width"`
	Height      float64          `yaml:"height"`
	Script      string           `yaml:"script"`
	Controllers []ControllerSpec `yaml:"controllers"`
	Children    []ChildSpec      `yaml:"children"`
	Relations   []RelationSpec   `yaml:"relations"`
	Transitions []TransitionSpec `yaml:"transitions"`
	Hooks       []HookSpec       `yaml:"hooks"`
}

func LoadComponentSpec(name string) (*ComponentSpec, error) {
	spec, err := LoadSpec[ComponentSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseComponentSpec decodes a component document that is already in memory.
func ParseComponentSpec(data []byte) (*ComponentSpec, error) {
	var spec ComponentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("descriptor: unmarshal component: %w", err)
	}
	return &spec, nil
}

// ChildSpec is a display object placed inside a component. Type is one of
// object, image, movieclip, text or component.
type ChildSpec struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Type          string         `yaml:"type"`
	X             float64        `yaml:"x"`
	Y             float64        `yaml:"y"`
	Width         float64        `yaml:"width"`
	Height        float64        `yaml:"height"`
	PivotX        float64        `yaml:"pivotX"`
	PivotY        float64        `yaml:"pivotY"`
	PivotAsAnchor bool           `yaml:"anchor"`
	ScaleX        *float64       `yaml:"scaleX"`
	ScaleY        *float64       `yaml:"scaleY"`
	Alpha         *float64       `yaml:"alpha"`
	Rotation      float64        `yaml:"rotation"`
	Visible       *bool          `yaml:"visible"`
	Color         *YAMLColor     `yaml:"color"`
	Frame         int            `yaml:"frame"`
	FrameCount    int            `yaml:"frameCount"`
	FrameInterval float64        `yaml:"interval"`
	Playing       bool           `yaml:"playing"`
	Text          string         `yaml:"text"`
	AutoSize      bool           `yaml:"autoSize"`
	Src           string         `yaml:"src"`
	Relations     []RelationSpec `yaml:"relations"`
	Gears         []GearSpec     `yaml:"gears"`
}

// RelationSpec binds the owning object to Target with a side-pair list such as
// "left-left,right-right%".
type RelationSpec struct {
	Target   string `yaml:"target"`
	SidePair string `yaml:"sidePair"`
}

type ControllerSpec struct {
	Name     string     `yaml:"name"`
	Pages    []PageSpec `yaml:"pages"`
	Selected int        `yaml:"selected"`
}

type PageSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// GearSpec stores a per-page value for one property. Type is xy, size or color.
type GearSpec struct {
	Type       string         `yaml:"type"`
	Controller string         `yaml:"controller"`
	Pages      []GearPageSpec `yaml:"pages"`
	Default    string         `yaml:"default"`
}

type GearPageSpec struct {
	Page  string `yaml:"page"`
	Value string `yaml:"value"`
}

type TransitionSpec struct {
	Name     string               `yaml:"name"`
	Options  int                  `yaml:"options"`
	AutoPlay bool                 `yaml:"autoPlay"`
	Times    int                  `yaml:"autoPlayRepeat"`
	Delay    float64              `yaml:"autoPlayDelay"`
	Items    []TransitionItemSpec `yaml:"items"`
}

// TransitionItemSpec mirrors one transition item. Time and Duration are
// frames at 24fps. StartValue and EndValue are pointers because an absent
// endValue demotes a tween to a static item.
type TransitionItemSpec struct {
	Time       int     `yaml:"time"`
	Target     string  `yaml:"target"`
	Type       string  `yaml:"type"`
	Tween      bool    `yaml:"tween"`
	Label      string  `yaml:"label"`
	Label2     string  `yaml:"label2"`
	Duration   int     `yaml:"duration"`
	Ease       string  `yaml:"ease"`
	Repeat     int     `yaml:"repeat"`
	Yoyo       bool    `yaml:"yoyo"`
	StartValue *string `yaml:"startValue"`
	EndValue   *string `yaml:"endValue"`
	Value      string  `yaml:"value"`
}

// HookSpec binds a script function to a labelled item of a transition. End
// selects the end-of-tween hook instead of the start hook.
type HookSpec struct {
	Transition string `yaml:"transition"`
	Label      string `yaml:"label"`
	Func       string `yaml:"func"`
	End        bool   `yaml:"end"`
}
