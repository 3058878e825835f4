package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/multibody/internal/forces"
	"github.com/san-kum/multibody/internal/mobilizer"
	"github.com/san-kum/multibody/internal/spatial"
	"github.com/san-kum/multibody/internal/tree"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultGravity  = 9.80665
)

// Config is the YAML description of a multibody model plus the run
// parameters: a body list in tree order, a uniform gravity field and
// the stepper settings.
type Config struct {
	Name     string        `yaml:"name"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Method   string        `yaml:"method"`
	UseEuler bool          `yaml:"use_euler_angles"`
	Gravity  GravityConfig `yaml:"gravity"`
	Bodies   []BodyConfig  `yaml:"bodies"`
}

type GravityConfig struct {
	Direction  []float64 `yaml:"direction"`
	Magnitude  float64   `yaml:"magnitude"`
	ZeroHeight float64   `yaml:"zero_height"`
}

// BodyConfig describes one body and the joint connecting it to its
// parent. Parent "" or "ground" attaches to Ground. Inertia is about
// the body origin: three moments, or six as (xx, yy, zz, xy, xz, yz).
// Frames are a translation plus body-fixed XYZ Euler angles, radians.
type BodyConfig struct {
	Name          string      `yaml:"name"`
	Parent        string      `yaml:"parent"`
	Joint         string      `yaml:"joint"`
	Mass          float64     `yaml:"mass"`
	COM           []float64   `yaml:"com"`
	Inertia       []float64   `yaml:"inertia"`
	FrameInParent FrameConfig `yaml:"frame_in_parent"`
	FrameInBody   FrameConfig `yaml:"frame_in_body"`
	Reversed      bool        `yaml:"reversed"`

	Pitch    float64   `yaml:"pitch"`     // screw joints
	SemiAxes []float64 `yaml:"semi_axes"` // ellipsoid joints

	Q []float64 `yaml:"q"` // initial coordinates, joint order
	U []float64 `yaml:"u"` // initial speeds
}

type FrameConfig struct {
	Translation []float64 `yaml:"translation"`
	Rotation    []float64 `yaml:"rotation"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "model",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Method:   "rk4",
		Gravity: GravityConfig{
			Direction: []float64{0, 0, -1},
			Magnitude: DefaultGravity,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildTree constructs the tree described by the body list and
// returns it with a name-to-id lookup. Bodies must appear after their
// parents.
func (c *Config) BuildTree() (*tree.Tree, map[string]tree.BodyID, error) {
	b := tree.NewBuilder()
	ids := map[string]tree.BodyID{"ground": tree.Ground, "": tree.Ground}

	for i, bc := range c.Bodies {
		if bc.Name == "" {
			return nil, nil, fmt.Errorf("config: body %d has no name", i)
		}
		if _, dup := ids[bc.Name]; dup {
			return nil, nil, fmt.Errorf("config: duplicate body name %q", bc.Name)
		}
		parent, ok := ids[bc.Parent]
		if !ok {
			return nil, nil, fmt.Errorf("config: body %q parent %q not defined before it", bc.Name, bc.Parent)
		}
		joint, err := makeJoint(bc)
		if err != nil {
			return nil, nil, err
		}
		com, err := vec3(bc.COM, spatial.Vec3{})
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %q com: %w", bc.Name, err)
		}
		inertia, err := inertia33(bc.Inertia)
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %q inertia: %w", bc.Name, err)
		}
		xPF, err := bc.FrameInParent.transform()
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %q frame_in_parent: %w", bc.Name, err)
		}
		xBM, err := bc.FrameInBody.transform()
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %q frame_in_body: %w", bc.Name, err)
		}
		id, err := b.AddBody(tree.Body{
			Name:          bc.Name,
			Parent:        parent,
			Mass:          bc.Mass,
			COM:           com,
			Inertia:       inertia,
			FrameInParent: xPF,
			FrameInBody:   xBM,
			Joint:         joint,
			Reversed:      bc.Reversed,
		})
		if err != nil {
			return nil, nil, err
		}
		ids[bc.Name] = id
	}
	t, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	delete(ids, "")
	return t, ids, nil
}

// NewState builds a state with the configured representation and
// initial q/u applied per body. Initial q slices use the
// representation's width; short or absent slices keep the identity
// default.
func (c *Config) NewState(t *tree.Tree, ids map[string]tree.BodyID) (*tree.State, error) {
	s := t.NewState(c.UseEuler)
	for _, bc := range c.Bodies {
		id := ids[bc.Name]
		for k, v := range bc.Q {
			if k >= t.QWidth(id) {
				return nil, fmt.Errorf("config: body %q has %d initial q values, joint takes at most %d", bc.Name, len(bc.Q), t.QWidth(id))
			}
			s.SetQAt(t.QIndex(id)+k, v)
		}
		for k, v := range bc.U {
			if k >= t.UWidth(id) {
				return nil, fmt.Errorf("config: body %q has %d initial u values, joint has %d dofs", bc.Name, len(bc.U), t.UWidth(id))
			}
			s.SetUAt(t.UIndex(id)+k, v)
		}
	}
	return s, nil
}

// NewGravity builds the configured gravity element, or nil when the
// magnitude is zero.
func (c *Config) NewGravity(t *tree.Tree) (*forces.Gravity, error) {
	if c.Gravity.Magnitude == 0 {
		return nil, nil
	}
	dir, err := vec3(c.Gravity.Direction, spatial.Vec3{0, 0, -1})
	if err != nil {
		return nil, fmt.Errorf("config: gravity direction: %w", err)
	}
	g, err := forces.NewGravity(t, dir, c.Gravity.Magnitude)
	if err != nil {
		return nil, err
	}
	g.SetZeroHeight(c.Gravity.ZeroHeight)
	return g, nil
}

func makeJoint(bc BodyConfig) (mobilizer.Mobilizer, error) {
	switch bc.Joint {
	case "weld":
		return mobilizer.NewWeld(), nil
	case "torsion", "pin":
		return mobilizer.NewTorsion(), nil
	case "slider":
		return mobilizer.NewSlider(), nil
	case "screw":
		return mobilizer.NewScrew(bc.Pitch), nil
	case "cylinder":
		return mobilizer.NewCylinder(), nil
	case "universal":
		return mobilizer.NewUniversal(), nil
	case "bendstretch":
		return mobilizer.NewBendStretch(), nil
	case "planar":
		return mobilizer.NewPlanar(), nil
	case "gimbal":
		return mobilizer.NewGimbal(), nil
	case "ball":
		return mobilizer.NewBall(), nil
	case "ellipsoid":
		axes, err := vec3(bc.SemiAxes, spatial.Vec3{1, 1, 1})
		if err != nil {
			return nil, fmt.Errorf("config: body %q semi_axes: %w", bc.Name, err)
		}
		return mobilizer.NewEllipsoid(axes)
	case "translate":
		return mobilizer.NewTranslate(), nil
	case "free":
		return mobilizer.NewFree(), nil
	case "lineorientation":
		return mobilizer.NewLineOrientation(), nil
	case "freeline":
		return mobilizer.NewFreeLine(), nil
	default:
		return nil, fmt.Errorf("config: body %q has unknown joint type %q", bc.Name, bc.Joint)
	}
}

func vec3(v []float64, def spatial.Vec3) (spatial.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return spatial.Vec3{v[0], v[1], v[2]}, nil
	default:
		return spatial.Vec3{}, fmt.Errorf("need 3 values, got %d", len(v))
	}
}

func inertia33(v []float64) (spatial.Mat33, error) {
	switch len(v) {
	case 0:
		return spatial.Diag33(spatial.Vec3{1, 1, 1}), nil
	case 3:
		return spatial.Diag33(spatial.Vec3{v[0], v[1], v[2]}), nil
	case 6:
		return spatial.Mat33{
			{v[0], v[3], v[4]},
			{v[3], v[1], v[5]},
			{v[4], v[5], v[2]},
		}, nil
	default:
		return spatial.Mat33{}, fmt.Errorf("need 3 moments or 6 moments+products, got %d values", len(v))
	}
}

func (f FrameConfig) transform() (spatial.Transform, error) {
	p, err := vec3(f.Translation, spatial.Vec3{})
	if err != nil {
		return spatial.Transform{}, err
	}
	e, err := vec3(f.Rotation, spatial.Vec3{})
	if err != nil {
		return spatial.Transform{}, err
	}
	return spatial.Transform{R: spatial.RotationFromBodyXYZ(e), P: p}, nil
}
