package config

// Presets are ready-to-run models for the CLI; each is a complete
// Config so `run --preset name` needs no file.
var Presets = map[string]*Config{
	"pendulum": {
		Name: "pendulum", Dt: 0.001, Duration: 10, Method: "rk4",
		Gravity: GravityConfig{Direction: []float64{0, -1, 0}, Magnitude: DefaultGravity},
		Bodies: []BodyConfig{{
			Name: "rod", Parent: "ground", Joint: "pin",
			Mass: 1, COM: []float64{1, 0, 0}, Inertia: []float64{0, 1, 1},
			Q: []float64{0.5},
		}},
	},
	"double-pendulum": {
		Name: "double-pendulum", Dt: 0.0005, Duration: 20, Method: "rk4",
		Gravity: GravityConfig{Direction: []float64{0, -1, 0}, Magnitude: DefaultGravity},
		Bodies: []BodyConfig{
			{
				Name: "upper", Parent: "ground", Joint: "pin",
				Mass: 1, COM: []float64{0.5, 0, 0}, Inertia: []float64{0.01, 0.34, 0.34},
				Q: []float64{1.5},
			},
			{
				Name: "lower", Parent: "upper", Joint: "pin",
				Mass: 1, COM: []float64{0.5, 0, 0}, Inertia: []float64{0.01, 0.34, 0.34},
				FrameInParent: FrameConfig{Translation: []float64{1, 0, 0}},
				Q:             []float64{1.5},
			},
		},
	},
	"freefall": {
		Name: "freefall", Dt: 0.001, Duration: 3, Method: "rk4",
		Gravity: GravityConfig{Direction: []float64{0, 0, -1}, Magnitude: DefaultGravity},
		Bodies: []BodyConfig{{
			Name: "brick", Parent: "ground", Joint: "free",
			Mass: 2, Inertia: []float64{1, 1, 1},
			U: []float64{0.3, 0, 0, 0, 0, 0},
		}},
	},
	"tumbler": {
		Name: "tumbler", Dt: 0.001, Duration: 15, Method: "rk4",
		Bodies: []BodyConfig{{
			Name: "top", Parent: "ground", Joint: "ball",
			Mass: 1, Inertia: []float64{1, 2, 3},
			U: []float64{0.05, 4, 0.05}, // near the unstable middle axis
		}},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
