package calc

import (
	"fmt"
	"math"
	"sort"

	"github.com/roach88/sitecalc/internal/units"
)

// Values maps parameter names to base-unit amounts. A missing name reads as
// NaN, the empty amount.
type Values map[string]float64

// Get returns the named value or NaN.
func (v Values) Get(name string) float64 {
	if x, ok := v[name]; ok {
		return x
	}
	return math.NaN()
}

// Param is one named input or output of a formula. A Dimension of
// units.DimensionUnknown marks a plain number (a count, a ratio).
type Param struct {
	Name      string
	Dimension units.Dimension
}

// Choice is a named setting that fills plain-number inputs of a formula from
// a word, such as mix=M20 for the three mix parts of a slab.
type Choice struct {
	Name  string
	Help  string
	Apply func(value string) (Values, error)
}

// Formula is a page calculation over base-unit values.
type Formula struct {
	Name    string
	Inputs  []Param
	Outputs []Param
	Choices []Choice
	Run     func(Values) (Values, error)
}

// Choice returns the choice named name.
func (f Formula) Choice(name string) (Choice, bool) {
	for _, c := range f.Choices {
		if c.Name == name {
			return c, true
		}
	}
	return Choice{}, false
}

// Param returns the input or output named name.
func (f Formula) Param(name string) (Param, bool) {
	for _, p := range f.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range f.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Output reports whether name is one of the formula's outputs.
func (f Formula) Output(name string) bool {
	for _, p := range f.Outputs {
		if p.Name == name {
			return true
		}
	}
	return false
}

var registry = map[string]Formula{}

func register(f Formula) {
	if _, dup := registry[f.Name]; dup {
		panic(fmt.Sprintf("calc: formula %q registered twice", f.Name))
	}
	registry[f.Name] = f
}

// Lookup returns the formula registered under name.
func Lookup(name string) (Formula, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names lists registered formulas in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run looks up and evaluates a formula.
func Run(name string, in Values) (Values, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown formula %q", name)
	}
	return f.Run(in)
}

func param(name string, d units.Dimension) Param { return Param{Name: name, Dimension: d} }

func num(name string) Param { return Param{Name: name} }

func init() {
	register(Formula{
		Name: "riprap",
		Inputs: []Param{
			param("velocity", units.Velocity),
			param("gravity", units.Acceleration),
			num("isbash_constant"),
			num("specific_gravity"),
		},
		Outputs: []Param{param("d50", units.Length), param("stone_weight", units.Weight)},
		Choices: []Choice{{
			Name: "turbulence",
			Help: "high or low; sets the Isbash constant",
			Apply: func(s string) (Values, error) {
				c, err := ParseTurbulence(s)
				return Values{"isbash_constant": c}, err
			},
		}},
		Run: func(v Values) (Values, error) {
			r, err := Riprap{
				Velocity:        v.Get("velocity"),
				Gravity:         v.Get("gravity"),
				IsbashConstant:  v.Get("isbash_constant"),
				SpecificGravity: v.Get("specific_gravity"),
			}.Compute()
			return Values{"d50": r.D50, "stone_weight": r.StoneWeight}, err
		},
	})

	register(Formula{
		Name: "wall",
		Inputs: []Param{
			param("wall1", units.Length),
			param("wall2", units.Length),
			param("wall3", units.Length),
			param("wall4", units.Length),
			param("height", units.Length),
			num("shape"),
			num("doors"),
			num("windows"),
			param("door_area", units.Area),
			param("window_area", units.Area),
		},
		Outputs: []Param{
			param("perimeter", units.Length),
			param("gross_area", units.Area),
			param("openings", units.Area),
			param("net_area", units.Area),
		},
		Choices: []Choice{{
			Name: "shape",
			Help: "rectangle, square or walls; how the perimeter is taken from the walls",
			Apply: func(s string) (Values, error) {
				shape, err := ParseShape(s)
				return Values{"shape": float64(shape)}, err
			},
		}},
		Run: func(v Values) (Values, error) {
			room := Room{
				Height:     v.Get("height"),
				Doors:      v.Get("doors"),
				Windows:    v.Get("windows"),
				DoorArea:   v.Get("door_area"),
				WindowArea: v.Get("window_area"),
			}
			var err error
			room.Shape, room.Walls, err = wallsOf(v)
			if err != nil {
				nan := math.NaN()
				return Values{"perimeter": nan, "gross_area": nan, "openings": nan, "net_area": nan}, err
			}
			r, err := room.Compute()
			return Values{
				"perimeter":  r.Perimeter,
				"gross_area": r.GrossArea,
				"openings":   r.Openings,
				"net_area":   r.NetArea,
			}, err
		},
	})

	register(Formula{
		Name: "slab",
		Inputs: []Param{
			param("length", units.Length),
			param("width", units.Length),
			param("depth", units.Length),
			num("cement_parts"),
			num("sand_parts"),
			num("aggregate_parts"),
			param("bag_weight", units.Weight),
		},
		Outputs: []Param{
			param("wet_volume", units.Volume),
			param("dry_volume", units.Volume),
			param("cement_weight", units.Weight),
			num("bags"),
			param("sand_volume", units.Volume),
			param("aggregate_volume", units.Volume),
		},
		Choices: []Choice{{
			Name: "mix",
			Help: "a grade (M10, M15, M20, M25) or a cement:sand:aggregate ratio",
			Apply: func(s string) (Values, error) {
				m, err := ParseMix(s)
				return Values{"cement_parts": m.Cement, "sand_parts": m.Sand, "aggregate_parts": m.Aggregate}, err
			},
		}},
		Run: func(v Values) (Values, error) {
			mix := Mix{
				Cement:    zeroIfEmpty(v.Get("cement_parts")),
				Sand:      zeroIfEmpty(v.Get("sand_parts")),
				Aggregate: zeroIfEmpty(v.Get("aggregate_parts")),
			}
			r, err := Slab{
				Length:    v.Get("length"),
				Width:     v.Get("width"),
				Depth:     v.Get("depth"),
				Mix:       mix,
				BagWeight: v.Get("bag_weight"),
			}.Compute()
			return Values{
				"wet_volume":       r.WetVolume,
				"dry_volume":       r.DryVolume,
				"cement_weight":    r.CementWeight,
				"bags":             r.Bags,
				"sand_volume":      r.SandVolume,
				"aggregate_volume": r.AggregateVolume,
			}, err
		},
	})

	register(Formula{
		Name: "sand",
		Inputs: []Param{
			param("area", units.Area),
			param("depth", units.Length),
			param("density", units.Density),
		},
		Outputs: []Param{param("volume", units.Volume), param("weight", units.Weight)},
		Run: func(v Values) (Values, error) {
			r, err := Fill{Area: v.Get("area"), Depth: v.Get("depth"), Density: v.Get("density")}.Compute()
			return Values{"volume": r.Volume, "weight": r.Weight}, err
		},
	})

	register(Formula{
		Name: "grout",
		Inputs: []Param{
			param("tile_length", units.Length),
			param("tile_width", units.Length),
			param("joint_width", units.Length),
			param("joint_depth", units.Length),
			param("area", units.Area),
			param("density", units.Density),
		},
		Outputs: []Param{
			num("gap_ratio"),
			param("volume", units.Volume),
			param("weight", units.Weight),
			num("tiles"),
		},
		Run: func(v Values) (Values, error) {
			r, err := Grout{
				TileLength: v.Get("tile_length"),
				TileWidth:  v.Get("tile_width"),
				JointWidth: v.Get("joint_width"),
				JointDepth: v.Get("joint_depth"),
				Area:       v.Get("area"),
				Density:    v.Get("density"),
			}.Compute()
			return Values{"gap_ratio": r.GapRatio, "volume": r.Volume, "weight": r.Weight, "tiles": r.Tiles}, err
		},
	})

	register(Formula{
		Name: "stain",
		Inputs: []Param{
			param("length", units.Length),
			param("width", units.Length),
			param("railing_length", units.Length),
			param("railing_height", units.Length),
			param("baluster_width", units.Length),
			param("baluster_spacing", units.Length),
			param("coverage", units.Area),
			param("container_volume", units.Volume),
			num("coats"),
		},
		Outputs: []Param{
			param("deck_area", units.Area),
			num("balusters"),
			param("surface_area", units.Area),
			num("containers"),
			param("volume", units.Volume),
		},
		Run: func(v Values) (Values, error) {
			r, err := Deck{
				Length:          v.Get("length"),
				Width:           v.Get("width"),
				RailingLength:   v.Get("railing_length"),
				RailingHeight:   v.Get("railing_height"),
				BalusterWidth:   v.Get("baluster_width"),
				BalusterSpacing: v.Get("baluster_spacing"),
				Coverage:        v.Get("coverage"),
				ContainerVolume: v.Get("container_volume"),
				Coats:           v.Get("coats"),
			}.Compute()
			return Values{
				"deck_area":    r.DeckArea,
				"balusters":    r.Balusters,
				"surface_area": r.SurfaceArea,
				"containers":   r.Containers,
				"volume":       r.Volume,
			}, err
		},
	})

	register(Formula{
		Name: "truss",
		Inputs: []Param{
			param("building_length", units.Length),
			param("span", units.Length),
			param("spacing", units.Length),
			num("pitch"),
			param("overhang", units.Length),
		},
		Outputs: []Param{
			num("trusses"),
			param("rise", units.Length),
			param("rafter", units.Length),
			param("angle", units.Angle),
		},
		Run: func(v Values) (Values, error) {
			r, err := Roof{
				BuildingLength: v.Get("building_length"),
				Span:           v.Get("span"),
				Spacing:        v.Get("spacing"),
				Pitch:          v.Get("pitch"),
				Overhang:       v.Get("overhang"),
			}.Compute()
			return Values{"trusses": r.Trusses, "rise": r.Rise, "rafter": r.Rafter, "angle": r.Angle}, err
		},
	})
}

// wallsOf picks the room shape. An explicit shape input wins, with missing
// walls left blank; otherwise three or more walls are summed, two form a
// rectangle and one a square.
func wallsOf(v Values) (Shape, []float64, error) {
	var walls []float64
	for _, name := range []string{"wall1", "wall2", "wall3", "wall4"} {
		if w := v.Get(name); !empty(w) {
			walls = append(walls, w)
		}
	}

	if code := v.Get("shape"); !empty(code) {
		shape := Shape(code)
		if code != math.Trunc(code) || shape < ShapeRectangle || shape > ShapeWalls {
			return ShapeRectangle, nil, invalid("shape", "unknown room shape %v", code)
		}
		need := map[Shape]int{ShapeRectangle: 2, ShapeSquare: 1, ShapeWalls: 1}[shape]
		for len(walls) < need {
			walls = append(walls, math.NaN())
		}
		return shape, walls, nil
	}

	switch len(walls) {
	case 0:
		return ShapeRectangle, []float64{math.NaN(), math.NaN()}, nil
	case 1:
		return ShapeSquare, walls, nil
	case 2:
		return ShapeRectangle, walls, nil
	default:
		return ShapeWalls, walls, nil
	}
}
