package toml

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

// TestUnmarshal_SceneDocument runs the full pipeline on a document shaped like a scene file
func TestUnmarshal_SceneDocument(t *testing.T) {
	input := []byte(`
# scene
preset = "flag"

[cloth]
grid_size = 24
gravity = -9.81
wind_direction = [0.6, 0, 1]
self_collision = true
pins = [0, 23]

[host]
'drag mode' = "tear"

[[object]]
kind = "sphere"
position = [0.0, -0.6, 0.0]
radius = 0.45

[[object]]
kind = "box"
position = [0.8, -1.0, 0.0]
size = { x = 0.5, y = 0.5, z = 0.5 }
`)

	type Object struct {
		Kind     string             `toml:"kind"`
		Position [3]float64         `toml:"position"`
		Radius   *float64           `toml:"radius"`
		Size     map[string]float64 `toml:"size"`
	}
	type Doc struct {
		Preset string `toml:"preset"`
		Cloth  struct {
			GridSize      *int      `toml:"grid_size"`
			Gravity       *float64  `toml:"gravity"`
			WindForce     *float64  `toml:"wind_force"`
			WindDirection []float64 `toml:"wind_direction"`
			SelfCollision *bool     `toml:"self_collision"`
			Pins          []int     `toml:"pins"`
		} `toml:"cloth"`
		Host    map[string]string `toml:"host"`
		Objects []Object          `toml:"object"`
	}

	var doc Doc
	meta, err := UnmarshalMeta(input, &doc)
	if err != nil {
		t.Fatalf("UnmarshalMeta failed: %v", err)
	}

	if doc.Preset != "flag" {
		t.Errorf("preset = %q", doc.Preset)
	}
	c := doc.Cloth
	if c.GridSize == nil || *c.GridSize != 24 {
		t.Errorf("grid_size = %v", c.GridSize)
	}
	if c.Gravity == nil || *c.Gravity != -9.81 {
		t.Errorf("gravity = %v", c.Gravity)
	}
	if c.WindForce != nil {
		t.Error("absent key allocated its pointer")
	}
	if !slices.Equal(c.WindDirection, []float64{0.6, 0, 1}) {
		t.Errorf("wind_direction = %v", c.WindDirection)
	}
	if c.SelfCollision == nil || !*c.SelfCollision {
		t.Error("self_collision not decoded")
	}
	if !slices.Equal(c.Pins, []int{0, 23}) {
		t.Errorf("pins = %v", c.Pins)
	}
	if doc.Host["drag mode"] != "tear" {
		t.Errorf("quoted key lost: %v", doc.Host)
	}

	if len(doc.Objects) != 2 {
		t.Fatalf("objects = %d, want 2", len(doc.Objects))
	}
	if doc.Objects[0].Radius == nil || *doc.Objects[0].Radius != 0.45 {
		t.Errorf("sphere radius = %v", doc.Objects[0].Radius)
	}
	if doc.Objects[1].Position != [3]float64{0.8, -1, 0} {
		t.Errorf("box position = %v", doc.Objects[1].Position)
	}
	if doc.Objects[1].Size["y"] != 0.5 {
		t.Errorf("inline table size = %v", doc.Objects[1].Size)
	}
	if len(meta.Undecoded) != 0 {
		t.Errorf("undecoded = %v, want none", meta.Undecoded)
	}
}

func TestUnmarshalMeta_ReportsUnknownKeys(t *testing.T) {
	input := []byte(`
known = 1
typo = 2
[section]
inner = true
extra = "x"
`)
	var doc struct {
		Known   int `toml:"known"`
		Section struct {
			Inner bool `toml:"inner"`
		} `toml:"section"`
	}
	meta, err := UnmarshalMeta(input, &doc)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"section.extra", "typo"}
	if !slices.Equal(meta.Undecoded, want) {
		t.Errorf("undecoded = %v, want %v", meta.Undecoded, want)
	}
}

func TestParse_Numbers(t *testing.T) {
	doc, err := Parse([]byte(`
a = 42
b = -17
c = +3
d = 1_000
e = 0x1F
f = 0b101
g = 3.25
h = -0.5
i = 1e3
j = 6.02e-2
k = inf
l = -inf
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ints := map[string]int64{"a": 42, "b": -17, "c": 3, "d": 1000, "e": 31, "f": 5}
	for k, want := range ints {
		if got, ok := doc[k].(int64); !ok || got != want {
			t.Errorf("%s = %#v, want int64 %d", k, doc[k], want)
		}
	}
	floats := map[string]float64{"g": 3.25, "h": -0.5, "i": 1000, "j": 0.0602}
	for k, want := range floats {
		if got, ok := doc[k].(float64); !ok || math.Abs(got-want) > 1e-12 {
			t.Errorf("%s = %#v, want float64 %v", k, doc[k], want)
		}
	}
	if !math.IsInf(doc["k"].(float64), 1) || !math.IsInf(doc["l"].(float64), -1) {
		t.Error("infinities not parsed")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		frag  string
	}{
		{"duplicate key", "a = 1\na = 2", "duplicate key a"},
		{"table twice", "[t]\n[t]", "defined twice"},
		{"missing equals", "a 1", "expected '='"},
		{"two values on a line", "a = 1 b = 2", "end of line"},
		{"unterminated string", `a = "abc`, "unterminated"},
		{"leading zero", "a = 012", "leading zero"},
		{"bad escape", `a = "\q"`, "escape"},
		{"value redefined as table", "a = 1\n[a]", "already a value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not a SyntaxError", err)
			}
			if se.Pos.Line < 1 {
				t.Errorf("position not set: %v", se.Pos)
			}
			if !strings.Contains(err.Error(), tt.frag) {
				t.Errorf("error %q does not mention %q", err, tt.frag)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse([]byte("ok = 1\n\nbad = @"))
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want SyntaxError", err)
	}
	if se.Pos.Line != 3 || se.Pos.Col != 7 {
		t.Errorf("position = %s, want 3:7", se.Pos)
	}
}

func TestParse_DottedKeysAndMultilineArrays(t *testing.T) {
	doc, err := Parse([]byte(`
wind.force = 0.9
wind.direction = [
  0.25,
  0,
  1.3,
]
`))
	if err != nil {
		t.Fatal(err)
	}
	wind, ok := doc["wind"].(Table)
	if !ok {
		t.Fatalf("wind = %T, want table", doc["wind"])
	}
	if wind["force"] != 0.9 {
		t.Errorf("force = %v", wind["force"])
	}
	if dir, _ := wind["direction"].([]any); len(dir) != 3 {
		t.Errorf("direction = %v", wind["direction"])
	}
}

func TestDecode_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Table
		path string
	}{
		{"string into int", Table{"n": "x"}, "n"},
		{"float into int", Table{"n": 1.5}, "n"},
		{"overflow", Table{"small": int64(300)}, "small"},
		{"negative into uint", Table{"u": int64(-1)}, "u"},
		{"scalar into struct", Table{"sub": int64(1)}, "sub"},
		{"nested", Table{"sub": Table{"flag": "yes"}}, "sub.flag"},
	}
	type target struct {
		N     int  `toml:"n"`
		Small int8 `toml:"small"`
		U     uint `toml:"u"`
		Sub   struct {
			Flag bool `toml:"flag"`
		} `toml:"sub"`
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v target
			err := Decode(tt.doc, &v)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err = %v, want DecodeError", err)
			}
			if de.Path != tt.path {
				t.Errorf("path = %q, want %q", de.Path, tt.path)
			}
		})
	}
}

func TestDecode_IntIntoFloatAndIgnoredField(t *testing.T) {
	var v struct {
		F       float64 `toml:"f"`
		Skipped int     `toml:"-"`
		Name    string
	}
	if err := Decode(Table{"f": int64(-10), "Skipped": int64(5), "Name": "n"}, &v); err != nil {
		t.Fatal(err)
	}
	if v.F != -10 || v.Skipped != 0 || v.Name != "n" {
		t.Errorf("decoded %+v", v)
	}
}

func TestDecode_TargetValidation(t *testing.T) {
	var v struct{}
	if err := Decode(Table{}, v); err == nil {
		t.Error("non-pointer target accepted")
	}
	var nilPtr *struct{}
	if err := Decode(Table{}, nilPtr); err == nil {
		t.Error("nil pointer target accepted")
	}
}

func TestMarshal_RoundTripsThroughParser(t *testing.T) {
	type Object struct {
		Kind   string    `toml:"kind"`
		Radius *float64  `toml:"radius"`
		Pos    []float64 `toml:"position"`
	}
	type Doc struct {
		Name    string `toml:"name"`
		Note    string `toml:"note,omitempty"`
		Section struct {
			Grid    int      `toml:"grid_size"`
			Gravity float64  `toml:"gravity"`
			Mass    *float64 `toml:"mass"`
			Flag    bool     `toml:"flag"`
		} `toml:"cloth"`
		Objects []Object `toml:"object"`
	}

	r := 0.45
	var in Doc
	in.Name = `say "hi"`
	in.Section.Grid = 32
	in.Section.Gravity = -10
	in.Section.Flag = true
	in.Objects = []Object{
		{Kind: "sphere", Radius: &r, Pos: []float64{0, -0.6, 0}},
		{Kind: "box", Pos: []float64{0.8, -1, 0}},
	}

	out, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	text := string(out)
	if strings.Contains(text, "note") || strings.Contains(text, "mass") {
		t.Errorf("omitted fields written:\n%s", text)
	}
	if !strings.Contains(text, "gravity = -10.0") {
		t.Errorf("whole float not written as float:\n%s", text)
	}
	if strings.Count(text, "[[object]]") != 2 {
		t.Errorf("array of tables not written:\n%s", text)
	}

	var back Doc
	if err := Unmarshal(out, &back); err != nil {
		t.Fatalf("re-parse failed: %v\n%s", err, text)
	}
	if back.Name != in.Name || back.Section.Grid != 32 || back.Section.Gravity != -10 || !back.Section.Flag {
		t.Errorf("round trip lost scalars: %+v", back)
	}
	if len(back.Objects) != 2 || back.Objects[0].Radius == nil || *back.Objects[0].Radius != r || back.Objects[1].Radius != nil {
		t.Errorf("round trip lost objects: %+v", back.Objects)
	}
}

func TestMarshal_RejectsNonStruct(t *testing.T) {
	if _, err := Marshal(map[string]int{"a": 1}); err == nil {
		t.Error("map root accepted")
	}
	var nilDoc *struct{}
	if _, err := Marshal(nilDoc); err == nil {
		t.Error("nil root accepted")
	}
}
