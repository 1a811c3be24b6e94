package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/battlemap/perception/common/utils"
	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
	"github.com/battlemap/perception/perception/sweep"
	"github.com/battlemap/perception/perception/world"
)

type wallFile struct {
	ID        string     `json:"id"`
	A         [2]float64 `json:"a"`
	B         [2]float64 `json:"b"`
	Light     string     `json:"light"`
	Sight     string     `json:"sight"`
	Sound     string     `json:"sound"`
	Move      string     `json:"move"`
	Direction string     `json:"direction"`
	Threshold float64    `json:"threshold"`
}

type sceneFile struct {
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Padding float64    `json:"padding"`
	Walls   []wallFile `json:"walls"`
}

func main() {
	app := makeapp()
	app.Run(os.Args)
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "perception"
	app.Description = "Battlemap perception geometry tool"

	app.Commands = []cli.Command{
		{
			Name:  "sweep",
			Usage: "Compute a perception polygon from an origin in a scene",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scene", Value: "", Usage: "Scene JSON file; required"},
				cli.Float64Flag{Name: "x", Value: 0, Usage: "Origin X"},
				cli.Float64Flag{Name: "y", Value: 0, Usage: "Origin Y"},
				cli.StringFlag{Name: "channel", Value: "sight", Usage: "Perception channel (light|sight|sound|move)"},
				cli.Float64Flag{Name: "radius", Value: 0, Usage: "Sweep radius; 0 extends to the scene bounds"},
				cli.Float64Flag{Name: "angle", Value: 360, Usage: "Cone width in degrees"},
				cli.Float64Flag{Name: "rotation", Value: 0, Usage: "Cone center direction in degrees"},
				cli.BoolFlag{Name: "threshold", Usage: "Honor limited-wall thresholds"},
				cli.BoolFlag{Name: "darkness", Usage: "Include darkness edges"},
				cli.IntFlag{Name: "density", Value: 0, Usage: "Arc vertex density; 0 derives it from the radius"},
				cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			},
			Action: func(c *cli.Context) error {
				utils.Assert(c.String("scene") != "", "scene must be set")
				sweepAction(
					c.String("scene"),
					vector.MakeVector2(c.Float64("x"), c.Float64("y")),
					c.String("channel"),
					c.Float64("radius"),
					c.Float64("angle"),
					c.Float64("rotation"),
					c.Bool("threshold"),
					c.Bool("darkness"),
					c.Int("density"),
					c.Bool("debug"),
				)
				return nil
			},
		},
		{
			Name:  "inspect",
			Usage: "Print the edges and cached crossings of a scene",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scene", Value: "", Usage: "Scene JSON file; required"},
			},
			Action: func(c *cli.Context) error {
				utils.Assert(c.String("scene") != "", "scene must be set")
				inspectAction(c.String("scene"))
				return nil
			},
		},
	}

	return app
}

func loadScene(path string) *world.Scene {
	data, err := os.ReadFile(path)
	utils.Check(err, "Could not read scene file "+path)

	var sf sceneFile
	err = json.Unmarshal(data, &sf)
	utils.Check(err, "Could not parse scene file "+path)

	if sf.Width <= 0 || sf.Height <= 0 {
		utils.FailWith(errors.Errorf("scene %s has no canvas dimensions", path))
	}

	scene := world.NewScene(vector.MakeRect(
		vector.MakeVector2(0, 0),
		vector.MakeVector2(sf.Width, sf.Height),
	), sf.Padding)

	for _, w := range sf.Walls {
		e, err := makeWallEdge(w)
		if err != nil {
			utils.FailWith(errors.Wrapf(err, "invalid wall %q", w.ID))
		}

		if err := scene.AddEdge(e); err != nil {
			utils.FailWith(err)
		}
	}

	return scene
}

func makeWallEdge(w wallFile) (edge.Edge, error) {
	cfg := edge.Config{
		ID:        w.ID,
		Type:      edge.TypeWall,
		Threshold: w.Threshold,
	}

	restrictions := []struct {
		value string
		dest  *edge.Restriction
	}{
		{w.Light, &cfg.Light},
		{w.Sight, &cfg.Sight},
		{w.Sound, &cfg.Sound},
		{w.Move, &cfg.Move},
	}

	for _, r := range restrictions {
		if r.value == "" {
			*r.dest = edge.RestrictionNormal
			continue
		}

		parsed, err := edge.ParseRestriction(r.value)
		if err != nil {
			return edge.Edge{}, err
		}
		*r.dest = parsed
	}

	switch w.Direction {
	case "", "both":
		cfg.Direction = edge.DirectionBoth
	case "left":
		cfg.Direction = edge.DirectionLeft
	case "right":
		cfg.Direction = edge.DirectionRight
	default:
		return edge.Edge{}, errors.Errorf("unknown direction %q", w.Direction)
	}

	return edge.MakeEdge(
		vector.MakeVector2(w.A[0], w.A[1]),
		vector.MakeVector2(w.B[0], w.B[1]),
		cfg,
	), nil
}

func sweepAction(scenePath string, origin vector.Vector2, channelName string, radius, angle, rotation float64, useThreshold, includeDarkness bool, density int, isDebug bool) {
	scene := loadScene(scenePath)

	channel, err := edge.ParseChannel(channelName)
	if err != nil {
		utils.FailWith(err)
	}

	if isDebug {
		utils.DebugWith("perception", "computing sweep", utils.Context{
			"scene":   scenePath,
			"channel": channel.String(),
			"origin":  origin.String(),
		})
	}

	polygon := sweep.Compute(origin, sweep.Config{
		Channel:         channel,
		Radius:          radius,
		Angle:           angle,
		Rotation:        rotation,
		UseThreshold:    useThreshold,
		IncludeDarkness: includeDarkness,
		Density:         density,
	}, scene)

	points := make([][2]float64, 0, polygon.Len())
	for _, p := range polygon.Points() {
		points = append(points, [2]float64{p.GetX(), p.GetY()})
	}

	out, err := json.Marshal(struct {
		Complete bool         `json:"complete"`
		Points   [][2]float64 `json:"points"`
	}{
		Complete: polygon.IsCompleteCircle(),
		Points:   points,
	})
	utils.Check(err, "Could not serialize polygon")

	fmt.Println(string(out))
}

func inspectAction(scenePath string) {
	scene := loadScene(scenePath)

	bounds := scene.Bounds()
	fmt.Printf("bounds: %s to %s\n", bounds.Min().String(), bounds.Max().String())

	for _, e := range scene.Edges() {
		fmt.Printf(
			"%s [%s] %s -> %s light=%s sight=%s sound=%s move=%s dir=%s\n",
			e.ID, e.Type.String(), e.A.String(), e.B.String(),
			e.Light.String(), e.Sight.String(), e.Sound.String(), e.Move.String(),
			e.Direction.String(),
		)

		for _, in := range scene.IntersectionsFor(e.ID) {
			other := in.EdgeB
			if other == e.ID {
				other = in.EdgeA
			}
			fmt.Printf("  crosses %s at %s\n", other, in.Point.String())
		}
	}
}
