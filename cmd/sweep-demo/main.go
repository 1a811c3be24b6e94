package main

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
	"github.com/battlemap/perception/perception/sweep"
	"github.com/battlemap/perception/perception/world"
)

func main() {

	scene := world.NewScene(vector.MakeRect(
		vector.MakeVector2(0, 0),
		vector.MakeVector2(400, 400),
	), 0)

	scene.AddEdge(edge.MakeWall(vector.MakeVector2(20, 20), vector.MakeVector2(20, 120)))
	scene.AddEdge(edge.MakeWall(vector.MakeVector2(20, 20), vector.MakeVector2(100, 20)))
	scene.AddEdge(edge.MakeWall(vector.MakeVector2(100, 20), vector.MakeVector2(150, 100)))
	scene.AddEdge(edge.MakeWall(vector.MakeVector2(150, 100), vector.MakeVector2(50, 100)))

	origin := vector.MakeVector2(300, 300)

	begin := time.Now()
	visibility := sweep.Compute(origin, sweep.Config{
		Channel: edge.ChannelSight,
		Radius:  350,
	}, scene)
	fmt.Println("Took ", float64(time.Now().UnixNano()-begin.UnixNano())/1000000.0, "ms")

	spew.Dump(visibility.Points())
}
