// meshtool generates and inspects triangle mesh snapshots.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/config"
	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/geometry"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/meshdata"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := meshdata.Options{
		Tolerance: cfg.Mesh.Tolerance,
		Logger:    logger.Named("meshdata"),
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "cube":
		err = cmdCube(cfg, opts)
	case "solid":
		err = cmdSolid(cfg, opts)
	case "info":
		err = cmdInfo(args, opts)
	case "edges":
		err = cmdEdges(args, opts)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - triangle mesh generator and inspector

Usage:
  meshtool [flags] <command> [args]

Commands:
  cube                Write the unit color cube
  solid               Tessellate a box, sphere or cylinder
  info <file>         Show snapshot summary
  edges <file>        List unique edges
  help                Show this message

Flags:
  -config <path>      Config file (default ./meshtool.yaml)
  -debug              Enable debug logging
  -tolerance <t>      Vertex deduplication tolerance
  -solid <kind>       Solid kind: box, sphere or cylinder
  -cells <n>          Marching cubes resolution
  -out <path>         Snapshot output path
  -log-file <path>    Also write logs to a rotating file

Examples:
  meshtool -out cube.msgpack cube
  meshtool -solid cylinder -cells 32 solid
  meshtool info mesh.msgpack`)
}

func cmdCube(cfg *config.Config, opts meshdata.Options) error {
	m, err := geometry.CubeMesh(opts)
	if err != nil {
		return err
	}
	return writeMesh(m, cfg.Output.Path)
}

func cmdSolid(cfg *config.Config, opts meshdata.Options) error {
	g := cfg.Generator
	s := geometry.Solid{
		Kind:   geometry.Kind(g.Solid),
		Size:   math.Vec3{X: g.Size[0], Y: g.Size[1], Z: g.Size[2]},
		Radius: g.Radius,
		Height: g.Height,
		Round:  g.Round,
	}

	logger.Info("tessellating solid",
		zap.String("solid", g.Solid),
		zap.Int("cells", g.Cells))

	m, err := geometry.SolidMesh(s, g.Cells, opts)
	if err != nil {
		return err
	}
	return writeMesh(m, cfg.Output.Path)
}

func cmdInfo(args []string, opts meshdata.Options) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool info <file>")
	}
	m, err := readMesh(args[0], opts)
	if err != nil {
		return err
	}

	s := m.Summary()
	fmt.Printf("Snapshot: %s\n", args[0])
	fmt.Printf("Layout:   %s\n", s.Layout)
	fmt.Printf("Vertices: %d\n", s.Vertices)
	fmt.Printf("Faces:    %d\n", s.Faces)
	fmt.Printf("Edges:    %d\n", s.Edges)
	fmt.Printf("Colors:   vertex=%t face=%t edge=%t\n", s.HasVertexColor, s.HasFaceColor, s.HasEdgeColor)
	return nil
}

func cmdEdges(args []string, opts meshdata.Options) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool edges <file>")
	}
	m, err := readMesh(args[0], opts)
	if err != nil {
		return err
	}

	edges, err := m.Edges()
	if err != nil {
		return err
	}
	for _, e := range edges {
		fmt.Printf("%d %d\n", e[0], e[1])
	}
	return nil
}

func writeMesh(m *meshdata.Mesh, path string) error {
	blob, err := m.Save()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote mesh",
		zap.String("path", path),
		zap.Int("bytes", len(blob)),
		zap.Object("mesh", m.Summary()))
	return nil
}

func readMesh(path string, opts meshdata.Options) (*meshdata.Mesh, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := meshdata.Load(blob, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}
