package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chazu/voxl/pkg/analyze"
	"github.com/chazu/voxl/pkg/colormap"
	"github.com/chazu/voxl/pkg/export"
	"github.com/chazu/voxl/pkg/mesh"
	"github.com/chazu/voxl/pkg/primitive"
	"github.com/chazu/voxl/pkg/session"
	"github.com/chazu/voxl/pkg/voxel"
)

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "voxl",
		Short:         "Voxelize STL meshes and analyze the resulting occupancy grids",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(os.Stderr)
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			if configPath != "" {
				// Flags win over the config file: file values apply
				// only where the user did not pass a flag.
				fileCfg := defaultConfig()
				if err := loadConfig(configPath, &fileCfg); err != nil {
					return err
				}
				f := cmd.Flags()
				if !f.Changed("resolution") {
					cfg.Resolution = fileCfg.Resolution
				}
				if !f.Changed("mode") {
					cfg.Mode = fileCfg.Mode
				}
				if !f.Changed("workers") {
					cfg.Workers = fileCfg.Workers
				}
				if !f.Changed("strategy") {
					cfg.Strategy = fileCfg.Strategy
				}
				if !f.Changed("colormap") {
					cfg.Colormap = fileCfg.Colormap
				}
				if !f.Changed("seed") {
					cfg.Seed = fileCfg.Seed
				}
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file with default settings")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInfoCmd())
	root.AddCommand(newVoxelizeCmd(&cfg))
	root.AddCommand(newSliceCmd(&cfg))
	root.AddCommand(newColorsCmd(&cfg))
	root.AddCommand(newGenCmd())
	return root
}

// loadModel reads and decodes an STL file.
func loadModel(path string) (*mesh.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := mesh.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// buildGrid is the shared voxelization path of the grid-consuming
// commands: load the mesh into a session and run one build, honoring the
// optional timeout.
func buildGrid(path string, cfg *config, timeout time.Duration) (*session.Session, *voxel.Grid, error) {
	m, err := loadModel(path)
	if err != nil {
		return nil, nil, err
	}
	mode, err := voxel.ParseFillMode(cfg.Mode)
	if err != nil {
		return nil, nil, err
	}

	s := session.New()
	s.Voxelizer.Workers = cfg.Workers
	s.SetMesh(m)

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.WithFields(log.Fields{
		"file":       path,
		"resolution": cfg.Resolution,
		"mode":       mode,
	}).Debug("voxelizing")
	start := time.Now()
	g, err := s.Voxelize(ctx, cfg.Resolution, mode)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("elapsed", time.Since(start)).Debug("voxelization done")
	return s, g, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.stl>",
		Short: "Print mesh statistics and bounding box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			st := analyze.MeshStatistics(m)
			fmt.Printf("Vertices:     %d\n", st.Vertices)
			fmt.Printf("Triangles:    %d\n", st.Triangles)
			fmt.Printf("Volume:       %.4f\n", st.Volume)
			fmt.Printf("Surface area: %.4f\n", st.SurfaceArea)
			fmt.Printf("Bounding box:\n")
			fmt.Printf("  X: [%.2f, %.2f]\n", st.Min.X, st.Max.X)
			fmt.Printf("  Y: [%.2f, %.2f]\n", st.Min.Y, st.Max.Y)
			fmt.Printf("  Z: [%.2f, %.2f]\n", st.Min.Z, st.Max.Z)
			return nil
		},
	}
}

func newVoxelizeCmd(cfg *config) *cobra.Command {
	var npyPath, csvPath string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "voxelize <file.stl>",
		Short: "Build an occupancy grid and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := buildGrid(args[0], cfg, timeout)
			if err != nil {
				return err
			}
			st := analyze.GridStatistics(g)
			fmt.Printf("Grid size:     %d x %d x %d\n", st.Resolution, st.Resolution, st.Resolution)
			fmt.Printf("Filled voxels: %d\n", st.FilledCells)
			fmt.Printf("Total voxels:  %d\n", st.TotalCells)
			fmt.Printf("Fill ratio:    %.4f\n", st.FillRatio)
			fmt.Printf("Voxel pitch:   %.4f\n", st.Pitch)

			if npyPath != "" {
				if err := writeFile(npyPath, func(w io.Writer) error {
					return export.WriteNPY(w, g)
				}); err != nil {
					return err
				}
				log.WithField("file", npyPath).Info("wrote voxel array")
			}
			if csvPath != "" {
				coords := export.FilledCoordinates(g)
				if err := writeFile(csvPath, func(w io.Writer) error {
					return export.WriteCoordinateCSV(w, coords)
				}); err != nil {
					return err
				}
				log.WithField("file", csvPath).Info("wrote voxel coordinates")
			}
			return nil
		},
	}
	addGridFlags(cmd, cfg)
	cmd.Flags().StringVar(&npyPath, "npy", "", "write the occupancy grid as a NumPy .npy file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write filled-cell coordinates as CSV")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abandon the build after this duration (0 = no limit)")
	return cmd
}

func newSliceCmd(cfg *config) *cobra.Command {
	var axisName string
	var index int
	var pngPath string

	cmd := &cobra.Command{
		Use:   "slice <file.stl>",
		Short: "Extract a 2D occupancy slice and write it as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := voxel.ParseAxis(axisName)
			if err != nil {
				return err
			}
			_, g, err := buildGrid(args[0], cfg, 0)
			if err != nil {
				return err
			}
			if index < 0 {
				index = g.Resolution() / 2
			}
			sl, err := analyze.ExtractSlice(g, axis, index)
			if err != nil {
				return err
			}
			if pngPath == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				pngPath = fmt.Sprintf("%s_%s%d.png", base, strings.ToLower(axis.String()), index)
			}
			if err := writeFile(pngPath, func(w io.Writer) error {
				return export.WriteSlicePNG(w, sl)
			}); err != nil {
				return err
			}
			fmt.Printf("Slice %s=%d: %d of %d cells filled -> %s\n",
				sl.Axis(), sl.Index(), sl.FilledCount(), sl.Side()*sl.Side(), pngPath)
			return nil
		},
	}
	addGridFlags(cmd, cfg)
	cmd.Flags().StringVar(&axisName, "axis", "z", "slice axis (x, y or z)")
	cmd.Flags().IntVar(&index, "index", -1, "slice index (-1 = middle)")
	cmd.Flags().StringVar(&pngPath, "png", "", "output PNG path (default derived from input)")
	return cmd
}

func newColorsCmd(cfg *config) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "colors <file.stl>",
		Short: "Assign per-voxel colors and write the renderer feed as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := colormap.ParseStrategy(cfg.Strategy, cfg.Seed)
			if err != nil {
				return err
			}
			cm, err := colormap.Parse(cfg.Colormap)
			if err != nil {
				return err
			}
			_, g, err := buildGrid(args[0], cfg, 0)
			if err != nil {
				return err
			}
			asg := colormap.Assign(g, strategy, cm)
			if csvPath == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				csvPath = base + "_colors.csv"
			}
			if err := writeFile(csvPath, func(w io.Writer) error {
				return export.WriteColorCSV(w, g, asg)
			}); err != nil {
				return err
			}
			fmt.Printf("Colored %d voxels (%s, %s) -> %s\n", len(asg), strategy, cm, csvPath)
			return nil
		},
	}
	addGridFlags(cmd, cfg)
	cmd.Flags().StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "color strategy: x, y, z, distance, radial or random")
	cmd.Flags().StringVar(&cfg.Colormap, "colormap", cfg.Colormap, "colormap name")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the random strategy")
	return cmd
}

func newGenCmd() *cobra.Command {
	var size, radius, height float64
	var out string

	cmd := &cobra.Command{
		Use:       "gen box|sphere|cylinder",
		Short:     "Generate a sample STL mesh from an analytic solid",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"box", "sphere", "cylinder"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var m *mesh.Model
			var err error
			switch args[0] {
			case "box":
				m, err = primitive.Box(size, size, size)
			case "sphere":
				m, err = primitive.Sphere(radius)
			case "cylinder":
				m, err = primitive.Cylinder(height, radius)
			default:
				return fmt.Errorf("unknown shape %q: want box, sphere or cylinder", args[0])
			}
			if err != nil {
				return err
			}
			if out == "" {
				out = args[0] + ".stl"
			}
			if err := writeFile(out, m.EncodeSTL); err != nil {
				return err
			}
			fmt.Printf("Wrote %s: %d vertices, %d triangles\n", out, m.VertexCount(), m.TriangleCount())
			return nil
		},
	}
	cmd.Flags().Float64Var(&size, "size", 10, "box edge length")
	cmd.Flags().Float64Var(&radius, "radius", 5, "sphere/cylinder radius")
	cmd.Flags().Float64Var(&height, "height", 10, "cylinder height")
	cmd.Flags().StringVar(&out, "out", "", "output STL path (default <shape>.stl)")
	return cmd
}

// addGridFlags registers the flags shared by every grid-building command,
// bound directly to the config so file values act as flag defaults.
func addGridFlags(cmd *cobra.Command, cfg *config) {
	cmd.Flags().IntVarP(&cfg.Resolution, "resolution", "r", cfg.Resolution,
		fmt.Sprintf("grid resolution, %d-%d", voxel.MinResolution, voxel.MaxResolution))
	cmd.Flags().StringVar(&cfg.Mode, "mode", cfg.Mode, "fill mode: solid or surface")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "voxelization worker count (0 = GOMAXPROCS)")
}

// writeFile creates path and hands it to fn, reporting the first error.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
