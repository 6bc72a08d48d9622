package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"SketchBoard/internal/config"
	"SketchBoard/internal/engine"
	"SketchBoard/internal/export"
	"SketchBoard/internal/logging"
	pen "SketchBoard/internal/net"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
	"SketchBoard/internal/ui"
)

var (
	configPath string
	logLevel   string
	bridgeAddr string
	noBridge   bool

	snapWidth  float32
	snapHeight float32
	snapScale  float32

	browseFor time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to the settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides the settings file)")
	rootCmd.Flags().StringVar(&bridgeAddr, "bridge-addr", "", "listen address of the pen bridge (overrides the settings file)")
	rootCmd.Flags().BoolVar(&noBridge, "no-bridge", false, "do not start the pen bridge")

	snapshotCmd.Flags().Float32Var(&snapWidth, "width", 800, "logical width of the board")
	snapshotCmd.Flags().Float32Var(&snapHeight, "height", 600, "logical height of the board")
	snapshotCmd.Flags().Float32Var(&snapScale, "scale", 0, "pixel scale (defaults to the settings file)")
	discoverCmd.Flags().DurationVar(&browseFor, "timeout", 2*time.Second, "how long to listen for boards")

	rootCmd.AddCommand(snapshotCmd, discoverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "sketchboard",
	Short:        "Pan/zoom drawing board with a LAN pen bridge",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := load()
		if err != nil {
			return err
		}
		return runBoard(cfg)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <out.png|out.pdf>",
	Short: "Render an empty board to PNG or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := load()
		if err != nil {
			return err
		}
		if _, err := export.FormatOf(args[0]); err != nil {
			return err
		}
		r, err := newRenderer(cfg)
		if err != nil {
			return err
		}
		defer r.Close()

		scale := snapScale
		if scale <= 0 {
			scale = cfg.Export.Scale
		}
		scene := state.NewScene(state.WithUndoOrder(state.UndoOrder(cfg.Board.UndoOrder)))
		png, err := export.Snapshot(r, render.Frame{Scene: scene, Viewport: state.NewViewport()}, snapWidth, snapHeight, scale)
		if err != nil {
			return err
		}
		return export.WriteFile(args[0], png, snapWidth, snapHeight)
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List boards advertising a pen bridge on the LAN",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := load(); err != nil {
			return err
		}
		boards, err := pen.Browse(browseFor)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(boards) == 0 {
			fmt.Fprintln(out, "no boards found")
			return nil
		}
		for _, b := range boards {
			fmt.Fprintf(out, "%s\tws://%s%s\n", b.Instance, b.Addr, pen.PenPath)
		}
		return nil
	},
}

// load reads the settings file, applies flag overrides and installs the
// logger.
func load() (*config.Config, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	l := logging.Setup(os.Stderr, level)
	gg.SetLogger(l.With("component", "gg"))
	return cfg, nil
}

func newRenderer(cfg *config.Config) (*render.Renderer, error) {
	return render.New(
		render.WithProfiles(cfg.BrushTable()),
		render.WithBackground(render.ParseColor(cfg.Board.Background)),
	)
}

func runBoard(cfg *config.Config) error {
	log := logging.For("main")
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	scene := state.NewScene(state.WithUndoOrder(state.UndoOrder(cfg.Board.UndoOrder)))
	eng := engine.New(scene,
		engine.WithRenderer(r),
		engine.WithTool(engine.Tool(cfg.Board.Tool)),
		engine.WithColor(cfg.Board.Color),
		engine.WithWidth(cfg.Board.Width),
		engine.WithBrush(state.BrushProfile(cfg.Board.Brush)),
	)

	a := app.New()
	board := ui.NewWindow(a, eng, r, ui.Options{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		ExportScale: cfg.Export.Scale,
	})

	if cfg.Bridge.Enabled && !noBridge {
		if bridgeAddr != "" {
			cfg.Bridge.Addr = bridgeAddr
		}
		stop, err := startBridge(cfg.Bridge, eng, log)
		if err != nil {
			// The board is still usable with a mouse.
			log.Error("pen bridge unavailable", "err", err)
		} else {
			defer stop()
		}
	}

	board.Window.ShowAndRun()
	return nil
}

// startBridge serves the pen endpoint and, if asked, advertises it. Events
// are funnelled onto the UI goroutine with fyne.Do.
func startBridge(bc config.BridgeConfig, eng *engine.Engine, log *slog.Logger) (func(), error) {
	bridge := pen.NewBridge(func(ev engine.Event) {
		if err := eng.Handle(ev); err != nil {
			log.Warn("pen event dropped", "type", ev.Type, "err", err)
		}
	}, fyne.Do)

	addr, err := bridge.Start(bc.Addr)
	if err != nil {
		return nil, err
	}
	port := addr.(*net.TCPAddr).Port
	if ip, err := pen.OutgoingIP(); err == nil {
		log.Info("pen bridge ready", "url", pen.PenURL(ip, port))
	} else {
		log.Warn("no LAN address for the pen bridge", "err", err)
	}

	var stopAdvert func() error
	if bc.Advertise {
		instance := bc.Instance
		if instance == "" {
			instance, _ = os.Hostname()
		}
		server, err := pen.Advertise(instance, port)
		if err != nil {
			log.Warn("mDNS advertisement failed", "err", err)
		} else {
			log.Info("advertising pen bridge", "service", pen.ServiceType, "instance", instance)
			stopAdvert = server.Shutdown
		}
	}

	return func() {
		if stopAdvert != nil {
			if err := stopAdvert(); err != nil {
				log.Debug("mDNS shutdown", "err", err)
			}
		}
		if err := bridge.Close(); err != nil {
			log.Debug("bridge close", "err", err)
		}
	}, nil
}
