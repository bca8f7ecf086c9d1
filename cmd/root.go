package cmd

import (
	"bufio"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pdfview/viewer"
	"pdfview/viewer/document"
	"pdfview/watch"
)

var (
	themeName      string
	fgHex, bgHex   string
	startPage      int
	zoomLevel      float64
	viewportWidth  int
	viewportHeight int
	pixelRatio     float64
	outDir         string
	watchFile      bool
	once           bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfview <input.pdf>",
	Short: "View PDFs with themed recoloring and live reload",
	Long: `A headless PDF viewer: renders pages to PNG frames, applies
theme-based or custom color transforms, and reloads the document live when
it changes on disk.

Interactive commands (type at the prompt):
  n / p        next / previous page
  g <page>     jump to a page
  + / -        zoom in / out
  0            reset zoom
  = <value>    set an absolute zoom level
  f            fit page height to the viewport
  w <frac>     fit page width to a fraction of the viewport
  t <theme>    switch theme (light, dark, sepia, custom)
  c <fg> <bg>  set custom colors (hex), e.g. c #112233 #aabbcc
  r            reload from disk
  q            quit`,
	Args: cobra.ExactArgs(1),
}

// rootRunE is assigned to rootCmd.RunE in init to avoid an initialization
// cycle (rootCmd -> runInteractive -> prompt -> rootCmd.Long).
func rootRunE(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if once {
		return renderOnce(inputFile)
	}
	return runInteractive(inputFile)
}

// renderOnce renders a single frame synchronously and exits.
func renderOnce(inputFile string) error {
	v := newViewer()
	if _, err := v.Open(inputFile); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	defer v.Close()

	applyStartupState(func(cmd viewer.Command) {
		applyDirect(v, cmd)
	})
	if startPage > 1 {
		v.GoToPage(startPage)
	}
	if zoomLevel <= 0 {
		v.FitHeight()
	}

	frame, err := v.RenderCurrent()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	sink := &pngSink{dir: outDir}
	sink.DisplayFrame(frame)
	return nil
}

// runInteractive starts the command loop, the optional file watcher, and a
// stdin prompt acting as the menu/color-picker stand-in.
func runInteractive(inputFile string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := newViewer()
	loop := viewer.NewLoop(v, &pngSink{dir: outDir}, consoleReporter{})
	go loop.Run(ctx)

	loop.Commands() <- viewer.OpenDocument{Path: inputFile}
	applyStartupState(func(cmd viewer.Command) {
		loop.Commands() <- cmd
	})
	if startPage > 1 {
		loop.Commands() <- viewer.GoToPage{Page: startPage}
	}

	if watchFile {
		w, err := watch.New(inputFile)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		go w.Run(ctx, loop.Commands())
		fmt.Printf("Watching %s for changes...\n", inputFile)
	}

	fmt.Printf("Viewing %s (frames in %s). Type 'q' to quit, '?' for help.\n", inputFile, outDir)
	prompt(loop)
	return nil
}

// applyStartupState translates the startup flags into commands.
func applyStartupState(post func(viewer.Command)) {
	if fgHex != "" || bgHex != "" {
		post(viewer.SetCustomColors{Foreground: fgHex, Background: bgHex})
	} else if themeName != "" {
		post(viewer.SetTheme{Name: themeName})
	}
	if zoomLevel > 0 {
		post(viewer.SetZoom{Value: zoomLevel})
	}
}

// applyDirect executes a command against the viewer synchronously, for the
// one-shot path that has no loop.
func applyDirect(v *viewer.Viewer, cmd viewer.Command) {
	switch c := cmd.(type) {
	case viewer.SetTheme:
		v.SetTheme(c.Name)
	case viewer.SetCustomColors:
		v.SetCustomColors(c.Foreground, c.Background)
	case viewer.SetZoom:
		v.SetZoom(c.Value)
	}
}

func newViewer() *viewer.Viewer {
	return viewer.New(document.FitzOpener{}, viewer.Config{
		ViewportWidth:    viewportWidth,
		ViewportHeight:   viewportHeight,
		DevicePixelRatio: pixelRatio,
	})
}

// prompt reads lines from stdin and maps them to commands until EOF or "q".
func prompt(loop *viewer.Loop) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}

		switch fields[0] {
		case "q", "quit":
			return
		case "?", "h", "help":
			fmt.Println(rootCmd.Long)
		case "n", "next":
			loop.Commands() <- viewer.NextPage{}
		case "p", "prev":
			loop.Commands() <- viewer.PreviousPage{}
		case "g", "goto":
			if n, err := strconv.Atoi(arg); err == nil {
				loop.Commands() <- viewer.GoToPage{Page: n}
			} else {
				fmt.Println("usage: g <page>")
			}
		case "+", "zi":
			loop.Commands() <- viewer.ZoomIn{}
		case "-", "zo":
			loop.Commands() <- viewer.ZoomOut{}
		case "0":
			loop.Commands() <- viewer.ZoomReset{}
		case "=", "zoom":
			if z, err := strconv.ParseFloat(arg, 64); err == nil {
				loop.Commands() <- viewer.SetZoom{Value: z}
			} else {
				fmt.Println("usage: = <value>")
			}
		case "f", "fit":
			loop.Commands() <- viewer.FitHeight{}
		case "w", "width":
			frac := 1.0
			if arg != "" {
				if f, err := strconv.ParseFloat(arg, 64); err == nil {
					frac = f
				}
			}
			loop.Commands() <- viewer.FitWidthFraction{Fraction: frac}
		case "t", "theme":
			loop.Commands() <- viewer.SetTheme{Name: arg}
		case "c", "colors":
			if len(fields) < 3 {
				fmt.Println("usage: c <fg-hex> <bg-hex>")
				continue
			}
			loop.Commands() <- viewer.SetCustomColors{Foreground: fields[1], Background: fields[2]}
		case "r", "reload":
			loop.Commands() <- viewer.FileChanged{}
		default:
			fmt.Printf("unknown command: %s (try '?')\n", fields[0])
		}
	}
}

// pngSink writes each frame as a PNG named after its page.
type pngSink struct {
	dir string
}

func (s *pngSink) DisplayFrame(frame viewer.Frame) {
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%03d.png", frame.Page))
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "write frame: %v\n", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, frame.Image); err != nil {
		fmt.Fprintf(os.Stderr, "encode frame: %v\n", err)
		return
	}
	fmt.Printf("page %d/%d -> %s\n", frame.Page, frame.PageCount, path)
}

// consoleReporter surfaces load failures; the previous document stays shown.
type consoleReporter struct{}

func (consoleReporter) LoadFailed(path string, err error) {
	fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
}

func init() {
	rootCmd.RunE = rootRunE
	rootCmd.Flags().StringVarP(&themeName, "theme", "t", "", "Theme: light, dark, sepia, custom")
	rootCmd.Flags().StringVar(&fgHex, "fg", "", "Custom foreground color (hex); implies custom theme")
	rootCmd.Flags().StringVar(&bgHex, "bg", "", "Custom background color (hex); implies custom theme")
	rootCmd.Flags().IntVarP(&startPage, "page", "p", 1, "Initial page")
	rootCmd.Flags().Float64VarP(&zoomLevel, "zoom", "z", 0, "Initial zoom level (0 = fit height)")
	rootCmd.Flags().IntVar(&viewportWidth, "viewport-width", 1280, "Logical viewport width in px")
	rootCmd.Flags().IntVar(&viewportHeight, "viewport-height", 800, "Logical viewport height in px")
	rootCmd.Flags().Float64Var(&pixelRatio, "pixel-ratio", 1.0, "Device pixel ratio of the target display")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "frames", "Directory for rendered PNG frames")
	rootCmd.Flags().BoolVarP(&watchFile, "watch", "W", false, "Reload when the file changes on disk")
	rootCmd.Flags().BoolVar(&once, "once", false, "Render a single frame and exit")
}

// SetVersionInfo wires build-time version metadata into the root command.
func SetVersionInfo(version, buildTime, gitCommit string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", version, buildTime, gitCommit)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
