package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/ironsheep/image-autocrop/internal/config"
	"github.com/ironsheep/image-autocrop/internal/imaging"
	"github.com/ironsheep/image-autocrop/internal/logging"
	"github.com/ironsheep/image-autocrop/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "autocrop %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		}
	}

	args, configPath, mcp, err := splitFlags(args)
	if err != nil {
		printUsage(stderr)
		return 1
	}

	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logging.Sync(logger)

	if mcp {
		logger.Info("starting MCP server",
			zap.String("version", Version),
			zap.String("build_time", BuildTime),
			zap.String("commit", GitCommit))
		if err := server.New(cfg, logger).Run(); err != nil {
			logger.Error("server error", zap.Error(err))
			return 1
		}
		return 0
	}

	req, err := parseCropArgs(args, cfg)
	if errors.Is(err, errUsage) {
		printUsage(stderr)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	res, err := imaging.CropFile(imaging.NewImageCache(), req)
	if err != nil {
		logger.Debug("crop failed", zap.String("input", req.Input), zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.Debug("crop finished",
		zap.String("mode", res.Mode),
		zap.Stringer("box", res.Box),
		zap.Bool("written", res.Written))

	if !res.ContentFound {
		fmt.Fprintln(stdout, "No content found in image!")
		if res.Written {
			fmt.Fprintf(stdout, "Saved to: %s\n", res.Output)
		}
		return 0
	}

	fmt.Fprintf(stdout, "Image cropped from %dx%d to %dx%d\n",
		res.OriginalWidth, res.OriginalHeight, res.Width, res.Height)
	fmt.Fprintf(stdout, "Saved to: %s\n", res.Output)
	return 0
}

// splitFlags removes --mcp and --config <path> from args.
func splitFlags(args []string) (rest []string, configPath string, mcp bool, err error) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--mcp":
			mcp = true
		case "--config":
			if i+1 >= len(args) {
				return nil, "", false, errUsage
			}
			i++
			configPath = args[i]
		default:
			rest = append(rest, args[i])
		}
	}
	return rest, configPath, mcp, nil
}

// parseCropArgs maps "input_path [output_path] [padding] [tolerance]" onto a
// CropRequest. An empty output_path keeps the default output name.
func parseCropArgs(args []string, cfg *config.Config) (imaging.CropRequest, error) {
	if len(args) < 1 || len(args) > 4 || args[0] == "" {
		return imaging.CropRequest{}, errUsage
	}

	opts, err := cfg.Crop.Options()
	if err != nil {
		return imaging.CropRequest{}, err
	}

	req := imaging.CropRequest{
		Input:          args[0],
		Suffix:         cfg.Output.Suffix,
		WriteUncropped: cfg.Output.WriteUncropped,
	}
	if len(args) > 1 {
		req.Output = args[1]
	}
	if len(args) > 2 {
		if opts.Padding, err = parseNonNegative(args[2]); err != nil {
			return imaging.CropRequest{}, err
		}
	}
	if len(args) > 3 {
		if opts.Tolerance, err = parseNonNegative(args[3]); err != nil {
			return imaging.CropRequest{}, err
		}
	}
	req.Options = opts
	return req, nil
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errUsage
	}
	return n, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: autocrop input_image [output_image] [padding] [tolerance]")
	fmt.Fprintln(w, "Example: autocrop image.png cropped.png 5 10")
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "autocrop - crop images to their content")
	fmt.Fprintln(w)
	printUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images with transparency are cropped to their non-transparent pixels.")
	fmt.Fprintln(w, "Other images are cropped to pixels that differ from the background color")
	fmt.Fprintln(w, "by more than tolerance (sum of RGB differences); the background is the")
	fmt.Fprintln(w, "most common of the four corner colors.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --config <file>  YAML configuration file")
	fmt.Fprintln(w, "  --mcp            Serve MCP tools over stdin/stdout")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from .env):")
	fmt.Fprintln(w, "  AUTOCROP_CONFIG                  Configuration file path")
	fmt.Fprintln(w, "  AUTOCROP_CROP_PADDING            Default padding (0)")
	fmt.Fprintln(w, "  AUTOCROP_CROP_TOLERANCE          Default tolerance (0)")
	fmt.Fprintln(w, "  AUTOCROP_CROP_BACKGROUND         Force background color, e.g. #FFFFFF")
	fmt.Fprintln(w, "  AUTOCROP_OUTPUT_SUFFIX           Default output suffix (_cropped)")
	fmt.Fprintln(w, "  AUTOCROP_OUTPUT_WRITE_UNCROPPED  Write the original when no content is found")
	fmt.Fprintln(w, "  AUTOCROP_LOG_MODE                release (JSON) or debug (console)")
	fmt.Fprintln(w, "  AUTOCROP_LOG_LEVEL               debug, info, warn or error")
}
