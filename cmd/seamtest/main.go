package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/ironsheep/seamtest/internal/imaging"
	"github.com/ironsheep/seamtest/internal/seam"
	"github.com/ironsheep/seamtest/internal/server"
	"github.com/ironsheep/seamtest/internal/storage"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// exitSeam is returned when the scan found at least one significant step.
const exitSeam = 2

func envOrDefaultValue[T any](key string, defaultValue T) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case string:
		return any(value).(T)
	case int:
		if intValue, err := strconv.Atoi(value); err == nil {
			return any(intValue).(T)
		}
	case float64:
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return any(floatValue).(T)
		}
	case bool:
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return any(boolValue).(T)
		}
	case time.Duration:
		if durationValue, err := time.ParseDuration(value); err == nil {
			return any(durationValue).(T)
		}
	}

	return defaultValue
}

// outputConfig holds the flags shared by the scan and serve commands.
type outputConfig struct {
	directory string
	bucket    string
	prefix    string
	verbosity int
}

func (o *outputConfig) register(flags *flag.FlagSet) {
	flags.StringVar(&o.directory, "out", envOrDefaultValue("SEAMTEST_OUTPUT_DIR", "."), "Directory receiving the visualisations")
	flags.StringVar(&o.bucket, "bucket", envOrDefaultValue("SEAMTEST_S3_BUCKET", ""), "Write visualisations to this S3 bucket instead of -out")
	flags.StringVar(&o.prefix, "prefix", envOrDefaultValue("SEAMTEST_S3_PREFIX", ""), "Key prefix inside the S3 bucket")
	flags.IntVar(&o.verbosity, "v", defaultVerbosity(), "Log verbosity (1 adds drawer and start-up detail)")
}

func (o *outputConfig) storage(ctx context.Context) (storage.Storage, error) {
	if o.bucket != "" {
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket: o.bucket,
			Prefix: o.prefix,
		})
	}
	return storage.NewFileStorage(ctx, storage.FileConfig{
		Directory: o.directory,
	})
}

func defaultVerbosity() int {
	if os.Getenv("SEAMTEST_LOG_LEVEL") == "debug" {
		return 1
	}
	return envOrDefaultValue("SEAMTEST_VERBOSITY", 0)
}

func newLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.Default())
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version":
			fmt.Printf("seamtest %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Configure logging to stderr (stdout carries results and the MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var code int
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		code = runServe(ctx, os.Args[2:])
	} else {
		code = runCheck(ctx, os.Args[1:])
	}
	stop()
	os.Exit(code)
}

func printUsage() {
	fmt.Println("seamtest - detect visible seams in tileable textures")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  seamtest [options] <image>    Scan an image and write two visualisations")
	fmt.Println("  seamtest serve [options]      Run as an MCP server over stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  Run 'seamtest serve -h', or seamtest without an image, for all flags.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SEAMTEST_LOG_LEVEL=debug      Verbose logging (same as -v 1)")
	fmt.Println("  SEAMTEST_OUTPUT_DIR           Default for -out")
	fmt.Println("  SEAMTEST_S3_BUCKET            Default for -bucket")
	fmt.Println("  SEAMTEST_S3_PREFIX            Default for -prefix")
	fmt.Println("  S3_ENDPOINT_URL               S3 compatible endpoint (MinIO, LocalStack)")
	fmt.Println()
	fmt.Println("Variables are also read from a .env file in the working directory.")
}

func runServe(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	var out outputConfig
	out.register(flags)
	_ = flags.Parse(args)

	logger := newLogger(out.verbosity)
	logger.V(1).Info("Seam MCP server starting", "version", Version, "buildTime", BuildTime, "commit", GitCommit)

	store, err := out.storage(ctx)
	if err != nil {
		logger.Error(err, "Failed to create storage backend")
		return 1
	}

	srv := server.New(store, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err, "Server error")
		return 1
	}
	return 0
}

func runCheck(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("seamtest", flag.ExitOnError)
	var (
		out         outputConfig
		params      seam.Params
		orientation string
		blurRadius  float64
		jsonOutput  bool
	)
	out.register(flags)
	flags.IntVar(&params.SeamOffset, "offset", envOrDefaultValue("SEAMTEST_OFFSET", 0), "Seam position in pixels along the seam normal")
	flags.IntVar(&params.TileSize, "tile", envOrDefaultValue("SEAMTEST_TILE_SIZE", 1), "Side of the square sampling tile in pixels")
	flags.IntVar(&params.StepSize, "step", envOrDefaultValue("SEAMTEST_STEP_SIZE", 1), "Axis length divisor giving the number of steps")
	flags.StringVar(&orientation, "orientation", envOrDefaultValue("SEAMTEST_ORIENTATION", "horizontal"), "Scan axis (horizontal or vertical)")
	flags.BoolVar(&params.Wrap, "wrap", envOrDefaultValue("SEAMTEST_WRAP", false), "Wrap positions outside the image, as when the texture is tiled")
	flags.Float64Var(&blurRadius, "blur", envOrDefaultValue("SEAMTEST_BLUR", 0.0), "Gaussian blur radius applied before scanning")
	flags.StringVar(&params.ColorOutput, "color-out", seam.DefaultColorOutput, "Name of the colour visualisation")
	flags.StringVar(&params.BrightnessOutput, "bright-out", seam.DefaultBrightnessOutput, "Name of the brightness visualisation")
	flags.BoolVar(&jsonOutput, "json", false, "Print the result as JSON, including every step")
	_ = flags.Parse(args)

	logger := newLogger(out.verbosity)

	if flags.NArg() != 1 {
		logger.Error(nil, "Exactly one image path expected", "args", flags.Args())
		flags.Usage()
		return 1
	}
	path := flags.Arg(0)

	o, err := seam.ParseOrientation(orientation)
	if err != nil {
		logger.Error(err, "Invalid orientation")
		return 1
	}
	params.Orientation = o

	store, err := out.storage(ctx)
	if err != nil {
		logger.Error(err, "Failed to create storage backend")
		return 1
	}

	cache := imaging.NewImageCache()
	info, err := imaging.LoadImageInfo(cache, path)
	if err != nil {
		logger.Error(err, "Failed to load image", "path", path)
		return 1
	}
	logger.Info("Image loaded", "path", path, "width", info.Width, "height", info.Height,
		"format", info.Format, "hasAlpha", info.HasAlpha)

	img, err := cache.LoadPrepared(path, blurRadius)
	if err != nil {
		logger.Error(err, "Failed to prepare image", "path", path)
		return 1
	}

	checker := seam.NewChecker(img, store, logger.WithValues("path", path))
	res, err := checker.CheckOffset(ctx, params)
	if res == nil {
		logger.Error(err, "Seam check failed")
		return 1
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			logger.Error(encErr, "Failed to encode result")
			return 1
		}
	} else {
		printSummary(res)
	}

	if err != nil {
		logger.Error(err, "Seam check incomplete")
		return 1
	}
	if res.SeamDetected() {
		return exitSeam
	}
	return 0
}

func printSummary(res *seam.Result) {
	fmt.Printf("Steps:                  %d\n", res.TotalSteps)
	fmt.Printf("Significant colour:     %d\n", res.SignificantColor)
	fmt.Printf("Significant brightness: %d\n", res.SignificantBrightness)
	if res.Skipped > 0 {
		fmt.Printf("Skipped:                %d\n", res.Skipped)
	}
	if res.ColorOutput != "" {
		fmt.Printf("Colour output:          %s\n", res.ColorOutput)
	}
	if res.BrightnessOutput != "" {
		fmt.Printf("Brightness output:      %s\n", res.BrightnessOutput)
	}
	if res.SeamDetected() {
		fmt.Println("Seam detected")
	} else {
		fmt.Println("No seam detected")
	}
}
