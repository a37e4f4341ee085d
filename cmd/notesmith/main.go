package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notesmith/notesmith/internal/notation"
	"github.com/notesmith/notesmith/internal/player"
	"github.com/notesmith/notesmith/internal/progress"
	"github.com/notesmith/notesmith/internal/server"
	"github.com/notesmith/notesmith/internal/synth"
	"github.com/notesmith/notesmith/internal/wavio"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "notesmith",
	Short: "Render compact music notation to WAV audio",
	Long: `Notesmith synthesizes audio from a compact text notation.

Notes are letter[s]octave (as4 = A-sharp, octave 4), 0 is a rest,
each trailing '-' extends a note by one base unit, '*' stacks notes
into a chord and '+' chains chords in sequence:

  g3*b3*d4 + g3*b3*d4-- + 0- + e4`,
	Version: version,
}

var renderCmd = &cobra.Command{
	Use:   "render [notation]",
	Short: "Render notation to a WAV file",
	Long: `Render notation to a WAV file.

Examples:
  notesmith render "a4+c5+e5" -o arpeggio.wav
  notesmith render --file track.txt --shape saw --bpm 90
  notesmith render "a3*c4*e4--" --no-adsr --smooth 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var playCmd = &cobra.Command{
	Use:   "play [notation]",
	Short: "Render notation and play it through the speaker",
	Long: `Render notation and play it through the speaker.

Example:
  notesmith play "c4+e4+g4+c4*e4*g4--" --shape sin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start a small web interface for rendering notation in the browser.

Example:
  notesmith serve --port 8080`,
	RunE: runServe,
}

var (
	// synthesis flags, shared by render and play
	inputFile     string
	shapeTag      string
	bpm           int
	sampleRate    int
	noADSR        bool
	adsrShares    string
	adsrLevels    string
	normalize     bool
	smoothTimes   int
	smoothWing    int
	distortAmount float64
	distortSeed   int64
	verbose       bool

	// render flags
	outputPath string

	// serve flags
	port int
)

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&inputFile, "file", "f", "", "Read notation from file instead of the argument")
	pf.StringVar(&shapeTag, "shape", "triangular", "Wave shape (sin, square, saw, backsaw, triangular)")
	pf.IntVar(&bpm, "bpm", synth.DefaultBPM, "Beats per minute (one beat = one length unit)")
	pf.IntVar(&sampleRate, "rate", synth.DefaultSampleRate, "Sampling rate in Hz")
	pf.BoolVar(&noADSR, "no-adsr", false, "Disable the ADSR amplitude envelope")
	pf.StringVar(&adsrShares, "shares", "0.05,0.3,0.9", "ADSR breakpoints as fractions of note duration")
	pf.StringVar(&adsrLevels, "levels", "1.0,1.0,0.7", "ADSR amplitude levels at the breakpoints")
	pf.BoolVar(&normalize, "normalize", true, "Peak-normalize the rendered track")
	pf.IntVar(&smoothTimes, "smooth", 0, "Smoothing passes to apply (0 = off)")
	pf.IntVar(&smoothWing, "smooth-wing", 10, "Half-width of the smoothing window in samples")
	pf.Float64Var(&distortAmount, "distort", 0, "Random distortion amount (0 = off)")
	pf.Int64Var(&distortSeed, "seed", 1, "Seed for --distort so renders stay reproducible")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "track.wav", "Output WAV path")

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
}

func runRender(cmd *cobra.Command, args []string) error {
	text, err := loadNotation(args)
	if err != nil {
		return err
	}
	rep := progress.NewReporter(os.Stdout, verbose)

	rep.StartStage(progress.StageParse)
	track, err := notation.Parse(text)
	if err != nil {
		return err
	}
	rep.StageComplete("%d chords, %d base units", len(track.Chords), track.TotalUnits())

	samples, rate, err := synthesize(rep, track)
	if err != nil {
		return err
	}

	rep.StartStage(progress.StageEncode)
	if err := wavio.WriteFile(outputPath, samples, rate); err != nil {
		return err
	}
	rep.Done(outputPath)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	text, err := loadNotation(args)
	if err != nil {
		return err
	}
	rep := progress.NewReporter(os.Stdout, verbose)

	rep.StartStage(progress.StageParse)
	track, err := notation.Parse(text)
	if err != nil {
		return err
	}
	rep.StageComplete("%d chords, %d base units", len(track.Chords), track.TotalUnits())

	samples, rate, err := synthesize(rep, track)
	if err != nil {
		return err
	}

	fmt.Printf("Playing %.2fs...\n", float64(len(samples))/float64(rate))
	return player.Play(samples, rate)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(server.Config{Port: port})
	if err != nil {
		return err
	}
	return srv.Run()
}

// synthesize renders the track and applies the post-processing flags.
func synthesize(rep *progress.Reporter, track notation.Track) ([]float64, int, error) {
	wave, env, err := buildConfigs()
	if err != nil {
		return nil, 0, err
	}

	rep.StartStage(progress.StageSynthesize)
	renderer, err := synth.NewRenderer(wave, env)
	if err != nil {
		return nil, 0, err
	}
	samples, err := renderer.Render(track)
	if err != nil {
		return nil, 0, err
	}
	rep.StageComplete("%d samples (%.2fs at %d Hz, %s wave)",
		len(samples), float64(len(samples))/float64(wave.SampleRate), wave.SampleRate, wave.Shape)

	rep.StartStage(progress.StagePost)
	if smoothTimes > 0 {
		samples = synth.Smooth(samples, smoothTimes, smoothWing)
		rep.Update("smoothed %d times (wing %d)", smoothTimes, smoothWing)
	}
	if distortAmount > 0 {
		samples = synth.Distort(samples, distortAmount, rand.New(rand.NewSource(distortSeed)))
		rep.Update("distorted by %.0f%% (seed %d)", distortAmount*100, distortSeed)
	}
	if normalize {
		samples = synth.Normalize(samples)
		rep.Update("peak-normalized")
	}
	rep.StageComplete("post-processing done")

	return samples, wave.SampleRate, nil
}

// buildConfigs assembles the render configuration from the shared flags.
func buildConfigs() (synth.WaveConfig, synth.EnvelopeConfig, error) {
	wave := synth.DefaultWaveConfig()
	env := synth.DefaultEnvelopeConfig()

	shape, err := synth.ParseShape(shapeTag)
	if err != nil {
		return wave, env, err
	}
	wave.Shape = shape
	wave.SampleRate = sampleRate
	if err := wave.SetBPM(bpm); err != nil {
		return wave, env, err
	}

	env.Enabled = !noADSR
	if env.Shares, err = parseTriple(adsrShares); err != nil {
		return wave, env, fmt.Errorf("invalid --shares: %w", err)
	}
	if env.Levels, err = parseTriple(adsrLevels); err != nil {
		return wave, env, fmt.Errorf("invalid --levels: %w", err)
	}
	return wave, env, nil
}

// parseTriple parses three comma-separated floats.
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want three comma-separated values, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("value %q is not a number", p)
		}
		out[i] = v
	}
	return out, nil
}

// loadNotation takes the notation from the argument or from --file.
func loadNotation(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read notation file: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("provide notation as an argument or via --file")
}
