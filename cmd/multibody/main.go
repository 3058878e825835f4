package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/multibody/internal/config"
	"github.com/san-kum/multibody/internal/sim"
	"github.com/san-kum/multibody/internal/tree"
	"github.com/san-kum/multibody/internal/tui"
)

var (
	preset   string
	dt       float64
	duration float64
	method   string
	useEuler bool
	plotQ    int
	live     bool
	csvPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "multibody",
		Short: "articulated multibody dynamics engine",
	}

	runCmd := &cobra.Command{
		Use:   "run [model.yaml]",
		Short: "simulate a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use a built-in model instead of a file")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides the model file)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (overrides the model file)")
	runCmd.Flags().StringVar(&method, "method", "", "integration method: euler or rk4")
	runCmd.Flags().BoolVar(&useEuler, "euler-angles", false, "use Euler angles instead of quaternions")
	runCmd.Flags().IntVar(&plotQ, "plot", -1, "plot this coordinate index after the run")
	runCmd.Flags().BoolVar(&live, "live", false, "live terminal view while running")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write the trajectory to this CSV file")

	describeCmd := &cobra.Command{
		Use:   "describe [model.yaml]",
		Short: "print the model's topology and dof layout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  describeModel,
	}
	describeCmd.Flags().StringVar(&preset, "preset", "", "use a built-in model instead of a file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, describeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(args []string) (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see `multibody presets`)", preset)
		}
		return cfg, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("need a model file or --preset")
	}
	return config.Load(args[0])
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if method != "" {
		cfg.Method = method
	}
	if useEuler {
		cfg.UseEuler = true
	}

	tr, ids, err := cfg.BuildTree()
	if err != nil {
		return err
	}
	state, err := cfg.NewState(tr, ids)
	if err != nil {
		return err
	}
	stepper := sim.NewStepper(state)
	grav, err := cfg.NewGravity(tr)
	if err != nil {
		return err
	}
	if grav != nil {
		stepper.AddForceElement(grav)
	}

	simCfg := sim.Config{
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Method:      sim.Method(cfg.Method),
		RecordEvery: recordStride(cfg),
	}

	if live {
		return tui.Run(cfg.Name, tr, stepper, simCfg)
	}

	res, err := stepper.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "model\t%s\n", cfg.Name)
	fmt.Fprintf(w, "steps\t%d\n", res.StepsTaken)
	fmt.Fprintf(w, "final time\t%.4fs\n", res.Times[len(res.Times)-1])
	fmt.Fprintf(w, "energy drift\t%.3e\n", res.EnergyDrift)
	if err := w.Flush(); err != nil {
		return err
	}

	if plotQ >= 0 {
		if plotQ >= tr.NumQ() {
			return fmt.Errorf("--plot %d out of range, model has %d coordinates", plotQ, tr.NumQ())
		}
		data := make([]float64, len(res.Q))
		for i, q := range res.Q {
			data[i] = q[plotQ]
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("q[%d] over %d samples", plotQ, len(data)))))
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, tr.NumQ(), tr.NumU(), res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	return nil
}

// recordStride keeps result arrays near a thousand samples no matter
// how fine the timestep is.
func recordStride(cfg *config.Config) int {
	steps := int(cfg.Duration / cfg.Dt)
	stride := steps / 1000
	if stride < 1 {
		stride = 1
	}
	return stride
}

func writeCSV(path string, nq, nu int, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"t"}
	for i := 0; i < nq; i++ {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	for i := 0; i < nu; i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	header = append(header, "energy")
	if err := w.Write(header); err != nil {
		return err
	}
	for i, t := range res.Times {
		row := []string{strconv.FormatFloat(t, 'g', -1, 64)}
		for _, v := range res.Q[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range res.U[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(res.Energy[i], 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func describeModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	tr, _, err := cfg.BuildTree()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPARENT\tJOINT\tNQ\tNU\tMASS")
	for i := 1; i < tr.NumBodies(); i++ {
		id := tree.BodyID(i)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3g\n",
			tr.Name(id),
			tr.Name(tr.Parent(id)),
			tr.JointType(id),
			tr.QWidth(id),
			tr.UWidth(id),
			tr.Mass(id),
		)
	}
	fmt.Fprintf(w, "total\t\t\t%d\t%d\t\n", tr.NumQ(), tr.NumU())
	if n := tr.NumQuaternions(); n > 0 && !cfg.UseEuler {
		fmt.Fprintf(w, "quaternion constraints\t%d\n", n)
	}
	return w.Flush()
}
