package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	pulse "github.com/Sharon-codes/UIDAI-Hackathon"
	"github.com/Sharon-codes/UIDAI-Hackathon/config"
	"github.com/Sharon-codes/UIDAI-Hackathon/dataset"
	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
	"github.com/Sharon-codes/UIDAI-Hackathon/intel"
	"github.com/Sharon-codes/UIDAI-Hackathon/report"
	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
	"github.com/Sharon-codes/UIDAI-Hackathon/server"
)

// ============================================================================
// PULSE CLI — Aadhaar Pulse dashboard, briefs and exports
// ============================================================================

const version = pulse.Version

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

// commands is populated in init to break the initialization cycle through
// usageError, which looks subcommands up in this table.
var commands []command

func init() {
	commands = []command{
		{
			name:  "serve",
			short: "Run the browser dashboard",
			usage: "pulse serve [--config pulse.yaml] [--data path] [--addr :8080]",
			long: `Load the dataset and serve the dashboard and JSON API.

The dataset is loaded once at startup with a single retry. If it is still
unavailable the dashboard serves empty views.
`,
			run: runServe,
		},
		{
			name:  "overview",
			short: "Print the dashboard for one view",
			usage: "pulse overview [--state name] [--q search] [--top n] [--format json|pretty|text|csv] [--out file]",
			long: `Print overview cards, rankings and the detail table.

Without --state the view rolls districts up to states. --q filters the
district view by a case-insensitive substring.
`,
			run: runOverview,
		},
		{
			name:  "brief",
			short: "Print the intelligence brief for a district",
			usage: "pulse brief [--futurecast] [--format text|json|pretty] <state> <district>",
			long: `Classify one district and print its brief.

--futurecast classifies the projected scores instead of the recorded ones.
`,
			run: runBrief,
		},
		{
			name:  "report",
			short: "Write the downloadable text report for a district",
			usage: "pulse report [--dir .] <state> <district>",
			long: `Write Intelligence_Brief_<district>_<millis>.txt into --dir.
`,
			run: runReport,
		},
		{
			name:  "export",
			short: "Export a view as an xlsx workbook",
			usage: "pulse export [--state name] [--out pulse.xlsx]",
			long: `Write the rankings table, overview and chart data to an xlsx file.
District views also get a Briefs sheet.
`,
			run: runExport,
		},
		{
			name:  "chart",
			short: "Render a ranking chart as PNG",
			usage: "pulse chart [--state name] [--out chart.png] <top-ami|bottom-ami|top-erp|bottom-erp|top-icmp|bottom-icmp>",
			long: `Render one ranking bar chart of the selected view as a PNG file.
`,
			run: runChart,
		},
		{
			name:  "import",
			short: "Clean a dataset and store it in SQLite",
			usage: "pulse import [--data path] [--clean] --to pulse.db [--table districts]",
			long: `Load a CSV, JSON or data.js dataset, optionally harmonise state names
and merge duplicates, and write it to a SQLite table.
`,
			run: runImport,
		},
		{
			name:  "explore",
			short: "Interactive district explorer",
			usage: "pulse explore [--state name]",
			long: `Search districts, open a brief, and toggle FutureCast with tab.
`,
			run: runExplore,
		},
		{
			name:  "version",
			short: "Print the version",
			usage: "pulse version",
			long:  "Print the version and exit.\n",
			run: func([]string) error {
				fmt.Fprintf(stdout, "pulse %s\n", version)
				return nil
			},
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "pulse — Aadhaar Pulse district analytics\n\n")
	fmt.Fprintf(w, "Usage:\n  pulse <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'pulse help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "pulse: unknown command %q\n\nRun 'pulse help' for usage.\n", name)
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(stdout, args[1])
		} else {
			printUsage(stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'pulse help' for usage.", args[0])
}

// ---------------------------------------------------------------------------
// shared dataset flags
// ---------------------------------------------------------------------------

type dataFlags struct {
	config string
	data   string
	clean  bool
}

func addDataFlags(fs *flag.FlagSet) *dataFlags {
	d := &dataFlags{}
	fs.StringVar(&d.config, "config", "pulse.yaml", "Path to config file")
	fs.StringVar(&d.data, "data", "", "Dataset path (overrides config)")
	fs.BoolVar(&d.clean, "clean", false, "Harmonise state names and merge duplicate districts")
	return d
}

func (d *dataFlags) resolve() (config.Config, error) {
	cfg, err := config.Load(d.config)
	if err != nil {
		return cfg, err
	}
	if d.data != "" {
		cfg.Dataset.Path = d.data
		cfg.Dataset.Format = ""
	}
	if d.clean {
		cfg.Dataset.CleanStates = true
	}
	return cfg, nil
}

func (d *dataFlags) load() (config.Config, []schema.Record, error) {
	cfg, err := d.resolve()
	if err != nil {
		return cfg, nil, err
	}
	records, err := dataset.Load(context.Background(), cfg.Source())
	if err != nil {
		return cfg, nil, err
	}
	return cfg, records, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func usageError(name string) error {
	for _, cmd := range commands {
		if cmd.name == name {
			return fmt.Errorf("usage: %s", cmd.usage)
		}
	}
	return fmt.Errorf("usage: pulse %s", name)
}

// ---------------------------------------------------------------------------
// serve
// ---------------------------------------------------------------------------

func runServe(args []string) error {
	fs := newFlagSet("serve")
	d := addDataFlags(fs)
	addr := fs.String("addr", "", "Listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return usageError("serve")
	}
	cfg, err := d.resolve()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := dataset.NewStore()
	store.Bootstrap(ctx, dataset.SourceLoader(cfg.Source()), cfg.Dataset.RetryDelay)

	srv := server.New(store,
		server.WithTopN(cfg.Dashboard.TopN),
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
}

// ---------------------------------------------------------------------------
// overview
// ---------------------------------------------------------------------------

func runOverview(args []string) error {
	fs := newFlagSet("overview")
	d := addDataFlags(fs)
	state := fs.String("state", "", "State to drill into (default: all states)")
	search := fs.String("q", "", "District search (district view only)")
	top := fs.Int("top", 0, "Ranking size (default: config dashboard.top_n)")
	format := fs.String("format", "text", "Output format: json, pretty, text, csv")
	out := fs.String("out", "", "Write output to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return usageError("overview")
	}

	cfg, records, err := d.load()
	if err != nil {
		return err
	}
	n := cfg.Dashboard.TopN
	if *top > 0 {
		n = *top
	}

	dash := engine.Build(engine.NewRecordView(records),
		engine.ViewState{StateFilter: *state, Search: *search}, engine.WithTopN(n))

	return withOutput(*out, func(w io.Writer) error {
		switch *format {
		case "csv":
			return writeTableCSV(w, dash.Table)
		case "text":
			writeDashboardText(w, dash)
			return nil
		case "json", "pretty":
			return writeJSON(w, dash, *format)
		}
		return fmt.Errorf("unknown format %q", *format)
	})
}

// ---------------------------------------------------------------------------
// brief / report
// ---------------------------------------------------------------------------

func findDistrict(records []schema.Record, state, district string) (schema.Record, error) {
	rec, ok := engine.FindDistrict(engine.NewRecordView(records), state, district)
	if !ok {
		return rec, fmt.Errorf("district %q not found in %q", district, state)
	}
	return rec, nil
}

func runBrief(args []string) error {
	fs := newFlagSet("brief")
	d := addDataFlags(fs)
	future := fs.Bool("futurecast", false, "Classify projected scores")
	format := fs.String("format", "text", "Output format: text, json, pretty")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return usageError("brief")
	}

	_, records, err := d.load()
	if err != nil {
		return err
	}
	rec, err := findDistrict(records, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	brief := intel.Classify(rec, intel.ModeFromFlag(*future))
	switch *format {
	case "text":
		fmt.Fprint(stdout, report.FormatBrief(brief))
		return nil
	case "json", "pretty":
		return writeJSON(stdout, brief, *format)
	}
	return fmt.Errorf("unknown format %q", *format)
}

func runReport(args []string) error {
	fs := newFlagSet("report")
	d := addDataFlags(fs)
	dir := fs.String("dir", ".", "Directory to write the report into")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return usageError("report")
	}

	_, records, err := d.load()
	if err != nil {
		return err
	}
	rec, err := findDistrict(records, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	meta := report.NewMeta(now())
	path := filepath.Join(*dir, report.Filename(rec.District, meta.GeneratedAt))
	if err := os.WriteFile(path, []byte(report.BuildText(rec, meta)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Printf("📄 Pulse: report written to %s", path)
	fmt.Fprintln(stdout, path)
	return nil
}

// ---------------------------------------------------------------------------
// export / chart
// ---------------------------------------------------------------------------

func runExport(args []string) error {
	fs := newFlagSet("export")
	d := addDataFlags(fs)
	state := fs.String("state", "", "State to export (default: all states)")
	out := fs.String("out", "pulse.xlsx", "Output xlsx path")
	if err := fs.Parse(args); err != nil {
		return usageError("export")
	}

	cfg, records, err := d.load()
	if err != nil {
		return err
	}
	dash := engine.Build(engine.NewRecordView(records), engine.ViewState{StateFilter: *state},
		engine.WithTopN(cfg.Dashboard.TopN))

	var briefs []intel.Brief
	if !dash.IsState {
		for _, e := range dash.Entries {
			briefs = append(briefs, intel.Classify(e.Record(), intel.Current))
		}
	}

	if err := withOutput(*out, func(w io.Writer) error {
		return report.WriteWorkbook(w, dash, briefs)
	}); err != nil {
		return err
	}
	log.Printf("📄 Pulse: exported %s %s to %s", humanize.Comma(int64(len(dash.Entries))), dash.Scope, *out)
	return nil
}

func runChart(args []string) error {
	fs := newFlagSet("chart")
	d := addDataFlags(fs)
	state := fs.String("state", "", "State to chart (default: all states)")
	out := fs.String("out", "", "Output PNG path (default: <chart>.png)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usageError("chart")
	}
	id := fs.Arg(0)

	cfg, records, err := d.load()
	if err != nil {
		return err
	}
	dash := engine.Build(engine.NewRecordView(records), engine.ViewState{StateFilter: *state},
		engine.WithTopN(cfg.Dashboard.TopN))
	chart := dash.Chart(id)
	if chart == nil && !dash.Empty {
		return fmt.Errorf("unknown chart %q (want one of %v)", id, engine.RankingIDs())
	}

	path := *out
	if path == "" {
		path = id + ".png"
	}
	if err := withOutput(path, func(w io.Writer) error {
		return report.RenderChartPNG(w, chart)
	}); err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

// ---------------------------------------------------------------------------
// import
// ---------------------------------------------------------------------------

func runImport(args []string) error {
	fs := newFlagSet("import")
	d := addDataFlags(fs)
	to := fs.String("to", "", "SQLite database to write")
	table := fs.String("table", dataset.DefaultTable, "Destination table")
	if err := fs.Parse(args); err != nil || *to == "" {
		return usageError("import")
	}

	_, records, err := d.load()
	if err != nil {
		return err
	}
	if err := dataset.SaveSQLite(context.Background(), *to, *table, records); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "imported %s districts into %s#%s\n", humanize.Comma(int64(len(records))), *to, *table)
	return nil
}

// ---------------------------------------------------------------------------
// explore
// ---------------------------------------------------------------------------

func runExplore(args []string) error {
	fs := newFlagSet("explore")
	d := addDataFlags(fs)
	state := fs.String("state", "", "Restrict search to one state")
	if err := fs.Parse(args); err != nil {
		return usageError("explore")
	}
	_, records, err := d.load()
	if err != nil {
		return err
	}
	return explore(engine.NewRecordView(records), *state)
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
