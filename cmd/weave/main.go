package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ilweave/hashcache/metadata"
	"github.com/ilweave/hashcache/weaver"
)

func main() {
	var (
		moduleFile  = flag.String("module", "", "Path to module metadata file")
		outFile     = flag.String("out", "", "Output path (defaults to overwriting the input)")
		configFile  = flag.String("config", "", "Optional TOML config with marker and reserved names")
		list        = flag.Bool("list", false, "List candidate types and exit without writing")
		verify      = flag.Bool("verify", false, "Validate the woven module before writing")
		verbose     = flag.Bool("v", false, "Verbose diagnostics")
		interactive = flag.Bool("i", false, "Interactive mode with TUI report browser")
	)
	flag.Parse()

	if *moduleFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: weave -module <file> [-out file] [-config file.toml] [-verify]")
		fmt.Fprintln(os.Stderr, "       weave -module <file> -list")
		fmt.Fprintln(os.Stderr, "       weave -module <file> -i  (interactive mode)")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*moduleFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*moduleFile, *outFile, cfg, *list, *verify, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(moduleFile, outFile string, cfg weaver.Config, listOnly, verify, verbose bool) error {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer logger.Sync()
		weaver.SetLogger(logger)
	}

	data, err := os.ReadFile(moduleFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	m, err := metadata.DecodeModule(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Printf("Module: %s (%d types)\n", m.Name, len(m.Types))

	if listOnly {
		for _, t := range m.Types {
			fmt.Printf("  %-9s %s", t.Kind, t.Name)
			if t.Abstract {
				fmt.Print("  (abstract)")
			}
			for _, mk := range t.Markers {
				fmt.Printf("  [%s]", mk.Name)
			}
			fmt.Println()
		}
		return nil
	}

	report := weaver.Weave(m, cfg)
	printReport(report)

	if report.Failed() > 0 {
		return fmt.Errorf("%d type(s) failed; refusing to write output", report.Failed())
	}

	if verify {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		fmt.Println("Verification: ok")
	}

	out, err := metadata.EncodeModule(m)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if outFile == "" {
		outFile = moduleFile
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", outFile, len(out))
	return nil
}

func printReport(r *weaver.Report) {
	fmt.Printf("\nWoven: %d  Skipped: %d  Failed: %d\n", r.Woven(), r.Skipped(), r.Failed())
	for _, out := range r.Outcomes {
		switch out.Status {
		case weaver.StatusWoven:
			fmt.Printf("  woven    %s (%d constructor(s), %d injection(s))\n",
				out.Type, out.Constructors, out.Injections)
		case weaver.StatusSkipped:
			fmt.Printf("  skipped  %s: %v\n", out.Type, out.Err)
		case weaver.StatusFailed:
			fmt.Printf("  FAILED   %s: %v\n", out.Type, out.Err)
		}
	}
}
