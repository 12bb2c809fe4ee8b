package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pipe01/hyper/internal/format"
	"github.com/pipe01/hyper/internal/generator"
	"github.com/pipe01/hyper/internal/parser"
	"github.com/pipe01/hyper/internal/workspace"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	element  = kingpin.Flag("element", "Parse files as a single element instead of a list of definitions").Bool()
	maxDepth = kingpin.Flag("max-depth", "Maximum number of nested bodies").Default(fmt.Sprint(parser.DefaultMaxDepth)).Int()
	verbose  = kingpin.Flag("verbose", "Increase logging verbosity, may be repeated").Short('v').Counter()

	buildCmd   = kingpin.Command("build", "Compile templates to HTML").Default()
	outDir     = buildCmd.Flag("out-dir", "Folder to put generated files on").Short('o').Default(".").String()
	toStdout   = buildCmd.Flag("stdout", "Write generated HTML to standard output instead of files").Bool()
	raw        = buildCmd.Flag("raw", "Write text and attribute values without escaping them").Bool()
	watch      = buildCmd.Flag("watch", "Watch files for changes and recompile automatically").Short('w').Bool()
	buildFiles = buildCmd.Arg("files", "List of files to compile").Required().ExistingFiles()

	fmtCmd   = kingpin.Command("fmt", "Print templates in their canonical layout")
	fmtWrite = fmtCmd.Flag("write", "Overwrite files instead of printing them").Short('w').Bool()
	fmtFiles = fmtCmd.Arg("files", "List of files to format").Required().ExistingFiles()

	genOpts generator.Options

	log = commonlog.GetLogger("hyper")
)

func main() {
	command := kingpin.Parse()

	commonlog.Configure(*verbose, nil)

	genOpts = generator.Options{
		Escape: !*raw,
	}

	switch command {
	case fmtCmd.FullCommand():
		if err := formatAll(); err != nil {
			kingpin.Fatalf("failed to format files: %s", err)
		}

	default:
		*outDir, _ = filepath.Abs(*outDir)

		if *watch {
			err := watchFiles()
			if err != nil {
				kingpin.Fatalf("failed to watch files: %s", err)
			}
		} else {
			err := generateAll()
			if err != nil {
				kingpin.Fatalf("failed to generate files: %s", err)
			}
		}
	}
}

func newWorkspace() *workspace.Workspace {
	opts := workspace.Options{
		Mode:     workspace.ModeModule,
		MaxDepth: *maxDepth,
	}
	if *element {
		opts.Mode = workspace.ModeElement
	}

	wd, _ := os.Getwd()
	return workspace.New(wd, opts)
}

func generateAll() error {
	ws := newWorkspace()

	for _, fname := range *buildFiles {
		_, err := generateFile(ws, fname)
		if err != nil {
			return fmt.Errorf("load file %q: %w", fname, err)
		}
	}

	return nil
}

func outputName(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

func generateFile(ws *workspace.Workspace, fname string) (outPath string, err error) {
	f, err := ws.Load(fname)
	if err != nil {
		return "", err
	}

	if *toStdout {
		err = generator.Visit(os.Stdout, f.Root, genOpts)
		if err != nil {
			return "", fmt.Errorf("generate output: %w", err)
		}

		_, err = os.Stdout.WriteString("\n")
		return "", err
	}

	outPath = filepath.Join(*outDir, outputName(fname))

	outf, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer outf.Close()

	err = generator.Visit(outf, f.Root, genOpts)
	if err != nil {
		return "", fmt.Errorf("generate output: %w", err)
	}

	log.Infof("generated %s", outPath)

	return outPath, nil
}

func formatAll() error {
	ws := newWorkspace()

	for _, fname := range *fmtFiles {
		f, err := ws.Load(fname)
		if err != nil {
			return fmt.Errorf("load file %q: %w", fname, err)
		}

		out := format.Source(f.Root)
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}

		if !*fmtWrite {
			if _, err := os.Stdout.WriteString(out); err != nil {
				return err
			}
			continue
		}

		if out == f.Source {
			log.Debugf("%s is already formatted", fname)
			continue
		}

		if err := os.WriteFile(f.Path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write file %q: %w", fname, err)
		}

		log.Noticef("formatted %s", fname)
	}

	return nil
}

func watchFiles() error {
	ws := newWorkspace()

	// Build everything once so the output exists before the first change
	for _, f := range *buildFiles {
		if _, err := generateFile(ws, f); err != nil {
			log.Errorf("failed to generate file %q: %s", f, err)
		}
	}

	watcher, err := NewWatcher(ws)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, f := range *buildFiles {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Noticef("watching %d files for changes...", len(*buildFiles))

	<-ch
	return nil
}
