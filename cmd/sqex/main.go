// Command sqex extracts and transforms assets out of an FFXIV sqpack
// repository.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqpack-tools/sqex/extract"
	"github.com/sqpack-tools/sqex/sqpack"
	"github.com/sqpack-tools/sqex/sqpath"
	"github.com/sqpack-tools/sqex/transcoder"
	"github.com/sqpack-tools/sqex/transform"
)

const appVersion = "0.1.0"

// verboseCount implements flag.Value so -v can be repeated to raise
// verbosity, the way the teacher's other CLI does with -list-consoles
// style boolean flags, generalized to a count.
type verboseCount int

func (v *verboseCount) String() string { return fmt.Sprintf("%d", int(*v)) }
func (v *verboseCount) Set(string) error {
	*v++
	return nil
}
func (v *verboseCount) IsBoolFlag() bool { return true }

func main() {
	var verbosity verboseCount
	flag.Var(&verbosity, "v", "increase verbosity (repeatable)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("sqex version %s\n", appVersion)
		return
	}

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	repoRoot, command, rest := args[0], args[1], args[2:]
	bridge := transcoder.FFmpegBridge{Verbose: verbosity > 0}

	var err error
	switch command {
	case "hash-path":
		err = runHashPath(rest)
	case "extract":
		err = runExtract(repoRoot, rest, bridge)
	case "extract-all":
		// extract-all resolves data files from each index file's own
		// path, not from the global repository argument.
		err = runExtractAll(rest, bridge)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-v] <repository> <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  hash-path <path>\n")
	fmt.Fprintf(os.Stderr, "      Print the index hash of a logical path as hex.\n")
	fmt.Fprintf(os.Stderr, "  extract <paths...> [-o] [-t tag]...\n")
	fmt.Fprintf(os.Stderr, "      Extract one or more logical paths.\n")
	fmt.Fprintf(os.Stderr, "  extract-all <index-files...> [-e ext] [-f] [-o] [-t tag]...\n")
	fmt.Fprintf(os.Stderr, "      Extract every entry out of one or more index files.\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

func runHashPath(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("hash-path takes exactly one path argument")
	}
	fmt.Printf("%08X\n", sqpath.Hash(args[0]))
	return nil
}

// tagList implements flag.Value for a repeatable -t flag,
// accumulating an ordered transform.Chain.
type tagList []transform.Tag

func (t *tagList) String() string {
	tags := make([]string, len(*t))
	for i, tag := range *t {
		tags[i] = string(tag)
	}
	return strings.Join(tags, ",")
}

func (t *tagList) Set(value string) error {
	*t = append(*t, transform.Tag(value))
	return nil
}

func buildChain(tags tagList, bridge transcoder.Bridge) (transform.Chain, error) {
	chain := make(transform.Chain, 0, len(tags))
	for _, tag := range tags {
		tr, err := transform.New(tag, bridge)
		if err != nil {
			return nil, err
		}
		chain = append(chain, tr)
	}
	return chain, nil
}

func runExtract(repoRoot string, args []string, bridge transcoder.Bridge) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	overwrite := fs.Bool("o", false, "overwrite existing output files")
	var tags tagList
	fs.Var(&tags, "t", "transformer tag to apply, repeatable, applied in order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("extract requires at least one logical path")
	}

	chain, err := buildChain(tags, bridge)
	if err != nil {
		return err
	}

	repo := sqpack.NewRepository(repoRoot)
	for _, logicalPath := range paths {
		fmt.Fprintf(os.Stderr, "Extracting %s...", logicalPath)
		outputBase := strings.TrimSuffix(logicalPath, filepath.Ext(logicalPath))
		if err := extract.File(repo, logicalPath, outputBase, *overwrite, chain); err != nil {
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("extracting %s: %w", logicalPath, err)
		}
		fmt.Fprintln(os.Stderr, " done!")
	}
	return nil
}

func runExtractAll(args []string, bridge transcoder.Bridge) error {
	fs := flag.NewFlagSet("extract-all", flag.ExitOnError)
	overwrite := fs.Bool("o", false, "overwrite existing output files")
	forceExtract := fs.Bool("f", false, "continue extracting past individual entry failures")
	outputExtension := fs.String("e", "dat", "extension to use for output files")
	var tags tagList
	fs.Var(&tags, "t", "transformer tag to apply, repeatable, applied in order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	indexFiles := fs.Args()
	if len(indexFiles) == 0 {
		return fmt.Errorf("extract-all requires at least one index file")
	}

	chain, err := buildChain(tags, bridge)
	if err != nil {
		return err
	}

	for _, indexFile := range indexFiles {
		fmt.Fprintf(os.Stderr, "Extracting all from %s...\n", indexFile)
		if err := extract.All(indexFile, *outputExtension, *overwrite, *forceExtract, chain); err != nil {
			return fmt.Errorf("extracting all from %s: %w", indexFile, err)
		}
	}
	return nil
}
