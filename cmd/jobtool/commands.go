package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/atomsim/jobtool/internal/config"
	"github.com/atomsim/jobtool/internal/domain"
	"github.com/atomsim/jobtool/internal/filter"
	"github.com/atomsim/jobtool/internal/report"
	"github.com/atomsim/jobtool/internal/traj"
	"github.com/atomsim/jobtool/internal/walker"
	"github.com/atomsim/jobtool/viewer"
)

var (
	listInclude       []string
	listExclude       []string
	listFormat        string
	listWithoutStatus bool
)

func init() {
	// list command
	listCmd := &cobra.Command{
		Use:   "list ROOT",
		Short: "List jobfolders and their statuses",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
	listCmd.Flags().StringSliceVar(&listInclude, "include", nil, "statuses included in the results (repeatable)")
	listCmd.Flags().StringSliceVar(&listExclude, "exclude", nil, "statuses excluded from the results (repeatable)")
	listCmd.Flags().StringVar(&listFormat, "format", "", "output format, json or csv")
	listCmd.Flags().BoolVar(&listWithoutStatus, "without-status", false, "emit paths only")
	rootCmd.AddCommand(listCmd)

	// count command
	countCmd := &cobra.Command{
		Use:   "count ROOT",
		Short: "Count jobfolders by status",
		Args:  cobra.ExactArgs(1),
		RunE:  runCount,
	}
	rootCmd.AddCommand(countCmd)

	// statuses command
	statusesCmd := &cobra.Command{
		Use:   "statuses",
		Short: "List the valid status values",
		RunE:  runStatuses,
	}
	rootCmd.AddCommand(statusesCmd)

	// view command
	viewCmd := &cobra.Command{
		Use:   "view ROOT",
		Short: "Browse the converged structures of a tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	rootCmd.AddCommand(viewCmd)
}

// loadConfig builds the one Config used by every stage: file values over
// defaults, flag values over both. Constructed once, never mutated after.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}

	if linesChecked != 0 {
		cfg.Scan.LinesChecked = linesChecked
	}
	if markerFile != "" {
		cfg.Scan.MarkerFile = markerFile
	}
	if logFileName != "" {
		cfg.Scan.LogFile = logFileName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openOutput returns the sink for report output, stdout unless -o was given
func openOutput() (io.Writer, func() error, error) {
	if outputPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// All configuration errors surface before the walk starts
	include, err := domain.ParseStatusSet(listInclude)
	if err != nil {
		return err
	}
	exclude, err := domain.ParseStatusSet(listExclude)
	if err != nil {
		return err
	}
	formatName := listFormat
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	withStatus := cfg.Output.WithStatus && !listWithoutStatus

	w := walker.New(cfg)
	results, err := w.Walk(args[0])
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	if err := report.Write(out, filter.Apply(results, include, exclude), format, withStatus); err != nil {
		closeOut()
		return err
	}

	stats := w.Stats()
	logrus.WithFields(logrus.Fields{
		"visited": stats.Visited,
		"yielded": stats.Yielded,
		"skipped": stats.Skipped,
	}).Debug("scan complete")

	return closeOut()
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := walker.New(cfg)
	results, err := w.Walk(args[0])
	if err != nil {
		return err
	}

	counts := map[domain.Status]int{}
	total := 0
	for r := range results {
		counts[r.Status]++
		total++
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tCOUNT")
	for _, status := range domain.AllStatuses {
		fmt.Fprintf(tw, "%s\t%d\n", status, counts[status])
	}
	tw.Flush()

	stats := w.Stats()
	fmt.Fprintf(out, "\n%s jobfolders in %s directories",
		humanize.Comma(int64(total)), humanize.Comma(int64(stats.Visited)))
	if stats.Skipped > 0 {
		fmt.Fprintf(out, " (%s skipped)", humanize.Comma(int64(stats.Skipped)))
	}
	fmt.Fprintln(out)

	return closeOut()
}

func runStatuses(cmd *cobra.Command, args []string) error {
	fmt.Println("Valid statuses:")
	for _, status := range domain.AllStatuses {
		fmt.Printf("  - %s\n", status)
	}
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := walker.New(cfg)
	results, err := w.Walk(args[0])
	if err != nil {
		return err
	}

	converged := domain.StatusSet{domain.StatusConverged: {}}
	var entries []viewer.Entry
	for r := range filter.Apply(results, converged, nil) {
		entry := viewer.Entry{Path: r.Path}
		entry.Structure, entry.Err = traj.ReadLastStructure(filepath.Join(r.Path, cfg.Scan.ResultsFile))
		entries = append(entries, entry)
	}

	return viewer.Run(entries)
}
