package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	outputPath   string
	linesChecked int
	markerFile   string
	logFileName  string
	verbose      bool

	rootCmd = &cobra.Command{
		Use:   "jobtool",
		Short: "Report on simulation jobfolders",
		Long: `jobtool scans a directory tree for jobfolders - directories produced by
long-running simulation jobs, marked by an initial.traj file - and reports
the status of each, derived from the tail of its log file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file path")
	pf.StringVarP(&outputPath, "output", "o", "", "file where results are written (default stdout)")
	pf.IntVar(&linesChecked, "lines-checked", 0, "number of trailing log lines inspected for status")
	pf.StringVar(&markerFile, "marker-file", "", "file name that qualifies a directory as a jobfolder")
	pf.StringVar(&logFileName, "log-file", "", "log file name inspected for status")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
