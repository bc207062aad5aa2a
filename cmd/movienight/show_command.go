package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"movienight/internal/catalog"
	"movienight/internal/config"
	"movienight/internal/output"
	"movienight/internal/textutil"
)

const defaultArtifactPath = "data/today.json"

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "show [PATH]",
		Short:       "Display a generated artifact as a table",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := artifactPath(ctx, args)
			if err != nil {
				return err
			}
			payload, err := output.Read(afero.NewOsFs(), path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", payload.Date)
			if payload.Criteria != "" {
				fmt.Fprintf(out, "Criteria: %s\n", payload.Criteria)
			}
			fmt.Fprintln(out, renderPayload(payload, shouldColorize(out)))
			return nil
		},
	}
}

// artifactPath prefers an explicit argument, then the configured output
// path. Missing credentials do not block reading an existing artifact.
func artifactPath(ctx *commandContext, args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return config.ExpandPath(strings.TrimSpace(args[0]))
	}
	if cfg, err := ctx.ensureConfig(); err == nil {
		return cfg.Output.Path, nil
	}
	return config.ExpandPath(defaultArtifactPath)
}

func renderPayload(payload *catalog.Payload, colorize bool) string {
	headers := []string{"Row", "#", "Title", "Year", "Director", "Leads", "Awards", "YouTube"}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignRight}

	perRow := 0
	if len(payload.RowTitles) > 0 && len(payload.Items)%len(payload.RowTitles) == 0 {
		perRow = len(payload.Items) / len(payload.RowTitles)
	}

	rows := make([][]string, 0, len(payload.Items))
	for i, item := range payload.Items {
		rowName := ""
		position := i + 1
		if perRow > 0 {
			rowName = payload.RowTitles[i/perRow]
			position = i%perRow + 1
		}
		rows = append(rows, []string{
			rowName,
			strconv.Itoa(position),
			textutil.Truncate(item.Title, 48),
			item.Year,
			item.Director,
			strings.Join(item.Leads, ", "),
			strings.Join(item.Awards, "; "),
			item.YouTubeID,
		})
	}
	return renderTable(headers, rows, aligns, colorize)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
