// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dataweb/cli/internal/apiclient"
	"dataweb/cli/internal/app"
	"dataweb/cli/internal/httperrors"
	"dataweb/cli/internal/views"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// defaultArchiveName is used when the server suggests no filename.
const defaultArchiveName = "dataset.zip"

var downloadOutput string

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Browse and download the dataset",
}

// datasetInfoCmd shows the public description; no login needed.
var datasetInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the dataset description",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := views.Dataset(a.Client()).Render(cmd.Context(), os.Stdout); err != nil {
			return httperrors.FormatRequestError(err, "fetching dataset info", host(cfg))
		}
		return nil
	},
}

// datasetDownloadCmd streams the archive to a file. It requires a login.
var datasetDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the dataset archive",
	Long: `The download command saves the dataset ZIP archive. Without -o the file is
written to the current directory under the name suggested by the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		tmp, err := os.CreateTemp(downloadTempDir(downloadOutput), ".dataweb-download-*")
		if err != nil {
			return fmt.Errorf("create download file: %w", err)
		}
		defer os.Remove(tmp.Name())

		var dl *apiclient.Download
		err = withSpinner("Downloading dataset", func() error {
			var err error
			dl, err = a.Download(cmd.Context(), tmp)
			return err
		})
		if cerr := tmp.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if errors.Is(err, app.ErrLoginRequired) {
			fmt.Println("🔒 Downloading the dataset requires an account.")
			fmt.Println("   Run 'dataweb login' first.")
			return err
		}
		if err != nil {
			return httperrors.FormatRequestError(err, "downloading the dataset", host(cfg))
		}

		dest := downloadOutput
		if dest == "" {
			dest = filepath.Base(dl.Filename)
			if dl.Filename == "" || dest == "." || dest == string(filepath.Separator) {
				dest = defaultArchiveName
			}
		}
		if err := os.Rename(tmp.Name(), dest); err != nil {
			return fmt.Errorf("save %s: %w", dest, err)
		}

		pterm.Println(pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("Download Completed")).
			WithPadding(1).
			Sprint(fmt.Sprintf("File: %s\nSize: %s", dest, humanBytes(dl.Bytes))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetInfoCmd, datasetDownloadCmd)
	datasetDownloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Destination file")
}

// humanBytes formats n with a binary unit.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// downloadTempDir returns the directory for the partial download. It is the
// destination's directory so the final rename stays on one filesystem.
func downloadTempDir(output string) string {
	if output == "" {
		return "."
	}
	return filepath.Dir(output)
}
