package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/zalepa/crimestats/motive"
	"github.com/zalepa/crimestats/report"
	"go.uber.org/zap"
)

// maxDatasetSize caps how much of a response body fetch will read.
const maxDatasetSize = 32 << 20

func newFetchCmd(a *app) *cobra.Command {
	var url, dest string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a dataset, validate it and save it locally",
		Long: `Download a JSON dataset, check that it decodes and aggregates with the
configured motive categories, and save it (by default to the configured
input path). Invalid data is never written.`,
		Example: `  crimestats fetch --url https://example.org/india_cyber_crime.json
  crimestats fetch --url https://example.org/2013.json --out data/2013.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				return errors.New("fetch: --url is required")
			}
			if dest == "" {
				dest = a.cfg.Input
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			a.logger.Info("Fetching dataset", zap.String("url", url))
			body, err := download(ctx, url)
			if err != nil {
				return err
			}

			cats, err := a.cfg.MotiveCategories()
			if err != nil {
				return err
			}
			ds, err := motive.Decode(bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}
			res, err := motive.Aggregate(ds, cats)
			if err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}

			if err := report.SaveFile(dest, body); err != nil {
				return err
			}
			a.logger.Info("Saved dataset",
				zap.String("path", dest),
				zap.Int("records", len(ds)),
				zap.Int("ranked", res.Len()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&url, "url", "", "dataset URL")
	f.StringVarP(&dest, "out", "o", "", "destination path (default: configured input)")
	f.DurationVar(&timeout, "timeout", 30*time.Second, "download timeout")
	return cmd
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: reading response body: %w", err)
	}
	if len(body) > maxDatasetSize {
		return nil, fmt.Errorf("fetch: response from %s exceeds %d bytes", url, maxDatasetSize)
	}
	return body, nil
}
