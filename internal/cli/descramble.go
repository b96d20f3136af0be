package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"untile/internal/archive"
	"untile/internal/logging"
	"untile/pkg/config"
	untileImage "untile/pkg/image"
	"untile/pkg/model"
	"untile/pkg/seed"
)

var (
	ErrPagesFailed = errors.New("some pages could not be processed")
)

type DescrambleOptions struct {
	OutputDir string
	// Archive, when set, collects every page into a cbz at this path instead of writing them to OutputDir
	Archive string
	// Force descrambles pages even if their seed says they are served unscrambled
	Force bool
	// SkipExisting leaves pages whose output file already exists untouched
	SkipExisting bool
	// Pad is the number of digits of page numbers inside the archive
	Pad     int
	Workers int
	Config  config.DescrambleConfig
}

type DescrambleSummary struct {
	Descrambled   int
	PassedThrough int
	Skipped       int
	Failed        int
	Outputs       []string
}

func (s DescrambleSummary) String() string {
	summary := fmt.Sprintf("Descrambled %d, copied %d unscrambled, skipped %d existing and failed %d pages",
		s.Descrambled, s.PassedThrough, s.Skipped, s.Failed)
	if len(s.Outputs) > 0 {
		summary += fmt.Sprintf(", output: %s", strings.Join(s.Outputs, ","))
	}
	return summary
}

type pageResult struct {
	output      string
	content     []byte
	descrambled bool
	skipped     bool
	err         error
}

// DescramblePages descrambles every image with the same seed using a bounded pool of workers. A page that fails is
// logged and skipped, the remaining pages are still written and the returned error wraps ErrPagesFailed.
func DescramblePages(ctx context.Context, paths []string, pageSeed string, opts DescrambleOptions) (DescrambleSummary, error) {
	logger := logging.BuildLogger()
	summary := DescrambleSummary{}

	opts.Config.PopulateUnsetConfigVars()
	if err := opts.Config.Validate(); err != nil {
		return summary, err
	}
	format, err := untileImage.ParseFormat(opts.Config.Format)
	if err != nil {
		return summary, err
	}
	if opts.Pad < 1 {
		opts.Pad = archive.DefaultPad
	}

	if opts.Archive != "" && opts.SkipExisting {
		if _, err = os.Stat(opts.Archive); err == nil {
			logger.Info("Skipping pages, archive already exists", "archive", opts.Archive)
			summary.Skipped = len(paths)
			summary.Outputs = []string{opts.Archive}
			return summary, nil
		}
	}

	scrambled := opts.Force || seed.IsScrambled(pageSeed)
	if !scrambled {
		logger.Info("Seed indicates pages are not scrambled, they will only be converted", "seed", pageSeed)
	}

	if opts.Archive == "" {
		if err = os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return summary, fmt.Errorf("error creating output directory: %w", err)
		}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, len(paths))

	s := NewSpinner()
	s.Prefix = fmt.Sprintf("Descrambling pages 0/%d ", len(paths))
	s.Start()

	var processed atomic.Int32
	results := make([]pageResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processPage(paths[idx], pageSeed, scrambled, format, opts)
				if results[idx].err != nil {
					logger.WithPage(paths[idx]).WithError(results[idx].err).Error("Error processing page")
				}

				s.Lock()
				s.Prefix = fmt.Sprintf("Descrambling pages %d/%d ", processed.Add(1), len(paths))
				s.Unlock()
			}
		}()
	}

dispatch:
	for idx := range paths {
		if ctx.Err() == nil {
			select {
			case jobs <- idx:
				continue
			case <-ctx.Done():
			}
		}
		for remaining := idx; remaining < len(paths); remaining++ {
			results[remaining].err = ctx.Err()
		}
		break dispatch
	}
	close(jobs)
	wg.Wait()
	s.Stop()

	for _, result := range results {
		switch {
		case result.err != nil:
			summary.Failed++
		case result.skipped:
			summary.Skipped++
		case result.descrambled:
			summary.Descrambled++
		default:
			summary.PassedThrough++
		}
		if result.err == nil && opts.Archive == "" {
			summary.Outputs = append(summary.Outputs, result.output)
		}
	}

	if opts.Archive != "" && summary.Failed < len(paths) {
		if err = writeArchive(opts.Archive, results, format, opts.Pad); err != nil {
			return summary, err
		}
		summary.Outputs = append(summary.Outputs, opts.Archive)
	}

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrPagesFailed, summary.Failed, len(paths))
	}
	return summary, nil
}

func processPage(path, pageSeed string, scrambled bool, format untileImage.Format, opts DescrambleOptions) pageResult {
	logger := logging.BuildLogger().WithPage(path)

	var outputPath string
	if opts.Archive == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outputPath = untileImage.OutputPath(filepath.Join(opts.OutputDir, stem), format)
		if _, err := os.Stat(outputPath); err == nil && opts.SkipExisting {
			logger.Info("Skipping page, output file already exists", "output", outputPath)
			return pageResult{output: outputPath, skipped: true}
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return pageResult{err: err}
	}

	// Unscrambled pages already stored in the requested format are kept byte for byte
	if !scrambled {
		if sourceFormat, err := untileImage.DetectFormat(content); err == nil && sourceFormat == format {
			return storePage(outputPath, content, format, false)
		}
	}

	srcImage, err := untileImage.Decode(bytes.NewReader(content))
	if err != nil {
		return pageResult{err: err}
	}

	var output image.Image = srcImage
	if scrambled {
		descrambler, err := untileImage.NewDescrambler(srcImage, opts.Config)
		if err != nil {
			return pageResult{err: err}
		}
		if err = descrambler.Descramble(pageSeed); err != nil {
			return pageResult{err: err}
		}
		stats := descrambler.Stats()
		logger.Debug("Page descrambled", "groups", stats.Groups, "tiles", stats.Tiles,
			"setup", stats.Setup.String(), "reassembly", stats.Reassembly.String())
		output = descrambler.Canvas().Image()
	}

	encoded, err := untileImage.EncodeToBytes(output, format, untileImage.EncodeOptionsFromConfig(opts.Config))
	if err != nil {
		return pageResult{err: err}
	}
	return storePage(outputPath, encoded, format, scrambled)
}

// storePage writes content to outputPath, or keeps it in memory for the archive when there is no output path
func storePage(outputPath string, content []byte, format untileImage.Format, descrambled bool) pageResult {
	if outputPath == "" {
		return pageResult{content: content, descrambled: descrambled}
	}
	writtenPath, err := untileImage.WriteFile(outputPath, content, format)
	return pageResult{output: writtenPath, descrambled: descrambled, err: err}
}

// writeArchive stores the successful pages in input order, numbered without gaps
func writeArchive(path string, results []pageResult, format untileImage.Format, pad int) (err error) {
	archiveFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating archive: %w", err)
	}
	defer func() {
		if closeErr := archiveFile.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	cbz := archive.NewCBZWriter(archiveFile)
	for _, result := range results {
		if result.err != nil {
			continue
		}
		err = cbz.AddPage(model.OutputPage{
			Name:    archive.PageName(cbz.Pages(), pad, format.Extension()),
			Format:  string(format),
			Content: result.content,
		})
		if err != nil {
			return err
		}
	}
	return cbz.Close()
}
