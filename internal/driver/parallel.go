package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"rdlint/internal/diag"
	"rdlint/internal/loader"
	"rdlint/internal/observ"
	"rdlint/internal/rules"
	"rdlint/internal/source"
)

// Options controls a batch check run.
type Options struct {
	// MaxFindings caps the findings per block; 0 uses DefaultMaxFindings.
	MaxFindings int
	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// Rules is the rule configuration shared by all workers.
	Rules rules.Config
	// Progress, when set, receives one event per finished block.
	Progress ProgressFunc
	// Timer, when set, records the run phases for --timings.
	Timer *observ.Timer
}

// ProgressEvent reports one finished block to the UI.
type ProgressEvent struct {
	Path   string
	Method string
	Done   int
	Total  int
}

// ProgressFunc consumes progress events. Called from worker goroutines;
// implementations must be safe for concurrent use.
type ProgressFunc func(ProgressEvent)

// Report aggregates the results of a batch run.
type Report struct {
	Results []BlockResult
	Files   int
	Blocks  int

	Violations  int
	Suggestions int
	Infos       int
}

// MergedBag collects every finding of the run into one sorted bag.
func (r *Report) MergedBag(maxFindings int) *diag.Bag {
	if maxFindings <= 0 {
		maxFindings = DefaultMaxFindings * max(1, len(r.Results))
	}
	bag := diag.NewBag(maxFindings)
	for _, res := range r.Results {
		bag.Merge(res.Bag)
	}
	bag.Dedup()
	bag.Sort()
	return bag
}

// HasViolations reports whether any block produced a hard violation.
// Это единственное, что определяет код выхода проверки.
func (r *Report) HasViolations() bool {
	return r.Violations > 0
}

// CheckPaths checks every documentation file under the given roots.
// Files are loaded sequentially (the FileSet is not safe for concurrent
// mutation), blocks are checked in parallel.
func CheckPaths(ctx context.Context, roots []string, opts Options) (*source.FileSet, *Report, error) {
	baseDir := "."
	if len(roots) == 1 {
		baseDir = roots[0]
	}
	fileSet := source.NewFileSetWithBase(baseDir)

	phase := begin(opts.Timer, "discover")
	files, err := loader.Discover(roots)
	end(opts.Timer, phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fileSet, nil, err
	}

	report := &Report{Files: len(files)}
	if len(files) == 0 {
		return fileSet, report, nil
	}

	// Предзагрузка: ошибки I/O оформляем находками, а не abort'ом всего
	// запуска.
	phase = begin(opts.Timer, "load")
	var blocks []loader.Block
	var loadBag *diag.Bag
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			if loadBag == nil {
				loadBag = diag.NewBag(len(files))
			}
			// Файл не прочитался, но находке нужен существующий FileID:
			// регистрируем путь пустым виртуальным файлом.
			vid := fileSet.AddVirtual(path, nil)
			diag.ReportViolation(diag.BagReporter{Bag: loadBag}, diag.IOLoadFileError,
				source.Span{File: vid},
				"failed to load file: "+err.Error()).Emit()
			continue
		}
		blocks = append(blocks, loader.ExtractBlocks(fileSet.Get(id))...)
	}
	end(opts.Timer, phase, fmt.Sprintf("%d blocks", len(blocks)))
	report.Blocks = len(blocks)

	if loadBag != nil {
		report.Results = append(report.Results, BlockResult{Bag: loadBag})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты пишутся по уникальным индексам, мьютекс не нужен.
	results := make([]BlockResult, len(blocks))
	var done atomic.Int64

	phase = begin(opts.Timer, "check")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(1, len(blocks))))

	for i, block := range blocks {
		i, block := i, block
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = CheckBlock(fileSet, block, &opts.Rules, opts.MaxFindings)

			if opts.Progress != nil {
				opts.Progress(ProgressEvent{
					Path:   fileSet.Get(block.FileID).Path,
					Method: block.Method,
					Done:   int(done.Add(1)),
					Total:  len(blocks),
				})
			}
			return nil
		})
	}
	err = g.Wait()
	end(opts.Timer, phase, "")
	if err != nil {
		return fileSet, report, err
	}

	report.Results = append(report.Results, results...)
	for _, res := range report.Results {
		v, s, n := res.Bag.CountBySeverity()
		report.Violations += v
		report.Suggestions += s
		report.Infos += n
	}
	return fileSet, report, nil
}

func begin(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func end(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
