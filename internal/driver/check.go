// Package driver прогоняет проверку разметки по множеству файлов:
// обход каталога, параллельная проверка через errgroup и дисковый кэш
// результатов по хэшу содержимого.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"htmlit/internal/diag"
	"htmlit/internal/engine"
	"htmlit/internal/project"
	"htmlit/internal/source"
)

// CheckOptions управляет пакетной проверкой.
type CheckOptions struct {
	Config   project.Config
	Jobs     int          // 0 — GOMAXPROCS
	Cache    *DiskCache   // nil — кэш выключен
	Progress ProgressSink // nil — события прогресса не шлём
}

// CheckResult содержит результат проверки одного файла.
type CheckResult struct {
	Path      string        // Относительный или исходный путь к файлу
	FileID    source.FileID // ID файла в FileSet, валиден только при Loaded
	Loaded    bool          // false — файл не удалось прочитать
	Bag       *diag.Bag     // Диагностики
	FromCache bool
}

// ListSourceFiles возвращает отсортированный список файлов с
// поддерживаемым расширением в каталоге.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги и node_modules не обходим
			name := d.Name()
			if path != dir && (name == "node_modules" || (len(name) > 1 && name[0] == '.')) {
				return filepath.SkipDir
			}
			return nil
		}
		if source.LangForPath(path) != "" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir проверяет все поддерживаемые файлы в каталоге параллельно.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	return checkFiles(ctx, fileSet, files, opts)
}

// CheckFiles проверяет явный список файлов.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	return checkFiles(ctx, source.NewFileSet(), paths, opts)
}

func checkFiles(ctx context.Context, fileSet *source.FileSet, files []string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы; ошибки загрузки превращаем в диагностики.
	// Идентификаторы не копим отдельно: FileSet сам отдаёт последний ID пути.
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		if _, err := fileSet.Load(path); err != nil {
			loadErrors[path] = err
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	eng := engine.New(engine.Options{
		Leaders:            opts.Config.Literals.Leaders,
		PlaceholderElement: opts.Config.Literals.PlaceholderElement,
		MaxPasses:          opts.Config.Literals.MaxCollapsePasses,
	})
	maxDiags := opts.Config.Check.MaxDiagnostics

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckResult, len(files))

	for _, path := range files {
		emit(opts.Progress, path, StageScan, StatusQueued, nil, 0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				started := time.Now()
				emit(opts.Progress, path, StageScan, StatusWorking, nil, 0)

				bag := diag.NewBag(maxDiags)
				if loadErr, hadError := loadErrors[path]; hadError {
					bag.Add(diag.NewError(
						diag.IOLoadFileError,
						source.Span{},
						"failed to load file: "+loadErr.Error(),
					))
					results[i] = CheckResult{Path: path, Bag: bag}
					emit(opts.Progress, path, StageScan, StatusError, loadErr, time.Since(started))
					return nil
				}

				fileID, _ := fileSet.GetLatest(path)
				file := fileSet.Get(fileID)

				if opts.Cache != nil {
					key := cacheKey(file, opts.Config)
					var payload DiskPayload
					if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
						payloadToBag(&payload, fileID, bag)
						results[i] = CheckResult{Path: path, FileID: fileID, Loaded: true, Bag: bag, FromCache: true}
						emit(opts.Progress, path, StageValidate, finalStatus(bag), nil, time.Since(started))
						return nil
					}
				}

				emit(opts.Progress, path, StageValidate, StatusWorking, nil, 0)
				eng.Check(gctx, file, bag)

				if opts.Cache != nil {
					// промах кэша не фатален, ошибку записи глотаем
					_ = opts.Cache.Put(cacheKey(file, opts.Config), bagToPayload(file, bag))
				}

				results[i] = CheckResult{Path: path, FileID: fileID, Loaded: true, Bag: bag}
				emit(opts.Progress, path, StageValidate, finalStatus(bag), nil, time.Since(started))
				return nil
			}
		}(i, path))
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func finalStatus(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}

// MergeBags собирает диагностики всех результатов в один Bag.
func MergeBags(results []CheckResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	return merged
}
