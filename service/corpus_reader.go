package service

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/hashscan/domain"
)

// maxLineBytes bounds a single corpus or capacity line
const maxLineBytes = 1 << 20

// CorpusReaderImpl implements the CorpusReader interface
type CorpusReaderImpl struct{}

// NewCorpusReader creates a new corpus reader service
func NewCorpusReader() *CorpusReaderImpl {
	return &CorpusReaderImpl{}
}

// ReadCorpus reads entries from files and directories in argument order.
// Explicit files are always read; files found in directories are filtered
// by the include and exclude patterns.
func (r *CorpusReaderImpl) ReadCorpus(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, []string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, domain.NewFileNotFoundError(path, err)
			}
			return nil, nil, domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", path), err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		dirFiles, err := r.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, nil, err
		}
		if len(dirFiles) == 0 {
			return nil, nil, domain.NewInvalidInputError(fmt.Sprintf("no corpus files found in %s", path), nil)
		}
		files = append(files, dirFiles...)
	}

	var entries []string
	for _, file := range files {
		fileEntries, err := r.readEntries(file)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, fileEntries...)
	}

	return entries, files, nil
}

// ReadCapacities reads up to limit positive integers, one per line.
// Blank lines are skipped; limit <= 0 reads the whole file.
func (r *CorpusReaderImpl) ReadCapacities(path string, limit int) ([]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer file.Close()

	var capacities []int64
	err = scanLines(file, func(lineNo int, line string) (bool, error) {
		line = strings.TrimSpace(line)
		if line == "" {
			return true, nil
		}

		value, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return false, domain.NewInvalidInputError(
				fmt.Sprintf("%s:%d: capacity %q is not an integer", path, lineNo, line), err)
		}
		if value <= 0 {
			return false, domain.NewInvalidInputError(
				fmt.Sprintf("%s:%d: capacity %d must be positive", path, lineNo, value), nil)
		}

		capacities = append(capacities, value)
		return limit <= 0 || len(capacities) < limit, nil
	})
	if err != nil {
		return nil, err
	}

	if len(capacities) == 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("no capacities found in %s", path), nil)
	}
	return capacities, nil
}

// FileExists checks if a file exists
func (r *CorpusReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// readEntries reads one corpus entry per line, rejecting blank lines
func (r *CorpusReaderImpl) readEntries(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer file.Close()

	var entries []string
	err = scanLines(file, func(lineNo int, line string) (bool, error) {
		if strings.TrimSpace(line) == "" {
			return false, domain.NewInvalidInputError(
				fmt.Sprintf("%s:%d: blank corpus entry", path, lineNo), nil)
		}
		if !utf8.ValidString(line) {
			return false, domain.NewInvalidInputError(
				fmt.Sprintf("%s:%d: corpus entry is not valid UTF-8", path, lineNo), nil)
		}
		entries = append(entries, line)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// scanLines calls fn for every line without its terminator until fn returns false or an error
func scanLines(reader io.Reader, fn func(lineNo int, line string) (bool, error)) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		more, err := fn(lineNo, strings.TrimSuffix(scanner.Text(), "\r"))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return domain.NewInvalidInputError(fmt.Sprintf("failed to read line %d", lineNo+1), err)
	}
	return nil
}

// collectFromDirectory collects corpus files from a directory in lexical order
func (r *CorpusReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == dirPath {
			return nil
		}

		// Skip hidden directories and files
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dirPath, path)
		if err != nil {
			rel = path
		}
		if r.shouldIncludeFile(filepath.ToSlash(rel), includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to walk directory %s", dirPath), err)
	}

	return files, nil
}

// shouldIncludeFile matches patterns against the base name and the slash-separated relative path
func (r *CorpusReaderImpl) shouldIncludeFile(relPath string, includePatterns, excludePatterns []string) bool {
	if matchAny(excludePatterns, relPath) {
		return false
	}

	// If no include patterns specified, include by default
	if len(includePatterns) == 0 {
		return true
	}

	return matchAny(includePatterns, relPath)
}

func matchAny(patterns []string, relPath string) bool {
	base := relPath[strings.LastIndex(relPath, "/")+1:]
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}
