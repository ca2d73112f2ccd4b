package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers picks a sampling worker count from the logical CPU count
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// FindLatestProject finds the most recent project YAML in a directory
func FindLatestProject(dir string) (string, error) {
	return findLatest(dir, []string{".yaml", ".yml"}, "project files")
}

// FindLatestAudio finds the most recent WAV stem in a directory
func FindLatestAudio(dir string) (string, error) {
	return findLatest(dir, []string{".wav"}, "audio files")
}

func findLatest(dir string, extensions []string, what string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s found in %s", what, dir)
	}

	return latestFile, nil
}
