package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/stagecam/internal/config"
	"github.com/ivlev/stagecam/internal/director"
	"github.com/ivlev/stagecam/internal/engine"
	"github.com/ivlev/stagecam/internal/system"
)

func main() {
	// Create the working directories if they are missing
	dirs := []string{"input/projects", "input/stems", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	configPtr := flag.String("config", "", "Path to the project YAML (default: newest file in input/projects/)")
	outputPtr := flag.String("output", "", "Path to the shot list (default: generated in output/)")
	durationPtr := flag.Float64("duration", 0, "Timeline duration in seconds (0 = from config or longest stem)")
	resolutionPtr := flag.Float64("resolution", 0, "Sampling step in seconds (0 = from config)")
	minShotPtr := flag.Float64("min-shot", 0, "Target shot duration in seconds (0 = from config)")
	minSegmentPtr := flag.Float64("min-segment", -1, "Minimum segment duration in seconds (-1 = from config)")
	silencePtr := flag.Float64("silence-tolerance", -1, "Silent gaps shorter than this are absorbed (-1 = from config)")
	seedPtr := flag.Int64("seed", 0, "Random seed (0 = from config or time-based)")
	deterministicPtr := flag.Bool("deterministic", false, "Round-robin camera selection instead of weighted random")
	workersPtr := flag.Int("workers", 0, "Sampling workers (0 = auto)")
	statsPtr := flag.Bool("stats", false, "Print a performance report")

	flag.Parse()

	configPath := *configPtr
	if configPath == "" {
		latest, err := system.FindLatestProject("input/projects")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a project YAML in input/projects/", err)
		}
		configPath = latest
		fmt.Printf("[*] Selected project: %s\n", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	if *durationPtr > 0 {
		cfg.Duration = *durationPtr
	}
	if *resolutionPtr > 0 {
		cfg.Resolution = *resolutionPtr
	}
	if *minShotPtr > 0 {
		cfg.MinShot = *minShotPtr
	}
	if *minSegmentPtr >= 0 {
		cfg.MinSegment = *minSegmentPtr
	}
	if *silencePtr >= 0 {
		cfg.SilenceTolerance = *silencePtr
	}
	if *seedPtr != 0 {
		cfg.Seed = *seedPtr
	}
	if *deterministicPtr {
		cfg.Deterministic = true
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}

	project, err := engine.NewProject(cfg)
	if err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}
	project.ShowStats = *statsPtr

	fmt.Println("--- [STAGECAM: SHOT SCHEDULER] ---")
	fmt.Printf("[*] Actors: %d | Groups: %d | Stage cameras: %d\n",
		len(cfg.Actors), len(cfg.Groups), len(cfg.StageCameras))
	fmt.Printf("[*] Resolution: %.3fs | Min shot: %.2fs | Min segment: %.2fs | Silence tolerance: %.2fs\n",
		cfg.Resolution, cfg.MinShot, cfg.MinSegment, cfg.SilenceTolerance)
	fmt.Println("----------------------------------")

	res, err := project.Run()
	if err != nil {
		log.Fatalf("[-] Scheduling error: %v", err)
	}

	fmt.Printf("[>] Timeline: %.2fs | Segments: %d | Shots: %d\n",
		res.Duration, len(res.Refined), len(res.ShotList.Shots))
	for _, gap := range res.ShotList.Gaps {
		fmt.Printf("[!] No eligible cameras for [%.2fs, %.2fs], span left unscheduled\n", gap.Start, gap.End)
	}

	outputPath := *outputPtr
	if outputPath == "" {
		baseName := filepath.Base(configPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = filepath.Join("output", fmt.Sprintf("%s_shots_%s.yaml", cleanName, timestamp))
	}

	if err := director.WriteShotList(res.ShotList, outputPath); err != nil {
		log.Fatalf("[-] Failed to write shot list: %v", err)
	}

	fmt.Printf("[+++] Done! Shot list: %s\n", outputPath)
}
