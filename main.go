package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"ash-diver/catalog"
	"ash-diver/config"
	"ash-diver/export"
	"ash-diver/generation"
	"ash-diver/rng"
)

func main() {
	var (
		seedFlag    = flag.String("seed", "", "generation seed: an integer or any string (hashed)")
		zoneFlag    = flag.String("zone", "underground", "zone variant: underground or suburbs")
		widthFlag   = flag.Int("width", 0, "grid width (0 = zone default)")
		heightFlag  = flag.Int("height", 0, "grid height (0 = zone default)")
		configFlag  = flag.String("config", "", "YAML config file overriding the zone defaults")
		outFlag     = flag.String("out", ".", "output directory for exported files")
		scaleFlag   = flag.Int("scale", 4, "PNG upscale factor")
		verifyFlag  = flag.Bool("verify", false, "re-check the accepted grid and report, no export")
		fuzzFlag    = flag.Int("fuzz", 0, "generate N sequential seeds and report pass/fail counts")
		catalogFlag = flag.String("catalog", "", "SQLite run catalog to record accepted runs in")
		viewFlag    = flag.Bool("view", false, "open an interactive inspector window for the result")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFlag, *zoneFlag, *widthFlag, *heightFlag)
	if err != nil {
		log.Fatal(err)
	}

	gen, err := generation.NewGenerator(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if *fuzzFlag > 0 {
		runFuzz(gen, *fuzzFlag)
		return
	}

	seed := parseSeed(*seedFlag)
	result, err := gen.Generate(seed)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("generated %s %dx%d seed=%d attempt=%d spawn=(%d,%d)",
		result.Zone, result.Grid.Width, result.Grid.Height,
		result.Seed, result.Attempt, result.Spawn[0], result.Spawn[1])

	if *verifyFlag {
		runVerify(gen, result)
		return
	}

	if err := exportAll(gen, result, *outFlag, *scaleFlag, *catalogFlag); err != nil {
		log.Fatal(err)
	}

	if *viewFlag {
		if err := runViewer(result, gen.Tileset()); err != nil {
			log.Fatal(err)
		}
	}
}

// loadConfig builds the effective config: zone defaults, then the YAML
// file if given, then explicit dimension flags on top.
func loadConfig(path, zone string, width, height int) (config.Config, error) {
	var cfg config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path, config.Zone(zone))
		if err != nil {
			return cfg, err
		}
	} else {
		cfg = config.Defaults(config.Zone(zone))
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	return cfg, cfg.Validate()
}

// parseSeed accepts a plain integer or hashes any other string into a
// seed. An empty flag means seed 0.
func parseSeed(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return rng.SeedFromString(s)
}

// runVerify re-runs the playability checks against the accepted grid
// and prints a summary. Exit status 1 means the grid failed re-check.
func runVerify(gen *generation.Generator, result *generation.Result) {
	report := gen.Verify(result)
	for _, line := range report.Lines {
		fmt.Println(line)
	}
	if !report.OK {
		os.Exit(1)
	}
	fmt.Println("OK")
}

// runFuzz sweeps sequential seeds and reports how many produced a
// playable grid within the attempt budget.
func runFuzz(gen *generation.Generator, n int) {
	passed := 0
	for seed := int64(0); seed < int64(n); seed++ {
		result, err := gen.Generate(seed)
		if err != nil {
			log.Printf("seed %d: FAIL (%v)", seed, err)
			continue
		}
		passed++
		if result.Attempt > 0 {
			log.Printf("seed %d: ok after %d retries", seed, result.Attempt)
		}
	}
	fmt.Printf("fuzz: %d/%d seeds playable\n", passed, n)
	if passed < n {
		os.Exit(1)
	}
}

// exportAll writes every export format into outDir and records the run
// in the catalog when one is configured.
func exportAll(gen *generation.Generator, result *generation.Result, outDir string, scale int, catalogPath string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	base := fmt.Sprintf("%s_%d", result.Zone, result.Seed)

	csvPath := filepath.Join(outDir, base+".csv")
	if err := export.WriteCSV(result.Grid, csvPath); err != nil {
		return err
	}
	if err := export.WritePNG(result.Grid, gen.Tileset(), filepath.Join(outDir, base+".png"), scale); err != nil {
		return err
	}
	if err := export.WriteTMX(result, filepath.Join(outDir, base+".tmx")); err != nil {
		return err
	}
	if err := export.WriteSnapshot(result, filepath.Join(outDir, base+".blueprint.zst")); err != nil {
		return err
	}
	log.Printf("exported %s.{csv,png,tmx,blueprint.zst} to %s", base, outDir)

	if catalogPath != "" {
		cat, err := catalog.Open(catalogPath)
		if err != nil {
			return err
		}
		defer cat.Close()
		id, err := cat.Record(result, csvPath)
		if err != nil {
			return err
		}
		log.Printf("catalog: recorded run %d", id)
	}
	return nil
}
