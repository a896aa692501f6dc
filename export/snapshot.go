package export

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"ash-diver/generation"
	"ash-diver/tiles"
)

// Header identifies a blueprint snapshot before the gob payload.
type Header struct {
	Version     int    `json:"version"`
	TileVersion int    `json:"tile_version"`
	Zone        string `json:"zone"`
	Seed        int64  `json:"seed"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// BlueprintV1 is the archived form of an accepted generation result.
type BlueprintV1 struct {
	Header Header

	Attempt    int
	Tiles      [][]tiles.ID
	Spawn      [2]int
	Goal       [2]int
	Containers []generation.Marker
	Crates     [][2]int
	EnemyZones [][2]int
	GroundLoot []generation.Marker
	Surface    []int
}

// WriteSnapshot archives a result as a zstd-compressed gob blob with a
// JSON header line in front, so tools can identify a snapshot without
// decoding the payload.
func WriteSnapshot(result *generation.Result, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	blueprint := BlueprintV1{
		Header: Header{
			Version:     1,
			TileVersion: tiles.Version,
			Zone:        string(result.Zone),
			Seed:        result.Seed,
			Width:       result.Grid.Width,
			Height:      result.Grid.Height,
		},
		Attempt:    result.Attempt,
		Tiles:      result.Grid.Tiles,
		Spawn:      result.Spawn,
		Goal:       result.Goal,
		Containers: result.Containers,
		Crates:     result.Crates,
		EnemyZones: result.EnemyZones,
		GroundLoot: result.GroundLoot,
		Surface:    result.Surface,
	}

	hb, _ := json.Marshal(blueprint.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&blueprint); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

// ReadSnapshot loads a blueprint archive written by WriteSnapshot.
func ReadSnapshot(path string) (BlueprintV1, error) {
	var blueprint BlueprintV1
	f, err := os.Open(path)
	if err != nil {
		return blueprint, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return blueprint, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	// Skip the header line; the gob payload repeats it.
	if _, err := br.ReadBytes('\n'); err != nil {
		return blueprint, fmt.Errorf("snapshot header: %w", err)
	}
	if err := gob.NewDecoder(br).Decode(&blueprint); err != nil {
		return blueprint, fmt.Errorf("gob decode: %w", err)
	}
	return blueprint, nil
}
