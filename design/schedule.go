package design

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MWalidJ/Psychopy-priming-experiment/placement"
)

// LoadSchedule reads a trial list written by SaveSchedule. Each row is
// background,vertical,horizontal,congruent[,region]. Rows with fewer than
// four fields are skipped. When the region column is present it must agree
// with the region resolved from the prime and congruency.
func LoadSchedule(path string) ([]Trial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var trials []Trial
	for i, record := range records {
		if len(record) < 4 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "background") {
			continue
		}

		bg, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid background: %v", i+1, err)
		}
		vertical, err := ParseDirection(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", i+1, err)
		}
		horizontal, err := ParseDirection(record[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", i+1, err)
		}
		congruent, err := strconv.ParseBool(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid congruent flag: %v", i+1, err)
		}

		t, err := NewTrial(bg, PrimePair{Vertical: vertical, Horizontal: horizontal}, congruent)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", i+1, err)
		}

		if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
			region, err := placement.ParseRegion(record[4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", i+1, err)
			}
			if region != t.Region {
				return nil, fmt.Errorf("line %d: region %s does not match %s/%v", i+1, region, t.Prime, t.Congruent)
			}
		}

		trials = append(trials, t)
	}

	return trials, nil
}

// SaveSchedule writes trials with a header row.
func SaveSchedule(path string, trials []Trial) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"background", "vertical", "horizontal", "congruent", "region"})
	for _, t := range trials {
		w.Write([]string{
			strconv.Itoa(t.Background),
			string(t.Prime.Vertical),
			string(t.Prime.Horizontal),
			strconv.FormatBool(t.Congruent),
			t.Region.String(),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
