package datasource

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// CSVGenerator writes synthetic job duration data in the two-section
// format CSVReader expects: a parameter header/row, then a durations
// header/row.
type CSVGenerator struct{}

// NewCSVGenerator returns a CSVGenerator.
func NewCSVGenerator() *CSVGenerator { return &CSVGenerator{} }

// Generate writes jobCount durations drawn uniformly from
// [minDuration, maxDuration] to outputPath.
func (g *CSVGenerator) Generate(jobCount, processorCount int, minDuration, maxDuration float64, outputPath string) error {
	if jobCount <= 0 || processorCount <= 0 {
		return fmt.Errorf("datasource: job count and processor count must be positive")
	}
	if minDuration <= 0 || maxDuration <= minDuration {
		return fmt.Errorf("datasource: invalid duration range [%v,%v]", minDuration, maxDuration)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("datasource: cannot open %s: %w", outputPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"processor_count", "job_count", "min_duration", "max_duration"}); err != nil {
		return err
	}
	if err := w.Write([]string{
		strconv.Itoa(processorCount),
		strconv.Itoa(jobCount),
		strconv.FormatFloat(minDuration, 'g', -1, 64),
		strconv.FormatFloat(maxDuration, 'g', -1, 64),
	}); err != nil {
		return err
	}

	if err := w.Write([]string{"job_durations"}); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	durations := make([]string, jobCount)
	for i := 0; i < jobCount; i++ {
		d := minDuration + rng.Float64()*(maxDuration-minDuration)
		durations[i] = strconv.FormatFloat(d, 'g', -1, 64)
	}
	if err := w.Write(durations); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// CSVReader ingests the two-section format CSVGenerator produces.
type CSVReader struct{}

// NewCSVReader returns a CSVReader.
func NewCSVReader() *CSVReader { return &CSVReader{} }

// Read parses inputPath into an InputData record and validates it.
func (r *CSVReader) Read(inputPath string) (InputData, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return InputData{}, fmt.Errorf("datasource: cannot open %s: %w", inputPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return InputData{}, fmt.Errorf("datasource: failed to parse %s: %w", inputPath, err)
	}
	if len(rows) < 4 {
		return InputData{}, fmt.Errorf("datasource: %s is missing the parameter or durations section", inputPath)
	}

	paramRow := rows[1]
	if len(paramRow) != 4 {
		return InputData{}, fmt.Errorf("datasource: parameter row must have 4 fields, got %d", len(paramRow))
	}

	processorCount, err := strconv.Atoi(paramRow[0])
	if err != nil {
		return InputData{}, fmt.Errorf("datasource: invalid processor_count: %w", err)
	}
	jobCount, err := strconv.Atoi(paramRow[1])
	if err != nil {
		return InputData{}, fmt.Errorf("datasource: invalid job_count: %w", err)
	}
	minDuration, err := strconv.ParseFloat(paramRow[2], 64)
	if err != nil {
		return InputData{}, fmt.Errorf("datasource: invalid min_duration: %w", err)
	}
	maxDuration, err := strconv.ParseFloat(paramRow[3], 64)
	if err != nil {
		return InputData{}, fmt.Errorf("datasource: invalid max_duration: %w", err)
	}

	durationsRow := rows[3]
	durations := make([]float64, 0, len(durationsRow))
	for _, token := range durationsRow {
		d, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return InputData{}, fmt.Errorf("datasource: invalid job duration %q: %w", token, err)
		}
		durations = append(durations, d)
	}

	data := InputData{
		ProcessorCount: processorCount,
		JobCount:       jobCount,
		MinDuration:    minDuration,
		MaxDuration:    maxDuration,
		JobDurations:   durations,
	}
	if err := data.Validate(); err != nil {
		return InputData{}, err
	}
	return data, nil
}
