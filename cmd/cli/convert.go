package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConvertCmd turns a two-column question/answer CSV into a workflow file of
// array steps, one per row. The first row is treated as a header and skipped.
type ConvertCmd struct {
	Input       string `arg:"" help:"CSV file with question and answer columns."`
	Output      string `help:"Workflow file to write. Defaults to stdout."`
	ParentTag   string `help:"Tag of the container holding each question." default:"section"`
	ParentClass string `help:"Class of the container holding each question." default:".clsQuestion"`
	AnswerTag   string `help:"Tag of the clickable answer element." default:"label"`
	Sleep       int    `help:"Seconds to pause after each answered question." default:"2"`
}

func (c *ConvertCmd) Run() error {
	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("opening CSV file %q: %w", c.Input, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var steps []map[string]any
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading CSV file %q: %w", c.Input, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) < 2 {
			continue
		}

		question := strings.TrimSpace(row[0])
		answer := strings.TrimSpace(row[1])
		if question == "" && answer == "" {
			continue
		}

		steps = append(steps, map[string]any{
			"kind":               "array",
			"tag":                c.ParentTag,
			"class":              c.ParentClass,
			"filter_text_inside": question,
			"child_clicks": []map[string]any{
				{"tag": c.AnswerTag, "text": answer},
			},
			"sleep": c.Sleep,
		})
	}

	if len(steps) == 0 {
		return fmt.Errorf("no usable rows found in %q", c.Input)
	}

	data, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workflow: %w", err)
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0644); err != nil {
		return fmt.Errorf("writing workflow file %q: %w", c.Output, err)
	}
	fmt.Printf("Wrote %d steps to %s\n", len(steps), c.Output)
	return nil
}
