package internal

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how FormatOutput renders a value.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatCSV   OutputFormat = "csv"
)

// FormatOutput renders data in the requested format to stdout.
func FormatOutput(data interface{}, format OutputFormat, pretty bool) error {
	switch format {
	case FormatTable:
		return formatTable(data)
	case FormatJSON:
		return formatJSON(data, pretty)
	case FormatYAML:
		return formatYAML(data)
	case FormatCSV:
		return formatCSV(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func formatTable(data interface{}) error {
	fmt.Printf("%+v\n", data)
	return nil
}

func formatJSON(data interface{}, pretty bool) error {
	var output []byte
	var err error
	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

func formatYAML(data interface{}) error {
	output, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Print(string(output))
	return nil
}

func formatCSV(data interface{}) error {
	rows, ok := data.([]DistanceRow)
	if !ok {
		fmt.Printf("%+v\n", data)
		return nil
	}
	fmt.Println("a,b,distance")
	for _, r := range rows {
		fmt.Printf("%d,%d,%d\n", r.A, r.B, r.Distance)
	}
	return nil
}

// DistanceRow is one row of a pairwise distance table, used by both the
// table and CSV renderers.
type DistanceRow struct {
	A        int64
	B        int64
	Distance int64
}

// WriteDistanceTable prints pairwise distances as an aligned table.
func WriteDistanceTable(rows []DistanceRow) {
	headers := []string{"A", "B", "distance"}
	for i, h := range headers {
		if i > 0 {
			fmt.Print(" | ")
		}
		if IsColorEnabled() {
			Info.Print(h)
		} else {
			fmt.Print(h)
		}
	}
	fmt.Println()
	for i := 0; i < len(headers); i++ {
		if i > 0 {
			fmt.Print("---")
		}
		fmt.Print("---")
	}
	fmt.Println()

	for _, r := range rows {
		fmt.Printf("%s | %s | %s\n",
			strconv.FormatInt(r.A, 10), strconv.FormatInt(r.B, 10), strconv.FormatInt(r.Distance, 10))
	}
}
