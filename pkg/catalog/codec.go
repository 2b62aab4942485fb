package catalog

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// Format is a dataset encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatTOML    Format = "toml"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q", filepath.Ext(path))
	}
}

// datasetFile is the top-level structure of the structured formats.
type datasetFile struct {
	Processors []models.Processor `json:"processors" yaml:"processors" toml:"processors"`
}

// Decode reads records in the given format. Records are not validated;
// pass them to New for that.
func Decode(r io.Reader, format Format) ([]models.Processor, error) {
	if format == FormatCSV {
		return decodeCSV(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s dataset: %w", format, err)
	}

	var f datasetFile
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s dataset: %w", format, err)
	}
	fillDefaults(f.Processors)
	return f.Processors, nil
}

// Encode writes records in the given format.
func Encode(w io.Writer, format Format, records []models.Processor) error {
	if format == FormatCSV {
		return encodeCSV(w, records)
	}

	f := datasetFile{Processors: records}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml dataset: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(f)
	default:
		return fmt.Errorf("unsupported dataset format %q", format)
	}
}
