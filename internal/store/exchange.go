package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/verte-zerg/unigrade/internal/model"
)

// Format is a course list exchange format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the exchange format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q (use .json or .toml)", filepath.Ext(path))
	}
}

// flexText accepts strings and numbers so hand-edited files with
// credits = 0.5 or id = 3 still load.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexText(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexText(n.String())
	return nil
}

func (f *flexText) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*f = flexText(val)
	case int64:
		*f = flexText(strconv.FormatInt(val, 10))
	case float64:
		*f = flexText(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("expected string or number, got %T", v)
	}
	return nil
}

type courseRecord struct {
	ID      flexText `json:"id" toml:"id"`
	Name    flexText `json:"name" toml:"name"`
	System  string   `json:"system" toml:"system"`
	Grade   flexText `json:"grade" toml:"grade"`
	Credits flexText `json:"credits" toml:"credits"`
}

type tomlFile struct {
	Course []courseRecord `toml:"course"`
}

type tomlRawFile struct {
	Course []toml.Primitive `toml:"course"`
}

// EncodeCourses writes courses in the given format.
func EncodeCourses(w io.Writer, format Format, courses []model.Course) error {
	records := make([]courseRecord, 0, len(courses))
	for _, c := range courses {
		records = append(records, courseRecord{
			ID:      flexText(c.ID),
			Name:    flexText(c.Name),
			System:  string(c.System),
			Grade:   flexText(c.Grade),
			Credits: flexText(c.Credits),
		})
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(tomlFile{Course: records})
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// DecodeCourses reads courses in the given format. Records that do not
// decode into a course are dropped and counted; only an unreadable document
// is an error.
func DecodeCourses(r io.Reader, format Format) ([]model.Course, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatTOML:
		return decodeTOML(data)
	default:
		return nil, 0, fmt.Errorf("unsupported format %q", format)
	}
}

func decodeJSON(data []byte) ([]model.Course, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapped struct {
			Courses []json.RawMessage `json:"courses"`
		}
		if werr := json.Unmarshal(data, &wrapped); werr != nil {
			return nil, 0, fmt.Errorf("failed to decode json: %w", err)
		}
		raw = wrapped.Courses
	}
	var courses []model.Course
	dropped := 0
	for _, item := range raw {
		var rec courseRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			dropped++
			continue
		}
		c, ok := rec.course()
		if !ok {
			dropped++
			continue
		}
		courses = append(courses, c)
	}
	return courses, dropped, nil
}

func decodeTOML(data []byte) ([]model.Course, int, error) {
	var raw tomlRawFile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode toml: %w", err)
	}
	var courses []model.Course
	dropped := 0
	for _, prim := range raw.Course {
		var rec courseRecord
		if err := md.PrimitiveDecode(prim, &rec); err != nil {
			dropped++
			continue
		}
		c, ok := rec.course()
		if !ok {
			dropped++
			continue
		}
		courses = append(courses, c)
	}
	return courses, dropped, nil
}

func (r courseRecord) course() (model.Course, bool) {
	system, err := model.ParseGradingSystem(r.System)
	if err != nil {
		return model.Course{}, false
	}
	id := strings.TrimSpace(string(r.ID))
	if id == "" {
		id = uuid.NewString()
	}
	return model.Course{
		ID:      id,
		Name:    string(r.Name),
		System:  system,
		Grade:   string(r.Grade),
		Credits: string(r.Credits),
	}, true
}
