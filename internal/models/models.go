package models

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/zeebo/xxh3"
)

type DatasetID string

const (
	DatasetTimeSeries DatasetID = "timeseries"
	DatasetGapminder  DatasetID = "gapminder"
	DatasetTips       DatasetID = "tips"
	DatasetCarshare   DatasetID = "carshare"
	DatasetRadar      DatasetID = "radar"
)

type ChartKind string

const (
	KindLine       ChartKind = "line"
	KindScatter    ChartKind = "scatter"
	KindViolin     ChartKind = "violin"
	KindScatterMap ChartKind = "scatter_map"
	KindLinePolar  ChartKind = "line_polar"
)

// Encoding maps dataset columns onto chart channels. Empty fields are unused.
type Encoding struct {
	X              string   `json:"x,omitempty"`
	Y              string   `json:"y,omitempty"`
	Color          string   `json:"color,omitempty"`
	Size           string   `json:"size,omitempty"`
	HoverName      string   `json:"hover_name,omitempty"`
	HoverData      []string `json:"hover_data,omitempty"`
	AnimationFrame string   `json:"animation_frame,omitempty"`
	AnimationGroup string   `json:"animation_group,omitempty"`
	Lat            string   `json:"lat,omitempty"`
	Lon            string   `json:"lon,omitempty"`
	R              string   `json:"r,omitempty"`
	Theta          string   `json:"theta,omitempty"`
	LogX           bool     `json:"log_x,omitempty"`
	SizeMax        int      `json:"size_max,omitempty"`
	Box            bool     `json:"box,omitempty"`
	Points         string   `json:"points,omitempty"`
	LineClose      bool     `json:"line_close,omitempty"`
	Zoom           int      `json:"zoom,omitempty"`
	MapStyle       string   `json:"map_style,omitempty"`
}

// ChartSpec describes one chart. It is built fresh for every render and
// never modified after being handed out.
type ChartSpec struct {
	Slot     int       `json:"slot"`
	Kind     ChartKind `json:"kind"`
	Dataset  DatasetID `json:"dataset"`
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
	Theme    string    `json:"theme,omitempty"`
	Encoding Encoding  `json:"encoding"`
}

// Fingerprint hashes the JSON form of the spec. Two specs with the same
// configuration always share a fingerprint.
func (s ChartSpec) Fingerprint() string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshalling plain strings, ints and bools does not fail.
		panic("models: marshal chart spec: " + err.Error())
	}
	return strconv.FormatUint(xxh3.Hash(b), 16)
}

type GraphCell struct {
	Spec *ChartSpec `json:"spec,omitempty"`
	LG   int        `json:"lg"`
}

type GraphRow struct {
	Class string      `json:"class,omitempty"`
	Cells []GraphCell `json:"cells"`
}

type GraphsResponse struct {
	Theme string     `json:"theme"`
	Rows  []GraphRow `json:"rows"`
	ETag  string     `json:"etag"`
}

type ThemesResponse struct {
	Themes  []string `json:"themes"`
	Default string   `json:"default"`
}
